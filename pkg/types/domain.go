package types

// Prediction is one scored row as emitted by `rulpredict predict --format ndjson`.
type Prediction struct {
	// Position of the row in the source file (0-based, header excluded).
	// example: 17
	Row int `json:"row" example:"17"`
	// Identifier columns copied from the input, keyed by column name.
	// example: {"unit":"3","cycle":"112"}
	IDs map[string]string `json:"ids,omitempty"`
	// Predicted remaining useful life in cycles.
	// example: 87.5
	PredictedRUL float64 `json:"predicted_RUL" example:"87.5"`
}
