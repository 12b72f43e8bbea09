// Package predictor turns input frames into RUL predictions. It is split by
// concern:
//
//   - predictor.go: Predictor type, New, Predict (column projection + model call).
//   - errors.go: IsMissingColumn / IsType / IsShape helpers over frame and model errors.
//   - metrics.go: Prometheus counters/histogram and the textfile exporter.
//
// A Predictor is built once from loaded artifacts and never changes, so callers
// may share it freely.
package predictor
