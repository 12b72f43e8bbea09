package model

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Node is one entry of a flattened regression tree. A node with Left < 0 is a
// leaf and carries the predicted Value; otherwise a row goes Left when
// x[Feature] <= Threshold and Right otherwise.
type Node struct {
	Feature   int     `json:"feature"`
	Threshold float64 `json:"threshold"`
	Left      int     `json:"left"`
	Right     int     `json:"right"`
	Value     float64 `json:"value"`
}

// Tree is a regression tree stored as a node array rooted at index 0.
type Tree struct {
	Nodes []Node `json:"nodes"`
}

func (t Tree) isLeaf(i int) bool { return t.Nodes[i].Left < 0 }

// validate checks every split references an existing feature and that
// children always sit after their parent, which rules out cycles.
func (t Tree) validate(nFeatures int) error {
	if len(t.Nodes) == 0 {
		return errInvalid("tree has no nodes")
	}
	for i, n := range t.Nodes {
		if n.Left < 0 {
			continue
		}
		if n.Feature < 0 || n.Feature >= nFeatures {
			return errInvalid("node %d: feature index %d out of range [0,%d)", i, n.Feature, nFeatures)
		}
		if n.Left <= i || n.Left >= len(t.Nodes) || n.Right <= i || n.Right >= len(t.Nodes) {
			return errInvalid("node %d: bad children %d/%d", i, n.Left, n.Right)
		}
	}
	return nil
}

func (t Tree) eval(x []float64) float64 {
	i := 0
	for !t.isLeaf(i) {
		n := t.Nodes[i]
		if x[n.Feature] <= n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}
	return t.Nodes[i].Value
}

// RandomForest averages the outputs of its regression trees.
type RandomForest struct {
	nFeatures int
	trees     []Tree
}

// NewRandomForest validates the trees and returns a ready forest.
func NewRandomForest(nFeatures int, trees []Tree) (*RandomForest, error) {
	if nFeatures <= 0 {
		return nil, errInvalid("n_features must be positive, got %d", nFeatures)
	}
	if len(trees) == 0 {
		return nil, errInvalid("forest has no trees")
	}
	for k, t := range trees {
		if err := t.validate(nFeatures); err != nil {
			return nil, fmt.Errorf("tree %d: %w", k, err)
		}
	}
	return &RandomForest{nFeatures: nFeatures, trees: append([]Tree(nil), trees...)}, nil
}

func (rf *RandomForest) NumFeatures() int { return rf.nFeatures }

// NumTrees returns the ensemble size.
func (rf *RandomForest) NumTrees() int { return len(rf.trees) }

func (rf *RandomForest) Predict(X mat.Matrix) ([]float64, error) {
	r, err := checkShape(X, rf.nFeatures)
	if err != nil {
		return nil, err
	}
	out := make([]float64, r)
	row := make([]float64, rf.nFeatures)
	votes := make([]float64, len(rf.trees))
	for i := 0; i < r; i++ {
		mat.Row(row, i, X)
		for k, t := range rf.trees {
			votes[k] = t.eval(row)
		}
		out[i] = floats.Sum(votes) / float64(len(votes))
	}
	return out, nil
}
