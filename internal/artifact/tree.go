package artifact

import (
	"errors"
	"fmt"
)

const leaf = -1

var errInvalidTree = errors.New("invalid tree")

// Tree is a fitted binary decision tree stored as parallel node arrays.
// Node 0 is the root; a node whose left child is -1 is a leaf.
type Tree struct {
	ChildrenLeft  []int       `json:"children_left"`
	ChildrenRight []int       `json:"children_right"`
	Feature       []int       `json:"feature"`
	Threshold     []float64   `json:"threshold"`
	Value         [][]float64 `json:"value"`
}

func (t Tree) nodes() int {
	return len(t.ChildrenLeft)
}

// validate checks array shapes, child indices, feature indices and leaf
// widths so that evaluation can never index out of range or loop.
func (t Tree) validate(numFeatures, valueWidth int) error {
	n := t.nodes()
	if n == 0 {
		return fmt.Errorf("%w: no nodes", errInvalidTree)
	}
	if len(t.ChildrenRight) != n || len(t.Feature) != n || len(t.Threshold) != n || len(t.Value) != n {
		return fmt.Errorf("%w: node arrays differ in length", errInvalidTree)
	}

	for i := range n {
		left, right := t.ChildrenLeft[i], t.ChildrenRight[i]
		if left == leaf {
			if len(t.Value[i]) != valueWidth {
				return fmt.Errorf("%w: leaf %d has %d values, want %d", errInvalidTree, i, len(t.Value[i]), valueWidth)
			}
			continue
		}
		// Children always follow their parent in depth-first export order.
		if left <= i || left >= n || right <= i || right >= n {
			return fmt.Errorf("%w: node %d has children out of range", errInvalidTree, i)
		}
		if f := t.Feature[i]; f < 0 || f >= numFeatures {
			return fmt.Errorf("%w: node %d splits on feature %d of %d", errInvalidTree, i, f, numFeatures)
		}
	}
	return nil
}

// leafValue walks x down to a leaf. When strict is true a sample goes left
// when x < threshold, otherwise when x <= threshold.
func (t Tree) leafValue(x []float64, strict bool) []float64 {
	node := 0
	for t.ChildrenLeft[node] != leaf {
		v := x[t.Feature[node]]
		var goLeft bool
		if strict {
			goLeft = v < t.Threshold[node]
		} else {
			goLeft = v <= t.Threshold[node]
		}
		if goLeft {
			node = t.ChildrenLeft[node]
		} else {
			node = t.ChildrenRight[node]
		}
	}
	return t.Value[node]
}
