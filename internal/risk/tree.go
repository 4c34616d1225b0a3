// internal/risk/tree.go
package risk

import "fmt"

// Node is one entry of a flattened decision tree. A node with Left == -1 is a leaf.
type Node struct {
	Feature   int       `json:"feature"`
	Threshold float64   `json:"threshold"`
	Left      int       `json:"left"`
	Right     int       `json:"right"`
	Value     []float64 `json:"value,omitempty"`
}

func (n Node) IsLeaf() bool { return n.Left < 0 }

// Tree is evaluated from node 0; x[feature] <= threshold goes left.
type Tree struct {
	Nodes []Node
}

// Validate checks that every reachable path ends in a leaf of the given width
// and that split features are in range.
func (t *Tree) Validate(numFeatures, leafWidth int) error {
	if len(t.Nodes) == 0 {
		return fmt.Errorf("tree has no nodes")
	}

	visited := make([]bool, len(t.Nodes))
	stack := []int{0}
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if visited[i] {
			return fmt.Errorf("node %d is reachable twice", i)
		}
		visited[i] = true

		n := t.Nodes[i]
		if n.IsLeaf() {
			if len(n.Value) != leafWidth {
				return fmt.Errorf("leaf %d has %d values, want %d", i, len(n.Value), leafWidth)
			}
			for _, v := range n.Value {
				if !finite(v) {
					return fmt.Errorf("leaf %d has a non-finite value", i)
				}
			}
			continue
		}

		if n.Feature < 0 || n.Feature >= numFeatures {
			return fmt.Errorf("node %d splits on feature %d, have %d", i, n.Feature, numFeatures)
		}
		if !finite(n.Threshold) {
			return fmt.Errorf("node %d has a non-finite threshold", i)
		}
		for _, child := range []int{n.Left, n.Right} {
			if child <= i || child >= len(t.Nodes) {
				return fmt.Errorf("node %d has child %d out of range", i, child)
			}
			stack = append(stack, child)
		}
	}
	return nil
}

// Leaf walks the tree for x and returns the leaf values. The tree must be validated.
func (t *Tree) Leaf(x []float64) []float64 {
	i := 0
	for {
		n := t.Nodes[i]
		if n.IsLeaf() {
			return n.Value
		}
		if x[n.Feature] <= n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}
}
