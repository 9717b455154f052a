package tensor

import (
	"fmt"
	"slices"
)

// Shape holds the dimensions of a matrix as {rows, cols}.
type Shape []int

// NumElements returns rows*cols, or 0 for an empty shape.
func (s Shape) NumElements() int {
	if len(s) == 0 {
		return 0
	}
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Validate reports whether s is a {rows, cols} pair with both dimensions positive.
func (s Shape) Validate() error {
	if len(s) != 2 {
		return fmt.Errorf("expected {rows, cols}, got %d dimensions", len(s))
	}
	if s[0] <= 0 || s[1] <= 0 {
		return fmt.Errorf("dimensions must be positive, got %dx%d", s[0], s[1])
	}
	return nil
}

func (s Shape) Equal(other Shape) bool {
	return slices.Equal(s, other)
}

func (s Shape) Clone() Shape {
	return slices.Clone(s)
}
