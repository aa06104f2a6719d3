// Package basis maps an n-qubit register's basis states to integer indices.
//
// Qubit 0 occupies the most significant bit of a basis index: for n qubits the
// bit of qubit q is 1 << (n-q-1). The canonical label of an index is its binary
// form zero-padded to n digits, so label characters read left to right as
// qubit 0, qubit 1, ... qubit n-1.
package basis

import (
	"fmt"
	"math/bits"
	"strconv"
	"strings"
)

// Dim returns the number of basis states of an n-qubit register.
func Dim(n int) int {
	return 1 << n
}

// Mask returns the bit identifying qubit q within any basis index of an
// n-qubit register. The caller guarantees 0 <= q < n.
func Mask(n, q int) int {
	return 1 << (n - q - 1)
}

// Bit returns the value (0 or 1) of qubit q in basis index i.
func Bit(i, n, q int) int {
	if i&Mask(n, q) != 0 {
		return 1
	}
	return 0
}

// Label returns the zero-padded binary label of basis index i.
func Label(i, n int) string {
	s := strconv.FormatInt(int64(i), 2)
	if len(s) >= n {
		return s
	}
	return strings.Repeat("0", n-len(s)) + s
}

// Labels returns the labels of all basis states in index order.
func Labels(n int) []string {
	labels := make([]string, Dim(n))
	for i := range labels {
		labels[i] = Label(i, n)
	}
	return labels
}

// ParseLabel converts a binary label back to its basis index.
func ParseLabel(label string) (int, error) {
	if label == "" {
		return 0, fmt.Errorf("empty basis label")
	}
	for _, r := range label {
		if r != '0' && r != '1' {
			return 0, fmt.Errorf("basis label %q: invalid digit %q", label, r)
		}
	}
	v, err := strconv.ParseInt(label, 2, 64)
	if err != nil {
		return 0, fmt.Errorf("basis label %q: %w", label, err)
	}
	return int(v), nil
}

// Hamming returns the number of qubits in state |1> for basis index i.
// It is the latitude of the state on the Q-sphere.
func Hamming(i int) int {
	return bits.OnesCount(uint(i))
}
