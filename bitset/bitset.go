// Package bitset implements packed-word bit sets and bit matrices, and the
// Warshall transitive-closure algorithm used throughout the table builder's
// relation solving (EFF, FirstDerives, and the LALR(1) lookahead relations).
package bitset

import (
	"fmt"
	"math/bits"
	"strings"
)

const wordBits = 64

func words(n int) int {
	return (n + wordBits - 1) / wordBits
}

// Set is a single packed bit vector over [0, n).
type Set struct {
	n    int
	bits []uint64
}

// NewSet returns a Set capable of holding bits [0, n).
func NewSet(n int) *Set {
	return &Set{n: n, bits: make([]uint64, words(n))}
}

// Len returns the number of addressable bits.
func (s *Set) Len() int { return s.n }

// Set sets bit i.
func (s *Set) Set(i int) {
	s.bits[i/wordBits] |= 1 << uint(i%wordBits)
}

// Clear clears bit i.
func (s *Set) Clear(i int) {
	s.bits[i/wordBits] &^= 1 << uint(i%wordBits)
}

// Test reports whether bit i is set.
func (s *Set) Test(i int) bool {
	return s.bits[i/wordBits]&(1<<uint(i%wordBits)) != 0
}

// Or ORs src into s in place. Both sets must have the same length.
func (s *Set) Or(src *Set) {
	for i := range s.bits {
		s.bits[i] |= src.bits[i]
	}
}

// OrRow ORs row r of m into s in place. s and m's row width must match.
func (s *Set) OrRow(m *Matrix, r int) {
	off := r * m.words
	for i := 0; i < m.words; i++ {
		s.bits[i] |= m.bits[off+i]
	}
}

// Empty reports whether no bit is set.
func (s *Set) Empty() bool {
	for _, w := range s.bits {
		if w != 0 {
			return false
		}
	}
	return true
}

// Each calls fn once for every set bit, in ascending order.
func (s *Set) Each(fn func(i int)) {
	for wi, w := range s.bits {
		for w != 0 {
			b := bits.TrailingZeros64(w)
			fn(wi*wordBits + b)
			w &= w - 1
		}
	}
}

func (s *Set) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	first := true
	s.Each(func(i int) {
		if !first {
			sb.WriteString(", ")
		}
		first = false
		fmt.Fprintf(&sb, "%d", i)
	})
	sb.WriteByte('}')
	return sb.String()
}

// Matrix is a dense rows x cols bit matrix, each row packed into its own
// span of words so that whole rows can be OR'd with a tight inner loop.
type Matrix struct {
	rows, cols, words int
	bits              []uint64
}

// NewMatrix returns a zeroed rows x cols bit matrix.
func NewMatrix(rows, cols int) *Matrix {
	w := words(cols)
	return &Matrix{rows: rows, cols: cols, words: w, bits: make([]uint64, rows*w)}
}

// Rows reports the row count.
func (m *Matrix) Rows() int { return m.rows }

// Cols reports the column count.
func (m *Matrix) Cols() int { return m.cols }

func (m *Matrix) index(i, j int) (word int, mask uint64) {
	off := i*m.words + j/wordBits
	return off, 1 << uint(j%wordBits)
}

// Set sets bit (i,j).
func (m *Matrix) Set(i, j int) {
	w, mask := m.index(i, j)
	m.bits[w] |= mask
}

// Clear clears bit (i,j).
func (m *Matrix) Clear(i, j int) {
	w, mask := m.index(i, j)
	m.bits[w] &^= mask
}

// Test reports whether bit (i,j) is set.
func (m *Matrix) Test(i, j int) bool {
	w, mask := m.index(i, j)
	return m.bits[w]&mask != 0
}

// OrRow ORs row src into row dst in place (dst |= src).
func (m *Matrix) OrRow(dst, src int) {
	do := dst * m.words
	so := src * m.words
	for i := 0; i < m.words; i++ {
		m.bits[do+i] |= m.bits[so+i]
	}
}

// OrRowFrom ORs row srcRow of src into row dstRow of m in place. m and src
// must have the same column count (word count).
func (m *Matrix) OrRowFrom(dstRow int, src *Matrix, srcRow int) {
	do := dstRow * m.words
	so := srcRow * src.words
	for i := 0; i < m.words; i++ {
		m.bits[do+i] |= src.bits[so+i]
	}
}

// RowEqual reports whether rows a and b are bitwise identical.
func (m *Matrix) RowEqual(a, b int) bool {
	ao := a * m.words
	bo := b * m.words
	for i := 0; i < m.words; i++ {
		if m.bits[ao+i] != m.bits[bo+i] {
			return false
		}
	}
	return true
}

// Each calls fn once for every set bit in row r, in ascending column order.
func (m *Matrix) Each(r int, fn func(j int)) {
	off := r * m.words
	for wi := 0; wi < m.words; wi++ {
		w := m.bits[off+wi]
		for w != 0 {
			b := bits.TrailingZeros64(w)
			fn(wi*wordBits + b)
			w &= w - 1
		}
	}
}

// TransitiveClosure computes the transitive closure of m in place, treating
// m as the adjacency matrix of a relation over its (square) row/column
// index space: for each pivot k, for every row i with R[i,k] set, OR row k
// into row i. Loop order is pivot outermost, row innermost, matching the
// classic Warshall formulation. m must be square (rows == cols).
func TransitiveClosure(m *Matrix) {
	if m.rows != m.cols {
		panic("bitset: TransitiveClosure requires a square matrix")
	}
	for k := 0; k < m.rows; k++ {
		for i := 0; i < m.rows; i++ {
			if m.Test(i, k) {
				m.OrRow(i, k)
			}
		}
	}
}

// ReflexiveTransitiveClosure computes TransitiveClosure(m) and then sets the
// diagonal, so that every row includes itself.
func ReflexiveTransitiveClosure(m *Matrix) {
	TransitiveClosure(m)
	for i := 0; i < m.rows; i++ {
		m.Set(i, i)
	}
}
