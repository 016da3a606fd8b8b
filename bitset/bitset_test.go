package bitset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetBasic(t *testing.T) {
	assert := assert.New(t)

	s := NewSet(70)
	s.Set(0)
	s.Set(63)
	s.Set(64)
	s.Set(69)
	assert.True(s.Test(0) && s.Test(63) && s.Test(64) && s.Test(69), "all set bits should read back as set")
	assert.False(s.Test(1) || s.Test(65), "untouched bits should read back as clear")

	var got []int
	s.Each(func(i int) { got = append(got, i) })
	assert.Equal([]int{0, 63, 64, 69}, got)
}

func TestSetClearAndEmpty(t *testing.T) {
	assert := assert.New(t)

	s := NewSet(10)
	assert.True(s.Empty(), "fresh set should be empty")
	s.Set(4)
	assert.False(s.Empty(), "set with a bit should not be empty")
	s.Clear(4)
	assert.True(s.Empty(), "set should be empty again after clearing its only bit")
}

func TestMatrixSetTest(t *testing.T) {
	assert := assert.New(t)

	m := NewMatrix(5, 5)
	m.Set(2, 3)
	assert.True(m.Test(2, 3))
	assert.False(m.Test(3, 2), "matrix is not symmetric")
}

func TestMatrixOrRow(t *testing.T) {
	assert := assert.New(t)

	m := NewMatrix(3, 3)
	m.Set(0, 0)
	m.Set(1, 1)
	m.OrRow(0, 1)
	assert.True(m.Test(0, 0) && m.Test(0, 1), "OrRow should merge bits from the source row")
	assert.False(m.Test(0, 2), "OrRow should not set unrelated bits")
}

// TestTransitiveClosureSpot is a Warshall spot check:
// a 5-node relation 0->1, 1->2, 2->3, 3->4 should close to a total order
// reachability matrix (i reaches every j > i), with no back edges introduced.
func TestTransitiveClosureSpot(t *testing.T) {
	assert := assert.New(t)

	m := NewMatrix(5, 5)
	m.Set(0, 1)
	m.Set(1, 2)
	m.Set(2, 3)
	m.Set(3, 4)
	TransitiveClosure(m)
	for i := 0; i < 5; i++ {
		for j := 0; j < 5; j++ {
			assert.Equal(j > i, m.Test(i, j), "Test(%d,%d)", i, j)
		}
	}
}

func TestReflexiveTransitiveClosure(t *testing.T) {
	assert := assert.New(t)

	m := NewMatrix(4, 4)
	m.Set(0, 1)
	m.Set(1, 2)
	ReflexiveTransitiveClosure(m)
	for i := 0; i < 4; i++ {
		assert.True(m.Test(i, i), "expected diagonal bit (%d,%d) set after reflexive closure", i, i)
	}
	assert.True(m.Test(0, 2), "expected (0,2) set via transitivity")
	assert.False(m.Test(3, 0), "node 3 has no outgoing edges")
}

func TestTransitiveClosurePanicsOnNonSquare(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for non-square matrix")
		}
	}()
	TransitiveClosure(NewMatrix(2, 3))
}
