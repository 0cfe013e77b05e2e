package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMotionOrderedCoordsHandlesBackwardMotion(t *testing.T) {
	b := newTestBuffer([]string{"hello"}, 0, 4)
	m := b.LeftMotion(3)

	lo, hi := m.OrderedCoords()
	assert.Equal(t, Position{Row: 0, Col: 1}, lo)
	assert.Equal(t, Position{Row: 0, Col: 4}, hi)
}

func TestMotionGetTextDoesNotMutate(t *testing.T) {
	b := newTestBuffer([]string{"hello world"}, 0, 0)
	m := b.RightMotion(5)

	assert.Equal(t, "hello", m.GetText())
	assert.Equal(t, []string{"hello world"}, b.lines)
	assert.False(t, b.Dirty())
}

func TestLineMotionSpansWholeLinesForward(t *testing.T) {
	b := newTestBuffer([]string{"a", "b", "c", "d"}, 0, 0)
	m := b.DownMotion(2)

	lo, hi := m.OrderedCoords()
	assert.Equal(t, Position{Row: 0, Col: 0}, lo)
	assert.Equal(t, Position{Row: 3, Col: 0}, hi)
	assert.Equal(t, "a\nb\nc\n", m.GetText())
}

func TestLineMotionSpansWholeLinesBackward(t *testing.T) {
	b := newTestBuffer([]string{"a", "b", "c", "d"}, 2, 0)
	m := b.UpMotion(2)

	lo, hi := m.OrderedCoords()
	assert.Equal(t, Position{Row: 0, Col: 0}, lo)
	assert.Equal(t, Position{Row: 3, Col: 0}, hi)
}

func TestNullMotionIsInert(t *testing.T) {
	b := newTestBuffer([]string{"abc"}, 0, 1)
	n := b.NullMotion()

	n.Execute()
	assert.Equal(t, Position{Row: 0, Col: 1}, b.Cursor())
	assert.Equal(t, "", n.GetText())
	assert.Equal(t, "", n.Delete())
	assert.Equal(t, []string{"abc"}, b.lines)
}

func TestSearchWithNoMatchReturnsNullMotion(t *testing.T) {
	b := newTestBuffer([]string{"abc"}, 0, 0)
	m, err := b.SearchMotion("zzz", false)
	assert.NoError(t, err)

	_, isNull := m.(*NullMotion)
	assert.True(t, isNull)
}
