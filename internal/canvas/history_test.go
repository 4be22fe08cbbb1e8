package canvas

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryPushUndo(t *testing.T) {
	var h History

	h.Push([]Shape{{ID: "a"}})
	h.Push([]Shape{{ID: "a"}, {ID: "b"}})
	require.Equal(t, 2, h.Len())

	snap, ok := h.Undo()
	require.True(t, ok)
	assert.Len(t, snap, 2)

	snap, ok = h.Undo()
	require.True(t, ok)
	assert.Len(t, snap, 1)

	_, ok = h.Undo()
	assert.False(t, ok)
}

func TestHistoryEvictsOldest(t *testing.T) {
	var h History
	for i := 0; i < HistoryDepth+5; i++ {
		h.Push([]Shape{{ID: fmt.Sprintf("s%d", i)}})
	}
	assert.Equal(t, HistoryDepth, h.Len())

	// the newest snapshot comes back first
	snap, ok := h.Undo()
	require.True(t, ok)
	assert.Equal(t, fmt.Sprintf("s%d", HistoryDepth+4), snap[0].ID)
}

func TestHistorySnapshotsAreCopies(t *testing.T) {
	shapes := []Shape{{ID: "a", X: 1}}
	var h History
	h.Push(shapes)

	shapes[0].X = 99
	snap, ok := h.Undo()
	require.True(t, ok)
	assert.Equal(t, 1.0, snap[0].X)
}

func TestThirtyFiveCreatesLeaveFiveAfterFullUndo(t *testing.T) {
	s := NewSession("d", 1, &SeqSource{}, nil)
	var p Pointer
	style := DefaultStyle()

	for i := 0; i < 35; i++ {
		p.Down(s, ToolCheck, style, Point{X: float64(i), Y: float64(i)})
		p.Up(s)
	}
	require.Len(t, s.Shapes(), 35)

	for s.Undo() {
	}
	// oldest 5 snapshots were evicted, so 5 shapes survive
	assert.Len(t, s.Shapes(), 5)
}
