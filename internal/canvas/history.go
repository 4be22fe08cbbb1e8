package canvas

// HistoryDepth bounds the undo stack; the oldest snapshot is evicted once
// the stack grows past it.
const HistoryDepth = 30

// History is a bounded stack of full shape-collection snapshots. Each
// undoable mutation pushes the pre-mutation collection before applying the
// change; undo pops it back. There is no redo stack.
type History struct {
	snaps [][]Shape
}

// Push appends a deep copy of the collection, evicting the oldest snapshot
// when the stack exceeds HistoryDepth.
func (h *History) Push(shapes []Shape) {
	snap := make([]Shape, len(shapes))
	copy(snap, shapes)
	h.snaps = append(h.snaps, snap)
	if len(h.snaps) > HistoryDepth {
		h.snaps = h.snaps[1:]
	}
}

// Undo pops and returns the most recent snapshot. The second return is
// false when there is nothing to undo.
func (h *History) Undo() ([]Shape, bool) {
	if len(h.snaps) == 0 {
		return nil, false
	}
	snap := h.snaps[len(h.snaps)-1]
	h.snaps = h.snaps[:len(h.snaps)-1]
	return snap, true
}

// Len reports how many snapshots can still be undone.
func (h *History) Len() int {
	return len(h.snaps)
}
