package outline

import "slices"

// MoveID computes a drag-and-drop permutation: order with draggedID
// removed and reinserted at targetIndex, clamped to [0, len-1]. The
// relative order of all other ids is preserved, and moving an id onto
// its own index is a no-op. Always returns a fresh slice; the input is
// never mutated. An absent draggedID yields an unchanged copy.
func MoveID(order []string, draggedID string, targetIndex int) []string {
	from := slices.Index(order, draggedID)
	if from == -1 {
		return slices.Clone(order)
	}

	if targetIndex < 0 {
		targetIndex = 0
	}
	if last := len(order) - 1; targetIndex > last {
		targetIndex = last
	}

	out := make([]string, 0, len(order))
	out = append(out, order[:from]...)
	out = append(out, order[from+1:]...)
	return slices.Insert(out, targetIndex, draggedID)
}
