package outline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMoveID(t *testing.T) {
	order := []string{"a", "b", "c", "d"}

	tests := []struct {
		name    string
		dragged string
		target  int
		want    []string
	}{
		{"forward", "a", 2, []string{"b", "c", "a", "d"}},
		{"backward", "d", 0, []string{"d", "a", "b", "c"}},
		{"to end", "b", 3, []string{"a", "c", "d", "b"}},
		{"own index is a no-op", "b", 1, []string{"a", "b", "c", "d"}},
		{"negative index clamps to front", "c", -5, []string{"c", "a", "b", "d"}},
		{"oversized index clamps to back", "a", 99, []string{"b", "c", "d", "a"}},
		{"unknown id leaves order unchanged", "zz", 1, []string{"a", "b", "c", "d"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MoveID(order, tt.dragged, tt.target)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMoveID_DoesNotMutateInput(t *testing.T) {
	order := []string{"a", "b", "c"}
	_ = MoveID(order, "c", 0)
	assert.Equal(t, []string{"a", "b", "c"}, order)
}

func TestMoveID_IsPermutation(t *testing.T) {
	order := []string{"s1", "s2", "s3", "s4", "s5"}
	for _, id := range order {
		for target := -1; target <= len(order); target++ {
			got := MoveID(order, id, target)
			assert.ElementsMatch(t, order, got, "dragged=%s target=%d", id, target)
		}
	}
}

func TestMoveID_SingleElement(t *testing.T) {
	assert.Equal(t, []string{"only"}, MoveID([]string{"only"}, "only", 0))
	assert.Equal(t, []string{"only"}, MoveID([]string{"only"}, "only", 7))
}
