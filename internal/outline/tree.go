package outline

import "github.com/mhalvorsen/treeline/internal/domain"

// Node is one task in the derived outline forest. Children is computed
// from the flat task list on every build and is never persisted or
// accepted as input; the parent pointer on the task is the only source
// of structure.
type Node struct {
	Task     *domain.TaskNode
	Children []*Node
}

// BuildForest derives the outline forest from a flat task list. It is
// pure and total: any input produces a forest containing every task
// exactly once, in input order among siblings and roots, so building the
// same list twice yields an identical structure.
//
// A task becomes a root when it has no parent, names itself as parent,
// names a parent absent from the list (orphan promotion), or names a
// parent whose ancestor chain leads back to the task (cycle guard).
func BuildForest(tasks []*domain.TaskNode) []*Node {
	if len(tasks) == 0 {
		return nil
	}

	index := make(map[string]*domain.TaskNode, len(tasks))
	nodes := make(map[string]*Node, len(tasks))
	for _, t := range tasks {
		index[t.ID] = t
		nodes[t.ID] = &Node{Task: t}
	}

	var roots []*Node
	for _, t := range tasks {
		parent := resolveParent(index, t)
		if parent == nil {
			roots = append(roots, nodes[t.ID])
			continue
		}
		p := nodes[parent.ID]
		p.Children = append(p.Children, nodes[t.ID])
	}
	return roots
}

// resolveParent returns the task t should attach under, or nil when t is
// a root. The cycle guard walks the declared ancestor chain of the
// candidate parent: finding t there means attaching would close a cycle,
// so t falls back to root. A chain that loops without touching t (bad
// data among other tasks) ends the walk; t may still attach.
func resolveParent(index map[string]*domain.TaskNode, t *domain.TaskNode) *domain.TaskNode {
	if t.ParentID == nil {
		return nil
	}
	pid := *t.ParentID
	if pid == t.ID {
		return nil
	}
	parent, ok := index[pid]
	if !ok {
		return nil
	}

	seen := make(map[string]bool)
	for cur := parent; cur != nil; {
		if cur.ID == t.ID {
			return nil
		}
		if seen[cur.ID] {
			break
		}
		seen[cur.ID] = true
		if cur.ParentID == nil || *cur.ParentID == cur.ID {
			break
		}
		next, ok := index[*cur.ParentID]
		if !ok {
			break
		}
		cur = next
	}
	return parent
}

// WouldCreateCycle reports whether setting taskID's parent to newParentID
// would make the task an ancestor of itself. Used to re-validate a
// reparenting patch before it is sent to the store.
func WouldCreateCycle(tasks []*domain.TaskNode, taskID, newParentID string) bool {
	if taskID == newParentID {
		return true
	}
	index := make(map[string]*domain.TaskNode, len(tasks))
	for _, t := range tasks {
		index[t.ID] = t
	}
	seen := make(map[string]bool)
	for cur := index[newParentID]; cur != nil; {
		if cur.ID == taskID {
			return true
		}
		if seen[cur.ID] {
			return false
		}
		seen[cur.ID] = true
		if cur.ParentID == nil {
			return false
		}
		cur = index[*cur.ParentID]
	}
	return false
}

// Walk visits every node of the forest depth-first in display order,
// reporting each node's depth (roots are depth 0).
func Walk(forest []*Node, fn func(n *Node, depth int)) {
	var visit func(n *Node, depth int)
	visit = func(n *Node, depth int) {
		fn(n, depth)
		for _, c := range n.Children {
			visit(c, depth+1)
		}
	}
	for _, root := range forest {
		visit(root, 0)
	}
}

// CountNodes returns the total number of tasks in the forest.
func CountNodes(forest []*Node) int {
	count := 0
	Walk(forest, func(*Node, int) { count++ })
	return count
}
