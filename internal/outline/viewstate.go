package outline

// ViewState is thin UI bookkeeping for one template's outline: which
// sections are open and which single task, if any, is being edited.
// Nothing here is persisted. Sections start expanded, so only collapsed
// ids are tracked.
type ViewState struct {
	collapsed map[string]bool
	editingID string
}

// NewViewState returns a view state with every section expanded and no
// task in edit mode.
func NewViewState() *ViewState {
	return &ViewState{collapsed: make(map[string]bool)}
}

// IsExpanded reports whether a section is open.
func (v *ViewState) IsExpanded(sectionID string) bool {
	return !v.collapsed[sectionID]
}

// Toggle flips a section between open and collapsed and reports the new
// expanded state.
func (v *ViewState) Toggle(sectionID string) bool {
	if v.collapsed[sectionID] {
		delete(v.collapsed, sectionID)
		return true
	}
	v.collapsed[sectionID] = true
	return false
}

// ExpandAll reopens every section.
func (v *ViewState) ExpandAll() {
	v.collapsed = make(map[string]bool)
}

// StartEditing marks a task as the one in edit mode. At most one task is
// editable at a time; starting a new edit implicitly ends the previous
// one.
func (v *ViewState) StartEditing(taskID string) {
	v.editingID = taskID
}

// StopEditing clears edit mode.
func (v *ViewState) StopEditing() {
	v.editingID = ""
}

// EditingID returns the id of the task in edit mode and whether one is
// set.
func (v *ViewState) EditingID() (string, bool) {
	return v.editingID, v.editingID != ""
}
