package fix

import (
	"errors"
	"fmt"
	"sort"
)

// ErrNoEdits is returned when an operation needs at least one edit.
var ErrNoEdits = errors.New("no edits")

// ValidationError describes an invalid edit.
type ValidationError struct {
	Edit    TextEdit
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid edit [%d:%d]: %s", e.Edit.StartOffset, e.Edit.EndOffset, e.Message)
}

// ConflictError describes overlapping edits.
type ConflictError struct {
	Edit1 TextEdit
	Edit2 TextEdit
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("overlapping edits: [%d:%d] and [%d:%d]",
		e.Edit1.StartOffset, e.Edit1.EndOffset,
		e.Edit2.StartOffset, e.Edit2.EndOffset)
}

// ValidateEdit checks that an edit has a valid range for the given content length.
func ValidateEdit(edit TextEdit, contentLen int) error {
	if edit.StartOffset < 0 {
		return &ValidationError{Edit: edit, Message: "start offset is negative"}
	}
	if edit.EndOffset < edit.StartOffset {
		return &ValidationError{Edit: edit, Message: "end offset is before start offset"}
	}
	if edit.EndOffset > contentLen {
		return &ValidationError{
			Edit:    edit,
			Message: fmt.Sprintf("end offset %d exceeds content length %d", edit.EndOffset, contentLen),
		}
	}
	return nil
}

// ValidateEdits returns the first validation error, or nil.
func ValidateEdits(edits []TextEdit, contentLen int) error {
	for _, edit := range edits {
		if err := ValidateEdit(edit, contentLen); err != nil {
			return err
		}
	}
	return nil
}

// SortEdits sorts edits by start offset. Edits with equal start offsets
// keep their relative order.
func SortEdits(edits []TextEdit) {
	sort.SliceStable(edits, func(i, j int) bool {
		return edits[i].StartOffset < edits[j].StartOffset
	})
}

// DetectConflicts returns the first pair of overlapping edits in a sorted slice.
func DetectConflicts(edits []TextEdit) error {
	for i := 1; i < len(edits); i++ {
		if edits[i].StartOffset < edits[i-1].EndOffset {
			return &ConflictError{Edit1: edits[i-1], Edit2: edits[i]}
		}
	}
	return nil
}

// PrepareEdits validates, sorts, and checks for conflicts.
// It returns a sorted copy.
func PrepareEdits(edits []TextEdit, contentLen int) ([]TextEdit, error) {
	if len(edits) == 0 {
		return edits, nil
	}

	if err := ValidateEdits(edits, contentLen); err != nil {
		return nil, err
	}

	result := make([]TextEdit, len(edits))
	copy(result, edits)
	SortEdits(result)

	if err := DetectConflicts(result); err != nil {
		return nil, err
	}

	return result, nil
}

// Candidate is a proposed edit together with the index of the finding that
// proposed it.
type Candidate struct {
	Edit  TextEdit
	Owner int
}

// Select picks a maximal greedy subset of non-overlapping candidates.
//
// Candidates are ordered by start offset (ties keep input order). Walking the
// ordered list, a candidate is applied iff its start is at or after the end of
// the last applied candidate. Invalid candidates are always rejected.
// Both returned slices are in walk order.
func Select(candidates []Candidate, contentLen int) ([]Candidate, []Candidate) {
	if len(candidates) == 0 {
		return nil, nil
	}

	ordered := make([]Candidate, len(candidates))
	copy(ordered, candidates)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Edit.StartOffset < ordered[j].Edit.StartOffset
	})

	applied := make([]Candidate, 0, len(ordered))
	var rejected []Candidate

	lastAppliedEnd := -1
	for _, cand := range ordered {
		if ValidateEdit(cand.Edit, contentLen) != nil || cand.Edit.StartOffset < lastAppliedEnd {
			rejected = append(rejected, cand)
			continue
		}
		applied = append(applied, cand)
		lastAppliedEnd = cand.Edit.EndOffset
	}

	return applied, rejected
}

// Edits extracts the edits of the given candidates.
func Edits(candidates []Candidate) []TextEdit {
	out := make([]TextEdit, len(candidates))
	for i, c := range candidates {
		out[i] = c.Edit
	}
	return out
}

// FilterConflicts splits sorted edits into accepted and skipped using the
// same greedy rule as Select.
func FilterConflicts(edits []TextEdit) ([]TextEdit, []TextEdit) {
	candidates := make([]Candidate, len(edits))
	maxEnd := 0
	for i, e := range edits {
		candidates[i] = Candidate{Edit: e, Owner: i}
		maxEnd = max(maxEnd, e.EndOffset)
	}
	applied, rejected := Select(candidates, maxEnd)
	if len(applied) == 0 {
		return nil, Edits(rejected)
	}
	return Edits(applied), Edits(rejected)
}
