package workouts

import (
	"fmt"
	"strings"

	"github.com/2beens/liftly/internal/apperr"
)

type ExerciseDraft struct {
	Name       string  `json:"name"`
	Sets       int     `json:"sets"`
	Reps       int     `json:"reps"`
	Weight     float64 `json:"weight"`
	Notes      string  `json:"notes"`
	OrderIndex int     `json:"orderIndex"`
}

func (d ExerciseDraft) validate(op string) error {
	switch {
	case d.Sets < 0:
		return apperr.Validation(op, "sets", "Sets cannot be negative")
	case d.Reps < 0:
		return apperr.Validation(op, "reps", "Reps cannot be negative")
	case d.Weight < 0:
		return apperr.Validation(op, "weight", "Weight cannot be negative")
	}
	return nil
}

// ExercisePatch carries the fields of a single edit, nil fields stay untouched.
type ExercisePatch struct {
	Name   *string  `json:"name,omitempty"`
	Sets   *int     `json:"sets,omitempty"`
	Reps   *int     `json:"reps,omitempty"`
	Weight *float64 `json:"weight,omitempty"`
	Notes  *string  `json:"notes,omitempty"`
}

func (p ExercisePatch) apply(d ExerciseDraft) ExerciseDraft {
	if p.Name != nil {
		d.Name = *p.Name
	}
	if p.Sets != nil {
		d.Sets = *p.Sets
	}
	if p.Reps != nil {
		d.Reps = *p.Reps
	}
	if p.Weight != nil {
		d.Weight = *p.Weight
	}
	if p.Notes != nil {
		d.Notes = *p.Notes
	}
	return d
}

// DraftList is the in-memory, ordered exercise list of a workout being edited.
// Order indices are always dense, 0..n-1.
type DraftList struct {
	items []ExerciseDraft
}

func NewDraftList(items []ExerciseDraft) DraftList {
	l := DraftList{items: append([]ExerciseDraft(nil), items...)}
	l.renumber()
	return l
}

func (l *DraftList) renumber() {
	for i := range l.items {
		l.items[i].OrderIndex = i
	}
}

func (l *DraftList) Len() int {
	return len(l.items)
}

// Add appends d and returns its index.
func (l *DraftList) Add(d ExerciseDraft) (int, error) {
	if err := d.validate("workouts.draft.add"); err != nil {
		return -1, err
	}
	d.OrderIndex = len(l.items)
	l.items = append(l.items, d)
	return d.OrderIndex, nil
}

func (l *DraftList) checkIndex(op string, index int) error {
	if index < 0 || index >= len(l.items) {
		return apperr.Validation(op, "index", fmt.Sprintf("no exercise at position %d", index))
	}
	return nil
}

func (l *DraftList) Update(index int, patch ExercisePatch) error {
	const op = "workouts.draft.update"
	if err := l.checkIndex(op, index); err != nil {
		return err
	}
	updated := patch.apply(l.items[index])
	if err := updated.validate(op); err != nil {
		return err
	}
	l.items[index] = updated
	return nil
}

func (l *DraftList) Remove(index int) error {
	if err := l.checkIndex("workouts.draft.remove", index); err != nil {
		return err
	}
	l.items = append(l.items[:index], l.items[index+1:]...)
	l.renumber()
	return nil
}

// HasEmptyName reports whether any entry is still missing its name.
func (l *DraftList) HasEmptyName() bool {
	for _, d := range l.items {
		if strings.TrimSpace(d.Name) == "" {
			return true
		}
	}
	return false
}

// Snapshot returns a copy of the list, safe to hand to another goroutine.
func (l *DraftList) Snapshot() []ExerciseDraft {
	out := make([]ExerciseDraft, len(l.items))
	copy(out, l.items)
	return out
}
