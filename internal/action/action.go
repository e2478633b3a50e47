// Package action defines the messages components exchange through the
// dispatcher. A component never calls another one directly: it returns an
// Action and the dispatcher hands that Action to every component.
package action

import "verse-tui/internal/corpus"

// Action is something that happened. Only the types in this package
// implement it.
type Action interface {
	action()
}

// OpenPassage asks the reader to show a chapter.
type OpenPassage struct {
	Key corpus.ChapterKey
}

// Reader motions.
type (
	MoveRow      struct{ Delta int }
	MoveColumn   struct{ Delta int }
	ToggleVisual struct{}
	Yank         struct{}
)

// Index navigation and filtering.
type (
	MoveSelection   struct{ Delta int }
	StartFilter     struct{}
	FilterInput     struct{ Text string }
	FilterBackspace struct{}
	EndFilter       struct{}
)

// Notice carries a line for the status bar.
type Notice struct {
	Text string
}

func (OpenPassage) action()     {}
func (MoveRow) action()         {}
func (MoveColumn) action()      {}
func (ToggleVisual) action()    {}
func (Yank) action()            {}
func (MoveSelection) action()   {}
func (StartFilter) action()     {}
func (FilterInput) action()     {}
func (FilterBackspace) action() {}
func (EndFilter) action()       {}
func (Notice) action()          {}
