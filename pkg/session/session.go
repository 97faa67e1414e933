// Package session implements edit sessions over the dashboard document: a
// working copy that absorbs edits until they are committed into the live
// document or discarded.
package session

import (
	"errors"

	"tableflip.dev/cardboard/pkg/card"
)

var (
	ErrNotEditing     = errors.New("session: no edit in progress")
	ErrAlreadyEditing = errors.New("session: edit already in progress")
)

// Editor holds the live document and, while editing, its working copy.
// It is not safe for concurrent use.
type Editor struct {
	live    *card.Document
	working *card.Document
}

// New starts in the viewing state over live. A nil live starts from the
// empty document.
func New(live *card.Document) *Editor {
	if live == nil {
		live = card.New()
	}
	return &Editor{live: live}
}

// Live returns the canonical document. Writing to it while editing bypasses
// the session; call Refresh afterwards.
func (e *Editor) Live() *card.Document {
	return e.live
}

// Current returns the working copy while editing, else the live document.
func (e *Editor) Current() *card.Document {
	if e.working != nil {
		return e.working
	}
	return e.live
}

func (e *Editor) Editing() bool {
	return e.working != nil
}

// Begin clones the live document into a working copy.
func (e *Editor) Begin() error {
	if e.working != nil {
		return ErrAlreadyEditing
	}
	e.working = e.live.Clone()
	return nil
}

// Commit merges the working copy into the live document and ends the
// session.
func (e *Editor) Commit() error {
	if e.working == nil {
		return ErrNotEditing
	}
	Merge(e.live, e.working)
	e.working = nil
	return nil
}

// Discard drops the working copy.
func (e *Editor) Discard() error {
	if e.working == nil {
		return ErrNotEditing
	}
	e.working = nil
	return nil
}

// Refresh replaces the working copy with a fresh clone of the live
// document, so a commit does not undo changes made to live directly. It
// reports whether a session was active.
func (e *Editor) Refresh() bool {
	if e.working == nil {
		return false
	}
	e.working = e.live.Clone()
	return true
}

// Replace swaps the live document, refreshing an active session.
func (e *Editor) Replace(live *card.Document) {
	e.live = live
	e.Refresh()
}
