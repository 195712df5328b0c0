// Package board holds the retained element tree the terminal view is
// painted from: page sections, navigation items, addressable text and
// table elements, and chart canvases. It is owned by the UI event loop and
// is not safe for concurrent mutation; only the ready signal may be
// observed from other goroutines.
package board

import (
	"fmt"
	"sync"
)

// TargetMissingError reports a lookup of an element id that does not exist.
type TargetMissingError struct {
	Kind string
	ID   string
}

func (e *TargetMissingError) Error() string {
	return fmt.Sprintf("board: %s %q not found", e.Kind, e.ID)
}

// Section is a page container. Exactly one section is visible after a
// navigation completes.
type Section struct {
	ID      string
	Visible bool
}

// NavItem is a sidebar entry pointing at a section.
type NavItem struct {
	Target string
	Label  string
	Active bool
}

// Element is an addressable piece of content.
type Element struct {
	ID    string
	Text  string
	Class string
	Rows  [][]string
}

// Canvas is a drawing surface charts bind to. Canvases have identity: a
// clone shares the id but is a different surface.
type Canvas struct {
	ID     string
	serial uint64
}

// Serial distinguishes a canvas from its clones.
func (c *Canvas) Serial() uint64 { return c.serial }

// Board is the element tree.
type Board struct {
	sections []*Section
	nav      []*NavItem
	elements map[string]*Element
	canvases map[string]*Canvas

	nextSerial uint64
	mutations  int

	ready     chan struct{}
	readyOnce sync.Once
}

// New returns an empty board.
func New() *Board {
	return &Board{
		elements: make(map[string]*Element),
		canvases: make(map[string]*Canvas),
		ready:    make(chan struct{}),
	}
}

// AddSection registers a page section, hidden.
func (b *Board) AddSection(id string) {
	b.sections = append(b.sections, &Section{ID: id})
}

// AddNav registers a navigation item for the section target.
func (b *Board) AddNav(target, label string) {
	b.nav = append(b.nav, &NavItem{Target: target, Label: label})
}

// AddElement registers an element with initial text.
func (b *Board) AddElement(id, text string) *Element {
	el := &Element{ID: id, Text: text}
	b.elements[id] = el
	return el
}

// AddCanvas registers a chart canvas.
func (b *Board) AddCanvas(id string) *Canvas {
	b.nextSerial++
	c := &Canvas{ID: id, serial: b.nextSerial}
	b.canvases[id] = c
	return c
}

// Sections returns the sections in registration order.
func (b *Board) Sections() []*Section { return b.sections }

// Nav returns the navigation items in registration order.
func (b *Board) Nav() []*NavItem { return b.nav }

// Mutations counts every visible change made to the board.
func (b *Board) Mutations() int { return b.mutations }

// HideAll hides every section.
func (b *Board) HideAll() {
	for _, s := range b.sections {
		s.Visible = false
	}
	b.mutations++
}

// Show makes the section visible.
func (b *Board) Show(id string) error {
	for _, s := range b.sections {
		if s.ID == id {
			s.Visible = true
			b.mutations++
			return nil
		}
	}
	return &TargetMissingError{Kind: "section", ID: id}
}

// VisibleSections returns the ids of visible sections.
func (b *Board) VisibleSections() []string {
	var out []string
	for _, s := range b.sections {
		if s.Visible {
			out = append(out, s.ID)
		}
	}
	return out
}

// SetActiveNav clears the active marker from every item and applies it to
// the item targeting id. The clear happens even when id has no item.
func (b *Board) SetActiveNav(id string) error {
	found := false
	for _, n := range b.nav {
		n.Active = n.Target == id
		found = found || n.Active
	}
	b.mutations++
	if !found {
		return &TargetMissingError{Kind: "nav item", ID: id}
	}
	return nil
}

// Element looks up an element.
func (b *Board) Element(id string) (*Element, error) {
	el, ok := b.elements[id]
	if !ok {
		return nil, &TargetMissingError{Kind: "element", ID: id}
	}
	return el, nil
}

// Text returns an element's text, or "" when it does not exist.
func (b *Board) Text(id string) string {
	if el, ok := b.elements[id]; ok {
		return el.Text
	}
	return ""
}

// Class returns an element's class, or "" when it does not exist.
func (b *Board) Class(id string) string {
	if el, ok := b.elements[id]; ok {
		return el.Class
	}
	return ""
}

// Rows returns an element's rows, or nil when it does not exist.
func (b *Board) Rows(id string) [][]string {
	if el, ok := b.elements[id]; ok {
		return el.Rows
	}
	return nil
}

// SetText replaces an element's text.
func (b *Board) SetText(id, text string) error {
	el, err := b.Element(id)
	if err != nil {
		return err
	}
	el.Text = text
	b.mutations++
	return nil
}

// SetClass replaces an element's class.
func (b *Board) SetClass(id, class string) error {
	el, err := b.Element(id)
	if err != nil {
		return err
	}
	el.Class = class
	b.mutations++
	return nil
}

// SetRows replaces an element's rows.
func (b *Board) SetRows(id string, rows [][]string) error {
	el, err := b.Element(id)
	if err != nil {
		return err
	}
	el.Rows = rows
	b.mutations++
	return nil
}

// Canvas looks up a canvas.
func (b *Board) Canvas(id string) (*Canvas, error) {
	c, ok := b.canvases[id]
	if !ok {
		return nil, &TargetMissingError{Kind: "canvas", ID: id}
	}
	return c, nil
}

// CloneCanvas returns a fresh surface with the same id, not yet attached.
func (b *Board) CloneCanvas(c *Canvas) *Canvas {
	b.nextSerial++
	return &Canvas{ID: c.ID, serial: b.nextSerial}
}

// ReplaceCanvas swaps old for replacement in the tree. old must still be
// the attached canvas for its id.
func (b *Board) ReplaceCanvas(old, replacement *Canvas) error {
	cur, ok := b.canvases[old.ID]
	if !ok || cur != old {
		return &TargetMissingError{Kind: "canvas", ID: old.ID}
	}
	b.canvases[old.ID] = replacement
	b.mutations++
	return nil
}

// Ready is closed once the board has been mounted.
func (b *Board) Ready() <-chan struct{} { return b.ready }

// MarkReady closes the ready channel. Later calls are no-ops.
func (b *Board) MarkReady() {
	b.readyOnce.Do(func() { close(b.ready) })
}
