/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package widget is a small retained-mode element toolkit. A view function
// builds a fresh tree of Widget descriptions for every render pass; the
// Runtime reconciles it against a persistent Tree of per-instance state, lays
// it out, routes input events through it and records its drawing.
package widget

import "image/color"

// Widget is the capability set every element provides. tree is the
// retained node that belongs to this widget instance; it is owned by the
// Runtime and survives rebuilds as long as Diff keeps it.
type Widget[M any] interface {
	// Layout returns the node of the widget, sized within limits. Child
	// nodes are positioned relative to the returned node.
	Layout(tree *Tree, limits Limits) Node
	// Draw paints the widget; layout carries absolute bounds.
	Draw(tree *Tree, r Renderer, layout Layout, cursor Cursor)
	// OnEvent reacts to ev and may publish messages to shell.
	OnEvent(tree *Tree, ev Event, layout Layout, cursor Cursor, shell *Shell[M]) Status
	// Interaction reports the cursor affordance at cursor.
	Interaction(tree *Tree, layout Layout, cursor Cursor) Interaction
	// Diff reconciles tree with this description before layout.
	Diff(tree *Tree)
}

// Stretcher is implemented by widgets that claim the space left over by
// their siblings in a Row or Column.
type Stretcher interface {
	Stretch() (width, height bool)
}

func stretchOf[M any](w Widget[M]) (bool, bool) {
	if s, ok := w.(Stretcher); ok {
		return s.Stretch()
	}
	return false, false
}

// Tag identifies the kind of widget a retained node belongs to.
type Tag uint8

const (
	TagNone Tag = iota
	TagText
	TagSpace
	TagButton
	TagInput
	TagContainer
	TagColumn
	TagRow
	TagScroll
	TagSplit
	TagCode
)

// DragState tracks a split divider gesture.
type DragState uint8

const (
	Idle DragState = iota
	Dragging
)

func (d DragState) String() string {
	if d == Dragging {
		return "dragging"
	}
	return "idle"
}

// ScrollState is the retained offset of a Scrollable.
type ScrollState struct {
	Offset float32
}

// InputState is the retained focus and caret of a TextInput.
type InputState struct {
	Focused bool
	Caret   int // in runes
}

// ButtonState remembers a press that has not been released yet.
type ButtonState struct {
	Pressed bool
}

// Tree is the retained state of one widget instance. Each stateful widget
// kind has its own typed field; a node only ever uses the one matching Tag.
type Tree struct {
	Tag      Tag
	Drag     DragState
	Scroll   ScrollState
	Input    InputState
	Button   ButtonState
	Children []*Tree
}

// Adopt makes t belong to a widget of kind tag. A node that belonged to a
// different kind is reset, dropping its state and children. It reports
// whether a reset happened.
func (t *Tree) Adopt(tag Tag) bool {
	if t.Tag == tag {
		return false
	}
	*t = Tree{Tag: tag}
	return true
}

// DiffChildren reconciles t.Children positionally against children, growing
// or truncating the slice so that len(t.Children) == len(children).
func DiffChildren[M any](t *Tree, children []Widget[M]) {
	if len(t.Children) > len(children) {
		t.Children = t.Children[:len(children)]
	}
	for len(t.Children) < len(children) {
		t.Children = append(t.Children, &Tree{})
	}
	for i, c := range children {
		c.Diff(t.Children[i])
	}
}

// Node is a laid out widget. Bounds are relative to the parent node.
type Node struct {
	Bounds   Rect
	Children []Node
}

// NewNode returns a childless node of the given size at the origin.
func NewNode(s Size) Node { return Node{Bounds: Rect{Width: s.Width, Height: s.Height}} }

// Move positions the node within its parent.
func (n *Node) Move(p Point) {
	n.Bounds.X = p.X
	n.Bounds.Y = p.Y
}

// Size returns the node's size.
func (n Node) Size() Size { return n.Bounds.Size() }

// Layout is a read-only view of a Node with absolute coordinates.
type Layout struct {
	node   *Node
	offset Point
}

// NewLayout wraps the root node.
func NewLayout(n *Node) Layout { return Layout{node: n} }

// Bounds returns the absolute bounds of the node.
func (l Layout) Bounds() Rect {
	if l.node == nil {
		return Rect{}
	}
	return l.node.Bounds.Translate(l.offset)
}

// NumChildren returns the number of child layouts.
func (l Layout) NumChildren() int {
	if l.node == nil {
		return 0
	}
	return len(l.node.Children)
}

// Child returns the i-th child layout.
func (l Layout) Child(i int) Layout {
	b := l.Bounds()
	return Layout{node: &l.node.Children[i], offset: b.Min()}
}

// EventKind enumerates the input events the runtime delivers.
type EventKind uint8

const (
	CursorMoved EventKind = iota + 1
	ButtonPressed
	ButtonReleased
	CursorLeft
	WheelScrolled
	KeyPressed
	RuneTyped
)

// MouseButton identifies a pointer button.
type MouseButton uint8

const (
	ButtonLeft MouseButton = iota + 1
	ButtonRight
	ButtonMiddle
)

// Key identifies the non-printable keys widgets react to.
type Key uint8

const (
	KeyNone Key = iota
	KeyEnter
	KeyEscape
	KeyBackspace
	KeyDelete
	KeyTab
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyHome
	KeyEnd
)

// Event is one input event. Position is set for pointer events, Delta for
// wheel events, Key for KeyPressed and Rune for RuneTyped.
type Event struct {
	Kind     EventKind
	Position Point
	Button   MouseButton
	Delta    Point
	Key      Key
	Rune     rune
}

// IsPointer reports whether the event comes from the pointing device.
func (e Event) IsPointer() bool {
	switch e.Kind {
	case CursorMoved, ButtonPressed, ButtonReleased, CursorLeft, WheelScrolled:
		return true
	}
	return false
}

// Cursor is the last known pointer position.
type Cursor struct {
	Position  Point
	Available bool
}

// In reports whether the cursor is known and inside r.
func (c Cursor) In(r Rect) bool { return c.Available && r.Contains(c.Position) }

// Status tells the parent whether an event was consumed.
type Status uint8

const (
	Ignored Status = iota
	Captured
)

// Interaction is a cursor affordance. Larger values are more specific and
// win when siblings disagree.
type Interaction uint8

const (
	InteractionNone Interaction = iota
	InteractionIdle
	InteractionText
	InteractionPointer
	InteractionResizeHorizontal
	InteractionResizeVertical
)

func (i Interaction) String() string {
	switch i {
	case InteractionIdle:
		return "idle"
	case InteractionText:
		return "text"
	case InteractionPointer:
		return "pointer"
	case InteractionResizeHorizontal:
		return "resize-horizontal"
	case InteractionResizeVertical:
		return "resize-vertical"
	}
	return "none"
}

// Shell collects the messages published while an event is handled.
type Shell[M any] struct {
	messages []M
}

// Publish queues m for the update function.
func (s *Shell[M]) Publish(m M) { s.messages = append(s.messages, m) }

// Messages returns the queued messages in publish order.
func (s *Shell[M]) Messages() []M { return s.messages }

// Renderer receives drawing commands in painter's order.
type Renderer interface {
	FillQuad(r Rect, c color.NRGBA)
	StrokeQuad(r Rect, width float32, c color.NRGBA)
	// FillText draws text with its top-left corner at p.
	FillText(text string, p Point, size float32, c color.NRGBA)
	PushClip(r Rect)
	PopClip()
}
