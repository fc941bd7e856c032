//go:build fyne

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package ui

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	fwidget "fyne.io/fyne/v2/widget"

	"tnetdispatch/internal/app"
	"tnetdispatch/internal/export"
	"tnetdispatch/internal/widget"
)

// Surface hosts the dispatcher runtime inside a Fyne canvas. Fyne input
// events are translated to widget events and every frame is painted through
// the export rasterizer, so text metrics match the ones used for layout.
type Surface struct {
	fwidget.BaseWidget

	rt       *widget.Runtime[app.State, app.Message]
	onChange func(app.State)
	pressed  widget.MouseButton
	last     widget.Point
	focused  bool
}

// NewSurface builds the first view of s at size. onChange runs after every
// event that applied at least one message.
func NewSurface(s app.State, size fyne.Size, onChange func(app.State)) *Surface {
	sf := &Surface{
		rt:       widget.NewRuntime(app.Program(), s, widget.Sz(size.Width, size.Height)),
		onChange: onChange,
	}
	sf.ExtendBaseWidget(sf)
	return sf
}

// State returns the current application state.
func (s *Surface) State() app.State { return s.rt.State() }

// Send applies m on the UI goroutine. Other goroutines wrap it in fyne.Do.
func (s *Surface) Send(m app.Message) {
	s.rt.Send(m)
	s.changed()
}

func (s *Surface) changed() {
	if s.onChange != nil {
		s.onChange(s.rt.State())
	}
	s.Refresh()
}

func (s *Surface) dispatch(ev widget.Event) {
	if s.rt.Dispatch(ev) {
		s.changed()
		return
	}
	s.Refresh()
}

// Resize keeps the runtime layout in step with the widget size.
func (s *Surface) Resize(size fyne.Size) {
	s.rt.Resize(widget.Sz(size.Width, size.Height))
	s.BaseWidget.Resize(size)
}

func (s *Surface) MinSize() fyne.Size { return fyne.NewSize(640, 480) }

// render produces one frame at the requested pixel size.
func (s *Surface) render(w, h int) image.Image {
	size := s.rt.Size()
	scale := 1.0
	if size.Width > 0 && w > 0 {
		scale = float64(w) / float64(size.Width)
	}
	r := export.NewRaster(size, scale, widget.Background)
	s.rt.Draw(r)
	return r.Image()
}

func (s *Surface) CreateRenderer() fyne.WidgetRenderer {
	return &surfaceRenderer{s: s, raster: canvas.NewRaster(s.render)}
}

// pointer events

func toPoint(p fyne.Position) widget.Point { return widget.Pt(p.X, p.Y) }

func toButton(b desktop.MouseButton) widget.MouseButton {
	switch b {
	case desktop.MouseButtonSecondary:
		return widget.ButtonRight
	case desktop.MouseButtonTertiary:
		return widget.ButtonMiddle
	}
	return widget.ButtonLeft
}

func (s *Surface) MouseDown(ev *desktop.MouseEvent) {
	if c := fyne.CurrentApp().Driver().CanvasForObject(s); c != nil && !s.focused {
		c.Focus(s)
	}
	s.pressed = toButton(ev.Button)
	s.last = toPoint(ev.Position)
	s.dispatch(widget.Event{Kind: widget.ButtonPressed, Button: s.pressed, Position: s.last})
}

func (s *Surface) MouseUp(ev *desktop.MouseEvent) {
	if s.pressed == 0 {
		return
	}
	s.pressed = 0
	s.last = toPoint(ev.Position)
	s.dispatch(widget.Event{Kind: widget.ButtonReleased, Button: toButton(ev.Button), Position: s.last})
}

func (s *Surface) MouseIn(ev *desktop.MouseEvent) { s.MouseMoved(ev) }

func (s *Surface) MouseMoved(ev *desktop.MouseEvent) {
	s.last = toPoint(ev.Position)
	s.dispatch(widget.Event{Kind: widget.CursorMoved, Position: s.last})
}

func (s *Surface) MouseOut() {
	if s.pressed != 0 {
		// a drag keeps tracking outside the window
		return
	}
	s.dispatch(widget.Event{Kind: widget.CursorLeft})
}

// Dragged arrives instead of MouseMoved while a button is held.
func (s *Surface) Dragged(ev *fyne.DragEvent) {
	s.last = toPoint(ev.Position)
	s.dispatch(widget.Event{Kind: widget.CursorMoved, Position: s.last})
}

// DragEnd releases the button when the driver reports the end of a drag
// without a matching MouseUp.
func (s *Surface) DragEnd() {
	if s.pressed == 0 {
		return
	}
	b := s.pressed
	s.pressed = 0
	s.dispatch(widget.Event{Kind: widget.ButtonReleased, Button: b, Position: s.last})
}

func (s *Surface) Scrolled(ev *fyne.ScrollEvent) {
	s.last = toPoint(ev.Position)
	s.dispatch(widget.Event{Kind: widget.WheelScrolled, Position: s.last, Delta: widget.Pt(ev.Scrolled.DX, ev.Scrolled.DY)})
}

func (s *Surface) Cursor() desktop.Cursor {
	switch s.rt.Interaction() {
	case widget.InteractionResizeHorizontal:
		return desktop.HResizeCursor
	case widget.InteractionResizeVertical:
		return desktop.VResizeCursor
	case widget.InteractionText:
		return desktop.TextCursor
	case widget.InteractionPointer:
		return desktop.PointerCursor
	}
	return desktop.DefaultCursor
}

// keyboard

var keyMap = map[fyne.KeyName]widget.Key{
	fyne.KeyReturn:    widget.KeyEnter,
	fyne.KeyEnter:     widget.KeyEnter,
	fyne.KeyEscape:    widget.KeyEscape,
	fyne.KeyBackspace: widget.KeyBackspace,
	fyne.KeyDelete:    widget.KeyDelete,
	fyne.KeyTab:       widget.KeyTab,
	fyne.KeyLeft:      widget.KeyLeft,
	fyne.KeyRight:     widget.KeyRight,
	fyne.KeyUp:        widget.KeyUp,
	fyne.KeyDown:      widget.KeyDown,
	fyne.KeyHome:      widget.KeyHome,
	fyne.KeyEnd:       widget.KeyEnd,
}

func (s *Surface) FocusGained() { s.focused = true }
func (s *Surface) FocusLost() { s.focused = false }

func (s *Surface) TypedRune(r rune) {
	s.dispatch(widget.Event{Kind: widget.RuneTyped, Rune: r})
}

func (s *Surface) TypedKey(ev *fyne.KeyEvent) {
	k, ok := keyMap[ev.Name]
	if !ok {
		return
	}
	s.dispatch(widget.Event{Kind: widget.KeyPressed, Key: k})
}

type surfaceRenderer struct {
	s      *Surface
	raster *canvas.Raster
}

func (r *surfaceRenderer) Destroy() {}

func (r *surfaceRenderer) Layout(size fyne.Size) {
	r.raster.Resize(size)
	r.raster.Move(fyne.NewPos(0, 0))
}

func (r *surfaceRenderer) MinSize() fyne.Size { return r.s.MinSize() }

func (r *surfaceRenderer) Objects() []fyne.CanvasObject { return []fyne.CanvasObject{r.raster} }

func (r *surfaceRenderer) Refresh() { canvas.Refresh(r.raster) }

var (
	_ fyne.Widget        = (*Surface)(nil)
	_ fyne.Draggable     = (*Surface)(nil)
	_ fyne.Scrollable    = (*Surface)(nil)
	_ fyne.Focusable     = (*Surface)(nil)
	_ desktop.Mouseable  = (*Surface)(nil)
	_ desktop.Hoverable  = (*Surface)(nil)
	_ desktop.Cursorable = (*Surface)(nil)
)
