/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package widget

import (
	"fmt"
	"image/color"
)

type testMsg struct {
	name  string
	ratio float32
	on    bool
}

func resized(r float32) testMsg { return testMsg{name: "resize", ratio: r} }
func dragged(on bool) testMsg { return testMsg{name: "drag", on: on} }

const tagProbe Tag = 200

// probe is a leaf that fills its space, records the pointer events it sees
// inside its bounds and draws its name.
type probe struct {
	name        string
	log         *[]string
	capture     bool
	greedy      bool // sees events outside its bounds too
	interaction Interaction
	fill        color.NRGBA
}

func newProbe(name string, log *[]string) *probe {
	return &probe{name: name, log: log, interaction: InteractionPointer}
}

func (p *probe) Stretch() (bool, bool) { return true, true }

func (p *probe) Layout(_ *Tree, limits Limits) Node { return NewNode(limits.Max) }

func (p *probe) Draw(_ *Tree, r Renderer, layout Layout, _ Cursor) {
	r.FillText(p.name, layout.Bounds().Min(), DefaultTextSize, p.fill)
}

func (p *probe) OnEvent(_ *Tree, ev Event, layout Layout, cursor Cursor, _ *Shell[testMsg]) Status {
	if !p.greedy && !cursor.In(layout.Bounds()) {
		return Ignored
	}
	if p.log != nil {
		*p.log = append(*p.log, fmt.Sprintf("%s:%d", p.name, ev.Kind))
	}
	if p.capture {
		return Captured
	}
	return Ignored
}

func (p *probe) Interaction(_ *Tree, layout Layout, cursor Cursor) Interaction {
	if cursor.In(layout.Bounds()) {
		return p.interaction
	}
	return InteractionNone
}

func (p *probe) Diff(tree *Tree) {
	tree.Adopt(tagProbe)
	tree.Children = nil
}

// harness drives a single widget without a Program.
type harness struct {
	w    Widget[testMsg]
	tree *Tree
	node Node
}

func mount(w Widget[testMsg], size Size) *harness {
	h := &harness{tree: &Tree{}}
	h.rebuild(w, size)
	return h
}

func (h *harness) rebuild(w Widget[testMsg], size Size) {
	h.w = w
	w.Diff(h.tree)
	h.node = w.Layout(h.tree, Limits{Max: size})
}

func (h *harness) layout() Layout { return NewLayout(&h.node) }

func (h *harness) send(ev Event) ([]testMsg, Status) {
	var shell Shell[testMsg]
	c := Cursor{Position: ev.Position, Available: ev.Kind != CursorLeft}
	st := h.w.OnEvent(h.tree, ev, h.layout(), c, &shell)
	return shell.Messages(), st
}

func (h *harness) press(x, y float32) ([]testMsg, Status) {
	return h.send(Event{Kind: ButtonPressed, Button: ButtonLeft, Position: Pt(x, y)})
}

func (h *harness) move(x, y float32) ([]testMsg, Status) {
	return h.send(Event{Kind: CursorMoved, Position: Pt(x, y)})
}

func (h *harness) release(x, y float32) ([]testMsg, Status) {
	return h.send(Event{Kind: ButtonReleased, Button: ButtonLeft, Position: Pt(x, y)})
}

func (h *harness) interaction(x, y float32) Interaction {
	return h.w.Interaction(h.tree, h.layout(), Cursor{Position: Pt(x, y), Available: true})
}

func (h *harness) draw() *DisplayList {
	var dl DisplayList
	h.w.Draw(h.tree, &dl, h.layout(), Cursor{})
	return &dl
}
