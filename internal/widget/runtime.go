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
	"log/slog"

	applog "tnetdispatch/internal/log"
)

// Cmd is deferred work requested by an update. It runs after the update
// returns and its message, if any, is fed back through the update function.
type Cmd[M any] func() M

// Program couples a pure update function with a view of the state.
type Program[S, M any] struct {
	Update func(S, M) (S, Cmd[M])
	View   func(S) Widget[M]
}

// maxCmdChain bounds how many commands a single message may trigger in a row.
const maxCmdChain = 16

// Runtime owns the state and the retained tree of a Program and drives the
// build, diff, layout, event and draw cycle. It is not safe for concurrent use;
// hosts call it from their UI goroutine.
type Runtime[S, M any] struct {
	program Program[S, M]
	state   S
	root    Widget[M]
	tree    *Tree
	node    Node
	size    Size
	cursor  Cursor
	log     *slog.Logger
}

// NewRuntime builds the first view of initial at the given window size.
func NewRuntime[S, M any](p Program[S, M], initial S, size Size) *Runtime[S, M] {
	r := &Runtime[S, M]{
		program: p,
		state:   initial,
		tree:    &Tree{},
		size:    size,
		log:     applog.WithComponent("runtime"),
	}
	r.rebuild()
	return r
}

func (r *Runtime[S, M]) rebuild() {
	r.root = r.program.View(r.state)
	r.root.Diff(r.tree)
	r.relayout()
}

func (r *Runtime[S, M]) relayout() {
	r.node = r.root.Layout(r.tree, Limits{Max: r.size})
}

// Resize lays the current view out at a new window size.
func (r *Runtime[S, M]) Resize(s Size) {
	if s == r.size {
		return
	}
	r.size = s
	r.relayout()
}

// Dispatch routes ev through the widget tree, applies every published
// message and rebuilds the view. It reports whether any message was applied.
func (r *Runtime[S, M]) Dispatch(ev Event) bool {
	switch ev.Kind {
	case CursorMoved, ButtonPressed, ButtonReleased:
		r.cursor = Cursor{Position: ev.Position, Available: true}
	case CursorLeft:
		r.cursor = Cursor{}
	}
	var shell Shell[M]
	r.root.OnEvent(r.tree, ev, r.Layout(), r.cursor, &shell)
	msgs := shell.Messages()
	for _, m := range msgs {
		r.apply(m)
	}
	if len(msgs) > 0 {
		r.rebuild()
	} else {
		// retained state such as a scroll offset may have changed
		r.relayout()
	}
	return len(msgs) > 0
}

// Send applies m as if a widget had published it.
func (r *Runtime[S, M]) Send(m M) {
	r.apply(m)
	r.rebuild()
}

func (r *Runtime[S, M]) apply(m M) {
	for i := 0; i < maxCmdChain; i++ {
		r.log.Debug("update", slog.String("msg", fmt.Sprintf("%T", m)))
		var cmd Cmd[M]
		r.state, cmd = r.program.Update(r.state, m)
		if cmd == nil {
			return
		}
		m = cmd()
		if any(m) == nil {
			return
		}
	}
	r.log.Warn("command chain truncated", slog.Int("limit", maxCmdChain))
}

// Draw paints the current view onto rd.
func (r *Runtime[S, M]) Draw(rd Renderer) {
	r.root.Draw(r.tree, rd, r.Layout(), r.cursor)
}

// Interaction is the cursor affordance at the current cursor position.
func (r *Runtime[S, M]) Interaction() Interaction {
	return r.root.Interaction(r.tree, r.Layout(), r.cursor)
}

func (r *Runtime[S, M]) State() S { return r.state }
func (r *Runtime[S, M]) Tree() *Tree { return r.tree }
func (r *Runtime[S, M]) Size() Size { return r.size }
func (r *Runtime[S, M]) Cursor() Cursor { return r.cursor }

// Layout returns the absolute layout of the root node.
func (r *Runtime[S, M]) Layout() Layout { return NewLayout(&r.node) }
