/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package widget

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func vsplit(ratio float32, log *[]string) *Split[testMsg] {
	return VSplit[testMsg](newProbe("left", log), newProbe("right", log), ratio, resized).OnDrag(dragged)
}

func hsplit(ratio float32, log *[]string) *Split[testMsg] {
	return HSplit[testMsg](newProbe("top", log), newProbe("bottom", log), ratio, resized).OnDrag(dragged)
}

func TestSplitLayoutPartitionsExtent(t *testing.T) {
	h := mount(vsplit(1.0/3, nil), Sz(800, 600))
	l := h.layout()
	require.Equal(t, 2, l.NumChildren())
	assert.Equal(t, R(0, 0, 266, 600), l.Child(0).Bounds())
	assert.Equal(t, R(266, 0, 534, 600), l.Child(1).Bounds())

	h = mount(hsplit(0.7, nil), Sz(800, 600))
	l = h.layout()
	assert.Equal(t, R(0, 0, 800, 420), l.Child(0).Bounds())
	assert.Equal(t, R(0, 420, 800, 180), l.Child(1).Bounds())
}

func TestSplitLayoutClampsStoredRatio(t *testing.T) {
	h := mount(vsplit(0.05, nil), Sz(800, 600))
	assert.Equal(t, float32(160), h.layout().Child(0).Bounds().Width)

	h = mount(vsplit(0.99, nil), Sz(800, 600))
	assert.Equal(t, float32(720), h.layout().Child(0).Bounds().Width)
}

func TestSplitDividerRect(t *testing.T) {
	s := vsplit(0.5, nil)
	assert.Equal(t, R(397.5, 0, DividerThickness, 600), s.Divider(R(0, 0, 800, 600)))
	assert.Equal(t, R(497.5, 20, DividerThickness, 600), s.Divider(R(100, 20, 800, 600)))

	s = hsplit(0.7, nil)
	assert.Equal(t, R(0, 417.5, 800, DividerThickness), s.Divider(R(0, 0, 800, 600)))
}

func TestSplitDragLifecycle(t *testing.T) {
	var log []string
	h := mount(vsplit(0.5, &log), Sz(800, 600))

	msgs, st := h.press(400, 300)
	assert.Equal(t, Captured, st)
	assert.Equal(t, []testMsg{dragged(true)}, msgs)
	assert.Equal(t, Dragging, h.tree.Drag)
	assert.Empty(t, log, "a press on the divider must not reach the children")

	msgs, st = h.move(600, 300)
	assert.Equal(t, Captured, st)
	require.Len(t, msgs, 1)
	assert.Equal(t, "resize", msgs[0].name)
	assert.InDelta(t, 0.75, msgs[0].ratio, 1e-6)

	msgs, st = h.release(600, 300)
	assert.Equal(t, Captured, st)
	assert.Equal(t, []testMsg{dragged(false)}, msgs)
	assert.Equal(t, Idle, h.tree.Drag)

	msgs, _ = h.move(700, 300)
	assert.Empty(t, msgs, "moves after release must not resize")
}

func TestSplitWorkspaceDragScenario(t *testing.T) {
	cases := []struct {
		name string
		to   float32
		want float32
	}{
		{"inside the band", 300, 0.3},
		{"past the left edge", -50, DefaultMinRatio},
		{"past the right edge", 1200, DefaultMaxRatio},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var log []string
			h := mount(vsplit(0.8, &log), Sz(1000, 600))
			assert.Equal(t, float32(800), h.layout().Child(0).Bounds().Width)
			assert.Equal(t, float32(200), h.layout().Child(1).Bounds().Width)
			assert.Equal(t, R(797.5, 0, DividerThickness, 600), h.w.(*Split[testMsg]).Divider(R(0, 0, 1000, 600)))

			_, st := h.press(797.6, 300)
			require.Equal(t, Captured, st)
			msgs, _ := h.move(tc.to, 300)
			require.Len(t, msgs, 1)
			assert.Equal(t, resized(tc.want), msgs[0])
			assert.Empty(t, log)
		})
	}
}

func TestSplitPressOffDividerNeverDrags(t *testing.T) {
	h := mount(vsplit(0.8, nil), Sz(1000, 600))
	msgs, _ := h.press(500, 300)
	assert.Empty(t, msgs)
	for i := 0; i < 20; i++ {
		msgs, _ = h.move(500+float32(i)*10, 300)
		assert.Empty(t, msgs)
	}
	assert.Equal(t, Idle, h.tree.Drag)
}

func TestSplitDragVertical(t *testing.T) {
	h := mount(hsplit(0.7, nil), Sz(800, 600))
	_, st := h.press(10, 420)
	require.Equal(t, Captured, st)
	msgs, _ := h.move(10, 300)
	require.Len(t, msgs, 1)
	assert.InDelta(t, 0.5, msgs[0].ratio, 1e-6)
}

func TestSplitDragClampsToDefaultBounds(t *testing.T) {
	h := mount(vsplit(0.5, nil), Sz(800, 600))
	h.press(400, 300)

	msgs, _ := h.move(10, 300)
	require.Len(t, msgs, 1)
	assert.Equal(t, DefaultMinRatio, msgs[0].ratio)

	msgs, _ = h.move(-200, 300)
	assert.Equal(t, DefaultMinRatio, msgs[0].ratio)

	msgs, _ = h.move(790, 300)
	assert.Equal(t, DefaultMaxRatio, msgs[0].ratio)

	msgs, _ = h.move(5000, 300)
	assert.Equal(t, DefaultMaxRatio, msgs[0].ratio)
}

func TestSplitWithBounds(t *testing.T) {
	s := VSplit[testMsg](newProbe("a", nil), newProbe("b", nil), 0.5, resized).WithBounds(0.1, 0.9)
	h := mount(s, Sz(800, 600))
	h.press(400, 300)
	msgs, _ := h.move(0, 300)
	require.Len(t, msgs, 1)
	assert.InDelta(t, 0.1, msgs[0].ratio, 1e-6)

	lo, hi := VSplit[testMsg](nil, nil, 0.5, resized).WithBounds(0.8, 0.2).RatioBounds(800)
	assert.Equal(t, DefaultMinRatio, lo, "an inverted band is ignored")
	assert.Equal(t, DefaultMaxRatio, hi)
}

func TestSplitMinSizeFloor(t *testing.T) {
	s := VSplit[testMsg](newProbe("a", nil), newProbe("b", nil), 0.5, resized).
		WithBounds(0, 1).
		MinSize(100, 100)
	h := mount(s, Sz(400, 300))
	h.press(200, 150)

	msgs, _ := h.move(10, 150)
	assert.InDelta(t, 0.25, msgs[0].ratio, 1e-6)
	msgs, _ = h.move(390, 150)
	assert.InDelta(t, 0.75, msgs[0].ratio, 1e-6)

	// both minimums cannot fit: the configured band applies unchanged
	lo, hi := s.RatioBounds(150)
	assert.Equal(t, float32(0), lo)
	assert.Equal(t, float32(1), hi)
}

func TestSplitEmitsOnlyClampedRatios(t *testing.T) {
	h := mount(vsplit(0.5, nil), Sz(640, 480))
	h.press(320, 100)
	for x := float32(-100); x <= 740; x += 7 {
		msgs, _ := h.move(x, 100)
		require.Len(t, msgs, 1)
		r := msgs[0].ratio
		assert.GreaterOrEqual(t, r, DefaultMinRatio)
		assert.LessOrEqual(t, r, DefaultMaxRatio)
	}
}

func TestSplitZeroExtentDoesNotProduceNaN(t *testing.T) {
	h := mount(vsplit(0.5, nil), Sz(0, 0))
	h.tree.Drag = Dragging
	msgs, st := h.move(10, 10)
	assert.Equal(t, Captured, st)
	require.Len(t, msgs, 1)
	assert.False(t, math.IsNaN(float64(msgs[0].ratio)))
	assert.Equal(t, float32(0.5), msgs[0].ratio)
}

func TestSplitForwardsToChildrenOutsideDivider(t *testing.T) {
	var log []string
	h := mount(vsplit(0.5, &log), Sz(800, 600))

	msgs, st := h.press(100, 300)
	assert.Equal(t, Ignored, st)
	assert.Empty(t, msgs)
	assert.Equal(t, Idle, h.tree.Drag)
	assert.Equal(t, []string{"left:2"}, log)

	log = nil
	h.move(700, 300)
	assert.Equal(t, []string{"right:1"}, log)
}

func TestSplitFirstChildCaptureStopsForwarding(t *testing.T) {
	var log []string
	left := newProbe("left", &log)
	right := newProbe("right", &log)
	right.greedy = true
	h := mount(VSplit[testMsg](left, right, 0.5, resized), Sz(800, 600))

	h.press(100, 300)
	assert.Equal(t, []string{"left:2", "right:2"}, log)

	log = nil
	left.capture = true
	_, st := h.press(100, 300)
	assert.Equal(t, Captured, st)
	assert.Equal(t, []string{"left:2"}, log)
}

func TestSplitIgnoresOtherButtons(t *testing.T) {
	h := mount(vsplit(0.5, nil), Sz(800, 600))
	msgs, _ := h.send(Event{Kind: ButtonPressed, Button: ButtonRight, Position: Pt(400, 300)})
	assert.Empty(t, msgs)
	assert.Equal(t, Idle, h.tree.Drag)

	h.press(400, 300)
	msgs, _ = h.send(Event{Kind: ButtonReleased, Button: ButtonRight, Position: Pt(400, 300)})
	assert.Empty(t, msgs)
	assert.Equal(t, Dragging, h.tree.Drag, "only the left button ends a drag")
}

func TestSplitDragContinuesOutsideBounds(t *testing.T) {
	h := mount(vsplit(0.5, nil), Sz(800, 600))
	h.press(400, 300)
	msgs, st := h.move(400, 5000)
	assert.Equal(t, Captured, st)
	require.Len(t, msgs, 1)
	assert.InDelta(t, 0.5, msgs[0].ratio, 1e-6)
}

func TestSplitInteraction(t *testing.T) {
	h := mount(vsplit(0.5, nil), Sz(800, 600))
	assert.Equal(t, InteractionResizeHorizontal, h.interaction(400, 300))
	assert.Equal(t, InteractionPointer, h.interaction(100, 300))

	h = mount(hsplit(0.5, nil), Sz(800, 600))
	assert.Equal(t, InteractionResizeVertical, h.interaction(400, 300))
	assert.Equal(t, InteractionPointer, h.interaction(400, 500))
}

func TestSplitDrawsDividerLast(t *testing.T) {
	h := mount(vsplit(0.5, nil), Sz(800, 600))
	dl := h.draw()
	require.Len(t, dl.Ops, 3)
	assert.Equal(t, []string{"left", "right"}, dl.Texts())
	last := dl.Ops[2]
	assert.Equal(t, OpFill, last.Kind)
	assert.Equal(t, DividerColor, last.Color)
	assert.Equal(t, R(397.5, 0, DividerThickness, 600), last.Rect)
}

func TestSplitDragStateSurvivesRebuild(t *testing.T) {
	h := mount(vsplit(0.5, nil), Sz(800, 600))
	h.press(400, 300)
	msgs, _ := h.move(600, 300)

	h.rebuild(vsplit(msgs[0].ratio, nil), Sz(800, 600))
	assert.Equal(t, Dragging, h.tree.Drag)
	assert.Equal(t, float32(600), h.layout().Child(0).Bounds().Width)

	msgs, _ = h.release(600, 300)
	assert.Equal(t, []testMsg{dragged(false)}, msgs)

	// a different widget at the same position drops the state
	h.press(600, 300)
	h.rebuild(NewSpace[testMsg](1, 1), Sz(800, 600))
	assert.Equal(t, Idle, h.tree.Drag)
	assert.Equal(t, TagSpace, h.tree.Tag)
}

func TestNestedSplitsRouteToInnermostDivider(t *testing.T) {
	type tagged struct {
		which string
		ratio float32
	}
	var got []tagged
	inner := VSplit[testMsg](newProbe("main", nil), newProbe("files", nil), 0.8, func(r float32) testMsg {
		got = append(got, tagged{"inner", r})
		return resized(r)
	})
	outer := HSplit[testMsg](inner, newProbe("inspector", nil), 0.7, func(r float32) testMsg {
		got = append(got, tagged{"outer", r})
		return resized(r)
	})
	h := mount(outer, Sz(1000, 800))

	// inner divider sits at x=800 in the top 560px
	_, st := h.press(800, 100)
	require.Equal(t, Captured, st)
	assert.Equal(t, Dragging, h.tree.Children[0].Drag)
	assert.Equal(t, Idle, h.tree.Drag)
	h.move(500, 100)
	require.Len(t, got, 1)
	assert.Equal(t, "inner", got[0].which)
	assert.InDelta(t, 0.5, got[0].ratio, 1e-6)
	h.release(500, 100)

	got = nil
	_, st = h.press(300, 560)
	require.Equal(t, Captured, st)
	h.move(300, 400)
	require.Len(t, got, 1)
	assert.Equal(t, "outer", got[0].which)
	assert.InDelta(t, 0.5, got[0].ratio, 1e-6)

	assert.Equal(t, InteractionResizeVertical, h.interaction(300, 560))
	assert.Equal(t, InteractionResizeHorizontal, h.interaction(800, 100))
}

func TestClampRatio(t *testing.T) {
	nan := float32(math.NaN())
	assert.Equal(t, float32(0.2), ClampRatio(nan, 0.2, 0.9))
	assert.Equal(t, float32(0.2), ClampRatio(-1, 0.2, 0.9))
	assert.Equal(t, float32(0.9), ClampRatio(2, 0.2, 0.9))
	assert.Equal(t, float32(0.5), ClampRatio(0.5, 0.2, 0.9))
}
