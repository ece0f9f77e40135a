/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package snap

import (
	"context"
	"log/slog"

	applog "imagemarker/internal/log"
	"imagemarker/internal/scene"
	"imagemarker/internal/vector"
)

// DragMoveHandler returns the per-tick handler for a drag on stage. Each call
// redraws the guides on overlay and snaps target onto them.
func DragMoveHandler(stage *scene.Stage, overlay *scene.Layer) func(target scene.Node) {
	style := DefaultStyle()
	return func(target scene.Node) {
		tick(stage, overlay, target, vector.GuideThreshold, style)
	}
}

// DragEndHandler returns the handler for the end of a drag. It only removes
// the guides; the last tick's correction stands.
func DragEndHandler(overlay *scene.Layer) func() {
	return func() { ClearGuides(overlay) }
}

// tick runs one drag-move step and returns the guides it applied.
func tick(stage *scene.Stage, overlay *scene.Layer, target scene.Node, threshold float32, style Style) []vector.Guide {
	ClearGuides(overlay)
	if target == nil {
		return nil
	}
	w, h := stage.Size()
	stops := vector.CollectBounds(w, h, stage.SnapTargets(), target)
	edges := vector.ExtractEdges(target)
	guides := vector.SelectGuidesWithin(stops, edges, threshold)
	if len(guides) == 0 {
		return nil
	}
	RenderGuides(overlay, guides, style)
	pos := target.AbsolutePosition()
	snapped := vector.ApplyGuides(pos, guides)
	target.SetAbsolutePosition(snapped)

	l := applog.WithComponent("snap")
	if l.Enabled(context.Background(), slog.LevelDebug) {
		attrs := []any{slog.String("node", target.ID()), slog.Int("guides", len(guides))}
		for _, g := range guides {
			attrs = append(attrs, slog.Group(g.Orientation.String(),
				slog.Float64("line", float64(g.LineGuide)),
				slog.String("snap", g.Snap.String())))
		}
		l.Debug("snapped", attrs...)
	}
	return guides
}

// Options tunes a Coordinator.
type Options struct {
	Enabled   bool
	Threshold float32
	Style     Style
}

// DefaultOptions enables snapping with the standard threshold and style.
func DefaultOptions() Options {
	return Options{Enabled: true, Threshold: vector.GuideThreshold, Style: DefaultStyle()}
}

// Coordinator owns the overlay layer's guide lines for one stage. At most one
// drag session is active at a time. It is driven from the UI event loop and
// is not safe for concurrent use.
type Coordinator struct {
	stage   *scene.Stage
	overlay *scene.Layer
	opts    Options
	active  *Session
}

func NewCoordinator(stage *scene.Stage, overlay *scene.Layer, opts Options) *Coordinator {
	if opts.Threshold <= 0 {
		opts.Threshold = vector.GuideThreshold
	}
	if opts.Style.Extent <= 0 {
		opts.Style.Extent = DefaultExtent
	}
	return &Coordinator{stage: stage, overlay: overlay, opts: opts}
}

func (c *Coordinator) Options() Options      { return c.opts }
func (c *Coordinator) Overlay() *scene.Layer { return c.overlay }
func (c *Coordinator) Active() *Session      { return c.active }

// SetEnabled toggles snapping. Disabling clears any visible guides.
func (c *Coordinator) SetEnabled(v bool) {
	c.opts.Enabled = v
	if !v {
		ClearGuides(c.overlay)
	}
}

// Begin starts a drag of target. A session still open for another node is
// ended first, so its guides never leak into the new drag.
func (c *Coordinator) Begin(target scene.Node) *Session {
	if c.active != nil {
		if c.active.target == target {
			return c.active
		}
		c.active.End()
	}
	s := &Session{c: c, target: target, start: target.AbsolutePosition()}
	c.active = s
	applog.WithComponent("snap").Debug("drag begin", slog.String("node", target.ID()))
	return s
}

// Move runs a tick for target, starting a session when none is open.
func (c *Coordinator) Move(target scene.Node) []vector.Guide {
	return c.Begin(target).Move()
}

// End finishes the active drag, if any.
func (c *Coordinator) End() {
	if c.active != nil {
		c.active.End()
	}
}

// Cancel aborts the active drag, if any.
func (c *Coordinator) Cancel() {
	if c.active != nil {
		c.active.Cancel()
	}
}

// Do runs fn inside a drag session of target. The session is ended when fn
// returns, fails or panics; a session fn already cancelled stays cancelled.
func (c *Coordinator) Do(target scene.Node, fn func(*Session) error) error {
	s := c.Begin(target)
	defer s.End()
	return fn(s)
}

// Session is one drag of one node. Guides exist on the overlay only while a
// session is open.
type Session struct {
	c      *Coordinator
	target scene.Node
	start  vector.Pt
	ticks  int
	last   []vector.Guide
	done   bool
}

func (s *Session) Target() scene.Node { return s.target }
func (s *Session) Ticks() int         { return s.ticks }
func (s *Session) Done() bool         { return s.done }

// Guides returns the guides applied by the latest tick.
func (s *Session) Guides() []vector.Guide { return append([]vector.Guide(nil), s.last...) }

// Move handles one drag-move tick. It is a no-op after End or Cancel.
func (s *Session) Move() []vector.Guide {
	if s.done {
		return nil
	}
	s.ticks++
	if !s.c.opts.Enabled {
		ClearGuides(s.c.overlay)
		s.last = nil
		return nil
	}
	s.last = tick(s.c.stage, s.c.overlay, s.target, s.c.opts.Threshold, s.c.opts.Style)
	return s.last
}

// End removes the guides and closes the session. Calling it again is harmless.
func (s *Session) End() {
	if s.done {
		return
	}
	s.finish()
	applog.WithComponent("snap").Debug("drag end", slog.String("node", s.target.ID()), slog.Int("ticks", s.ticks))
}

// Cancel removes the guides, puts the node back where the drag started and
// closes the session.
func (s *Session) Cancel() {
	if s.done {
		return
	}
	s.target.SetAbsolutePosition(s.start)
	s.finish()
	applog.WithComponent("snap").Debug("drag cancel", slog.String("node", s.target.ID()))
}

func (s *Session) finish() {
	s.done = true
	s.last = nil
	ClearGuides(s.c.overlay)
	if s.c.active == s {
		s.c.active = nil
	}
}
