/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package scene

import (
	"errors"
	"image"
	"strings"
	"testing"

	"imagemarker/internal/textlayout"
	"imagemarker/internal/vector"
)

func blank(w, h int) image.Image { return image.NewRGBA(image.Rect(0, 0, w, h)) }

func TestLayer_AddIsIdempotentAndRemove(t *testing.T) {
	l := NewLayer("test")
	f := NewFrame(vector.Pt{}, 10, 10, vector.Stroke{})
	l.Add(f)
	l.Add(f)
	l.Add(nil)
	if l.Len() != 1 {
		t.Fatalf("expected 1 node, got %d", l.Len())
	}
	if got, ok := l.Lookup(f.ID()); !ok || got != f {
		t.Fatalf("lookup by id failed")
	}
	if !l.Remove(f) || l.Remove(f) {
		t.Fatalf("remove should succeed once")
	}
	if l.Len() != 0 {
		t.Fatalf("expected empty layer")
	}
}

func TestLayer_DestroyAllOnlyRemovesCategory(t *testing.T) {
	l := NewLayer("overlay")
	keep := NewFrame(vector.Pt{}, 10, 10, vector.Stroke{})
	l.Add(NewGuideLine(vector.Vertical, 100, vector.Stroke{}))
	l.Add(keep)
	l.Add(NewGuideLine(vector.Horizontal, 100, vector.Stroke{}))
	if n := l.DestroyAll(CategoryGuide); n != 2 {
		t.Fatalf("expected 2 removed, got %d", n)
	}
	if l.Count(CategoryGuide) != 0 || l.Len() != 1 || l.Nodes()[0] != keep {
		t.Fatalf("unexpected contents after destroy: %v", l.Nodes())
	}
	if n := l.DestroyAll(CategoryGuide); n != 0 {
		t.Fatalf("second destroy removed %d", n)
	}
}

func TestNodeIDsArePrefixedAndUnique(t *testing.T) {
	a := NewFrame(vector.Pt{}, 1, 1, vector.Stroke{})
	b := NewFrame(vector.Pt{}, 1, 1, vector.Stroke{})
	if !strings.HasPrefix(a.ID(), "square-frame-") {
		t.Fatalf("unexpected id %q", a.ID())
	}
	if a.ID() == b.ID() {
		t.Fatalf("ids must differ")
	}
}

func TestStage_CenterRequiresInit(t *testing.T) {
	s := NewStage()
	if _, err := s.Center(); !errors.Is(err, ErrStageNotInitialized) {
		t.Fatalf("expected ErrStageNotInitialized, got %v", err)
	}
	if err := s.Resize(-1, 10); err == nil {
		t.Fatalf("negative resize should fail")
	}
	if err := s.Resize(1000, 600); err != nil {
		t.Fatalf("resize: %v", err)
	}
	c, err := s.Center()
	if err != nil || c != (vector.Pt{X: 500, Y: 300}) {
		t.Fatalf("center = %v, %v", c, err)
	}
}

func TestBaseImageLayer_FirstImageSizesStage(t *testing.T) {
	s := NewStage()
	imgs := NewBaseImageLayer(s)
	base, err := imgs.Add(blank(800, 600))
	if err != nil {
		t.Fatalf("add base: %v", err)
	}
	if w, h := s.Size(); w != 800 || h != 600 {
		t.Fatalf("stage size = %vx%v", w, h)
	}
	if base.Draggable() || base.Listening() {
		t.Fatalf("base image must be fixed")
	}
	if base.Category() != CategorySnapTarget {
		t.Fatalf("base image should be a snap target")
	}
	over, err := imgs.Add(blank(50, 40))
	if err != nil {
		t.Fatalf("add overlay: %v", err)
	}
	if w, _ := s.Size(); w != 800 {
		t.Fatalf("second image must not resize stage")
	}
	if !over.Draggable() || over.AbsolutePosition() != (vector.Pt{}) {
		t.Fatalf("overlay image should be draggable at origin")
	}
	if _, err := imgs.Add(nil); err == nil {
		t.Fatalf("nil image should fail")
	}
	count := 0
	imgs.UpdateAll(func(*ImageNode) { count++ })
	if count != 2 {
		t.Fatalf("UpdateAll visited %d", count)
	}
}

func TestNumTextLayer_AddBeforeInitFails(t *testing.T) {
	s := NewStage()
	txt := NewNumTextLayer(s, textlayout.BasicProvider{})
	if _, err := txt.Add("1"); !errors.Is(err, ErrStageNotInitialized) {
		t.Fatalf("expected ErrStageNotInitialized, got %v", err)
	}
	if txt.Layer().Len() != 0 {
		t.Fatalf("nothing should be added")
	}
}

func TestNumTextLayer_AddAtCenterWithBaselineBox(t *testing.T) {
	s := NewStage()
	_ = s.Resize(400, 200)
	txt := NewNumTextLayer(s, textlayout.BasicProvider{})
	n, err := txt.Add("12")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if n.AbsolutePosition() != (vector.Pt{X: 200, Y: 100}) {
		t.Fatalf("label anchor = %v", n.AbsolutePosition())
	}
	if n.Fill != vector.Red || n.Font().SizePt != DefaultTextSize {
		t.Fatalf("unexpected style %v %v", n.Fill, n.Font())
	}
	r := n.ClientRect()
	ext := n.Extent()
	if r.X != 200 || r.Y != 100-ext.Ascent || r.W != ext.Width || r.H != ext.Height() {
		t.Fatalf("client rect %v does not match extent %v", r, ext)
	}
	w := ext.Width
	n.SetText("123")
	if n.Extent().Width <= w {
		t.Fatalf("longer text should be wider")
	}
}

func TestSquareFrameLayer_ClientRectIncludesStroke(t *testing.T) {
	s := NewStage()
	_ = s.Resize(400, 200)
	frames := NewSquareFrameLayer(s)
	f, err := frames.Add()
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	want := vector.R(199, 99, 102, 102)
	if f.ClientRect() != want {
		t.Fatalf("client rect = %v, want %v", f.ClientRect(), want)
	}
}

func TestStage_SnapTargetsAndHitTest(t *testing.T) {
	s := NewStage()
	imgs := NewBaseImageLayer(s)
	frames := NewSquareFrameLayer(s)
	overlay := NewLayer("guides")
	s.AddLayer(overlay)
	if _, err := imgs.Add(blank(400, 200)); err != nil {
		t.Fatal(err)
	}
	f, _ := frames.Add()
	overlay.Add(NewGuideLine(vector.Vertical, 6000, vector.Stroke{}))

	if got := len(s.SnapTargets()); got != 2 {
		t.Fatalf("expected 2 snap targets, got %d", got)
	}
	if n, ok := s.HitTest(vector.Pt{X: 250, Y: 150}); !ok || n != f {
		t.Fatalf("hit test should find the frame")
	}
	// the base image is not listening, so empty canvas hits nothing
	if _, ok := s.HitTest(vector.Pt{X: 10, Y: 10}); ok {
		t.Fatalf("base image must not be hit")
	}
}

func TestGuideLine_Points(t *testing.T) {
	g := NewGuideLine(vector.Horizontal, 6000, vector.Stroke{})
	g.SetAbsolutePosition(vector.Pt{Y: 300})
	if g.Start() != (vector.Pt{X: -6000, Y: 300}) || g.End() != (vector.Pt{X: 6000, Y: 300}) {
		t.Fatalf("unexpected endpoints %v %v", g.Start(), g.End())
	}
	if g.Draggable() || g.Listening() {
		t.Fatalf("guides must be inert")
	}
}

func TestHit_UsesShapeGeometry(t *testing.T) {
	f := NewFrame(vector.Pt{X: 10, Y: 10}, 20, 20, vector.Stroke{Width: 4, Enabled: true})
	if !Hit(f, vector.Pt{X: 8, Y: 20}) {
		t.Fatalf("outer half of the stroke belongs to the frame")
	}
	g := NewGuideLine(vector.Vertical, 100, vector.Stroke{Width: 2, Enabled: true})
	g.SetAbsolutePosition(vector.Pt{X: 50})
	if r := g.ClientRect(); r != vector.R(50, -100, 0, 200) {
		t.Fatalf("guide client rect = %v", r)
	}
	if !Hit(g, vector.Pt{X: 50.5, Y: 0}) || Hit(g, vector.Pt{X: 52, Y: 0}) {
		t.Fatalf("guide hit should follow its stroke width")
	}
}
