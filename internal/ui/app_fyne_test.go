//go:build fyne && cgo

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// These tests validate the Fyne-based editor canvas. They are gated behind the
// "fyne" build tag so CI (which is headless) does not need Fyne or a display.
// To run locally:
//
//	go test -tags fyne ./internal/ui
package ui

import (
	"image"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"

	"imagemarker/internal/scene"
	"imagemarker/internal/snap"
	"imagemarker/internal/vector"
)

func newTestCanvas(t *testing.T) (*Editor, *EditorCanvas, *scene.FrameNode) {
	t.Helper()
	a := test.NewApp()
	t.Cleanup(a.Quit)
	ed := NewEditor(snap.DefaultOptions())
	if _, err := ed.Images.Add(image.NewRGBA(image.Rect(0, 0, 800, 600))); err != nil {
		t.Fatalf("add base image: %v", err)
	}
	f, err := ed.Frames.Add()
	if err != nil {
		t.Fatalf("add frame: %v", err)
	}
	ec := NewEditorCanvas(ed.Stage, ed.Snap)
	ec.Resize(fyne.NewSize(800, 600))
	return ed, ec, f
}

func TestEditorCanvas_Defaults(t *testing.T) {
	_, ec, _ := newTestCanvas(t)
	if ec.zoom != 1 {
		t.Fatalf("expected default zoom 1, got %v", ec.zoom)
	}
	sz := ec.PreferredSize()
	if sz.Width != 800 || sz.Height != 600 {
		t.Fatalf("unexpected PreferredSize: %v", sz)
	}
	if p := ec.toStage(fyne.NewPos(10, 20)); p != (vector.Pt{X: 10, Y: 20}) {
		t.Fatalf("stage fills the widget at zoom 1, got %v", p)
	}
}

func TestEditorCanvas_DragSnapsAndEndClears(t *testing.T) {
	ed, ec, f := newTestCanvas(t)
	var last []vector.Guide
	ec.OnGuides = func(g []vector.Guide) { last = g }

	ec.Dragged(&fyne.DragEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(400.5, 350)},
		Dragged:    fyne.NewDelta(-49.5, 0),
	})
	if len(last) != 2 {
		t.Fatalf("expected 2 guides, got %d", len(last))
	}
	if got := f.AbsolutePosition(); got != (vector.Pt{X: 350, Y: 301}) {
		t.Fatalf("frame anchor = %v, want (350,301)", got)
	}
	if n := ed.Snap.Overlay().Count(scene.CategoryGuide); n != 2 {
		t.Fatalf("expected 2 guide lines on the overlay, got %d", n)
	}

	ec.DragEnd()
	if n := ed.Snap.Overlay().Count(scene.CategoryGuide); n != 0 {
		t.Fatalf("expected no guide lines after drag end, got %d", n)
	}
	if f.AbsolutePosition() != (vector.Pt{X: 350, Y: 301}) {
		t.Fatalf("drag end must keep the snapped position")
	}
}

func TestEditorCanvas_MouseOutEndsDrag(t *testing.T) {
	ed, ec, _ := newTestCanvas(t)
	ec.Dragged(&fyne.DragEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(400.5, 350)},
		Dragged:    fyne.NewDelta(-49.5, 0),
	})
	ec.MouseOut()
	if ed.Snap.Active() != nil || ed.Snap.Overlay().Count(scene.CategoryGuide) != 0 {
		t.Fatalf("leaving the widget must end the drag and clear guides")
	}
}

func TestEditorCanvas_EmptyDragPans(t *testing.T) {
	_, ec, _ := newTestCanvas(t)
	ec.Dragged(&fyne.DragEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(60, 40)},
		Dragged:    fyne.NewDelta(10, 5),
	})
	if ec.offsetX != 10 || ec.offsetY != 5 {
		t.Fatalf("expected pan offset (10,5), got (%v,%v)", ec.offsetX, ec.offsetY)
	}
	ec.DragEnd()
}

func TestEditorCanvas_DraggedAfterMouseOutIsIgnored(t *testing.T) {
	ed, ec, f := newTestCanvas(t)
	ec.Dragged(&fyne.DragEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(400.5, 350)},
		Dragged:    fyne.NewDelta(-49.5, 0),
	})
	ec.MouseOut()
	snapped := f.AbsolutePosition()

	// the button is still held; the start point of this event is on the frame
	ec.Dragged(&fyne.DragEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(700, 300)},
		Dragged:    fyne.NewDelta(300, -50),
	})
	if ed.Snap.Active() != nil {
		t.Fatalf("no drag session may start before DragEnd")
	}
	if n := ed.Snap.Overlay().Count(scene.CategoryGuide); n != 0 {
		t.Fatalf("expected no guides outside the widget, got %d", n)
	}
	if f.AbsolutePosition() != snapped {
		t.Fatalf("frame moved after the pointer left: %v", f.AbsolutePosition())
	}
	ec.CancelDrag()
	if f.AbsolutePosition() != snapped {
		t.Fatalf("cancel after an abandoned drag must not restore a stale start")
	}

	ec.DragEnd()
	ec.Dragged(&fyne.DragEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(410, 360)},
		Dragged:    fyne.NewDelta(10, 10),
	})
	if ed.Snap.Active() == nil {
		t.Fatalf("a new gesture after DragEnd should drag again")
	}
	ec.DragEnd()
}
