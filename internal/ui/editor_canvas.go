//go:build fyne && cgo

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"imagemarker/internal/scene"
	"imagemarker/internal/snap"
	"imagemarker/internal/vector"
)

// EditorCanvas draws the stage and lets the user drag nodes around. Drag
// ticks go through the snap coordinator, which owns the guide lines.
type EditorCanvas struct {
	widget.BaseWidget

	stage   *scene.Stage
	overlay *scene.Layer
	snap    *snap.Coordinator

	zoom    float32
	offsetX float32
	offsetY float32

	dragging  scene.Node
	grab      vector.Pt // pointer position relative to the dragged node's anchor
	abandoned bool      // pointer left mid-drag; ignore Dragged until DragEnd

	// OnGuides is called after every drag tick with the guides in effect.
	OnGuides func(guides []vector.Guide)
}

var (
	_ fyne.Draggable    = (*EditorCanvas)(nil)
	_ desktop.Hoverable = (*EditorCanvas)(nil)
)

func NewEditorCanvas(stage *scene.Stage, coord *snap.Coordinator) *EditorCanvas {
	ec := &EditorCanvas{stage: stage, overlay: coord.Overlay(), snap: coord, zoom: 1}
	ec.ExtendBaseWidget(ec)
	return ec
}

// PreferredSize sets a decent default size for the widget.
func (e *EditorCanvas) PreferredSize() fyne.Size { return fyne.NewSize(800, 600) }

// FitToStage picks the zoom that shows the whole stage in the widget.
func (e *EditorCanvas) FitToStage() {
	w, h := e.stage.Size()
	size := e.Size()
	if w <= 0 || h <= 0 || size.Width <= 0 || size.Height <= 0 {
		e.zoom = 1
	} else {
		e.zoom = min(size.Width/w, size.Height/h, 1)
	}
	e.offsetX, e.offsetY = 0, 0
	e.Refresh()
}

func (e *EditorCanvas) originAndScale() (cx, cy, scale float32) {
	size := e.Size()
	w, h := e.stage.Size()
	cx = size.Width/2 - w*e.zoom/2 + e.offsetX
	cy = size.Height/2 - h*e.zoom/2 + e.offsetY
	return cx, cy, e.zoom
}

func (e *EditorCanvas) toScreen(pt vector.Pt) fyne.Position {
	cx, cy, s := e.originAndScale()
	return fyne.NewPos(cx+pt.X*s, cy+pt.Y*s)
}

func (e *EditorCanvas) toStage(pos fyne.Position) vector.Pt {
	cx, cy, s := e.originAndScale()
	return vector.Pt{X: (pos.X - cx) / s, Y: (pos.Y - cy) / s}
}

// Dragged moves the node under the pointer and runs a snap tick. Dragging
// empty canvas pans the view.
func (e *EditorCanvas) Dragged(ev *fyne.DragEvent) {
	if e.abandoned {
		return
	}
	if e.dragging == nil {
		start := e.toStage(fyne.NewPos(ev.Position.X-ev.Dragged.DX, ev.Position.Y-ev.Dragged.DY))
		n, ok := e.stage.HitTest(start)
		if !ok {
			e.offsetX += ev.Dragged.DX
			e.offsetY += ev.Dragged.DY
			e.Refresh()
			return
		}
		e.dragging = n
		e.grab = start.Sub(n.AbsolutePosition())
		e.snap.Begin(n)
	}
	e.dragging.SetAbsolutePosition(e.toStage(ev.Position).Sub(e.grab))
	guides := e.snap.Move(e.dragging)
	if e.OnGuides != nil {
		e.OnGuides(guides)
	}
	e.Refresh()
}

// DragEnd clears the guides; the last snapped position stays.
func (e *EditorCanvas) DragEnd() {
	e.abandoned = false
	e.finishDrag()
}

func (e *EditorCanvas) finishDrag() {
	e.snap.End()
	e.dragging = nil
	if e.OnGuides != nil {
		e.OnGuides(nil)
	}
	e.Refresh()
}

// CancelDrag aborts a drag in progress and restores the node's start position.
func (e *EditorCanvas) CancelDrag() {
	if e.dragging == nil {
		return
	}
	e.snap.Cancel()
	e.dragging = nil
	if e.OnGuides != nil {
		e.OnGuides(nil)
	}
	e.Refresh()
}

func (e *EditorCanvas) MouseIn(*desktop.MouseEvent)    {}
func (e *EditorCanvas) MouseMoved(*desktop.MouseEvent) {}

// MouseOut ends a drag whose pointer left the widget so no guides linger.
// fyne keeps delivering Dragged while the button is held, so the rest of that
// gesture is ignored.
func (e *EditorCanvas) MouseOut() {
	if e.dragging != nil {
		e.abandoned = true
		e.finishDrag()
	}
}

// Scrolled zooms the view.
func (e *EditorCanvas) Scrolled(ev *fyne.ScrollEvent) {
	e.zoom += ev.Scrolled.DY * 0.002
	if e.zoom < 0.1 {
		e.zoom = 0.1
	}
	if e.zoom > 4.0 {
		e.zoom = 4.0
	}
	e.Refresh()
}

func (e *EditorCanvas) CreateRenderer() fyne.WidgetRenderer {
	bg := canvas.NewRectangle(color.NRGBA{R: 30, G: 30, B: 34, A: 255})
	surface := canvas.NewRectangle(color.NRGBA{R: 60, G: 60, B: 66, A: 255})
	r := &editorCanvasRenderer{ec: e, bg: bg, surface: surface, visuals: map[string]fyne.CanvasObject{}}
	r.Layout(e.Size())
	return r
}

// editorCanvasRenderer keeps one canvas object per scene node, keyed by id.
// Guide lines get fresh ids every tick, so their visuals are recreated too.
type editorCanvasRenderer struct {
	ec      *EditorCanvas
	bg      *canvas.Rectangle
	surface *canvas.Rectangle
	visuals map[string]fyne.CanvasObject
	objects []fyne.CanvasObject
}

func (r *editorCanvasRenderer) Destroy()                     {}
func (r *editorCanvasRenderer) Objects() []fyne.CanvasObject { return r.objects }
func (r *editorCanvasRenderer) MinSize() fyne.Size           { return fyne.NewSize(200, 150) }
func (r *editorCanvasRenderer) Refresh()                     { r.Layout(r.ec.Size()); canvas.Refresh(r.ec) }

func (r *editorCanvasRenderer) Layout(size fyne.Size) {
	r.bg.Resize(size)
	r.bg.Move(fyne.NewPos(0, 0))

	w, h := r.ec.stage.Size()
	origin := r.ec.toScreen(vector.Pt{})
	r.surface.Move(origin)
	r.surface.Resize(fyne.NewSize(w*r.ec.zoom, h*r.ec.zoom))

	objs := []fyne.CanvasObject{r.bg, r.surface}
	seen := make(map[string]bool, len(r.visuals))
	for _, l := range r.ec.stage.Layers() {
		for _, n := range l.Nodes() {
			obj := r.visualFor(n)
			if obj == nil {
				continue
			}
			r.place(n, obj)
			seen[n.ID()] = true
			objs = append(objs, obj)
		}
	}
	for id := range r.visuals {
		if !seen[id] {
			delete(r.visuals, id)
		}
	}
	r.objects = objs
}

func (r *editorCanvasRenderer) visualFor(n scene.Node) fyne.CanvasObject {
	if obj, ok := r.visuals[n.ID()]; ok {
		return obj
	}
	var obj fyne.CanvasObject
	switch v := n.(type) {
	case *scene.ImageNode:
		img := canvas.NewImageFromImage(v.Image)
		img.FillMode = canvas.ImageFillStretch
		img.ScaleMode = canvas.ImageScaleFastest
		obj = img
	case *scene.TextNode:
		obj = canvas.NewText(v.Text(), toColor(v.Fill))
	case *scene.FrameNode:
		rc := canvas.NewRectangle(color.Transparent)
		rc.StrokeColor = toColor(v.Stroke.Color)
		obj = rc
	case *scene.GuideLine:
		ln := canvas.NewLine(toColor(v.Stroke.Color))
		ln.StrokeWidth = v.Stroke.Width
		obj = ln
	default:
		return nil
	}
	r.visuals[n.ID()] = obj
	return obj
}

func (r *editorCanvasRenderer) place(n scene.Node, obj fyne.CanvasObject) {
	z := r.ec.zoom
	switch v := n.(type) {
	case *scene.GuideLine:
		ln := obj.(*canvas.Line)
		ln.Position1 = r.ec.toScreen(v.Start())
		ln.Position2 = r.ec.toScreen(v.End())
		ln.Refresh()
		return
	case *scene.TextNode:
		t := obj.(*canvas.Text)
		t.Text = v.Text()
		t.TextSize = v.Font().SizePt * z
		t.Color = toColor(v.Fill)
	case *scene.FrameNode:
		rc := obj.(*canvas.Rectangle)
		rc.StrokeWidth = v.Stroke.Width * z
		// the rectangle strokes inside its bounds; the client rect already
		// includes the outer half of the stroke
	}
	b := n.ClientRect()
	obj.Move(r.ec.toScreen(vector.Pt{X: b.X, Y: b.Y}))
	obj.Resize(fyne.NewSize(b.W*z, b.H*z))
	obj.Refresh()
}

func toColor(c vector.Color) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}
