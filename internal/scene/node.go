/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package scene

import (
	"image"

	"github.com/google/uuid"

	"imagemarker/internal/textlayout"
	"imagemarker/internal/vector"
)

// Category classifies nodes for typed queries on stages and layers.
type Category uint8

const (
	// CategoryNone is plain content that takes no part in snapping.
	CategoryNone Category = iota
	// CategorySnapTarget marks objects that provide and receive alignment guides.
	CategorySnapTarget
	// CategoryGuide marks transient guide lines on the overlay layer.
	CategoryGuide
)

func (c Category) String() string {
	switch c {
	case CategorySnapTarget:
		return "snap-target"
	case CategoryGuide:
		return "guide"
	default:
		return "none"
	}
}

// Node is an element placed on a layer. Positions are absolute canvas
// coordinates; ClientRect is the rendered extent, which may not start at the
// anchor position.
type Node interface {
	ID() string
	Category() Category
	ClientRect() vector.Rect
	AbsolutePosition() vector.Pt
	SetAbsolutePosition(vector.Pt)
	Draggable() bool
	Listening() bool
}

type baseNode struct {
	id        string
	category  Category
	pos       vector.Pt
	draggable bool
	listening bool
}

func newBase(prefix string, cat Category, pos vector.Pt) baseNode {
	return baseNode{id: prefix + "-" + uuid.NewString(), category: cat, pos: pos, draggable: true, listening: true}
}

func (b *baseNode) ID() string                      { return b.id }
func (b *baseNode) Category() Category              { return b.category }
func (b *baseNode) AbsolutePosition() vector.Pt     { return b.pos }
func (b *baseNode) SetAbsolutePosition(p vector.Pt) { b.pos = p }
func (b *baseNode) Draggable() bool                 { return b.draggable }
func (b *baseNode) Listening() bool                 { return b.listening }
func (b *baseNode) SetDraggable(v bool)             { b.draggable = v }
func (b *baseNode) SetListening(v bool)             { b.listening = v }
func (b *baseNode) SetCategory(c Category)          { b.category = c }

// ImageNode is a raster image drawn with its top-left corner at the anchor.
type ImageNode struct {
	baseNode
	Image image.Image
	size  vector.Size
}

func NewImage(img image.Image, pos vector.Pt) *ImageNode {
	n := &ImageNode{baseNode: newBase("image", CategorySnapTarget, pos), Image: img}
	if img != nil {
		b := img.Bounds()
		n.size = vector.Size{W: float32(b.Dx()), H: float32(b.Dy())}
	}
	return n
}

func (n *ImageNode) Size() vector.Size { return n.size }

func (n *ImageNode) ClientRect() vector.Rect {
	return vector.R(n.pos.X, n.pos.Y, n.size.W, n.size.H)
}

// TextNode is a single-line label. Its anchor is the baseline origin, so the
// box starts Ascent pixels above the anchor.
type TextNode struct {
	baseNode
	text     string
	font     textlayout.FontSpec
	Fill     vector.Color
	provider textlayout.Provider
	ext      textlayout.Extent
}

func NewText(text string, spec textlayout.FontSpec, fill vector.Color, provider textlayout.Provider, pos vector.Pt) *TextNode {
	if provider == nil {
		provider = textlayout.BasicProvider{}
	}
	n := &TextNode{baseNode: newBase("num-text", CategorySnapTarget, pos), text: text, font: spec, Fill: fill, provider: provider}
	n.measure()
	return n
}

func (n *TextNode) measure() { n.ext = textlayout.MeasureString(n.provider, n.text, n.font) }

func (n *TextNode) Text() string              { return n.text }
func (n *TextNode) Font() textlayout.FontSpec { return n.font }
func (n *TextNode) Extent() textlayout.Extent { return n.ext }

// SetText replaces the label and re-measures it.
func (n *TextNode) SetText(s string) {
	n.text = s
	n.measure()
}

// SetFontSize changes the size and re-measures the label.
func (n *TextNode) SetFontSize(pt float32) {
	n.font.SizePt = pt
	n.measure()
}

func (n *TextNode) ClientRect() vector.Rect {
	return vector.R(n.pos.X, n.pos.Y-n.ext.Ascent, n.ext.Width, n.ext.Height())
}

// FrameNode is a stroked rectangle. The stroke is centred on the outline, so
// the client rect extends half a stroke width beyond the geometry.
type FrameNode struct {
	baseNode
	W, H   float32
	Stroke vector.Stroke
}

func NewFrame(pos vector.Pt, w, h float32, stroke vector.Stroke) *FrameNode {
	return &FrameNode{baseNode: newBase("square-frame", CategorySnapTarget, pos), W: w, H: h, Stroke: stroke}
}

// Shape returns the frame's outline at its current position.
func (n *FrameNode) Shape() vector.Shape {
	return vector.NewRect(vector.R(n.pos.X, n.pos.Y, n.W, n.H), n.Stroke)
}

func (n *FrameNode) ClientRect() vector.Rect { return n.Shape().Bounds() }

// GuideLine is a transient alignment line on the overlay layer. Points are
// relative to the anchor as x0,y0,x1,y1.
type GuideLine struct {
	baseNode
	Orientation vector.Orientation
	Points      [4]float32
	Stroke      vector.Stroke
}

func NewGuideLine(o vector.Orientation, extent float32, stroke vector.Stroke) *GuideLine {
	g := &GuideLine{baseNode: newBase("guide-line", CategoryGuide, vector.Pt{}), Orientation: o, Stroke: stroke}
	g.draggable = false
	g.listening = false
	if o == vector.Horizontal {
		g.Points = [4]float32{-extent, 0, extent, 0}
	} else {
		g.Points = [4]float32{0, -extent, 0, extent}
	}
	return g
}

// Start and End return the absolute endpoints of the line.
func (g *GuideLine) Start() vector.Pt { return g.pos.Add(vector.Pt{X: g.Points[0], Y: g.Points[1]}) }
func (g *GuideLine) End() vector.Pt   { return g.pos.Add(vector.Pt{X: g.Points[2], Y: g.Points[3]}) }

// Shape returns the line segment in absolute coordinates.
func (g *GuideLine) Shape() vector.Shape { return vector.NewLine(g.Start(), g.End(), g.Stroke) }

func (g *GuideLine) ClientRect() vector.Rect { return g.Shape().Bounds() }

// Hit reports whether p lies on n. Nodes with their own geometry use its hit
// test; the rest are hit anywhere inside their client rect.
func Hit(n Node, p vector.Pt) bool {
	if s, ok := n.(interface{ Shape() vector.Shape }); ok {
		return s.Shape().Hit(p)
	}
	return n.ClientRect().Contains(p)
}
