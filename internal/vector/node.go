/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

// Shape is stroked geometry in canvas coordinates with an axis-aligned
// extent and a hit test.
type Shape interface {
	Bounds() Rect
	Hit(p Pt) bool
}

// RectShape is an axis-aligned rectangle. The stroke is centred on the
// outline, so Bounds extends half a stroke width beyond Rect.
type RectShape struct {
	Rect   Rect
	Stroke Stroke
}

func NewRect(r Rect, s Stroke) *RectShape { return &RectShape{Rect: r, Stroke: s} }

func (n *RectShape) Bounds() Rect {
	half := n.Stroke.halfWidth()
	return n.Rect.Inset(-half, -half)
}

func (n *RectShape) Hit(p Pt) bool { return n.Bounds().Contains(p) }

// LineShape is a straight segment from A to B.
type LineShape struct {
	A, B   Pt
	Stroke Stroke
}

func NewLine(a, b Pt, s Stroke) *LineShape { return &LineShape{A: a, B: b, Stroke: s} }

// Bounds is the box spanned by the end points. Stroke width is left out so a
// guide line stays zero-width across its axis.
func (n *LineShape) Bounds() Rect {
	x0, x1 := min(n.A.X, n.B.X), max(n.A.X, n.B.X)
	y0, y1 := min(n.A.Y, n.B.Y), max(n.A.Y, n.B.Y)
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Hit accepts points within half a stroke width of the segment's box.
func (n *LineShape) Hit(p Pt) bool {
	half := n.Stroke.halfWidth()
	return n.Bounds().Inset(-half, -half).Contains(p)
}

func (s Stroke) halfWidth() float32 {
	if !s.Enabled || s.Width <= 0 {
		return 0
	}
	return s.Width / 2
}
