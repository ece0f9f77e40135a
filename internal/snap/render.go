/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package snap wires the alignment-guide math in vector to the scene: it draws
// guide lines on an overlay layer and corrects the dragged node's position on
// every drag tick.
package snap

import (
	"imagemarker/internal/scene"
	"imagemarker/internal/vector"
)

// DefaultExtent is how far a guide line reaches from its anchor in both
// directions; far enough to cross any canvas.
const DefaultExtent = 6000

// Style is the look of rendered guide lines.
type Style struct {
	Color  vector.Color
	Width  float32
	Dash   []float32
	Extent float32
}

// DefaultStyle is a thin dashed light-blue line.
func DefaultStyle() Style {
	return Style{
		Color:  vector.Color{R: 0, G: 161, B: 255, A: 255},
		Width:  1,
		Dash:   []float32{4, 6},
		Extent: DefaultExtent,
	}
}

func (s Style) stroke() vector.Stroke {
	return vector.Stroke{Color: s.Color, Width: s.Width, Dash: append([]float32(nil), s.Dash...), Enabled: true}
}

// RenderGuides replaces the guide lines on overlay with one line per guide.
// Vertical lines sit at (LineGuide, 0), horizontal ones at (0, LineGuide).
func RenderGuides(overlay *scene.Layer, guides []vector.Guide, style Style) []*scene.GuideLine {
	ClearGuides(overlay)
	ext := style.Extent
	if ext <= 0 {
		ext = DefaultExtent
	}
	lines := make([]*scene.GuideLine, 0, len(guides))
	for _, g := range guides {
		line := scene.NewGuideLine(g.Orientation, ext, style.stroke())
		if g.Orientation == vector.Horizontal {
			line.SetAbsolutePosition(vector.Pt{X: 0, Y: g.LineGuide})
		} else {
			line.SetAbsolutePosition(vector.Pt{X: g.LineGuide, Y: 0})
		}
		overlay.Add(line)
		lines = append(lines, line)
	}
	return lines
}

// ClearGuides removes every guide line from overlay and returns how many
// were removed. Other shapes on the layer are left alone.
func ClearGuides(overlay *scene.Layer) int {
	if overlay == nil {
		return 0
	}
	return overlay.DestroyAll(scene.CategoryGuide)
}

// GuideLines returns the guide lines currently on overlay.
func GuideLines(overlay *scene.Layer) []*scene.GuideLine {
	var out []*scene.GuideLine
	for _, n := range overlay.Find(scene.CategoryGuide) {
		if g, ok := n.(*scene.GuideLine); ok {
			out = append(out, g)
		}
	}
	return out
}
