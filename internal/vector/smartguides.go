/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

// Smart guides and snapping helpers for dragging objects over the canvas.
// These utilities are UI-agnostic and deterministic to enable unit testing and
// reuse across different frontends. The flow per drag tick is
// CollectBounds -> ExtractEdges -> SelectGuides -> ApplyGuides.

// GuideThreshold is the maximum distance (canvas pixels) between a line stop
// and an edge of the dragged object for the two to align.
const GuideThreshold float32 = 1

// Orientation of a guide line. A vertical guide fixes an x coordinate.
type Orientation uint8

const (
	Vertical Orientation = iota
	Horizontal
)

func (o Orientation) String() string {
	if o == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// SnapKind names the edge of the dragged object that aligned.
type SnapKind uint8

const (
	SnapStart SnapKind = iota
	SnapCenter
	SnapEnd
)

func (k SnapKind) String() string {
	switch k {
	case SnapCenter:
		return "center"
	case SnapEnd:
		return "end"
	default:
		return "start"
	}
}

// StopSource tells where a line stop came from. Lower values win exact ties.
type StopSource uint8

const (
	SourceCanvas StopSource = iota
	SourceObject
)

// LineStop is a candidate alignment coordinate on one axis.
type LineStop struct {
	Value  float32
	Source StopSource
}

// LineStops holds the candidate coordinates of both axes: Vertical holds x
// values, Horizontal holds y values.
type LineStops struct {
	Vertical   []LineStop
	Horizontal []LineStop
}

// Axis returns the stops for guides of orientation o.
func (s LineStops) Axis(o Orientation) []LineStop {
	if o == Horizontal {
		return s.Horizontal
	}
	return s.Vertical
}

// Bounded is anything with an axis-aligned bounding box in canvas coordinates.
type Bounded interface {
	ClientRect() Rect
}

// Anchored is a Bounded object that also reports its own logical position.
// The anchor may differ from the bounding box origin (stroke, text baseline).
type Anchored interface {
	Bounded
	AbsolutePosition() Pt
}

// CollectBounds returns the canvas edges and midpoints followed by the start,
// end and midpoint of every object except exclude. No filtering happens here.
// objects must not hold nil values, typed or untyped.
func CollectBounds[T Bounded](width, height float32, objects []T, exclude Bounded) LineStops {
	stops := LineStops{
		Vertical: []LineStop{
			{Value: 0, Source: SourceCanvas},
			{Value: width / 2, Source: SourceCanvas},
			{Value: width, Source: SourceCanvas},
		},
		Horizontal: []LineStop{
			{Value: 0, Source: SourceCanvas},
			{Value: height / 2, Source: SourceCanvas},
			{Value: height, Source: SourceCanvas},
		},
	}
	for _, o := range objects {
		b := Bounded(o)
		if exclude != nil && b == exclude {
			continue
		}
		box := b.ClientRect()
		stops.Vertical = append(stops.Vertical,
			LineStop{Value: box.X, Source: SourceObject},
			LineStop{Value: box.X + box.W, Source: SourceObject},
			LineStop{Value: box.X + box.W/2, Source: SourceObject},
		)
		stops.Horizontal = append(stops.Horizontal,
			LineStop{Value: box.Y, Source: SourceObject},
			LineStop{Value: box.Y + box.H, Source: SourceObject},
			LineStop{Value: box.Y + box.H/2, Source: SourceObject},
		)
	}
	return stops
}

// SnapEdge is one edge of the dragged object. Offset is the distance from
// that edge to the anchor, so anchor == Guide + Offset.
type SnapEdge struct {
	Guide  float32
	Offset float32
	Snap   SnapKind
}

// ObjectEdges holds the start, center and end edges of each axis, in that order.
type ObjectEdges struct {
	Vertical   [3]SnapEdge
	Horizontal [3]SnapEdge
}

// Axis returns the edges compared against stops of orientation o.
func (e ObjectEdges) Axis(o Orientation) [3]SnapEdge {
	if o == Horizontal {
		return e.Horizontal
	}
	return e.Vertical
}

// ExtractEdges computes the snapping edges of obj from its current box and anchor.
func ExtractEdges(obj Anchored) ObjectEdges {
	box := obj.ClientRect()
	pos := obj.AbsolutePosition()
	return ObjectEdges{
		Vertical:   axisEdges(box, Vertical, pos.X),
		Horizontal: axisEdges(box, Horizontal, pos.Y),
	}
}

func axisEdges(box Rect, o Orientation, anchor float32) [3]SnapEdge {
	start, center, end := box.Span(o)
	return [3]SnapEdge{
		{Guide: start, Offset: anchor - start, Snap: SnapStart},
		{Guide: center, Offset: anchor - center, Snap: SnapCenter},
		{Guide: end, Offset: anchor - end, Snap: SnapEnd},
	}
}

// Guide is the alignment chosen for one axis. LineGuide is the line stop the
// edge aligned to; Edge is where that edge of the dragged object was.
type Guide struct {
	LineGuide   float32
	Offset      float32
	Orientation Orientation
	Snap        SnapKind
	Edge        float32
	Source      StopSource
}

// Anchor returns the anchor coordinate that puts the aligned edge on the line.
func (g Guide) Anchor() float32 { return g.LineGuide + g.Offset }

// SelectGuides picks at most one vertical and one horizontal guide using
// GuideThreshold.
func SelectGuides(stops LineStops, edges ObjectEdges) []Guide {
	return SelectGuidesWithin(stops, edges, GuideThreshold)
}

// SelectGuidesWithin is SelectGuides with an explicit threshold. A stop and an
// edge match when their distance is at most threshold. Among matches the
// closest wins; exact ties prefer canvas stops, then the first encountered.
func SelectGuidesWithin(stops LineStops, edges ObjectEdges, threshold float32) []Guide {
	var guides []Guide
	for _, o := range []Orientation{Vertical, Horizontal} {
		if g, ok := selectAxis(stops.Axis(o), edges.Axis(o), threshold); ok {
			g.Orientation = o
			guides = append(guides, g)
		}
	}
	return guides
}

func selectAxis(stops []LineStop, edges [3]SnapEdge, threshold float32) (Guide, bool) {
	var best Guide
	bestDist := float32(0)
	found := false
	for _, s := range stops {
		for _, e := range edges {
			d := abs32(s.Value - e.Guide)
			if d > threshold {
				continue
			}
			if found && !(d < bestDist || (d == bestDist && s.Source < best.Source)) {
				continue
			}
			best = Guide{LineGuide: s.Value, Offset: e.Offset, Snap: e.Snap, Edge: e.Guide, Source: s.Source}
			bestDist = d
			found = true
		}
	}
	return best, found
}

// ApplyGuides returns pos with each guided axis replaced by the guide's anchor.
func ApplyGuides(pos Pt, guides []Guide) Pt {
	for _, g := range guides {
		switch g.Orientation {
		case Vertical:
			pos.X = g.Anchor()
		case Horizontal:
			pos.Y = g.Anchor()
		}
	}
	return pos
}
