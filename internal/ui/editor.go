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
	"fmt"
	"strings"

	"imagemarker/internal/scene"
	"imagemarker/internal/snap"
	"imagemarker/internal/vector"
)

// Editor bundles the editing session: the stage, its stores and the snap
// coordinator that owns the guide overlay. It has no toolkit dependency, so
// headless commands and tests drive the same session the desktop UI does.
type Editor struct {
	Stage  *scene.Stage
	Images *scene.BaseImageLayer
	Texts  *scene.NumTextLayer
	Frames *scene.SquareFrameLayer
	Snap   *snap.Coordinator
}

// NewEditor creates the layers bottom to top: images, labels, frames, guides.
func NewEditor(opts snap.Options) *Editor {
	st := scene.NewStage()
	ed := &Editor{
		Stage:  st,
		Images: scene.NewBaseImageLayer(st),
		Texts:  scene.NewNumTextLayer(st, nil),
		Frames: scene.NewSquareFrameLayer(st),
	}
	overlay := scene.NewLayer("guides")
	st.AddLayer(overlay)
	ed.Snap = snap.NewCoordinator(st, overlay, opts)
	return ed
}

// DragTo moves n to pos as a single drag tick and returns the guides that
// snapped it. The drag stays open until EndDrag.
func (ed *Editor) DragTo(n scene.Node, pos vector.Pt) []vector.Guide {
	ed.Snap.Begin(n)
	n.SetAbsolutePosition(pos)
	return ed.Snap.Move(n)
}

// EndDrag finishes the drag in progress.
func (ed *Editor) EndDrag() { ed.Snap.End() }

// DescribeGuides renders guides for the status line.
func DescribeGuides(guides []vector.Guide) string {
	if len(guides) == 0 {
		return "Ready"
	}
	parts := make([]string, 0, len(guides))
	for _, g := range guides {
		parts = append(parts, fmt.Sprintf("%s %s @ %g", g.Orientation, g.Snap, g.LineGuide))
	}
	return "Snapped: " + strings.Join(parts, ", ")
}
