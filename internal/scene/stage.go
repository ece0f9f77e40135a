/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package scene holds the editing-session state of the annotation canvas:
// the stage (canvas surface), its layers, the typed nodes placed on them and
// the per-layer stores that create nodes. State is passed explicitly; there is
// no package-level session.
package scene

import (
	"errors"
	"fmt"

	"imagemarker/internal/vector"
)

// ErrStageNotInitialized is returned when geometry is requested before a base
// image has sized the stage.
var ErrStageNotInitialized = errors.New("stage is not initialized: load a base image first")

// Stage is the canvas surface. Its size follows the first base image.
type Stage struct {
	width, height float32
	layers        []*Layer
}

func NewStage() *Stage { return &Stage{} }

// Size returns the canvas width and height in pixels.
func (s *Stage) Size() (w, h float32) { return s.width, s.height }

// Resize sets the canvas size. Negative sizes are rejected.
func (s *Stage) Resize(w, h float32) error {
	if w < 0 || h < 0 {
		return fmt.Errorf("resize stage to %gx%g: negative size", w, h)
	}
	s.width, s.height = w, h
	return nil
}

// Initialized reports whether the stage has a non-zero size.
func (s *Stage) Initialized() bool { return s.width > 0 && s.height > 0 }

// Center returns the canvas midpoint.
func (s *Stage) Center() (vector.Pt, error) {
	if !s.Initialized() {
		return vector.Pt{}, ErrStageNotInitialized
	}
	return vector.Pt{X: s.width / 2, Y: s.height / 2}, nil
}

// AddLayer appends l on top of the existing layers.
func (s *Stage) AddLayer(l *Layer) {
	for _, c := range s.layers {
		if c == l {
			return
		}
	}
	s.layers = append(s.layers, l)
}

// Layers returns the layers bottom to top.
func (s *Stage) Layers() []*Layer { return append([]*Layer(nil), s.layers...) }

// Find returns the nodes of category c across all layers, bottom to top.
func (s *Stage) Find(c Category) []Node {
	var out []Node
	for _, l := range s.layers {
		out = append(out, l.Find(c)...)
	}
	return out
}

// SnapTargets returns every node tagged as a snap participant.
func (s *Stage) SnapTargets() []Node { return s.Find(CategorySnapTarget) }

// HitTest returns the top-most listening, draggable node under p.
func (s *Stage) HitTest(p vector.Pt) (Node, bool) {
	for i := len(s.layers) - 1; i >= 0; i-- {
		nodes := s.layers[i].nodes
		for j := len(nodes) - 1; j >= 0; j-- {
			n := nodes[j]
			if n.Listening() && n.Draggable() && Hit(n, p) {
				return n, true
			}
		}
	}
	return nil, false
}
