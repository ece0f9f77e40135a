/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package ui

import (
	"errors"
	"image"
	"strings"
	"testing"

	"imagemarker/internal/scene"
	"imagemarker/internal/snap"
	"imagemarker/internal/vector"
)

func TestNewEditor_LayerOrder(t *testing.T) {
	ed := NewEditor(snap.DefaultOptions())
	layers := ed.Stage.Layers()
	if len(layers) != 4 {
		t.Fatalf("expected 4 layers, got %d", len(layers))
	}
	if layers[len(layers)-1] != ed.Snap.Overlay() {
		t.Fatalf("guide overlay must be the top layer")
	}
	if _, err := ed.Frames.Add(); !errors.Is(err, scene.ErrStageNotInitialized) {
		t.Fatalf("expected ErrStageNotInitialized before a base image, got %v", err)
	}
}

func TestEditor_DragToSiblingEdge(t *testing.T) {
	ed := NewEditor(snap.DefaultOptions())
	if _, err := ed.Images.Add(image.NewRGBA(image.Rect(0, 0, 800, 600))); err != nil {
		t.Fatal(err)
	}
	sibling, _ := ed.Frames.Add() // bbox (399,299)-(501,401)
	moving, _ := ed.Frames.Add()

	// put the moving frame's bbox left edge on x=502, one pixel right of the sibling
	guides := ed.DragTo(moving, vector.Pt{X: 503, Y: 100})
	if len(guides) != 1 || guides[0].Orientation != vector.Vertical || guides[0].LineGuide != 501 {
		t.Fatalf("expected vertical guide at 501, got %+v", guides)
	}
	if moving.ClientRect().X != 501 {
		t.Fatalf("moving frame should touch the sibling, bbox x = %v", moving.ClientRect().X)
	}
	if ed.Snap.Overlay().Count(scene.CategoryGuide) != 1 {
		t.Fatalf("expected one rendered guide")
	}
	ed.EndDrag()
	if ed.Snap.Overlay().Count(scene.CategoryGuide) != 0 {
		t.Fatalf("guides must be cleared after the drag")
	}
	if sibling.AbsolutePosition() != (vector.Pt{X: 400, Y: 300}) {
		t.Fatalf("sibling must not move")
	}
}

func TestDescribeGuides(t *testing.T) {
	if DescribeGuides(nil) != "Ready" {
		t.Fatalf("no guides should read Ready")
	}
	s := DescribeGuides([]vector.Guide{{LineGuide: 400, Orientation: vector.Vertical, Snap: vector.SnapStart}})
	if !strings.Contains(s, "vertical start @ 400") {
		t.Fatalf("unexpected description %q", s)
	}
}
