/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package scene

import (
	"fmt"
	"image"
	"log/slog"

	applog "imagemarker/internal/log"
	"imagemarker/internal/textlayout"
	"imagemarker/internal/vector"
)

// Defaults for newly placed content.
const (
	DefaultTextSize    = 40
	DefaultFrameSize   = 100
	DefaultFrameStroke = 2
)

// BaseImageLayer holds the loaded images. The first image defines the stage
// size and stays fixed; later images are draggable overlays placed at (0,0).
type BaseImageLayer struct {
	stage  *Stage
	layer  *Layer
	images []*ImageNode
}

func NewBaseImageLayer(stage *Stage) *BaseImageLayer {
	l := NewLayer("image")
	stage.AddLayer(l)
	return &BaseImageLayer{stage: stage, layer: l}
}

func (b *BaseImageLayer) Layer() *Layer        { return b.layer }
func (b *BaseImageLayer) Images() []*ImageNode { return append([]*ImageNode(nil), b.images...) }

// Add places img on the layer. The first image resizes the stage.
func (b *BaseImageLayer) Add(img image.Image) (*ImageNode, error) {
	if img == nil {
		return nil, fmt.Errorf("add image: nil image")
	}
	n := NewImage(img, vector.Pt{})
	first := len(b.images) == 0
	if first {
		sz := n.Size()
		if err := b.stage.Resize(sz.W, sz.H); err != nil {
			return nil, fmt.Errorf("add base image: %w", err)
		}
		n.SetDraggable(false)
		n.SetListening(false)
	}
	b.images = append(b.images, n)
	b.layer.Add(n)
	applog.WithComponent("scene").Debug("image added",
		slog.String("id", n.ID()), slog.Bool("base", first),
		slog.Float64("w", float64(n.Size().W)), slog.Float64("h", float64(n.Size().H)))
	return n, nil
}

// Load decodes the image file at path and adds it.
func (b *BaseImageLayer) Load(path string) (*ImageNode, error) {
	img, err := DecodeImageFile(path)
	if err != nil {
		return nil, err
	}
	return b.Add(img)
}

// UpdateAll applies fn to every image on the layer.
func (b *BaseImageLayer) UpdateAll(fn func(*ImageNode)) {
	for _, n := range b.images {
		fn(n)
	}
}

// NumTextLayer holds numbered text labels.
type NumTextLayer struct {
	stage    *Stage
	layer    *Layer
	provider textlayout.Provider
	Fill     vector.Color
	Font     textlayout.FontSpec
}

// NewNumTextLayer creates the text layer. A nil provider measures with the
// bundled Go font.
func NewNumTextLayer(stage *Stage, provider textlayout.Provider) *NumTextLayer {
	if provider == nil {
		provider = textlayout.NewDefaultProvider()
	}
	l := NewLayer("num-text")
	stage.AddLayer(l)
	return &NumTextLayer{
		stage:    stage,
		layer:    l,
		provider: provider,
		Fill:     vector.Red,
		Font:     textlayout.FontSpec{Family: textlayout.DefaultFamily, SizePt: DefaultTextSize, Weight: 400},
	}
}

func (t *NumTextLayer) Layer() *Layer { return t.layer }

// Add places a label at the stage centre.
func (t *NumTextLayer) Add(text string) (*TextNode, error) {
	c, err := t.stage.Center()
	if err != nil {
		return nil, err
	}
	n := NewText(text, t.Font, t.Fill, t.provider, c)
	t.layer.Add(n)
	applog.WithComponent("scene").Debug("text added", slog.String("id", n.ID()), slog.String("text", text))
	return n, nil
}

// SquareFrameLayer holds rectangular frames.
type SquareFrameLayer struct {
	stage  *Stage
	layer  *Layer
	Stroke vector.Stroke
}

func NewSquareFrameLayer(stage *Stage) *SquareFrameLayer {
	l := NewLayer("square-frame-layer")
	stage.AddLayer(l)
	return &SquareFrameLayer{
		stage:  stage,
		layer:  l,
		Stroke: vector.Stroke{Color: vector.Red, Width: DefaultFrameStroke, Enabled: true},
	}
}

func (f *SquareFrameLayer) Layer() *Layer { return f.layer }

// Add places a square frame with its top-left corner at the stage centre.
func (f *SquareFrameLayer) Add() (*FrameNode, error) {
	c, err := f.stage.Center()
	if err != nil {
		return nil, err
	}
	n := NewFrame(c, DefaultFrameSize, DefaultFrameSize, f.Stroke)
	f.layer.Add(n)
	applog.WithComponent("scene").Debug("frame added", slog.String("id", n.ID()))
	return n, nil
}
