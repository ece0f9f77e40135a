/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package textlayout

// Text measurement for canvas labels. All measurement goes through a Provider
// so tests can use the fixed-size basic face while the editor uses real fonts.

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// FontSpec describes a requested font.
type FontSpec struct {
	Family string // logical family name
	SizePt float32
	Weight int // 100..900
	Italic bool
}

// Metrics provides font metrics in pixels for the resolved face.
// Scale is applied to advances measured with the face; it is 1 for faces
// rasterized at the requested size.
type Metrics struct {
	Ascent, Descent, LineGap float32
	Scale                    float32
}

// Span is a run of text with the same font/style.
type Span struct {
	Text string
	Font FontSpec
}

// Extent is the measured size of a single line of text relative to its
// baseline origin: the glyphs occupy [0,Width] x [-Ascent,Descent].
type Extent struct {
	Width   float32
	Ascent  float32
	Descent float32
}

// Height is the line height without line gap.
func (e Extent) Height() float32 { return e.Ascent + e.Descent }

// Provider maps FontSpec to a concrete font.Face.
type Provider interface {
	Resolve(FontSpec) (font.Face, Metrics)
}

// basicNativeSize is the pixel size of basicfont.Face7x13.
const basicNativeSize = 13

// BasicProvider uses x/image/basicfont Face7x13 for deterministic tests.
// Requested sizes are emulated by scaling the 13px metrics.
type BasicProvider struct{}

func (BasicProvider) Resolve(spec FontSpec) (font.Face, Metrics) {
	f := basicfont.Face7x13
	m := f.Metrics()
	scale := float32(1)
	if spec.SizePt > 0 {
		scale = spec.SizePt / basicNativeSize
	}
	return f, Metrics{
		Ascent:  float32(m.Ascent.Round()) * scale,
		Descent: float32(m.Descent.Round()) * scale,
		LineGap: float32(m.Height.Round()-m.Ascent.Round()-m.Descent.Round()) * scale,
		Scale:   scale,
	}
}

func advance(d *font.Drawer, s string) float32 {
	return float32(d.MeasureString(s) >> 6) // fixed.Int26_6 to px
}

// Measure returns the single-line extent of spans. Ascent and descent are the
// maxima over all spans.
func Measure(provider Provider, spans []Span) Extent {
	if provider == nil {
		provider = BasicProvider{}
	}
	var ext Extent
	for _, sp := range spans {
		face, met := provider.Resolve(sp.Font)
		scale := met.Scale
		if scale == 0 {
			scale = 1
		}
		d := &font.Drawer{Face: face}
		ext.Width += advance(d, sp.Text) * scale
		ext.Ascent = max(ext.Ascent, met.Ascent)
		ext.Descent = max(ext.Descent, met.Descent)
	}
	return ext
}

// MeasureString measures a single run of text.
func MeasureString(provider Provider, text string, spec FontSpec) Extent {
	return Measure(provider, []Span{{Text: text, Font: spec}})
}
