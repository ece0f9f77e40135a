/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package scene

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
)

func TestDecodeImage_PNGAndBMP(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 3, 2))
	var pb, bb bytes.Buffer
	if err := png.Encode(&pb, src); err != nil {
		t.Fatal(err)
	}
	if err := bmp.Encode(&bb, src); err != nil {
		t.Fatal(err)
	}
	for name, buf := range map[string]*bytes.Buffer{"png": &pb, "bmp": &bb} {
		img, format, err := DecodeImage(buf)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if format != name || img.Bounds().Dx() != 3 || img.Bounds().Dy() != 2 {
			t.Fatalf("%s: got format %q bounds %v", name, format, img.Bounds())
		}
	}
}

func TestDecodeImage_RejectsGarbage(t *testing.T) {
	if _, _, err := DecodeImage(bytes.NewReader([]byte("not an image"))); err == nil {
		t.Fatalf("expected error")
	}
}

func TestBaseImageLayer_Load(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "base.png")
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 64, 32))); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	s := NewStage()
	imgs := NewBaseImageLayer(s)
	if _, err := imgs.Load(p); err != nil {
		t.Fatalf("load: %v", err)
	}
	if w, h := s.Size(); w != 64 || h != 32 {
		t.Fatalf("stage size = %vx%v", w, h)
	}
	if _, err := imgs.Load(filepath.Join(dir, "missing.png")); err == nil {
		t.Fatalf("missing file should fail")
	}
}
