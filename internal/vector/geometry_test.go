/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

import "testing"

func TestRectContainsAndInset(t *testing.T) {
	r := R(10, 20, 100, 50)
	if !r.Contains(Pt{10, 20}) || !r.Contains(Pt{110, 70}) {
		t.Fatalf("expected edge points to be contained")
	}
	in := r.Inset(5, 5)
	if in.X != 15 || in.Y != 25 || in.W != 90 || in.H != 40 {
		t.Fatalf("unexpected inset: %+v", in)
	}
	out := r.Inset(-1, -1)
	if out.X != 9 || out.Y != 19 || out.W != 102 || out.H != 52 {
		t.Fatalf("unexpected outset: %+v", out)
	}
}

func TestRectSpanPerOrientation(t *testing.T) {
	r := R(400, 0, 100, 50)
	s, c, e := r.Span(Vertical)
	if s != 400 || c != 450 || e != 500 {
		t.Fatalf("vertical span = %v %v %v", s, c, e)
	}
	s, c, e = r.Span(Horizontal)
	if s != 0 || c != 25 || e != 50 {
		t.Fatalf("horizontal span = %v %v %v", s, c, e)
	}
}

func TestRectUnionAndTranslate(t *testing.T) {
	u := R(0, 0, 10, 10).Union(R(20, 5, 10, 10))
	if u.X != 0 || u.Y != 0 || u.W != 30 || u.H != 15 {
		t.Fatalf("unexpected union: %+v", u)
	}
	m := R(1, 2, 3, 4).Translate(10, -2)
	if m.X != 11 || m.Y != 0 || m.W != 3 || m.H != 4 {
		t.Fatalf("unexpected translate: %+v", m)
	}
	if c := R(0, 0, 10, 20).Center(); c.X != 5 || c.Y != 10 {
		t.Fatalf("unexpected center: %+v", c)
	}
}

func TestParseColor(t *testing.T) {
	cases := map[string]Color{
		"rgb(0,161,255)": {0, 161, 255, 255},
		"#00a1ff":        {0, 161, 255, 255},
		"#fff":           White,
		"#ff000080":      {255, 0, 0, 128},
		"red":            Red,
	}
	for in, want := range cases {
		got, err := ParseColor(in)
		if err != nil {
			t.Fatalf("ParseColor(%q) error: %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseColor(%q) = %+v, want %+v", in, got, want)
		}
	}
	if _, err := ParseColor("rgb(1,2)"); err == nil {
		t.Fatalf("expected error for short rgb()")
	}
	if _, err := ParseColor("chartreuse"); err == nil {
		t.Fatalf("expected error for unknown name")
	}
	if s := (Color{0, 161, 255, 255}).String(); s != "#00a1ff" {
		t.Fatalf("String() = %q", s)
	}
}
