/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package crash

import (
	"os"
	"strings"
	"testing"

	"imagemarker/internal/scene"
	"imagemarker/internal/vector"
)

func TestWriteReportCreatesFile(t *testing.T) {
	t.Setenv(EnvCrashDir, t.TempDir())
	path, err := writeReport(nil, "boom", []byte("stacktrace"))
	if err != nil {
		t.Fatalf("writeReport error: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	s := string(b)
	if !strings.Contains(s, "Image Marker Crash Report") {
		t.Fatalf("report header missing")
	}
	if !strings.Contains(s, "Panic: boom") {
		t.Fatalf("panic content missing: %s", s)
	}
	if strings.Contains(s, "Stage:") {
		t.Fatalf("no stage section expected without a stage")
	}
}

func TestWriteReportDescribesStage(t *testing.T) {
	t.Setenv(EnvCrashDir, t.TempDir())
	st := scene.NewStage()
	_ = st.Resize(800, 600)
	l := scene.NewLayer("num-text")
	st.AddLayer(l)
	l.Add(scene.NewFrame(vector.Pt{}, 10, 10, vector.Stroke{}))

	path, err := writeReport(st, "kaboom", []byte("stack"))
	if err != nil {
		t.Fatalf("writeReport error: %v", err)
	}
	b, _ := os.ReadFile(path)
	s := string(b)
	if !strings.Contains(s, "Stage: 800x600 initialized=true") {
		t.Fatalf("stage line missing: %s", s)
	}
	if !strings.Contains(s, "Layer num-text: nodes=1 snap_targets=1 guides=0") {
		t.Fatalf("layer line missing: %s", s)
	}
}
