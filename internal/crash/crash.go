/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package crash turns a panic in the editor into a crash report on disk and a
// non-zero exit.
package crash

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"time"

	applog "imagemarker/internal/log"
	"imagemarker/internal/scene"
	"imagemarker/internal/version"
)

// exitFn is used to allow testing of Recover without terminating the test process.
var exitFn = os.Exit

// EnvCrashDir overrides the directory crash reports are written to.
const EnvCrashDir = "IMK_CRASH_DIR"

func reportDir() string {
	if d := os.Getenv(EnvCrashDir); d != "" {
		return d
	}
	return os.TempDir()
}

// Recover captures a panic, logs an error with stacktrace, writes a report
// describing the stage (if provided) and exits with code 2.
//
// Usage: defer crash.Recover(stage)
func Recover(st *scene.Stage) {
	if r := recover(); r != nil {
		handle(r, st)
	}
}

// RecoverWith is Recover for callers whose stage does not exist yet when the
// defer is registered. stage is called only after a panic and may be nil.
//
// Usage: defer crash.RecoverWith(func() *scene.Stage { return st })
func RecoverWith(stage func() *scene.Stage) {
	if r := recover(); r != nil {
		var st *scene.Stage
		if stage != nil {
			st = stage()
		}
		handle(r, st)
	}
}

func handle(r any, st *scene.Stage) {
	l := applog.WithComponent("crash")
	stack := debug.Stack()
	l.Error("panic recovered", slog.Any("panic", r), slog.String("stack", string(stack)))

	reportPath, err := writeReport(st, r, stack)
	if err != nil {
		l.Error("failed to write crash report", slog.Any("err", err), slog.String("path", reportPath))
	}
	if _, err := fmt.Fprintf(os.Stderr, "A fatal error occurred. A crash report was saved to: %s\n", reportPath); err != nil {
		l.Error("failed to write crash message to stderr", slog.Any("err", err))
	}
	if _, err := fmt.Fprintf(os.Stderr, "Version: %s\nOS/Arch: %s/%s\n", version.String(), runtime.GOOS, runtime.GOARCH); err != nil {
		l.Error("failed to write version info to stderr", slog.Any("err", err))
	}
	_ = applog.Close()
	exitFn(2)
}

func writeReport(st *scene.Stage, panicVal any, stack []byte) (string, error) {
	dir := reportDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return dir, err
	}
	stamp := time.Now().Format("20060102-150405")
	path := filepath.Join(dir, fmt.Sprintf("imagemarker-crash-%s-%d.log", stamp, os.Getpid()))

	var buf bytes.Buffer
	_, _ = fmt.Fprintf(&buf, "Image Marker Crash Report\n")
	_, _ = fmt.Fprintf(&buf, "Timestamp: %s\n", time.Now().Format(time.RFC3339))
	_, _ = fmt.Fprintf(&buf, "Version: %s\n", version.String())
	_, _ = fmt.Fprintf(&buf, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	if st != nil {
		writeStage(&buf, st)
	}
	_, _ = fmt.Fprintf(&buf, "\nPanic: %v\n\n", panicVal)
	_, _ = fmt.Fprintf(&buf, "Stack:\n%s\n", string(stack))

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return path, err
	}
	return path, nil
}

// writeStage records the canvas size and what each layer held.
func writeStage(buf *bytes.Buffer, st *scene.Stage) {
	w, h := st.Size()
	_, _ = fmt.Fprintf(buf, "Stage: %gx%g initialized=%t\n", w, h, st.Initialized())
	for _, l := range st.Layers() {
		_, _ = fmt.Fprintf(buf, "Layer %s: nodes=%d snap_targets=%d guides=%d\n",
			l.Name, l.Len(), l.Count(scene.CategorySnapTarget), l.Count(scene.CategoryGuide))
	}
}
