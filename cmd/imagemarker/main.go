/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"fmt"
	"image"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"imagemarker/internal/config"
	"imagemarker/internal/crash"
	applog "imagemarker/internal/log"
	"imagemarker/internal/scene"
	"imagemarker/internal/ui"
	"imagemarker/internal/vector"
	"imagemarker/internal/version"
)

func usage() {
	fmt.Println("Image Marker")
	fmt.Printf("Version: %s\n", version.String())
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  imagemarker version|-v|--version   Show version")
	fmt.Println("  imagemarker config                  Print the effective configuration and validate it")
	fmt.Println("  imagemarker demo                    Run a headless drag and print the guides it snaps to")
	fmt.Println("  imagemarker ui [<image>]            Launch desktop UI (build with -tags fyne for full UI)")
}

func main() {
	cfg, cfgErr := config.Load()
	applog.Init(cfg.LogOptions())
	l := applog.WithComponent("cli")
	if cfgErr != nil {
		l.Warn("config load failed, using defaults", slog.Any("err", cfgErr))
	}
	var st *scene.Stage
	defer crash.RecoverWith(func() *scene.Stage { return st })

	args := os.Args
	l.Debug("start", slog.Int("args", len(args)))
	if len(args) > 1 {
		switch args[1] {
		case "version", "--version", "-v":
			fmt.Println("Image Marker")
			fmt.Println(version.String())
			return
		case "config":
			if p, err := config.ConfigPath(); err == nil {
				fmt.Println("# path:", p)
			}
			out, err := yaml.Marshal(cfg)
			if err != nil {
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			fmt.Print(string(out))
			if err := config.Validate(cfg); err != nil {
				l.Error("config invalid", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			return
		case "demo":
			opts, err := cfg.SnapOptions()
			if err != nil {
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			ed := ui.NewEditor(opts)
			st = ed.Stage
			if err := runDemo(ed); err != nil {
				l.Error("demo failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			return
		case "ui":
			var path string
			if len(args) >= 3 {
				path = args[2]
			}
			if err := ui.Run(path); err != nil {
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			return
		}
	}

	usage()
}

// runDemo drops a frame and a label on a blank 1000x600 image and drags them
// near the canvas midpoints and each other.
func runDemo(ed *ui.Editor) error {
	if _, err := ed.Images.Add(image.NewRGBA(image.Rect(0, 0, 1000, 600))); err != nil {
		return err
	}
	frame, err := ed.Frames.Add()
	if err != nil {
		return err
	}
	label, err := ed.Texts.Add("1")
	if err != nil {
		return err
	}

	steps := []struct {
		name string
		node scene.Node
		to   vector.Pt
	}{
		{"frame near the vertical midline", frame, vector.Pt{X: 451.4, Y: 120}},
		{"frame near the top-left corner", frame, vector.Pt{X: 1.6, Y: 0.5}},
		{"label below the frame", label, vector.Pt{X: 1.3, Y: 190}},
		{"label in open space", label, vector.Pt{X: 700, Y: 420}},
	}
	for _, s := range steps {
		guides := ed.DragTo(s.node, s.to)
		b := s.node.ClientRect()
		fmt.Printf("%-34s -> (%g,%g)  %s\n", s.name, b.X, b.Y, ui.DescribeGuides(guides))
		ed.EndDrag()
	}
	return nil
}
