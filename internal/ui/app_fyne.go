//go:build fyne && cgo

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
	"log/slog"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	fstorage "fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"imagemarker/internal/config"
	"imagemarker/internal/crash"
	applog "imagemarker/internal/log"
	"imagemarker/internal/vector"
	"imagemarker/internal/version"
)

// Run starts the Fyne-based desktop editor. A non-empty imagePath is loaded
// as the base image.
func Run(imagePath string) error {
	cfg, cfgErr := config.Load()
	applog.Init(cfg.LogOptions())
	defer func() { _ = applog.Close() }()
	l := applog.WithComponent("ui")
	l.Info("starting UI", slog.String("version", version.String()))
	if cfgErr != nil {
		l.Warn("config load failed, using defaults", slog.Any("err", cfgErr))
	}
	if err := config.Validate(cfg); err != nil {
		l.Warn("config invalid, using defaults", slog.Any("err", err))
		cfg = config.Defaults()
	}
	opts, err := cfg.SnapOptions()
	if err != nil {
		return err
	}

	ed := NewEditor(opts)
	defer crash.Recover(ed.Stage)

	fyneApp := app.NewWithID("imagemarker")
	switch cfg.Editor.Theme {
	case "dark":
		fyneApp.Settings().SetTheme(theme.DarkTheme())
	case "light":
		fyneApp.Settings().SetTheme(theme.LightTheme())
	}
	w := fyneApp.NewWindow("Image Marker")
	prefs := fyneApp.Preferences()
	winW := max(prefs.IntWithFallback("window.width", 1200), 800)
	winH := max(prefs.IntWithFallback("window.height", 800), 600)
	w.Resize(fyne.NewSize(float32(winW), float32(winH)))

	status := widget.NewLabel("Open a base image to start")
	ec := NewEditorCanvas(ed.Stage, ed.Snap)
	ec.OnGuides = func(guides []vector.Guide) { status.SetText(DescribeGuides(guides)) }

	loadImage := func(path string) {
		first := !ed.Stage.Initialized()
		n, err := ed.Images.Load(path)
		if err != nil {
			l.Error("load image failed", slog.String("path", path), slog.Any("err", err))
			dialog.ShowError(err, w)
			return
		}
		sz := n.Size()
		status.SetText(fmt.Sprintf("Loaded %s (%gx%g)", path, sz.W, sz.H))
		if first {
			ec.FitToStage()
		}
		ec.Refresh()
	}

	openBtn := widget.NewButton("Open image…", func() {
		fd := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
			if err != nil {
				dialog.ShowError(err, w)
				return
			}
			if rc == nil {
				return
			}
			path := rc.URI().Path()
			_ = rc.Close()
			loadImage(path)
		}, w)
		fd.SetFilter(fstorage.NewExtensionFileFilter([]string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff", ".webp"}))
		fd.Show()
	})

	nextNumber := 1
	textEntry := widget.NewEntry()
	textBtn := widget.NewButton("Add label", func() {
		textEntry.SetText(strconv.Itoa(nextNumber))
		dialog.ShowForm("Add label", "Add", "Cancel", []*widget.FormItem{widget.NewFormItem("Text", textEntry)}, func(ok bool) {
			if !ok {
				return
			}
			txt := strings.TrimSpace(textEntry.Text)
			if txt == "" {
				return
			}
			if _, err := ed.Texts.Add(txt); err != nil {
				dialog.ShowError(err, w)
				return
			}
			nextNumber++
			ec.Refresh()
		}, w)
	})

	frameBtn := widget.NewButton("Add frame", func() {
		if _, err := ed.Frames.Add(); err != nil {
			dialog.ShowError(err, w)
			return
		}
		ec.Refresh()
	})

	snapCheck := widget.NewCheck("Snap to guides", func(on bool) {
		ed.Snap.SetEnabled(on)
		ec.Refresh()
	})
	snapCheck.SetChecked(opts.Enabled)

	fitBtn := widget.NewButton("Fit", ec.FitToStage)

	w.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		if ev.Name == fyne.KeyEscape {
			ec.CancelDrag()
		}
	})

	toolbar := container.NewHBox(openBtn, textBtn, frameBtn, fitBtn, snapCheck)
	w.SetContent(container.NewBorder(toolbar, status, nil, nil, ec))
	w.SetOnClosed(func() {
		sz := w.Canvas().Size()
		prefs.SetInt("window.width", int(sz.Width))
		prefs.SetInt("window.height", int(sz.Height))
	})

	if strings.TrimSpace(imagePath) != "" {
		loadImage(imagePath)
	}

	w.ShowAndRun()
	return nil
}
