package ui

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"SketchBoard/internal/board"
	"SketchBoard/internal/clipboard"
	"SketchBoard/internal/config"
	"SketchBoard/internal/history"
	"SketchBoard/internal/transfer"
)

// App wires the whiteboard pieces to a Fyne window and exposes the
// toolbar command surface.
type App struct {
	Canvas    *board.Canvas
	Engine    *board.Engine
	History   *history.History
	Clipboard *clipboard.Clipboard
	Config    config.Config

	win    fyne.Window
	status *widget.Label
}

// Run builds the window and blocks until it closes.
func (a *App) Run() {
	fyneApp := app.New()
	a.win = fyneApp.NewWindow("SketchBoard")
	a.win.Resize(fyne.NewSize(float32(a.Config.CanvasWidth), float32(a.Config.CanvasHeight)))

	a.status = widget.NewLabel("Ready")
	surface := NewBoardWidget(a.Canvas, a.Engine)
	toolbar := NewToolbar(a)

	content := container.NewBorder(toolbar, a.status, nil, nil, surface)
	a.win.SetContent(content)

	if a.Config.Shortcuts {
		a.bindShortcuts()
	}
	a.Canvas.Ready()
	a.win.ShowAndRun()
}

// SetStatus surfaces a transient message on the status bar.
func (a *App) SetStatus(text string) {
	if a.status == nil {
		log.Println(text)
		return
	}
	a.status.SetText(text)
}

func (a *App) bindShortcuts() {
	c := a.win.Canvas()
	bind := func(name fyne.KeyName, fn func()) {
		c.AddShortcut(&desktop.CustomShortcut{KeyName: name, Modifier: fyne.KeyModifierControl},
			func(fyne.Shortcut) { fn() })
	}
	bind(fyne.KeyC, a.Copy)
	bind(fyne.KeyV, a.Paste)
	bind(fyne.KeyZ, a.Undo)
	bind(fyne.KeyY, a.Redo)
	c.SetOnTypedKey(func(ev *fyne.KeyEvent) {
		if ev.Name == fyne.KeyDelete || ev.Name == fyne.KeyBackspace {
			a.Remove()
		}
	})
}

// Toolbar command surface. Empty-operation calls are silent no-ops.

func (a *App) SetTool(t board.Tool) {
	a.Engine.SetMode(t)
	a.SetStatus(fmt.Sprintf("Tool: %s", t))
}

func (a *App) SetStrokeWidth(w float64) { a.Engine.SetStrokeWidth(w) }

func (a *App) Group() {
	if _, err := a.Canvas.Group(); err != nil {
		return
	}
	a.SetStatus("Grouped selection")
}

func (a *App) Ungroup() {
	sel := a.Canvas.Selection()
	if len(sel) != 1 {
		return
	}
	if _, err := a.Canvas.Ungroup(sel[0]); err != nil {
		return
	}
	a.SetStatus("Ungrouped selection")
}

func (a *App) Remove() {
	sel := a.Canvas.Selection()
	if len(sel) == 0 {
		return
	}
	a.Canvas.Remove(sel...)
}

func (a *App) Copy()  { a.Clipboard.Copy() }
func (a *App) Paste() { a.Clipboard.Paste() }
func (a *App) Undo()  { a.History.Undo() }
func (a *App) Redo()  { a.History.Redo() }

func (a *App) ClearBoard() {
	a.Canvas.Clear()
	a.SetStatus("Board cleared")
}

// Export shows a save dialog for the chosen format.
func (a *App) Export(format transfer.Format) {
	dialog.ShowFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			a.SetStatus(fmt.Sprintf("Export failed: %v", err))
			return
		}
		if writer == nil {
			return // cancelled
		}
		defer writer.Close()
		name := strings.TrimSpace(writer.URI().Name())
		if name == "" || name == "."+string(format) {
			a.SetStatus("Export needs a file name")
			return
		}
		opts := transfer.Options{KeepBlank: a.Config.KeepImageBlank}
		if err := transfer.ExportTo(a.Canvas, writer, format, opts); err != nil {
			a.SetStatus(fmt.Sprintf("Export failed: %v", err))
			return
		}
		if format == transfer.FormatJSON {
			a.copyJSONToClipboard()
		}
		a.SetStatus(fmt.Sprintf("Exported %s", writer.URI().Name()))
	}, a.win)
}

// copyJSONToClipboard mirrors the JSON export onto the system clipboard.
// A clipboard failure is logged; the file export already succeeded.
func (a *App) copyJSONToClipboard() {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("clipboard write failed: %v", r)
		}
	}()
	var b strings.Builder
	if err := transfer.WriteJSON(a.Canvas, &b); err != nil {
		log.Printf("clipboard write failed: %v", err)
		return
	}
	a.win.Clipboard().SetContent(b.String())
}

// Import shows an open dialog and routes the file by extension.
func (a *App) Import() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			a.SetStatus(fmt.Sprintf("Import failed: %v", err))
			return
		}
		if reader == nil {
			return // cancelled
		}
		defer reader.Close()
		opts := transfer.Options{KeepSVGBlank: a.Config.KeepSVGBlank}
		switch strings.ToLower(filepath.Ext(reader.URI().Name())) {
		case ".json":
			n, err := transfer.ImportJSON(a.Canvas, reader)
			if err != nil {
				a.SetStatus(fmt.Sprintf("Import failed: %v", err))
				return
			}
			a.SetStatus(fmt.Sprintf("Imported %d objects", n))
		case ".svg":
			n, err := transfer.ImportSVG(a.Canvas, reader, opts)
			if err != nil {
				a.SetStatus(fmt.Sprintf("Import failed: %v", err))
				return
			}
			a.SetStatus(fmt.Sprintf("Imported %d shapes", n))
		case ".png", ".jpg", ".jpeg":
			if _, err := transfer.ImportImage(a.Canvas, reader.URI().Path()); err != nil {
				a.SetStatus(fmt.Sprintf("Import failed: %v", err))
				return
			}
			a.SetStatus(fmt.Sprintf("Imported %s", reader.URI().Name()))
		default:
			a.SetStatus(fmt.Sprintf("Unsupported file type %q", filepath.Ext(reader.URI().Name())))
		}
	}, a.win)
}
