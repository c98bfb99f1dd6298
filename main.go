package main

import (
	"flag"
	"log"

	"fyne.io/fyne/v2"

	"SketchBoard/internal/board"
	"SketchBoard/internal/clipboard"
	"SketchBoard/internal/config"
	"SketchBoard/internal/history"
	"SketchBoard/internal/share"
	"SketchBoard/internal/ui"
)

func main() {
	configPath := flag.String("config", "", "path to config.toml")
	host := flag.Bool("host", false, "share this board on the local network")
	join := flag.String("join", "", "join a shared board at host:port, or \"discover\"")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	canvas := board.NewCanvas(cfg.CanvasWidth, cfg.CanvasHeight)
	engine := board.NewEngine(canvas, board.Style{
		Stroke:      cfg.StrokeColor,
		StrokeWidth: cfg.StrokeWidth,
		Fill:        cfg.FillColor,
	})
	hist := history.New(canvas)
	clip := clipboard.New(canvas, clipboard.Options{
		Once:    cfg.PasteOnce,
		OffsetX: &cfg.PasteOffsetX,
		OffsetY: &cfg.PasteOffsetY,
	})

	app := &ui.App{
		Canvas:    canvas,
		Engine:    engine,
		History:   hist,
		Clipboard: clip,
		Config:    cfg,
	}

	switch {
	case *host:
		mirror := share.NewMirror(canvas, dispatchUI)
		h, err := share.Serve(mirror, cfg.SharePort)
		if err != nil {
			log.Fatalf("host board: %v", err)
		}
		defer h.Close()
	case *join != "":
		joinBoard(canvas, *join)
	}

	app.Run()
}

func joinBoard(canvas *board.Canvas, addr string) {
	mirror := share.NewMirror(canvas, dispatchUI)
	if addr != "discover" {
		if _, err := share.Join(mirror, addr); err != nil {
			log.Fatalf("join board: %v", err)
		}
		return
	}
	// browse the LAN and take the first host that answers
	err := share.Discover(func(found string) {
		if _, err := share.Join(mirror, found); err != nil {
			log.Printf("join %s: %v", found, err)
		}
	})
	if err != nil {
		log.Fatalf("discover boards: %v", err)
	}
}

// dispatchUI hops remote mutations onto the Fyne event loop.
func dispatchUI(fn func()) { fyne.Do(fn) }
