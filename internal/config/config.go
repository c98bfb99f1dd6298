// Package config loads the optional SketchBoard TOML configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds every user-tunable knob. Zero values mean "use default";
// Load fills defaults in.
type Config struct {
	// Shortcuts enables the copy/paste/undo/redo/delete key bindings.
	Shortcuts bool
	// PasteOnce clears the clipboard buffer after the first paste.
	PasteOnce bool
	// PasteOffsetX/Y is the stair-step applied to each paste.
	PasteOffsetX float64
	PasteOffsetY float64
	// KeepImageBlank keeps the full canvas extent in raster exports.
	KeepImageBlank bool
	// KeepSVGBlank keeps generator artifacts when importing SVG.
	KeepSVGBlank bool
	// StrokeWidth/StrokeColor/FillColor seed the drawing style.
	StrokeWidth float64
	StrokeColor string
	FillColor   string
	// CanvasWidth/CanvasHeight size the board surface.
	CanvasWidth  float64
	CanvasHeight float64
	// SharePort is the LAN share listen port.
	SharePort int
}

const defaultConfigPath = "~/.config/sketchboard/config.toml"

func defaults() Config {
	return Config{
		Shortcuts:      true,
		PasteOffsetX:   10,
		PasteOffsetY:   10,
		KeepImageBlank: true,
		StrokeWidth:    3,
		StrokeColor:    "#000000",
		CanvasWidth:    1024,
		CanvasHeight:   768,
		SharePort:      8888,
	}
}

// Load reads the config at path, falling back to defaults when the file
// is missing. An empty path means the default location.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := defaults()
	data, err := os.ReadFile(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}

	var raw struct {
		Shortcuts *bool `toml:"shortcuts"`
		Clipboard struct {
			Once    *bool    `toml:"once"`
			OffsetX *float64 `toml:"offset_x"`
			OffsetY *float64 `toml:"offset_y"`
		} `toml:"clipboard"`
		Export struct {
			KeepImageBlank *bool `toml:"keep_image_blank"`
		} `toml:"export"`
		Import struct {
			KeepSVGBlank *bool `toml:"keep_svg_blank"`
		} `toml:"import"`
		Stroke struct {
			Width float64 `toml:"width"`
			Color string  `toml:"color"`
			Fill  string  `toml:"fill"`
		} `toml:"stroke"`
		Canvas struct {
			Width  float64 `toml:"width"`
			Height float64 `toml:"height"`
		} `toml:"canvas"`
		Share struct {
			Port int `toml:"port"`
		} `toml:"share"`
	}
	if err := toml.Unmarshal(data, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if raw.Shortcuts != nil {
		cfg.Shortcuts = *raw.Shortcuts
	}
	if raw.Clipboard.Once != nil {
		cfg.PasteOnce = *raw.Clipboard.Once
	}
	if raw.Clipboard.OffsetX != nil {
		cfg.PasteOffsetX = *raw.Clipboard.OffsetX
	}
	if raw.Clipboard.OffsetY != nil {
		cfg.PasteOffsetY = *raw.Clipboard.OffsetY
	}
	if raw.Export.KeepImageBlank != nil {
		cfg.KeepImageBlank = *raw.Export.KeepImageBlank
	}
	if raw.Import.KeepSVGBlank != nil {
		cfg.KeepSVGBlank = *raw.Import.KeepSVGBlank
	}
	if raw.Stroke.Width > 0 {
		cfg.StrokeWidth = raw.Stroke.Width
	}
	if c := strings.TrimSpace(raw.Stroke.Color); c != "" {
		cfg.StrokeColor = c
	}
	if c := strings.TrimSpace(raw.Stroke.Fill); c != "" {
		cfg.FillColor = c
	}
	if raw.Canvas.Width > 0 {
		cfg.CanvasWidth = raw.Canvas.Width
	}
	if raw.Canvas.Height > 0 {
		cfg.CanvasHeight = raw.Canvas.Height
	}
	if raw.Share.Port > 0 {
		cfg.SharePort = raw.Share.Port
	}
	return cfg, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		path = defaultConfigPath
	}
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return filepath.Abs(path)
}
