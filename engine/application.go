package engine

import (
	"io/fs"

	"github.com/spaghettifunk/anima-assets/engine/core"
)

type ApplicationConfig struct {
	// The application name used in log lines.
	Name string
	// Root directory of the asset tree.
	AssetsDir string
	// File system the assets are read from. When nil AssetsDir is used.
	FS fs.FS
	// Scene id to load, relative to the asset root and without extension.
	Scene     string
	ShaderDir string
	// Output surface size; the main camera aspect is width / height.
	Width  uint32
	Height uint32
	// Optional preload manifest and the group requested from it.
	Manifest     string
	PreloadGroup string
	// Reload the world whenever an asset below AssetsDir changes.
	Watch    bool
	LogLevel core.LogLevel
}

// NewApplicationConfig maps the file/env configuration onto an application
// configuration.
func NewApplicationConfig(name string, cfg *core.Config) *ApplicationConfig {
	return &ApplicationConfig{
		Name:         name,
		AssetsDir:    cfg.AssetsDir,
		Scene:        cfg.Scene,
		ShaderDir:    cfg.ShaderDir,
		Width:        cfg.Width,
		Height:       cfg.Height,
		Manifest:     cfg.Manifest,
		PreloadGroup: cfg.PreloadGroup,
		LogLevel:     cfg.Level(),
	}
}

// Aspect is the width over height ratio of the output surface.
func (ac *ApplicationConfig) Aspect() float32 {
	if ac.Height == 0 {
		return 1
	}
	return float32(ac.Width) / float32(ac.Height)
}
