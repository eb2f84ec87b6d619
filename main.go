/*
anima-assets loads a scene and every resource it references through a
headless resource factory and prints what was loaded. With -watch it keeps
reloading the scene whenever a file below the asset root changes.
*/
package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/spaghettifunk/anima-assets/engine"
	"github.com/spaghettifunk/anima-assets/engine/core"
	"github.com/spaghettifunk/anima-assets/engine/renderer/headless"
	"github.com/spaghettifunk/anima-assets/testbed"
	"github.com/spaghettifunk/anima-assets/testbed/sample"
)

func main() {
	var (
		configPath = flag.String("config", "anima.toml", "TOML configuration file")
		envFile    = flag.String("env", ".env", "file with ANIMA_* environment overrides")
		scene      = flag.String("scene", "", "scene id to load, overrides the configuration")
		assetsDir  = flag.String("assets", "", "asset root directory, overrides the configuration")
		width      = flag.Uint("width", 0, "output surface width")
		height     = flag.Uint("height", 0, "output surface height")
		preload    = flag.String("preload", "", "manifest group to preload before the scene")
		watch      = flag.Bool("watch", false, "reload the scene whenever an asset changes")
		demo       = flag.String("demo", "", "write the sample asset tree to this directory and load it")
	)
	flag.Parse()

	cfg, err := core.LoadConfig(*configPath, *envFile)
	if err != nil {
		core.LogFatal(err.Error())
	}
	core.SetLogLevel(cfg.Level())

	if *demo != "" {
		if err := sample.WriteTo(*demo); err != nil {
			core.LogFatal("failed to write the sample assets: %s", err)
		}
		cfg.AssetsDir = *demo
		cfg.Scene = sample.SceneID
		cfg.ShaderDir = sample.ShaderDir
		cfg.Manifest = sample.ManifestPath
		cfg.PreloadGroup = sample.PreloadGroup
	}
	if *assetsDir != "" {
		cfg.AssetsDir = *assetsDir
	}
	if *scene != "" {
		cfg.Scene = *scene
	}
	if *width > 0 {
		cfg.Width = uint32(*width)
	}
	if *height > 0 {
		cfg.Height = uint32(*height)
	}
	if *preload != "" {
		cfg.PreloadGroup = *preload
	}
	if err := cfg.Validate(); err != nil {
		core.LogFatal(err.Error())
	}

	appConfig := engine.NewApplicationConfig("Anima Assets", cfg)
	appConfig.Watch = *watch
	tb := testbed.NewTestGame(appConfig, os.Stdout)

	engine, err := engine.New(tb.Game, headless.NewFactory())
	if err != nil {
		core.LogFatal(err.Error())
	}

	if err := engine.Initialize(); err != nil {
		core.LogFatal(err.Error())
	}

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)

	// start shutdown goroutine
	go func() {
		<-sigCh
		_ = engine.Shutdown()
	}()

	runErr := engine.Run()
	if err := engine.Shutdown(); err != nil {
		core.LogError(err.Error())
	}
	if runErr != nil {
		os.Exit(1)
	}
}
