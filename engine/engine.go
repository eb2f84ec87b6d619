package engine

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spaghettifunk/anima-assets/engine/assets"
	"github.com/spaghettifunk/anima-assets/engine/core"
	"github.com/spaghettifunk/anima-assets/engine/renderer"
	"github.com/spaghettifunk/anima-assets/engine/renderer/components"
	"github.com/spaghettifunk/anima-assets/engine/renderer/metadata"
	"github.com/spaghettifunk/anima-assets/engine/systems"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine completed initialization and can load worlds
	EngineStageInitialized
	// Engine is loading or watching the asset tree
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
)

// LoadReport summarizes one load session.
type LoadReport struct {
	Session  uuid.UUID
	Meshes   []string
	Textures []string
	Programs []string
	Duration time.Duration
}

// World is the result of a load session: the scene and the fallback texture.
// It keeps no reference to the session that produced it.
type World struct {
	Scene           *components.Scene
	FallbackTexture *metadata.Texture
	Report          LoadReport
}

// LoadWorld runs one load session: it creates a LoadContext, preloads the
// configured manifest group, loads the scene and sets the aspect of its main
// camera to the output surface ratio.
func LoadWorld(f renderer.Factory, cfg *ApplicationConfig) (*World, error) {
	clock := core.NewClock()
	clock.Start()

	fsys := cfg.FS
	if fsys == nil {
		fsys = os.DirFS(cfg.AssetsDir)
	}
	opts := []systems.LoadContextOption{systems.WithFileSystem(fsys)}
	if cfg.ShaderDir != "" {
		opts = append(opts, systems.WithShaderDir(cfg.ShaderDir))
	}
	lc, err := systems.NewLoadContext(f, opts...)
	if err != nil {
		return nil, err
	}

	if err := preload(lc, fsys, cfg); err != nil {
		return nil, err
	}

	scene, err := systems.LoadScene(lc, cfg.Scene)
	if err != nil {
		return nil, err
	}
	if cam := scene.MainCamera(); cam != nil {
		cam.SetAspect(cfg.Aspect())
	} else {
		core.LogWarn("scene %s has no camera", cfg.Scene)
	}

	clock.Stop()
	cache := lc.Cache()
	return &World{
		Scene:           scene,
		FallbackTexture: lc.FallbackTexture(),
		Report: LoadReport{
			Session:  lc.SessionID(),
			Meshes:   cache.MeshKeys(),
			Textures: cache.TextureKeys(),
			Programs: cache.ProgramKeys(),
			Duration: clock.Elapsed(),
		},
	}, nil
}

func preload(lc *systems.LoadContext, fsys fs.FS, cfg *ApplicationConfig) error {
	if cfg.Manifest == "" || cfg.PreloadGroup == "" {
		return nil
	}
	m, err := assets.LoadManifest(fsys, cfg.Manifest)
	if err != nil {
		return err
	}
	lc.SetPrefix(cfg.Scene)
	return systems.Preload(lc, m, cfg.PreloadGroup)
}

type Engine struct {
	currentStage Stage
	gameInstance *Game
	factory      renderer.Factory
	assetManager *assets.AssetManager
	metrics      *core.LoadMetrics
	world        *World

	mutex    sync.Mutex
	quit     chan struct{}
	quitOnce sync.Once
}

func New(g *Game, f renderer.Factory) (*Engine, error) {
	if g.ApplicationConfig == nil {
		return nil, fmt.Errorf("%w: game without application config", core.ErrInvalidConfig)
	}
	am, err := assets.NewAssetManager(g.ApplicationConfig.AssetsDir)
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}
	if g.ApplicationConfig.FS == nil {
		g.ApplicationConfig.FS = am.FS()
	}

	return &Engine{
		currentStage: EngineStageUninitialized,
		gameInstance: g,
		factory:      f,
		assetManager: am,
		metrics:      core.NewLoadMetrics(),
		quit:         make(chan struct{}),
	}, nil
}

func (e *Engine) Initialize() error {
	core.SetLogLevel(e.gameInstance.ApplicationConfig.LogLevel)

	if e.gameInstance.FnInitialize != nil {
		if err := e.gameInstance.FnInitialize(); err != nil {
			core.LogError("game failed to initialize: %s", err)
			return err
		}
	}
	if e.gameInstance.ApplicationConfig.Watch {
		if err := e.assetManager.Watch(); err != nil {
			core.LogError(err.Error())
			return err
		}
	}
	e.setStage(EngineStageInitialized)
	core.LogInfo("%s initialized (assets: %s)", e.gameInstance.ApplicationConfig.Name, e.assetManager.Root())
	return nil
}

// Run loads the world once. In watch mode it then reloads the world after
// every batch of asset changes until Shutdown is called.
func (e *Engine) Run() error {
	if e.Stage() != EngineStageInitialized {
		return errors.New("engine not initialized")
	}
	e.setStage(EngineStageRunning)

	err := e.load()
	if !e.gameInstance.ApplicationConfig.Watch {
		return err
	}

	for {
		select {
		case batch, ok := <-e.assetManager.Events():
			if !ok {
				return nil
			}
			for _, change := range batch {
				core.LogInfo("%s changed (%s)", change.Path, change.Type)
			}
			// a failed reload keeps the previous world
			if err := e.load(); err != nil {
				core.LogDebug("reload failed: %s", err)
			}
		case <-e.quit:
			return nil
		}
	}
}

func (e *Engine) load() error {
	clock := core.NewClock()
	clock.Start()
	world, err := LoadWorld(e.factory, e.gameInstance.ApplicationConfig)
	clock.Stop()
	e.metrics.Record(clock.Elapsed(), err)
	if err != nil {
		if e.gameInstance.FnOnLoadError != nil {
			e.gameInstance.FnOnLoadError(err)
		}
		return err
	}

	e.mutex.Lock()
	e.world = world
	e.mutex.Unlock()

	if e.gameInstance.FnOnLoad != nil {
		if err := e.gameInstance.FnOnLoad(world); err != nil {
			core.LogError(err.Error())
			return err
		}
	}
	return nil
}

func (e *Engine) Metrics() *core.LoadMetrics {
	return e.metrics
}

// World returns the last world that loaded successfully, or nil.
func (e *Engine) World() *World {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	return e.world
}

func (e *Engine) Stage() Stage {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	return e.currentStage
}

func (e *Engine) setStage(s Stage) {
	e.mutex.Lock()
	e.currentStage = s
	e.mutex.Unlock()
}

func (e *Engine) Shutdown() error {
	var err error
	e.quitOnce.Do(func() {
		e.setStage(EngineStageShuttingDown)
		close(e.quit)
		loads, failures := e.metrics.Counts()
		core.LogInfo("%d loads, %d failed, average load time %s", loads, failures, e.metrics.Average())
		if e.gameInstance.FnShutdown != nil {
			err = e.gameInstance.FnShutdown()
		}
		if cerr := e.assetManager.Close(); cerr != nil && !errors.Is(cerr, core.ErrWatcherClosed) {
			err = errors.Join(err, cerr)
		}
	})
	return err
}
