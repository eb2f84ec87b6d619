package assets

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/exp/slices"

	"github.com/spaghettifunk/anima-assets/engine/core"
	"github.com/spaghettifunk/anima-assets/engine/resources"
)

const DefaultDebounce = 150 * time.Millisecond

// ChangeEvent reports that an asset file below the root changed.
type ChangeEvent struct {
	// Path is slash separated and relative to the asset root.
	Path string
	Type resources.ResourceType
	Op   fsnotify.Op
}

// AssetManager owns the asset root. Loaders read through FS; Watch reports
// changes below the root in debounced batches.
type AssetManager struct {
	root     string
	fsys     fs.FS
	debounce time.Duration

	mutex    sync.Mutex
	fsnotify *fsnotify.Watcher
	isClosed bool
	events   chan []ChangeEvent
	errors   chan error
	done     chan struct{}
	stopped  chan struct{}
}

func NewAssetManager(root string) (*AssetManager, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		core.LogError("asset root %s: %s", root, err)
		return nil, err
	}
	if !info.IsDir() {
		err := fmt.Errorf("%w: asset root %s is not a directory", core.ErrInvalidConfig, root)
		core.LogError(err.Error())
		return nil, err
	}

	return &AssetManager{
		root:     abs,
		fsys:     os.DirFS(abs),
		debounce: DefaultDebounce,
		events:   make(chan []ChangeEvent),
		errors:   make(chan error, 1),
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}, nil
}

func (am *AssetManager) Root() string {
	return am.root
}

// FS is the asset root as a file system.
func (am *AssetManager) FS() fs.FS {
	return am.fsys
}

// SetDebounce sets how long the watcher waits for more changes before it
// delivers a batch. It must be called before Watch.
func (am *AssetManager) SetDebounce(d time.Duration) {
	am.debounce = d
}

// Watch starts watching the root and all of its sub-directories.
func (am *AssetManager) Watch() error {
	am.mutex.Lock()
	defer am.mutex.Unlock()

	if am.isClosed {
		return core.ErrWatcherClosed
	}
	if am.fsnotify != nil {
		return nil
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	am.fsnotify = w
	if err := am.watchRecursive(am.root); err != nil {
		w.Close()
		am.fsnotify = nil
		return err
	}
	go am.start()
	core.LogInfo("watching %s for asset changes", am.root)
	return nil
}

// Events delivers batches of changes, sorted by path. The channel is closed
// by Close.
func (am *AssetManager) Events() <-chan []ChangeEvent {
	return am.events
}

// Errors delivers watcher errors. Errors are dropped while one is pending.
func (am *AssetManager) Errors() <-chan error {
	return am.errors
}

func (am *AssetManager) Close() error {
	am.mutex.Lock()
	if am.isClosed {
		am.mutex.Unlock()
		return core.ErrWatcherClosed
	}
	am.isClosed = true
	watching := am.fsnotify != nil
	am.mutex.Unlock()

	if !watching {
		close(am.events)
		return nil
	}
	close(am.done)
	<-am.stopped
	return am.fsnotify.Close()
}

func (am *AssetManager) start() {
	defer close(am.stopped)
	defer close(am.events)

	pending := make(map[string]ChangeEvent)
	timer := time.NewTimer(am.debounce)
	timer.Stop()
	var fire <-chan time.Time

	for {
		select {
		case e, ok := <-am.fsnotify.Events:
			if !ok {
				return
			}
			if am.handleFileEvent(e, pending) {
				timer.Reset(am.debounce)
				fire = timer.C
			}

		case err, ok := <-am.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError(err.Error())
			select {
			case am.errors <- err:
			default:
			}

		case <-fire:
			fire = nil
			keys := make([]string, 0, len(pending))
			for k := range pending {
				keys = append(keys, k)
			}
			slices.Sort(keys)
			batch := make([]ChangeEvent, 0, len(keys))
			for _, k := range keys {
				batch = append(batch, pending[k])
			}
			pending = make(map[string]ChangeEvent)
			select {
			case am.events <- batch:
			case <-am.done:
				return
			}

		case <-am.done:
			timer.Stop()
			return
		}
	}
}

// handleFileEvent records e in pending and reports whether it was an asset
// change.
func (am *AssetManager) handleFileEvent(e fsnotify.Event, pending map[string]ChangeEvent) bool {
	if e.Op.Has(fsnotify.Create) {
		if s, err := os.Stat(e.Name); err == nil && s.IsDir() {
			if err := am.watchRecursive(e.Name); err != nil {
				core.LogWarn("watch %s: %s", e.Name, err)
			}
			return false
		}
	}
	if e.Op == fsnotify.Chmod {
		return false
	}

	rel, err := filepath.Rel(am.root, e.Name)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	rt := DetermineAssetType(rel)
	if rt == resources.ResourceTypeNone {
		return false
	}
	prev := pending[rel]
	pending[rel] = ChangeEvent{Path: rel, Type: rt, Op: prev.Op | e.Op}
	core.LogDebug("asset changed: %s (%s)", rel, e.Op)
	return true
}

// watchRecursive adds all directories under the given one to the watch list.
func (am *AssetManager) watchRecursive(path string) error {
	return filepath.WalkDir(path, func(walkPath string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") && walkPath != path {
			return filepath.SkipDir
		}
		return am.fsnotify.Add(walkPath)
	})
}

// DetermineAssetType maps a file name to the resource class it feeds.
func DetermineAssetType(path string) resources.ResourceType {
	switch strings.ToLower(filepath.Ext(path)) {
	case resources.MeshCollectionExtension:
		return resources.ResourceTypeMeshCollection
	case resources.SceneExtension:
		return resources.ResourceTypeScene
	case resources.VertexShaderExtension, resources.FragmentShaderExtension:
		return resources.ResourceTypeProgram
	case ".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff", ".webp":
		return resources.ResourceTypeTexture
	case ".yaml", ".yml":
		return resources.ResourceTypeManifest
	default:
		return resources.ResourceTypeNone
	}
}
