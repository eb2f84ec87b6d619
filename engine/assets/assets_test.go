package assets

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"

	"github.com/spaghettifunk/anima-assets/engine/core"
	"github.com/spaghettifunk/anima-assets/engine/resources"
)

func TestDetermineAssetType(t *testing.T) {
	c := qt.New(t)
	tests := map[string]resources.ResourceType{
		"data/vika/vika.k3mesh": resources.ResourceTypeMeshCollection,
		"data/vika.json":        resources.ResourceTypeScene,
		"shader/phong.glslv":    resources.ResourceTypeProgram,
		"shader/phong.glslf":    resources.ResourceTypeProgram,
		"data/vika/skin.PNG":    resources.ResourceTypeTexture,
		"data/vika/skin.webp":   resources.ResourceTypeTexture,
		"data/preload.yaml":     resources.ResourceTypeManifest,
		"README.md":             resources.ResourceTypeNone,
		"data/vika/notes":       resources.ResourceTypeNone,
	}
	for path, want := range tests {
		c.Assert(DetermineAssetType(path), qt.Equals, want, qt.Commentf("%s", path))
	}
}

func TestNewAssetManager(t *testing.T) {
	c := qt.New(t)
	dir := t.TempDir()
	c.Assert(os.WriteFile(filepath.Join(dir, "file.json"), []byte("{}"), 0o644), qt.IsNil)

	am, err := NewAssetManager(dir)
	c.Assert(err, qt.IsNil)
	data, err := os.ReadFile(filepath.Join(am.Root(), "file.json"))
	c.Assert(err, qt.IsNil)
	c.Assert(string(data), qt.Equals, "{}")
	c.Assert(am.Close(), qt.IsNil)
	c.Assert(am.Close(), qt.ErrorIs, core.ErrWatcherClosed)
	c.Assert(am.Watch(), qt.ErrorIs, core.ErrWatcherClosed)

	_, err = NewAssetManager(filepath.Join(dir, "missing"))
	c.Assert(err, qt.Not(qt.IsNil))

	_, err = NewAssetManager(filepath.Join(dir, "file.json"))
	c.Assert(err, qt.ErrorIs, core.ErrInvalidConfig)
}

func TestAssetManager_Watch(t *testing.T) {
	c := qt.New(t)
	dir := t.TempDir()
	c.Assert(os.MkdirAll(filepath.Join(dir, "data", "vika"), 0o755), qt.IsNil)

	am, err := NewAssetManager(dir)
	c.Assert(err, qt.IsNil)
	am.SetDebounce(20 * time.Millisecond)
	c.Assert(am.Watch(), qt.IsNil)
	defer am.Close()

	c.Assert(os.WriteFile(filepath.Join(dir, "data", "vika.json"), []byte("{}"), 0o644), qt.IsNil)
	c.Assert(os.WriteFile(filepath.Join(dir, "data", "vika", "skin.png"), []byte("png"), 0o644), qt.IsNil)
	c.Assert(os.WriteFile(filepath.Join(dir, "data", "notes.txt"), []byte("ignored"), 0o644), qt.IsNil)

	seen := map[string]resources.ResourceType{}
	timeout := time.After(5 * time.Second)
	for len(seen) < 2 {
		select {
		case batch := <-am.Events():
			for _, e := range batch {
				seen[e.Path] = e.Type
			}
		case <-timeout:
			c.Fatalf("timed out waiting for asset events, got %v", seen)
		}
	}
	c.Assert(seen, qt.DeepEquals, map[string]resources.ResourceType{
		"data/vika.json":     resources.ResourceTypeScene,
		"data/vika/skin.png": resources.ResourceTypeTexture,
	})

	c.Assert(am.Close(), qt.IsNil)
	_, ok := <-am.Events()
	c.Assert(ok, qt.IsFalse)
}
