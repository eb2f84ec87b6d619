package systems

import (
	"io/fs"
	"testing/fstest"

	qt "github.com/frankban/quicktest"

	"github.com/spaghettifunk/anima-assets/testbed/sample"
)

// countingFS records every Open, keyed by the name passed to it.
type countingFS struct {
	fs.FS
	opens map[string]int
}

func (c *countingFS) Open(name string) (fs.File, error) {
	c.opens[name]++
	return c.FS.Open(name)
}

func (c *countingFS) total() int {
	n := 0
	for _, v := range c.opens {
		n += v
	}
	return n
}

func sampleFS(c *qt.C) fstest.MapFS {
	files, err := sample.Files()
	c.Assert(err, qt.IsNil)
	fsys := fstest.MapFS{}
	for name, data := range files {
		fsys[name] = &fstest.MapFile{Data: data}
	}
	return fsys
}

func countingSample(c *qt.C) *countingFS {
	return &countingFS{FS: sampleFS(c), opens: map[string]int{}}
}
