package loaders

import (
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/spaghettifunk/anima-assets/engine/resources"
)

// fsPath turns an engine asset path into a name fs.FS accepts: slash
// separated, cleaned and without a leading slash.
func fsPath(p string) string {
	p = path.Clean(strings.ReplaceAll(p, "\\", "/"))
	return strings.TrimPrefix(p, "/")
}

// openAsset opens p and returns it together with its size.
func openAsset(fsys fs.FS, rt resources.ResourceType, name, p string) (fs.File, int64, error) {
	f, err := fsys.Open(fsPath(p))
	if err != nil {
		return nil, 0, resources.NewError(resources.KindOpen, rt, name, p, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, resources.NewError(resources.KindOpen, rt, name, p, err)
	}
	return f, info.Size(), nil
}

// readAsset reads the whole file. Open failures are reported as read
// failures: callers only care that the bytes could not be obtained.
func readAsset(fsys fs.FS, rt resources.ResourceType, name, p string) ([]byte, error) {
	f, err := fsys.Open(fsPath(p))
	if err != nil {
		return nil, resources.NewError(resources.KindRead, rt, name, p, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, resources.NewError(resources.KindRead, rt, name, p, err)
	}
	return data, nil
}
