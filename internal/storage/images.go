package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// localPrefix marks image references served from the media directory.
// References without the prefix point at external URLs and are never
// touched.
const localPrefix = "/local/"

// ImageDir removes orphaned shop item images from a media directory.
type ImageDir struct {
	root string
}

func NewImageDir(root string) *ImageDir {
	return &ImageDir{root: root}
}

// Remove deletes the file behind a local image reference. A missing file
// is not an error.
func (d *ImageDir) Remove(ref string) error {
	rel, ok := strings.CutPrefix(strings.TrimSpace(ref), localPrefix)
	if !ok {
		return nil
	}
	path := filepath.Join(d.root, filepath.FromSlash(rel))
	// Refuse references that escape the media directory.
	if !strings.HasPrefix(path, filepath.Clean(d.root)+string(filepath.Separator)) {
		return fmt.Errorf("image ref escapes media dir: %q", ref)
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove image: %w", err)
	}
	return nil
}
