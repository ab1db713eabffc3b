package tree

import (
	"strconv"

	"github.com/pkg/errors"
)

// Root identifies the folder a tree was collected from.
type Root struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// File is one collected descendant with its relative path.
type File struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	MimeType string `json:"mimeType"`
	Size     string `json:"size"`
	Path     string `json:"path"`
}

// Tree is the full collection result.
type Tree struct {
	Root  Root   `json:"root"`
	Files []File `json:"files"`
}

// Validation errors for downstream consumers that cap how large a collected
// tree they are willing to act on.
var (
	ErrTooManyFiles = errors.New("tree has too many files")
	ErrTooLarge     = errors.New("tree exceeds the byte ceiling")
)

// TotalBytes sums the declared sizes of every collected file. Sizes arrive
// from upstream as decimal strings; unparsable ones count as zero.
func (t *Tree) TotalBytes() int64 {
	var total int64
	for _, f := range t.Files {
		n, err := strconv.ParseInt(f.Size, 10, 64)
		if err != nil {
			continue
		}
		total += n
	}
	return total
}

// Validate is the post-condition check for bounded consumers: collection is
// deliberately uncapped, so ceilings are enforced here, after the fact.
func (t *Tree) Validate(maxFiles int, maxBytes int64) error {
	if maxFiles > 0 && len(t.Files) > maxFiles {
		return errors.Wrapf(ErrTooManyFiles, "%d files (limit %d)", len(t.Files), maxFiles)
	}
	if total := t.TotalBytes(); maxBytes > 0 && total > maxBytes {
		return errors.Wrapf(ErrTooLarge, "%d bytes (limit %d)", total, maxBytes)
	}
	return nil
}
