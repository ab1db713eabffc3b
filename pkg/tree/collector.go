// Package tree materializes the full descendant file list of a folder,
// breadth first, with slash-joined relative paths. Collection itself is
// unbounded; consumers enforce ceilings afterwards with Tree.Validate.
package tree

import (
	"context"

	"github.com/pkg/errors"
	"github.com/zdrivehq/zdrive/pkg/drive"
)

// collectPageSize is the per-page size used while walking, large to keep
// round trips down on big folders.
const collectPageSize = 1000

// Lister is the slice of the Drive client the collector needs.
type Lister interface {
	ListChildren(ctx context.Context, folderID string, opts drive.ListOptions) (*drive.FileList, error)
	GetMetadata(ctx context.Context, fileID string, fields ...string) (*drive.File, error)
}

// Collector walks folder hierarchies.
type Collector struct {
	client Lister
}

// NewCollector creates a Collector.
func NewCollector(client Lister) *Collector {
	return &Collector{client: client}
}

type queueEntry struct {
	id   string
	path string
}

// Collect returns every non-folder descendant of folderID annotated with its
// relative path. Any page failure aborts the whole collection; there is no
// partial-success mode.
func (c *Collector) Collect(ctx context.Context, folderID string) (*Tree, error) {
	rootMeta, err := c.client.GetMetadata(ctx, folderID, "id", "name")
	if err != nil {
		return nil, errors.Wrap(err, "fetching root metadata")
	}

	tree := &Tree{
		Root:  Root{ID: folderID, Name: rootMeta.Name},
		Files: []File{},
	}

	queue := []queueEntry{{id: folderID}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		pageToken := ""
		for {
			page, err := c.client.ListChildren(ctx, cur.id, drive.ListOptions{
				PageToken: pageToken,
				PageSize:  collectPageSize,
			})
			if err != nil {
				return nil, errors.Wrap(err, "listing folder children")
			}

			for _, child := range page.Files {
				path := child.Name
				if cur.path != "" {
					path = cur.path + "/" + child.Name
				}

				if child.IsFolder() {
					queue = append(queue, queueEntry{id: child.ID, path: path})
					continue
				}

				size := child.Size
				if size == "" {
					size = "0"
				}
				tree.Files = append(tree.Files, File{
					ID:       child.ID,
					Name:     child.Name,
					MimeType: child.MimeType,
					Size:     size,
					Path:     path,
				})
			}

			if page.NextPageToken == "" {
				break
			}
			pageToken = page.NextPageToken
		}
	}

	return tree, nil
}
