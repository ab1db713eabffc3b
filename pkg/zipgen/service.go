// Package zipgen assembles a zip archive of a folder's full descendant
// tree, streamed straight to the response. Collection is unbounded; the
// file-count and byte ceilings are enforced on the collected tree before
// any archive bytes are written.
package zipgen

import (
	"context"
	"io"

	"github.com/klauspost/compress/zip"
	"github.com/pkg/errors"
	"github.com/zdrivehq/zdrive/pkg/drive"
	"github.com/zdrivehq/zdrive/pkg/tree"
)

// Downloader is the slice of the Drive client archive assembly needs.
type Downloader interface {
	Download(ctx context.Context, fileID, rangeHeader string) (*drive.Download, error)
}

type Service struct {
	collector *tree.Collector
	client    Downloader
	maxFiles  int
	maxBytes  int64
}

// NewService creates a Service with the given assembly ceilings.
func NewService(collector *tree.Collector, client Downloader, maxFiles int, maxBytes int64) *Service {
	return &Service{
		collector: collector,
		client:    client,
		maxFiles:  maxFiles,
		maxBytes:  maxBytes,
	}
}

// Plan collects the folder tree and checks it against the ceilings. It runs
// before any response bytes go out so limit violations can still be reported
// as proper errors.
func (svc *Service) Plan(ctx context.Context, folderID string) (*tree.Tree, error) {
	collected, err := svc.collector.Collect(ctx, folderID)
	if err != nil {
		return nil, err
	}
	if err := collected.Validate(svc.maxFiles, svc.maxBytes); err != nil {
		return nil, err
	}
	return collected, nil
}

// WriteArchive streams a zip of every collected file to w, one entry per
// file at its relative path. Entry order follows collection (BFS) order.
func (svc *Service) WriteArchive(ctx context.Context, collected *tree.Tree, w io.Writer) error {
	zw := zip.NewWriter(w)

	for _, f := range collected.Files {
		entry, err := zw.CreateHeader(&zip.FileHeader{
			Name:   f.Path,
			Method: zip.Deflate,
		})
		if err != nil {
			return errors.WithStack(err)
		}

		if err := svc.copyFile(ctx, f.ID, entry); err != nil {
			return errors.Wrapf(err, "archiving %s", f.Path)
		}
	}

	return errors.WithStack(zw.Close())
}

func (svc *Service) copyFile(ctx context.Context, fileID string, w io.Writer) error {
	dl, err := svc.client.Download(ctx, fileID, "")
	if err != nil {
		return err
	}
	defer dl.Body.Close()

	_, err = io.Copy(w, dl.Body)
	return errors.WithStack(err)
}
