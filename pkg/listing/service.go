// Package listing serves flat, paginated folder listings with a short-lived
// response cache in front of the Drive API.
package listing

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/zdrivehq/zdrive/pkg/drive"
)

// Lister is the slice of the Drive client the listing needs.
type Lister interface {
	ListChildren(ctx context.Context, folderID string, opts drive.ListOptions) (*drive.FileList, error)
}

type Service struct {
	client   Lister
	rootID   string
	pageSize int
	cache    *pageCache
}

// NewService creates a Service. The cache holds up to cacheSize listing
// pages for ttl each.
func NewService(client Lister, rootID string, pageSize, cacheSize int, ttl time.Duration) *Service {
	return &Service{
		client:   client,
		rootID:   rootID,
		pageSize: pageSize,
		cache:    newPageCache(cacheSize, ttl),
	}
}

// List returns one page of a folder's direct children. An empty folderID
// lists the configured root. Pages are cached briefly, keyed by the exact
// upstream request.
func (svc *Service) List(ctx context.Context, folderID, pageToken string) (*drive.FileList, error) {
	if folderID == "" {
		folderID = svc.rootID
	}

	if list, ok := svc.cache.get(folderID, pageToken); ok {
		return list, nil
	}

	list, err := svc.client.ListChildren(ctx, folderID, drive.ListOptions{
		PageToken: pageToken,
		PageSize:  svc.pageSize,
	})
	if err != nil {
		return nil, errors.Wrap(err, "listing folder")
	}

	svc.cache.set(folderID, pageToken, list)
	return list, nil
}
