// Package deepsearch runs a name-substring search across the whole folder
// hierarchy, breadth first, sliced into bounded chunks of work. Each call
// spends at most a fixed budget of upstream page fetches and returns an
// opaque cursor when the traversal has further to go.
package deepsearch

import (
	"context"

	"github.com/pkg/errors"
	"github.com/zdrivehq/zdrive/pkg/drive"
)

// Lister is the slice of the Drive client the search needs.
type Lister interface {
	ListChildren(ctx context.Context, folderID string, opts drive.ListOptions) (*drive.FileList, error)
}

// Budget bounds one Search call. The remote API is rate- and latency-bound,
// so a logical search must be sliceable across many round trips instead of
// holding a request open indefinitely.
type Budget struct {
	// MaxPages is the page-fetch ceiling per call.
	MaxPages int
	// MaxResults is the accumulated-result ceiling per call.
	MaxResults int
	// PageSize is the upstream per-page size, clamped per fetch to the
	// remaining result budget so a call never overshoots MaxResults.
	PageSize int
}

// Service performs resumable deep searches rooted at the configured folder.
type Service struct {
	client Lister
	rootID string
	budget Budget
}

// Result is one budget's worth of matches. NextCursor is nil once the
// traversal is complete.
type Result struct {
	Files      []*drive.File `json:"files"`
	NextCursor *string       `json:"nextCursor"`
}

// NewService creates a Service searching under rootID.
func NewService(client Lister, rootID string, budget Budget) *Service {
	return &Service{client: client, rootID: rootID, budget: budget}
}

// Search runs one bounded slice of a breadth-first search. With an empty
// cursor a fresh traversal starts at the root; otherwise the decoded state
// resumes exactly where the previous call stopped. When a cursor is
// supplied, the query term embedded in it wins over q, so retries with a
// stale or missing query stay consistent.
//
// Results come back in folder-visitation (BFS) order. Matches are files
// whose name contains the term; folders are always traversed regardless of
// name. No cursor is emitted on error, so retrying with the previous cursor
// is idempotent.
func (svc *Service) Search(ctx context.Context, q, cursor string) (*Result, error) {
	state := &State{Queue: []string{svc.rootID}, Q: q}
	if cursor != "" {
		decoded, err := DecodeCursor(cursor)
		if err != nil {
			return nil, err
		}
		state = decoded
	}

	files := []*drive.File{}
	pages := 0

	for pages < svc.budget.MaxPages && len(files) < svc.budget.MaxResults {
		if state.Current == nil {
			if len(state.Queue) == 0 {
				break
			}
			state.Current = &PageRef{ID: state.Queue[0]}
			state.Queue = state.Queue[1:]
		}

		pageSize := svc.budget.PageSize
		if remaining := svc.budget.MaxResults - len(files); remaining < pageSize {
			pageSize = remaining
		}

		page, err := svc.client.ListChildren(ctx, state.Current.ID, drive.ListOptions{
			PageToken: state.Current.PageToken,
			PageSize:  pageSize,
			Filter:    drive.SearchQuery(state.Current.ID, state.Q),
		})
		if err != nil {
			return nil, errors.Wrap(err, "searching folder children")
		}
		pages++

		for _, f := range page.Files {
			if f.IsFolder() {
				state.Queue = append(state.Queue, f.ID)
			} else {
				files = append(files, f)
			}
		}

		if page.NextPageToken != "" {
			state.Current.PageToken = page.NextPageToken
		} else {
			state.Current = nil
		}
	}

	result := &Result{Files: files}
	if !state.Exhausted() {
		next, err := EncodeCursor(state)
		if err != nil {
			return nil, err
		}
		result.NextCursor = &next
	}
	return result, nil
}
