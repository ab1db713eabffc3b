// Package access decides whether a Drive entry is reachable from the
// configured root folder. Every file-level operation runs this check; the
// verdict is never cached.
package access

import (
	"context"
)

// MaxAncestryHops bounds the ancestor walk so cyclic or pathological parent
// chains cannot keep the check alive. Exceeding it means "not reachable",
// not an error.
const MaxAncestryHops = 50

// ParentLister is the slice of the Drive client the gate needs.
type ParentLister interface {
	GetParents(ctx context.Context, fileID string) ([]string, error)
}

// Gate checks ancestry against a single configured root folder.
type Gate struct {
	client  ParentLister
	rootID  string
	maxHops int
}

// NewGate creates a Gate for the given root folder ID.
func NewGate(client ParentLister, rootID string) *Gate {
	return &Gate{client: client, rootID: rootID, maxHops: MaxAncestryHops}
}

// Check reports whether the entry is a descendant of the root folder (or the
// root itself). A transport failure during the walk is returned as an error,
// distinct from a clean "not reachable" false, so callers can tell forbidden
// apart from backend unavailable. Callers must fail closed either way.
//
// Entries can have multiple parents in shared drives; only the first parent
// is followed. That keeps the walk linear and is a deliberate scope limit.
func (g *Gate) Check(ctx context.Context, fileID string) (bool, error) {
	if fileID == g.rootID {
		return true, nil
	}

	current := fileID
	for hop := 0; hop < g.maxHops; hop++ {
		parents, err := g.client.GetParents(ctx, current)
		if err != nil {
			return false, err
		}

		for _, parent := range parents {
			if parent == g.rootID {
				return true, nil
			}
		}

		// A parentless entry is the top of its own hierarchy, and the
		// configured root was never seen on the way up.
		if len(parents) == 0 {
			return false, nil
		}

		current = parents[0]
	}

	return false, nil
}
