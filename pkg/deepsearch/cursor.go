package deepsearch

import (
	"encoding/base64"

	"github.com/pkg/errors"
	"github.com/segmentio/encoding/json"
)

// ErrMalformedCursor marks a continuation token that could not be decoded.
// It is a client input error, not a server fault.
var ErrMalformedCursor = errors.New("malformed search cursor")

// PageRef is the folder currently being paged through: its ID plus the
// upstream continuation token for the next page, if one is pending.
type PageRef struct {
	ID        string `json:"id"`
	PageToken string `json:"pageToken,omitempty"`
}

// State is the serializable snapshot of a paused breadth-first search.
// Queue holds folders not yet visited (FIFO), Current the folder mid-paging
// (nil between folders), and Q the original query term so a resumed search
// stays self-consistent even when the client resends only the cursor.
//
// A state with a nil Current and an empty Queue is exhausted; no cursor is
// issued for it. There is no version field: changing this shape breaks
// in-flight cursors, which is acceptable because cursors live for seconds.
type State struct {
	Queue   []string `json:"queue"`
	Current *PageRef `json:"current"`
	Q       string   `json:"q"`
}

// Exhausted reports whether the traversal has nothing left to do.
func (s *State) Exhausted() bool {
	return s.Current == nil && len(s.Queue) == 0
}

// EncodeCursor serializes a state into an opaque token safe to carry in a
// URL query parameter.
func EncodeCursor(state *State) (string, error) {
	raw, err := json.Marshal(state)
	if err != nil {
		return "", errors.WithStack(err)
	}
	return base64.URLEncoding.EncodeToString(raw), nil
}

// DecodeCursor reconstructs a state from a token. Any malformed or tampered
// input fails with ErrMalformedCursor.
func DecodeCursor(cursor string) (*State, error) {
	raw, err := base64.URLEncoding.DecodeString(cursor)
	if err != nil {
		return nil, errors.Wrap(ErrMalformedCursor, err.Error())
	}

	state := &State{}
	if err := json.Unmarshal(raw, state); err != nil {
		return nil, errors.Wrap(ErrMalformedCursor, err.Error())
	}
	if state.Queue == nil {
		state.Queue = []string{}
	}
	return state, nil
}
