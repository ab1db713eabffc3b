package deepsearch

// SearchParams represents the query parameters for a deep search. Both are
// optional: a request may carry a fresh query, a continuation cursor, or
// both, in which case the cursor's embedded query wins.
type SearchParams struct {
	Q      string `query:"q" json:"q,omitempty" mod:"trim" validate:"max=256"`
	Cursor string `query:"cursor" json:"cursor,omitempty"`
}
