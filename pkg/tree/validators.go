package tree

// TreeParams represents the query parameters for a tree collection.
type TreeParams struct {
	ID string `query:"id" json:"id" validate:"required"`
}
