package listing

// ListQuery represents the query parameters for a flat listing.
type ListQuery struct {
	FolderID  string `query:"folderId" json:"folderId,omitempty"`
	PageToken string `query:"pageToken" json:"pageToken,omitempty"`
}
