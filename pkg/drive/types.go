package drive

// FolderMimeType is the reserved MIME type Google Drive uses to mark an
// entry as a folder rather than a leaf file.
const FolderMimeType = "application/vnd.google-apps.folder"

// File is a read-only snapshot of a single Drive entry. It is never mutated
// or persisted past the request that fetched it.
type File struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	MimeType      string   `json:"mimeType"`
	ModifiedTime  string   `json:"modifiedTime,omitempty"`
	Size          string   `json:"size,omitempty"`
	IconLink      string   `json:"iconLink,omitempty"`
	ThumbnailLink string   `json:"thumbnailLink,omitempty"`
	Parents       []string `json:"parents,omitempty"`
}

// IsFolder reports whether the entry is a folder. Classification is by MIME
// type only; the name and other fields are never consulted.
func (f *File) IsFolder() bool {
	return f.MimeType == FolderMimeType
}

// FileList is one page of a children listing plus the continuation token for
// the next page, if any.
type FileList struct {
	Files         []*File `json:"files"`
	NextPageToken string  `json:"nextPageToken,omitempty"`
}
