package drive

import (
	"fmt"
	"strings"
)

// EscapeQueryTerm escapes the characters that the Drive query language treats
// as syntax inside a quoted string (single quote and backslash), so that user
// input is always matched as a literal substring.
func EscapeQueryTerm(term string) string {
	term = strings.ReplaceAll(term, `\`, `\\`)
	return strings.ReplaceAll(term, `'`, `\'`)
}

// ChildrenQuery builds the filter expression for listing the direct,
// non-trashed children of a folder.
func ChildrenQuery(folderID string) string {
	return fmt.Sprintf("'%s' in parents and trashed=false", EscapeQueryTerm(folderID))
}

// SearchQuery builds the filter expression for one deep-search page: children
// of the folder whose name contains the term, plus every subfolder regardless
// of name, since a subfolder may contain matching descendants.
func SearchQuery(folderID, term string) string {
	return fmt.Sprintf(
		"'%s' in parents and trashed=false and (name contains '%s' or mimeType='%s')",
		EscapeQueryTerm(folderID), EscapeQueryTerm(term), FolderMimeType,
	)
}
