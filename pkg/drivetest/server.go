// Package drivetest provides an in-memory Drive API fake served over
// httptest. It implements just enough of the files surface (children
// listings with pagination and filter expressions, metadata lookups,
// alt=media content with Range support, and the token endpoint) for the
// real client to run against it in tests.
package drivetest

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/segmentio/encoding/json"
	"github.com/zdrivehq/zdrive/pkg/drive"
)

var (
	parentRE   = regexp.MustCompile(`'((?:\\.|[^'\\])*)' in parents`)
	containsRE = regexp.MustCompile(`name contains '((?:\\.|[^'\\])*)'`)
)

type entry struct {
	file    drive.File
	content []byte
}

// Server is an in-memory Drive hierarchy. Add entries, then call Start to
// serve it. Zero value is not usable; use New.
type Server struct {
	mu          sync.Mutex
	entries     map[string]*entry
	children    map[string][]string
	listCalls   int
	tokenCalls  int
	failStatus  int
	failAfter   int
	maxPageSize int
	accessToken string
	tokenExpiry int
	httpServer  *httptest.Server
}

// New creates an empty fake Drive.
func New() *Server {
	return &Server{
		entries:     map[string]*entry{},
		children:    map[string][]string{},
		accessToken: "test-access-token",
		tokenExpiry: 3600,
	}
}

// AddFolder registers a folder. An empty parent makes it a hierarchy root.
func (s *Server) AddFolder(id, name, parent string) {
	s.add(&entry{file: drive.File{
		ID:       id,
		Name:     name,
		MimeType: drive.FolderMimeType,
	}}, parent)
}

// AddFile registers a leaf file with the given content.
func (s *Server) AddFile(id, name, parent, mimeType string, content []byte) {
	s.add(&entry{
		file: drive.File{
			ID:           id,
			Name:         name,
			MimeType:     mimeType,
			ModifiedTime: "2024-01-02T03:04:05Z",
			Size:         strconv.Itoa(len(content)),
		},
		content: content,
	}, parent)
}

// SetParents overrides an entry's parent list, for shared-drive style
// multi-parent fixtures. It does not rewire children listings.
func (s *Server) SetParents(id string, parents ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[id].file.Parents = parents
}

func (s *Server) add(e *entry, parent string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if parent != "" {
		e.file.Parents = []string{parent}
		s.children[parent] = append(s.children[parent], e.file.ID)
	}
	s.entries[e.file.ID] = e
}

// ListCalls reports how many children listing requests have been served.
func (s *Server) ListCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listCalls
}

// TokenCalls reports how many token exchanges have been served.
func (s *Server) TokenCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tokenCalls
}

// CapPageSize caps the page size the fake will honor, regardless of what a
// request asks for, so tests can force multi-page folders with small
// fixtures. Real Drive behaves the same way with its 1000-item cap.
func (s *Server) CapPageSize(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.maxPageSize = n
}

// FailListsWith makes every subsequent listing request fail with the given
// status. Pass 0 to restore normal behavior.
func (s *Server) FailListsWith(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failStatus = status
	s.failAfter = 0
}

// FailListsAfter lets n more listing requests succeed, then fails the rest
// with the given status.
func (s *Server) FailListsAfter(n, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failStatus = status
	s.failAfter = s.listCalls + n
}

// Start serves the fake over HTTP and returns its base URL. The server is
// shut down when the test finishes.
func (s *Server) Start(t *testing.T) string {
	t.Helper()
	s.httpServer = httptest.NewServer(s.handler())
	t.Cleanup(s.httpServer.Close)
	return s.httpServer.URL
}

func (s *Server) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/token", s.handleToken)
	mux.HandleFunc("/files", s.handleList)
	mux.HandleFunc("/files/", s.handleFile)
	return mux
}

func (s *Server) handleToken(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil || r.PostForm.Get("grant_type") != "refresh_token" {
		http.Error(w, `{"error":"invalid_grant"}`, http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	s.tokenCalls++
	token := s.accessToken
	expiry := s.tokenExpiry
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"access_token": token,
		"expires_in":   expiry,
		"token_type":   "Bearer",
	})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.listCalls++
	failed := s.failStatus != 0 && s.listCalls > s.failAfter
	status := s.failStatus
	s.mu.Unlock()

	if failed {
		http.Error(w, `{"error":"injected failure"}`, status)
		return
	}

	q := r.URL.Query().Get("q")
	parentMatch := parentRE.FindStringSubmatch(q)
	if parentMatch == nil {
		http.Error(w, `{"error":"unsupported query"}`, http.StatusBadRequest)
		return
	}
	parentID := unescape(parentMatch[1])

	term := ""
	filtered := false
	if m := containsRE.FindStringSubmatch(q); m != nil {
		filtered = true
		term = unescape(m[1])
	}

	pageSize := 100
	if ps := r.URL.Query().Get("pageSize"); ps != "" {
		pageSize, _ = strconv.Atoi(ps)
	}
	s.mu.Lock()
	if s.maxPageSize > 0 && pageSize > s.maxPageSize {
		pageSize = s.maxPageSize
	}
	s.mu.Unlock()
	offset := 0
	if pt := r.URL.Query().Get("pageToken"); pt != "" {
		var err error
		if offset, err = strconv.Atoi(pt); err != nil {
			http.Error(w, `{"error":"bad page token"}`, http.StatusBadRequest)
			return
		}
	}

	s.mu.Lock()
	matched := []*drive.File{}
	for _, childID := range s.children[parentID] {
		child := s.entries[childID].file
		if filtered && !child.IsFolder() &&
			!strings.Contains(strings.ToLower(child.Name), strings.ToLower(term)) {
			continue
		}
		f := child
		f.Parents = nil
		matched = append(matched, &f)
	}
	s.mu.Unlock()

	list := drive.FileList{Files: []*drive.File{}}
	end := offset + pageSize
	if end > len(matched) {
		end = len(matched)
	}
	if offset < len(matched) {
		list.Files = matched[offset:end]
	}
	if end < len(matched) {
		list.NextPageToken = strconv.Itoa(end)
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(&list)
}

func (s *Server) handleFile(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/files/")

	s.mu.Lock()
	e, ok := s.entries[id]
	s.mu.Unlock()
	if !ok {
		http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
		return
	}

	if r.URL.Query().Get("alt") == "media" {
		http.ServeContent(w, r, e.file.Name, time.Time{}, bytes.NewReader(e.content))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(&e.file)
}

func unescape(s string) string {
	s = strings.ReplaceAll(s, `\'`, `'`)
	return strings.ReplaceAll(s, `\\`, `\`)
}

// StaticToken is a TokenSource that always yields the same credential.
type StaticToken string

// Token implements drive.TokenSource.
func (t StaticToken) Token(_ context.Context) (string, error) {
	return string(t), nil
}
