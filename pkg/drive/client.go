package drive

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/segmentio/encoding/json"
)

// listFields is the field projection requested on every children listing.
const listFields = "nextPageToken, files(id,name,mimeType,modifiedTime,size,iconLink,thumbnailLink)"

// maxErrorBodyBytes caps how much of an upstream error body is kept on an
// APIError.
const maxErrorBodyBytes = 2048

// TokenSource supplies a bearer credential before every remote request.
// Refresh and expiry handling live behind this interface.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Client talks to the Drive v3 REST API. All calls are sequential per
// request chain; the client itself holds no mutable state and is safe for
// concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
}

// NewClient creates a Client against the given API base URL (no trailing
// slash). A nil httpClient falls back to http.DefaultClient.
func NewClient(baseURL string, tokens TokenSource, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
		tokens:     tokens,
	}
}

// ListOptions control a single ListChildren page fetch.
type ListOptions struct {
	// PageToken resumes a listing mid-folder. Empty means the first page.
	PageToken string
	// PageSize is the upstream per-page cap. Zero lets the API pick.
	PageSize int
	// Filter overrides the default children filter expression. Build it with
	// ChildrenQuery or SearchQuery so escaping is handled.
	Filter string
}

// ListChildren fetches one page of the direct children of a folder.
func (c *Client) ListChildren(ctx context.Context, folderID string, opts ListOptions) (*FileList, error) {
	filter := opts.Filter
	if filter == "" {
		filter = ChildrenQuery(folderID)
	}

	params := url.Values{}
	params.Set("q", filter)
	params.Set("fields", listFields)
	params.Set("includeItemsFromAllDrives", "true")
	params.Set("supportsAllDrives", "true")
	if opts.PageSize > 0 {
		params.Set("pageSize", strconv.Itoa(opts.PageSize))
	}
	if opts.PageToken != "" {
		params.Set("pageToken", opts.PageToken)
	}

	list := &FileList{}
	if err := c.getJSON(ctx, "/files?"+params.Encode(), list); err != nil {
		return nil, err
	}
	return list, nil
}

// GetMetadata fetches a subset of fields for one entry. An empty fields list
// requests id, name, mimeType, and size.
func (c *Client) GetMetadata(ctx context.Context, fileID string, fields ...string) (*File, error) {
	if len(fields) == 0 {
		fields = []string{"id", "name", "mimeType", "size"}
	}

	params := url.Values{}
	params.Set("fields", strings.Join(fields, ","))
	params.Set("supportsAllDrives", "true")

	file := &File{}
	if err := c.getJSON(ctx, "/files/"+url.PathEscape(fileID)+"?"+params.Encode(), file); err != nil {
		return nil, err
	}
	return file, nil
}

// GetParents returns the parent IDs of one entry. Entries at the top of a
// hierarchy return an empty slice.
func (c *Client) GetParents(ctx context.Context, fileID string) ([]string, error) {
	file, err := c.GetMetadata(ctx, fileID, "parents")
	if err != nil {
		return nil, err
	}
	return file.Parents, nil
}

// Download is the raw upstream content response for proxying. The caller
// owns Body and must close it.
type Download struct {
	StatusCode int
	Header     http.Header
	Body       io.ReadCloser
}

// Download fetches an entry's content (alt=media). A non-empty rangeHeader
// is forwarded verbatim so upstream can answer with a 206.
func (c *Client) Download(ctx context.Context, fileID, rangeHeader string) (*Download, error) {
	req, err := c.newRequest(ctx, "/files/"+url.PathEscape(fileID)+"?alt=media&supportsAllDrives=true")
	if err != nil {
		return nil, err
	}
	if rangeHeader != "" {
		req.Header.Set("Range", rangeHeader)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if res.StatusCode >= http.StatusBadRequest {
		defer res.Body.Close()
		return nil, readAPIError(res)
	}

	return &Download{
		StatusCode: res.StatusCode,
		Header:     res.Header,
		Body:       res.Body,
	}, nil
}

func (c *Client) newRequest(ctx context.Context, path string) (*http.Request, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "fetching access token")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	return req, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := c.newRequest(ctx, path)
	if err != nil {
		return err
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return errors.WithStack(err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return readAPIError(res)
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return errors.Wrap(err, "decoding drive response")
	}
	return nil
}

func readAPIError(res *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBodyBytes))
	return errors.WithStack(&APIError{
		StatusCode: res.StatusCode,
		Body:       strings.TrimSpace(string(body)),
	})
}
