package drive_test

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zdrivehq/zdrive/pkg/drive"
	"github.com/zdrivehq/zdrive/pkg/drivetest"
)

func newClient(t *testing.T, fake *drivetest.Server) *drive.Client {
	t.Helper()
	baseURL := fake.Start(t)
	return drive.NewClient(baseURL, drivetest.StaticToken("token"), nil)
}

func TestListChildrenPaginates(t *testing.T) {
	t.Parallel()

	fake := drivetest.New()
	fake.AddFolder("root", "Root", "")
	for _, name := range []string{"a.txt", "b.txt", "c.txt", "d.txt", "e.txt"} {
		fake.AddFile("id-"+name, name, "root", "text/plain", []byte(name))
	}
	client := newClient(t, fake)

	page1, err := client.ListChildren(context.Background(), "root", drive.ListOptions{PageSize: 2})
	require.NoError(t, err)
	require.Len(t, page1.Files, 2)
	require.NotEmpty(t, page1.NextPageToken)

	page2, err := client.ListChildren(context.Background(), "root", drive.ListOptions{
		PageSize:  2,
		PageToken: page1.NextPageToken,
	})
	require.NoError(t, err)
	require.Len(t, page2.Files, 2)

	page3, err := client.ListChildren(context.Background(), "root", drive.ListOptions{
		PageSize:  2,
		PageToken: page2.NextPageToken,
	})
	require.NoError(t, err)
	require.Len(t, page3.Files, 1)
	assert.Empty(t, page3.NextPageToken)

	seen := map[string]bool{}
	for _, f := range append(append(page1.Files, page2.Files...), page3.Files...) {
		seen[f.Name] = true
	}
	assert.Len(t, seen, 5)
}

func TestGetMetadata(t *testing.T) {
	t.Parallel()

	fake := drivetest.New()
	fake.AddFolder("root", "Root", "")
	fake.AddFile("f1", "notes.txt", "root", "text/plain", []byte("hello"))
	client := newClient(t, fake)

	meta, err := client.GetMetadata(context.Background(), "f1")
	require.NoError(t, err)
	assert.Equal(t, "f1", meta.ID)
	assert.Equal(t, "notes.txt", meta.Name)
	assert.Equal(t, "text/plain", meta.MimeType)
	assert.Equal(t, "5", meta.Size)
}

func TestGetMetadataNotFound(t *testing.T) {
	t.Parallel()

	fake := drivetest.New()
	client := newClient(t, fake)

	_, err := client.GetMetadata(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, drive.IsNotFound(err))

	status, ok := drive.StatusCode(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestGetParents(t *testing.T) {
	t.Parallel()

	fake := drivetest.New()
	fake.AddFolder("root", "Root", "")
	fake.AddFolder("sub", "Sub", "root")
	fake.AddFile("f1", "a.txt", "sub", "text/plain", nil)
	client := newClient(t, fake)

	parents, err := client.GetParents(context.Background(), "f1")
	require.NoError(t, err)
	assert.Equal(t, []string{"sub"}, parents)

	parents, err = client.GetParents(context.Background(), "root")
	require.NoError(t, err)
	assert.Empty(t, parents)
}

func TestDownload(t *testing.T) {
	t.Parallel()

	fake := drivetest.New()
	fake.AddFolder("root", "Root", "")
	fake.AddFile("f1", "a.bin", "root", "application/octet-stream", []byte("0123456789"))
	client := newClient(t, fake)

	dl, err := client.Download(context.Background(), "f1", "")
	require.NoError(t, err)
	defer dl.Body.Close()

	assert.Equal(t, http.StatusOK, dl.StatusCode)
	body, err := io.ReadAll(dl.Body)
	require.NoError(t, err)
	assert.Equal(t, "0123456789", string(body))
}

func TestDownloadForwardsRange(t *testing.T) {
	t.Parallel()

	fake := drivetest.New()
	fake.AddFolder("root", "Root", "")
	fake.AddFile("f1", "a.bin", "root", "application/octet-stream", []byte("0123456789"))
	client := newClient(t, fake)

	dl, err := client.Download(context.Background(), "f1", "bytes=2-5")
	require.NoError(t, err)
	defer dl.Body.Close()

	assert.Equal(t, http.StatusPartialContent, dl.StatusCode)
	assert.Equal(t, "bytes 2-5/10", dl.Header.Get("Content-Range"))

	body, err := io.ReadAll(dl.Body)
	require.NoError(t, err)
	assert.Equal(t, "2345", string(body))
}

func TestListChildrenUpstreamError(t *testing.T) {
	t.Parallel()

	fake := drivetest.New()
	fake.AddFolder("root", "Root", "")
	fake.FailListsWith(http.StatusForbidden)
	client := newClient(t, fake)

	_, err := client.ListChildren(context.Background(), "root", drive.ListOptions{})
	require.Error(t, err)

	status, ok := drive.StatusCode(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, status)
}
