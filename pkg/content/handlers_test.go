package content

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zdrivehq/zdrive/pkg/access"
	"github.com/zdrivehq/zdrive/pkg/binder"
	"github.com/zdrivehq/zdrive/pkg/drive"
	"github.com/zdrivehq/zdrive/pkg/drivetest"
	"github.com/zdrivehq/zdrive/pkg/errcodes"
)

func setupTestHandler(t *testing.T, fake *drivetest.Server) (*handler, *echo.Echo) {
	t.Helper()

	client := drive.NewClient(fake.Start(t), drivetest.StaticToken("token"), nil)
	h := &handler{
		gate:           access.NewGate(client, "root"),
		contentService: NewService(client),
	}

	e := echo.New()
	b, err := binder.New()
	require.NoError(t, err)
	e.Binder = b
	return h, e
}

func newMediaFixture() *drivetest.Server {
	fake := drivetest.New()
	fake.AddFolder("root", "Root", "")
	fake.AddFile("f1", "song.mp3", "root", "audio/mpeg", []byte("0123456789"))
	fake.AddFolder("elsewhere", "Elsewhere", "")
	fake.AddFile("outside", "secret.txt", "elsewhere", "text/plain", []byte("no"))
	return fake
}

func TestHandler_Download(t *testing.T) {
	t.Parallel()

	h, e := setupTestHandler(t, newMediaFixture())

	req := httptest.NewRequest(http.MethodGet, "/api/download?id=f1", nil)
	rec := httptest.NewRecorder()

	err := h.download(e.NewContext(req, rec))
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "audio/mpeg", rec.Header().Get(echo.HeaderContentType))
	assert.Equal(t,
		`attachment; filename="song.mp3"; filename*=UTF-8''song.mp3`,
		rec.Header().Get(echo.HeaderContentDisposition))
	assert.Equal(t, "0123456789", rec.Body.String())
}

func TestHandler_Preview(t *testing.T) {
	t.Parallel()

	h, e := setupTestHandler(t, newMediaFixture())

	req := httptest.NewRequest(http.MethodGet, "/api/preview?id=f1", nil)
	rec := httptest.NewRecorder()

	err := h.preview(e.NewContext(req, rec))
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "inline", rec.Header().Get(echo.HeaderContentDisposition))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "0123456789", rec.Body.String())
}

func TestHandler_StreamForwardsRange(t *testing.T) {
	t.Parallel()

	h, e := setupTestHandler(t, newMediaFixture())

	req := httptest.NewRequest(http.MethodGet, "/api/stream?id=f1", nil)
	req.Header.Set("Range", "bytes=2-5")
	rec := httptest.NewRecorder()

	err := h.stream(e.NewContext(req, rec))
	require.NoError(t, err)

	assert.Equal(t, http.StatusPartialContent, rec.Code)
	assert.Equal(t, "bytes", rec.Header().Get("Accept-Ranges"))
	assert.Equal(t, "bytes 2-5/10", rec.Header().Get("Content-Range"))
	assert.Equal(t, "2345", rec.Body.String())
}

func TestHandler_Stream(t *testing.T) {
	t.Parallel()

	h, e := setupTestHandler(t, newMediaFixture())

	req := httptest.NewRequest(http.MethodGet, "/api/stream?id=f1", nil)
	rec := httptest.NewRecorder()

	err := h.stream(e.NewContext(req, rec))
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "bytes", rec.Header().Get("Accept-Ranges"))
	assert.Equal(t, "0123456789", rec.Body.String())
}

func TestHandler_ForbiddenOutsideRoot(t *testing.T) {
	t.Parallel()

	h, e := setupTestHandler(t, newMediaFixture())

	req := httptest.NewRequest(http.MethodGet, "/api/download?id=outside", nil)
	rec := httptest.NewRecorder()

	err := h.download(e.NewContext(req, rec))
	require.Error(t, err)

	apiErr := &errcodes.Error{}
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusForbidden, apiErr.HTTPCode)
	assert.Equal(t, "forbidden", apiErr.Code)
}

func TestHandler_MissingID(t *testing.T) {
	t.Parallel()

	h, e := setupTestHandler(t, newMediaFixture())

	req := httptest.NewRequest(http.MethodGet, "/api/download", nil)
	rec := httptest.NewRecorder()

	err := h.download(e.NewContext(req, rec))
	require.Error(t, err)

	apiErr := &errcodes.Error{}
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.HTTPCode)
}

func TestHandler_NotFound(t *testing.T) {
	t.Parallel()

	// The gate cannot resolve a nonexistent file's parents at all, so a
	// missing id surfaces from the walk as an upstream 404.
	h, e := setupTestHandler(t, newMediaFixture())

	req := httptest.NewRequest(http.MethodGet, "/api/download?id=ghost", nil)
	rec := httptest.NewRecorder()

	err := h.download(e.NewContext(req, rec))
	require.Error(t, err)

	apiErr := &errcodes.Error{}
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.HTTPCode)
	assert.Equal(t, "upstream_failed", apiErr.Code)
}
