package tree_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zdrivehq/zdrive/pkg/drive"
	"github.com/zdrivehq/zdrive/pkg/drivetest"
	"github.com/zdrivehq/zdrive/pkg/tree"
)

func newCollector(t *testing.T, fake *drivetest.Server) *tree.Collector {
	t.Helper()
	client := drive.NewClient(fake.Start(t), drivetest.StaticToken("token"), nil)
	return tree.NewCollector(client)
}

func TestCollectBuildsPaths(t *testing.T) {
	t.Parallel()

	fake := drivetest.New()
	fake.AddFolder("root", "Photos", "")
	fake.AddFile("f1", "cover.jpg", "root", "image/jpeg", []byte("xx"))
	fake.AddFolder("sub", "2024", "root")
	fake.AddFile("f2", "trip.jpg", "sub", "image/jpeg", []byte("yyyy"))
	fake.AddFolder("subsub", "Winter", "sub")
	fake.AddFile("f3", "snow.jpg", "subsub", "image/jpeg", []byte("z"))
	collector := newCollector(t, fake)

	collected, err := collector.Collect(context.Background(), "root")
	require.NoError(t, err)

	assert.Equal(t, tree.Root{ID: "root", Name: "Photos"}, collected.Root)
	require.Len(t, collected.Files, 3)

	paths := map[string]string{}
	for _, f := range collected.Files {
		paths[f.ID] = f.Path
	}
	assert.Equal(t, "cover.jpg", paths["f1"])
	assert.Equal(t, "2024/trip.jpg", paths["f2"])
	assert.Equal(t, "2024/Winter/snow.jpg", paths["f3"])
}

func TestCollectCompleteAcrossPages(t *testing.T) {
	t.Parallel()

	// A page cap below the folder's child count forces multi-page listing
	// within single folders.
	fake := drivetest.New()
	fake.CapPageSize(3)
	fake.AddFolder("root", "Root", "")

	want := map[string]bool{}
	for i := 0; i < 10; i++ {
		id := fmt.Sprintf("f-%d", i)
		fake.AddFile(id, fmt.Sprintf("file-%d.txt", i), "root", "text/plain", []byte("a"))
		want[id] = true
	}
	for i := 0; i < 4; i++ {
		folderID := fmt.Sprintf("sub-%d", i)
		fake.AddFolder(folderID, fmt.Sprintf("sub-%d", i), "root")
		for j := 0; j < 7; j++ {
			id := fmt.Sprintf("f-%d-%d", i, j)
			fake.AddFile(id, fmt.Sprintf("file-%d.txt", j), folderID, "text/plain", []byte("b"))
			want[id] = true
		}
	}
	collector := newCollector(t, fake)

	collected, err := collector.Collect(context.Background(), "root")
	require.NoError(t, err)

	// Exactly the full descendant set: no duplicates, no omissions.
	require.Len(t, collected.Files, len(want))
	seen := map[string]bool{}
	for _, f := range collected.Files {
		assert.False(t, seen[f.ID], "duplicate entry %s", f.ID)
		seen[f.ID] = true
		assert.True(t, want[f.ID], "unexpected entry %s", f.ID)
	}
}

func TestCollectEmptyFolder(t *testing.T) {
	t.Parallel()

	fake := drivetest.New()
	fake.AddFolder("root", "Empty", "")
	collector := newCollector(t, fake)

	collected, err := collector.Collect(context.Background(), "root")
	require.NoError(t, err)
	assert.Empty(t, collected.Files)
	assert.Equal(t, "Empty", collected.Root.Name)
}

func TestCollectAbortsOnPageFailure(t *testing.T) {
	t.Parallel()

	fake := drivetest.New()
	fake.AddFolder("root", "Root", "")
	fake.AddFolder("sub", "Sub", "root")
	fake.AddFile("f1", "a.txt", "sub", "text/plain", nil)
	fake.FailListsAfter(1, http.StatusInternalServerError)
	collector := newCollector(t, fake)

	_, err := collector.Collect(context.Background(), "root")
	require.Error(t, err)

	status, ok := drive.StatusCode(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, status)
}
