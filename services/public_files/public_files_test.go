package publicfiles

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	dtos "github.com/Open-Source-Life/AxolotlIndex/DTOs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubDiagnostics struct {
	calls int
	dir   string
}

func (s *stubDiagnostics) Snapshot(dir string) dtos.SystemInfo {
	s.calls++
	s.dir = dir
	return dtos.SystemInfo{Server: dtos.ServerInfo{Hostname: "test-host"}}
}

func setupTestDir(t *testing.T) string {
	tmpDir := t.TempDir()
	return tmpDir
}

func writeFile(t *testing.T, dir, name string, size int, modified time.Time) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, make([]byte, size), 0644))
	require.NoError(t, os.Chtimes(path, modified, modified))
}

func makeDir(t *testing.T, dir, name string, modified time.Time) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.Mkdir(path, 0755))
	require.NoError(t, os.Chtimes(path, modified, modified))
}

func itemNames(items []dtos.ListItem) []string {
	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, item.Name)
	}
	return names
}

func detailedNames(items []dtos.DetailedItem) []string {
	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, item.Name)
	}
	return names
}

func TestNewPublicFilesService(t *testing.T) {
	tmpDir := setupTestDir(t)
	service := NewPublicFilesService(tmpDir, nil, nil)

	assert.NotNil(t, service)
	assert.Equal(t, tmpDir, service.publicDir)
}

func TestEnsurePublicDir(t *testing.T) {
	tmpDir := setupTestDir(t)
	newDir := filepath.Join(tmpDir, "nested", "test_dir")

	service := NewPublicFilesService(newDir, nil, nil)

	created, err := service.ensurePublicDir()
	assert.NoError(t, err)
	assert.True(t, created)
	assert.DirExists(t, newDir)

	created, err = service.ensurePublicDir()
	assert.NoError(t, err)
	assert.False(t, created)
}

func TestListItems_CountsFoldersAndAllowedFiles(t *testing.T) {
	tmpDir := setupTestDir(t)
	service := NewPublicFilesService(tmpDir, nil, nil)
	now := time.Now()

	writeFile(t, tmpDir, "photo.JPG", 10, now)
	writeFile(t, tmpDir, "notes.txt", 10, now)
	writeFile(t, tmpDir, "script.sh", 10, now)
	writeFile(t, tmpDir, "archive.tar", 10, now)
	writeFile(t, tmpDir, "README", 10, now)
	makeDir(t, tmpDir, "docs", now)
	makeDir(t, tmpDir, "folder.with.dots", now)

	resp, errResp := service.ListItems("")

	assert.Nil(t, errResp)
	require.NotNil(t, resp)
	assert.True(t, resp.Success)
	assert.Equal(t, 4, resp.TotalCount)
	assert.Len(t, resp.Items, 4)
	assert.Equal(t, tmpDir, resp.Path)
	assert.ElementsMatch(t, []string{"photo.JPG", "notes.txt", "docs", "folder.with.dots"}, itemNames(resp.Items))
}

func TestListItems_FoldersFirstByName(t *testing.T) {
	tmpDir := setupTestDir(t)
	service := NewPublicFilesService(tmpDir, nil, nil)
	now := time.Now()

	writeFile(t, tmpDir, "beta.txt", 1, now)
	writeFile(t, tmpDir, "Alpha.pdf", 1, now)
	writeFile(t, tmpDir, "gamma.png", 1, now)
	makeDir(t, tmpDir, "zeta", now)
	makeDir(t, tmpDir, "Eta", now)

	resp, errResp := service.ListItems("")

	assert.Nil(t, errResp)
	assert.Equal(t, []string{"Eta", "zeta", "Alpha.pdf", "beta.txt", "gamma.png"}, itemNames(resp.Items))
}

func TestListItems_ItemFields(t *testing.T) {
	tmpDir := setupTestDir(t)
	service := NewPublicFilesService(tmpDir, nil, nil)
	modified := time.Date(2024, time.March, 5, 14, 7, 0, 0, time.Local)

	writeFile(t, tmpDir, "image.png", 1536, modified)
	makeDir(t, tmpDir, "folder", modified)

	resp, errResp := service.ListItems("")
	require.Nil(t, errResp)
	require.Len(t, resp.Items, 2)

	folder := resp.Items[0]
	assert.Equal(t, "folder", folder.Type)
	assert.Equal(t, "📁", folder.Icon)
	assert.Equal(t, "Folder", folder.Size)
	assert.Equal(t, "Mar 5, 2024 14:07", folder.Modified)
	assert.Empty(t, folder.Path)
	assert.Nil(t, folder.IsImage)
	assert.Nil(t, folder.SizeBytes)

	file := resp.Items[1]
	assert.Equal(t, "file", file.Type)
	assert.Equal(t, "png", file.Extension)
	assert.Equal(t, "🖼️", file.Icon)
	assert.Equal(t, "1.5 KB", file.Size)
	require.NotNil(t, file.SizeBytes)
	assert.Equal(t, int64(1536), *file.SizeBytes)
	assert.Equal(t, filepath.Join(tmpDir, "image.png"), file.Path)
	require.NotNil(t, file.IsImage)
	assert.True(t, *file.IsImage)
}

func TestListItems_CreatesMissingDirectory(t *testing.T) {
	tmpDir := setupTestDir(t)
	missing := filepath.Join(tmpDir, "public")
	hub := NewWebSocketHub()
	service := NewPublicFilesService(missing, hub, nil)

	resp, errResp := service.ListItems("")

	assert.Nil(t, errResp)
	assert.Equal(t, 0, resp.TotalCount)
	assert.NotNil(t, resp.Items)
	assert.DirExists(t, missing)

	select {
	case msg := <-hub.broadcast:
		event, ok := msg.(dtos.WebSocketMessage)
		require.True(t, ok)
		assert.Equal(t, "directory_created", event.EventType)
	default:
		t.Fatal("expected a directory_created event")
	}
}

func TestListItems_UnreadableDirectory(t *testing.T) {
	tmpDir := setupTestDir(t)
	target := filepath.Join(tmpDir, "not-a-dir")
	require.NoError(t, os.WriteFile(target, []byte("x"), 0644))

	service := NewPublicFilesService(target, nil, nil)
	resp, errResp := service.ListItems("")

	assert.Nil(t, resp)
	require.NotNil(t, errResp)
	assert.False(t, errResp.Success)
	assert.Equal(t, "Failed to read directory", errResp.Error)
	assert.NotEmpty(t, errResp.RequestID)
	assert.Nil(t, errResp.Debug)
	assert.Zero(t, errResp.Timestamp)

	_, errResp = service.ListItems("req-7")
	require.NotNil(t, errResp)
	assert.Equal(t, "req-7", errResp.RequestID)
}

func TestListItemsPaginated_ErrorCarriesTimestampAndDebug(t *testing.T) {
	tmpDir := setupTestDir(t)
	target := filepath.Join(tmpDir, "not-a-dir")
	require.NoError(t, os.WriteFile(target, []byte("x"), 0644))

	service := NewPublicFilesService(target, nil, nil)
	service.EnableDebug()
	resp, errResp := service.ListItemsPaginated(dtos.ListQuery{Page: 1, ItemsPerPage: 20, RequestID: "req-42"})

	assert.Nil(t, resp)
	require.NotNil(t, errResp)
	assert.Equal(t, "req-42", errResp.RequestID)
	assert.NotZero(t, errResp.Timestamp)
	require.NotNil(t, errResp.Debug)
	assert.Contains(t, *errResp.Debug, "not-a-dir")
}

func TestListItems_SkipsBrokenSymlink(t *testing.T) {
	tmpDir := setupTestDir(t)
	service := NewPublicFilesService(tmpDir, nil, nil)

	writeFile(t, tmpDir, "ok.txt", 1, time.Now())
	if err := os.Symlink(filepath.Join(tmpDir, "gone.txt"), filepath.Join(tmpDir, "dangling.txt")); err != nil {
		t.Skip("symlinks not supported")
	}

	resp, errResp := service.ListItems("")

	assert.Nil(t, errResp)
	assert.Equal(t, []string{"ok.txt"}, itemNames(resp.Items))
}

func TestListItemsPaginated_Scenario(t *testing.T) {
	tmpDir := setupTestDir(t)
	diagnostics := &stubDiagnostics{}
	service := NewPublicFilesService(tmpDir, nil, diagnostics)
	now := time.Now()

	makeDir(t, tmpDir, "Docs", now)
	writeFile(t, tmpDir, "b.txt", 1, now.Add(-time.Hour))
	writeFile(t, tmpDir, "a.png", 1, now.Add(-2*time.Hour))

	resp, errResp := service.ListItemsPaginated(dtos.ListQuery{Page: 1, ItemsPerPage: 2})

	assert.Nil(t, errResp)
	require.NotNil(t, resp)
	assert.Equal(t, []string{"a.png", "b.txt"}, detailedNames(resp.Items))
	assert.True(t, resp.Pagination.HasNext)
	assert.False(t, resp.Pagination.HasPrevious)
	assert.Equal(t, 2, resp.Pagination.TotalPages)
	assert.Equal(t, 3, resp.Pagination.TotalItems)
	require.NotNil(t, resp.Pagination.NextPage)
	assert.Equal(t, 2, *resp.Pagination.NextPage)
	assert.Nil(t, resp.Pagination.PreviousPage)
	assert.Equal(t, "priority_and_modification_time", resp.SortedBy)
	assert.Equal(t, tmpDir, resp.Path)
	assert.NotZero(t, resp.Timestamp)

	assert.Equal(t, dtos.Statistics{
		TotalItems:     3,
		TotalFiles:     2,
		TotalFolders:   1,
		TotalImages:    1,
		DisplayedItems: 2,
	}, resp.Statistics)

	require.NotNil(t, resp.SystemInfo)
	assert.Equal(t, "test-host", resp.SystemInfo.Server.Hostname)
	assert.Equal(t, 1, diagnostics.calls)
	assert.Equal(t, tmpDir, diagnostics.dir)

	second, errResp := service.ListItemsPaginated(dtos.ListQuery{Page: 2, ItemsPerPage: 2})
	assert.Nil(t, errResp)
	assert.Equal(t, []string{"Docs"}, detailedNames(second.Items))
	assert.False(t, second.Pagination.HasNext)
	assert.True(t, second.Pagination.HasPrevious)
	assert.Equal(t, 3, second.Pagination.ShowingFrom)
	assert.Equal(t, 3, second.Pagination.ShowingTo)
}

func TestListItemsPaginated_PriorityThenRecency(t *testing.T) {
	tmpDir := setupTestDir(t)
	service := NewPublicFilesService(tmpDir, nil, nil)
	now := time.Now()

	makeDir(t, tmpDir, "new-folder", now)
	makeDir(t, tmpDir, "old-folder", now.Add(-48*time.Hour))
	writeFile(t, tmpDir, "old.jpg", 1, now.Add(-24*time.Hour))
	writeFile(t, tmpDir, "new.gif", 1, now.Add(-time.Minute))
	writeFile(t, tmpDir, "report.pdf", 1, now.Add(-time.Second))
	writeFile(t, tmpDir, "song.mp3", 1, now.Add(-time.Hour))

	resp, errResp := service.ListItemsPaginated(dtos.ListQuery{Page: 1, ItemsPerPage: 100})

	assert.Nil(t, errResp)
	assert.Equal(t, []string{"new.gif", "old.jpg", "report.pdf", "song.mp3", "new-folder", "old-folder"}, detailedNames(resp.Items))

	for i := 1; i < len(resp.Items); i++ {
		assert.LessOrEqual(t, resp.Items[i-1].Priority, resp.Items[i].Priority)
	}
	assert.Equal(t, 0, resp.Items[0].Priority)
	assert.Equal(t, 1, resp.Items[2].Priority)
	assert.Equal(t, 2, resp.Items[4].Priority)
	assert.False(t, resp.Items[4].IsImage)
	assert.Equal(t, "Folder", resp.Items[4].Size)
	assert.Equal(t, filepath.Join(tmpDir, "new-folder"), resp.Items[4].Path)
	assert.Nil(t, resp.SystemInfo)
}

func TestListItemsPaginated_SinglePage(t *testing.T) {
	tmpDir := setupTestDir(t)
	service := NewPublicFilesService(tmpDir, nil, nil)
	now := time.Now()

	for _, name := range []string{"1.txt", "2.txt", "3.pdf", "4.zip", "5.mp4"} {
		writeFile(t, tmpDir, name, 1, now)
	}

	resp, errResp := service.ListItemsPaginated(dtos.ListQuery{Page: 1, ItemsPerPage: 100})

	assert.Nil(t, errResp)
	assert.Equal(t, 1, resp.Pagination.TotalPages)
	assert.False(t, resp.Pagination.HasNext)
	assert.False(t, resp.Pagination.HasPrevious)
	assert.Len(t, resp.Items, 5)
}

func TestListItemsPaginated_PageBeyondRangeClamps(t *testing.T) {
	tmpDir := setupTestDir(t)
	service := NewPublicFilesService(tmpDir, nil, nil)
	writeFile(t, tmpDir, "only.txt", 1, time.Now())

	resp, errResp := service.ListItemsPaginated(dtos.ListQuery{Page: 999, ItemsPerPage: 20})

	assert.Nil(t, errResp)
	assert.Equal(t, 1, resp.Pagination.CurrentPage)
	assert.Equal(t, 1, resp.Filters.Page)
	assert.Len(t, resp.Items, 1)
}

func TestListItemsPaginated_ClampsItemsPerPage(t *testing.T) {
	tmpDir := setupTestDir(t)
	service := NewPublicFilesService(tmpDir, nil, nil)

	low, _ := service.ListItemsPaginated(dtos.ListQuery{Page: 0, ItemsPerPage: 0})
	high, _ := service.ListItemsPaginated(dtos.ListQuery{Page: -3, ItemsPerPage: 5000})

	assert.Equal(t, 1, low.Pagination.ItemsPerPage)
	assert.Equal(t, 1, low.Pagination.CurrentPage)
	assert.Equal(t, 100, high.Pagination.ItemsPerPage)
	assert.Equal(t, 1, high.Filters.Page)
}

func TestListItemsPaginated_Search(t *testing.T) {
	tmpDir := setupTestDir(t)
	service := NewPublicFilesService(tmpDir, nil, nil)
	now := time.Now()

	writeFile(t, tmpDir, "Holiday-Photo.PNG", 1, now)
	writeFile(t, tmpDir, "photo-notes.txt", 1, now)
	writeFile(t, tmpDir, "invoice.pdf", 1, now)
	writeFile(t, tmpDir, "photo.exe", 1, now)
	makeDir(t, tmpDir, "Photos", now)
	makeDir(t, tmpDir, "music", now)

	resp, errResp := service.ListItemsPaginated(dtos.ListQuery{Page: 1, ItemsPerPage: 20, Search: "  PHOTO "})

	assert.Nil(t, errResp)
	assert.ElementsMatch(t, []string{"Holiday-Photo.PNG", "photo-notes.txt", "Photos"}, detailedNames(resp.Items))
	assert.Equal(t, "PHOTO", resp.Filters.Search)
	assert.Equal(t, 3, resp.Statistics.TotalItems)
	assert.Equal(t, 2, resp.Statistics.TotalFiles)
	assert.Equal(t, 1, resp.Statistics.TotalFolders)
	assert.Equal(t, 1, resp.Statistics.TotalImages)

	none, _ := service.ListItemsPaginated(dtos.ListQuery{Page: 1, ItemsPerPage: 20, Search: "nomatch"})
	assert.Empty(t, none.Items)
	assert.Equal(t, 1, none.Pagination.TotalPages)
	assert.Equal(t, 0, none.Pagination.ShowingTo)
}

func TestListItemsPaginated_Idempotent(t *testing.T) {
	tmpDir := setupTestDir(t)
	service := NewPublicFilesService(tmpDir, nil, nil)
	same := time.Now().Add(-time.Hour)

	for _, name := range []string{"c.txt", "a.txt", "b.txt", "d.png", "e.png"} {
		writeFile(t, tmpDir, name, 1, same)
	}
	makeDir(t, tmpDir, "x", same)

	first, _ := service.ListItemsPaginated(dtos.ListQuery{Page: 1, ItemsPerPage: 4})
	second, _ := service.ListItemsPaginated(dtos.ListQuery{Page: 1, ItemsPerPage: 4})

	assert.Equal(t, detailedNames(first.Items), detailedNames(second.Items))
	assert.Equal(t, first.Pagination, second.Pagination)
	assert.Equal(t, []string{"d.png", "e.png", "a.txt", "b.txt"}, detailedNames(first.Items))
}

func TestDetailedItemTimestamps(t *testing.T) {
	tmpDir := setupTestDir(t)
	service := NewPublicFilesService(tmpDir, nil, nil)
	modified := time.Date(2023, time.December, 24, 9, 30, 0, 0, time.Local)
	writeFile(t, tmpDir, "letter.doc", 2048, modified)

	resp, errResp := service.ListItemsPaginated(dtos.ListQuery{Page: 1, ItemsPerPage: 20})
	require.Nil(t, errResp)
	require.Len(t, resp.Items, 1)

	item := resp.Items[0]
	assert.Equal(t, modified.Unix(), item.ModifiedTimestamp)
	assert.Equal(t, "Dec 24, 2023 09:30", item.Modified)
	assert.NotZero(t, item.CreatedTimestamp)
	assert.NotEmpty(t, item.Created)
	assert.Equal(t, "doc", item.Extension)
	assert.Equal(t, "2 KB", item.Size)
	assert.Equal(t, 1, item.Priority)
}

func TestListings_CodeIconOnlyInPaginatedView(t *testing.T) {
	tmpDir := setupTestDir(t)
	service := NewPublicFilesService(tmpDir, nil, nil)
	writeFile(t, tmpDir, "index.php", 1, time.Now())

	plain, errResp := service.ListItems("")
	require.Nil(t, errResp)
	require.Len(t, plain.Items, 1)
	assert.Equal(t, "📄", plain.Items[0].Icon)

	paged, errResp := service.ListItemsPaginated(dtos.ListQuery{Page: 1, ItemsPerPage: 20})
	require.Nil(t, errResp)
	require.Len(t, paged.Items, 1)
	assert.Equal(t, "💻", paged.Items[0].Icon)
}
