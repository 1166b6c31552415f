package drive

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/andresuchdata/panaderia-reports/internal/domain"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	folders map[string][]*File
	content map[string]string
	paths   map[string]string
}

func (f *fakeStore) ListFiles(ctx context.Context, folderID string) ([]*File, error) {
	files, ok := f.folders[folderID]
	if !ok {
		return nil, fmt.Errorf("folder %s not found", folderID)
	}
	return files, nil
}

func (f *fakeStore) ReadFile(ctx context.Context, file *File) ([]byte, error) {
	return []byte(f.content[file.ID]), nil
}

func (f *fakeStore) FindFolderByPath(ctx context.Context, path string) (string, error) {
	id, ok := f.paths[path]
	if !ok {
		return "", fmt.Errorf("folder not found: %s", path)
	}
	return id, nil
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		folders: map[string][]*File{
			"root-id": {
				{ID: "daily-folder", Name: "daily", MimeType: folderMimeType},
				{ID: "m1", Name: "monthly.json", MimeType: "application/json"},
				{ID: "notes", Name: "notes.txt", MimeType: "text/plain"},
			},
			"daily-folder": {
				{ID: "d1", Name: "junio.json", MimeType: "application/json"},
				{ID: "nested", Name: "archive", MimeType: folderMimeType},
			},
		},
		content: map[string]string{
			"d1": `[{"id": "reporte-diario-1", "date": "2025-06-01", "totalSales": 100}]`,
			"m1": `{"id": "reporte-mensual-2025-06", "monthNumber": 6, "year": 2025, "totalSalesForMonth": 6000}`,
		},
		paths: map[string]string{"panaderia/reportes": "root-id"},
	}
}

func TestSource_LoadByPath(t *testing.T) {
	src := NewSource(newFakeStore(), "", "panaderia/reportes")

	raw, err := src.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, raw.Daily, 1)
	require.Len(t, raw.Monthly, 1)
	assert.Empty(t, raw.Material)
	assert.Equal(t, "reporte-diario-1", raw.Daily[0].ID.String())
}

func TestSource_LoadErrors(t *testing.T) {
	_, err := NewSource(newFakeStore(), "", "missing").Load(context.Background())
	assert.ErrorContains(t, err, "folder not found")

	_, err = NewSource(newFakeStore(), "unknown-id", "").Load(context.Background())
	assert.Error(t, err)
}

func TestSource_SpreadsheetsAreReadAsWorkbooks(t *testing.T) {
	store := newFakeStore()
	files, err := NewSource(store, "root-id", "").collect(context.Background(), "root-id", "")
	require.NoError(t, err)
	assert.Contains(t, files, "daily/junio.json")
	assert.NotContains(t, files, "daily/archive")

	store.folders["root-id"] = append(store.folders["root-id"], &File{ID: "s1", Name: "material", MimeType: spreadsheetMimeType})
	files, err = NewSource(store, "root-id", "").collect(context.Background(), "root-id", "")
	require.NoError(t, err)
	assert.Contains(t, files, "material.xlsx")
}

type stubSyncer struct {
	result domain.SyncResult
	err    error
}

func (s stubSyncer) Sync(ctx context.Context) (domain.SyncResult, error) {
	return s.result, s.err
}

func serve(h *Handler, method, target string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	h.RegisterRoutes(router)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w
}

func TestHandler_ListFiles(t *testing.T) {
	h := NewHandler(newFakeStore(), stubSyncer{})

	w := serve(h, http.MethodGet, "/api/drive/files?path=panaderia/reportes")
	require.Equal(t, http.StatusOK, w.Code)
	var files []File
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &files))
	assert.Len(t, files, 3)

	w = serve(h, http.MethodGet, "/api/drive/files?path=missing")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = serve(h, http.MethodGet, "/api/drive/files?folderId=nope")
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestHandler_Import(t *testing.T) {
	h := NewHandler(newFakeStore(), stubSyncer{result: domain.SyncResult{Saved: 7}})
	w := serve(h, http.MethodPost, "/api/drive/import")
	require.Equal(t, http.StatusOK, w.Code)

	var result domain.SyncResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, 7, result.Saved)

	h = NewHandler(newFakeStore(), stubSyncer{err: errors.New("boom")})
	w = serve(h, http.MethodPost, "/api/drive/import")
	assert.Equal(t, http.StatusBadGateway, w.Code)

	w = serve(h, http.MethodGet, "/api/drive/import")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
