package drive

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/andresuchdata/panaderia-reports/internal/domain"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
)

// Syncer persists the reports currently held in Drive.
type Syncer interface {
	Sync(ctx context.Context) (domain.SyncResult, error)
}

type Handler struct {
	store  FileStore
	syncer Syncer
}

func NewHandler(store FileStore, syncer Syncer) *Handler {
	return &Handler{
		store:  store,
		syncer: syncer,
	}
}

func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/drive/files", h.ListFiles).Methods(http.MethodGet)
	router.HandleFunc("/api/drive/import", h.Import).Methods(http.MethodPost)
}

func (h *Handler) ListFiles(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	folderID := query.Get("folderId")
	folderPath := query.Get("path")

	if folderPath != "" {
		id, err := h.store.FindFolderByPath(r.Context(), folderPath)
		if err != nil {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		folderID = id
	}

	files, err := h.store.ListFiles(r.Context(), folderID)
	if err != nil {
		log.Error().Err(err).Str("folder_id", folderID).Msg("list drive files failed")
		writeError(w, http.StatusBadGateway, "failed to list drive files")
		return
	}
	if files == nil {
		files = []*File{}
	}

	writeJSON(w, http.StatusOK, files)
}

func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	result, err := h.syncer.Sync(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("drive import failed")
		writeError(w, http.StatusBadGateway, "import failed")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Warn().Err(err).Msg("encode response failed")
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
