package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/halloffame/hall-of-fame/services"
)

const maxBackupUploadSize = 64 << 20

type BackupHandler struct {
	backupService *services.BackupService
}

func NewBackupHandler(backupService *services.BackupService) *BackupHandler {
	return &BackupHandler{backupService: backupService}
}

// ExportBackup streams the backup archive as a file download.
func (h *BackupHandler) ExportBackup(w http.ResponseWriter, r *http.Request) {
	archive, err := h.backupService.Export(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", archive.FileName))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(archive.Content)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(archive.Content); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ImportBackup accepts a multipart upload with a "backup" file field
// and replaces the whole dataset with its content.
func (h *BackupHandler) ImportBackup(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBackupUploadSize)
	if err := r.ParseMultipartForm(maxBackupUploadSize); err != nil {
		badRequestResponse(w, r, errors.New("request must be a multipart form with a backup file"))
		return
	}

	file, header, err := r.FormFile("backup")
	if err != nil {
		badRequestResponse(w, r, errors.New("missing backup file field"))
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		serverErrorResponse(w, r, err)
		return
	}

	summary, err := h.backupService.Import(r.Context(), header.Filename, bytes.NewReader(content), int64(len(content)))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"imported": summary}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// TriggerAutoBackup uploads a backup archive off-site on demand.
func (h *BackupHandler) TriggerAutoBackup(w http.ResponseWriter, r *http.Request) {
	if err := h.backupService.AutoBackup(r.Context()); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"status": "backup uploaded"}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
