package api

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/service"
	"alcyxob/workout-tracker/internal/storage"

	"github.com/gin-gonic/gin"
)

// maxBackupSize bounds the accepted import body.
const maxBackupSize = 32 << 20

type BackupService interface {
	Export() service.ExportDocument
	Import(ctx context.Context, raw []byte) error
	Reset(ctx context.Context)
	PushBackup(ctx context.Context, backups storage.BackupStorage) (string, error)
	PullBackup(ctx context.Context, backups storage.BackupStorage, key string) error
}

// BackupHandler serves export, import and reset. The remote endpoints need a
// BackupStorage and answer 503 without one.
type BackupHandler struct {
	backupService BackupService
	backups       storage.BackupStorage
}

func NewBackupHandler(backupService BackupService, backups storage.BackupStorage) *BackupHandler {
	return &BackupHandler{
		backupService: backupService,
		backups:       backups,
	}
}

type PullBackupRequest struct {
	Key string `json:"key"`
}

func (h *BackupHandler) Export(c *gin.Context) {
	doc := h.backupService.Export()
	filename := fmt.Sprintf("fitness-backup-%s.json", domain.DateOf(doc.ExportDate))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.JSON(http.StatusOK, doc)
}

// Import replaces all data with the backup document in the request body.
func (h *BackupHandler) Import(c *gin.Context) {
	raw, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBackupSize))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "read body: "+err.Error())
		return
	}
	if err := h.backupService.Import(c.Request.Context(), raw); err != nil {
		respondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *BackupHandler) Reset(c *gin.Context) {
	h.backupService.Reset(c.Request.Context())
	c.Status(http.StatusNoContent)
}

func (h *BackupHandler) PushRemote(c *gin.Context) {
	if !h.remoteEnabled(c) {
		return
	}
	key, err := h.backupService.PushBackup(c.Request.Context(), h.backups)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"key": key})
}

func (h *BackupHandler) PullRemote(c *gin.Context) {
	if !h.remoteEnabled(c) {
		return
	}
	var req PullBackupRequest
	// an empty body pulls the latest backup
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
			return
		}
	}
	if err := h.backupService.PullBackup(c.Request.Context(), h.backups, req.Key); err != nil {
		respondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RemoteURL returns a presigned download link for ?key= (latest by default).
func (h *BackupHandler) RemoteURL(c *gin.Context) {
	if !h.remoteEnabled(c) {
		return
	}
	key := c.DefaultQuery("key", storage.LatestBackupKey)
	url, err := h.backups.GeneratePresignedDownloadURL(c.Request.Context(), key, storage.DefaultPresignedURLExpiry)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"key": key, "url": url})
}

func (h *BackupHandler) DeleteRemote(c *gin.Context) {
	if !h.remoteEnabled(c) {
		return
	}
	key := c.Query("key")
	if key == "" {
		abortWithError(c, http.StatusBadRequest, "key is required")
		return
	}
	if err := h.backups.DeleteObject(c.Request.Context(), key); err != nil {
		respondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *BackupHandler) remoteEnabled(c *gin.Context) bool {
	if h.backups == nil {
		abortWithError(c, http.StatusServiceUnavailable, "remote backups are not configured")
		return false
	}
	return true
}
