package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/shop_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/shop_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

type backupHandler struct {
	backupService portssvc.BackupSvc
}

func registerBackupRoutes(rg *gin.RouterGroup, backupService portssvc.BackupSvc) {
	h := &backupHandler{backupService: backupService}
	rg.POST("/backup", h.backup)
}

// backup godoc
// @Summary Back up the store
// @Description Uploads a JSON snapshot of every collection to object storage (admin only).
// @Tags backup
// @Produce json
// @Success 200 {object} dto.BackupResponse
// @Failure 403 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse "Backups are not configured"
// @Security BearerAuth
// @Router /backup [post]
func (h *backupHandler) backup(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	resp, err := h.backupService.Backup(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to back up store")
		return
	}
	logger.Info("Backup written", slog.String("location", resp.Location), slog.Int("bytes", resp.Bytes))
	c.JSON(http.StatusOK, resp)
}
