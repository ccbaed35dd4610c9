package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/shop_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/shop_ledger_app/internal/dto"
	"github.com/SscSPs/shop_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

type settingsHandler struct {
	settingsService portssvc.CompanySettingsSvc
}

func registerSettingsRoutes(rg *gin.RouterGroup, settingsService portssvc.CompanySettingsSvc) {
	h := &settingsHandler{settingsService: settingsService}

	settings := rg.Group("/settings")
	{
		settings.GET("", h.getSettings)
		settings.PUT("", h.saveSettings)
		settings.PATCH("", h.updateSettings)
		settings.DELETE("", h.clearSettings)
	}
}

// getSettings godoc
// @Summary Get company settings
// @Tags settings
// @Produce json
// @Success 200 {object} domain.CompanySettings
// @Failure 404 {object} ErrorResponse "No settings saved"
// @Security BearerAuth
// @Router /settings [get]
func (h *settingsHandler) getSettings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	settings, err := h.settingsService.GetSettings(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to load settings")
		return
	}
	c.JSON(http.StatusOK, settings)
}

// saveSettings godoc
// @Summary Replace company settings
// @Tags settings
// @Accept json
// @Produce json
// @Param settings body dto.SaveCompanySettingsRequest true "Settings"
// @Success 200 {object} domain.CompanySettings
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /settings [put]
func (h *settingsHandler) saveSettings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SaveCompanySettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, logger, err)
		return
	}

	settings, err := h.settingsService.SaveSettings(c.Request.Context(), req)
	if err != nil {
		respondError(c, logger, err, "Failed to save settings")
		return
	}
	c.JSON(http.StatusOK, settings)
}

// updateSettings godoc
// @Summary Update company settings
// @Description Merges the given fields into the saved settings.
// @Tags settings
// @Accept json
// @Produce json
// @Param settings body dto.UpdateCompanySettingsRequest true "Fields to update"
// @Success 200 {object} domain.CompanySettings
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /settings [patch]
func (h *settingsHandler) updateSettings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateCompanySettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, logger, err)
		return
	}

	settings, err := h.settingsService.UpdateSettings(c.Request.Context(), req)
	if err != nil {
		respondError(c, logger, err, "Failed to update settings")
		return
	}
	c.JSON(http.StatusOK, settings)
}

// clearSettings godoc
// @Summary Clear company settings
// @Tags settings
// @Success 204
// @Security BearerAuth
// @Router /settings [delete]
func (h *settingsHandler) clearSettings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	if err := h.settingsService.ClearSettings(c.Request.Context()); err != nil {
		respondError(c, logger, err, "Failed to clear settings")
		return
	}
	c.Status(http.StatusNoContent)
}
