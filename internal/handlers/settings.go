package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/hyroplugins/seo-optimizer/internal/services"
	"github.com/hyroplugins/seo-optimizer/pkg/response"
)

type SettingsHandler struct {
	settings *services.SettingsService
}

func NewSettingsHandler(settings *services.SettingsService) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

func (h *SettingsHandler) GetAll(c *gin.Context) {
	all, err := h.settings.All()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, all)
}

// Update applies a batch of setting changes. Invalid input is rejected
// with field-level messages before anything reaches storage.
func (h *SettingsHandler) Update(c *gin.Context) {
	var values map[string]string
	if err := c.ShouldBindJSON(&values); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if len(values) == 0 {
		response.BadRequest(c, "no settings provided")
		return
	}

	if fields := services.ValidateSettings(values); len(fields) > 0 {
		response.Invalid(c, fields)
		return
	}

	if err := h.settings.UpdateAll(values); err != nil {
		response.Error(c, err)
		return
	}

	// Echo back the applied values; the All() snapshot may stay stale
	// until its cache TTL expires.
	response.Success(c, values)
}
