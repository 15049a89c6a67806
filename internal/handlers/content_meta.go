package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hyroplugins/seo-optimizer/internal/services"
	"github.com/hyroplugins/seo-optimizer/pkg/response"
)

// ContentMetaHandler exposes the per-item SEO override CRUD keyed by
// (type tag, item id).
type ContentMetaHandler struct {
	metas *services.ContentMetaService
}

func NewContentMetaHandler(metas *services.ContentMetaService) *ContentMetaHandler {
	return &ContentMetaHandler{metas: metas}
}

func (h *ContentMetaHandler) Get(c *gin.Context) {
	typeTag, itemID, ok := parseItemKey(c)
	if !ok {
		return
	}

	meta, err := h.metas.Get(typeTag, itemID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, meta)
}

func (h *ContentMetaHandler) Upsert(c *gin.Context) {
	typeTag, itemID, ok := parseItemKey(c)
	if !ok {
		return
	}

	var req services.ContentMetaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if fields := req.Validate(); len(fields) > 0 {
		response.Invalid(c, fields)
		return
	}

	meta, err := h.metas.Upsert(typeTag, itemID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, meta)
}

func (h *ContentMetaHandler) Delete(c *gin.Context) {
	typeTag, itemID, ok := parseItemKey(c)
	if !ok {
		return
	}

	if err := h.metas.Delete(typeTag, itemID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func parseItemKey(c *gin.Context) (string, uint, bool) {
	typeTag := c.Param("type")
	if typeTag == "" {
		response.BadRequest(c, "type is required")
		return "", 0, false
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid id")
		return "", 0, false
	}
	return typeTag, uint(id), true
}
