package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hyroplugins/seo-optimizer/internal/services"
	"github.com/hyroplugins/seo-optimizer/pkg/response"
)

type RedirectHandler struct {
	redirects *services.RedirectService
}

func NewRedirectHandler(redirects *services.RedirectService) *RedirectHandler {
	return &RedirectHandler{redirects: redirects}
}

func (h *RedirectHandler) List(c *gin.Context) {
	var req services.RedirectListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.redirects.List(&req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

func (h *RedirectHandler) Create(c *gin.Context) {
	var req services.RedirectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if fields := req.Validate(); len(fields) > 0 {
		response.Invalid(c, fields)
		return
	}

	rule, err := h.redirects.Create(&req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, rule)
}

func (h *RedirectHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req services.RedirectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if fields := req.Validate(); len(fields) > 0 {
		response.Invalid(c, fields)
		return
	}

	rule, err := h.redirects.Update(id, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, rule)
}

func (h *RedirectHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.redirects.Delete(id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (h *RedirectHandler) Toggle(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	rule, err := h.redirects.Toggle(id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, rule)
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid id")
		return 0, false
	}
	return uint(id), true
}
