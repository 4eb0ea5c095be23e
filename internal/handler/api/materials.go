package api

import (
	"errors"
	"net/http"

	reqdto "saulstari/internal/handler/dto/request"
	resdto "saulstari/internal/handler/dto/response"
	"saulstari/internal/handler/httperr"
	"saulstari/internal/handler/middleware"
	"saulstari/internal/infra"
	"saulstari/internal/pkg/metrics"
	"saulstari/internal/usecase"

	"github.com/gin-gonic/gin"
)

var errMissingMaterials = errors.New("materials array missing")

type MaterialsHandler struct {
	materialsUseCase usecase.MaterialsUseCase
}

func NewMaterialsHandler(materialsUseCase usecase.MaterialsUseCase) *MaterialsHandler {
	return &MaterialsHandler{
		materialsUseCase: materialsUseCase,
	}
}

// List is the public read: the full ordered table plus the latest update
// marker. No auth.
func (h *MaterialsHandler) List(c *gin.Context) {
	materials, lastUpdate, err := h.materialsUseCase.List(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load materials", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.NewListMaterialsResponse(materials, lastUpdate))
}

// Save is one batched write of the whole client-side table. The resolved
// role decides the write strategy; staff edits never touch name, price or
// unit regardless of what the payload carries.
func (h *MaterialsHandler) Save(c *gin.Context) {
	role, ok := middleware.GetRole(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	caps := middleware.GetCapabilities(c)
	if !caps.CanEditAll && !caps.CanEditStatusNote {
		httperr.AbortWithError(c, http.StatusForbidden, usecase.ErrForbidden, "Insufficient permissions", nil)
		return
	}

	var req reqdto.SaveMaterialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid payload", nil)
		return
	}
	if req.Materials == nil {
		httperr.AbortWithError(c, http.StatusBadRequest, errMissingMaterials, "Invalid payload", nil)
		return
	}

	err := h.materialsUseCase.Save(c.Request.Context(), role, req.ToDomain(), req.ParseLastUpdate())
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrForbidden):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Insufficient permissions", nil)
		case infra.IsKind(err, infra.KindDuplicateKey):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Duplicate material id", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to save materials", nil)
		}
		return
	}

	metrics.MaterialSaves.WithLabelValues(role.String()).Inc()
	c.JSON(http.StatusOK, resdto.SaveMaterialsResponse{OK: true, Role: role.String()})
}
