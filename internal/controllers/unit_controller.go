package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"unitly-be/internal/models"
	"unitly-be/internal/schema"
	"unitly-be/internal/service"
)

type UnitController struct {
	unitService service.UnitService
}

func NewUnitController(unitService service.UnitService) *UnitController {
	return &UnitController{
		unitService: unitService,
	}
}

// CreateUnit handles POST /api/v1/units
func (uc *UnitController) CreateUnit(c *gin.Context) {
	var req models.CreateUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	unit, err := uc.unitService.Create(c.Request.Context(), &req)
	if err != nil {
		uc.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, unit)
}

// GetUnit handles GET /api/v1/units/:code
func (uc *UnitController) GetUnit(c *gin.Context) {
	unit, err := uc.unitService.Get(c.Request.Context(), c.Param("code"))
	if err != nil {
		uc.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, unit)
}

// ListUnits handles GET /api/v1/units?approved=true
func (uc *UnitController) ListUnits(c *gin.Context) {
	approvedOnly := false
	if raw := c.Query("approved"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "approved must be true or false"})
			return
		}
		approvedOnly = parsed
	}

	units, err := uc.unitService.List(c.Request.Context(), approvedOnly)
	if err != nil {
		uc.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, units)
}

// SetApproval handles PATCH /api/v1/units/:code/approval
func (uc *UnitController) SetApproval(c *gin.Context) {
	var req models.ApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	unit, err := uc.unitService.SetApproved(c.Request.Context(), c.Param("code"), *req.Approved)
	if err != nil {
		uc.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, unit)
}

// ImportUnits handles POST /api/v1/units/import with a JSON array of units
func (uc *UnitController) ImportUnits(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read request body"})
		return
	}

	data, err := schema.DecodeJSON(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	records, ok := data.([]any)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Request body must be a JSON array of units"})
		return
	}

	imported, err := uc.unitService.Import(c.Request.Context(), records)
	if err != nil {
		uc.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"imported": imported})
}

func (uc *UnitController) fail(c *gin.Context, err error) {
	var importErr *service.ImportError
	var verr *schema.ValidationError

	switch {
	case errors.As(err, &importErr):
		resp := models.NewValidationErrorResponse(importErr.Err)
		resp.Index = &importErr.Index
		c.JSON(http.StatusUnprocessableEntity, resp)
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, models.NewValidationErrorResponse(verr))
	case errors.Is(err, service.ErrUnitNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrUnitExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		log.WithError(err).WithField("path", c.FullPath()).Error("unit request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
