package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"unitly-be/internal/models"
	"unitly-be/internal/schema"
)

type SchemaController struct {
	validators map[string]func(any) (any, error)
}

func NewSchemaController(v *schema.Validator) *SchemaController {
	return &SchemaController{
		validators: map[string]func(any) (any, error){
			"base": func(in any) (any, error) { return v.BaseEntity(in) },
			"user": func(in any) (any, error) { return v.User(in) },
			"unit": func(in any) (any, error) { return v.Unit(in) },
		},
	}
}

// Validate handles POST /api/v1/validate/:entity and echoes the normalized entity
func (sc *SchemaController) Validate(c *gin.Context) {
	validate, ok := sc.validators[c.Param("entity")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown entity, expected base, user or unit"})
		return
	}

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

	entity, err := validate(data)
	var verr *schema.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusUnprocessableEntity, models.NewValidationErrorResponse(verr))
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, entity)
}
