package controllers

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/skip2/go-qrcode"

	"unitly-be/internal/webutil"
)

const qrCodeSize = 256

type QRCodeController struct {
	frontendURL string
	baseURL     string
}

func NewQRCodeController(frontendURL, baseURL string) *QRCodeController {
	return &QRCodeController{
		frontendURL: frontendURL,
		baseURL:     baseURL,
	}
}

// UnitPageURL returns the public frontend URL of a unit's page
func (qc *QRCodeController) UnitPageURL(code string) string {
	return qc.frontendURL + webutil.PublicPath(qc.baseURL, "/units/"+url.PathEscape(code))
}

// GenerateUnitQRCode handles GET /api/v1/qrcode/units/:code
func (qc *QRCodeController) GenerateUnitQRCode(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "UCUM code is required"})
		return
	}

	pngData, err := qrcode.Encode(qc.UnitPageURL(code), qrcode.Medium, qrCodeSize)
	if err != nil {
		log.WithError(err).WithField("ucum_code", code).Error("failed to generate QR code")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate QR code"})
		return
	}

	c.Header("Content-Disposition", "inline; filename=qrcode.png")
	c.Data(http.StatusOK, "image/png", pngData)
}
