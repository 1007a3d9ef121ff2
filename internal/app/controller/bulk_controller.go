package controller

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mariyae/catalog-backend/internal/app/service"
	apperrors "github.com/mariyae/catalog-backend/internal/errors"
	"github.com/mariyae/catalog-backend/internal/importer"
	"github.com/mariyae/catalog-backend/internal/middleware"
)

const maxSheetBytes = 20 << 20

type BulkController struct {
	bulkService service.BulkService
}

func NewBulkController(bulkService service.BulkService) *BulkController {
	return &BulkController{
		bulkService: bulkService,
	}
}

type BulkImportRequest struct {
	Products []map[string]interface{} `json:"products"`
}

// ImportProducts inserts rows parsed by the client
// POST /api/v1/products/bulk
func (ctrl *BulkController) ImportProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req BulkImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidBody(c, err)
		return
	}

	rows := make([]importer.Values, len(req.Products))
	for i, raw := range req.Products {
		rows[i] = importer.NewValues(raw)
	}

	result, err := ctrl.bulkService.ImportRows(c.Request.Context(), rows)
	if err != nil {
		log.Warn("Bulk import rejected", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.Respond(c, err, "Failed to import products")
		return
	}

	c.JSON(http.StatusOK, result)
}

// UploadProducts parses an .xlsx or .csv file and inserts its valid rows.
// With validateOnly=true nothing is written.
// POST /api/v1/products/bulk/upload
func (ctrl *BulkController) UploadProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	header, err := c.FormFile("file")
	if err != nil {
		apperrors.Respond(c, apperrors.Validation(apperrors.ValidationRequired, "File is required", "file"), "File is required")
		return
	}
	if header.Size > maxSheetBytes {
		apperrors.Respond(c, apperrors.Validation(apperrors.UploadFileTooLarge, "File exceeds the 20 MB limit", "file"), "File is too large")
		return
	}

	data, err := readFile(header)
	if err != nil {
		log.Error("Failed to read uploaded sheet", err, map[string]interface{}{
			"filename": header.Filename,
		})
		apperrors.Respond(c, apperrors.Validation(apperrors.ValidationInvalidInput, "Could not read uploaded file", "file"), "Could not read uploaded file")
		return
	}

	if strings.EqualFold(c.Query("validateOnly"), "true") {
		result, err := ctrl.bulkService.ParseFile(bytes.NewReader(data), header.Filename)
		if err != nil {
			apperrors.Respond(c, err, "Failed to parse file")
			return
		}
		c.JSON(http.StatusOK, result)
		return
	}

	result, err := ctrl.bulkService.ImportFile(c.Request.Context(), bytes.NewReader(data), header.Filename)
	if err != nil {
		log.Warn("Sheet import rejected", map[string]interface{}{
			"filename": header.Filename,
			"error":    err.Error(),
		})
		apperrors.Respond(c, err, "Failed to import products")
		return
	}

	c.JSON(http.StatusOK, result)
}

// DownloadTemplate serves an empty import sheet
// GET /api/v1/products/bulk/template?format=xlsx|csv
func (ctrl *BulkController) DownloadTemplate(c *gin.Context) {
	var buf bytes.Buffer

	switch strings.ToLower(c.DefaultQuery("format", "xlsx")) {
	case "csv":
		if err := importer.WriteCSVTemplate(&buf); err != nil {
			apperrors.Respond(c, apperrors.Internal("Failed to build template", err), "Failed to build template")
			return
		}
		c.Header("Content-Disposition", `attachment; filename="product_template.csv"`)
		c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
	case "xlsx":
		if err := importer.WriteXLSXTemplate(&buf); err != nil {
			apperrors.Respond(c, apperrors.Internal("Failed to build template", err), "Failed to build template")
			return
		}
		c.Header("Content-Disposition", `attachment; filename="product_template.xlsx"`)
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
	default:
		apperrors.Respond(c, apperrors.Validation(apperrors.ValidationInvalidFormat, "Format must be xlsx or csv", "format"), "Invalid format")
	}
}
