package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/stockpulse/backend-go/internal/domain"
	"github.com/stockpulse/backend-go/internal/ingest"
	"github.com/stockpulse/backend-go/internal/service"
)

type InventoryHandler struct {
	service *service.InventoryService
}

func NewInventoryHandler(service *service.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: service}
}

// UploadDataset ingests a multipart file upload into one category slot,
// replacing whatever that category held. The format comes from the "format"
// query parameter or, absent that, the file extension.
func (h *InventoryHandler) UploadDataset(c *gin.Context) {
	category, ok := domain.ParseCategory(c.Param("category"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown dataset category: %s", c.Param("category"))})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file upload"})
		return
	}

	format, ok := parseFormat(c.Query("format"), fileHeader.Filename)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "cannot determine file format; pass ?format=delimited or ?format=workbook",
			"kind":  "format",
		})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot read file upload"})
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot read file upload"})
		return
	}

	summary, err := h.service.IngestFile(c.Request.Context(), category, format, fileHeader.Filename, data)
	if err != nil {
		var formatErr *domain.FormatError
		var parseErr *domain.ParseError
		switch {
		case errors.As(err, &formatErr):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "kind": "format"})
		case errors.As(err, &parseErr):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "kind": "parse"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetMetrics returns the full derived report. Threshold query parameters
// override the configured defaults for this request only.
func (h *InventoryHandler) GetMetrics(c *gin.Context) {
	th := h.parseThresholds(c)
	report, err := h.service.Report(c.Request.Context(), th)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, report)
}

// ExportMetrics streams one classified result set as a CSV download.
func (h *InventoryHandler) ExportMetrics(c *gin.Context) {
	bucket := c.Param("bucket")
	th := h.parseThresholds(c)

	data, err := h.service.ExportBucket(c.Request.Context(), bucket, th)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.csv", bucket))
	c.Data(http.StatusOK, "text/csv", data)
}

// GetDatasets reports the load state of every category slot.
func (h *InventoryHandler) GetDatasets(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"datasets": h.service.Status()})
}

// parseThresholds reads threshold overrides from the query string, returning
// nil when no override is present so the service uses its defaults.
func (h *InventoryHandler) parseThresholds(c *gin.Context) *domain.Thresholds {
	th := h.service.Defaults()
	overridden := false

	read := func(name string, dst *float64) {
		if raw := c.Query(name); raw != "" {
			if v, err := strconv.ParseFloat(raw, 64); err == nil {
				*dst = v
				overridden = true
			}
		}
	}
	read("slow_cost", &th.SlowMoverCost)
	read("dead_cost", &th.DeadStockCost)
	read("slow_days", &th.SlowMoverDays)
	read("target_margin", &th.TargetMargin)
	read("ordering_cost", &th.OrderingCost)
	read("holding_cost_rate", &th.HoldingCostRate)

	if !overridden {
		return nil
	}
	return &th
}

func parseFormat(declared, filename string) (domain.Format, bool) {
	switch declared {
	case string(domain.FormatDelimited):
		return domain.FormatDelimited, true
	case string(domain.FormatWorkbook):
		return domain.FormatWorkbook, true
	case "":
		return ingest.DetectFormat(filename)
	}
	return "", false
}
