package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"geoanalyzer/internal/advise"
	"geoanalyzer/internal/geodata"
	"geoanalyzer/internal/spatial"
)

type visualizationRequest struct {
	Data     []geodata.Record `json:"data"`
	PlotType string           `json:"plot_type"`
}

// handleVisualization assembles the statistics and advisory payload the
// front end renders: RMR and fracture summaries, spatial statistics, and
// recommendation strings.
// POST /api/v1/visualization
func (s *Server) handleVisualization(c *gin.Context) {
	var req visualizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.Data) == 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "no data provided for visualization"})
		return
	}
	if req.PlotType == "" {
		req.PlotType = "combined"
	}

	records := geodata.Clean(req.Data)

	statistics := gin.H{
		"total_records": len(records),
	}
	if rmrStats := geodata.CalculateRMRStatistics(records); rmrStats != nil {
		statistics["rmr"] = rmrStats
	}
	if fracStats := geodata.CalculateFractureStatistics(records); fracStats != nil {
		statistics["fractures"] = fracStats
	}
	statistics["spatial"] = spatial.Summarize(coordinates(records))

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"statistics":      statistics,
			"recommendations": advise.Recommendations(records),
		},
		"meta": gin.H{
			"plot_type":    req.PlotType,
			"generated_at": time.Now().UTC().Format(time.RFC3339),
		},
	})
}

func coordinates(records []geodata.Record) []spatial.Point {
	points := make([]spatial.Point, 0, len(records))
	for i := range records {
		if records[i].X == nil || records[i].Y == nil {
			continue
		}
		points = append(points, spatial.Point{X: *records[i].X, Y: *records[i].Y})
	}
	return points
}
