package http

import (
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"geoanalyzer/internal/geodata"
	"geoanalyzer/internal/orient"
	"geoanalyzer/internal/vision"
)

type filterRequest struct {
	Mode    string             `json:"mode"`
	Data    []geodata.Record   `json:"data"`
	Filters geodata.FilterSpec `json:"filters"`
}

// handleFilter cleans, filters and classifies a record set. Mode "rmr"
// buckets by rating, mode "fracturas" groups by fracture family.
// POST /api/v1/analysis/filter
func (s *Server) handleFilter(c *gin.Context) {
	var req filterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Mode == "" {
		req.Mode = "rmr"
	}

	records := geodata.Clean(req.Data)

	var payload any
	var count int
	switch req.Mode {
	case "rmr":
		points := geodata.AnalyzeRMR(records, req.Filters)
		payload, count = points, len(points)
	case "fracturas", "fracture":
		points := geodata.AnalyzeFractures(records, req.Filters)
		payload, count = points, len(points)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown mode: " + req.Mode})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": payload,
		"meta": gin.H{
			"mode":            req.Mode,
			"count":           count,
			"filters_applied": req.Filters,
		},
	})
}

type orientationRequest struct {
	OrientationData []orient.Measurement `json:"orientation_data"`
	Title           string               `json:"title"`
}

// handleOrientations validates orientation samples and returns circular
// statistics, joint sets, and a plot-ready stereonet series. Legacy
// {plunge, azimuth} keys are accepted alongside {dip, dip_direction}.
// POST /api/v1/analysis/orientations
func (s *Server) handleOrientations(c *gin.Context) {
	var req orientationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	samples := orient.CollectSamples(req.OrientationData)
	if len(samples) == 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "no valid orientation data provided"})
		return
	}

	directions := make([]float64, len(samples))
	familySet := make(map[string]bool)
	for i, sample := range samples {
		directions[i] = sample.DipDirection
		familySet[sample.Family] = true
	}
	families := make([]string, 0, len(familySet))
	for f := range familySet {
		families = append(families, f)
	}
	sort.Strings(families)

	title := req.Title
	if title == "" {
		title = "Geological Stereonet"
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"statistics": orient.CalculateStatistics(samples),
			"joint_sets": orient.IdentifyJointSets(directions),
			"points":     orient.StereonetSeries(samples),
		},
		"meta": gin.H{
			"title":    title,
			"count":    len(samples),
			"dropped":  len(req.OrientationData) - len(samples),
			"families": families,
		},
	})
}

type imageAnalysisRequest struct {
	Filename string `json:"filename" binding:"required"`
}

// handleAnalyzeImage runs the configured vision analyzer over a previously
// uploaded image. Decode failures come back as a structured error payload.
// POST /api/v1/analysis/image
func (s *Server) handleAnalyzeImage(c *gin.Context) {
	var req imageAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "filename is required"})
		return
	}

	path := filepath.Join(s.cfg.UploadDir, filepath.Base(req.Filename))
	if _, err := os.Stat(path); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "image file not found"})
		return
	}

	report := s.vision.Analyze(path)
	if report.Status == vision.StatusFailed {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": report.Error})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": report,
		"meta": gin.H{
			"provider":    s.vision.Name(),
			"analyzed_at": time.Now().UTC().Format(time.RFC3339),
		},
	})
}

// handleCapabilities describes what this build of the service can do.
// GET /api/v1/capabilities
func (s *Server) handleCapabilities(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"data_analysis": gin.H{
				"rmr_analysis":         true,
				"fracture_analysis":    true,
				"spatial_analysis":     true,
				"statistical_analysis": true,
				"filtering":            true,
				"supported_formats":    []string{".xlsx", ".xlsm", ".csv"},
			},
			"image_analysis": gin.H{
				"provider":          s.vision.Name(),
				"intensity_summary": true,
				"edge_detection":    s.vision.EdgeDetection(),
				"contour_count":     s.vision.EdgeDetection(),
				"supported_formats": []string{".jpg", ".jpeg", ".png", ".gif", ".tiff", ".bmp"},
			},
			"visualization": gin.H{
				"stereonet":     true,
				"rose_diagrams": true,
				"spatial_plots": true,
				"joint_sets":    true,
			},
			"authentication": s.tokens != nil,
		},
	})
}
