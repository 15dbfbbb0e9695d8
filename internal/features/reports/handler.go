package reports

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/soundwatch/soundwatch-api/internal/pkg/pagination"
	"github.com/soundwatch/soundwatch-api/internal/pkg/response"
	apperrors "github.com/soundwatch/soundwatch-api/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Submitter accepts one multipart submission
type Submitter interface {
	Submit(ctx context.Context, req *SubmitRequest) (*NoiseReport, error)
}

// ReportReader is the query surface handlers need from the store
type ReportReader interface {
	List(ctx context.Context, filter ListFilter) ([]NoiseReport, int64, error)
	NearLocation(ctx context.Context, longitude, latitude, maxDistanceMeters float64) ([]NoiseReport, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*NoiseReport, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*NoiseReport, error)
}

// MediaRemover deletes stored evidence assets
type MediaRemover interface {
	Delete(ctx context.Context, publicID string) error
}

type Handler struct {
	service Submitter
	store   ReportReader
	media   MediaRemover
	log     *logrus.Logger
}

func NewHandler(service Submitter, store ReportReader, media MediaRemover, log *logrus.Logger) *Handler {
	return &Handler{
		service: service,
		store:   store,
		media:   media,
		log:     log,
	}
}

// NewReport godoc
// @Summary Submit a noise report
// @Description Submit one audio or video evidence file with metadata
// @Tags reports
// @Accept multipart/form-data
// @Produce json
// @Param media formData file true "Audio or video evidence"
// @Param reason formData string true "Disturbance classification"
// @Param mediaType formData string true "audio or video"
// @Param comment formData string false "Free-text elaboration"
// @Param location formData string false "JSON-encoded location"
// @Success 201 {object} response.SuccessResponse{data=NoiseReport}
// @Failure 400 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /reports/new-report [post]
func (h *Handler) NewReport(c *gin.Context) {
	file, header, err := c.Request.FormFile("media")
	if err != nil {
		response.BadRequest(c, "No content", "MISSING_FILE")
		return
	}
	defer file.Close()

	req := &SubmitRequest{
		File:      file,
		Header:    header,
		Reason:    c.PostForm("reason"),
		MediaType: MediaType(c.PostForm("mediaType")),
		Comment:   c.PostForm("comment"),
	}

	if locStr := c.PostForm("location"); locStr != "" {
		var loc Location
		if err := json.Unmarshal([]byte(locStr), &loc); err != nil {
			response.BadRequest(c, "Invalid location format", "INVALID_LOCATION")
			return
		}
		req.Location = &loc
	}

	report, err := h.service.Submit(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Created(c, report)
}

// GetReports godoc
// @Summary List noise reports
// @Description Returns all stored reports, optionally filtered by reason substring
// @Tags reports
// @Produce json
// @Param reason query string false "Case-sensitive reason substring"
// @Param page query int false "Page number"
// @Param limit query int false "Page size (0 returns everything)"
// @Success 200 {array} NoiseReport
// @Router /reports/get-report [get]
func (h *Handler) GetReports(c *gin.Context) {
	page := pagination.FromRequest(c.Query("page"), c.Query("limit"))

	filter := ListFilter{
		Reason: c.Query("reason"),
		Page:   page.Page,
		Limit:  page.Limit,
	}

	reports, total, err := h.store.List(c.Request.Context(), filter)
	if err != nil {
		h.respondError(c, err)
		return
	}

	// The mobile client expects a bare array; the total rides in a header
	// so paginated calls keep count accuracy.
	c.Header("X-Total-Count", strconv.FormatInt(total, 10))
	c.JSON(http.StatusOK, reports)
}

// NearReports godoc
// @Summary Reports near a point
// @Description Returns reports within maxDistance meters, nearest first
// @Tags reports
// @Produce json
// @Param lng query number true "Longitude"
// @Param lat query number true "Latitude"
// @Param maxDistance query number false "Distance in meters (default 1000)"
// @Success 200 {object} response.SuccessResponse{data=[]NoiseReport}
// @Failure 400 {object} response.ErrorResponse
// @Router /reports/near [get]
func (h *Handler) NearReports(c *gin.Context) {
	lng, err := strconv.ParseFloat(c.Query("lng"), 64)
	if err != nil {
		response.BadRequest(c, "Invalid longitude", "INVALID_COORDINATE")
		return
	}
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		response.BadRequest(c, "Invalid latitude", "INVALID_COORDINATE")
		return
	}

	maxDistance := 1000.0
	if raw := c.Query("maxDistance"); raw != "" {
		maxDistance, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			response.BadRequest(c, "Invalid maxDistance", "INVALID_DISTANCE")
			return
		}
	}

	reports, err := h.store.NearLocation(c.Request.Context(), lng, lat, maxDistance)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, reports)
}

// GetReport godoc
// @Summary Get one report
// @Tags reports
// @Produce json
// @Param id path string true "Report ID"
// @Success 200 {object} response.SuccessResponse{data=NoiseReport}
// @Failure 404 {object} response.ErrorResponse
// @Router /reports/{id} [get]
func (h *Handler) GetReport(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid report ID", "INVALID_ID")
		return
	}

	report, err := h.store.GetByID(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, report)
}

// DeleteReport godoc
// @Summary Delete a report (admin)
// @Description Removes a report and its stored evidence asset
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param id path string true "Report ID"
// @Success 200 {object} response.SuccessResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /reports/{id} [delete]
func (h *Handler) DeleteReport(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid report ID", "INVALID_ID")
		return
	}

	report, err := h.store.Delete(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	// Best-effort asset cleanup; the record is already gone
	if h.media != nil && report.MediaPublicID != "" {
		if err := h.media.Delete(c.Request.Context(), report.MediaPublicID); err != nil {
			h.log.WithField("publicID", report.MediaPublicID).WithError(err).Warn("failed to delete media asset")
		}
	}

	response.Success(c, gin.H{"deleted": report.ID})
}

// respondError maps the error taxonomy onto the wire contract: validation
// failures carry the actionable message, storage failures stay generic.
func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		response.BadRequest(c, err.Error(), "VALIDATION_FAILED")
	case errors.Is(err, apperrors.ErrNotFound):
		response.NotFound(c, "Report not found", "NOT_FOUND")
	case errors.Is(err, apperrors.ErrStorage):
		response.InternalServerError(c, "Failed to store report. Please try again.", "STORAGE_ERROR")
	default:
		response.InternalServerError(c, "Something went wrong", "INTERNAL_ERROR")
	}
}
