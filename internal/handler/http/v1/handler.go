package v1

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/shenikar/incident_triage/internal/apperr"
	"github.com/shenikar/incident_triage/internal/config"
	"github.com/shenikar/incident_triage/internal/feed"
	"github.com/shenikar/incident_triage/internal/models"
	"github.com/shenikar/incident_triage/internal/service"
)

type Handler struct {
	incidentService service.IncidentService
	locationService service.LocationService
	evidenceService service.EvidenceService
	logger          *logrus.Logger
	validate        *validator.Validate
	cfg             *config.Config
}

func NewHandler(
	incidentService service.IncidentService,
	locationService service.LocationService,
	evidenceService service.EvidenceService,
	logger *logrus.Logger,
	cfg *config.Config,
) *Handler {
	return &Handler{
		incidentService: incidentService,
		locationService: locationService,
		evidenceService: evidenceService,
		logger:          logger,
		validate:        validator.New(),
		cfg:             cfg,
	}
}

// respondError переводит ошибку сервиса в код ответа и сообщение для пользователя
func (h *Handler) respondError(c *gin.Context, log *logrus.Entry, err error) {
	status := apperr.HTTPStatus(apperr.KindOf(err))
	if status >= http.StatusInternalServerError {
		log.WithError(err).Error("Request failed")
	} else {
		log.WithError(err).Warn("Request rejected")
	}
	c.JSON(status, ErrorResponse{Error: apperr.MessageOf(err, "internal server error")})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
}

// bindJSON разбирает и валидирует тело запроса; при ошибке ответ уже отправлен
func (h *Handler) bindJSON(c *gin.Context, log *logrus.Entry, input any) bool {
	if err := c.ShouldBindJSON(input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{Error: "request body too large"})
			return false
		}
		badRequest(c, "invalid request body")
		return false
	}
	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		badRequest(c, err.Error())
		return false
	}
	return true
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid incident ID")
		return uuid.Nil, false
	}
	return id, true
}

// parseViewer читает необязательную пару lat/lon из query
func parseViewer(c *gin.Context) (*models.Point, bool) {
	latRaw, lonRaw := c.Query("lat"), c.Query("lon")
	if latRaw == "" && lonRaw == "" {
		return nil, true
	}
	lat, errLat := strconv.ParseFloat(latRaw, 64)
	lon, errLon := strconv.ParseFloat(lonRaw, 64)
	if errLat != nil || errLon != nil {
		badRequest(c, "lat and lon must be given together as numbers")
		return nil, false
	}
	return &models.Point{Latitude: lat, Longitude: lon}, true
}

// @Summary Submit an incident report
// @Description Validates the report, asks the authenticity validator for a verdict and stores the incident. Nothing is stored when the validator fails.
// @Tags Incidents
// @Accept json
// @Produce json
// @Param incident body CreateIncidentRequest true "Incident report"
// @Success 201 {object} IncidentResponse
// @Failure 400 {object} ErrorResponse "Invalid request body or validation error"
// @Failure 413 {object} ErrorResponse "Evidence or request body too large"
// @Failure 502 {object} ErrorResponse "Authenticity validator failed"
// @Failure 503 {object} ErrorResponse "Authenticity validator not configured"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /incidents [post]
func (h *Handler) createIncident(c *gin.Context) {
	var input CreateIncidentRequest
	log := h.logger.WithField("method", "createIncident")

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxIncidentBodyBytes)
	if !h.bindJSON(c, log, &input) {
		return
	}

	incident, err := h.incidentService.SubmitIncident(c.Request.Context(), DTOToSubmission(input))
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusCreated, ModelToIncidentResponse(incident))
}

// @Summary Get the incident feed
// @Description Returns incidents ordered by recency, severity or distance from the viewer, recomputed on every request.
// @Tags Incidents
// @Accept json
// @Produce json
// @Param sort query string false "Sort mode" Enums(recency, severity, distance) default(recency)
// @Param lat query number false "Viewer latitude"
// @Param lon query number false "Viewer longitude"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Number of items per page" default(20)
// @Success 200 {object} FeedResponse
// @Failure 400 {object} ErrorResponse "Invalid query"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /incidents [get]
func (h *Handler) listIncidents(c *gin.Context) {
	log := h.logger.WithField("method", "listIncidents")
	viewer, ok := parseViewer(c)
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))

	res, err := h.incidentService.ListFeed(c.Request.Context(), feed.Query{
		Mode:     feed.SortMode(c.DefaultQuery("sort", string(feed.SortRecency))),
		Viewer:   viewer,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, FeedResultToResponse(res))
}

// @Summary Get incident by ID
// @Description Get a single incident by its ID.
// @Tags Incidents
// @Accept json
// @Produce json
// @Param id path string true "Incident ID"
// @Success 200 {object} IncidentResponse
// @Failure 400 {object} ErrorResponse "Invalid incident ID"
// @Failure 404 {object} ErrorResponse "Incident not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /incidents/{id} [get]
func (h *Handler) getIncident(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	log := h.logger.WithField("method", "getIncident").WithField("id", id)

	incident, err := h.incidentService.GetIncident(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToIncidentResponse(incident))
}

// @Summary Vote on an incident
// @Description Records one confirm/unsure/false vote per user. Enough votes move the incident status.
// @Tags Incidents
// @Accept json
// @Produce json
// @Param id path string true "Incident ID"
// @Param vote body VerifyRequest true "Vote"
// @Success 200 {object} IncidentResponse
// @Failure 400 {object} ErrorResponse "Invalid incident ID or request body"
// @Failure 404 {object} ErrorResponse "Incident not found"
// @Failure 409 {object} ErrorResponse "Already voted or status is final"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /incidents/{id}/verifications [post]
func (h *Handler) verifyIncident(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	log := h.logger.WithField("method", "verifyIncident").WithField("id", id)

	var input VerifyRequest
	if !h.bindJSON(c, log, &input) {
		return
	}

	incident, err := h.incidentService.Verify(c.Request.Context(), id, input.UserID, models.Verdict(input.Verdict))
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToIncidentResponse(incident))
}

// @Summary Set incident status
// @Description Moderator override: sets any status, including leaving Verified or False. Requires API key.
// @Tags Admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Incident ID"
// @Param status body UpdateStatusRequest true "New status"
// @Success 200 {object} IncidentResponse
// @Failure 400 {object} ErrorResponse "Invalid incident ID or request body"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Incident not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /incidents/{id}/status [put]
func (h *Handler) updateStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	log := h.logger.WithField("method", "updateStatus").WithField("id", id)

	var input UpdateStatusRequest
	if !h.bindJSON(c, log, &input) {
		return
	}

	incident, err := h.incidentService.ModerateStatus(c.Request.Context(), id, models.Status(input.Status))
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToIncidentResponse(incident))
}

// @Summary Summarize an incident
// @Description Returns a short generated summary of the incident.
// @Tags Incidents
// @Produce json
// @Param id path string true "Incident ID"
// @Success 200 {object} SummaryResponse
// @Failure 400 {object} ErrorResponse "Invalid incident ID"
// @Failure 404 {object} ErrorResponse "Incident not found"
// @Failure 502 {object} ErrorResponse "Summary provider failed"
// @Failure 503 {object} ErrorResponse "Summary provider not configured"
// @Router /incidents/{id}/summary [get]
func (h *Handler) summarizeIncident(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	log := h.logger.WithField("method", "summarizeIncident").WithField("id", id)

	summary, err := h.incidentService.Summarize(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, SummaryResponse{Summary: summary})
}

// @Summary Check location for incidents
// @Description Returns live incidents within the radius of the user and emits a location alert webhook when any are found.
// @Tags Location
// @Accept json
// @Produce json
// @Param location body LocationCheckRequest true "Location check request"
// @Success 200 {array} IncidentResponse
// @Failure 400 {object} ErrorResponse "Invalid request body or validation error"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /location/check [post]
func (h *Handler) checkLocation(c *gin.Context) {
	var input LocationCheckRequest
	log := h.logger.WithField("method", "checkLocation")

	if !h.bindJSON(c, log, &input) {
		return
	}

	incidents, err := h.incidentService.NearbyIncidents(c.Request.Context(), input.UserID, *input.Latitude, *input.Longitude, input.RadiusMeters)
	if err != nil {
		h.respondError(c, log, err)
		return
	}

	c.JSON(http.StatusOK, ModelsToIncidentResponses(incidents))
}

// @Summary Get incident statistics
// @Description Counts incidents per status and distinct verifiers inside the verification window.
// @Tags Incidents
// @Produce json
// @Success 200 {object} StatsResponse
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /incidents/stats [get]
func (h *Handler) getStats(c *gin.Context) {
	log := h.logger.WithField("method", "getStats")

	stats, err := h.incidentService.GetStats(c.Request.Context())
	if err != nil {
		h.respondError(c, log, err)
		return
	}

	c.JSON(http.StatusOK, StatsToResponse(stats))
}

// @Summary Get the incident map
// @Description Returns map markers and the popup of the selected incident. Without a tile key the view is a placeholder.
// @Tags Map
// @Produce json
// @Param selected query string false "Selected incident ID"
// @Param lat query number false "Map center latitude"
// @Param lon query number false "Map center longitude"
// @Success 200 {object} mapview.View
// @Failure 400 {object} ErrorResponse "Invalid query"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /map [get]
func (h *Handler) getMap(c *gin.Context) {
	log := h.logger.WithField("method", "getMap")
	center, ok := parseViewer(c)
	if !ok {
		return
	}
	var selected *uuid.UUID
	if raw := c.Query("selected"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			badRequest(c, "invalid incident ID")
			return
		}
		selected = &id
	}

	view, err := h.incidentService.MapView(c.Request.Context(), selected, center)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Get application health status
// @Description Get health status of the application
// @Tags System
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string "Status OK"
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
