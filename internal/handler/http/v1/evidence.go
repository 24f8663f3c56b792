package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/shenikar/incident_triage/internal/evidence"
	"github.com/shenikar/incident_triage/internal/models"
)

const (
	// maxUploadBytes ограничивает тело multipart-запроса с одним вложением
	maxUploadBytes = 4 * evidence.MaxEncodedBytes
	// maxIncidentBodyBytes вмещает отчет со всеми вложениями в виде data URI
	maxIncidentBodyBytes = evidence.MaxItems*evidence.MaxEncodedBytes + 1<<20
)

func parseDraftID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid draft ID")
		return uuid.Nil, false
	}
	return id, true
}

// @Summary Start an evidence draft
// @Description Creates a server-side draft that holds up to 5 photo or video attachments until the report is submitted.
// @Tags Evidence
// @Produce json
// @Success 201 {object} DraftResponse
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /drafts [post]
func (h *Handler) createDraft(c *gin.Context) {
	log := h.logger.WithField("method", "createDraft")

	id, err := h.evidenceService.CreateDraft(c.Request.Context())
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusCreated, DraftResponse{DraftID: id})
}

// @Summary List draft evidence
// @Tags Evidence
// @Produce json
// @Param id path string true "Draft ID"
// @Success 200 {array} EvidenceItemResponse
// @Failure 400 {object} ErrorResponse "Invalid draft ID"
// @Failure 404 {object} ErrorResponse "Draft not found or expired"
// @Router /drafts/{id}/evidence [get]
func (h *Handler) listEvidence(c *gin.Context) {
	id, ok := parseDraftID(c)
	if !ok {
		return
	}
	log := h.logger.WithField("method", "listEvidence").WithField("draft_id", id)

	items, err := h.evidenceService.ListItems(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ItemsToResponse(items))
}

// @Summary Add evidence to a draft
// @Description Uploads one photo or video. Photos get the capture time and location burned in. A sixth item is refused and videos over 5 MiB after encoding are discarded.
// @Tags Evidence
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Draft ID"
// @Param kind formData string true "Evidence kind" Enums(photo, video)
// @Param file formData file true "Photo or video"
// @Param latitude formData number false "Capture latitude"
// @Param longitude formData number false "Capture longitude"
// @Success 201 {object} EvidenceCountResponse
// @Failure 400 {object} ErrorResponse "Invalid form"
// @Failure 404 {object} ErrorResponse "Draft not found or expired"
// @Failure 409 {object} ErrorResponse "Draft already holds 5 items"
// @Failure 413 {object} ErrorResponse "Evidence too large"
// @Failure 422 {object} ErrorResponse "Upload could not be read as a capture"
// @Router /drafts/{id}/evidence [post]
func (h *Handler) uploadEvidence(c *gin.Context) {
	id, ok := parseDraftID(c)
	if !ok {
		return
	}
	log := h.logger.WithField("method", "uploadEvidence").WithField("draft_id", id)

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)
	kind := evidence.Kind(c.PostForm("kind"))

	var location *models.Point
	if latRaw, lonRaw := c.PostForm("latitude"), c.PostForm("longitude"); latRaw != "" || lonRaw != "" {
		lat, errLat := strconv.ParseFloat(latRaw, 64)
		lon, errLon := strconv.ParseFloat(lonRaw, 64)
		if errLat != nil || errLon != nil {
			badRequest(c, "latitude and longitude must be given together as numbers")
			return
		}
		location = &models.Point{Latitude: lat, Longitude: lon}
	}

	fh, err := c.FormFile("file")
	if err != nil {
		log.WithError(err).Warn("Missing or oversized upload")
		badRequest(c, "file is required and must not exceed the upload limit")
		return
	}
	dev, err := openUpload(fh)
	if err != nil {
		h.respondError(c, log, err)
		return
	}

	// Capture закрывает dev на любом пути
	count, err := h.evidenceService.Capture(c.Request.Context(), id, kind, dev, location)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusCreated, EvidenceCountResponse{Count: count, Max: evidence.MaxItems})
}

// @Summary Remove evidence from a draft
// @Tags Evidence
// @Produce json
// @Param id path string true "Draft ID"
// @Param index path int true "Item position"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse "Invalid draft ID or index"
// @Failure 404 {object} ErrorResponse "Draft or item not found"
// @Router /drafts/{id}/evidence/{index} [delete]
func (h *Handler) removeEvidence(c *gin.Context) {
	id, ok := parseDraftID(c)
	if !ok {
		return
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		badRequest(c, "invalid evidence index")
		return
	}
	log := h.logger.WithField("method", "removeEvidence").WithField("draft_id", id)

	if err := h.evidenceService.RemoveItem(c.Request.Context(), id, index); err != nil {
		h.respondError(c, log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
