package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shenikar/incident_triage/internal/models"
)

// @Summary Resolve a GPS position
// @Description Reverse geocodes the coordinates. When no address can be found the coordinates are still returned with a message asking for a manual description.
// @Tags Location
// @Accept json
// @Produce json
// @Param location body ResolveLocationRequest true "GPS position"
// @Success 200 {object} LocationResponse
// @Failure 400 {object} ErrorResponse "Invalid request body or validation error"
// @Router /location/resolve [post]
func (h *Handler) resolveLocation(c *gin.Context) {
	var input ResolveLocationRequest
	log := h.logger.WithField("method", "resolveLocation")

	if !h.bindJSON(c, log, &input) {
		return
	}

	res, err := h.locationService.ResolveGPS(c.Request.Context(), models.Point{
		Latitude:  *input.Latitude,
		Longitude: *input.Longitude,
	})
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ResolutionToResponse(res))
}

// @Summary Locate by cell tower
// @Description Looks up approximate coordinates for a GSM cell tower.
// @Tags Location
// @Accept json
// @Produce json
// @Param cell body CellTowerRequest true "Cell tower identifiers"
// @Success 200 {object} LocationResponse
// @Failure 400 {object} ErrorResponse "Invalid cell tower data"
// @Failure 404 {object} ErrorResponse "Provider could not locate the cell"
// @Failure 502 {object} ErrorResponse "Location provider failed"
// @Failure 503 {object} ErrorResponse "Location provider not configured"
// @Router /location/cell [post]
func (h *Handler) resolveCell(c *gin.Context) {
	var input CellTowerRequest
	log := h.logger.WithField("method", "resolveCell")

	if !h.bindJSON(c, log, &input) {
		return
	}

	res, err := h.locationService.ResolveCell(c.Request.Context(), models.CellTower{
		MCC: input.MCC,
		MNC: input.MNC,
		LAC: input.LAC,
		CID: input.CID,
	})
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ResolutionToResponse(res))
}
