package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все маршруты API v1
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	// Отчеты, лента и голосование
	incidents := api.Group("/incidents")
	{
		incidents.POST("", h.createIncident)
		incidents.GET("", h.listIncidents)
		incidents.GET("/stats", h.getStats)
		incidents.GET("/:id", h.getIncident)
		incidents.GET("/:id/summary", h.summarizeIncident)
		incidents.POST("/:id/verifications", h.verifyIncident)
		// Смена статуса доступна только модераторам
		incidents.PUT("/:id/status", APIKeyAuthMiddleware(h.cfg, h.logger), h.updateStatus)
	}

	// Черновики вложений
	drafts := api.Group("/drafts")
	{
		drafts.POST("", h.createDraft)
		drafts.GET("/:id/evidence", h.listEvidence)
		drafts.POST("/:id/evidence", h.uploadEvidence)
		drafts.DELETE("/:id/evidence/:index", h.removeEvidence)
	}

	location := api.Group("/location")
	{
		location.POST("/resolve", h.resolveLocation)
		location.POST("/cell", h.resolveCell)
		location.POST("/check", h.checkLocation)
	}

	api.GET("/map", h.getMap)

	// Маршрут Health-check
	api.GET("/system/health", h.healthCheck)
}
