package handlers

import (
	"net/http"

	"dog-walk-service/errs"
	"dog-walk-service/middleware"
	"dog-walk-service/models"

	"github.com/gin-gonic/gin"
)

// ApplyToRequest records the walker's application on an open request
func (h *Handler) ApplyToRequest(c *gin.Context) {
	requestID, ok := requestIDParam(c)
	if !ok {
		return
	}

	application, err := h.Engine.Apply(middleware.GetUserID(c), requestID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":     "Application submitted",
		"application": application,
	})
}

// MyApplications lists the walker's applications with request detail
func (h *Handler) MyApplications(c *gin.Context) {
	var applications []models.WalkApplication
	err := h.DB.Preload("Request.Dog").
		Where("walker_id = ?", middleware.GetUserID(c)).
		Order("created_at desc").
		Find(&applications).Error
	if err != nil {
		writeError(c, errs.Wrap(errs.Internal, "failed to fetch applications", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(applications), "applications": applications})
}
