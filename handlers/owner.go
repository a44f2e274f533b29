package handlers

import (
	"net/http"
	"strconv"
	"time"

	"dog-walk-service/errs"
	"dog-walk-service/middleware"
	"dog-walk-service/models"

	"github.com/gin-gonic/gin"
)

type CreateDogRequest struct {
	Name string         `json:"name" binding:"required"`
	Size models.DogSize `json:"size" binding:"required,oneof=small medium large"`
}

// CreateDog registers a dog for the logged-in owner
func (h *Handler) CreateDog(c *gin.Context) {
	var req CreateDogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "kind": errs.ConstraintViolation})
		return
	}

	dog, err := h.Engine.CreateDog(middleware.GetUserID(c), req.Name, req.Size)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Dog registered", "dog": dog})
}

type MyDogRow struct {
	DogID uint   `json:"dog_id"`
	Name  string `json:"name"`
}

// MyDogs returns only the dogs owned by the logged-in owner
func (h *Handler) MyDogs(c *gin.Context) {
	rows := []MyDogRow{}
	err := h.DB.Table("dogs").
		Select("id AS dog_id, name").
		Where("owner_id = ?", middleware.GetUserID(c)).
		Scan(&rows).Error
	if err != nil {
		writeError(c, errs.Wrap(errs.Internal, "failed to fetch dogs", err))
		return
	}
	c.JSON(http.StatusOK, rows)
}

type CreateWalkRequestRequest struct {
	DogID           uint      `json:"dog_id" binding:"required"`
	RequestedTime   time.Time `json:"requested_time" binding:"required"`
	DurationMinutes int       `json:"duration_minutes" binding:"required,min=1"`
	Location        string    `json:"location" binding:"required"`
}

// CreateWalkRequest posts a new open walk request
func (h *Handler) CreateWalkRequest(c *gin.Context) {
	var req CreateWalkRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "kind": errs.ConstraintViolation})
		return
	}

	request, err := h.Engine.CreateRequest(middleware.GetUserID(c),
		req.DogID, req.RequestedTime, req.DurationMinutes, req.Location)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Walk request created", "request": request})
}

// MyWalkRequests lists the owner's requests with applications preloaded
func (h *Handler) MyWalkRequests(c *gin.Context) {
	var requests []models.WalkRequest
	err := h.DB.Preload("Dog").Preload("Applications.Walker").
		Joins("JOIN dogs ON dogs.id = walk_requests.dog_id").
		Where("dogs.owner_id = ?", middleware.GetUserID(c)).
		Order("walk_requests.created_at desc").
		Find(&requests).Error
	if err != nil {
		writeError(c, errs.Wrap(errs.Internal, "failed to fetch walk requests", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(requests), "requests": requests})
}

// ListRequestApplications shows all applications on one of the owner's requests
func (h *Handler) ListRequestApplications(c *gin.Context) {
	requestID, ok := requestIDParam(c)
	if !ok {
		return
	}

	var request models.WalkRequest
	if err := h.DB.Preload("Dog").First(&request, requestID).Error; err != nil {
		writeError(c, errs.New(errs.NotFound, "walk request not found"))
		return
	}
	if request.Dog.OwnerID != middleware.GetUserID(c) {
		writeError(c, errs.New(errs.Forbidden, "this walk request does not belong to you"))
		return
	}

	var applications []models.WalkApplication
	if err := h.DB.Preload("Walker").
		Where("request_id = ?", requestID).
		Order("created_at asc").
		Find(&applications).Error; err != nil {
		writeError(c, errs.Wrap(errs.Internal, "failed to fetch applications", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(applications), "applications": applications})
}

type AcceptApplicationRequest struct {
	ApplicationID uint `json:"application_id" binding:"required"`
}

// AcceptApplication accepts one application and rejects the rest atomically
func (h *Handler) AcceptApplication(c *gin.Context) {
	requestID, ok := requestIDParam(c)
	if !ok {
		return
	}
	var req AcceptApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "kind": errs.ConstraintViolation})
		return
	}

	if err := h.Engine.Accept(middleware.GetUserID(c), requestID, req.ApplicationID); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":    "Application accepted",
		"request_id": requestID,
		"status":     models.RequestAccepted,
	})
}

// CompleteWalkRequest marks an accepted walk as completed
func (h *Handler) CompleteWalkRequest(c *gin.Context) {
	requestID, ok := requestIDParam(c)
	if !ok {
		return
	}
	if err := h.Engine.Complete(middleware.GetUserID(c), requestID); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":    "Walk completed",
		"request_id": requestID,
		"status":     models.RequestCompleted,
	})
}

// CancelWalkRequest cancels an open or accepted request
func (h *Handler) CancelWalkRequest(c *gin.Context) {
	requestID, ok := requestIDParam(c)
	if !ok {
		return
	}
	if err := h.Engine.Cancel(middleware.GetUserID(c), requestID); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":    "Walk request cancelled",
		"request_id": requestID,
		"status":     models.RequestCancelled,
	})
}

type RateWalkRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

// RateWalk records a rating for the walker who completed the request
func (h *Handler) RateWalk(c *gin.Context) {
	requestID, ok := requestIDParam(c)
	if !ok {
		return
	}
	var req RateWalkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "kind": errs.ConstraintViolation})
		return
	}

	rating, err := h.Engine.Rate(middleware.GetUserID(c), requestID, req.Rating, req.Comment)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Rating recorded", "rating": rating})
}

func requestIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		writeError(c, errs.New(errs.NotFound, "walk request not found"))
		return 0, false
	}
	return uint(id), true
}
