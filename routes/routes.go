package routes

import (
	"dog-walk-service/handlers"
	"dog-walk-service/middleware"
	"dog-walk-service/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, h *handlers.Handler) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		public.POST("/users/register", h.Register)
		public.POST("/users/login", h.Login)

		// Open marketplace data (no auth needed)
		public.GET("/dogs", h.ListDogs)
		public.GET("/walkrequests/open", h.ListOpenRequests)
		public.GET("/walkers/summary", h.WalkerSummaries)
		public.GET("/users", h.ListUsers)

		// State machine info (great for docs/Postman)
		public.GET("/state-machine", h.GetStateMachineInfo)
	}

	// ── Authenticated routes ───────────────────────────────────────
	auth := r.Group("/api")
	auth.Use(middleware.AuthRequired(h.JWTSecret, h.Sessions))
	{
		auth.GET("/users/me", h.Me)
		auth.POST("/users/logout", h.Logout)
	}

	// Compatibility alias for the classic mydogs path
	mydogs := r.Group("/api")
	mydogs.Use(middleware.AuthRequired(h.JWTSecret, h.Sessions), middleware.RoleRequired(models.RoleOwner))
	{
		mydogs.GET("/users/mydogs", h.MyDogs)
	}

	// ── Owner routes ───────────────────────────────────────────────
	owner := r.Group("/api/owner")
	owner.Use(middleware.AuthRequired(h.JWTSecret, h.Sessions), middleware.RoleRequired(models.RoleOwner))
	{
		owner.POST("/dogs", h.CreateDog)
		owner.GET("/dogs", h.MyDogs)

		owner.POST("/walkrequests", h.CreateWalkRequest)
		owner.GET("/walkrequests", h.MyWalkRequests)
		owner.GET("/walkrequests/:id/applications", h.ListRequestApplications)
		owner.POST("/walkrequests/:id/accept", h.AcceptApplication)
		owner.POST("/walkrequests/:id/complete", h.CompleteWalkRequest)
		owner.POST("/walkrequests/:id/cancel", h.CancelWalkRequest)
		owner.POST("/walkrequests/:id/rating", h.RateWalk)
	}

	// ── Walker routes ──────────────────────────────────────────────
	walker := r.Group("/api/walker")
	walker.Use(middleware.AuthRequired(h.JWTSecret, h.Sessions), middleware.RoleRequired(models.RoleWalker))
	{
		walker.GET("/walkrequests/open", h.ListOpenRequests)
		walker.POST("/walkrequests/:id/apply", h.ApplyToRequest)
		walker.GET("/applications", h.MyApplications)
	}
}
