package handlers

import (
	"net/http"

	"dog-walk-service/errs"
	"dog-walk-service/lifecycle"
	"dog-walk-service/session"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handler carries the dependencies every endpoint needs. Wired once at
// startup instead of package-level singletons.
type Handler struct {
	DB        *gorm.DB
	Engine    *lifecycle.Engine
	Sessions  session.Store
	JWTSecret []byte
}

func New(db *gorm.DB, engine *lifecycle.Engine, sessions session.Store, jwtSecret []byte) *Handler {
	return &Handler{DB: db, Engine: engine, Sessions: sessions, JWTSecret: jwtSecret}
}

var statusByKind = map[errs.Kind]int{
	errs.ConstraintViolation:    http.StatusConflict,
	errs.InvalidStateTransition: http.StatusUnprocessableEntity,
	errs.RequestNotOpen:         http.StatusUnprocessableEntity,
	errs.Unauthenticated:        http.StatusUnauthorized,
	errs.Forbidden:              http.StatusForbidden,
	errs.InvalidCredentials:     http.StatusUnauthorized,
	errs.NotFound:               http.StatusNotFound,
	errs.StorageUnavailable:     http.StatusServiceUnavailable,
	errs.Internal:               http.StatusInternalServerError,
}

// writeError maps an error's kind onto an HTTP status and a JSON body that
// always names the kind.
func writeError(c *gin.Context, err error) {
	kind := errs.KindOf(err)
	status, ok := statusByKind[kind]
	if !ok {
		status = http.StatusInternalServerError
	}
	c.JSON(status, gin.H{
		"error": errs.MessageOf(err),
		"kind":  kind,
	})
}
