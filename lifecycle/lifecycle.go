package lifecycle

import (
	"errors"
	"strings"
	"time"

	"dog-walk-service/errs"
	"dog-walk-service/models"
	"dog-walk-service/statemachine"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Engine is the single mutation path for the walk marketplace. Every status
// change goes through the statemachine tables; handlers never issue raw
// status UPDATEs themselves.
type Engine struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Engine {
	return &Engine{db: db}
}

// CreateDog registers a dog under the given owner.
func (e *Engine) CreateDog(ownerID uint, name string, size models.DogSize) (*models.Dog, error) {
	dog := models.Dog{OwnerID: ownerID, Name: name, Size: size}
	if err := e.db.Create(&dog).Error; err != nil {
		return nil, translate(err, "failed to create dog")
	}
	return &dog, nil
}

// CreateRequest posts a new open walk request for one of the owner's dogs.
func (e *Engine) CreateRequest(ownerID, dogID uint, requestedTime time.Time, durationMinutes int, location string) (*models.WalkRequest, error) {
	if durationMinutes <= 0 {
		return nil, errs.New(errs.ConstraintViolation, "duration_minutes must be positive")
	}

	var dog models.Dog
	if err := e.db.First(&dog, dogID).Error; err != nil {
		return nil, notFoundOr(err, "dog not found")
	}
	if dog.OwnerID != ownerID {
		return nil, errs.New(errs.Forbidden, "this dog does not belong to you")
	}

	request := models.WalkRequest{
		DogID:           dogID,
		RequestedTime:   requestedTime,
		DurationMinutes: durationMinutes,
		Location:        location,
		Status:          models.RequestOpen,
	}
	if err := e.db.Create(&request).Error; err != nil {
		return nil, translate(err, "failed to create walk request")
	}
	return &request, nil
}

// Apply records a walker's application on an open request. Applying twice to
// the same request fails on the (request_id, walker_id) unique index.
func (e *Engine) Apply(walkerID, requestID uint) (*models.WalkApplication, error) {
	var request models.WalkRequest
	if err := e.db.First(&request, requestID).Error; err != nil {
		return nil, notFoundOr(err, "walk request not found")
	}
	if request.Status != models.RequestOpen {
		return nil, errs.New(errs.RequestNotOpen,
			"walk request is not open for applications (status: "+string(request.Status)+")")
	}

	application := models.WalkApplication{
		RequestID: requestID,
		WalkerID:  walkerID,
		Status:    models.ApplicationApplied,
	}
	if err := e.db.Create(&application).Error; err != nil {
		return nil, translate(err, "failed to apply to walk request")
	}
	return &application, nil
}

// Accept picks one application as the winner: the application flips to
// accepted, every other applied one flips to rejected, and the request moves
// open -> accepted. All three happen in one transaction; if a concurrent
// acceptance already moved the request out of open, everything rolls back.
func (e *Engine) Accept(ownerID, requestID, applicationID uint) error {
	err := e.db.Transaction(func(tx *gorm.DB) error {
		request, err := e.loadOwnedRequest(tx, ownerID, requestID)
		if err != nil {
			return err
		}
		if err := statemachine.CanTransition(request.Status, models.RequestAccepted, "owner"); err != nil {
			return err
		}

		var application models.WalkApplication
		if err := tx.First(&application, applicationID).Error; err != nil {
			return notFoundOr(err, "application not found")
		}
		if application.RequestID != requestID {
			return errs.New(errs.NotFound, "application does not belong to this request")
		}
		if err := statemachine.CanTransitionApplication(application.Status, models.ApplicationAccepted); err != nil {
			return err
		}

		// Conditional flip guards against a concurrent acceptance: zero rows
		// means another transaction already moved the request out of open.
		res := tx.Model(&models.WalkRequest{}).
			Where("id = ? AND status = ?", requestID, models.RequestOpen).
			Update("status", models.RequestAccepted)
		if res.Error != nil {
			return translate(res.Error, "failed to accept application")
		}
		if res.RowsAffected == 0 {
			return errs.New(errs.InvalidStateTransition, "walk request is no longer open")
		}

		if err := tx.Model(&models.WalkApplication{}).
			Where("id = ?", applicationID).
			Update("status", models.ApplicationAccepted).Error; err != nil {
			return translate(err, "failed to accept application")
		}

		if err := tx.Model(&models.WalkApplication{}).
			Where("request_id = ? AND id <> ? AND status = ?",
				requestID, applicationID, models.ApplicationApplied).
			Update("status", models.ApplicationRejected).Error; err != nil {
			return translate(err, "failed to reject competing applications")
		}
		return nil
	})
	if err != nil {
		log.Debug().Uint("request_id", requestID).Uint("application_id", applicationID).
			Err(err).Msg("accept rolled back")
	}
	return err
}

// Complete confirms the walk took place (accepted -> completed).
func (e *Engine) Complete(ownerID, requestID uint) error {
	return e.transitionRequest(ownerID, requestID, models.RequestCompleted)
}

// Cancel withdraws a request (open|accepted -> cancelled). Irreversible.
func (e *Engine) Cancel(ownerID, requestID uint) error {
	return e.transitionRequest(ownerID, requestID, models.RequestCancelled)
}

func (e *Engine) transitionRequest(ownerID, requestID uint, to models.WalkRequestStatus) error {
	return e.db.Transaction(func(tx *gorm.DB) error {
		request, err := e.loadOwnedRequest(tx, ownerID, requestID)
		if err != nil {
			return err
		}
		if err := statemachine.CanTransition(request.Status, to, "owner"); err != nil {
			return err
		}

		res := tx.Model(&models.WalkRequest{}).
			Where("id = ? AND status = ?", requestID, request.Status).
			Update("status", to)
		if res.Error != nil {
			return translate(res.Error, "failed to update walk request")
		}
		if res.RowsAffected == 0 {
			return errs.New(errs.InvalidStateTransition, "walk request status changed concurrently")
		}
		return nil
	})
}

// Rate records an immutable rating for the walker who completed the request.
func (e *Engine) Rate(ownerID, requestID uint, rating int, comment string) (*models.WalkRating, error) {
	if rating < 1 || rating > 5 {
		return nil, errs.New(errs.ConstraintViolation, "rating must be an integer between 1 and 5")
	}

	var request models.WalkRequest
	if err := e.db.Preload("Dog").First(&request, requestID).Error; err != nil {
		return nil, notFoundOr(err, "walk request not found")
	}
	if request.Dog.OwnerID != ownerID {
		return nil, errs.New(errs.Forbidden, "this walk request does not belong to you")
	}
	if request.Status != models.RequestCompleted {
		return nil, errs.New(errs.InvalidStateTransition,
			"only completed walks can be rated (status: "+string(request.Status)+")")
	}

	var accepted models.WalkApplication
	if err := e.db.Where("request_id = ? AND status = ?", requestID, models.ApplicationAccepted).
		First(&accepted).Error; err != nil {
		return nil, notFoundOr(err, "no accepted application on this request")
	}

	walkRating := models.WalkRating{
		WalkerID:  accepted.WalkerID,
		OwnerID:   ownerID,
		RequestID: &requestID,
		Rating:    rating,
		Comment:   comment,
	}
	if err := e.db.Create(&walkRating).Error; err != nil {
		return nil, translate(err, "failed to create rating")
	}
	return &walkRating, nil
}

func (e *Engine) loadOwnedRequest(tx *gorm.DB, ownerID, requestID uint) (*models.WalkRequest, error) {
	var request models.WalkRequest
	if err := tx.Preload("Dog").First(&request, requestID).Error; err != nil {
		return nil, notFoundOr(err, "walk request not found")
	}
	if request.Dog.OwnerID != ownerID {
		return nil, errs.New(errs.Forbidden, "this walk request does not belong to you")
	}
	return &request, nil
}

func notFoundOr(err error, message string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.New(errs.NotFound, message)
	}
	return translate(err, message)
}

// translate maps storage errors onto the stable taxonomy. The sqlite driver
// reports unique and FK breaches as constraint errors; gorm translates most
// of them but string matching covers the rest.
func translate(err error, message string) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey),
		errors.Is(err, gorm.ErrForeignKeyViolated),
		strings.Contains(err.Error(), "UNIQUE constraint failed"),
		strings.Contains(err.Error(), "FOREIGN KEY constraint failed"),
		strings.Contains(err.Error(), "constraint failed"):
		return errs.Wrap(errs.ConstraintViolation, message, err)
	case strings.Contains(err.Error(), "database is locked"),
		strings.Contains(err.Error(), "timeout"):
		return errs.Wrap(errs.StorageUnavailable, message, err)
	default:
		return errs.Wrap(errs.Internal, message, err)
	}
}
