package lifecycle_test

import (
	"sync"
	"testing"
	"time"

	"dog-walk-service/config"
	"dog-walk-service/errs"
	"dog-walk-service/lifecycle"
	"dog-walk-service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := config.Open(config.Config{DBPath: "file::memory:"})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// one in-memory sqlite connection shared by all goroutines
	sqlDB.SetMaxOpenConns(1)
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string, role models.UserRole) *models.User {
	t.Helper()
	user := models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		Role:         role,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func seedDog(t *testing.T, db *gorm.DB, ownerID uint, name string) *models.Dog {
	t.Helper()
	dog := models.Dog{OwnerID: ownerID, Name: name, Size: models.SizeMedium}
	require.NoError(t, db.Create(&dog).Error)
	return &dog
}

func seedRequest(t *testing.T, db *gorm.DB, dogID uint, status models.WalkRequestStatus) *models.WalkRequest {
	t.Helper()
	request := models.WalkRequest{
		DogID:           dogID,
		RequestedTime:   time.Now().Add(time.Hour),
		DurationMinutes: 30,
		Location:        "Parklands",
		Status:          status,
	}
	require.NoError(t, db.Create(&request).Error)
	return &request
}

func TestApplyOnOpenRequest(t *testing.T) {
	db := newTestDB(t)
	engine := lifecycle.New(db)
	owner := seedUser(t, db, "alice123", models.RoleOwner)
	walker := seedUser(t, db, "bobwalker", models.RoleWalker)
	dog := seedDog(t, db, owner.ID, "Max")
	request := seedRequest(t, db, dog.ID, models.RequestOpen)

	application, err := engine.Apply(walker.ID, request.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationApplied, application.Status)
	assert.Equal(t, walker.ID, application.WalkerID)
}

func TestApplyFailsWhenRequestNotOpen(t *testing.T) {
	db := newTestDB(t)
	engine := lifecycle.New(db)
	owner := seedUser(t, db, "alice123", models.RoleOwner)
	walker := seedUser(t, db, "bobwalker", models.RoleWalker)
	dog := seedDog(t, db, owner.ID, "Max")

	for _, status := range []models.WalkRequestStatus{
		models.RequestAccepted, models.RequestCompleted, models.RequestCancelled,
	} {
		request := seedRequest(t, db, dog.ID, status)
		_, err := engine.Apply(walker.ID, request.ID)
		require.Error(t, err)
		assert.Equal(t, errs.RequestNotOpen, errs.KindOf(err))
	}
}

func TestApplyTwiceFailsWithConstraintViolation(t *testing.T) {
	db := newTestDB(t)
	engine := lifecycle.New(db)
	owner := seedUser(t, db, "alice123", models.RoleOwner)
	walker := seedUser(t, db, "bobwalker", models.RoleWalker)
	dog := seedDog(t, db, owner.ID, "Max")
	request := seedRequest(t, db, dog.ID, models.RequestOpen)

	_, err := engine.Apply(walker.ID, request.ID)
	require.NoError(t, err)
	_, err = engine.Apply(walker.ID, request.ID)
	require.Error(t, err)
	assert.Equal(t, errs.ConstraintViolation, errs.KindOf(err))
}

func TestAcceptIsAtomic(t *testing.T) {
	db := newTestDB(t)
	engine := lifecycle.New(db)
	owner := seedUser(t, db, "alice123", models.RoleOwner)
	dog := seedDog(t, db, owner.ID, "Max")
	request := seedRequest(t, db, dog.ID, models.RequestOpen)

	var applications []*models.WalkApplication
	for _, name := range []string{"bobwalker", "davewalker", "evewalker"} {
		walker := seedUser(t, db, name, models.RoleWalker)
		application, err := engine.Apply(walker.ID, request.ID)
		require.NoError(t, err)
		applications = append(applications, application)
	}

	require.NoError(t, engine.Accept(owner.ID, request.ID, applications[1].ID))

	var got models.WalkRequest
	require.NoError(t, db.First(&got, request.ID).Error)
	assert.Equal(t, models.RequestAccepted, got.Status)

	var all []models.WalkApplication
	require.NoError(t, db.Where("request_id = ?", request.ID).Find(&all).Error)
	accepted, rejected := 0, 0
	for _, a := range all {
		switch a.Status {
		case models.ApplicationAccepted:
			accepted++
			assert.Equal(t, applications[1].ID, a.ID)
		case models.ApplicationRejected:
			rejected++
		default:
			t.Fatalf("unexpected application status %q", a.Status)
		}
	}
	assert.Equal(t, 1, accepted)
	assert.Equal(t, 2, rejected)
}

func TestAcceptOnNonOpenRequestLeavesStateUnchanged(t *testing.T) {
	db := newTestDB(t)
	engine := lifecycle.New(db)
	owner := seedUser(t, db, "alice123", models.RoleOwner)
	walkerA := seedUser(t, db, "bobwalker", models.RoleWalker)
	walkerB := seedUser(t, db, "davewalker", models.RoleWalker)
	dog := seedDog(t, db, owner.ID, "Max")
	request := seedRequest(t, db, dog.ID, models.RequestOpen)

	appA, err := engine.Apply(walkerA.ID, request.ID)
	require.NoError(t, err)
	appB, err := engine.Apply(walkerB.ID, request.ID)
	require.NoError(t, err)

	require.NoError(t, engine.Accept(owner.ID, request.ID, appA.ID))

	// Request is no longer open; the losing application is already rejected,
	// so a second accept must fail without touching anything.
	err = engine.Accept(owner.ID, request.ID, appB.ID)
	require.Error(t, err)
	assert.Equal(t, errs.InvalidStateTransition, errs.KindOf(err))

	var gotA, gotB models.WalkApplication
	require.NoError(t, db.First(&gotA, appA.ID).Error)
	require.NoError(t, db.First(&gotB, appB.ID).Error)
	assert.Equal(t, models.ApplicationAccepted, gotA.Status)
	assert.Equal(t, models.ApplicationRejected, gotB.Status)
}

func TestAcceptByNonOwnerFails(t *testing.T) {
	db := newTestDB(t)
	engine := lifecycle.New(db)
	owner := seedUser(t, db, "alice123", models.RoleOwner)
	other := seedUser(t, db, "carol123", models.RoleOwner)
	walker := seedUser(t, db, "bobwalker", models.RoleWalker)
	dog := seedDog(t, db, owner.ID, "Max")
	request := seedRequest(t, db, dog.ID, models.RequestOpen)
	application, err := engine.Apply(walker.ID, request.ID)
	require.NoError(t, err)

	err = engine.Accept(other.ID, request.ID, application.ID)
	require.Error(t, err)
	assert.Equal(t, errs.Forbidden, errs.KindOf(err))

	var got models.WalkRequest
	require.NoError(t, db.First(&got, request.ID).Error)
	assert.Equal(t, models.RequestOpen, got.Status)
}

func TestConcurrentAcceptsLeaveOneWinner(t *testing.T) {
	db := newTestDB(t)
	engine := lifecycle.New(db)
	owner := seedUser(t, db, "alice123", models.RoleOwner)
	walkerA := seedUser(t, db, "bobwalker", models.RoleWalker)
	walkerB := seedUser(t, db, "davewalker", models.RoleWalker)
	dog := seedDog(t, db, owner.ID, "Max")
	request := seedRequest(t, db, dog.ID, models.RequestOpen)

	appA, err := engine.Apply(walkerA.ID, request.ID)
	require.NoError(t, err)
	appB, err := engine.Apply(walkerB.ID, request.ID)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i, id := range []uint{appA.ID, appB.ID} {
		wg.Add(1)
		go func(i int, applicationID uint) {
			defer wg.Done()
			results[i] = engine.Accept(owner.ID, request.ID, applicationID)
		}(i, id)
	}
	wg.Wait()

	successes := 0
	for _, err := range results {
		if err == nil {
			successes++
		} else {
			assert.Equal(t, errs.InvalidStateTransition, errs.KindOf(err))
		}
	}
	assert.Equal(t, 1, successes)

	var acceptedCount int64
	require.NoError(t, db.Model(&models.WalkApplication{}).
		Where("request_id = ? AND status = ?", request.ID, models.ApplicationAccepted).
		Count(&acceptedCount).Error)
	assert.Equal(t, int64(1), acceptedCount)
}

func TestCompleteAndCancel(t *testing.T) {
	db := newTestDB(t)
	engine := lifecycle.New(db)
	owner := seedUser(t, db, "alice123", models.RoleOwner)
	walker := seedUser(t, db, "bobwalker", models.RoleWalker)
	dog := seedDog(t, db, owner.ID, "Max")

	// accepted -> completed
	request := seedRequest(t, db, dog.ID, models.RequestOpen)
	application, err := engine.Apply(walker.ID, request.ID)
	require.NoError(t, err)
	require.NoError(t, engine.Accept(owner.ID, request.ID, application.ID))
	require.NoError(t, engine.Complete(owner.ID, request.ID))

	// completed is terminal: cancel must fail and leave status untouched
	err = engine.Cancel(owner.ID, request.ID)
	require.Error(t, err)
	assert.Equal(t, errs.InvalidStateTransition, errs.KindOf(err))
	var got models.WalkRequest
	require.NoError(t, db.First(&got, request.ID).Error)
	assert.Equal(t, models.RequestCompleted, got.Status)

	// open -> cancelled works, open -> completed does not
	open := seedRequest(t, db, dog.ID, models.RequestOpen)
	err = engine.Complete(owner.ID, open.ID)
	require.Error(t, err)
	assert.Equal(t, errs.InvalidStateTransition, errs.KindOf(err))
	require.NoError(t, engine.Cancel(owner.ID, open.ID))
}

func TestRate(t *testing.T) {
	db := newTestDB(t)
	engine := lifecycle.New(db)
	owner := seedUser(t, db, "alice123", models.RoleOwner)
	walker := seedUser(t, db, "bobwalker", models.RoleWalker)
	dog := seedDog(t, db, owner.ID, "Max")
	request := seedRequest(t, db, dog.ID, models.RequestOpen)
	application, err := engine.Apply(walker.ID, request.ID)
	require.NoError(t, err)
	require.NoError(t, engine.Accept(owner.ID, request.ID, application.ID))

	// not completed yet
	_, err = engine.Rate(owner.ID, request.ID, 5, "great walk")
	require.Error(t, err)
	assert.Equal(t, errs.InvalidStateTransition, errs.KindOf(err))

	require.NoError(t, engine.Complete(owner.ID, request.ID))

	_, err = engine.Rate(owner.ID, request.ID, 6, "")
	require.Error(t, err)
	assert.Equal(t, errs.ConstraintViolation, errs.KindOf(err))

	rating, err := engine.Rate(owner.ID, request.ID, 5, "great walk")
	require.NoError(t, err)
	assert.Equal(t, walker.ID, rating.WalkerID)
	require.NotNil(t, rating.RequestID)
	assert.Equal(t, request.ID, *rating.RequestID)
}

func TestCreateRequestValidation(t *testing.T) {
	db := newTestDB(t)
	engine := lifecycle.New(db)
	owner := seedUser(t, db, "alice123", models.RoleOwner)
	other := seedUser(t, db, "carol123", models.RoleOwner)
	dog := seedDog(t, db, owner.ID, "Max")

	_, err := engine.CreateRequest(owner.ID, dog.ID, time.Now(), 0, "Parklands")
	require.Error(t, err)
	assert.Equal(t, errs.ConstraintViolation, errs.KindOf(err))

	_, err = engine.CreateRequest(other.ID, dog.ID, time.Now(), 30, "Parklands")
	require.Error(t, err)
	assert.Equal(t, errs.Forbidden, errs.KindOf(err))

	request, err := engine.CreateRequest(owner.ID, dog.ID, time.Now().Add(time.Hour), 45, "Beachside Ave")
	require.NoError(t, err)
	assert.Equal(t, models.RequestOpen, request.Status)
}
