package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/univoice/backend/internal/app/models"
	"github.com/univoice/backend/internal/pkg/apperrors"
)

// fakeDirectory is an in-memory UserDirectory for resolver tests.
type fakeDirectory struct {
	users map[int64]*models.User
}

func (d *fakeDirectory) GetUserByID(_ context.Context, id int64) (*models.User, error) {
	user, ok := d.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

func ptr[T any](v T) *T { return &v }

func testDirectory() *fakeDirectory {
	return &fakeDirectory{users: map[int64]*models.User{
		1: {ID: 1, RoleType: models.RoleAdmin},
		2: {ID: 2, RoleType: models.RoleStudent, HostelID: ptr(int64(10)), MentorID: ptr(int64(4))},
		3: {ID: 3, RoleType: models.RoleWarden, HostelID: ptr(int64(10))},
		4: {ID: 4, RoleType: models.RoleMentor},
		5: {ID: 5, RoleType: models.RoleStudent, HostelID: ptr(int64(20))},
		6: {ID: 6, RoleType: models.RoleWarden},
	}}
}

func TestVisibleFilterPerRole(t *testing.T) {
	svc := NewAuthorizationService(testDirectory())
	ctx := context.Background()

	t.Run("admin sees everything", func(t *testing.T) {
		filter, err := svc.VisibleFilter(ctx, models.Actor{UserID: 1, Role: models.RoleAdmin})
		assert.NoError(t, err)
		assert.Nil(t, filter.UserID)
		assert.Nil(t, filter.HostelID)
		assert.Nil(t, filter.MentorID)
	})

	t.Run("student sees own complaints only", func(t *testing.T) {
		filter, err := svc.VisibleFilter(ctx, models.Actor{UserID: 2, Role: models.RoleStudent})
		assert.NoError(t, err)
		assert.NotNil(t, filter.UserID)
		assert.Equal(t, int64(2), *filter.UserID)
	})

	t.Run("mentor sees mentees' complaints", func(t *testing.T) {
		filter, err := svc.VisibleFilter(ctx, models.Actor{UserID: 4, Role: models.RoleMentor})
		assert.NoError(t, err)
		assert.NotNil(t, filter.MentorID)
		assert.Equal(t, int64(4), *filter.MentorID)
	})

	t.Run("warden sees own hostel, urgent first", func(t *testing.T) {
		filter, err := svc.VisibleFilter(ctx, models.Actor{UserID: 3, Role: models.RoleWarden})
		assert.NoError(t, err)
		assert.NotNil(t, filter.HostelID)
		assert.Equal(t, int64(10), *filter.HostelID)
		assert.True(t, filter.UrgentFirst)
	})

	t.Run("unassigned warden sees nothing", func(t *testing.T) {
		filter, err := svc.VisibleFilter(ctx, models.Actor{UserID: 6, Role: models.RoleWarden})
		assert.NoError(t, err)
		assert.NotNil(t, filter.HostelID)
		assert.Equal(t, int64(0), *filter.HostelID)
	})

	t.Run("unknown role is forbidden", func(t *testing.T) {
		_, err := svc.VisibleFilter(ctx, models.Actor{UserID: 9, Role: models.RoleType("JANITOR")})
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})
}

func TestValidateView(t *testing.T) {
	svc := NewAuthorizationService(testDirectory())
	ctx := context.Background()
	complaint := &models.Complaint{ID: 100, UserID: 2, HostelID: 10}

	t.Run("admin may view any complaint", func(t *testing.T) {
		assert.NoError(t, svc.ValidateView(ctx, models.Actor{UserID: 1, Role: models.RoleAdmin}, complaint))
	})

	t.Run("owner may view own complaint", func(t *testing.T) {
		assert.NoError(t, svc.ValidateView(ctx, models.Actor{UserID: 2, Role: models.RoleStudent}, complaint))
	})

	t.Run("other student reads not found", func(t *testing.T) {
		err := svc.ValidateView(ctx, models.Actor{UserID: 5, Role: models.RoleStudent}, complaint)
		assert.ErrorIs(t, err, apperrors.ErrComplaintNotFound)
	})

	t.Run("mentor may view mentee's complaint", func(t *testing.T) {
		assert.NoError(t, svc.ValidateView(ctx, models.Actor{UserID: 4, Role: models.RoleMentor}, complaint))
	})

	t.Run("warden of the hostel may view", func(t *testing.T) {
		assert.NoError(t, svc.ValidateView(ctx, models.Actor{UserID: 3, Role: models.RoleWarden}, complaint))
	})

	t.Run("warden of another hostel reads not found", func(t *testing.T) {
		other := &models.Complaint{ID: 101, UserID: 5, HostelID: 20}
		err := svc.ValidateView(ctx, models.Actor{UserID: 3, Role: models.RoleWarden}, other)
		assert.ErrorIs(t, err, apperrors.ErrComplaintNotFound)
	})
}

func TestValidateTransition(t *testing.T) {
	svc := NewAuthorizationService(testDirectory())
	ctx := context.Background()
	complaint := &models.Complaint{ID: 100, UserID: 2, HostelID: 10}

	t.Run("responsible warden allowed", func(t *testing.T) {
		assert.NoError(t, svc.ValidateTransition(ctx, models.Actor{UserID: 3, Role: models.RoleWarden}, complaint))
	})

	t.Run("non-warden denied", func(t *testing.T) {
		err := svc.ValidateTransition(ctx, models.Actor{UserID: 1, Role: models.RoleAdmin}, complaint)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})

	t.Run("cross-hostel warden denied", func(t *testing.T) {
		other := &models.Complaint{ID: 101, UserID: 5, HostelID: 20}
		err := svc.ValidateTransition(ctx, models.Actor{UserID: 3, Role: models.RoleWarden}, other)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})

	t.Run("unassigned warden denied", func(t *testing.T) {
		err := svc.ValidateTransition(ctx, models.Actor{UserID: 6, Role: models.RoleWarden}, complaint)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})
}

func TestValidateTriage(t *testing.T) {
	svc := NewAuthorizationService(testDirectory())
	ctx := context.Background()
	complaint := &models.Complaint{ID: 100, UserID: 2, HostelID: 10}

	t.Run("assigned mentor allowed", func(t *testing.T) {
		assert.NoError(t, svc.ValidateTriage(ctx, models.Actor{UserID: 4, Role: models.RoleMentor}, complaint))
	})

	t.Run("non-mentor denied", func(t *testing.T) {
		err := svc.ValidateTriage(ctx, models.Actor{UserID: 3, Role: models.RoleWarden}, complaint)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})

	t.Run("mentor of a different student denied", func(t *testing.T) {
		other := &models.Complaint{ID: 101, UserID: 5, HostelID: 20}
		err := svc.ValidateTriage(ctx, models.Actor{UserID: 4, Role: models.RoleMentor}, other)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})
}

func TestValidateDeleteAndAdmin(t *testing.T) {
	svc := NewAuthorizationService(testDirectory())

	assert.NoError(t, svc.ValidateDelete(models.Actor{UserID: 1, Role: models.RoleAdmin}))
	assert.ErrorIs(t, svc.ValidateDelete(models.Actor{UserID: 3, Role: models.RoleWarden}), apperrors.ErrPermissionDenied)
	assert.ErrorIs(t, svc.ValidateDelete(models.Actor{UserID: 2, Role: models.RoleStudent}), apperrors.ErrPermissionDenied)

	assert.NoError(t, svc.ValidateAdmin(models.Actor{UserID: 1, Role: models.RoleAdmin}))
	assert.ErrorIs(t, svc.ValidateAdmin(models.Actor{UserID: 4, Role: models.RoleMentor}), apperrors.ErrPermissionDenied)
}
