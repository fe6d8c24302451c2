package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	appauth "github.com/univoice/backend/internal/app/auth"
	"github.com/univoice/backend/internal/app/models"
	"github.com/univoice/backend/internal/app/models/dto"
	"github.com/univoice/backend/internal/app/repositories"
	"github.com/univoice/backend/internal/pkg/apperrors"
	"github.com/univoice/backend/internal/pkg/auth"
)

type userFixture struct {
	users      *fakeUserStore
	hostels    *fakeHostelStore
	complaints *fakeComplaintStore
	tokens     *fakeTokenStore
	svc        UserService
}

func newUserFixture() *userFixture {
	users := newFakeUserStore(
		&models.User{ID: 1, Email: "admin@univoice.edu", RoleType: models.RoleAdmin},
		&models.User{ID: 2, Email: "student1@univoice.edu", RoleType: models.RoleStudent, HostelID: ptr(int64(10)), MentorID: ptr(int64(4))},
		&models.User{ID: 4, Email: "mentor1@univoice.edu", RoleType: models.RoleMentor},
	)
	hostels := newFakeHostelStore(
		&models.Hostel{ID: 10, Name: "Kings Palace-1", Gender: models.GenderBoys, TotalRooms: 50},
	)
	complaints := &fakeComplaintStore{users: users}
	tokens := newFakeTokenStore()
	authz := appauth.NewAuthorizationService(users)

	return &userFixture{
		users:      users,
		hostels:    hostels,
		complaints: complaints,
		tokens:     tokens,
		svc:        NewUserService(users, hostels, complaints, tokens, authz, zerolog.Nop()),
	}
}

func TestCreateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a student with hostel, mentor and room", func(t *testing.T) {
		f := newUserFixture()

		user, err := f.svc.CreateUser(ctx, actorAdmin, &dto.CreateUserRequest{
			Email:      "Student2@UniVoice.edu",
			Name:       "Arjun Mehta",
			Password:   "Student123!",
			RoleType:   "student",
			HostelID:   ptr(int64(10)),
			MentorID:   ptr(int64(4)),
			RoomNumber: ptr("204"),
		})

		require.NoError(t, err)
		assert.Equal(t, "student2@univoice.edu", user.Email)
		assert.Equal(t, models.RoleStudent, user.RoleType)
		assert.NotEqual(t, "Student123!", user.Password)
		assert.True(t, auth.CheckPassword(user.Password, "Student123!"))
	})

	t.Run("only admins may create accounts", func(t *testing.T) {
		f := newUserFixture()

		_, err := f.svc.CreateUser(ctx, actorWarden, &dto.CreateUserRequest{
			Email: "x@univoice.edu", Name: "X", Password: "Warden123!", RoleType: "WARDEN",
		})
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})

	t.Run("admin accounts cannot be created", func(t *testing.T) {
		f := newUserFixture()

		_, err := f.svc.CreateUser(ctx, actorAdmin, &dto.CreateUserRequest{
			Email: "admin2@univoice.edu", Name: "A", Password: "Admin1234!", RoleType: "ADMIN",
		})
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("assignment fields are checked against the role", func(t *testing.T) {
		f := newUserFixture()

		_, err := f.svc.CreateUser(ctx, actorAdmin, &dto.CreateUserRequest{
			Email: "w@univoice.edu", Name: "W", Password: "Warden123!", RoleType: "WARDEN",
			RoomNumber: ptr("101"),
		})
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

		_, err = f.svc.CreateUser(ctx, actorAdmin, &dto.CreateUserRequest{
			Email: "m@univoice.edu", Name: "M", Password: "Mentor123!", RoleType: "MENTOR",
			HostelID: ptr(int64(10)),
		})
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		f := newUserFixture()

		_, err := f.svc.CreateUser(ctx, actorAdmin, &dto.CreateUserRequest{
			Email: "STUDENT1@univoice.edu", Name: "Dup", Password: "Student123!", RoleType: "STUDENT",
			HostelID: ptr(int64(10)),
		})
		assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
	})

	t.Run("referenced hostel and mentor must exist", func(t *testing.T) {
		f := newUserFixture()

		_, err := f.svc.CreateUser(ctx, actorAdmin, &dto.CreateUserRequest{
			Email: "s3@univoice.edu", Name: "S", Password: "Student123!", RoleType: "STUDENT",
			HostelID: ptr(int64(99)),
		})
		assert.ErrorIs(t, err, apperrors.ErrHostelNotFound)

		_, err = f.svc.CreateUser(ctx, actorAdmin, &dto.CreateUserRequest{
			Email: "s3@univoice.edu", Name: "S", Password: "Student123!", RoleType: "STUDENT",
			MentorID: ptr(int64(2)), // a student, not a mentor
		})
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("short password is rejected", func(t *testing.T) {
		f := newUserFixture()

		_, err := f.svc.CreateUser(ctx, actorAdmin, &dto.CreateUserRequest{
			Email: "s3@univoice.edu", Name: "S", Password: "short", RoleType: "STUDENT",
		})
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})
}

func TestGetStudentProfile(t *testing.T) {
	ctx := context.Background()
	f := newUserFixture()

	for _, c := range []*models.Complaint{
		{Heading: "ok", Status: models.StatusPending, UserID: 2, HostelID: 10},
		{Heading: "done", Status: models.StatusResolved, UserID: 2, HostelID: 10},
		{Heading: "flagged", Status: models.StatusFlagged, IsAbusive: true, UserID: 2, HostelID: 10},
	} {
		_, err := f.complaints.CreateComplaint(ctx, c)
		require.NoError(t, err)
	}

	profile, err := f.svc.GetStudentProfile(ctx, actorAdmin, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), profile.Student.ID)
	require.Len(t, profile.Flagged, 1)
	assert.Equal(t, "flagged", profile.Flagged[0].Heading)
	assert.Len(t, profile.History, 2)

	t.Run("non-student has no profile", func(t *testing.T) {
		_, err := f.svc.GetStudentProfile(ctx, actorAdmin, 4)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})
}

func TestListUsers(t *testing.T) {
	ctx := context.Background()
	f := newUserFixture()

	role := models.RoleStudent
	users, err := f.svc.ListUsers(ctx, actorAdmin, repositories.UserFilter{Role: &role})
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, int64(2), users[0].ID)

	_, err = f.svc.ListUsers(ctx, actorStudent, repositories.UserFilter{})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestUpdateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("shallow merge", func(t *testing.T) {
		f := newUserFixture()

		user, err := f.svc.UpdateUser(ctx, actorAdmin, 2, &dto.UpdateUserRequest{
			Name:  ptr("Riya S."),
			Email: ptr("  Riya@UniVoice.edu "),
		})

		require.NoError(t, err)
		assert.Equal(t, "Riya S.", user.Name)
		assert.Equal(t, "riya@univoice.edu", user.Email)
		// Untouched fields survive the merge.
		require.NotNil(t, user.HostelID)
		assert.Equal(t, int64(10), *user.HostelID)
	})

	t.Run("reassigned hostel must exist", func(t *testing.T) {
		f := newUserFixture()

		_, err := f.svc.UpdateUser(ctx, actorAdmin, 2, &dto.UpdateUserRequest{HostelID: ptr(int64(99))})
		assert.ErrorIs(t, err, apperrors.ErrHostelNotFound)
	})

	t.Run("zero clears the assignment", func(t *testing.T) {
		f := newUserFixture()

		user, err := f.svc.UpdateUser(ctx, actorAdmin, 2, &dto.UpdateUserRequest{MentorID: ptr(int64(0))})
		require.NoError(t, err)
		assert.Nil(t, user.MentorID)
	})
}

func TestDeleteUser(t *testing.T) {
	ctx := context.Background()

	t.Run("deletion revokes the account's sessions", func(t *testing.T) {
		f := newUserFixture()
		require.NoError(t, f.tokens.CreateToken(ctx, "tok-1", 2, time.Now().Add(time.Hour)))

		require.NoError(t, f.svc.DeleteUser(ctx, actorAdmin, 2))

		assert.Equal(t, []int64{2}, f.users.deleted)
		assert.Equal(t, []int64{2}, f.tokens.revokedAll)
		assert.Contains(t, f.tokens.revoked, "tok-1")
	})

	t.Run("admins cannot delete themselves", func(t *testing.T) {
		f := newUserFixture()

		err := f.svc.DeleteUser(ctx, actorAdmin, actorAdmin.UserID)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("non-admins are denied", func(t *testing.T) {
		f := newUserFixture()

		err := f.svc.DeleteUser(ctx, actorMentor, 2)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})
}
