package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	appauth "github.com/univoice/backend/internal/app/auth"
	"github.com/univoice/backend/internal/app/models"
	"github.com/univoice/backend/internal/app/models/dto"
	"github.com/univoice/backend/internal/pkg/apperrors"
	"github.com/univoice/backend/internal/pkg/moderation"
)

var (
	actorAdmin   = models.Actor{UserID: 1, Role: models.RoleAdmin}
	actorStudent = models.Actor{UserID: 2, Role: models.RoleStudent}
	actorWarden  = models.Actor{UserID: 3, Role: models.RoleWarden}
	actorMentor  = models.Actor{UserID: 4, Role: models.RoleMentor}
)

func complaintFixture() (*fakeComplaintStore, *fakeUserStore, ComplaintService) {
	users := newFakeUserStore(
		&models.User{ID: 1, Email: "admin@univoice.edu", RoleType: models.RoleAdmin},
		&models.User{ID: 2, Email: "student1@univoice.edu", RoleType: models.RoleStudent, HostelID: ptr(int64(10)), MentorID: ptr(int64(4))},
		&models.User{ID: 3, Email: "warden1@univoice.edu", RoleType: models.RoleWarden, HostelID: ptr(int64(10))},
		&models.User{ID: 4, Email: "mentor1@univoice.edu", RoleType: models.RoleMentor},
		&models.User{ID: 5, Email: "student2@univoice.edu", RoleType: models.RoleStudent, HostelID: ptr(int64(20))},
	)
	complaints := &fakeComplaintStore{users: users}
	authz := appauth.NewAuthorizationService(users)
	svc := NewComplaintService(complaints, users, authz, moderation.NewDefaultFilter(), zerolog.Nop())
	return complaints, users, svc
}

func TestFileComplaint(t *testing.T) {
	ctx := context.Background()

	t.Run("clean submission starts in PENDING", func(t *testing.T) {
		_, _, svc := complaintFixture()

		complaint, err := svc.FileComplaint(ctx, actorStudent, &dto.FileComplaintRequest{
			Heading:     "Fan broken",
			Description: "Ceiling fan in room 101 stopped working",
			Category:    "electric",
		})

		require.NoError(t, err)
		assert.Equal(t, models.StatusPending, complaint.Status)
		assert.False(t, complaint.IsAbusive)
		assert.Equal(t, models.CategoryElectric, complaint.Category)
		assert.Equal(t, int64(2), complaint.UserID)
		assert.Equal(t, int64(10), complaint.HostelID)
	})

	t.Run("abusive submission is parked in FLAGGED", func(t *testing.T) {
		store, _, svc := complaintFixture()

		complaint, err := svc.FileComplaint(ctx, actorStudent, &dto.FileComplaintRequest{
			Heading:     "Useless warden",
			Description: "Nothing ever gets fixed here",
			Category:    "OTHERS",
		})

		require.NoError(t, err)
		assert.Equal(t, models.StatusFlagged, complaint.Status)
		assert.True(t, complaint.IsAbusive)
		require.Len(t, store.complaints, 1)
		assert.Equal(t, models.StatusFlagged, store.complaints[0].Status)
	})

	t.Run("only students may file", func(t *testing.T) {
		_, _, svc := complaintFixture()

		for _, actor := range []models.Actor{actorAdmin, actorWarden, actorMentor} {
			_, err := svc.FileComplaint(ctx, actor, &dto.FileComplaintRequest{
				Heading: "x", Description: "y", Category: "OTHERS",
			})
			assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
		}
	})

	t.Run("student without a hostel is rejected", func(t *testing.T) {
		_, users, svc := complaintFixture()
		users.users[2].HostelID = nil

		_, err := svc.FileComplaint(ctx, actorStudent, &dto.FileComplaintRequest{
			Heading: "Fan broken", Description: "still broken", Category: "ELECTRIC",
		})
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("blank heading and unknown category are rejected", func(t *testing.T) {
		_, _, svc := complaintFixture()

		_, err := svc.FileComplaint(ctx, actorStudent, &dto.FileComplaintRequest{
			Heading: "   ", Description: "y", Category: "OTHERS",
		})
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

		_, err = svc.FileComplaint(ctx, actorStudent, &dto.FileComplaintRequest{
			Heading: "x", Description: "y", Category: "NOISE",
		})
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("hostel is snapshotted at filing time", func(t *testing.T) {
		_, users, svc := complaintFixture()

		complaint, err := svc.FileComplaint(ctx, actorStudent, &dto.FileComplaintRequest{
			Heading: "Leaky tap", Description: "Bathroom tap drips", Category: "TOILET",
		})
		require.NoError(t, err)

		// Moving the student afterwards must not move the complaint.
		users.users[2].HostelID = ptr(int64(20))
		assert.Equal(t, int64(10), complaint.HostelID)
	})
}

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()

	file := func(t *testing.T, svc ComplaintService) *models.Complaint {
		t.Helper()
		complaint, err := svc.FileComplaint(ctx, actorStudent, &dto.FileComplaintRequest{
			Heading: "Fan broken", Description: "Ceiling fan stopped", Category: "ELECTRIC",
		})
		require.NoError(t, err)
		return complaint
	}

	t.Run("pending through in progress to resolved", func(t *testing.T) {
		_, _, svc := complaintFixture()
		complaint := file(t, svc)

		updated, err := svc.UpdateStatus(ctx, actorWarden, complaint.ID, &dto.UpdateStatusRequest{
			Status: "IN_PROGRESS", Comment: ptr("Electrician scheduled"),
		})
		require.NoError(t, err)
		assert.Equal(t, models.StatusInProgress, updated.Status)
		assert.Nil(t, updated.ResolvedAt)
		require.NotNil(t, updated.WardenComment)
		assert.Equal(t, "Electrician scheduled", *updated.WardenComment)

		updated, err = svc.UpdateStatus(ctx, actorWarden, complaint.ID, &dto.UpdateStatusRequest{Status: "RESOLVED"})
		require.NoError(t, err)
		assert.Equal(t, models.StatusResolved, updated.Status)
		require.NotNil(t, updated.ResolvedAt)
		// Comment from the earlier transition is preserved when none is sent.
		require.NotNil(t, updated.WardenComment)
		assert.Equal(t, "Electrician scheduled", *updated.WardenComment)
	})

	t.Run("lowercase status is accepted", func(t *testing.T) {
		_, _, svc := complaintFixture()
		complaint := file(t, svc)

		updated, err := svc.UpdateStatus(ctx, actorWarden, complaint.ID, &dto.UpdateStatusRequest{Status: "rejected"})
		require.NoError(t, err)
		assert.Equal(t, models.StatusRejected, updated.Status)
	})

	t.Run("terminal states admit no transition", func(t *testing.T) {
		_, _, svc := complaintFixture()
		complaint := file(t, svc)

		_, err := svc.UpdateStatus(ctx, actorWarden, complaint.ID, &dto.UpdateStatusRequest{Status: "RESOLVED"})
		require.NoError(t, err)

		_, err = svc.UpdateStatus(ctx, actorWarden, complaint.ID, &dto.UpdateStatusRequest{Status: "PENDING"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
	})

	t.Run("FLAGGED is never a target", func(t *testing.T) {
		_, _, svc := complaintFixture()
		complaint := file(t, svc)

		_, err := svc.UpdateStatus(ctx, actorWarden, complaint.ID, &dto.UpdateStatusRequest{Status: "FLAGGED"})
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("non-resolved target clears the resolution date", func(t *testing.T) {
		store, _, svc := complaintFixture()
		complaint := file(t, svc)

		_, err := svc.UpdateStatus(ctx, actorWarden, complaint.ID, &dto.UpdateStatusRequest{Status: "IN_PROGRESS"})
		require.NoError(t, err)

		require.Len(t, store.updates, 1)
		assert.True(t, store.updates[0].ClearResolvedAt)
		assert.Nil(t, store.updates[0].ResolvedAt)
	})

	t.Run("only the responsible warden may transition", func(t *testing.T) {
		_, _, svc := complaintFixture()
		complaint := file(t, svc)

		for _, actor := range []models.Actor{actorAdmin, actorStudent, actorMentor} {
			_, err := svc.UpdateStatus(ctx, actor, complaint.ID, &dto.UpdateStatusRequest{Status: "IN_PROGRESS"})
			assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
		}
	})
}

func TestTriage(t *testing.T) {
	ctx := context.Background()

	t.Run("mentor escalates and annotates", func(t *testing.T) {
		_, _, svc := complaintFixture()
		complaint, err := svc.FileComplaint(ctx, actorStudent, &dto.FileComplaintRequest{
			Heading: "No water", Description: "Tank empty since Monday", Category: "TOILET",
		})
		require.NoError(t, err)

		updated, err := svc.Triage(ctx, actorMentor, complaint.ID, &dto.TriageRequest{
			IsUrgent: ptr(true), Comment: ptr("Exams next week, prioritise"),
		})
		require.NoError(t, err)
		assert.True(t, updated.IsUrgent)
		require.NotNil(t, updated.MentorComment)
		assert.Equal(t, "Exams next week, prioritise", *updated.MentorComment)
		// Triage never moves the status.
		assert.Equal(t, models.StatusPending, updated.Status)
	})

	t.Run("triage works on resolved complaints too", func(t *testing.T) {
		_, _, svc := complaintFixture()
		complaint, err := svc.FileComplaint(ctx, actorStudent, &dto.FileComplaintRequest{
			Heading: "No water", Description: "Tank empty", Category: "TOILET",
		})
		require.NoError(t, err)
		_, err = svc.UpdateStatus(ctx, actorWarden, complaint.ID, &dto.UpdateStatusRequest{Status: "RESOLVED"})
		require.NoError(t, err)

		updated, err := svc.Triage(ctx, actorMentor, complaint.ID, &dto.TriageRequest{Comment: ptr("Confirmed fixed with the student")})
		require.NoError(t, err)
		assert.Equal(t, models.StatusResolved, updated.Status)
	})

	t.Run("empty triage is an error-free no-op", func(t *testing.T) {
		store, _, svc := complaintFixture()
		complaint, err := svc.FileComplaint(ctx, actorStudent, &dto.FileComplaintRequest{
			Heading: "No water", Description: "Tank empty", Category: "TOILET",
		})
		require.NoError(t, err)

		updated, err := svc.Triage(ctx, actorMentor, complaint.ID, &dto.TriageRequest{})
		require.NoError(t, err)
		assert.Equal(t, complaint.ID, updated.ID)
		assert.False(t, updated.IsUrgent)
		assert.Nil(t, updated.MentorComment)
		assert.Empty(t, store.updates)
	})

	t.Run("only the student's mentor may triage", func(t *testing.T) {
		_, _, svc := complaintFixture()
		complaint, err := svc.FileComplaint(ctx, actorStudent, &dto.FileComplaintRequest{
			Heading: "No water", Description: "Tank empty", Category: "TOILET",
		})
		require.NoError(t, err)

		for _, actor := range []models.Actor{actorAdmin, actorStudent, actorWarden} {
			_, err := svc.Triage(ctx, actor, complaint.ID, &dto.TriageRequest{IsUrgent: ptr(true)})
			assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
		}
	})
}

func TestGetComplaintVisibility(t *testing.T) {
	ctx := context.Background()
	_, _, svc := complaintFixture()

	complaint, err := svc.FileComplaint(ctx, actorStudent, &dto.FileComplaintRequest{
		Heading: "Fan broken", Description: "Ceiling fan stopped", Category: "ELECTRIC",
	})
	require.NoError(t, err)

	t.Run("owner, mentor, warden and admin all see it", func(t *testing.T) {
		for _, actor := range []models.Actor{actorStudent, actorMentor, actorWarden, actorAdmin} {
			got, err := svc.GetComplaint(ctx, actor, complaint.ID)
			require.NoError(t, err)
			assert.Equal(t, complaint.ID, got.ID)
		}
	})

	t.Run("another student reads not found", func(t *testing.T) {
		other := models.Actor{UserID: 5, Role: models.RoleStudent}
		_, err := svc.GetComplaint(ctx, other, complaint.ID)
		assert.ErrorIs(t, err, apperrors.ErrComplaintNotFound)
	})
}

func TestWardenQueue(t *testing.T) {
	ctx := context.Background()
	store, _, svc := complaintFixture()

	seed := []*models.Complaint{
		{Heading: "a", Status: models.StatusPending, UserID: 2, HostelID: 10},
		{Heading: "b", Status: models.StatusPending, IsUrgent: true, UserID: 2, HostelID: 10},
		{Heading: "c", Status: models.StatusInProgress, UserID: 2, HostelID: 10},
		{Heading: "d", Status: models.StatusInProgress, IsUrgent: true, UserID: 2, HostelID: 10},
		{Heading: "e", Status: models.StatusResolved, UserID: 2, HostelID: 10},
		{Heading: "f", Status: models.StatusRejected, IsUrgent: true, UserID: 2, HostelID: 10},
		{Heading: "g", Status: models.StatusFlagged, IsAbusive: true, UserID: 2, HostelID: 10},
		{Heading: "other hostel", Status: models.StatusPending, UserID: 5, HostelID: 20},
	}
	for _, c := range seed {
		_, err := store.CreateComplaint(ctx, c)
		require.NoError(t, err)
	}

	queue, err := svc.WardenQueue(ctx, actorWarden)
	require.NoError(t, err)

	headings := func(cs []*models.Complaint) []string {
		out := make([]string, 0, len(cs))
		for _, c := range cs {
			out = append(out, c.Heading)
		}
		return out
	}

	assert.ElementsMatch(t, []string{"b", "d"}, headings(queue.Urgent))
	assert.ElementsMatch(t, []string{"a"}, headings(queue.Pending))
	assert.ElementsMatch(t, []string{"c"}, headings(queue.InProgress))
	assert.ElementsMatch(t, []string{"e", "f"}, headings(queue.Completed))
	assert.ElementsMatch(t, []string{"g"}, headings(queue.Archived))

	t.Run("only wardens have a queue", func(t *testing.T) {
		_, err := svc.WardenQueue(ctx, actorStudent)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})
}

func TestListComplaintsFilter(t *testing.T) {
	ctx := context.Background()
	store, _, svc := complaintFixture()

	for _, c := range []*models.Complaint{
		{Heading: "mine pending", Status: models.StatusPending, UserID: 2, HostelID: 10},
		{Heading: "mine resolved", Status: models.StatusResolved, UserID: 2, HostelID: 10},
		{Heading: "not mine", Status: models.StatusPending, UserID: 5, HostelID: 20},
	} {
		_, err := store.CreateComplaint(ctx, c)
		require.NoError(t, err)
	}

	status := models.StatusPending
	complaints, err := svc.ListComplaints(ctx, actorStudent, &status)
	require.NoError(t, err)
	require.Len(t, complaints, 1)
	assert.Equal(t, "mine pending", complaints[0].Heading)

	t.Run("warden listing asks for queue ordering", func(t *testing.T) {
		_, err := svc.ListComplaints(ctx, actorWarden, nil)
		require.NoError(t, err)
		assert.True(t, store.lastFilter.UrgentFirst)
	})

	t.Run("mentor sees only mentees' complaints", func(t *testing.T) {
		complaints, err := svc.ListComplaints(ctx, actorMentor, nil)
		require.NoError(t, err)
		require.Len(t, complaints, 2)
		for _, c := range complaints {
			assert.Equal(t, int64(2), c.UserID)
		}
	})
}

func TestDeleteComplaint(t *testing.T) {
	ctx := context.Background()
	store, _, svc := complaintFixture()

	complaint, err := svc.FileComplaint(ctx, actorStudent, &dto.FileComplaintRequest{
		Heading: "Fan broken", Description: "Ceiling fan stopped", Category: "ELECTRIC",
	})
	require.NoError(t, err)

	t.Run("non-admins are denied", func(t *testing.T) {
		for _, actor := range []models.Actor{actorStudent, actorWarden, actorMentor} {
			err := svc.DeleteComplaint(ctx, actor, complaint.ID)
			assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
		}
		assert.Empty(t, store.deleted)
	})

	t.Run("admin deletes", func(t *testing.T) {
		require.NoError(t, svc.DeleteComplaint(ctx, actorAdmin, complaint.ID))
		assert.Equal(t, []int64{complaint.ID}, store.deleted)

		err := svc.DeleteComplaint(ctx, actorAdmin, complaint.ID)
		assert.ErrorIs(t, err, apperrors.ErrComplaintNotFound)
	})
}

func TestCountsByHostel(t *testing.T) {
	ctx := context.Background()
	store, _, svc := complaintFixture()
	store.counts = map[models.ComplaintStatus]int64{
		models.StatusPending:  3,
		models.StatusResolved: 7,
	}

	counts, err := svc.CountsByHostel(ctx, actorAdmin, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(10), counts.HostelID)
	assert.Equal(t, int64(3), counts.Counts[models.StatusPending])
	assert.Equal(t, int64(7), counts.Counts[models.StatusResolved])

	_, err = svc.CountsByHostel(ctx, actorWarden, 10)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	_, err = svc.CountsByHostel(ctx, actorAdmin, 0)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}
