package services

import (
	"context"
	"strings"
	"time"

	"github.com/univoice/backend/internal/app/models"
	"github.com/univoice/backend/internal/app/repositories"
	"github.com/univoice/backend/internal/pkg/apperrors"
)

// In-memory store fakes shared by the service tests. Each implements the
// narrow store interface the services consume, so the tests run without a
// database.

func ptr[T any](v T) *T { return &v }

type fakeComplaintStore struct {
	complaints []*models.Complaint
	users      *fakeUserStore // owner lookups for the mentor filter
	nextID     int64
	updates    []*models.ComplaintUpdate
	deleted    []int64
	counts     map[models.ComplaintStatus]int64
	lastFilter repositories.ComplaintFilter
}

func (s *fakeComplaintStore) CreateComplaint(_ context.Context, complaint *models.Complaint) (int64, error) {
	s.nextID++
	complaint.ID = s.nextID
	complaint.CreatedAt = time.Now()
	s.complaints = append(s.complaints, complaint)
	return complaint.ID, nil
}

func (s *fakeComplaintStore) GetComplaintByID(_ context.Context, id int64) (*models.Complaint, error) {
	for _, c := range s.complaints {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, apperrors.ErrComplaintNotFound
}

func (s *fakeComplaintStore) ListComplaints(_ context.Context, filter repositories.ComplaintFilter) ([]*models.Complaint, error) {
	s.lastFilter = filter
	var out []*models.Complaint
	for _, c := range s.complaints {
		if filter.UserID != nil && c.UserID != *filter.UserID {
			continue
		}
		if filter.HostelID != nil && c.HostelID != *filter.HostelID {
			continue
		}
		if filter.MentorID != nil && !s.ownerHasMentor(c.UserID, *filter.MentorID) {
			continue
		}
		if filter.Status != nil && c.Status != *filter.Status {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (s *fakeComplaintStore) ownerHasMentor(ownerID, mentorID int64) bool {
	if s.users == nil {
		return false
	}
	owner, ok := s.users.users[ownerID]
	return ok && owner.MentorID != nil && *owner.MentorID == mentorID
}

func (s *fakeComplaintStore) UpdateComplaint(_ context.Context, id int64, update *models.ComplaintUpdate) (*models.Complaint, error) {
	complaint, err := s.GetComplaintByID(context.Background(), id)
	if err != nil {
		return nil, err
	}
	// Matches the repository contract: an empty update reads the current
	// record back without writing.
	if update.IsEmpty() {
		return complaint, nil
	}
	s.updates = append(s.updates, update)

	if update.Status != nil {
		complaint.Status = *update.Status
	}
	if update.IsUrgent != nil {
		complaint.IsUrgent = *update.IsUrgent
	}
	if update.MentorComment != nil {
		complaint.MentorComment = update.MentorComment
	}
	if update.WardenComment != nil {
		complaint.WardenComment = update.WardenComment
	}
	if update.ClearResolvedAt {
		complaint.ResolvedAt = nil
	} else if update.ResolvedAt != nil {
		complaint.ResolvedAt = update.ResolvedAt
	}
	return complaint, nil
}

func (s *fakeComplaintStore) DeleteComplaint(_ context.Context, id int64) error {
	for i, c := range s.complaints {
		if c.ID == id {
			s.complaints = append(s.complaints[:i], s.complaints[i+1:]...)
			s.deleted = append(s.deleted, id)
			return nil
		}
	}
	return apperrors.ErrComplaintNotFound
}

func (s *fakeComplaintStore) CountComplaintsByStatus(_ context.Context, _ int64) (map[models.ComplaintStatus]int64, error) {
	return s.counts, nil
}

type fakeUserStore struct {
	users   map[int64]*models.User
	nextID  int64
	updates map[int64]*models.UserUpdate
	deleted []int64
}

func newFakeUserStore(users ...*models.User) *fakeUserStore {
	s := &fakeUserStore{users: map[int64]*models.User{}, updates: map[int64]*models.UserUpdate{}}
	for _, u := range users {
		s.users[u.ID] = u
		if u.ID > s.nextID {
			s.nextID = u.ID
		}
	}
	return s
}

func (s *fakeUserStore) CreateUser(_ context.Context, user *models.User) (int64, error) {
	s.nextID++
	user.ID = s.nextID
	user.CreatedAt = time.Now()
	s.users[user.ID] = user
	return user.ID, nil
}

func (s *fakeUserStore) GetUserByID(_ context.Context, id int64) (*models.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

func (s *fakeUserStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (s *fakeUserStore) EmailExists(_ context.Context, email string) (bool, error) {
	_, err := s.GetUserByEmail(context.Background(), email)
	return err == nil, nil
}

func (s *fakeUserStore) ListUsers(_ context.Context, filter repositories.UserFilter) ([]*models.User, error) {
	var out []*models.User
	for _, u := range s.users {
		if filter.Role != nil && u.RoleType != *filter.Role {
			continue
		}
		if filter.HostelID != nil && (u.HostelID == nil || *u.HostelID != *filter.HostelID) {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

func (s *fakeUserStore) UpdateUser(_ context.Context, id int64, update *models.UserUpdate) (*models.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	s.updates[id] = update
	if update.Name != nil {
		user.Name = *update.Name
	}
	if update.Email != nil {
		user.Email = *update.Email
	}
	if update.HostelID != nil {
		if *update.HostelID == 0 {
			user.HostelID = nil
		} else {
			user.HostelID = update.HostelID
		}
	}
	if update.MentorID != nil {
		if *update.MentorID == 0 {
			user.MentorID = nil
		} else {
			user.MentorID = update.MentorID
		}
	}
	if update.RoomNumber != nil {
		user.RoomNumber = update.RoomNumber
	}
	return user, nil
}

func (s *fakeUserStore) DeleteUser(_ context.Context, id int64) error {
	if _, ok := s.users[id]; !ok {
		return apperrors.ErrUserNotFound
	}
	delete(s.users, id)
	s.deleted = append(s.deleted, id)
	return nil
}

type fakeTokenStore struct {
	tokens     map[string]int64
	expiries   map[string]time.Time
	revoked    []string
	revokedAll []int64
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: map[string]int64{}, expiries: map[string]time.Time{}}
}

func (s *fakeTokenStore) CreateToken(_ context.Context, token string, userID int64, expiryDate time.Time) error {
	s.tokens[token] = userID
	s.expiries[token] = expiryDate
	return nil
}

func (s *fakeTokenStore) GetTokenUserID(_ context.Context, token string) (int64, error) {
	userID, ok := s.tokens[token]
	if !ok {
		return 0, apperrors.ErrTokenNotFound
	}
	return userID, nil
}

func (s *fakeTokenStore) RevokeToken(_ context.Context, token string) error {
	if _, ok := s.tokens[token]; !ok {
		return apperrors.ErrTokenNotFound
	}
	delete(s.tokens, token)
	s.revoked = append(s.revoked, token)
	return nil
}

func (s *fakeTokenStore) RevokeAllUserTokens(_ context.Context, userID int64) error {
	for token, owner := range s.tokens {
		if owner == userID {
			delete(s.tokens, token)
			s.revoked = append(s.revoked, token)
		}
	}
	s.revokedAll = append(s.revokedAll, userID)
	return nil
}

type fakeHostelStore struct {
	hostels map[int64]*models.Hostel
	users   *fakeUserStore // resident unassignment on delete
	nextID  int64
	deleted []int64
}

func newFakeHostelStore(hostels ...*models.Hostel) *fakeHostelStore {
	s := &fakeHostelStore{hostels: map[int64]*models.Hostel{}}
	for _, h := range hostels {
		s.hostels[h.ID] = h
		if h.ID > s.nextID {
			s.nextID = h.ID
		}
	}
	return s
}

func (s *fakeHostelStore) CreateHostel(_ context.Context, hostel *models.Hostel) (int64, error) {
	for _, h := range s.hostels {
		if strings.EqualFold(h.Name, hostel.Name) {
			return 0, apperrors.ErrHostelAlreadyExists
		}
	}
	s.nextID++
	hostel.ID = s.nextID
	s.hostels[hostel.ID] = hostel
	return hostel.ID, nil
}

func (s *fakeHostelStore) GetHostelByID(_ context.Context, id int64) (*models.Hostel, error) {
	hostel, ok := s.hostels[id]
	if !ok {
		return nil, apperrors.ErrHostelNotFound
	}
	return hostel, nil
}

func (s *fakeHostelStore) GetAllHostels(_ context.Context) ([]*models.Hostel, error) {
	out := make([]*models.Hostel, 0, len(s.hostels))
	for id := int64(1); id <= s.nextID; id++ {
		if h, ok := s.hostels[id]; ok {
			out = append(out, h)
		}
	}
	return out, nil
}

func (s *fakeHostelStore) DeleteHostel(_ context.Context, id int64) error {
	if _, ok := s.hostels[id]; !ok {
		return apperrors.ErrHostelNotFound
	}
	// Mirrors the repository transaction: residents and wardens are
	// unassigned before the hostel row goes.
	if s.users != nil {
		for _, u := range s.users.users {
			if u.HostelID != nil && *u.HostelID == id {
				u.HostelID = nil
			}
		}
	}
	delete(s.hostels, id)
	s.deleted = append(s.deleted, id)
	return nil
}
