package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"readgrid-backend/internal/domains/user/model"
	"readgrid-backend/pkg/jwt"
)

type fakeUserRepository struct {
	users map[uuid.UUID]*model.User
}

func newFakeUserRepo() *fakeUserRepository {
	return &fakeUserRepository{users: make(map[uuid.UUID]*model.User)}
}

func (f *fakeUserRepository) Create(_ context.Context, user *model.User) error {
	stored := *user
	f.users[user.ID] = &stored
	return nil
}

func (f *fakeUserRepository) GetByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepository) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, model.ErrUserNotFound
}

func (f *fakeUserRepository) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, u := range f.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepository) ExistsByUsername(_ context.Context, username string) (bool, error) {
	for _, u := range f.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepository) Update(_ context.Context, user *model.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return model.ErrUserNotFound
	}
	stored := *user
	f.users[user.ID] = &stored
	return nil
}

func (f *fakeUserRepository) TouchLastLogin(_ context.Context, id uuid.UUID) error {
	u, ok := f.users[id]
	if !ok {
		return model.ErrUserNotFound
	}
	now := time.Now()
	u.LastLoginAt = &now
	return nil
}

func newTestUserService(t *testing.T) (*fakeUserRepository, UserService, *jwt.Manager) {
	t.Helper()
	repo := newFakeUserRepo()
	manager := jwt.NewManager("test-secret")
	return repo, NewUserService(repo, manager), manager
}

func register(t *testing.T, svc UserService, username, email, password string) *model.AuthResponse {
	t.Helper()
	resp, err := svc.Register(context.Background(), &model.RegisterRequest{
		Username: username,
		Email:    email,
		Password: password,
	})
	require.NoError(t, err)
	return resp
}

func assertUserCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var userErr *model.UserError
	require.ErrorAs(t, err, &userErr)
	assert.Equal(t, code, userErr.Code)
}

func TestRegister_CreatesUserAndToken(t *testing.T) {
	repo, svc, manager := newTestUserService(t)

	resp := register(t, svc, "reader", "Reader@Example.com", "secret1")

	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "reader", resp.User.Username)
	// Email is stored lowercased.
	assert.Equal(t, "reader@example.com", resp.User.Email)
	assert.Equal(t, model.RoleUser, resp.User.Role)
	assert.False(t, resp.User.IsPremium)

	claims, err := manager.Verify(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID.String(), claims.UserID)
	assert.Equal(t, "reader", claims.Username)

	stored := repo.users[resp.User.ID]
	require.NotNil(t, stored)
	assert.NotEqual(t, "secret1", stored.PasswordHash)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	_, svc, _ := newTestUserService(t)

	register(t, svc, "reader", "reader@example.com", "secret1")

	_, err := svc.Register(context.Background(), &model.RegisterRequest{
		Username: "other",
		Email:    "READER@example.com",
		Password: "secret2",
	})
	assertUserCode(t, err, model.ErrCodeEmailTaken)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	_, svc, _ := newTestUserService(t)

	register(t, svc, "reader", "reader@example.com", "secret1")

	_, err := svc.Register(context.Background(), &model.RegisterRequest{
		Username: "reader",
		Email:    "other@example.com",
		Password: "secret2",
	})
	assertUserCode(t, err, model.ErrCodeUsernameTaken)
}

func TestLogin(t *testing.T) {
	repo, svc, _ := newTestUserService(t)

	created := register(t, svc, "reader", "reader@example.com", "secret1")

	resp, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "reader@example.com",
		Password: "secret1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, created.User.ID, resp.User.ID)
	assert.NotNil(t, repo.users[created.User.ID].LastLoginAt)

	// Wrong password and unknown email yield the same error.
	_, err = svc.Login(context.Background(), &model.LoginRequest{
		Email:    "reader@example.com",
		Password: "wrong",
	})
	assertUserCode(t, err, model.ErrCodeInvalidCredentials)

	_, err = svc.Login(context.Background(), &model.LoginRequest{
		Email:    "nobody@example.com",
		Password: "secret1",
	})
	assertUserCode(t, err, model.ErrCodeInvalidCredentials)
}

func TestUpdateProfile_RotatesToken(t *testing.T) {
	_, svc, manager := newTestUserService(t)

	created := register(t, svc, "reader", "reader@example.com", "secret1")

	newName := "bookworm"
	resp, err := svc.UpdateProfile(context.Background(), created.User.ID, &model.UpdateProfileRequest{
		Username: &newName,
	})
	require.NoError(t, err)
	assert.Equal(t, "bookworm", resp.User.Username)

	claims, err := manager.Verify(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "bookworm", claims.Username)
}

func TestUpdateProfile_UniquenessChecks(t *testing.T) {
	_, svc, _ := newTestUserService(t)

	register(t, svc, "reader", "reader@example.com", "secret1")
	other := register(t, svc, "other", "other@example.com", "secret2")

	takenName := "reader"
	_, err := svc.UpdateProfile(context.Background(), other.User.ID, &model.UpdateProfileRequest{
		Username: &takenName,
	})
	assertUserCode(t, err, model.ErrCodeUsernameTaken)

	takenEmail := "reader@example.com"
	_, err = svc.UpdateProfile(context.Background(), other.User.ID, &model.UpdateProfileRequest{
		Email: &takenEmail,
	})
	assertUserCode(t, err, model.ErrCodeEmailTaken)

	// Re-submitting your own values is not a conflict.
	ownName := "other"
	_, err = svc.UpdateProfile(context.Background(), other.User.ID, &model.UpdateProfileRequest{
		Username: &ownName,
	})
	assert.NoError(t, err)
}

func TestUpdateProfile_ChangesPassword(t *testing.T) {
	_, svc, _ := newTestUserService(t)

	created := register(t, svc, "reader", "reader@example.com", "secret1")

	newPassword := "rewritten"
	_, err := svc.UpdateProfile(context.Background(), created.User.ID, &model.UpdateProfileRequest{
		Password: &newPassword,
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &model.LoginRequest{
		Email:    "reader@example.com",
		Password: "secret1",
	})
	assertUserCode(t, err, model.ErrCodeInvalidCredentials)

	_, err = svc.Login(context.Background(), &model.LoginRequest{
		Email:    "reader@example.com",
		Password: "rewritten",
	})
	assert.NoError(t, err)
}

func TestPremiumActive(t *testing.T) {
	now := time.Now()
	future := now.Add(24 * time.Hour)
	past := now.Add(-24 * time.Hour)

	tests := []struct {
		name string
		user model.User
		want bool
	}{
		{"flag and future expiry", model.User{IsPremium: true, PremiumUntil: &future}, true},
		{"expired", model.User{IsPremium: true, PremiumUntil: &past}, false},
		{"flag without expiry", model.User{IsPremium: true}, false},
		{"no flag", model.User{PremiumUntil: &future}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.user.PremiumActive(now))
		})
	}
}
