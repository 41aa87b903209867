package service

import (
	"context"
	"errors"
	"testing"

	"inventory_tracker/internal/model"
	"inventory_tracker/internal/repository"
	"inventory_tracker/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	users  map[string]*model.User
	nextID int64
	err    error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*model.User), nextID: 1}
}

func (f *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	if f.err != nil {
		return f.err
	}
	if _, exists := f.users[user.Username]; exists {
		return repository.ErrDuplicateUsername
	}
	user.ID = f.nextID
	f.nextID++
	copied := *user
	f.users[user.Username] = &copied
	return nil
}

func (f *fakeUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	user, ok := f.users[username]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id int64) (*model.User, error) {
	for _, user := range f.users {
		if user.ID == id {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo)
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.NotEqual(t, "secret123", user.PasswordHash)
	assert.True(t, utils.CheckPasswordHash("secret123", user.PasswordHash))

	logged, err := svc.Login(ctx, "alice", "secret123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)
}

func TestAuthService_Register_TrimsUsername(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo)

	user, err := svc.Register(context.Background(), "  alice  ", "secret123")

	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
}

func TestAuthService_Register_DuplicateUsername(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "secret123")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "alice", "other456")
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
	assert.Len(t, repo.users, 1, "no duplicate record may be created")
}

func TestAuthService_Login_IdenticalErrorForUnknownUserAndWrongPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "secret123")
	require.NoError(t, err)

	_, unknownErr := svc.Login(ctx, "nobody", "secret123")
	_, wrongPwErr := svc.Login(ctx, "alice", "wrongpassword")

	assert.ErrorIs(t, unknownErr, ErrInvalidCredentials)
	assert.ErrorIs(t, wrongPwErr, ErrInvalidCredentials)
	// Enumeration resistance: the two failures are indistinguishable.
	assert.Equal(t, unknownErr.Error(), wrongPwErr.Error())
}

func TestAuthService_Login_RepositoryFailure(t *testing.T) {
	repo := newFakeUserRepo()
	repo.err = errors.New("connection refused")
	svc := NewAuthService(repo)

	_, err := svc.Login(context.Background(), "alice", "secret123")

	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}
