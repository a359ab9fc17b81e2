package auth_test

import (
	"context"
	"testing"

	"go-leavedesk/internal/auth"
	autherrors "go-leavedesk/internal/auth/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeAuthRepo struct {
	usersByEmail map[string]*auth.User
	usersByID    map[uuid.UUID]*auth.User
	created      []*auth.User
	createErr    error
}

func (f *fakeAuthRepo) Create(ctx context.Context, user *auth.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, user)
	return nil
}

func (f *fakeAuthRepo) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	if u, ok := f.usersByEmail[email]; ok {
		return u, nil
	}
	return &auth.User{}, gorm.ErrRecordNotFound
}

func (f *fakeAuthRepo) GetByID(ctx context.Context, id uuid.UUID) (*auth.User, error) {
	if u, ok := f.usersByID[id]; ok {
		return u, nil
	}
	return &auth.User{}, gorm.ErrRecordNotFound
}

func hashPassword(t *testing.T, plain string) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(hashed)
}

func TestAuthService_Login(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	ctx := context.Background()

	personnelID := uuid.New()
	user := &auth.User{
		ID:          uuid.New(),
		PersonnelID: &personnelID,
		Email:       "ana@example.com",
		Password:    hashPassword(t, "secret123"),
		Role:        "employee",
	}
	repo := &fakeAuthRepo{usersByEmail: map[string]*auth.User{user.Email: user}}
	svc := auth.NewService(repo)

	t.Run("success", func(t *testing.T) {
		access, refresh, resp, err := svc.Login(ctx, "ana@example.com", "secret123")
		assert.NoError(t, err)
		assert.NotEmpty(t, access)
		assert.NotEmpty(t, refresh)
		assert.Equal(t, user.ID.String(), resp.ID)
		assert.Equal(t, personnelID.String(), resp.PersonnelID)
		assert.Equal(t, "employee", resp.Role)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, _, err := svc.Login(ctx, "ana@example.com", "wrong")
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, _, _, err := svc.Login(ctx, "nobody@example.com", "secret123")
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	ctx := context.Background()

	user := &auth.User{
		ID:       uuid.New(),
		Email:    "bo@example.com",
		Password: hashPassword(t, "secret123"),
		Role:     "admin",
	}
	repo := &fakeAuthRepo{
		usersByEmail: map[string]*auth.User{user.Email: user},
		usersByID:    map[uuid.UUID]*auth.User{user.ID: user},
	}
	svc := auth.NewService(repo)

	_, refresh, _, err := svc.Login(ctx, user.Email, "secret123")
	assert.NoError(t, err)

	access, newRefresh, resp, err := svc.RefreshToken(ctx, refresh)
	assert.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, newRefresh)
	assert.Equal(t, user.ID.String(), resp.ID)

	_, _, _, err = svc.RefreshToken(ctx, "not-a-token")
	assert.ErrorIs(t, err, autherrors.ErrInvalidRefreshToken)
}

func TestAuthService_Register(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	ctx := context.Background()

	repo := &fakeAuthRepo{}
	svc := auth.NewService(repo)

	resp, err := svc.Register(ctx, auth.RegisterRequest{
		Email:    "New@Example.com ",
		Password: "secret123",
		Role:     "employee",
	})
	assert.NoError(t, err)
	assert.Equal(t, "new@example.com", resp.Email)
	assert.Len(t, repo.created, 1)
	assert.NotEqual(t, "secret123", repo.created[0].Password)
}
