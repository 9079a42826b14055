package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memUsers struct {
	byEmail map[string]User
}

func (m *memUsers) Create(_ context.Context, u User) error {
	if _, ok := m.byEmail[u.Email]; ok {
		return ErrUserAlreadyExists
	}
	m.byEmail[u.Email] = u
	return nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (User, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

func (m *memUsers) GetByID(_ context.Context, id uuid.UUID) (User, error) {
	for _, u := range m.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

type staticTokens struct{}

func (staticTokens) Generate(_ context.Context, u User) (string, error) {
	return "token-" + u.ID.String(), nil
}

func (staticTokens) TTL() time.Duration { return time.Hour }

func TestRegisterAndLogin(t *testing.T) {
	repo := &memUsers{byEmail: map[string]User{}}
	svc := NewAuthService(repo, staticTokens{})
	ctx := context.Background()

	res, err := svc.Register(ctx, RegisterInput{Email: " PM@Example.com ", Password: "secret1", FullName: " Pat Manager "})
	require.NoError(t, err)
	assert.Equal(t, "pm@example.com", res.User.Email)
	assert.Equal(t, "Pat Manager", res.User.FullName)
	assert.True(t, res.User.IsActive)
	assert.NotEqual(t, "secret1", res.User.PasswordHash)
	assert.Equal(t, "token-"+res.User.ID.String(), res.Token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), res.ExpiresAt, time.Minute)

	_, err = svc.Register(ctx, RegisterInput{Email: "pm@example.com", Password: "another1"})
	assert.ErrorIs(t, err, ErrUserAlreadyExists)

	login, err := svc.Login(ctx, "PM@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, login.User.ID)

	_, err = svc.Login(ctx, "pm@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(ctx, "nobody@example.com", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	me, err := svc.Me(ctx, res.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pat Manager", me.DisplayName())
}

func TestRegisterRejectsWeakInput(t *testing.T) {
	svc := NewAuthService(&memUsers{byEmail: map[string]User{}}, staticTokens{})
	_, err := svc.Register(context.Background(), RegisterInput{Email: "a@b.c", Password: "123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Register(context.Background(), RegisterInput{Email: " ", Password: "secret1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginInactive(t *testing.T) {
	repo := &memUsers{byEmail: map[string]User{}}
	svc := NewAuthService(repo, staticTokens{})
	res, err := svc.Register(context.Background(), RegisterInput{Email: "x@y.z", Password: "secret1"})
	require.NoError(t, err)
	u := repo.byEmail["x@y.z"]
	u.IsActive = false
	repo.byEmail["x@y.z"] = u

	_, err = svc.Login(context.Background(), "x@y.z", "secret1")
	assert.ErrorIs(t, err, ErrInactive)
	assert.Equal(t, "x@y.z", res.User.DisplayName())
}
