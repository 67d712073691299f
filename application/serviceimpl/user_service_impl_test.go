package serviceimpl

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskforge/domain/dto"
	"taskforge/domain/services"
	"taskforge/pkg/auth"
)

func TestUserService_Register(t *testing.T) {
	svc, _ := newTestUserService(t)
	ctx := context.Background()

	user, token, err := svc.Register(ctx, &dto.RegisterRequest{
		Name:     "Ann",
		Email:    "ann@x.com",
		Password: "secret1",
	})
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "ann@x.com", user.Email)
	assert.NotEmpty(t, token)

	// The stored credential is a hash, never the plaintext.
	assert.NotEqual(t, "secret1", user.Password)
	assert.True(t, auth.CheckPassword(user.Password, "secret1"))
}

func TestUserService_Register_DuplicateEmail(t *testing.T) {
	svc, _ := newTestUserService(t)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, &dto.RegisterRequest{
		Name: "Ann", Email: "ann@x.com", Password: "secret1",
	})
	require.NoError(t, err)

	user, token, err := svc.Register(ctx, &dto.RegisterRequest{
		Name: "Other Ann", Email: "ann@x.com", Password: "different",
	})
	assert.ErrorIs(t, err, services.ErrEmailTaken)
	assert.Nil(t, user)
	assert.Empty(t, token)
}

func TestUserService_Login(t *testing.T) {
	svc, _ := newTestUserService(t)
	ctx := context.Background()

	registered, _, err := svc.Register(ctx, &dto.RegisterRequest{
		Name: "Ann", Email: "ann@x.com", Password: "secret1",
	})
	require.NoError(t, err)

	token, user, err := svc.Login(ctx, &dto.LoginRequest{
		Email: "ann@x.com", Password: "secret1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, registered.ID, user.ID)
}

func TestUserService_Login_WrongPassword(t *testing.T) {
	svc, repo := newTestUserService(t)
	ctx := context.Background()

	registered, _, err := svc.Register(ctx, &dto.RegisterRequest{
		Name: "Ann", Email: "ann@x.com", Password: "secret1",
	})
	require.NoError(t, err)
	storedHash := registered.Password

	token, user, err := svc.Login(ctx, &dto.LoginRequest{
		Email: "ann@x.com", Password: "wrong",
	})
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	assert.Empty(t, token)
	assert.Nil(t, user)

	// A failed login leaves the stored hash untouched.
	after, err := repo.GetByID(ctx, registered.ID)
	require.NoError(t, err)
	assert.Equal(t, storedHash, after.Password)
}

func TestUserService_Login_UnknownEmail(t *testing.T) {
	svc, _ := newTestUserService(t)

	token, user, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email: "nobody@x.com", Password: "secret1",
	})
	// Unknown email and wrong password are indistinguishable to the caller.
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	assert.Empty(t, token)
	assert.Nil(t, user)
}

func TestUserService_UpdateProfile_Partial(t *testing.T) {
	svc, _ := newTestUserService(t)
	ctx := context.Background()

	registered, _, err := svc.Register(ctx, &dto.RegisterRequest{
		Name: "Ann", Email: "ann@x.com", Password: "secret1",
	})
	require.NoError(t, err)

	// Only the name is sent; the email keeps its stored value.
	updated, err := svc.UpdateProfile(ctx, registered.ID, &dto.UpdateProfileRequest{
		Name: strptr("Ann Updated"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Ann Updated", updated.Name)
	assert.Equal(t, "ann@x.com", updated.Email)
}

func TestUserService_UpdateProfile_EmailTaken(t *testing.T) {
	svc, _ := newTestUserService(t)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, &dto.RegisterRequest{
		Name: "Ann", Email: "ann@x.com", Password: "secret1",
	})
	require.NoError(t, err)

	bob, _, err := svc.Register(ctx, &dto.RegisterRequest{
		Name: "Bob", Email: "bob@x.com", Password: "secret1",
	})
	require.NoError(t, err)

	_, err = svc.UpdateProfile(ctx, bob.ID, &dto.UpdateProfileRequest{
		Email: strptr("ann@x.com"),
	})
	assert.ErrorIs(t, err, services.ErrEmailTaken)
}

func TestUserService_ChangePassword(t *testing.T) {
	svc, _ := newTestUserService(t)
	ctx := context.Background()

	registered, _, err := svc.Register(ctx, &dto.RegisterRequest{
		Name: "Ann", Email: "ann@x.com", Password: "secret1",
	})
	require.NoError(t, err)

	err = svc.ChangePassword(ctx, registered.ID, &dto.ChangePasswordRequest{
		CurrentPassword: "secret1",
		NewPassword:     "secret2",
	})
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, &dto.LoginRequest{Email: "ann@x.com", Password: "secret1"})
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, &dto.LoginRequest{Email: "ann@x.com", Password: "secret2"})
	assert.NoError(t, err)
}

func TestUserService_ChangePassword_WrongCurrent(t *testing.T) {
	svc, _ := newTestUserService(t)
	ctx := context.Background()

	registered, _, err := svc.Register(ctx, &dto.RegisterRequest{
		Name: "Ann", Email: "ann@x.com", Password: "secret1",
	})
	require.NoError(t, err)

	err = svc.ChangePassword(ctx, registered.ID, &dto.ChangePasswordRequest{
		CurrentPassword: "wrong",
		NewPassword:     "secret2",
	})
	assert.ErrorIs(t, err, services.ErrWrongPassword)

	// The old password still works.
	_, _, err = svc.Login(ctx, &dto.LoginRequest{Email: "ann@x.com", Password: "secret1"})
	assert.NoError(t, err)
}

func TestUserService_GetByID_Unknown(t *testing.T) {
	svc, _ := newTestUserService(t)

	user, err := svc.GetByID(context.Background(), 9999)
	assert.ErrorIs(t, err, services.ErrUserNotFound)
	assert.Nil(t, user)
}
