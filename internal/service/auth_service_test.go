package service

import (
	"context"
	"institute_backend/internal/config"
	"institute_backend/internal/model"
	"institute_backend/internal/repository"
	"institute_backend/internal/util"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthServiceLogin(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	users := NewUserService(repository.NewUserRepository(db))
	cfg := &config.Config{JWT: config.JWTConfig{Secret: "test-secret", ExpireTime: time.Hour}}
	auth := NewAuthService(repository.NewUserRepository(db), cfg)

	created, err := users.Create(ctx, CreateUserRequest{Email: "hod.cs@institute.edu", Password: "hod123", Name: "HOD", Role: model.HOD})
	require.NoError(t, err)
	assert.NotEqual(t, "hod123", created.Password)

	res, err := auth.Login(ctx, LoginRequest{Email: "hod.cs@institute.edu", Password: "hod123"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, res.User.ID)

	claims, err := util.ParseJWT(res.Token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, model.HOD, claims.Role)

	me, err := auth.CurrentUser(ctx, claims)
	require.NoError(t, err)
	assert.Equal(t, "hod.cs@institute.edu", me.Email)

	tests := []struct {
		name string
		req  LoginRequest
		want error
	}{
		{"wrong password", LoginRequest{Email: "hod.cs@institute.edu", Password: "nope"}, util.ErrInvalidCredentials},
		{"unknown email", LoginRequest{Email: "ghost@institute.edu", Password: "hod123"}, util.ErrInvalidCredentials},
		{"missing password", LoginRequest{Email: "hod.cs@institute.edu"}, util.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := auth.Login(ctx, tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestUserService(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	svc := NewUserService(repository.NewUserRepository(db))
	auth := NewAuthService(repository.NewUserRepository(db), &config.Config{JWT: config.JWTConfig{Secret: "s", ExpireTime: time.Hour}})

	_, err := svc.Create(ctx, CreateUserRequest{Email: "t1@institute.edu", Password: "teacher123", Name: "T1", Role: model.Teacher})
	require.NoError(t, err)
	student, err := svc.Create(ctx, CreateUserRequest{Email: "s1@institute.edu", Password: "student123", Name: "S1", Role: model.Student})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateUserRequest{Email: "s1@institute.edu", Password: "student123", Name: "Dup", Role: model.Student})
	assert.ErrorIs(t, err, util.ErrEmailRegistered)

	_, err = svc.Create(ctx, CreateUserRequest{Email: "x@institute.edu", Password: "secret1", Name: "X", Role: "janitor"})
	assert.ErrorIs(t, err, util.ErrInvalidInput)

	list, err := svc.List(ctx, repository.UserFilter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "s1@institute.edu", list[0].Email)

	newName := "Student One"
	newPassword := "changed1"
	updated, err := svc.Update(ctx, student.ID, UpdateUserRequest{Name: &newName, Password: &newPassword})
	require.NoError(t, err)
	assert.Equal(t, newName, updated.Name)

	_, err = auth.Login(ctx, LoginRequest{Email: "s1@institute.edu", Password: "changed1"})
	assert.NoError(t, err)

	_, err = svc.Update(ctx, 999, UpdateUserRequest{Name: &newName})
	assert.ErrorIs(t, err, util.ErrNotFound)
}
