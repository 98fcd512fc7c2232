package user_test

import (
	"context"
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mocnepiwko/uni-diary/core"
	"github.com/mocnepiwko/uni-diary/core/user"
	"github.com/mocnepiwko/uni-diary/storage/database/inmem"
	"github.com/mocnepiwko/uni-diary/tests"
)

const testPwd = "Sup3rS3cret!"

func setup(t *testing.T) (*user.Service, user.Repository) {
	validate, translator := core.NewValidator()
	user.InitValidators(validate, translator)
	repo := inmemdb.NewUserRepository(inmemdb.Open())
	return user.NewService(repo, validate), repo
}

func TestService_Register(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		nu       user.NewUser
		wantTags map[string]string
	}{
		{name: "blank name", nu: user.NewUser{Name: " ", Email: "anna@test.ru", Password: testPwd}, wantTags: map[string]string{"name": "notblank"}},
		{name: "bad email", nu: user.NewUser{Name: "Анна", Email: "anna", Password: testPwd}, wantTags: map[string]string{"email": "email"}},
		{name: "short password", nu: user.NewUser{Name: "Анна", Email: "anna@test.ru", Password: "abc"}, wantTags: map[string]string{"password": "pwdminlen"}},
		{name: "unknown role", nu: user.NewUser{Name: "Анна", Email: "anna@test.ru", Password: testPwd, Role: "dean"}, wantTags: map[string]string{"role": "role"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.nu)
			verrs, ok := err.(validator.ValidationErrors)
			require.True(t, ok, "want validation errors, got %v", err)
			tags := make(map[string]string)
			for _, fe := range verrs {
				tags[fe.Field()] = fe.Tag()
			}
			assert.Equal(t, tt.wantTags, tags)
		})
	}

	usr, err := svc.Register(ctx, user.NewUser{Name: " Анна ", Email: " Anna@Test.ru", Password: testPwd})
	require.NoError(t, err)
	assert.NotEmpty(t, usr.ID)
	assert.Equal(t, "Анна", usr.Name)
	assert.Equal(t, "anna@test.ru", usr.Email)
	assert.Equal(t, user.RoleStudent, usr.Role)
	assert.NoError(t, usr.CheckPassword(testPwd))

	t.Run("duplicate email", func(t *testing.T) {
		_, err := svc.Register(ctx, user.NewUser{Name: "Другая Анна", Email: "ANNA@test.ru", Password: testPwd})
		var cerr *core.ConflictError
		require.True(t, errors.As(err, &cerr), "want *core.ConflictError, got %v", err)
		assert.Equal(t, user.ErrEmailExists, cerr.Err)
		assert.Equal(t, []core.FieldError{{Field: "email", Error: user.ErrEmailExists.Error()}}, cerr.Fields)
	})
}

func TestService_Authenticate(t *testing.T) {
	svc, repo := setup(t)
	ctx := context.Background()

	usr := testutil.CreateUser(t, repo, "Анна", "anna@test.ru", testPwd, user.RoleStudent)
	require.True(t, usr.LastLogin.IsZero())

	tests := []struct {
		name    string
		creds   user.Credentials
		wantErr error
	}{
		{name: "unknown email", creds: user.Credentials{Email: "lol@test.ru", Password: testPwd}, wantErr: user.ErrInvalidCredentials},
		{name: "wrong password", creds: user.Credentials{Email: "anna@test.ru", Password: "lol"}, wantErr: user.ErrInvalidCredentials},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Authenticate(ctx, tt.creds)
			assert.Equal(t, tt.wantErr, err)
		})
	}

	t.Run("missing fields", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, user.Credentials{Email: "anna@test.ru"})
		_, ok := err.(validator.ValidationErrors)
		assert.True(t, ok, "want validation errors, got %v", err)
	})

	got, err := svc.Authenticate(ctx, user.Credentials{Email: " ANNA@test.ru ", Password: testPwd})
	require.NoError(t, err)
	assert.Equal(t, usr.ID, got.ID)
	assert.False(t, got.LastLogin.IsZero())

	stored, err := repo.GetUserByID(ctx, usr.ID)
	require.NoError(t, err)
	assert.False(t, stored.LastLogin.IsZero(), "last login must be persisted")
}

func TestService_AddOrUpdate(t *testing.T) {
	svc, repo := setup(t)
	ctx := context.Background()

	created, err := svc.AddOrUpdate(ctx, user.NewUser{Name: "Мария", Email: "maria@test.ru", Password: testPwd, Role: user.RoleTeacher})
	require.NoError(t, err)
	assert.Equal(t, user.RoleTeacher, created.Role)

	updated, err := svc.AddOrUpdate(ctx, user.NewUser{Name: "Мария Ивановна", Email: "maria@test.ru", Password: "N3wS3cret!", Role: user.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Мария Ивановна", updated.Name)
	assert.Equal(t, user.RoleAdmin, updated.Role)
	assert.NoError(t, updated.CheckPassword("N3wS3cret!"))

	all, err := repo.QueryAllUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestService_ResetPassword(t *testing.T) {
	svc, repo := setup(t)
	ctx := context.Background()

	usr := testutil.CreateUser(t, repo, "Анна", "anna@test.ru", testPwd, user.RoleStudent)

	assert.Equal(t, user.ErrNotFound, svc.ResetPassword(ctx, "lol@test.ru", "N3wS3cret!"))

	require.NoError(t, svc.ResetPassword(ctx, "Anna@test.ru", "N3wS3cret!"))
	stored, err := repo.GetUserByID(ctx, usr.ID)
	require.NoError(t, err)
	assert.NoError(t, stored.CheckPassword("N3wS3cret!"))
	assert.Error(t, stored.CheckPassword(testPwd))
}
