package services

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/usermgmt/internal/common"
	"github.com/dmitrijs2005/usermgmt/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func newUserServiceWithFakes(t *testing.T, repo *fakeUsersRepo) (*UserService, *countingHasher) {
	t.Helper()
	s, h, _ := newUserServiceWithMock(t, repo)
	return s, h
}

func newUserServiceWithMock(t *testing.T, repo *fakeUsersRepo) (*UserService, *countingHasher, sqlmock.Sqlmock) {
	t.Helper()
	db, mock := newSQLMockDB(t)
	s := NewUserService(db, &fakeRepoManager{u: repo}, testConfig(), nopLogger())
	h := &countingHasher{}
	s.hasher = h
	return s, h, mock
}

func TestRegister_Success(t *testing.T) {
	repo := newFakeUsersRepo()
	s, h := newUserServiceWithFakes(t, repo)

	u, err := s.Register(context.Background(), RegisterInput{Email: "a@b.c", Password: "pw", Name: "Alice"})
	require.NoError(t, err)

	assert.NotEmpty(t, u.ID)
	assert.Equal(t, models.RoleUser, u.Role)
	assert.Equal(t, "Alice", u.Name)
	assert.Equal(t, "salt-pw", u.Salt)
	assert.Equal(t, "hash-pw", u.Hash)
	assert.Equal(t, 1, h.hashCalls)
	assert.Contains(t, repo.byID, u.ID)
}

func TestCreateAdmin_SetsRole(t *testing.T) {
	s, _ := newUserServiceWithFakes(t, newFakeUsersRepo())

	u, err := s.CreateAdmin(context.Background(), RegisterInput{Email: "root@b.c", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, u.Role)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	existing := &models.User{ID: "u-1", Email: "a@b.c", Role: models.RoleUser}
	s, _ := newUserServiceWithFakes(t, newFakeUsersRepo(existing))

	_, err := s.Register(context.Background(), RegisterInput{Email: "a@b.c", Password: "pw"})
	assert.True(t, errors.Is(err, common.ErrorAlreadyExists), "got %v", err)
}

func TestRegister_RepoError(t *testing.T) {
	repo := newFakeUsersRepo()
	repo.createErr = errBoom{}
	s, _ := newUserServiceWithFakes(t, repo)

	_, err := s.Register(context.Background(), RegisterInput{Email: "a@b.c", Password: "pw"})
	if err == nil || !regexp.MustCompile(`error creating user: .*boom`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}

func TestFindByID(t *testing.T) {
	u := &models.User{ID: "u-1", Email: "a@b.c", Role: models.RoleUser}
	repo := newFakeUsersRepo(u)
	s, _ := newUserServiceWithFakes(t, repo)

	got, err := s.FindByID(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Equal(t, "a@b.c", got.Email)

	_, err = s.FindByID(context.Background(), "missing")
	assert.True(t, errors.Is(err, common.ErrorNotFound))

	repo.findErr = errBoom{}
	_, err = s.FindByID(context.Background(), "u-1")
	assert.False(t, errors.Is(err, common.ErrorNotFound))
	assert.ErrorContains(t, err, "error loading user")
}

func TestFindAll(t *testing.T) {
	repo := newFakeUsersRepo(
		&models.User{ID: "u-1", Email: "a@b.c"},
		&models.User{ID: "u-2", Email: "d@e.f"},
	)
	s, _ := newUserServiceWithFakes(t, repo)

	list, err := s.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "u-1", list[0].ID)

	repo.listErr = errBoom{}
	_, err = s.FindAll(context.Background())
	assert.ErrorContains(t, err, "boom")
}

func TestUpdateByID_PartialFields(t *testing.T) {
	h := &countingHasher{}
	u := storedUser(h, "a@b.c", "old", models.RoleUser)
	repo := newFakeUsersRepo(u)
	s, sh, mock := newUserServiceWithMock(t, repo)
	mock.ExpectBegin()
	mock.ExpectCommit()

	got, err := s.UpdateByID(context.Background(), u.ID, UpdateInput{Name: ptr("Renamed")})
	require.NoError(t, err)

	assert.Equal(t, "Renamed", got.Name)
	assert.Equal(t, "a@b.c", got.Email)
	assert.Equal(t, u.Salt, got.Salt, "salt must not change without a password")
	assert.Equal(t, u.Hash, got.Hash, "hash must not change without a password")
	assert.Zero(t, sh.hashCalls)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateByID_PasswordRegeneratesCredentials(t *testing.T) {
	h := &countingHasher{}
	u := storedUser(h, "a@b.c", "old", models.RoleUser)
	s, sh, mock := newUserServiceWithMock(t, newFakeUsersRepo(u))
	mock.ExpectBegin()
	mock.ExpectCommit()

	got, err := s.UpdateByID(context.Background(), u.ID, UpdateInput{
		Password: ptr("new"),
		Email:    ptr("x@y.z"),
		Role:     ptr(models.RoleAdmin),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, sh.hashCalls)
	assert.Equal(t, "salt-new", got.Salt)
	assert.Equal(t, "hash-new", got.Hash)
	assert.Equal(t, "x@y.z", got.Email)
	assert.Equal(t, models.RoleAdmin, got.Role)
}

func TestUpdateByID_UnknownRole(t *testing.T) {
	s, _, mock := newUserServiceWithMock(t, newFakeUsersRepo())

	_, err := s.UpdateByID(context.Background(), "u-1", UpdateInput{Role: ptr(models.Role("ROOT"))})
	assert.True(t, errors.Is(err, common.ErrorValidation), "got %v", err)
	require.NoError(t, mock.ExpectationsWereMet(), "no transaction for invalid input")
}

func TestUpdateByID_Errors(t *testing.T) {
	tests := []struct {
		name    string
		repo    func() *fakeUsersRepo
		id      string
		in      UpdateInput
		want    error
		wantMsg string
	}{
		{
			name: "missing user",
			repo: func() *fakeUsersRepo { return newFakeUsersRepo() },
			id:   "missing",
			want: common.ErrorNotFound,
		},
		{
			name: "email taken",
			repo: func() *fakeUsersRepo {
				return newFakeUsersRepo(
					&models.User{ID: "u-1", Email: "a@b.c"},
					&models.User{ID: "u-2", Email: "d@e.f"},
				)
			},
			id:   "u-1",
			in:   UpdateInput{Email: ptr("d@e.f")},
			want: common.ErrorAlreadyExists,
		},
		{
			name: "store failure",
			repo: func() *fakeUsersRepo {
				r := newFakeUsersRepo(&models.User{ID: "u-1", Email: "a@b.c"})
				r.updateErr = errBoom{}
				return r
			},
			id:      "u-1",
			wantMsg: "error updating user: boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _, mock := newUserServiceWithMock(t, tt.repo())
			mock.ExpectBegin()
			mock.ExpectRollback()

			_, err := s.UpdateByID(context.Background(), tt.id, tt.in)
			if tt.want != nil {
				assert.True(t, errors.Is(err, tt.want), "got %v", err)
			} else {
				assert.EqualError(t, err, tt.wantMsg)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDeleteByID_ReturnsDeletedUser(t *testing.T) {
	u := &models.User{ID: "u-1", Email: "a@b.c", Name: "Alice", Role: models.RoleUser}
	repo := newFakeUsersRepo(u)
	s, _, mock := newUserServiceWithMock(t, repo)
	mock.ExpectBegin()
	mock.ExpectCommit()

	got, err := s.DeleteByID(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Equal(t, "a@b.c", got.Email)
	assert.NotContains(t, repo.byID, "u-1")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteByID_Missing(t *testing.T) {
	s, _, mock := newUserServiceWithMock(t, newFakeUsersRepo())
	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := s.DeleteByID(context.Background(), "missing")
	assert.True(t, errors.Is(err, common.ErrorNotFound), "got %v", err)
}

func TestDeleteByID_StoreFailure(t *testing.T) {
	repo := newFakeUsersRepo(&models.User{ID: "u-1"})
	repo.deleteErr = errBoom{}
	s, _, mock := newUserServiceWithMock(t, repo)
	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := s.DeleteByID(context.Background(), "u-1")
	if err == nil || !regexp.MustCompile(`error deleting user: .*boom`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}

func TestUpdateByID_BeginFails(t *testing.T) {
	s, _, mock := newUserServiceWithMock(t, newFakeUsersRepo(&models.User{ID: "u-1"}))
	mock.ExpectBegin().WillReturnError(errBoom{})

	_, err := s.UpdateByID(context.Background(), "u-1", UpdateInput{Name: ptr("x")})
	assert.ErrorContains(t, err, "boom")
}
