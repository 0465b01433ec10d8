package services

import (
	"context"
	"database/sql"
	"sort"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/usermgmt/internal/common"
	"github.com/dmitrijs2005/usermgmt/internal/dbx"
	"github.com/dmitrijs2005/usermgmt/internal/logging"
	"github.com/dmitrijs2005/usermgmt/internal/server/config"
	"github.com/dmitrijs2005/usermgmt/internal/server/models"
	usersrepo "github.com/dmitrijs2005/usermgmt/internal/server/repositories/users"
)

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.SecretKey = "k"
	// cheap KDF for tests
	cfg.SaltBits = 64
	cfg.KDFMemory = 64
	cfg.KDFThreads = 1
	return cfg
}

// fakeUsersRepo is an in-memory users.Repository with injectable failures.
type fakeUsersRepo struct {
	byID map[string]*models.User

	createErr error
	findErr   error
	listErr   error
	updateErr error
	deleteErr error

	findCalls int
}

func newFakeUsersRepo(users ...*models.User) *fakeUsersRepo {
	f := &fakeUsersRepo{byID: map[string]*models.User{}}
	for _, u := range users {
		f.byID[u.ID] = u
	}
	return f
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	for _, existing := range f.byID {
		if existing.Email == u.Email {
			return nil, common.ErrorAlreadyExists
		}
	}
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	f.byID[u.ID] = &cp
	return u, nil
}

func (f *fakeUsersRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	f.findCalls++
	if f.findErr != nil {
		return nil, f.findErr
	}
	for _, u := range f.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	f.findCalls++
	if f.findErr != nil {
		return nil, f.findErr
	}
	u, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsersRepo) FindAll(ctx context.Context) ([]*models.User, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]*models.User, 0, len(f.byID))
	for _, u := range f.byID {
		cp := *u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeUsersRepo) Update(ctx context.Context, u *models.User) (*models.User, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	if _, ok := f.byID[u.ID]; !ok {
		return nil, common.ErrorNotFound
	}
	for id, existing := range f.byID {
		if id != u.ID && existing.Email == u.Email {
			return nil, common.ErrorAlreadyExists
		}
	}
	u.UpdatedAt = time.Now()
	cp := *u
	f.byID[u.ID] = &cp
	return u, nil
}

func (f *fakeUsersRepo) Delete(ctx context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.byID[id]; !ok {
		return common.ErrorNotFound
	}
	delete(f.byID, id)
	return nil
}

type fakeRepoManager struct {
	u *fakeUsersRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository       { return m.u }

// countingHasher stores "hash(password)" so tests can assert on derivations.
type countingHasher struct {
	hashCalls   int
	verifyCalls int
}

func (h *countingHasher) HashPassword(password string) (string, string) {
	h.hashCalls++
	return "salt-" + password, "hash-" + password
}

func (h *countingHasher) Verify(password, salt, hash string) bool {
	h.verifyCalls++
	return hash == "hash-"+password
}

type issued struct {
	user     models.AuthUser
	validity time.Duration
}

type fakeIssuer struct {
	calls   []issued
	failOn  int // 1-based call number that fails; 0 never
	counter int
}

func (f *fakeIssuer) Issue(user models.AuthUser, validity time.Duration) (string, error) {
	f.counter++
	if f.failOn == f.counter {
		return "", errBoom{}
	}
	f.calls = append(f.calls, issued{user: user, validity: validity})
	return "token-" + validity.String(), nil
}

func nopLogger() logging.Logger { return logging.Nop() }
