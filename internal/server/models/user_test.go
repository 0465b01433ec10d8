package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHasher struct {
	salt, hash string
	calls      int
}

func (f *fakeHasher) HashPassword(password string) (string, string) {
	f.calls++
	return f.salt, f.hash + ":" + password
}

func (f *fakeHasher) Verify(password, salt, hash string) bool {
	f.calls++
	return salt == f.salt && hash == f.hash+":"+password
}

func TestNewUser(t *testing.T) {
	u := NewUser("a@b.c", "Alice", RoleUser)

	_, err := uuid.Parse(u.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@b.c", u.Email)
	assert.Equal(t, "Alice", u.Name)
	assert.Equal(t, RoleUser, u.Role)
	assert.Empty(t, u.Salt)
	assert.Empty(t, u.Hash)

	assert.NotEqual(t, u.ID, NewUser("a@b.c", "Alice", RoleUser).ID)
}

func TestUser_SetAndCheckPassword(t *testing.T) {
	h := &fakeHasher{salt: "s", hash: "h"}
	u := NewUser("a@b.c", "Alice", RoleUser)

	u.SetPassword(h, "pw")
	assert.Equal(t, "s", u.Salt)
	assert.Equal(t, "h:pw", u.Hash)

	assert.True(t, u.CheckPassword(h, "pw"))
	assert.False(t, u.CheckPassword(h, "other"))
}

func TestUser_CheckPassword_NoCredentials(t *testing.T) {
	h := &fakeHasher{}
	u := NewUser("a@b.c", "Alice", RoleUser)

	assert.False(t, u.CheckPassword(h, ""))
	assert.Zero(t, h.calls, "hasher must not be consulted without stored credentials")
}

func TestRole_Valid(t *testing.T) {
	assert.True(t, RoleUser.Valid())
	assert.True(t, RoleAdmin.Valid())
	assert.False(t, Role("user").Valid())
	assert.False(t, Role("").Valid())
}

func TestAuthUser(t *testing.T) {
	u := &User{ID: "1", Email: "a@b.c", Role: RoleAdmin, Name: "n"}
	a := u.AuthUser()

	assert.Equal(t, AuthUser{ID: "1", Role: RoleAdmin, Email: "a@b.c"}, a)
	assert.True(t, a.Complete())
	assert.False(t, AuthUser{ID: "1", Role: RoleAdmin}.Complete())
	assert.False(t, AuthUser{ID: "1", Email: "x"}.Complete())
	assert.False(t, AuthUser{Role: RoleUser, Email: "x"}.Complete())
}
