package models

// AuthUser is the identity attached to a request once a guard admits it.
type AuthUser struct {
	ID    string
	Role  Role
	Email string
}

// Complete reports whether every identity field is present.
func (a AuthUser) Complete() bool {
	return a.ID != "" && a.Role != "" && a.Email != ""
}
