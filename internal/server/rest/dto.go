package rest

import (
	"github.com/dmitrijs2005/usermgmt/internal/server/models"
	"github.com/dmitrijs2005/usermgmt/internal/server/services"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// RegisterRequest is the body of POST /api/v1/users/register.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(1, 128)),
		validation.Field(&r.Name, validation.Required, validation.Length(1, 255)),
	)
}

func (r RegisterRequest) toInput() services.RegisterInput {
	return services.RegisterInput{Email: r.Email, Password: r.Password, Name: r.Name}
}

// LoginRequest is the body of POST /api/v1/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

// UpdateUserRequest is the self-service update body. It cannot change the role.
type UpdateUserRequest struct {
	Email    *string `json:"email"`
	Name     *string `json:"name"`
	Password *string `json:"password"`
}

func (r UpdateUserRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.NilOrNotEmpty, is.Email),
		validation.Field(&r.Name, validation.Length(0, 255)),
		validation.Field(&r.Password, validation.NilOrNotEmpty, validation.Length(1, 128)),
	)
}

func (r UpdateUserRequest) toInput() services.UpdateInput {
	return services.UpdateInput{Email: r.Email, Name: r.Name, Password: r.Password}
}

// AdminUpdateUserRequest is the admin update body; it may also change the role.
type AdminUpdateUserRequest struct {
	UpdateUserRequest
	Role *string `json:"role"`
}

func (r AdminUpdateUserRequest) Validate() error {
	if err := r.UpdateUserRequest.Validate(); err != nil {
		return err
	}
	return validation.ValidateStruct(&r,
		validation.Field(&r.Role, validation.NilOrNotEmpty, validation.In(string(models.RoleUser), string(models.RoleAdmin))),
	)
}

func (r AdminUpdateUserRequest) toInput() services.UpdateInput {
	in := r.UpdateUserRequest.toInput()
	if r.Role != nil {
		role := models.Role(*r.Role)
		in.Role = &role
	}
	return in
}

// UserResponse is the public projection of a user. Credentials never leave the server.
type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

func toUserResponse(u *models.User) UserResponse {
	return UserResponse{ID: u.ID, Email: u.Email, Name: u.Name, Role: string(u.Role)}
}

// AccessResponse carries the token pair returned by login.
type AccessResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status string `json:"status"`
}
