// Package useradmin implements the interactive bootstrap of administrator
// accounts used by cmd/useradmin.
package useradmin

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/usermgmt/internal/common"
	"github.com/dmitrijs2005/usermgmt/internal/server/models"
	"github.com/dmitrijs2005/usermgmt/internal/server/services"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

var ErrPasswordMismatch = errors.New("passwords do not match")

// AdminCreator persists a new ADMIN account.
type AdminCreator interface {
	CreateAdmin(ctx context.Context, in services.RegisterInput) (*models.User, error)
}

type Bootstrap struct {
	creator AdminCreator
	ask     *prompter
	out     io.Writer
}

func NewBootstrap(c AdminCreator, in io.Reader, out io.Writer) *Bootstrap {
	return &Bootstrap{creator: c, ask: newPrompter(in, out), out: out}
}

// Run creates an administrator. Missing email or name are prompted for;
// the password is always read twice from the terminal.
func (b *Bootstrap) Run(ctx context.Context, email, name string) (*models.User, error) {
	var err error

	if email == "" {
		if email, err = b.ask.line("Enter admin email"); err != nil {
			return nil, err
		}
	}
	if err := validation.Validate(email, validation.Required, is.Email); err != nil {
		return nil, fmt.Errorf("email: %w", err)
	}

	if name == "" {
		if name, err = b.ask.line("Enter admin name"); err != nil {
			return nil, err
		}
	}

	password, err := b.ask.secret("Enter password: ")
	if err != nil {
		return nil, err
	}
	defer common.Wipe(password)

	confirm, err := b.ask.secret("Repeat password: ")
	if err != nil {
		return nil, err
	}
	defer common.Wipe(confirm)

	if len(password) == 0 {
		return nil, errors.New("password must not be empty")
	}
	if !bytes.Equal(password, confirm) {
		return nil, ErrPasswordMismatch
	}

	u, err := b.creator.CreateAdmin(ctx, services.RegisterInput{Email: email, Name: name, Password: string(password)})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, fmt.Errorf("user %s already exists", email)
		}
		return nil, err
	}

	fmt.Fprintf(b.out, "Admin %s created (id %s)\n", u.Email, u.ID)
	return u, nil
}
