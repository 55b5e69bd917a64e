package models

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ReviewInput is what a review form collects before the client is called.
type ReviewInput struct {
	LugarID      int    `json:"lugarId" validate:"required,gt=0"`
	Calificacion int    `json:"calificacion" validate:"required,min=1,max=5"`
	Texto        string `json:"texto" validate:"required"`
}

// Validate applies the form rules: rating in [1,5] and non-blank text.
func (r ReviewInput) Validate() error {
	r.Texto = strings.TrimSpace(r.Texto)
	return validate.Struct(r)
}

// Credentials is the login/registration form.
type Credentials struct {
	Nombre   string `json:"nombre,omitempty"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

func (c Credentials) Validate() error {
	return validate.Struct(c)
}

// ValidateLogin only requires both fields; format and length rules apply to
// registration alone.
func (c Credentials) ValidateLogin() error {
	if err := validate.Var(c.Email, "required"); err != nil {
		return err
	}
	return validate.Var(c.Password, "required")
}

// ValidateRegistration additionally requires a display name.
func (c Credentials) ValidateRegistration() error {
	if strings.TrimSpace(c.Nombre) == "" {
		return validate.Var(strings.TrimSpace(c.Nombre), "required")
	}
	return c.Validate()
}
