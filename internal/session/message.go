package session

import (
	"errors"

	"github.com/and161185/wodcal/internal/errs"
)

// Op is the identity operation a message is rendered for.
type Op int

const (
	OpSignIn Op = iota
	OpSignUp
	OpSignOut
)

// Message renders err as the notice shown to the user.
func Message(op Op, err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, errs.ErrUnauthorized), errors.Is(err, errs.ErrNotFound):
		return "Email o contraseña incorrectos"
	case errors.Is(err, errs.ErrInvalidEmail):
		return "Email inválido"
	case errors.Is(err, errs.ErrRateLimited):
		return "Demasiados intentos. Intenta más tarde."
	case errors.Is(err, errs.ErrAlreadyExists):
		return "Este email ya está registrado"
	case errors.Is(err, errs.ErrWeakPassword):
		return "La contraseña debe tener al menos 6 caracteres"
	}
	switch op {
	case OpSignUp:
		return "Error al registrarse"
	case OpSignOut:
		return "Error al cerrar sesión"
	default:
		return "Error al iniciar sesión"
	}
}
