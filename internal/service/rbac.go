package service

import (
	"errors"

	"github.com/betterhouse/syndic/internal/copro"
)

var (
	// ErrForbidden indica ausência de permissão.
	ErrForbidden = errors.New("acesso negado")
)

// Authorize confere se os papéis do token ainda valem para o usuário.
// Um recarregamento do snapshot pode ter mudado o papel.
func Authorize(user copro.User, roles []string) error {
	for _, raw := range roles {
		role, ok := copro.ParseRole(raw)
		if ok && role == user.Role {
			return nil
		}
	}
	return ErrForbidden
}
