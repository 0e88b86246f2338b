package auth

import (
	"context"
	"time"
)

// ResetCodeStore guarda códigos de recuperación con expiración, uno por email.
// Guardar de nuevo sobrescribe el código pendiente anterior.
type ResetCodeStore interface {
	Save(ctx context.Context, email, code string, ttl time.Duration) error
	// Get devuelve el código vigente o domain.ErrNotFound si no existe o expiró.
	Get(ctx context.Context, email string) (string, error)
	Delete(ctx context.Context, email string) error
}

// Mailer envía correos transaccionales.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}
