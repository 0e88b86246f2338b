package auth

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/stocktrack-api/internal/domain"
	"github.com/jhoicas/stocktrack-api/internal/domain/repository"
)

// resetCodeTTL vigencia del código de recuperación.
const resetCodeTTL = 5 * time.Minute

// PasswordResetUseCase flujo de recuperación de contraseña: genera un código
// numérico de 6 dígitos, lo guarda con expiración de 5 minutos (sobrescribiendo
// cualquier código pendiente para ese email) y lo envía por correo.
type PasswordResetUseCase struct {
	userRepo repository.UserRepository
	codes    ResetCodeStore
	mailer   Mailer
}

// NewPasswordResetUseCase construye el caso de uso.
func NewPasswordResetUseCase(userRepo repository.UserRepository, codes ResetCodeStore, mailer Mailer) *PasswordResetUseCase {
	return &PasswordResetUseCase{userRepo: userRepo, codes: codes, mailer: mailer}
}

// RequestCode genera y envía el código. Si el email no corresponde a ninguna
// cuenta responde sin error y sin enviar nada, para no revelar qué emails existen.
func (uc *PasswordResetUseCase) RequestCode(ctx context.Context, email string) error {
	if email == "" {
		return domain.ErrInvalidInput
	}
	user, err := uc.userRepo.FindByEmail(email)
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}

	code, err := generateCode()
	if err != nil {
		return fmt.Errorf("generar código: %w", err)
	}
	if err := uc.codes.Save(ctx, email, code, resetCodeTTL); err != nil {
		return fmt.Errorf("guardar código: %w", err)
	}

	body := fmt.Sprintf(
		"Tu código de recuperación es: %s\n\nExpira en 5 minutos. Si no solicitaste este cambio, ignora este correo.",
		code,
	)
	if err := uc.mailer.Send(ctx, email, "Código de recuperación de contraseña", body); err != nil {
		return fmt.Errorf("enviar correo: %w", err)
	}
	return nil
}

// ConfirmReset valida el código vigente y cambia la contraseña; el código se
// consume (un solo uso).
func (uc *PasswordResetUseCase) ConfirmReset(ctx context.Context, email, code, newPassword string) error {
	if email == "" || code == "" || len(newPassword) < 8 {
		return domain.ErrInvalidInput
	}
	stored, err := uc.codes.Get(ctx, email)
	if err != nil {
		if err == domain.ErrNotFound {
			return domain.ErrUnauthorized
		}
		return err
	}
	if stored != code {
		return domain.ErrUnauthorized
	}
	user, err := uc.userRepo.FindByEmail(email)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := uc.userRepo.UpdatePassword(user.ID, string(hash)); err != nil {
		return err
	}
	return uc.codes.Delete(ctx, email)
}

// generateCode devuelve un código uniforme en [100000, 999999].
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
