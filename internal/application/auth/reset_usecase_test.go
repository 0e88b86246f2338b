package auth_test

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/stocktrack-api/internal/application/auth"
	"github.com/jhoicas/stocktrack-api/internal/domain"
	"github.com/jhoicas/stocktrack-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeUserRepo struct {
	users map[string]*entity.User // por email
}

func (r *fakeUserRepo) Create(u *entity.User) error {
	r.users[u.Email] = u
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByEmail(email string) (*entity.User, error) {
	return r.users[email], nil
}

func (r *fakeUserRepo) UpdatePassword(userID, hash string) error {
	for _, u := range r.users {
		if u.ID == userID {
			u.PasswordHash = hash
			return nil
		}
	}
	return domain.ErrUserNotFound
}

type fakeCodeStore struct {
	codes map[string]string
	ttls  map[string]time.Duration
}

func newFakeCodeStore() *fakeCodeStore {
	return &fakeCodeStore{codes: make(map[string]string), ttls: make(map[string]time.Duration)}
}

func (s *fakeCodeStore) Save(_ context.Context, email, code string, ttl time.Duration) error {
	s.codes[email] = code
	s.ttls[email] = ttl
	return nil
}

func (s *fakeCodeStore) Get(_ context.Context, email string) (string, error) {
	code, ok := s.codes[email]
	if !ok {
		return "", domain.ErrNotFound
	}
	return code, nil
}

func (s *fakeCodeStore) Delete(_ context.Context, email string) error {
	delete(s.codes, email)
	return nil
}

type fakeMailer struct {
	sent []string // destinatarios
	body string
	fail bool
}

func (m *fakeMailer) Send(_ context.Context, to, subject, body string) error {
	if m.fail {
		return errors.New("smtp caído")
	}
	m.sent = append(m.sent, to)
	m.body = body
	return nil
}

func setup() (*auth.PasswordResetUseCase, *fakeUserRepo, *fakeCodeStore, *fakeMailer) {
	users := &fakeUserRepo{users: map[string]*entity.User{
		"ana@example.com": {ID: "u-1", Email: "ana@example.com", PasswordHash: "hash-anterior"},
	}}
	store := newFakeCodeStore()
	mailer := &fakeMailer{}
	return auth.NewPasswordResetUseCase(users, store, mailer), users, store, mailer
}

var codeRe = regexp.MustCompile(`\b(\d{6})\b`)

// ──────────────────────────────────────────────────────────────────────────────
// RequestCode
// ──────────────────────────────────────────────────────────────────────────────

func TestRequestCode_GeneraCodigoDe6DigitosConTTL(t *testing.T) {
	uc, _, store, mailer := setup()

	err := uc.RequestCode(context.Background(), "ana@example.com")
	require.NoError(t, err)

	code := store.codes["ana@example.com"]
	require.Len(t, code, 6)
	n, err := strconv.Atoi(code)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, n, 100000)
	assert.LessOrEqual(t, n, 999999)
	assert.Equal(t, 5*time.Minute, store.ttls["ana@example.com"])

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "ana@example.com", mailer.sent[0])
	assert.Contains(t, mailer.body, code, "el correo debe contener el código")
}

// Un nuevo pedido sobrescribe el código pendiente anterior.
func TestRequestCode_SobrescribeCodigoAnterior(t *testing.T) {
	uc, _, store, _ := setup()
	ctx := context.Background()

	require.NoError(t, uc.RequestCode(ctx, "ana@example.com"))
	first := store.codes["ana@example.com"]

	// Repetimos hasta obtener un código distinto (colisión 1/900000 por intento)
	var second string
	for i := 0; i < 5; i++ {
		require.NoError(t, uc.RequestCode(ctx, "ana@example.com"))
		second = store.codes["ana@example.com"]
		if second != first {
			break
		}
	}
	assert.NotEqual(t, first, second)
}

func TestRequestCode_EmailVacio(t *testing.T) {
	uc, _, _, _ := setup()
	err := uc.RequestCode(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Email desconocido: sin error y sin correo (no revelar qué cuentas existen).
func TestRequestCode_EmailDesconocido(t *testing.T) {
	uc, _, store, mailer := setup()
	err := uc.RequestCode(context.Background(), "nadie@example.com")
	require.NoError(t, err)
	assert.Empty(t, mailer.sent)
	assert.Empty(t, store.codes)
}

func TestRequestCode_FalloDeEnvio(t *testing.T) {
	uc, _, _, mailer := setup()
	mailer.fail = true
	err := uc.RequestCode(context.Background(), "ana@example.com")
	assert.Error(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// ConfirmReset
// ──────────────────────────────────────────────────────────────────────────────

func TestConfirmReset_FlujoCompleto(t *testing.T) {
	uc, users, store, mailer := setup()
	ctx := context.Background()

	require.NoError(t, uc.RequestCode(ctx, "ana@example.com"))
	match := codeRe.FindString(mailer.body)
	require.NotEmpty(t, match, "el correo debe contener el código de 6 dígitos")

	err := uc.ConfirmReset(ctx, "ana@example.com", match, "nueva-clave-segura")
	require.NoError(t, err)

	u := users.users["ana@example.com"]
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("nueva-clave-segura")))
	_, err = store.Get(ctx, "ana@example.com")
	assert.ErrorIs(t, err, domain.ErrNotFound, "el código debe consumirse tras usarse")
}

func TestConfirmReset_CodigoIncorrecto(t *testing.T) {
	uc, users, _, _ := setup()
	ctx := context.Background()

	require.NoError(t, uc.RequestCode(ctx, "ana@example.com"))
	err := uc.ConfirmReset(ctx, "ana@example.com", "000000", "nueva-clave-segura")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Equal(t, "hash-anterior", users.users["ana@example.com"].PasswordHash)
}

func TestConfirmReset_SinCodigoPendiente(t *testing.T) {
	uc, _, _, _ := setup()
	err := uc.ConfirmReset(context.Background(), "ana@example.com", "123456", "nueva-clave-segura")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestConfirmReset_PasswordCorta(t *testing.T) {
	uc, _, _, _ := setup()
	err := uc.ConfirmReset(context.Background(), "ana@example.com", "123456", "corta")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
