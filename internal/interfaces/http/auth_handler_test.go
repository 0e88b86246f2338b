package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/stocktrack-api/internal/application/auth"
	"github.com/jhoicas/stocktrack-api/internal/domain"
	"github.com/jhoicas/stocktrack-api/internal/domain/entity"
	apphttp "github.com/jhoicas/stocktrack-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeUserRepo struct {
	users map[string]*entity.User // por email
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{}}
}

func (r *fakeUserRepo) Create(user *entity.User) error {
	if _, ok := r.users[user.Email]; ok {
		return domain.ErrEmailAlreadyExists
	}
	r.users[user.Email] = user
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

func (r *fakeUserRepo) UpdatePassword(userID, passwordHash string) error {
	for _, u := range r.users {
		if u.ID == userID {
			u.PasswordHash = passwordHash
			return nil
		}
	}
	return domain.ErrUserNotFound
}

type fakeCodeStore struct {
	codes map[string]string
}

func newFakeCodeStore() *fakeCodeStore {
	return &fakeCodeStore{codes: map[string]string{}}
}

func (s *fakeCodeStore) Save(_ context.Context, email, code string, _ time.Duration) error {
	s.codes[email] = code
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
	sent []string // cuerpos enviados
}

func (m *fakeMailer) Send(_ context.Context, _, _, body string) error {
	m.sent = append(m.sent, body)
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

var codePattern = regexp.MustCompile(`\b(\d{6})\b`)

func buildAuthApp(t *testing.T) (*fiber.App, *fakeUserRepo, *fakeMailer) {
	t.Helper()
	users := newFakeUserRepo()
	mailer := &fakeMailer{}
	resetUC := auth.NewPasswordResetUseCase(users, newFakeCodeStore(), mailer)
	authUC := auth.NewAuthUseCase(users, auth.JWTConfig{
		Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer,
	})

	app := fiber.New()
	handler := apphttp.NewAuthHandler(authUC, resetUC)
	app.Post("/api/auth/login", handler.Login)
	app.Post("/api/auth/forgot-password", handler.ForgotPassword)
	app.Post("/api/auth/reset-password", handler.ResetPassword)
	return app, users, mailer
}

func seedUser(t *testing.T, users *fakeUserRepo, email, password string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, users.Create(&entity.User{
		ID:           testUserID,
		Email:        email,
		PasswordHash: string(hash),
		Name:         "Ana",
	}))
}

func postJSON(t *testing.T, app *fiber.App, path string, payload any) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests forgot-password / reset-password
// ──────────────────────────────────────────────────────────────────────────────

func TestForgotPassword_EmailRegistrado_EnviaCodigo(t *testing.T) {
	app, users, mailer := buildAuthApp(t)
	seedUser(t, users, testEmail, "secreta123")

	resp := postJSON(t, app, "/api/auth/forgot-password", fiber.Map{"email": testEmail})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, mailer.sent, 1, "debe enviarse exactamente un correo")
	assert.Regexp(t, codePattern, mailer.sent[0], "el correo debe contener el código de 6 dígitos")
}

func TestForgotPassword_EmailDesconocido_responde200SinEnviar(t *testing.T) {
	app, _, mailer := buildAuthApp(t)

	resp := postJSON(t, app, "/api/auth/forgot-password", fiber.Map{"email": "nadie@tienda.co"})
	defer resp.Body.Close()

	// Misma respuesta que para un email registrado: no revelamos cuáles existen.
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, mailer.sent, "no debe enviarse ningún correo")
}

func TestForgotPassword_SinEmail_Retorna400(t *testing.T) {
	app, _, _ := buildAuthApp(t)

	resp := postJSON(t, app, "/api/auth/forgot-password", fiber.Map{})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestResetPassword_FlujoCompleto(t *testing.T) {
	app, users, mailer := buildAuthApp(t)
	seedUser(t, users, testEmail, "secreta123")

	// 1. Solicitar código
	resp := postJSON(t, app, "/api/auth/forgot-password", fiber.Map{"email": testEmail})
	resp.Body.Close()
	require.Len(t, mailer.sent, 1)
	code := codePattern.FindString(mailer.sent[0])
	require.NotEmpty(t, code)

	// 2. Confirmar con el código recibido
	resp = postJSON(t, app, "/api/auth/reset-password", fiber.Map{
		"email": testEmail, "code": code, "new_password": "nuevaClave99",
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// 3. Login con la contraseña nueva funciona
	resp = postJSON(t, app, "/api/auth/login", fiber.Map{
		"email": testEmail, "password": "nuevaClave99",
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode, "login con la contraseña nueva debe funcionar")

	// 4. El código ya fue consumido: reutilizarlo falla
	resp = postJSON(t, app, "/api/auth/reset-password", fiber.Map{
		"email": testEmail, "code": code, "new_password": "otraClave123",
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "el código es de un solo uso")
}

func TestResetPassword_CodigoIncorrecto_Retorna401(t *testing.T) {
	app, users, mailer := buildAuthApp(t)
	seedUser(t, users, testEmail, "secreta123")

	resp := postJSON(t, app, "/api/auth/forgot-password", fiber.Map{"email": testEmail})
	resp.Body.Close()
	require.Len(t, mailer.sent, 1)

	resp = postJSON(t, app, "/api/auth/reset-password", fiber.Map{
		"email": testEmail, "code": "000000", "new_password": "nuevaClave99",
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestResetPassword_PasswordCorta_Retorna400(t *testing.T) {
	app, users, _ := buildAuthApp(t)
	seedUser(t, users, testEmail, "secreta123")

	resp := postJSON(t, app, "/api/auth/reset-password", fiber.Map{
		"email": testEmail, "code": "123456", "new_password": "corta",
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
