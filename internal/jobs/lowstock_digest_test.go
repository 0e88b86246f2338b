package jobs

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stocktrack-api/internal/domain/entity"
	"github.com/jhoicas/stocktrack-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Stubs
// ──────────────────────────────────────────────────────────────────────────────

type stubProductRepo struct {
	lowStock []*entity.LowStockItem
}

func (s *stubProductRepo) Create(*entity.Product) error                 { return nil }
func (s *stubProductRepo) GetByID(string) (*entity.Product, error)      { return nil, nil }
func (s *stubProductRepo) GetForUpdate(string) (*entity.Product, error) { return nil, nil }
func (s *stubProductRepo) GetByUserAndName(string, string) (*entity.Product, error) {
	return nil, nil
}
func (s *stubProductRepo) GetByUserAndBarcode(string, string) (*entity.Product, error) {
	return nil, nil
}
func (s *stubProductRepo) Update(*entity.Product) error { return nil }
func (s *stubProductRepo) UpdateStockAndCost(string, int64, decimal.Decimal, decimal.Decimal) error {
	return nil
}
func (s *stubProductRepo) UpdateQuantity(string, int64) error { return nil }
func (s *stubProductRepo) ListByUser(string, int, int) ([]*entity.Product, error) {
	return nil, nil
}
func (s *stubProductRepo) CountByUserAndCategory(string, string) (int64, error) { return 0, nil }
func (s *stubProductRepo) ListLowStock() ([]*entity.LowStockItem, error) {
	return s.lowStock, nil
}
func (s *stubProductRepo) Delete(string) error { return nil }

type sentMail struct {
	to, subject, body string
}

type recordingMailer struct {
	sent []sentMail
}

func (m *recordingMailer) Send(_ context.Context, to, subject, body string) error {
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

func testLog() *logger.Logger {
	return logger.New(logger.Config{Env: "test", Level: "error"})
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestLowStockDigest_AgrupaPorUsuario(t *testing.T) {
	repo := &stubProductRepo{lowStock: []*entity.LowStockItem{
		{UserEmail: "ana@tienda.co", ProductID: "p1", ProductName: "Café molido", Quantity: 2, MinStock: 10},
		{UserEmail: "ana@tienda.co", ProductID: "p2", ProductName: "Azúcar", Quantity: 0, MinStock: 5},
		{UserEmail: "luis@tienda.co", ProductID: "p3", ProductName: "Harina", Quantity: 1, MinStock: 3},
	}}
	mailer := &recordingMailer{}
	h := NewLowStockDigestHandler(repo, mailer, testLog())

	require.NoError(t, h.Handle(context.Background(), NewLowStockDigestTask()))

	require.Len(t, mailer.sent, 2, "un correo por usuario con alertas")

	byTo := map[string]sentMail{}
	for _, m := range mailer.sent {
		byTo[m.to] = m
	}
	ana, ok := byTo["ana@tienda.co"]
	require.True(t, ok)
	assert.Contains(t, ana.body, "Café molido")
	assert.Contains(t, ana.body, "quedan 2 unidades")
	assert.Contains(t, ana.body, "Azúcar")
	assert.Contains(t, ana.body, "AGOTADO", "producto con cantidad 0 debe aparecer como agotado")

	luis, ok := byTo["luis@tienda.co"]
	require.True(t, ok)
	assert.Contains(t, luis.body, "Harina")
	assert.NotContains(t, luis.body, "Café molido", "cada usuario solo ve sus productos")
}

func TestLowStockDigest_SinAlertas_NoEnviaNada(t *testing.T) {
	repo := &stubProductRepo{}
	mailer := &recordingMailer{}
	h := NewLowStockDigestHandler(repo, mailer, testLog())

	require.NoError(t, h.Handle(context.Background(), NewLowStockDigestTask()))
	assert.Empty(t, mailer.sent)
}
