package jobs

import (
	"context"
	"fmt"
	"strings"

	"github.com/hibiken/asynq"

	"github.com/jhoicas/stocktrack-api/internal/application/auth"
	"github.com/jhoicas/stocktrack-api/internal/domain/entity"
	"github.com/jhoicas/stocktrack-api/internal/domain/repository"
	"github.com/jhoicas/stocktrack-api/pkg/logger"
)

// LowStockDigestHandler arma y envía el resumen diario de productos en
// LOW_STOCK u OUT_OF_STOCK, un correo por usuario con productos en alerta.
type LowStockDigestHandler struct {
	productRepo repository.ProductRepository
	mailer      auth.Mailer
	log         *logger.Logger
}

// NewLowStockDigestHandler construye el handler.
func NewLowStockDigestHandler(productRepo repository.ProductRepository, mailer auth.Mailer, log *logger.Logger) *LowStockDigestHandler {
	return &LowStockDigestHandler{productRepo: productRepo, mailer: mailer, log: log}
}

// Handle procesa TaskLowStockDigest. Un fallo de envío a un usuario no detiene
// el resto; se reporta al final para que asynq reintente.
func (h *LowStockDigestHandler) Handle(ctx context.Context, _ *asynq.Task) error {
	items, err := h.productRepo.ListLowStock()
	if err != nil {
		return fmt.Errorf("listar productos en alerta: %w", err)
	}
	if len(items) == 0 {
		h.log.Debug().Msg("resumen de stock bajo: sin productos en alerta")
		return nil
	}

	byUser := groupByEmail(items)
	var failed int
	for email, list := range byUser {
		body := digestBody(list)
		if err := h.mailer.Send(ctx, email, "Resumen diario: productos con stock bajo", body); err != nil {
			failed++
			h.log.Error().Err(err).Str("email", email).Msg("no se pudo enviar el resumen de stock bajo")
			continue
		}
		h.log.Info().Str("email", email).Int("productos", len(list)).Msg("resumen de stock bajo enviado")
	}
	if failed > 0 {
		return fmt.Errorf("resumen de stock bajo: %d envíos fallidos de %d", failed, len(byUser))
	}
	return nil
}

func groupByEmail(items []*entity.LowStockItem) map[string][]*entity.LowStockItem {
	byUser := make(map[string][]*entity.LowStockItem)
	for _, it := range items {
		byUser[it.UserEmail] = append(byUser[it.UserEmail], it)
	}
	return byUser
}

// digestBody arma el cuerpo del correo: una línea por producto en alerta.
func digestBody(items []*entity.LowStockItem) string {
	var b strings.Builder
	b.WriteString("Estos productos necesitan reposición:\n\n")
	for _, it := range items {
		if it.Quantity <= 0 {
			fmt.Fprintf(&b, "  - %s: AGOTADO (mínimo %d)\n", it.ProductName, it.MinStock)
			continue
		}
		fmt.Fprintf(&b, "  - %s: quedan %d unidades (mínimo %d)\n", it.ProductName, it.Quantity, it.MinStock)
	}
	b.WriteString("\nRevisa el inventario para registrar las entradas que correspondan.")
	return b.String()
}
