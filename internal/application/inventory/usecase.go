package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stocktrack-api/internal/domain"
	"github.com/jhoicas/stocktrack-api/internal/domain/entity"
	domaininv "github.com/jhoicas/stocktrack-api/internal/domain/inventory"
	"github.com/jhoicas/stocktrack-api/internal/domain/repository"
)

// LedgerUseCase es la única autoridad sobre cantidad y costo promedio de los
// productos: registra movimientos (add/remove) de forma transaccional con
// bloqueo de fila (SELECT FOR UPDATE) y Commit/Rollback, y publica eventos
// de cambio tras el commit.
type LedgerUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	events      *ProductEvents
}

// NewLedgerUseCase construye el caso de uso. El canal de eventos es propiedad
// del servicio; los interesados se suscriben vía Events().
func NewLedgerUseCase(txRunner TxRunner, productRepo repository.ProductRepository) *LedgerUseCase {
	return &LedgerUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		events:      NewProductEvents(),
	}
}

// Events devuelve el canal de notificaciones de cambios de producto.
func (uc *LedgerUseCase) Events() *ProductEvents {
	return uc.events
}

// AddMovementInput entrada para registrar una entrada de stock.
type AddMovementInput struct {
	UserID    string
	ProductID string
	Quantity  int64
	UnitCost  decimal.Decimal
	Date      time.Time
}

// RemoveMovementInput entrada para registrar una salida de stock.
type RemoveMovementInput struct {
	UserID    string
	ProductID string
	Quantity  int64
	Date      time.Time
}

// RegisterProductInput entrada para registrar un producto nuevo.
// Si InitialQuantity > 0 se delega en RegisterAddMovement con fecha de hoy,
// de modo que nunca existe stock inicial sin movimiento de auditoría.
type RegisterProductInput struct {
	UserID          string
	Name            string
	Category        string
	Barcode         string
	Image           string
	MinStock        int64
	InitialQuantity int64
	InitialUnitCost decimal.Decimal
}

// RegisterAddMovement registra una entrada: recalcula el costo promedio ponderado,
// suma la cantidad y persiste el movimiento inmutable, todo en una transacción.
// Devuelve el producto actualizado y el movimiento creado.
func (uc *LedgerUseCase) RegisterAddMovement(ctx context.Context, in AddMovementInput) (*entity.Product, *entity.StockMovement, error) {
	if in.ProductID == "" || in.Quantity <= 0 || in.Date.IsZero() {
		return nil, nil, domain.ErrInvalidInput
	}
	if in.UnitCost.IsNegative() {
		return nil, nil, domain.ErrInvalidInput
	}

	var (
		updated  *entity.Product
		movement *entity.StockMovement
	)
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		// Bloquea la fila del producto para cerrar la carrera read-then-write
		product, err := productRepo.GetForUpdate(in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if in.UserID != "" && product.UserID != in.UserID {
			return domain.ErrForbidden
		}
		if product.Quantity < 0 {
			// No puede ocurrir si todo pasó por el ledger; fallar antes de corromper más
			return fmt.Errorf("producto %s con cantidad negativa %d: estado inconsistente", product.ID, product.Quantity)
		}

		newQty := product.Quantity + in.Quantity
		newCost := domaininv.WeightedAverageCost(product.Quantity, product.Cost, in.Quantity, in.UnitCost)

		if err := productRepo.UpdateStockAndCost(product.ID, newQty, newCost, in.UnitCost); err != nil {
			return err
		}

		now := time.Now()
		mov := &entity.StockMovement{
			ID:          uuid.New().String(),
			ProductID:   product.ID,
			ProductName: product.Name,
			Type:        entity.MovementTypeAdd,
			Quantity:    in.Quantity,
			UnitCost:    in.UnitCost,
			TotalCost:   in.UnitCost.Mul(decimal.NewFromInt(in.Quantity)),
			Date:        in.Date,
			CreatedAt:   now,
			CreatedBy:   in.UserID,
		}
		if err := movRepo.Create(mov); err != nil {
			return err
		}

		product.Quantity = newQty
		product.Cost = newCost
		product.UnitPrice = in.UnitCost
		product.UpdatedAt = now
		updated = product
		movement = mov
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	uc.events.Publish(ProductEvent{Type: EventStockAdded, Product: *updated, Movement: movement})
	return updated, movement, nil
}

// RegisterRemoveMovement registra una salida: valida que haya stock suficiente,
// resta la cantidad y persiste el movimiento. El costo promedio no cambia
// (las unidades restantes conservan su base de costo).
func (uc *LedgerUseCase) RegisterRemoveMovement(ctx context.Context, in RemoveMovementInput) (*entity.Product, *entity.StockMovement, error) {
	if in.ProductID == "" || in.Quantity <= 0 || in.Date.IsZero() {
		return nil, nil, domain.ErrInvalidInput
	}

	var (
		updated  *entity.Product
		movement *entity.StockMovement
	)
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		product, err := productRepo.GetForUpdate(in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if in.UserID != "" && product.UserID != in.UserID {
			return domain.ErrForbidden
		}
		if in.Quantity > product.Quantity {
			return fmt.Errorf("%w: máximo removible %d", domain.ErrInsufficientStock, product.Quantity)
		}

		newQty := product.Quantity - in.Quantity
		if err := productRepo.UpdateQuantity(product.ID, newQty); err != nil {
			return err
		}

		now := time.Now()
		// UnitCost/TotalCost son instantáneas informativas del costo promedio actual
		mov := &entity.StockMovement{
			ID:          uuid.New().String(),
			ProductID:   product.ID,
			ProductName: product.Name,
			Type:        entity.MovementTypeRemove,
			Quantity:    in.Quantity,
			UnitCost:    product.Cost,
			TotalCost:   product.Cost.Mul(decimal.NewFromInt(in.Quantity)),
			Date:        in.Date,
			CreatedAt:   now,
			CreatedBy:   in.UserID,
		}
		if err := movRepo.Create(mov); err != nil {
			return err
		}

		product.Quantity = newQty
		product.UpdatedAt = now
		updated = product
		movement = mov
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	uc.events.Publish(ProductEvent{Type: EventStockRemoved, Product: *updated, Movement: movement})
	return updated, movement, nil
}

// RegisterProduct crea un producto con cantidad 0 y costo inicial; el nombre es
// único por usuario sin distinguir mayúsculas. Si InitialQuantity > 0 registra
// inmediatamente la entrada inicial fechada hoy.
func (uc *LedgerUseCase) RegisterProduct(ctx context.Context, in RegisterProductInput) (*entity.Product, error) {
	if in.Name == "" || in.InitialQuantity < 0 || in.MinStock < 0 || in.InitialUnitCost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	existing, err := uc.productRepo.GetByUserAndName(in.UserID, in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	product := &entity.Product{
		ID:        uuid.New().String(),
		UserID:    in.UserID,
		Name:      in.Name,
		Category:  in.Category,
		Quantity:  0,
		Cost:      in.InitialUnitCost,
		UnitPrice: in.InitialUnitCost,
		MinStock:  in.MinStock,
		Image:     in.Image,
		Barcode:   in.Barcode,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.productRepo.Create(product); err != nil {
		return nil, err
	}

	if in.InitialQuantity > 0 {
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		updated, _, err := uc.RegisterAddMovement(ctx, AddMovementInput{
			UserID:    in.UserID,
			ProductID: product.ID,
			Quantity:  in.InitialQuantity,
			UnitCost:  in.InitialUnitCost,
			Date:      today,
		})
		if err != nil {
			return nil, err
		}
		product = updated
	}

	uc.events.Publish(ProductEvent{Type: EventProductRegistered, Product: *product})
	return product, nil
}
