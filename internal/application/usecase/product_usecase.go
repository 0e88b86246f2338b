package usecase

import (
	"time"

	"github.com/jhoicas/stocktrack-api/internal/application/dto"
	"github.com/jhoicas/stocktrack-api/internal/domain"
	"github.com/jhoicas/stocktrack-api/internal/domain/entity"
	domaininv "github.com/jhoicas/stocktrack-api/internal/domain/inventory"
	"github.com/jhoicas/stocktrack-api/internal/domain/repository"
)

// ProductUseCase casos de uso de lectura y edición de productos.
// Quantity y Cost no se tocan aquí: solo el ledger los modifica.
type ProductUseCase struct {
	repo    repository.ProductRepository
	movRepo repository.StockMovementRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, movRepo repository.StockMovementRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, movRepo: movRepo}
}

// GetByID obtiene un producto del usuario por ID.
func (uc *ProductUseCase) GetByID(userID, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil || product.UserID != userID {
		return nil, nil
	}
	return ToProductResponse(product), nil
}

// GetByBarcode busca un producto por código de barras (flujo de escaneo).
func (uc *ProductUseCase) GetByBarcode(userID, barcode string) (*dto.ProductResponse, error) {
	if barcode == "" {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.repo.GetByUserAndBarcode(userID, barcode)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return ToProductResponse(product), nil
}

// List lista los productos del usuario con paginación.
func (uc *ProductUseCase) List(userID string, limit, offset int) (*dto.ProductListResponse, error) {
	list, err := uc.repo.ListByUser(userID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *ToProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Update actualiza campos editables (nombre, categoría, barcode, imagen, min_stock).
// No permite modificar Quantity ni Cost (se manejan vía movimientos).
func (uc *ProductUseCase) Update(userID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil || product.UserID != userID {
		return nil, nil
	}
	if in.Name != nil && *in.Name != product.Name {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		existing, err := uc.repo.GetByUserAndName(userID, *in.Name)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != product.ID {
			return nil, domain.ErrDuplicate
		}
		product.Name = *in.Name
	}
	if in.Category != nil {
		product.Category = *in.Category
	}
	if in.Barcode != nil {
		product.Barcode = *in.Barcode
	}
	if in.Image != nil {
		product.Image = *in.Image
	}
	if in.MinStock != nil {
		if *in.MinStock < 0 {
			return nil, domain.ErrInvalidInput
		}
		product.MinStock = *in.MinStock
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// Delete elimina un producto. Si tiene movimientos registrados la eliminación
// se bloquea (ErrConflict): el historial es una pista de auditoría, igual que
// la guarda de categorías.
func (uc *ProductUseCase) Delete(userID, id string) error {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil || product.UserID != userID {
		return domain.ErrNotFound
	}
	count, err := uc.movRepo.CountByProduct(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrConflict
	}
	return uc.repo.Delete(id)
}

// ListAlerts devuelve los productos en LOW_STOCK u OUT_OF_STOCK.
// La clasificación se calcula al leer, nunca se persiste.
func (uc *ProductUseCase) ListAlerts(userID string) ([]dto.StockAlertResponse, error) {
	list, err := uc.repo.ListByUser(userID, 1000, 0)
	if err != nil {
		return nil, err
	}
	alerts := make([]dto.StockAlertResponse, 0)
	for _, p := range list {
		level := domaininv.ClassifyStockLevel(p.Quantity, p.MinStock)
		if level == domaininv.StockLevelOK {
			continue
		}
		alerts = append(alerts, dto.StockAlertResponse{
			ProductID:  p.ID,
			Name:       p.Name,
			Category:   p.Category,
			Quantity:   p.Quantity,
			MinStock:   p.MinStock,
			StockLevel: string(level),
		})
	}
	return alerts, nil
}

// ToProductResponse mapea la entidad al DTO, calculando el nivel de stock.
func ToProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:         p.ID,
		UserID:     p.UserID,
		Name:       p.Name,
		Category:   p.Category,
		Quantity:   p.Quantity,
		Cost:       p.Cost,
		UnitPrice:  p.UnitPrice,
		MinStock:   p.MinStock,
		Image:      p.Image,
		Barcode:    p.Barcode,
		StockLevel: string(domaininv.ClassifyStockLevel(p.Quantity, p.MinStock)),
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}
