package inventory

import (
	"sync"

	"github.com/jhoicas/stocktrack-api/internal/domain/entity"
)

// Tipos de evento publicados por el motor de inventario.
const (
	EventProductRegistered = "product_registered"
	EventStockAdded        = "stock_added"
	EventStockRemoved      = "stock_removed"
)

// ProductEvent notifica un cambio confirmado sobre un producto.
// Product es una copia del estado posterior al commit; Movement es nil
// para eventos que no provienen de un movimiento.
type ProductEvent struct {
	Type     string
	Product  entity.Product
	Movement *entity.StockMovement
}

// ProductEvents es el canal de notificaciones del motor de inventario
// (publish/subscribe con ciclo de vida explícito). Los suscriptores reciben
// eventos solo después del commit de la transacción que los originó.
type ProductEvents struct {
	mu     sync.Mutex
	subs   map[uint64]chan ProductEvent
	nextID uint64
	closed bool
}

// NewProductEvents construye el canal de notificaciones.
func NewProductEvents() *ProductEvents {
	return &ProductEvents{subs: make(map[uint64]chan ProductEvent)}
}

// Subscribe registra un suscriptor y devuelve su canal junto con la función
// para cancelar la suscripción. buffer controla el tamaño del canal.
func (e *ProductEvents) Subscribe(buffer int) (<-chan ProductEvent, func()) {
	if buffer <= 0 {
		buffer = 1
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	id := e.nextID
	e.nextID++
	ch := make(chan ProductEvent, buffer)
	if e.closed {
		close(ch)
		return ch, func() {}
	}
	e.subs[id] = ch

	unsubscribe := func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		if sub, ok := e.subs[id]; ok {
			delete(e.subs, id)
			close(sub)
		}
	}
	return ch, unsubscribe
}

// Publish entrega el evento a todos los suscriptores sin bloquear:
// si el buffer de un suscriptor está lleno, ese suscriptor pierde el evento.
func (e *ProductEvents) Publish(ev ProductEvent) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	for _, ch := range e.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

// Close cierra todos los canales y rechaza publicaciones posteriores.
func (e *ProductEvents) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.closed = true
	for id, ch := range e.subs {
		delete(e.subs, id)
		close(ch)
	}
}
