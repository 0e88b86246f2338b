package jobs

import (
	"github.com/hibiken/asynq"
)

const (
	// QueueDefault cola por defecto para trabajos en segundo plano.
	QueueDefault = "default"
	// TaskLowStockDigest tarea que envía el resumen diario de productos en alerta.
	TaskLowStockDigest = "inventory:low_stock_digest"
	// CronLowStockDigest todos los días a las 07:00 UTC.
	CronLowStockDigest = "0 7 * * *"
)

// NewLowStockDigestTask construye la tarea del resumen de stock bajo.
// No lleva payload: el handler consulta el estado actual al ejecutarse.
func NewLowStockDigestTask() *asynq.Task {
	return asynq.NewTask(TaskLowStockDigest, nil)
}
