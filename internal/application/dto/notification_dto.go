package dto

import "time"

// LowStockAlert lote de artículos bajo umbral que se envía a los canales de alerta.
type LowStockAlert struct {
	Items      []LowStockItemDTO `json:"items"`
	DetectedAt time.Time         `json:"detected_at"`
}

// CheckStockResultDTO resultado de un chequeo de stock bajo.
type CheckStockResultDTO struct {
	Checked   int               `json:"checked"`    // artículos pendientes evaluados
	LowStock  []LowStockItemDTO `json:"low_stock"`  // nuevos artículos bajo umbral
	AlertSent bool              `json:"alert_sent"` // al menos un canal aceptó la alerta
	Message   string            `json:"message"`
}

// LowStockListResponse artículos bajo umbral, notificados o no.
type LowStockListResponse struct {
	Items []LowStockItemDTO `json:"items"`
}
