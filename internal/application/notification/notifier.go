package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/packstock-api/internal/application/dto"
	"github.com/jhoicas/packstock-api/internal/domain"
	"github.com/jhoicas/packstock-api/internal/domain/entity"
	"github.com/jhoicas/packstock-api/internal/domain/repository"
	"github.com/jhoicas/packstock-api/pkg/logger"
)

// Alerter canal por el que sale una alerta de stock bajo (email, broker).
type Alerter interface {
	Name() string
	SendLowStockAlert(ctx context.Context, alert dto.LowStockAlert) error
}

// LowStockNotifier detecta artículos bajo su umbral y avisa una sola vez por artículo
// hasta que alguien limpie el flag low_stock_notified.
type LowStockNotifier struct {
	itemRepo repository.InventoryItemRepository
	alerters []Alerter
	logger   *logger.Logger
	now      func() time.Time
}

// NewLowStockNotifier construye el notificador. Sin alerters los chequeos detectan pero no marcan.
func NewLowStockNotifier(itemRepo repository.InventoryItemRepository, log *logger.Logger, alerters ...Alerter) *LowStockNotifier {
	return &LowStockNotifier{
		itemRepo: itemRepo,
		alerters: alerters,
		logger:   log,
		now:      time.Now,
	}
}

// CheckAndNotify envía una alerta con los artículos pendientes bajo umbral y luego los marca.
// Si el envío falla no se marca nada y el próximo chequeo reintenta. Si falla el marcado
// después de enviar, la alerta puede repetirse (al menos una vez).
func (n *LowStockNotifier) CheckAndNotify(ctx context.Context) (*dto.CheckStockResultDTO, error) {
	items, err := n.itemRepo.ListWithThreshold(ctx, true)
	if err != nil {
		return nil, err
	}

	low := make([]dto.LowStockItemDTO, 0)
	ids := make([]string, 0)
	for _, item := range items {
		if item.IsBelowThreshold() {
			low = append(low, ToLowStockItem(item))
			ids = append(ids, item.ID)
		}
	}
	result := &dto.CheckStockResultDTO{Checked: len(items), LowStock: low}

	if len(low) == 0 {
		n.logger.Debug().Int("checked", len(items)).Msg("sin artículos con stock bajo")
		result.Message = "no hay artículos con stock bajo"
		return result, nil
	}
	if len(n.alerters) == 0 {
		n.logger.Warn().Int("items", len(low)).Msg("stock bajo detectado pero no hay canales de alerta configurados")
		result.Message = "stock bajo detectado; no hay canales de alerta configurados"
		return result, nil
	}

	alert := dto.LowStockAlert{Items: low, DetectedAt: n.now()}
	if err := n.send(ctx, alert); err != nil {
		return nil, err
	}
	result.AlertSent = true

	if err := n.itemRepo.MarkLowStockNotified(ctx, ids); err != nil {
		n.logger.Error().Err(err).Strs("item_ids", ids).Msg("alerta enviada pero no se pudo marcar; puede repetirse")
		return nil, err
	}
	n.logger.Info().Int("items", len(low)).Msg("alerta de stock bajo enviada")
	result.Message = fmt.Sprintf("alerta enviada para %d artículos", len(low))
	return result, nil
}

// send entrega la alerta a todos los canales; falla si alguno falla.
func (n *LowStockNotifier) send(ctx context.Context, alert dto.LowStockAlert) error {
	var errs []error
	for _, a := range n.alerters {
		if err := a.SendLowStockAlert(ctx, alert); err != nil {
			n.logger.Error().Err(err).Str("alerter", a.Name()).Msg("no se pudo enviar la alerta de stock bajo")
			errs = append(errs, fmt.Errorf("%s: %w", a.Name(), err))
		}
	}
	return errors.Join(errs...)
}

// ListLowStock todos los artículos bajo umbral, ya notificados o no.
func (n *LowStockNotifier) ListLowStock(ctx context.Context) ([]dto.LowStockItemDTO, error) {
	items, err := n.itemRepo.ListWithThreshold(ctx, false)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LowStockItemDTO, 0)
	for _, item := range items {
		if item.IsBelowThreshold() {
			out = append(out, ToLowStockItem(item))
		}
	}
	return out, nil
}

// ResetNotification limpia low_stock_notified para que el artículo vuelva a alertar.
func (n *LowStockNotifier) ResetNotification(ctx context.Context, id string) error {
	ok, err := n.itemRepo.ResetLowStockNotified(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrItemNotFound
	}
	return nil
}

// ToLowStockItem mapea un artículo con umbral al DTO de alerta.
func ToLowStockItem(item *entity.InventoryItem) dto.LowStockItemDTO {
	out := dto.LowStockItemDTO{
		ID:               item.ID,
		Name:             item.Name,
		PackSize:         item.PackSize,
		PacksInStock:     item.PacksInStock,
		PiecesInStock:    item.PiecesInStock,
		TotalStock:       item.TotalStockInPacks(),
		LowStockNotified: item.LowStockNotified,
	}
	if item.LowStockThreshold != nil {
		out.LowStockThreshold = *item.LowStockThreshold
	}
	return out
}
