package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/jhoicas/packstock-api/internal/application/dto"
	"github.com/jhoicas/packstock-api/internal/application/notification"
	"github.com/jhoicas/packstock-api/pkg/logger"
)

// LowStockRoutingKey routing key de los eventos de stock bajo.
const LowStockRoutingKey = "inventory.low_stock"

var _ notification.Alerter = (*RabbitAlerter)(nil)

// Event sobre estándar de los mensajes publicados.
type Event struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	Source     string    `json:"source"`
	OccurredAt time.Time `json:"occurred_at"`
	Data       any       `json:"data"`
}

// channel subconjunto de *amqp.Channel que usa el alerter.
type channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithDeferredConfirmWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) (*amqp.DeferredConfirmation, error)
	Close() error
}

// RabbitAlerter publica cada alerta de stock bajo como evento persistente en un exchange topic.
// El canal está en modo confirm: la alerta cuenta como enviada solo cuando el broker la confirma.
type RabbitAlerter struct {
	conn     *amqp.Connection
	ch       channel
	exchange string
	source   string
	logger   *logger.Logger
	mu       sync.Mutex
}

// Dial conecta al broker, declara el exchange y activa confirmaciones.
func Dial(url, exchange, source string, log *logger.Logger) (*RabbitAlerter, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("conectar a RabbitMQ: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("abrir canal: %w", err)
	}
	if err := ch.Confirm(false); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("activar confirmaciones: %w", err)
	}
	a, err := newRabbitAlerter(ch, exchange, source, log)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	a.conn = conn
	log.Info().Str("exchange", exchange).Msg("conectado a RabbitMQ")
	return a, nil
}

func newRabbitAlerter(ch channel, exchange, source string, log *logger.Logger) (*RabbitAlerter, error) {
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("declarar exchange %s: %w", exchange, err)
	}
	return &RabbitAlerter{ch: ch, exchange: exchange, source: source, logger: log}, nil
}

// Name nombre del canal para logs.
func (a *RabbitAlerter) Name() string { return "rabbitmq" }

// SendLowStockAlert publica la alerta y espera la confirmación del broker.
func (a *RabbitAlerter) SendLowStockAlert(ctx context.Context, alert dto.LowStockAlert) error {
	event := Event{
		ID:         uuid.New().String(),
		Type:       LowStockRoutingKey,
		Source:     a.source,
		OccurredAt: alert.DetectedAt,
		Data:       alert,
	}
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("serializar evento: %w", err)
	}

	// amqp.Channel no admite publicaciones concurrentes con confirmaciones ordenadas.
	a.mu.Lock()
	defer a.mu.Unlock()

	confirm, err := a.ch.PublishWithDeferredConfirmWithContext(ctx,
		a.exchange,
		LowStockRoutingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    event.ID,
			Timestamp:    event.OccurredAt,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publicar evento: %w", err)
	}
	if confirm != nil {
		ok, err := confirm.WaitContext(ctx)
		if err != nil {
			return fmt.Errorf("esperar confirmación: %w", err)
		}
		if !ok {
			return errors.New("el broker rechazó el evento (nack)")
		}
	}

	a.logger.Debug().Str("event_id", event.ID).Int("items", len(alert.Items)).Msg("evento de stock bajo publicado")
	return nil
}

// Close cierra canal y conexión.
func (a *RabbitAlerter) Close() error {
	var errs []error
	if a.ch != nil {
		errs = append(errs, a.ch.Close())
	}
	if a.conn != nil {
		errs = append(errs, a.conn.Close())
	}
	return errors.Join(errs...)
}
