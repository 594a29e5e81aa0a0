package inventory

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jhoicas/packstock-api/internal/application/dto"
	"github.com/jhoicas/packstock-api/internal/domain"
	"github.com/jhoicas/packstock-api/pkg/logger"
)

// DefaultReplenishInterval intervalo por defecto entre pasadas de reposición.
const DefaultReplenishInterval = 5 * time.Minute

// Replenisher lo implementa *ReplenishUseCase.
type Replenisher interface {
	Run(ctx context.Context) ([]dto.ReplenishResultDTO, error)
}

// ReplenishScheduler ejecuta la reposición automática al arrancar y luego en cada tick.
// Nunca hay dos pasadas a la vez: un tick que llega con una pasada en curso se omite.
// Stop cancela solo el timer; una pasada en curso termina (Commit o Rollback) y Wait la espera.
// Cada pasada toma su lugar en runs antes del guard, bajo mu: después de Wait no arranca ninguna.
type ReplenishScheduler struct {
	uc       Replenisher
	interval time.Duration
	logger   *logger.Logger

	inFlight atomic.Bool
	mu       sync.Mutex
	closed   bool
	runs     sync.WaitGroup
	cancel   context.CancelFunc
	done     chan struct{}
}

// NewReplenishScheduler crea el scheduler. interval <= 0 usa DefaultReplenishInterval.
func NewReplenishScheduler(uc Replenisher, interval time.Duration, log *logger.Logger) *ReplenishScheduler {
	if interval <= 0 {
		interval = DefaultReplenishInterval
	}
	return &ReplenishScheduler{
		uc:       uc,
		interval: interval,
		logger:   log,
	}
}

// Start lanza el loop en background. Llamar una sola vez.
func (s *ReplenishScheduler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})

	go func() {
		defer close(s.done)
		s.logger.Info().Dur("interval", s.interval).Msg("reposición automática iniciada")

		s.dispatch(ctx)

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				s.logger.Info().Msg("reposición automática detenida")
				return
			case <-ticker.C:
				s.dispatch(ctx)
			}
		}
	}()
}

// Stop detiene el timer. No cancela una pasada en curso.
func (s *ReplenishScheduler) Stop() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done
}

// Wait cierra el scheduler a pasadas nuevas y bloquea hasta que termine la que esté en curso.
// Se puede llamar mientras siguen llegando TriggerNow: esas devuelven domain.ErrReplenishStopped.
func (s *ReplenishScheduler) Wait() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.runs.Wait()
}

// TriggerNow ejecuta una pasada síncrona respetando el guard de concurrencia.
// Devuelve domain.ErrReplenishInProgress si ya hay una en curso y
// domain.ErrReplenishStopped si el scheduler ya se cerró con Wait.
func (s *ReplenishScheduler) TriggerNow(ctx context.Context) ([]dto.ReplenishResultDTO, error) {
	if !s.acquire() {
		return nil, domain.ErrReplenishStopped
	}
	defer s.runs.Done()
	return s.runGuarded(ctx)
}

// acquire reserva un lugar en runs; false si Wait ya cerró el scheduler.
func (s *ReplenishScheduler) acquire() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.runs.Add(1)
	return true
}

// dispatch lanza la pasada en su propia goroutine para que el loop siga atendiendo Stop.
// La pasada usa un contexto desligado de la cancelación del scheduler.
func (s *ReplenishScheduler) dispatch(ctx context.Context) {
	if s.inFlight.Load() {
		s.logger.Warn().Msg("reposición automática: pasada anterior en curso, se omite este tick")
		return
	}
	if !s.acquire() {
		return
	}
	runCtx := context.WithoutCancel(ctx)
	go func() {
		defer s.runs.Done()
		_, _ = s.runGuarded(runCtx)
	}()
}

func (s *ReplenishScheduler) runGuarded(ctx context.Context) ([]dto.ReplenishResultDTO, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		s.logger.Warn().Msg("reposición automática: pasada anterior en curso, se omite")
		return nil, domain.ErrReplenishInProgress
	}
	defer s.inFlight.Store(false)

	start := time.Now()
	results, err := s.uc.Run(ctx)
	if err != nil {
		// Se reintenta en el próximo tick; no se propaga al proceso.
		s.logger.Error().Err(err).Msg("reposición automática fallida")
		return nil, err
	}

	for _, r := range results {
		s.logger.Info().
			Str("item_id", r.ItemID).
			Str("item", r.ItemName).
			Int("packs_used", r.PacksUsed).
			Int("pieces_added", r.PiecesAdded).
			Int("packs_in_stock", r.NewPacksStock).
			Int("pieces_in_stock", r.NewPiecesStock).
			Msg("artículo repuesto")
	}
	if len(results) > 0 {
		s.logger.Info().Int("items", len(results)).Dur("duration", time.Since(start)).Msg("reposición automática completada")
	} else {
		s.logger.Debug().Msg("niveles de stock correctos, no se requiere reposición")
	}
	return results, nil
}
