package notification

import (
	"context"
	"time"

	"github.com/jhoicas/packstock-api/internal/application/dto"
	"github.com/jhoicas/packstock-api/pkg/logger"
)

// Checker lo implementa *LowStockNotifier.
type Checker interface {
	CheckAndNotify(ctx context.Context) (*dto.CheckStockResultDTO, error)
}

// DailyScheduler ejecuta el chequeo de stock bajo una vez al día a la hora indicada
// en la zona horaria configurada.
type DailyScheduler struct {
	checker Checker
	hour    int
	loc     *time.Location
	logger  *logger.Logger
	now     func() time.Time

	cancel context.CancelFunc
	done   chan struct{}
}

// NewDailyScheduler crea el scheduler. loc nil usa time.Local.
func NewDailyScheduler(checker Checker, hour int, loc *time.Location, log *logger.Logger) *DailyScheduler {
	if loc == nil {
		loc = time.Local
	}
	return &DailyScheduler{
		checker: checker,
		hour:    hour,
		loc:     loc,
		logger:  log,
		now:     time.Now,
	}
}

// NextRun devuelve la próxima ocurrencia de hour:00 estrictamente posterior a from.
func NextRun(from time.Time, hour int, loc *time.Location) time.Time {
	local := from.In(loc)
	next := time.Date(local.Year(), local.Month(), local.Day(), hour, 0, 0, 0, loc)
	if !next.After(local) {
		next = time.Date(local.Year(), local.Month(), local.Day()+1, hour, 0, 0, 0, loc)
	}
	return next
}

// Start lanza el loop. Llamar una sola vez.
func (s *DailyScheduler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})

	go func() {
		defer close(s.done)
		var last time.Time
		for {
			// Si el reloj de pared va atrasado respecto al timer, no repetir la misma corrida.
			from := s.now()
			if from.Before(last) {
				from = last
			}
			next := NextRun(from, s.hour, s.loc)
			s.logger.Info().Time("next_run", next).Msg("chequeo diario de stock programado")

			timer := time.NewTimer(next.Sub(s.now()))
			select {
			case <-ctx.Done():
				timer.Stop()
				s.logger.Info().Msg("chequeo diario de stock detenido")
				return
			case <-timer.C:
				last = next
				s.run(ctx)
			}
		}
	}()
}

// Stop detiene el loop y espera a que termine el chequeo en curso.
func (s *DailyScheduler) Stop() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done
}

func (s *DailyScheduler) run(ctx context.Context) {
	res, err := s.checker.CheckAndNotify(context.WithoutCancel(ctx))
	if err != nil {
		s.logger.Error().Err(err).Msg("chequeo diario de stock fallido")
		return
	}
	s.logger.Info().Int("checked", res.Checked).Int("low_stock", len(res.LowStock)).Bool("alert_sent", res.AlertSent).Msg("chequeo diario de stock completado")
}
