package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"

	"github.com/vfg2006/superstore-dashboard/infrastructure/repository"
	"github.com/vfg2006/superstore-dashboard/internal/config"
	"github.com/vfg2006/superstore-dashboard/pkg/metrics"
)

// SessionSweepConfig representa a configuração do agendador de limpeza de sessões
type SessionSweepConfig struct {
	CronSchedule string
	IdleTimeout  time.Duration
	SweepEnabled bool
}

// SessionSweepService remove periodicamente as sessões sem atividade. Uploads ficam
// na memória da sessão, então sessões abandonadas precisam ser descartadas.
type SessionSweepService struct {
	scheduler      *gocron.Scheduler
	config         SessionSweepConfig
	sessions       repository.SessionRepository
	collectors     *metrics.Collectors
	now            func() time.Time
	sweepRunning   bool
	sweepMutex     sync.Mutex
	lastSweepAt    time.Time
	lastSweepCount int
}

func NewSessionSweepService(
	sessions repository.SessionRepository,
	collectors *metrics.Collectors,
	appConfig *config.Config,
) *SessionSweepService {
	sweepConfig := SessionSweepConfig{
		CronSchedule: appConfig.SessionSweep.CronSchedule,
		IdleTimeout:  appConfig.SessionSweep.IdleTimeout,
		SweepEnabled: appConfig.SessionSweep.Enabled,
	}
	if sweepConfig.IdleTimeout <= 0 {
		sweepConfig.IdleTimeout = 2 * time.Hour
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": sweepConfig.CronSchedule,
		"idle_timeout":  sweepConfig.IdleTimeout.String(),
		"sweep_enabled": sweepConfig.SweepEnabled,
	}).Info("Configuração do agendador de limpeza de sessões carregada")

	return &SessionSweepService{
		scheduler:  gocron.NewScheduler(time.Local),
		config:     sweepConfig,
		sessions:   sessions,
		collectors: collectors,
		now:        time.Now,
	}
}

// Start inicia o agendador
func (s *SessionSweepService) Start(ctx context.Context) error {
	if !s.config.SweepEnabled {
		logrus.Info("Limpeza de sessões desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de limpeza de sessões")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.sweep(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar limpeza de sessões: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de limpeza de sessões")
		s.scheduler.Stop()
	}()

	return nil
}

// sweep remove as sessões ociosas e devolve quantas foram removidas
func (s *SessionSweepService) sweep(ctx context.Context) int {
	s.sweepMutex.Lock()
	if s.sweepRunning {
		s.sweepMutex.Unlock()
		logrus.Info("Limpeza de sessões já em andamento, ignorando")
		return 0
	}
	s.sweepRunning = true
	s.sweepMutex.Unlock()

	defer func() {
		s.sweepMutex.Lock()
		s.sweepRunning = false
		s.sweepMutex.Unlock()
	}()

	now := s.now()
	cutoff := now.Add(-s.config.IdleTimeout)

	removed, err := s.sessions.DeleteIdleSince(ctx, cutoff)
	if err != nil {
		logrus.WithError(err).Error("Erro ao remover sessões ociosas")
		return 0
	}
	s.collectors.SessionsSwept(removed)

	remaining, err := s.sessions.Count(ctx)
	if err != nil {
		logrus.WithError(err).Warn("Erro ao contar sessões ativas")
	} else {
		s.collectors.SetActiveSessions(remaining)
	}

	s.sweepMutex.Lock()
	s.lastSweepAt = now
	s.lastSweepCount = removed
	s.sweepMutex.Unlock()

	logrus.WithFields(logrus.Fields{
		"removed":   removed,
		"remaining": remaining,
		"cutoff":    cutoff.Format(time.RFC3339),
	}).Info("Limpeza de sessões concluída")

	return removed
}

// TriggerManualSweep executa a limpeza imediatamente, fora do agendamento
func (s *SessionSweepService) TriggerManualSweep(ctx context.Context) int {
	logrus.Info("Iniciando limpeza manual de sessões")
	return s.sweep(ctx)
}

// GetStatus retorna o status atual do agendador
func (s *SessionSweepService) GetStatus() map[string]any {
	s.sweepMutex.Lock()
	defer s.sweepMutex.Unlock()

	return map[string]any{
		"sweep_enabled":    s.config.SweepEnabled,
		"sweep_cron":       s.config.CronSchedule,
		"idle_timeout":     s.config.IdleTimeout.String(),
		"sweep_running":    s.sweepRunning,
		"last_sweep_at":    s.lastSweepAt,
		"last_sweep_count": s.lastSweepCount,
	}
}
