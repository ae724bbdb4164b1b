package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
)

const (
	sessionPurgeInterval = 10 * time.Minute
	joinPurgeInterval    = time.Minute
)

type SessionPurger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

type JoinPurger interface {
	PurgeIdle(ttl time.Duration) int
}

type maintenance struct {
	sessions SessionPurger
	joins    JoinPurger
	idle     time.Duration
	logger   *slog.Logger
}

// StartMaintenance запускает фоновые задачи: удаление истекших сессий входа
// и брошенных форм регистрации старше idle.
func StartMaintenance(sessions SessionPurger, joins JoinPurger, idle time.Duration, logger *slog.Logger) (gocron.Scheduler, error) {
	m := &maintenance{sessions: sessions, joins: joins, idle: idle, logger: logger}

	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}

	if _, err := sched.NewJob(
		gocron.DurationJob(sessionPurgeInterval),
		gocron.NewTask(m.purgeSessions),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	); err != nil {
		return nil, fmt.Errorf("schedule session purge: %w", err)
	}

	if _, err := sched.NewJob(
		gocron.DurationJob(joinPurgeInterval),
		gocron.NewTask(m.purgeJoins),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	); err != nil {
		return nil, fmt.Errorf("schedule join purge: %w", err)
	}

	sched.Start()
	logger.Info("maintenance scheduler started",
		slog.Duration("session_purge_interval", sessionPurgeInterval),
		slog.Duration("join_purge_interval", joinPurgeInterval))
	return sched, nil
}

func (m *maintenance) purgeSessions() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	n, err := m.sessions.PurgeExpired(ctx)
	if err != nil {
		m.logger.Error("Scheduler: session purge failed", slog.Any("error", err))
		return
	}
	if n > 0 {
		m.logger.Info("Scheduler: expired sessions removed", slog.Int64("count", n))
	}
}

func (m *maintenance) purgeJoins() {
	if n := m.joins.PurgeIdle(m.idle); n > 0 {
		m.logger.Info("Scheduler: idle join sessions dropped", slog.Int("count", n))
	}
}
