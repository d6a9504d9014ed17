// Package services содержит планировщик, который раз в сутки ищет бюджеты
// с перерасходом и публикует уведомления в очередь.
package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/finance-tracker/internal/lib/month"
	"github.com/magabrotheeeer/finance-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/finance-tracker/internal/models"
	"github.com/magabrotheeeer/finance-tracker/internal/rabbitmq"
)

// BudgetRepository описывает выборку перерасходованных бюджетов за месяц.
type BudgetRepository interface {
	FindOverspentBudgets(ctx context.Context, monthStart time.Time) ([]*models.OverspendInfo, error)
}

// SchedulerService периодически ищет перерасход и публикует уведомления.
type SchedulerService struct {
	repo BudgetRepository
	log  *slog.Logger
	now  func() time.Time
}

// NewSchedulerService создает новый экземпляр SchedulerService.
func NewSchedulerService(repo BudgetRepository, log *slog.Logger) *SchedulerService {
	return &SchedulerService{
		repo: repo,
		log:  log,
		now:  time.Now,
	}
}

// NewSchedulerServiceAt создает SchedulerService с заданным источником времени.
func NewSchedulerServiceAt(repo BudgetRepository, log *slog.Logger, now func() time.Time) *SchedulerService {
	s := NewSchedulerService(repo, log)
	s.now = now
	return s
}

// FindOverspentBudgets запускает поиск перерасхода сразу и далее раз в сутки.
func (s *SchedulerService) FindOverspentBudgets(ctx context.Context, channel *amqp.Channel) {
	s.runFindOverspentBudgets(ctx, channel)

	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.runFindOverspentBudgets(ctx, channel)
		case <-ctx.Done():
			return
		}
	}
}

// RunOnce выполняет один проход поиска перерасхода за текущий месяц.
func (s *SchedulerService) RunOnce(ctx context.Context, channel *amqp.Channel) {
	s.runFindOverspentBudgets(ctx, channel)
}

func (s *SchedulerService) runFindOverspentBudgets(ctx context.Context, channel *amqp.Channel) {
	s.log.Info("starting service to find overspent budgets")
	monthStart := month.Current(s.now())
	overspent, err := s.repo.FindOverspentBudgets(ctx, monthStart)
	if err != nil {
		s.log.Error("failed to find overspent budgets", sl.Err(err))
		return
	}
	if len(overspent) == 0 {
		s.log.Info("no overspent budgets found")
		return
	}
	s.log.Info("found overspent budgets", "count", len(overspent))
	for _, info := range overspent {
		err = rabbitmq.PublishMessage(channel, "notifications", "overspend", info)
		if err != nil {
			s.log.Error("failed to publish message", sl.Err(err))
		}
	}
}
