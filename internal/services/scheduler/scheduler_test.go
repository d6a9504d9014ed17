package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/finance-tracker/internal/models"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) FindOverspentBudgets(ctx context.Context, monthStart time.Time) ([]*models.OverspendInfo, error) {
	args := m.Called(ctx, monthStart)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.OverspendInfo), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestSchedulerService_runFindOverspentBudgets(t *testing.T) {
	pinnedNow := time.Date(2026, 12, 15, 9, 0, 0, 0, time.UTC)
	decemberStart := time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		setupMocks func(r *MockRepository)
	}{
		{
			name: "no overspent budgets",
			setupMocks: func(r *MockRepository) {
				// Запрашивается именно начало текущего месяца
				r.On("FindOverspentBudgets", mock.Anything, decemberStart).
					Return([]*models.OverspendInfo{}, nil).Once()
			},
		},
		{
			name: "repository error is logged, not returned",
			setupMocks: func(r *MockRepository) {
				r.On("FindOverspentBudgets", mock.Anything, decemberStart).
					Return(nil, errors.New("db error")).Once()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			service := NewSchedulerServiceAt(repo, newNoopLogger(), func() time.Time { return pinnedNow })

			tt.setupMocks(repo)

			service.runFindOverspentBudgets(context.Background(), nil)

			repo.AssertExpectations(t)
		})
	}
}
