package service

import (
	"context"
	"time"

	"github.com/ignatzorin/fixitnow-backend/internal/goroutine"
	"github.com/ignatzorin/fixitnow-backend/internal/logger"
)

type UserRepositoryForReset interface {
	ResetWeeklySpent(ctx context.Context) (int64, error)
}

// BudgetResetter обнуляет weekly_spent всех мастеров в ночь на понедельник.
// Запускается только при BUDGET_RESET_ENABLED=true: в кластере из
// нескольких инстансов сброс должен выполнять ровно один.
type BudgetResetter struct {
	users UserRepositoryForReset
}

func NewBudgetResetter(users UserRepositoryForReset) *BudgetResetter {
	return &BudgetResetter{users: users}
}

// Start запускает фоновый цикл сброса до отмены контекста.
func (b *BudgetResetter) Start(ctx context.Context) {
	goroutine.SafeGoWithContext(ctx, b.run)
}

func (b *BudgetResetter) run(ctx context.Context) {
	for {
		wait := untilNextMonday(time.Now())
		logger.Log.WithField("next_reset_in", wait.String()).Info("сброс недельных трат запланирован")

		select {
		case <-ctx.Done():
			return
		case <-time.After(wait):
		}

		resetCtx, cancel := context.WithTimeout(ctx, time.Minute)
		affected, err := b.users.ResetWeeklySpent(resetCtx)
		cancel()
		if err != nil {
			logger.Log.Errorf("сброс недельных трат не удался: %v", err)
			continue
		}
		logger.Log.WithField("profiles", affected).Info("недельные траты мастеров обнулены")
	}
}

// untilNextMonday возвращает время до ближайшей полуночи понедельника.
func untilNextMonday(now time.Time) time.Duration {
	days := (int(time.Monday) - int(now.Weekday()) + 7) % 7
	if days == 0 {
		days = 7
	}
	next := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, days)
	return next.Sub(now)
}
