package service

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/ignatzorin/fixitnow-backend/internal/logger"
	"github.com/ignatzorin/fixitnow-backend/internal/models"
	"github.com/ignatzorin/fixitnow-backend/internal/repository/common"
)

// SeedService наполняет базу демо-данными для разработки.
// В production не подключается.
type SeedService struct {
	users      AuthRepository
	userExtras UserRepositoryForLedger
	jobs       JobRepository
	categories CategoryRepository
}

func NewSeedService(users AuthRepository, userExtras UserRepositoryForLedger, jobs JobRepository, categories CategoryRepository) *SeedService {
	return &SeedService{users: users, userExtras: userExtras, jobs: jobs, categories: categories}
}

// Seed создаёт демо-пользователей, категории и заявку.
// Повторный запуск безопасен: существующие записи пропускаются.
func (s *SeedService) Seed(ctx context.Context) error {
	customer, err := s.seedUser(ctx, "customer@example.com", "Анна Клиентова", "+15550100001", models.RoleCustomer)
	if err != nil {
		return err
	}

	pro, err := s.seedUser(ctx, "pro@example.com", "Иван Мастеров", "+15550100002", models.RolePro)
	if err != nil {
		return err
	}
	if pro != nil {
		if err := s.userExtras.SetWeeklyBudget(ctx, pro.ID, 100); err != nil {
			return err
		}
	}

	if _, err := s.seedUser(ctx, "admin@example.com", "Администратор", "+15550100000", models.RoleAdmin); err != nil {
		return err
	}

	seedCategories := []models.ServiceCategory{
		{Name: "Сантехника", Value: "plumbing", Icon: "wrench", Color: "#2563eb", IsActive: true, DisplayOrder: 1},
		{Name: "Электрика", Value: "electrical", Icon: "zap", Color: "#f59e0b", IsActive: true, DisplayOrder: 2},
		{Name: "Уборка", Value: "cleaning", Icon: "sparkles", Color: "#10b981", IsActive: true, DisplayOrder: 3},
		{Name: "Ремонт", Value: "handyman", Icon: "hammer", Color: "#8b5cf6", IsActive: true, DisplayOrder: 4},
	}
	for i := range seedCategories {
		if err := s.categories.Create(ctx, &seedCategories[i]); err != nil && !errors.Is(err, common.ErrAlreadyExists) {
			return err
		}
	}

	if customer != nil {
		budgetMin, budgetMax := 100.0, 300.0
		job := &models.Job{
			CustomerID:    customer.ID,
			CustomerName:  customer.Name,
			CustomerPhone: customer.Phone,
			Title:         "Протекает кран на кухне",
			Description:   "Кран капает вторую неделю, нужна замена картриджа или смесителя целиком.",
			Category:      "plumbing",
			Location:      "Brooklyn, NY",
			Zipcode:       "11201",
			BudgetMin:     &budgetMin,
			BudgetMax:     &budgetMax,
			Timeline:      models.TimelineUrgent,
		}
		if err := s.jobs.Create(ctx, job); err != nil {
			return err
		}
	}

	logger.Log.Info("демо-данные загружены")
	return nil
}

// seedUser создаёт пользователя, если его ещё нет.
// Возвращает nil без ошибки, если пользователь уже существовал.
func (s *SeedService) seedUser(ctx context.Context, email, name, phone, role string) (*models.User, error) {
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, nil
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte("Password123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        email,
		PasswordHash: string(passHash),
		Name:         name,
		Phone:        phone,
		Role:         role,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
