package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/ignatzorin/fixitnow-backend/internal/models"
	"github.com/ignatzorin/fixitnow-backend/internal/pkg/apperror"
	"github.com/ignatzorin/fixitnow-backend/internal/repository"
	"github.com/ignatzorin/fixitnow-backend/internal/repository/common"
	"github.com/ignatzorin/fixitnow-backend/internal/validation"
)

type AdminRepository interface {
	GetSettings(ctx context.Context) (*models.PlatformSettings, error)
	UpdateSettings(ctx context.Context, upd repository.SettingsUpdate) error
	GetAnalytics(ctx context.Context) (*models.AdminAnalytics, error)
}

type CategoryRepository interface {
	List(ctx context.Context, activeOnly bool) ([]models.ServiceCategory, error)
	Create(ctx context.Context, category *models.ServiceCategory) error
	Update(ctx context.Context, id uuid.UUID, upd repository.CategoryUpdate) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// AdminService - аналитика, настройки платформы и каталог категорий.
type AdminService struct {
	admin      AdminRepository
	categories CategoryRepository
}

func NewAdminService(admin AdminRepository, categories CategoryRepository) *AdminService {
	return &AdminService{admin: admin, categories: categories}
}

// GetAnalytics собирает агрегаты для панели администратора.
func (s *AdminService) GetAnalytics(ctx context.Context) (*models.AdminAnalytics, error) {
	return s.admin.GetAnalytics(ctx)
}

// GetSettings возвращает настройки платформы.
func (s *AdminService) GetSettings(ctx context.Context) (*models.PlatformSettings, error) {
	return s.admin.GetSettings(ctx)
}

// UpdateSettings сохраняет настройки платформы. Лид-фи вступит в силу
// со следующего запуска процесса: работающий гейт читает значение из
// конфигурации.
func (s *AdminService) UpdateSettings(ctx context.Context, upd repository.SettingsUpdate) (*models.PlatformSettings, error) {
	if upd.LeadFee != nil && *upd.LeadFee <= 0 {
		return nil, apperror.New(apperror.ErrCodeValidation, "лид-фи должно быть положительным")
	}
	if upd.PlatformCommission != nil && (*upd.PlatformCommission < 0 || *upd.PlatformCommission > 100) {
		return nil, apperror.New(apperror.ErrCodeValidation, "комиссия должна быть от 0 до 100")
	}

	if err := s.admin.UpdateSettings(ctx, upd); err != nil {
		return nil, err
	}
	return s.admin.GetSettings(ctx)
}

// ListCategories возвращает категории услуг.
func (s *AdminService) ListCategories(ctx context.Context, activeOnly bool) ([]models.ServiceCategory, error) {
	return s.categories.List(ctx, activeOnly)
}

// CategoryInput - данные новой категории.
type CategoryInput struct {
	Name         string
	Value        string
	Icon         string
	Color        string
	IsActive     bool
	DisplayOrder int
}

// CreateCategory добавляет категорию услуг.
func (s *AdminService) CreateCategory(ctx context.Context, in CategoryInput) (*models.ServiceCategory, error) {
	if err := validation.ValidateNonEmpty("название категории", in.Name); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateCategorySlug(in.Value); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}

	category := &models.ServiceCategory{
		Name:         in.Name,
		Value:        in.Value,
		Icon:         in.Icon,
		Color:        in.Color,
		IsActive:     in.IsActive,
		DisplayOrder: in.DisplayOrder,
	}

	if err := s.categories.Create(ctx, category); err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			return nil, apperror.ErrSlugTaken
		}
		return nil, err
	}
	return category, nil
}

// UpdateCategory меняет разрешённые поля категории.
func (s *AdminService) UpdateCategory(ctx context.Context, id uuid.UUID, upd repository.CategoryUpdate) error {
	if err := s.categories.Update(ctx, id, upd); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return apperror.ErrCategoryNotFound
		}
		return err
	}
	return nil
}

// DeleteCategory удаляет категорию.
func (s *AdminService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if err := s.categories.Delete(ctx, id); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return apperror.ErrCategoryNotFound
		}
		return err
	}
	return nil
}
