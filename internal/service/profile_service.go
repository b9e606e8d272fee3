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

type UserRepositoryForProfiles interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.ProProfile, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, upd repository.ProfileUpdate) error
	SearchPros(ctx context.Context, category, location string) ([]models.ProSearchResult, error)
}

// ProfileService управляет профилями мастеров и их поиском.
type ProfileService struct {
	users UserRepositoryForProfiles
}

func NewProfileService(users UserRepositoryForProfiles) *ProfileService {
	return &ProfileService{users: users}
}

// ProView - профиль мастера с контактами для выдачи клиенту.
type ProView struct {
	models.ProProfile
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// GetPro возвращает профиль мастера с контактами.
func (s *ProfileService) GetPro(ctx context.Context, proID uuid.UUID) (*ProView, error) {
	user, err := s.users.GetByID(ctx, proID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, apperror.ErrProNotFound
		}
		return nil, err
	}
	if user.Role != models.RolePro {
		return nil, apperror.ErrProNotFound
	}

	profile, err := s.users.GetProfile(ctx, proID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, apperror.ErrProfileNotFound
		}
		return nil, err
	}

	return &ProView{ProProfile: *profile, Name: user.Name, Phone: user.Phone}, nil
}

// ProfileInput - обновляемые поля профиля мастера.
type ProfileInput struct {
	Bio             *string
	Services        []string
	ServiceAreas    []string
	HourlyRate      *float64
	YearsExperience *int
	BudgetActive    *bool
}

// UpdateProfile обновляет разрешённые поля профиля. Бюджетные счётчики
// этим путём недоступны.
func (s *ProfileService) UpdateProfile(ctx context.Context, proID uuid.UUID, in ProfileInput) (*models.ProProfile, error) {
	if in.Bio != nil {
		if err := validation.ValidateLength("биография", *in.Bio, 0, validation.MaxBioLength); err != nil {
			return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
		}
	}
	if in.Services != nil {
		if err := validation.ValidateServices(in.Services); err != nil {
			return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
		}
	}
	if in.HourlyRate != nil && *in.HourlyRate < 0 {
		return nil, apperror.New(apperror.ErrCodeValidation, "почасовая ставка не может быть отрицательной")
	}
	if in.YearsExperience != nil && *in.YearsExperience < 0 {
		return nil, apperror.New(apperror.ErrCodeValidation, "опыт не может быть отрицательным")
	}

	upd := repository.ProfileUpdate{
		Bio:             in.Bio,
		Services:        in.Services,
		ServiceAreas:    in.ServiceAreas,
		HourlyRate:      in.HourlyRate,
		YearsExperience: in.YearsExperience,
		BudgetActive:    in.BudgetActive,
	}

	if err := s.users.UpdateProfile(ctx, proID, upd); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, apperror.ErrProfileNotFound
		}
		return nil, err
	}

	profile, err := s.users.GetProfile(ctx, proID)
	if err != nil {
		return nil, err
	}
	return profile, nil
}

// SearchPros ищет мастеров по категории услуг и локации.
func (s *ProfileService) SearchPros(ctx context.Context, category, location string) ([]models.ProSearchResult, error) {
	return s.users.SearchPros(ctx, category, location)
}
