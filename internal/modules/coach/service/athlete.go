package service

import (
	"context"
	"errors"
	"fmt"

	"anoa.com/wodtracker/internal/entity"
	"anoa.com/wodtracker/internal/modules/coach/dto"
	progressionRepo "anoa.com/wodtracker/internal/modules/progression/repository"
	userRepo "anoa.com/wodtracker/internal/modules/user/repository"
	"anoa.com/wodtracker/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AthleteLoader assembles the prompt context for a user from the profile and progress rows.
type AthleteLoader interface {
	Load(ctx context.Context, userID uuid.UUID) (dto.Athlete, *entity.User, error)
}

type athleteLoader struct {
	users    userRepo.UserRepository
	progress progressionRepo.ProgressRepository
}

func NewAthleteLoader(users userRepo.UserRepository, progress progressionRepo.ProgressRepository) AthleteLoader {
	return &athleteLoader{users: users, progress: progress}
}

func (l *athleteLoader) Load(ctx context.Context, userID uuid.UUID) (dto.Athlete, *entity.User, error) {
	user, err := l.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.Athlete{}, nil, apperror.ErrNotFound
		}
		return dto.Athlete{}, nil, fmt.Errorf("failed to load user: %w", err)
	}

	progress, err := l.progress.GetOrCreate(ctx, userID)
	if err != nil {
		return dto.Athlete{}, nil, fmt.Errorf("failed to load progress: %w", err)
	}

	return dto.NewAthlete(user.Profile, progress), user, nil
}
