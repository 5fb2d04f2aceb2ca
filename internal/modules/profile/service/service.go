package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"anoa.com/wodtracker/internal/entity"
	profileDto "anoa.com/wodtracker/internal/modules/profile/dto"
	progression "anoa.com/wodtracker/internal/modules/progression/service"
	userRepo "anoa.com/wodtracker/internal/modules/user/repository"
	"anoa.com/wodtracker/pkg/apperror"
	commonDto "anoa.com/wodtracker/pkg/dto"
	"anoa.com/wodtracker/pkg/storage"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ProfileService interface {
	GetCurrentProfile(ctx context.Context, userID uuid.UUID) (*profileDto.ProfileResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, input profileDto.UpdateProfileInput, avatar *commonDto.UploadFile) (*profileDto.ProfileResponse, error)
}

type profileService struct {
	repo         userRepo.UserRepository
	imageStorage storage.ImageStorage
	progression  progression.ProgressionService
}

func NewProfileService(repo userRepo.UserRepository, imageStorage storage.ImageStorage, progression progression.ProgressionService) ProfileService {
	return &profileService{
		repo:         repo,
		imageStorage: imageStorage,
		progression:  progression,
	}
}

func (s *profileService) GetCurrentProfile(ctx context.Context, userID uuid.UUID) (*profileDto.ProfileResponse, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.buildResponse(ctx, user)
}

func (s *profileService) UpdateProfile(ctx context.Context, userID uuid.UUID, input profileDto.UpdateProfileInput, avatar *commonDto.UploadFile) (*profileDto.ProfileResponse, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile := user.Profile
	if profile == nil {
		p := entity.NewDefaultProfile(user.ID, "")
		profile = &p
	}

	if err := applyInput(profile, input); err != nil {
		return nil, err
	}

	var previousAvatar *string
	if avatar != nil && avatar.Reader != nil {
		if s.imageStorage == nil {
			return nil, apperror.Invalid("avatar uploads are not available")
		}
		url, err := s.imageStorage.UploadImage(ctx, avatar.Reader, storage.FolderAvatars, avatar.FileName)
		if err != nil {
			return nil, fmt.Errorf("failed to upload avatar: %w", err)
		}
		previousAvatar = profile.AvatarURL
		profile.AvatarURL = &url
	}

	if err := s.repo.Update(ctx, nil, profile); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	if previousAvatar != nil && strings.Contains(*previousAvatar, "cloudinary.com") {
		if err := s.imageStorage.DeleteImage(ctx, *previousAvatar); err != nil {
			logrus.Warnf("⚠️ Failed to delete old avatar for user %s: %v", user.ID, err)
		}
	}

	user.Profile = profile
	return s.buildResponse(ctx, user)
}

func (s *profileService) findUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *profileService) buildResponse(ctx context.Context, user *entity.User) (*profileDto.ProfileResponse, error) {
	progress, err := s.progression.GetProgress(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	user.PasswordHash = ""

	return &profileDto.ProfileResponse{
		User:     user,
		Profile:  user.Profile,
		Progress: *progress,
	}, nil
}

func applyInput(profile *entity.Profile, input profileDto.UpdateProfileInput) error {
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return apperror.Invalid("name cannot be empty")
		}
		profile.Name = name
	}
	if input.Age != nil {
		profile.Age = *input.Age
	}
	if input.Weight != nil {
		profile.Weight = *input.Weight
	}
	if input.Height != nil {
		profile.Height = *input.Height
	}
	if input.Gender != nil {
		profile.Gender = *input.Gender
	}
	if input.Language != nil {
		profile.Language = *input.Language
	}
	if input.Country != nil {
		profile.Country = strings.TrimSpace(*input.Country)
	}
	if input.Timezone != nil {
		tz := strings.TrimSpace(*input.Timezone)
		if tz != "" {
			if _, err := time.LoadLocation(tz); err != nil {
				return apperror.Invalid("unknown timezone: " + tz)
			}
		}
		profile.Timezone = tz
	}
	if input.Equipment != nil {
		equipment := make(datatypes.JSONSlice[string], 0, len(input.Equipment))
		for _, e := range input.Equipment {
			if e = strings.TrimSpace(e); e != "" {
				equipment = append(equipment, e)
			}
		}
		profile.Equipment = equipment
	}
	if input.NutritionGoal != nil {
		profile.NutritionGoal = *input.NutritionGoal
	}
	return nil
}
