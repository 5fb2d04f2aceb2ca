package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"anoa.com/wodtracker/internal/entity"
	coachDto "anoa.com/wodtracker/internal/modules/coach/dto"
	coach "anoa.com/wodtracker/internal/modules/coach/service"
	progression "anoa.com/wodtracker/internal/modules/progression/service"
	"anoa.com/wodtracker/internal/modules/workout/dto"
	"anoa.com/wodtracker/internal/modules/workout/repository"
	"anoa.com/wodtracker/pkg/apperror"
	commonDto "anoa.com/wodtracker/pkg/dto"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DefaultFeedback is stored when the evaluator could not be reached.
const DefaultFeedback = "¡Buen trabajo! Sigue así."

const (
	defaultPageSize = 20
	maxClientRefLen = 100
)

type WorkoutService interface {
	AnalyzeWod(ctx context.Context, userID uuid.UUID, text string, image *commonDto.UploadFile) (*coachDto.WodAnalysis, error)
	GenerateHomeWorkout(ctx context.Context, userID uuid.UUID, difficulty string) (*coachDto.HomeWorkout, error)
	LogWorkout(ctx context.Context, userID uuid.UUID, input dto.CreateWorkoutInput, clientRef string) (*dto.LogWorkoutResponse, error)
	ListWorkouts(ctx context.Context, userID uuid.UUID, query dto.ListWorkoutsQuery) (*dto.PaginatedWorkoutResponse, error)
	GetWorkout(ctx context.Context, userID, id uuid.UUID) (*entity.WorkoutLog, error)
	DeleteWorkout(ctx context.Context, userID, id uuid.UUID) error
}

type workoutService struct {
	repo        repository.WorkoutRepository
	progression progression.ProgressionService
	coach       coach.Coach
	athletes    coach.AthleteLoader
	now         func() time.Time
}

func NewWorkoutService(repo repository.WorkoutRepository, progression progression.ProgressionService, coach coach.Coach, athletes coach.AthleteLoader) WorkoutService {
	return &workoutService{
		repo:        repo,
		progression: progression,
		coach:       coach,
		athletes:    athletes,
		now:         time.Now,
	}
}

func (s *workoutService) AnalyzeWod(ctx context.Context, userID uuid.UUID, text string, image *commonDto.UploadFile) (*coachDto.WodAnalysis, error) {
	img, err := coach.ImageFromUpload(image)
	if err != nil {
		return nil, err
	}

	athlete, _, err := s.athletes.Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.coach.AnalyzeWod(ctx, athlete, text, img)
}

func (s *workoutService) GenerateHomeWorkout(ctx context.Context, userID uuid.UUID, difficulty string) (*coachDto.HomeWorkout, error) {
	athlete, _, err := s.athletes.Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.coach.GenerateHomeWorkout(ctx, athlete, difficulty)
}

// LogWorkout stores a finished workout and awards its XP. The insert, the ledger entry and
// the progress update commit together, so a workout is awarded at most once.
func (s *workoutService) LogWorkout(ctx context.Context, userID uuid.UUID, input dto.CreateWorkoutInput, clientRef string) (*dto.LogWorkoutResponse, error) {
	if input.Calories < 0 {
		return nil, apperror.Invalid("calories must not be negative")
	}
	if input.DurationMinutes < 0 {
		return nil, apperror.Invalid("duration_minutes must not be negative")
	}
	clientRef = strings.TrimSpace(clientRef)
	if len(clientRef) > maxClientRefLen {
		return nil, apperror.Invalid("Idempotency-Key is too long")
	}

	if clientRef != "" {
		if stored, err := s.findReplay(ctx, userID, clientRef); stored != nil || err != nil {
			return stored, err
		}
	}

	athlete, _, err := s.athletes.Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	log := buildLog(userID, input, now)
	if clientRef != "" {
		log.ClientRef = &clientRef
	}

	bonus, feedback := s.evaluate(ctx, athlete, log)
	earned := progression.BaseWorkoutXP + bonus
	log.XPEarned = &earned
	log.Feedback = feedback

	var award *progression.AwardResult
	err = s.repo.Transaction(ctx, func(tx *gorm.DB, repo repository.WorkoutRepository) error {
		if err := repo.Create(ctx, log); err != nil {
			return fmt.Errorf("failed to store workout: %w", err)
		}

		var err error
		award, err = s.progression.AwardInTx(ctx, tx, userID, bonus, log.ID, now)
		return err
	})
	if err != nil {
		// Two requests with the same key raced; the loser reports the winner's result.
		if clientRef != "" {
			if stored, findErr := s.findReplay(ctx, userID, clientRef); stored != nil && findErr == nil {
				return stored, nil
			}
		}
		return nil, err
	}

	s.progression.NotifyAward(ctx, award)
	logrus.Infof("💪 Workout %q logged for %s (+%d XP)", log.Name, userID, award.Earned())

	return &dto.LogWorkoutResponse{
		Workout:  log,
		Feedback: feedback,
		Award: &dto.AwardSummary{
			BaseXP:   award.BaseXP,
			BonusXP:  award.BonusXP,
			Earned:   award.Earned(),
			TierUp:   award.TierUp(),
			Progress: progression.ToProgressResponse(award.After),
		},
	}, nil
}

func (s *workoutService) findReplay(ctx context.Context, userID uuid.UUID, clientRef string) (*dto.LogWorkoutResponse, error) {
	stored, err := s.repo.FindByClientRef(ctx, userID, clientRef)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to check idempotency key: %w", err)
	}
	return &dto.LogWorkoutResponse{Workout: stored, Feedback: stored.Feedback, Replayed: true}, nil
}

// evaluate asks the coach for a performance bonus. Any failure degrades to no bonus.
func (s *workoutService) evaluate(ctx context.Context, athlete coachDto.Athlete, log *entity.WorkoutLog) (int, string) {
	if s.coach == nil {
		return 0, DefaultFeedback
	}

	eval, err := s.coach.EvaluatePerformance(ctx, athlete, coachDto.WorkoutSummary{
		Name:            log.Name,
		Description:     log.Description,
		DurationMinutes: log.DurationMinutes,
		Calories:        log.Calories,
		Exercises:       log.Exercises,
	})
	if err != nil {
		logrus.Warnf("⚠️ Performance evaluation failed, awarding base XP only: %v", err)
		return 0, DefaultFeedback
	}

	bonus := eval.BonusXP
	if bonus < 0 {
		bonus = 0
	}
	feedback := eval.Feedback
	if feedback == "" {
		feedback = DefaultFeedback
	}
	return bonus, feedback
}

func buildLog(userID uuid.UUID, input dto.CreateWorkoutInput, now time.Time) *entity.WorkoutLog {
	date := now
	if input.Date != nil && !input.Date.IsZero() {
		date = *input.Date
	}

	workoutType := input.Type
	if workoutType == "" {
		workoutType = entity.WorkoutTypeManual
	}

	exercises := make(datatypes.JSONSlice[entity.Exercise], 0, len(input.Exercises))
	for _, e := range input.Exercises {
		exercises = append(exercises, entity.Exercise{
			Name:            strings.TrimSpace(e.Name),
			Reps:            e.Reps,
			Weight:          e.Weight,
			Notes:           e.Notes,
			Instruction:     e.Instruction,
			DurationSeconds: e.DurationSeconds,
		})
	}

	return &entity.WorkoutLog{
		ID:              uuid.New(),
		UserID:          userID,
		Date:            date,
		Name:            strings.TrimSpace(input.Name),
		Description:     strings.TrimSpace(input.Description),
		Calories:        input.Calories,
		DurationMinutes: input.DurationMinutes,
		Type:            workoutType,
		Exercises:       exercises,
	}
}

func (s *workoutService) ListWorkouts(ctx context.Context, userID uuid.UUID, query dto.ListWorkoutsQuery) (*dto.PaginatedWorkoutResponse, error) {
	offset := query.Normalize(defaultPageSize)

	var to *time.Time
	if query.To != nil {
		// "to" is an inclusive calendar day
		end := query.To.AddDate(0, 0, 1)
		to = &end
	}

	logs, total, err := s.repo.List(ctx, userID, repository.ListFilter{
		From:   query.From,
		To:     to,
		Limit:  query.Limit,
		Offset: offset,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list workouts: %w", err)
	}
	if logs == nil {
		logs = []entity.WorkoutLog{}
	}

	return &dto.PaginatedWorkoutResponse{
		Data: logs,
		Meta: commonDto.NewPaginationMeta(query.PaginationQuery, total),
	}, nil
}

func (s *workoutService) GetWorkout(ctx context.Context, userID, id uuid.UUID) (*entity.WorkoutLog, error) {
	log, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return log, nil
}

// DeleteWorkout removes the log only. XP already awarded for it stays.
func (s *workoutService) DeleteWorkout(ctx context.Context, userID, id uuid.UUID) error {
	deleted, err := s.repo.Delete(ctx, userID, id)
	if err != nil {
		return fmt.Errorf("failed to delete workout: %w", err)
	}
	if !deleted {
		return apperror.ErrNotFound
	}
	return nil
}
