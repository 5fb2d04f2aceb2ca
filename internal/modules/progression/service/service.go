package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"anoa.com/wodtracker/internal/entity"
	"anoa.com/wodtracker/internal/modules/progression/dto"
	"anoa.com/wodtracker/internal/modules/progression/repository"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	maxCASRetries       = 3
	defaultHistoryLimit = 50
)

// Notifier delivers user-visible notifications.
type Notifier interface {
	CreateNotification(ctx context.Context, notification *entity.Notification) error
}

// HistoryPurger removes the workout history of a user as part of a progress reset.
type HistoryPurger interface {
	PurgeUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error
}

type ProgressionService interface {
	GetProgress(ctx context.Context, userID uuid.UUID) (*dto.ProgressResponse, error)
	StartSession(ctx context.Context, userID uuid.UUID, now time.Time) (*dto.SessionResponse, error)
	// AwardInTx awards one workout inside the caller's transaction. Call NotifyAward after commit.
	AwardInTx(ctx context.Context, tx *gorm.DB, userID uuid.UUID, bonusXP int, workoutID uuid.UUID, now time.Time) (*AwardResult, error)
	NotifyAward(ctx context.Context, result *AwardResult)
	// ImportInTx restores an exported progress snapshot onto an untouched account.
	ImportInTx(ctx context.Context, tx *gorm.DB, userID uuid.UUID, snapshot entity.UserProgress) (bool, error)
	Reset(ctx context.Context, userID uuid.UUID) (*dto.ProgressResponse, error)
	History(ctx context.Context, userID uuid.UUID, limit int) ([]dto.XPEventResponse, error)
}

type AwardResult struct {
	UserID    uuid.UUID
	WorkoutID uuid.UUID
	Before    entity.UserProgress
	After     entity.UserProgress
	BaseXP    int
	BonusXP   int
}

func (r *AwardResult) Earned() int {
	return r.BaseXP + r.BonusXP
}

func (r *AwardResult) TierUp() bool {
	return Tier(r.After.Tier).Rank() > Tier(r.Before.Tier).Rank()
}

type progressionService struct {
	repo     repository.ProgressRepository
	notifier Notifier
	purger   HistoryPurger
}

func NewProgressionService(repo repository.ProgressRepository, notifier Notifier, purger HistoryPurger) ProgressionService {
	return &progressionService{
		repo:     repo,
		notifier: notifier,
		purger:   purger,
	}
}

func (s *progressionService) GetProgress(ctx context.Context, userID uuid.UUID) (*dto.ProgressResponse, error) {
	p, err := s.repo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load progress: %w", err)
	}
	resp := ToProgressResponse(*p)
	return &resp, nil
}

func (s *progressionService) StartSession(ctx context.Context, userID uuid.UUID, now time.Time) (*dto.SessionResponse, error) {
	for attempt := 1; attempt <= maxCASRetries; attempt++ {
		current, err := s.repo.GetOrCreate(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to load progress: %w", err)
		}

		next, res := ApplyDecay(*current, now)
		if !res.Applied {
			return &dto.SessionResponse{Progress: ToProgressResponse(*current)}, nil
		}

		err = s.repo.Transaction(ctx, func(_ *gorm.DB, repo repository.ProgressRepository) error {
			if err := repo.CompareAndSwap(ctx, &next); err != nil {
				return err
			}
			return repo.AppendEvent(ctx, &entity.XPEvent{
				UserID:      userID,
				Kind:        entity.XPEventInactivityDecay,
				Delta:       -res.XPLost,
				XPAfter:     next.XP,
				TierAfter:   next.Tier,
				DaysCharged: res.DaysPenalized,
			})
		})
		if errors.Is(err, repository.ErrVersionConflict) {
			logrus.Warnf("⚠️ Progress of %s changed while applying decay (attempt %d/%d)", userID, attempt, maxCASRetries)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to persist decay: %w", err)
		}

		logrus.Infof("📉 Inactivity decay for %s: -%d XP over %d days", userID, res.XPLost, res.DaysPenalized)
		msg := fmt.Sprintf("Llevas %d días sin entrenar: se han descontado %d XP (%d XP por día). ¡Vuelve al box!",
			res.DaysInactive, res.XPLost, DecayXPPerDay)
		s.notify(ctx, &entity.Notification{
			UserID:  userID,
			Type:    entity.NotificationXPDecay,
			Title:   "Has perdido XP por inactividad",
			Message: msg,
			Amount:  res.XPLost,
		})

		return &dto.SessionResponse{
			Progress: ToProgressResponse(next),
			Decay: &dto.DecayResponse{
				DaysInactive:  res.DaysInactive,
				DaysPenalized: res.DaysPenalized,
				Penalty:       res.Penalty,
				XPLost:        res.XPLost,
			},
		}, nil
	}

	return nil, fmt.Errorf("failed to apply decay after %d attempts: %w", maxCASRetries, repository.ErrVersionConflict)
}

func (s *progressionService) AwardInTx(ctx context.Context, tx *gorm.DB, userID uuid.UUID, bonusXP int, workoutID uuid.UUID, now time.Time) (*AwardResult, error) {
	repo := s.repo.WithTx(tx)

	current, err := repo.GetForUpdate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock progress: %w", err)
	}

	next, err := AwardWorkout(*current, BaseWorkoutXP, bonusXP, now)
	if err != nil {
		return nil, err
	}
	if err := repo.CompareAndSwap(ctx, &next); err != nil {
		return nil, fmt.Errorf("failed to persist award: %w", err)
	}

	wid := workoutID
	if err := repo.AppendEvent(ctx, &entity.XPEvent{
		UserID:    userID,
		Kind:      entity.XPEventWorkoutAward,
		Delta:     BaseWorkoutXP + bonusXP,
		BaseXP:    BaseWorkoutXP,
		BonusXP:   bonusXP,
		XPAfter:   next.XP,
		TierAfter: next.Tier,
		WorkoutID: &wid,
	}); err != nil {
		return nil, fmt.Errorf("failed to append ledger event: %w", err)
	}

	return &AwardResult{
		UserID:    userID,
		WorkoutID: workoutID,
		Before:    *current,
		After:     next,
		BaseXP:    BaseWorkoutXP,
		BonusXP:   bonusXP,
	}, nil
}

func (s *progressionService) NotifyAward(ctx context.Context, result *AwardResult) {
	if result == nil {
		return
	}

	wid := result.WorkoutID
	s.notify(ctx, &entity.Notification{
		UserID:   result.UserID,
		Type:     entity.NotificationWorkoutLogged,
		Title:    "Entrenamiento registrado",
		Message:  fmt.Sprintf("+%d XP (%d base + %d bonus)", result.Earned(), result.BaseXP, result.BonusXP),
		Amount:   result.Earned(),
		EntityID: &wid,
	})

	if result.TierUp() {
		logrus.Infof("🏆 %s reached tier %s", result.UserID, result.After.Tier)
		s.notify(ctx, &entity.Notification{
			UserID:  result.UserID,
			Type:    entity.NotificationTierUp,
			Title:   "¡Has subido de nivel!",
			Message: fmt.Sprintf("Ahora eres %s con %d XP.", result.After.Tier, result.After.XP),
			Amount:  result.After.XP,
		})
	}
}

func (s *progressionService) ImportInTx(ctx context.Context, tx *gorm.DB, userID uuid.UUID, snapshot entity.UserProgress) (bool, error) {
	repo := s.repo.WithTx(tx)

	current, err := repo.GetForUpdate(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("failed to lock progress: %w", err)
	}
	if current.XP != 0 || current.LastActiveDate != nil || snapshot.XP <= 0 {
		return false, nil
	}

	next := *current
	next.XP = snapshot.XP
	setLevel(&next)
	next.LastActiveDate = snapshot.LastActiveDate
	next.LastPenaltyDate = snapshot.LastPenaltyDate

	if err := repo.CompareAndSwap(ctx, &next); err != nil {
		return false, fmt.Errorf("failed to persist imported progress: %w", err)
	}
	if err := repo.AppendEvent(ctx, &entity.XPEvent{
		UserID:    userID,
		Kind:      entity.XPEventImport,
		Delta:     next.XP,
		XPAfter:   next.XP,
		TierAfter: next.Tier,
	}); err != nil {
		return false, fmt.Errorf("failed to append ledger event: %w", err)
	}

	return true, nil
}

func (s *progressionService) Reset(ctx context.Context, userID uuid.UUID) (*dto.ProgressResponse, error) {
	var next entity.UserProgress

	err := s.repo.Transaction(ctx, func(tx *gorm.DB, repo repository.ProgressRepository) error {
		current, err := repo.GetForUpdate(ctx, userID)
		if err != nil {
			return err
		}

		next = ResetProgress(*current)
		if err := repo.CompareAndSwap(ctx, &next); err != nil {
			return err
		}

		if s.purger != nil {
			if err := s.purger.PurgeUser(ctx, tx, userID); err != nil {
				return err
			}
		}

		return repo.AppendEvent(ctx, &entity.XPEvent{
			UserID:    userID,
			Kind:      entity.XPEventReset,
			Delta:     -current.XP,
			XPAfter:   0,
			TierAfter: next.Tier,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to reset progress: %w", err)
	}

	logrus.Infof("🔄 Progress reset for %s", userID)
	resp := ToProgressResponse(next)
	return &resp, nil
}

func (s *progressionService) History(ctx context.Context, userID uuid.UUID, limit int) ([]dto.XPEventResponse, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	events, err := s.repo.ListEvents(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load xp history: %w", err)
	}

	out := make([]dto.XPEventResponse, 0, len(events))
	for _, e := range events {
		item := dto.XPEventResponse{
			ID:          e.ID,
			Kind:        e.Kind,
			Delta:       e.Delta,
			BaseXP:      e.BaseXP,
			BonusXP:     e.BonusXP,
			XPAfter:     e.XPAfter,
			TierAfter:   e.TierAfter,
			DaysCharged: e.DaysCharged,
			CreatedAt:   e.CreatedAt,
		}
		if e.WorkoutID != nil {
			id := e.WorkoutID.String()
			item.WorkoutID = &id
		}
		out = append(out, item)
	}
	return out, nil
}

// notify is best effort; a failed notification never rolls back progression.
func (s *progressionService) notify(ctx context.Context, n *entity.Notification) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.CreateNotification(ctx, n); err != nil {
		logrus.Errorf("❌ Failed to send %s notification to %s: %v", n.Type, n.UserID, err)
	}
}

// ToProgressResponse derives the public view of a progress record.
func ToProgressResponse(p entity.UserProgress) dto.ProgressResponse {
	tier, progress := LevelFor(p.XP)
	resp := dto.ProgressResponse{
		XP:              p.XP,
		Tier:            string(tier),
		TierProgress:    progress,
		XPToNextTier:    XPToNext(p.XP),
		LastActiveDate:  p.LastActiveDate,
		LastPenaltyDate: p.LastPenaltyDate,
	}
	if next, ok := tier.Next(); ok {
		name := string(next)
		resp.NextTier = &name
	}
	return resp
}
