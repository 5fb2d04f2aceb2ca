package agents

import (
	"context"
	"fmt"
	"time"

	"anoa.com/wodtracker/internal/entity"
	coach "anoa.com/wodtracker/internal/modules/coach/service"
	notification "anoa.com/wodtracker/internal/modules/notification/service"
	progressionRepo "anoa.com/wodtracker/internal/modules/progression/repository"
	progression "anoa.com/wodtracker/internal/modules/progression/service"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// InactivityReminderAgent nudges athletes on the last day before inactivity decay starts.
// It only sends notifications; xp is never touched here.
type InactivityReminderAgent struct {
	progress      progressionRepo.ProgressRepository
	athletes      coach.AthleteLoader
	coach         coach.Coach
	notifications notification.NotificationService
	redis         *redis.Client

	config InactivityReminderConfig
	now    func() time.Time
}

type InactivityReminderConfig struct {
	Schedule string

	// RedisKeyPrefix namespaces the keys that stop the same inactivity streak from being
	// reminded twice.
	RedisKeyPrefix string
	DedupeTTL      time.Duration

	// DelayBetweenMessages spaces out the LLM calls.
	DelayBetweenMessages time.Duration
}

func DefaultInactivityReminderConfig() InactivityReminderConfig {
	return InactivityReminderConfig{
		Schedule:             "0 18 * * *",
		RedisKeyPrefix:       "agent:inactivity_reminder",
		DedupeTTL:            72 * time.Hour,
		DelayBetweenMessages: 500 * time.Millisecond,
	}
}

var reminderCopy = map[string]struct{ title, fallback string }{
	entity.LanguageES: {
		title:    "¿Seguimos entrenando?",
		fallback: "¡Te echamos de menos en el box! Entrena hoy y conserva tu XP.",
	},
	entity.LanguageEN: {
		title:    "Still training?",
		fallback: "We miss you at the box! Train today to keep your XP.",
	},
}

func NewInactivityReminderAgent(
	progress progressionRepo.ProgressRepository,
	athletes coach.AthleteLoader,
	coach coach.Coach,
	notifications notification.NotificationService,
	redis *redis.Client,
	config InactivityReminderConfig,
) *InactivityReminderAgent {
	return &InactivityReminderAgent{
		progress:      progress,
		athletes:      athletes,
		coach:         coach,
		notifications: notifications,
		redis:         redis,
		config:        config,
		now:           time.Now,
	}
}

func (a *InactivityReminderAgent) GetName() string {
	return "InactivityReminderAgent"
}

func (a *InactivityReminderAgent) GetSchedule() string {
	return a.config.Schedule
}

// Execute reminds everyone whose inactivity rounds up to exactly the grace period, which
// is the last run before decay would charge them.
func (a *InactivityReminderAgent) Execute(ctx context.Context) error {
	now := a.now()
	from := now.Add(-progression.DecayGraceDays * 24 * time.Hour)
	to := now.Add(-(progression.DecayGraceDays - 1) * 24 * time.Hour)

	rows, err := a.progress.FindLastActiveBetween(ctx, from, to)
	if err != nil {
		return fmt.Errorf("failed to find inactive athletes: %w", err)
	}
	logrus.Infof("🔔 [%s] %d athletes on their last grace day", a.GetName(), len(rows))

	sent := 0
	for i, p := range rows {
		if err := ctx.Err(); err != nil {
			return err
		}
		if i > 0 && a.config.DelayBetweenMessages > 0 {
			select {
			case <-time.After(a.config.DelayBetweenMessages):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		ok, err := a.remind(ctx, p)
		if err != nil {
			logrus.WithError(err).WithField("user_id", p.UserID).Warnf("⚠️ [%s] reminder failed", a.GetName())
			continue
		}
		if ok {
			sent++
		}
	}

	logrus.Infof("💪 [%s] sent %d reminders", a.GetName(), sent)
	return nil
}

func (a *InactivityReminderAgent) remind(ctx context.Context, p entity.UserProgress) (bool, error) {
	if p.LastActiveDate == nil {
		return false, nil
	}

	key := fmt.Sprintf("%s:%s:%d", a.config.RedisKeyPrefix, p.UserID, p.LastActiveDate.Unix())
	if a.redis != nil {
		claimed, err := a.redis.SetNX(ctx, key, 1, a.config.DedupeTTL).Result()
		if err != nil {
			return false, fmt.Errorf("dedupe check failed: %w", err)
		}
		if !claimed {
			return false, nil
		}
	}

	athlete, _, err := a.athletes.Load(ctx, p.UserID)
	if err != nil {
		a.release(ctx, key)
		return false, err
	}

	copyFor, ok := reminderCopy[athlete.Language]
	if !ok {
		copyFor = reminderCopy[entity.LanguageES]
	}

	message, err := a.coach.InactivityReminder(ctx, athlete, progression.DecayGraceDays)
	if err != nil || message == "" {
		logrus.WithError(err).Debugf("[%s] using fallback reminder", a.GetName())
		message = copyFor.fallback
	}

	if err := a.notifications.CreateNotification(ctx, &entity.Notification{
		UserID:  p.UserID,
		Type:    entity.NotificationInactivityReminder,
		Title:   copyFor.title,
		Message: message,
	}); err != nil {
		a.release(ctx, key)
		return false, err
	}
	return true, nil
}

func (a *InactivityReminderAgent) release(ctx context.Context, key string) {
	if a.redis == nil {
		return
	}
	if err := a.redis.Del(ctx, key).Err(); err != nil {
		logrus.WithError(err).Warnf("⚠️ [%s] failed to release dedupe key", a.GetName())
	}
}
