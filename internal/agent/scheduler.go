package agent

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

const defaultJobTimeout = 10 * time.Minute

// Scheduler runs registered agents on their cron schedules.
type Scheduler struct {
	cron       *cron.Cron
	agents     []Agent
	jobTimeout time.Duration
}

func NewScheduler(loc *time.Location) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	return &Scheduler{
		cron:       cron.New(cron.WithLocation(loc)),
		agents:     make([]Agent, 0),
		jobTimeout: defaultJobTimeout,
	}
}

// RegisterAgent adds the agent and schedules it when it has a cron spec.
func (s *Scheduler) RegisterAgent(agent Agent) error {
	schedule := agent.GetSchedule()
	if schedule != "" {
		if _, err := s.cron.AddFunc(schedule, func() { s.run(agent) }); err != nil {
			return fmt.Errorf("failed to schedule agent %s: %w", agent.GetName(), err)
		}
		logrus.Infof("📅 [%s] Scheduled with cron: %s", agent.GetName(), schedule)
	} else {
		logrus.Infof("📝 [%s] Registered as on-demand agent (no schedule)", agent.GetName())
	}

	s.agents = append(s.agents, agent)
	return nil
}

func (s *Scheduler) run(agent Agent) {
	defer func() {
		if r := recover(); r != nil {
			logrus.Errorf("💥 [%s] Job panicked: %v", agent.GetName(), r)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), s.jobTimeout)
	defer cancel()

	logrus.Infof("🤖 [%s] Starting scheduled job...", agent.GetName())
	if err := agent.Execute(ctx); err != nil {
		logrus.Errorf("❌ [%s] Job failed: %v", agent.GetName(), err)
		return
	}
	logrus.Infof("✅ [%s] Job completed successfully", agent.GetName())
}

func (s *Scheduler) Start() {
	s.cron.Start()
	logrus.Infof("🚀 Agent Scheduler started with %d registered agents", len(s.agents))
}

// Stop halts scheduling and waits for running jobs until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		logrus.Warn("⚠️ Agent Scheduler stopped before running jobs finished")
		return
	}
	logrus.Info("🛑 Agent Scheduler stopped")
}

// RunAgentByName executes one agent immediately.
func (s *Scheduler) RunAgentByName(ctx context.Context, name string) error {
	for _, agent := range s.agents {
		if agent.GetName() == name {
			logrus.Infof("🎯 [%s] Running on-demand execution...", name)
			return agent.Execute(ctx)
		}
	}
	return fmt.Errorf("agent %q not found", name)
}

func (s *Scheduler) GetRegisteredAgents() []string {
	names := make([]string, len(s.agents))
	for i, agent := range s.agents {
		names[i] = agent.GetName()
	}
	return names
}
