package agent

import "context"

// Agent is a background assistant run by the Scheduler.
type Agent interface {
	GetName() string

	// GetSchedule returns a cron spec ("0 18 * * *"), or "" for on-demand agents.
	GetSchedule() string

	Execute(ctx context.Context) error
}
