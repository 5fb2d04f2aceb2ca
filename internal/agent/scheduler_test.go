package agent

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type countingAgent struct {
	name     string
	schedule string
	runs     atomic.Int32
	err      error
	panics   bool
}

func (a *countingAgent) GetName() string     { return a.name }
func (a *countingAgent) GetSchedule() string { return a.schedule }

func (a *countingAgent) Execute(context.Context) error {
	a.runs.Add(1)
	if a.panics {
		panic("boom")
	}
	return a.err
}

func TestRegisterAgent_InvalidSchedule(t *testing.T) {
	s := NewScheduler(time.UTC)
	err := s.RegisterAgent(&countingAgent{name: "bad", schedule: "every tuesday"})
	assert.Error(t, err)
	assert.Empty(t, s.GetRegisteredAgents())
}

func TestRunAgentByName(t *testing.T) {
	s := NewScheduler(nil)
	a := &countingAgent{name: "reminder", err: errors.New("llm down")}
	require.NoError(t, s.RegisterAgent(a))
	require.NoError(t, s.RegisterAgent(&countingAgent{name: "daily", schedule: "0 18 * * *"}))

	assert.Equal(t, []string{"reminder", "daily"}, s.GetRegisteredAgents())
	assert.EqualError(t, s.RunAgentByName(context.Background(), "reminder"), "llm down")
	assert.Equal(t, int32(1), a.runs.Load())
	assert.Error(t, s.RunAgentByName(context.Background(), "missing"))
}

func TestRun_RecoversPanics(t *testing.T) {
	s := NewScheduler(time.UTC)
	a := &countingAgent{name: "panicky", panics: true}

	assert.NotPanics(t, func() { s.run(a) })
	assert.Equal(t, int32(1), a.runs.Load())
}

func TestStartStop(t *testing.T) {
	s := NewScheduler(time.UTC)
	require.NoError(t, s.RegisterAgent(&countingAgent{name: "daily", schedule: "@daily"}))

	s.Start()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(ctx)
}
