package reconcile

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// recordingMutator records every call and fails for keys listed in failOn.
type recordingMutator struct {
	calls  []string
	failOn map[string]bool
}

func (m *recordingMutator) do(kind, key string) error {
	m.calls = append(m.calls, kind+":"+key)
	if m.failOn[kind+":"+key] {
		return errors.New("store unavailable")
	}
	return nil
}

func (m *recordingMutator) Insert(ctx context.Context, a Action) error { return m.do("insert", a.Key) }
func (m *recordingMutator) Update(ctx context.Context, a Action) error { return m.do("update", a.Key) }
func (m *recordingMutator) Delete(ctx context.Context, a Action) error { return m.do("delete", a.Key) }
func (m *recordingMutator) SetFlag(ctx context.Context, key string, value bool) error {
	if value {
		return m.do("set", key)
	}
	return m.do("clear", key)
}

func samplePlan() *Plan {
	plan := &Plan{}
	plan.Add(Action{Type: ActionInsert, Key: "1"})
	plan.Add(Action{Type: ActionSetFlag, Key: "1"})
	plan.Add(Action{Type: ActionUpdate, Key: "2"})
	plan.Add(Action{Type: ActionSetFlag, Key: "2"})
	plan.Add(Action{Type: ActionDelete, Key: "3"})
	plan.Add(Action{Type: ActionClearFlag, Key: "3"})
	plan.Add(Action{Type: ActionInsert, Key: "4"})
	plan.Add(Action{Type: ActionSetFlag, Key: "4"})
	return plan
}

func TestApplyPlan_PhaseOrder(t *testing.T) {
	m := &recordingMutator{}

	outcome, err := ApplyPlan(context.Background(), m, samplePlan(), Options{}, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, []string{
		"delete:3",
		"insert:1", "insert:4",
		"update:2",
		"set:1", "set:2", "set:4",
		"clear:3",
	}, m.calls)
	assert.Len(t, outcome.Applied, 8)
	assert.Empty(t, outcome.Failed)
	assert.Equal(t, 2, outcome.Count(ActionInsert))
}

func TestApplyPlan_PartialFailureIsolation(t *testing.T) {
	m := &recordingMutator{failOn: map[string]bool{"insert:1": true, "delete:3": true}}
	core, logs := observer.New(zapcore.WarnLevel)

	outcome, err := ApplyPlan(context.Background(), m, samplePlan(), Options{}, zap.New(core))
	require.NoError(t, err)

	// Insert for 4 and update for 2 still ran
	assert.Contains(t, m.calls, "insert:4")
	assert.Contains(t, m.calls, "update:2")
	// Flags of keys whose record action failed were never attempted
	assert.NotContains(t, m.calls, "set:1")
	assert.NotContains(t, m.calls, "clear:3")

	assert.Len(t, outcome.Failed, 2)
	assert.Len(t, outcome.Skipped, 2)
	assert.Equal(t, 1, outcome.Count(ActionInsert))
	assert.Equal(t, 1, outcome.Count(ActionUpdate))
	assert.Equal(t, 0, outcome.Count(ActionDelete))

	_, failed := outcome.FailedKeys()["1"]
	assert.True(t, failed)
	assert.Equal(t, "store unavailable", outcome.Failed[0].Message)
	assert.EqualError(t, outcome.Failed[0], "delete 3: store unavailable")
	assert.EqualError(t, errors.Unwrap(outcome.Failed[0]), "store unavailable")

	assert.Equal(t, 4, logs.FilterMessage("Reconcile action failed").Len()+logs.FilterMessage("Skipping flag change after failed record action").Len())
}

func TestApplyPlan_DryRun(t *testing.T) {
	m := &recordingMutator{}

	outcome, err := ApplyPlan(context.Background(), m, samplePlan(), Options{DryRun: true}, nil)
	require.NoError(t, err)
	assert.Empty(t, m.calls)
	assert.Empty(t, outcome.Applied)
	assert.Len(t, outcome.Skipped, 8)
}

func TestApplyPlan_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m := &recordingMutator{}
	outcome, err := ApplyPlan(ctx, m, samplePlan(), Options{}, nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, m.calls)
	assert.Empty(t, outcome.Applied)
}

func TestApplyPlan_UnknownAction(t *testing.T) {
	plan := &Plan{Actions: []Action{{Type: "merge", Key: "9"}}}
	outcome, err := ApplyPlan(context.Background(), &recordingMutator{}, plan, Options{}, nil)
	require.NoError(t, err)
	// Unknown types belong to no phase and are never executed
	assert.Empty(t, outcome.Applied)
	assert.Empty(t, outcome.Failed)
}
