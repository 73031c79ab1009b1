package statemachine_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/pkg/statemachine"
)

type phase string
type trigger string

const (
	idle      phase = "idle"
	scheduled phase = "scheduled"
	running   phase = "running"

	schedule trigger = "schedule"
	start    trigger = "start"
	finish   trigger = "finish"
)

func newMachine(t *testing.T, opts ...statemachine.Option[phase, trigger]) *statemachine.Machine[phase, trigger] {
	t.Helper()
	base := []statemachine.Option[phase, trigger]{
		statemachine.WithTransition[phase, trigger](idle, scheduled, schedule),
		statemachine.WithTransition[phase, trigger](scheduled, scheduled, schedule),
		statemachine.WithTransition[phase, trigger](scheduled, running, start),
		statemachine.WithTransition[phase, trigger](running, idle, finish),
	}
	m, err := statemachine.New(idle, append(base, opts...)...)
	require.NoError(t, err)
	return m
}

func TestMachine_Fire(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	m := newMachine(t)

	assert.Equal(t, idle, m.Current())
	assert.True(t, m.CanFire(ctx, schedule))
	assert.False(t, m.CanFire(ctx, start))

	require.NoError(t, m.Fire(ctx, schedule))
	require.NoError(t, m.Fire(ctx, schedule))
	assert.Equal(t, scheduled, m.Current())

	require.NoError(t, m.Fire(ctx, start))
	assert.True(t, m.Is(running, scheduled))

	err := m.Fire(ctx, start)
	assert.True(t, statemachine.IsNoTransition(err))
	assert.Equal(t, running, m.Current())

	m.Reset()
	assert.Equal(t, idle, m.Current())
}

func TestMachine_Guards(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	allow := false
	m := statemachine.MustNew(idle,
		statemachine.WithTransition(idle, scheduled, schedule,
			statemachine.WithGuard(func(context.Context, phase, trigger) bool { return allow }),
		),
		statemachine.WithTransition(idle, running, schedule),
	)

	require.NoError(t, m.Fire(ctx, schedule))
	assert.Equal(t, running, m.Current(), "second candidate wins when the first is vetoed")

	m.Reset()
	allow = true
	require.NoError(t, m.Fire(ctx, schedule))
	assert.Equal(t, scheduled, m.Current())

	guarded := statemachine.MustNew(idle,
		statemachine.WithTransition(idle, scheduled, schedule,
			statemachine.WithGuard(func(context.Context, phase, trigger) bool { return false }),
		),
	)
	err := guarded.Fire(ctx, schedule)
	assert.True(t, statemachine.IsRejected(err))
	assert.False(t, guarded.CanFire(ctx, schedule))
}

func TestMachine_Actions(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	var seen []string
	boom := errors.New("boom")

	m := statemachine.MustNew(idle,
		statemachine.WithTransition(idle, scheduled, schedule,
			statemachine.WithAction(func(_ context.Context, from, to phase, _ trigger) error {
				seen = append(seen, string(from)+"->"+string(to))
				return nil
			}),
		),
		statemachine.WithTransition(scheduled, running, start,
			statemachine.WithAction(func(context.Context, phase, phase, trigger) error { return boom }),
		),
	)

	require.NoError(t, m.Fire(ctx, schedule))
	assert.Equal(t, []string{"idle->scheduled"}, seen)

	err := m.Fire(ctx, start)
	assert.ErrorIs(t, err, statemachine.ErrActionFailed)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, scheduled, m.Current(), "failed action keeps the state")
}

func TestMachine_OnTransition(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	var m *statemachine.Machine[phase, trigger]
	var observed []phase
	m = newMachine(t, statemachine.OnTransition(func(_, to phase, _ trigger) {
		observed = append(observed, to)
		// observers may re-enter the machine
		if to == scheduled {
			_ = m.Fire(ctx, start)
		}
	}))

	require.NoError(t, m.Fire(ctx, schedule))
	assert.Equal(t, []phase{scheduled, running}, observed)
	assert.Equal(t, running, m.Current())

	_, err := statemachine.New[phase, trigger](idle, statemachine.OnTransition[phase, trigger](nil))
	assert.ErrorIs(t, err, statemachine.ErrNilObserver)
}
