package entigo_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hupe1980/entigo"
	"github.com/hupe1980/entigo/core"
	"github.com/hupe1980/entigo/store"
	"github.com/hupe1980/entigo/testutil"
)

// TestPool_Randomized drives a pool with a random operation mix and checks
// it against a naive model after every step. The dense and sparse backends
// run the same schedule so behavioral differences between them surface.
func TestPool_Randomized(t *testing.T) {
	const (
		seed  = 1337
		steps = 5000
	)

	rng := testutil.NewRNG(seed)

	pool := entigo.New()
	require.NoError(t, entigo.Register(pool, store.NewDense[Position]()))
	require.NoError(t, entigo.Register(pool, store.NewSparse[Velocity]()))

	model := map[core.EntityID]struct {
		pos    *Position
		vel    *Velocity
		buried bool
	}{}
	var ids []core.EntityID

	for step := 0; step < steps; step++ {
		switch {
		case len(ids) == 0 || rng.Bool(0.2): // spawn
			e := pool.Spawn()
			ids = append(ids, e)
			model[e] = struct {
				pos    *Position
				vel    *Velocity
				buried bool
			}{}

		case rng.Bool(0.5): // set
			e := testutil.Pick(rng, ids)
			m := model[e]
			if rng.Bool(0.5) {
				p := Position{X: rng.Intn(1000)}
				entigo.Set(pool, e, p)
				if !m.buried {
					m.pos = &p
				}
			} else {
				v := Velocity{X: rng.Intn(1000)}
				entigo.Set(pool, e, v)
				if !m.buried {
					m.vel = &v
				}
			}
			model[e] = m

		case rng.Bool(0.3): // remove one component
			e := testutil.Pick(rng, ids)
			m := model[e]
			entigo.Remove[Position](pool, e)
			if !m.buried {
				m.pos = nil
			}
			model[e] = m

		case rng.Bool(0.5): // soft-remove the entity
			e := testutil.Pick(rng, ids)
			m := model[e]
			pool.RemoveEntity(e)
			m.buried = true
			model[e] = m

		default: // cleanup
			pool.CleanupRemoved()
			for e, m := range model {
				if m.buried {
					m.pos = nil
					m.vel = nil
					// The tombstone is gone after the sweep, so the id is
					// writable again.
					m.buried = false
					model[e] = m
				}
			}
		}

		// Spot-check a few ids each step instead of the whole model.
		for i := 0; i < 3 && len(ids) > 0; i++ {
			e := testutil.Pick(rng, ids)
			m := model[e]

			pos, ok := entigo.Get[Position](pool, e)
			wantPos := m.pos != nil && !m.buried
			require.Equal(t, wantPos, ok, "step %d position presence for %d", step, e)
			if ok {
				require.Equal(t, *m.pos, pos, "step %d position for %d", step, e)
			}

			vel, ok := entigo.Get[Velocity](pool, e)
			wantVel := m.vel != nil && !m.buried
			require.Equal(t, wantVel, ok, "step %d velocity presence for %d", step, e)
			if ok {
				require.Equal(t, *m.vel, vel, "step %d velocity for %d", step, e)
			}
		}
	}

	// Full sweep at the end: All must agree with the model exactly.
	pool.CleanupRemoved()
	live := map[core.EntityID]Position{}
	for e, m := range model {
		if m.pos != nil && !m.buried {
			live[e] = *m.pos
		}
	}
	got := map[core.EntityID]Position{}
	for id, pos := range entigo.All[Position](pool) {
		got[id] = pos
	}
	require.Equal(t, live, got)
}
