package screen_test

import (
	"context"
	"errors"
	"testing"

	"github.com/openbadger/badgekit/pkg/screen"
	"github.com/openbadger/badgekit/pkg/session"
	"github.com/openbadger/badgekit/pkg/viewstate"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetail(t *testing.T) {
	t.Parallel()

	t.Run("opens on the requested badge with its earner count", func(t *testing.T) {
		t.Parallel()
		api := &fakeAPI{
			badges:       catalogOf(1, 2, 3),
			earnerCounts: map[int]int{2: 128},
		}
		detail := screen.NewDetail(api, session.NewMemoryStore(), 2, nil)

		detail.Load(context.Background())

		state := detail.State()
		require.Equal(t, viewstate.PhaseSuccess, state.Phase)
		current, ok := state.Data.Current()
		require.True(t, ok)
		assert.Equal(t, 2, current.ID)
		assert.Equal(t, "128", detail.Earners())
	})

	t.Run("unknown start id falls back to the first badge", func(t *testing.T) {
		t.Parallel()
		api := &fakeAPI{
			badges:       catalogOf(1, 2),
			earnerCounts: map[int]int{1: 42},
		}
		detail := screen.NewDetail(api, session.NewMemoryStore(), 99, nil)

		detail.Load(context.Background())

		current, ok := detail.State().Data.Current()
		require.True(t, ok)
		assert.Equal(t, 1, current.ID)
	})

	t.Run("earner fetch failure degrades to the placeholder", func(t *testing.T) {
		t.Parallel()
		api := &fakeAPI{
			badges:     catalogOf(1, 2),
			earnersErr: errors.New("boom"),
		}
		detail := screen.NewDetail(api, session.NewMemoryStore(), 1, nil)

		detail.Load(context.Background())

		require.Equal(t, viewstate.PhaseSuccess, detail.State().Phase)
		assert.Equal(t, "N/A", detail.Earners())
	})

	t.Run("selection re-fetches only the earner count", func(t *testing.T) {
		t.Parallel()
		api := &fakeAPI{
			badges:       catalogOf(1, 2, 3),
			earnerCounts: map[int]int{1: 42, 3: 310},
		}
		detail := screen.NewDetail(api, session.NewMemoryStore(), 1, nil)
		ctx := context.Background()
		detail.Load(ctx)

		api.mu.Lock()
		listCallsBefore := api.listCalls
		earnersCallsBefore := api.earnersCalls
		api.mu.Unlock()

		detail.Select(ctx, 3)

		api.mu.Lock()
		defer api.mu.Unlock()
		assert.Equal(t, listCallsBefore, api.listCalls)
		assert.Equal(t, earnersCallsBefore+1, api.earnersCalls)

		current, ok := detail.State().Data.Current()
		require.True(t, ok)
		assert.Equal(t, 3, current.ID)
		assert.Equal(t, "310", detail.Earners())
	})

	t.Run("next and prev stop at the catalog edges", func(t *testing.T) {
		t.Parallel()
		api := &fakeAPI{
			badges:       catalogOf(1, 2),
			earnerCounts: map[int]int{1: 42, 2: 128},
		}
		detail := screen.NewDetail(api, session.NewMemoryStore(), 1, nil)
		ctx := context.Background()
		detail.Load(ctx)

		detail.Prev(ctx) // already first
		current, _ := detail.State().Data.Current()
		assert.Equal(t, 1, current.ID)

		detail.Next(ctx)
		detail.Next(ctx) // already last
		current, _ = detail.State().Data.Current()
		assert.Equal(t, 2, current.ID)
	})

	t.Run("related suggests up to three other badges", func(t *testing.T) {
		t.Parallel()
		api := &fakeAPI{
			badges:       catalogOf(1, 2, 3, 4),
			earnerCounts: map[int]int{2: 128},
		}
		detail := screen.NewDetail(api, session.NewMemoryStore(), 2, nil)

		detail.Load(context.Background())

		related := detail.State().Data.Related()
		assert.Equal(t, []int{1, 3, 4}, badgeIDs(related))
	})
}
