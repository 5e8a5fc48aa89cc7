package screen_test

import (
	"context"
	"errors"
	"testing"

	"github.com/openbadger/badgekit/pkg/apiclient"
	"github.com/openbadger/badgekit/pkg/screen"
	"github.com/openbadger/badgekit/pkg/session"
	"github.com/openbadger/badgekit/pkg/viewstate"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfile(t *testing.T) {
	t.Parallel()

	t.Run("missing session redirects before any network call", func(t *testing.T) {
		t.Parallel()
		api := &fakeAPI{}
		var redirected bool
		prof := screen.NewProfile(api, session.NewMemoryStore(), func() { redirected = true })

		prof.Load(context.Background())

		assert.True(t, redirected)
		assert.Equal(t, 0, api.userCalls)
		assert.Equal(t, 0, api.listCalls)
	})

	t.Run("selects the first owned badge and fetches its earners", func(t *testing.T) {
		t.Parallel()
		api := &fakeAPI{
			badges: catalogOf(1, 2, 3),
			user: apiclient.User{
				FirstName: "Jane", LastName: "Doe", Email: "jane@example.com",
				Badges: []apiclient.UserBadge{{BadgeID: 3, IsPublic: true}, {BadgeID: 1}},
			},
			earnerCounts: map[int]int{3: 310},
		}
		store := session.NewMemoryStore()
		ctx := context.Background()
		require.NoError(t, store.SetToken(ctx, "abc123", "jane@example.com", ""))

		prof := screen.NewProfile(api, store, nil)
		prof.Load(ctx)

		state := prof.State()
		require.Equal(t, viewstate.PhaseSuccess, state.Phase)
		assert.Equal(t, 3, state.Data.SelectedBadgeID)
		assert.Equal(t, "JD", state.Data.Initials)
		assert.Equal(t, "310", prof.Earners())

		selected, ok := state.Data.SelectedBadge()
		require.True(t, ok)
		assert.Equal(t, "OSINT Scout", selected.Name)
	})

	t.Run("no owned badges leaves the selection empty", func(t *testing.T) {
		t.Parallel()
		api := &fakeAPI{
			badges: catalogOf(1, 2),
			user:   apiclient.User{FirstName: "Jane", LastName: "Doe"},
		}
		store := session.NewMemoryStore()
		ctx := context.Background()
		require.NoError(t, store.SetToken(ctx, "abc123", "jane@example.com", ""))

		prof := screen.NewProfile(api, store, nil)
		prof.Load(ctx)

		state := prof.State()
		require.Equal(t, viewstate.PhaseSuccess, state.Phase)
		assert.Zero(t, state.Data.SelectedBadgeID)
		assert.Equal(t, "—", prof.Earners())
		assert.Equal(t, 0, api.earnersCalls)
	})

	t.Run("earner failure degrades to the em dash placeholder", func(t *testing.T) {
		t.Parallel()
		api := &fakeAPI{
			badges:     catalogOf(1),
			user:       apiclient.User{Badges: []apiclient.UserBadge{{BadgeID: 1}}},
			earnersErr: errors.New("boom"),
		}
		store := session.NewMemoryStore()
		ctx := context.Background()
		require.NoError(t, store.SetToken(ctx, "abc123", "jane@example.com", ""))

		prof := screen.NewProfile(api, store, nil)
		prof.Load(ctx)

		require.Equal(t, viewstate.PhaseSuccess, prof.State().Phase)
		assert.Equal(t, "—", prof.Earners())
	})

	t.Run("selecting a badge re-fetches only the earner count", func(t *testing.T) {
		t.Parallel()
		api := &fakeAPI{
			badges: catalogOf(1, 2),
			user: apiclient.User{
				Badges: []apiclient.UserBadge{{BadgeID: 1}, {BadgeID: 2}},
			},
			earnerCounts: map[int]int{1: 42, 2: 128},
		}
		store := session.NewMemoryStore()
		ctx := context.Background()
		require.NoError(t, store.SetToken(ctx, "abc123", "jane@example.com", ""))

		prof := screen.NewProfile(api, store, nil)
		prof.Load(ctx)

		api.mu.Lock()
		userCallsBefore := api.userCalls
		api.mu.Unlock()

		prof.SelectBadge(ctx, 2)

		api.mu.Lock()
		defer api.mu.Unlock()
		assert.Equal(t, userCallsBefore, api.userCalls)
		assert.Equal(t, 2, prof.State().Data.SelectedBadgeID)
		assert.Equal(t, "128", prof.Earners())
	})

	t.Run("selecting the current badge is a no-op", func(t *testing.T) {
		t.Parallel()
		api := &fakeAPI{
			badges:       catalogOf(1),
			user:         apiclient.User{Badges: []apiclient.UserBadge{{BadgeID: 1}}},
			earnerCounts: map[int]int{1: 42},
		}
		store := session.NewMemoryStore()
		ctx := context.Background()
		require.NoError(t, store.SetToken(ctx, "abc123", "jane@example.com", ""))

		prof := screen.NewProfile(api, store, nil)
		prof.Load(ctx)

		api.mu.Lock()
		callsBefore := api.earnersCalls
		api.mu.Unlock()

		prof.SelectBadge(ctx, 1)

		api.mu.Lock()
		defer api.mu.Unlock()
		assert.Equal(t, callsBefore, api.earnersCalls)
	})

	t.Run("401 clears the session and redirects", func(t *testing.T) {
		t.Parallel()
		api := &fakeAPI{userErr: apiclient.ErrUnauthorized}
		store := session.NewMemoryStore()
		ctx := context.Background()
		require.NoError(t, store.SetToken(ctx, "stale", "jane@example.com", ""))

		var redirected bool
		prof := screen.NewProfile(api, store, func() { redirected = true })
		prof.Load(ctx)

		assert.True(t, redirected)
		sess, err := store.Get(ctx)
		require.NoError(t, err)
		assert.False(t, sess.IsAuthenticated())
	})

	t.Run("logout clears the session and navigates away", func(t *testing.T) {
		t.Parallel()
		api := &fakeAPI{badges: catalogOf(1), user: apiclient.User{}}
		store := session.NewMemoryStore()
		ctx := context.Background()
		require.NoError(t, store.SetToken(ctx, "abc123", "jane@example.com", ""))

		var redirected bool
		prof := screen.NewProfile(api, store, func() { redirected = true })
		prof.Load(ctx)

		require.NoError(t, prof.Logout(ctx))
		assert.True(t, redirected)
		sess, err := store.Get(ctx)
		require.NoError(t, err)
		assert.False(t, sess.IsAuthenticated())
	})
}
