package screen_test

import (
	"context"
	"testing"

	"github.com/openbadger/badgekit/pkg/apiclient"
	"github.com/openbadger/badgekit/pkg/screen"
	"github.com/openbadger/badgekit/pkg/session"
	"github.com/openbadger/badgekit/pkg/viewstate"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog(t *testing.T) {
	t.Parallel()

	t.Run("logged out shows catalog order with nothing owned", func(t *testing.T) {
		t.Parallel()
		api := &fakeAPI{badges: catalogOf(1, 2, 3)}
		catalog := screen.NewCatalog(api, session.NewMemoryStore(), nil)

		catalog.Load(context.Background())

		state := catalog.State()
		require.Equal(t, viewstate.PhaseSuccess, state.Phase)
		assert.Equal(t, []int{1, 2, 3}, badgeIDs(state.Data.Badges))
		assert.Empty(t, state.Data.OwnedIDs)
		assert.False(t, state.Data.LoggedIn)
		assert.Equal(t, 0, api.earnedCalls)
	})

	t.Run("owned badges float to the top in stable order", func(t *testing.T) {
		t.Parallel()
		api := &fakeAPI{
			badges: catalogOf(1, 2, 3, 4),
			earned: catalogOf(2, 4),
		}
		store := session.NewMemoryStore()
		ctx := context.Background()
		require.NoError(t, store.SetToken(ctx, "abc123", "jane@example.com", "Jane"))

		catalog := screen.NewCatalog(api, store, nil)
		catalog.Load(ctx)

		state := catalog.State()
		require.Equal(t, viewstate.PhaseSuccess, state.Phase)
		assert.Equal(t, []int{2, 4, 1, 3}, badgeIDs(state.Data.Badges))
		assert.True(t, state.Data.Owned(2))
		assert.False(t, state.Data.Owned(1))
		assert.Equal(t, "JA", state.Data.Initials)
	})

	t.Run("earned fetch failure takes the screen to error", func(t *testing.T) {
		t.Parallel()
		api := &fakeAPI{
			badges:    catalogOf(1, 2),
			earnedErr: apiclient.ErrNetworkUnavailable,
		}
		store := session.NewMemoryStore()
		ctx := context.Background()
		require.NoError(t, store.SetToken(ctx, "abc123", "jane@example.com", ""))

		catalog := screen.NewCatalog(api, store, nil)
		catalog.Load(ctx)

		state := catalog.State()
		require.Equal(t, viewstate.PhaseError, state.Phase)
		assert.Equal(t, "Please connect to the internet", state.Message)
	})

	t.Run("profile fetch failure degrades but earned still loads", func(t *testing.T) {
		t.Parallel()
		api := &fakeAPI{
			badges:  catalogOf(1, 2),
			earned:  catalogOf(2),
			userErr: apiclient.ErrServerError,
		}
		store := session.NewMemoryStore()
		ctx := context.Background()
		require.NoError(t, store.SetToken(ctx, "abc123", "jane@example.com", ""))

		catalog := screen.NewCatalog(api, store, nil)
		catalog.Load(ctx)

		state := catalog.State()
		require.Equal(t, viewstate.PhaseSuccess, state.Phase)
		assert.Nil(t, state.Data.AvatarImage)
		assert.True(t, state.Data.Owned(2))
	})

	t.Run("401 during load clears the session and redirects", func(t *testing.T) {
		t.Parallel()
		api := &fakeAPI{badges: catalogOf(1), userErr: apiclient.ErrUnauthorized}
		store := session.NewMemoryStore()
		ctx := context.Background()
		require.NoError(t, store.SetToken(ctx, "stale", "jane@example.com", ""))

		var redirected bool
		catalog := screen.NewCatalog(api, store, func() { redirected = true })
		catalog.Load(ctx)

		assert.True(t, redirected)
		sess, err := store.Get(ctx)
		require.NoError(t, err)
		assert.False(t, sess.IsAuthenticated())
	})
}

func badgeIDs(badges []apiclient.Badge) []int {
	ids := make([]int, 0, len(badges))
	for _, b := range badges {
		ids = append(ids, b.ID)
	}
	return ids
}
