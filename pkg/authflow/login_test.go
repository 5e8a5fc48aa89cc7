package authflow_test

import (
	"context"
	"errors"
	"testing"

	"github.com/openbadger/badgekit/pkg/apiclient"
	"github.com/openbadger/badgekit/pkg/authflow"
	"github.com/openbadger/badgekit/pkg/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLoginAPI struct {
	calls    int
	gotEmail string
	gotPass  string
	token    string
	err      error
}

func (f *fakeLoginAPI) Login(ctx context.Context, email, password string) (string, error) {
	f.calls++
	f.gotEmail = email
	f.gotPass = password
	if f.err != nil {
		return "", f.err
	}
	return f.token, nil
}

func TestLoginSubmit(t *testing.T) {
	t.Parallel()

	t.Run("success stores the token and trimmed email", func(t *testing.T) {
		t.Parallel()
		api := &fakeLoginAPI{token: "abc123"}
		store := session.NewMemoryStore()
		flow := authflow.NewLogin(api, store)

		err := flow.Submit(context.Background(), "  user@example.com  ", "secret")
		require.NoError(t, err)
		assert.Equal(t, authflow.StateCompleted, flow.State())
		assert.Empty(t, flow.ErrorMessage())
		assert.Equal(t, "user@example.com", api.gotEmail)

		sess, err := store.Get(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "abc123", sess.Token)
		assert.Equal(t, "user@example.com", sess.Email)
		assert.Equal(t, "user", sess.Name)
	})

	t.Run("blank fields fail locally without a network call", func(t *testing.T) {
		t.Parallel()
		api := &fakeLoginAPI{token: "abc123"}
		flow := authflow.NewLogin(api, session.NewMemoryStore())

		err := flow.Submit(context.Background(), "   ", "secret")
		require.Error(t, err)
		assert.True(t, apiclient.IsValidationError(err))
		assert.Equal(t, 0, api.calls)
		assert.Equal(t, authflow.StateError, flow.State())
	})

	t.Run("API failure surfaces the credentials message", func(t *testing.T) {
		t.Parallel()
		api := &fakeLoginAPI{err: apiclient.ErrUnauthorized}
		store := session.NewMemoryStore()
		flow := authflow.NewLogin(api, store)

		err := flow.Submit(context.Background(), "user@example.com", "wrong")
		require.ErrorIs(t, err, apiclient.ErrUnauthorized)
		assert.Equal(t, authflow.StateError, flow.State())
		assert.Equal(t, "Authentication failed. Please check credentials.", flow.ErrorMessage())

		sess, err := store.Get(context.Background())
		require.NoError(t, err)
		assert.False(t, sess.IsAuthenticated())
	})

	t.Run("error state allows a retry", func(t *testing.T) {
		t.Parallel()
		api := &fakeLoginAPI{err: apiclient.ErrUnauthorized}
		flow := authflow.NewLogin(api, session.NewMemoryStore())

		require.Error(t, flow.Submit(context.Background(), "user@example.com", "wrong"))

		api.err = nil
		api.token = "abc123"
		require.NoError(t, flow.Submit(context.Background(), "user@example.com", "right"))
		assert.Equal(t, authflow.StateCompleted, flow.State())
		assert.Equal(t, 2, api.calls)
	})

	t.Run("completed flow rejects further submissions", func(t *testing.T) {
		t.Parallel()
		api := &fakeLoginAPI{token: "abc123"}
		flow := authflow.NewLogin(api, session.NewMemoryStore())

		require.NoError(t, flow.Submit(context.Background(), "user@example.com", "secret"))
		err := flow.Submit(context.Background(), "user@example.com", "secret")
		require.ErrorIs(t, err, authflow.ErrFlowCompleted)
		assert.Equal(t, 1, api.calls)
	})

	t.Run("reset returns the flow to idle", func(t *testing.T) {
		t.Parallel()
		api := &fakeLoginAPI{err: errors.New("boom")}
		flow := authflow.NewLogin(api, session.NewMemoryStore())

		require.Error(t, flow.Submit(context.Background(), "user@example.com", "secret"))
		flow.Reset()
		assert.Equal(t, authflow.StateIdle, flow.State())
		assert.Empty(t, flow.ErrorMessage())
	})
}
