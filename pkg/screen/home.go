package screen

import (
	"context"

	"github.com/openbadger/badgekit/pkg/apiclient"
	"github.com/openbadger/badgekit/pkg/session"
	"github.com/openbadger/badgekit/pkg/viewstate"
)

// HomeAPI is the slice of the API client the home screen needs.
type HomeAPI interface {
	ListBadges(ctx context.Context) ([]apiclient.Badge, error)
	CurrentUser(ctx context.Context, token string) (apiclient.User, error)
}

// HomeData is what the home screen renders.
type HomeData struct {
	Badges []apiclient.Badge
	// AvatarImage is the signed-in user's image reference, nil when logged
	// out or when the profile fetch degraded.
	AvatarImage *string
	LoggedIn    bool
}

// Home is the landing screen: the public catalog plus, for a signed-in
// user, the avatar in the top bar.
type Home struct {
	rec *viewstate.Reconciler[HomeData]
}

// NewHome creates the home screen model. onUnauthorized is the navigation
// signal back to the unauthenticated entry point.
func NewHome(api HomeAPI, store session.Store, onUnauthorized func()) *Home {
	load := func(ctx context.Context) (HomeData, error) {
		badges, err := api.ListBadges(ctx)
		if err != nil {
			return HomeData{}, err
		}

		data := HomeData{Badges: badges}
		sess, err := store.Get(ctx)
		if err != nil {
			return HomeData{}, err
		}
		if sess.IsAuthenticated() {
			data.LoggedIn = true
			// The avatar is decoration; only a 401 may interrupt the screen.
			user, err := api.CurrentUser(ctx, sess.Token)
			switch {
			case err == nil:
				data.AvatarImage = user.Image
			case isUnauthorized(err):
				return HomeData{}, err
			}
		}
		return data, nil
	}

	return &Home{
		rec: viewstate.New(store, load, viewstate.WithUnauthorizedHandler[HomeData](onUnauthorized)),
	}
}

// Load fetches the screen's data.
func (h *Home) Load(ctx context.Context) {
	h.rec.Reload(ctx)
}

// Retry re-runs the load after an error.
func (h *Home) Retry(ctx context.Context) {
	h.rec.Reload(ctx)
}

// State returns the render state.
func (h *Home) State() viewstate.State[HomeData] {
	return h.rec.State()
}
