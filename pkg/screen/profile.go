package screen

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"github.com/openbadger/badgekit/pkg/apiclient"
	"github.com/openbadger/badgekit/pkg/session"
	"github.com/openbadger/badgekit/pkg/viewstate"
)

// ProfileEarnerPlaceholder is rendered on the profile screen when the
// earner-count fetch degrades.
const ProfileEarnerPlaceholder = "—"

// ProfileAPI is the slice of the API client the profile screen needs.
type ProfileAPI interface {
	CurrentUser(ctx context.Context, token string) (apiclient.User, error)
	ListBadges(ctx context.Context) ([]apiclient.Badge, error)
	EarnerCount(ctx context.Context, badgeID int) (int, error)
}

// ProfileData is what the profile screen renders.
type ProfileData struct {
	User    apiclient.User
	Catalog []apiclient.Badge
	// SelectedBadgeID defaults to the first owned badge; zero when the user
	// owns none.
	SelectedBadgeID int
	// Initials are shown when the user has no avatar image.
	Initials string
}

// SelectedBadge resolves the selection against the catalog.
func (d ProfileData) SelectedBadge() (apiclient.Badge, bool) {
	for _, b := range d.Catalog {
		if b.ID == d.SelectedBadgeID {
			return b, true
		}
	}
	return apiclient.Badge{}, false
}

// Profile is the signed-in user's profile screen.
type Profile struct {
	api   ProfileAPI
	store session.Store
	rec   *viewstate.Reconciler[ProfileData]

	onUnauthorized func()

	mu      sync.Mutex
	earners string
}

// NewProfile creates the profile screen model. Visiting without a session
// signals the unauthenticated redirect instead of loading.
func NewProfile(api ProfileAPI, store session.Store, onUnauthorized func()) *Profile {
	if onUnauthorized == nil {
		onUnauthorized = func() {}
	}
	p := &Profile{
		api:            api,
		store:          store,
		onUnauthorized: onUnauthorized,
		earners:        ProfileEarnerPlaceholder,
	}

	load := func(ctx context.Context) (ProfileData, error) {
		sess, err := store.Get(ctx)
		if err != nil {
			return ProfileData{}, err
		}

		user, err := api.CurrentUser(ctx, sess.Token)
		if err != nil {
			return ProfileData{}, err
		}
		catalog, err := api.ListBadges(ctx)
		if err != nil {
			return ProfileData{}, err
		}

		data := ProfileData{
			User:     user,
			Catalog:  catalog,
			Initials: initialsFromUser(user),
		}
		if len(user.Badges) > 0 {
			data.SelectedBadgeID = user.Badges[0].BadgeID
			p.fetchEarners(ctx, data.SelectedBadgeID)
		}
		return data, nil
	}

	p.rec = viewstate.New(store, load, viewstate.WithUnauthorizedHandler[ProfileData](onUnauthorized))
	return p
}

// Load fetches the screen's data. A missing session redirects immediately,
// before any network call.
func (p *Profile) Load(ctx context.Context) {
	sess, err := p.store.Get(ctx)
	if err != nil || !sess.IsAuthenticated() {
		p.onUnauthorized()
		return
	}
	p.rec.Reload(ctx)
}

// State returns the render state.
func (p *Profile) State() viewstate.State[ProfileData] {
	return p.rec.State()
}

// Earners returns the display value for the selected badge's earner metric.
func (p *Profile) Earners() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.earners
}

// SelectBadge changes the selection and re-triggers only the earner fetch.
func (p *Profile) SelectBadge(ctx context.Context, badgeID int) {
	state := p.rec.State()
	if state.Phase != viewstate.PhaseSuccess || state.Data.SelectedBadgeID == badgeID {
		return
	}
	p.rec.Update(func(data *ProfileData) {
		data.SelectedBadgeID = badgeID
	})
	p.fetchEarners(ctx, badgeID)
}

// Logout clears the session and navigates to the unauthenticated entry
// point.
func (p *Profile) Logout(ctx context.Context) error {
	if err := p.store.Clear(ctx); err != nil {
		return err
	}
	p.onUnauthorized()
	return nil
}

func (p *Profile) fetchEarners(ctx context.Context, badgeID int) {
	value := viewstate.Secondary(ctx, ProfileEarnerPlaceholder, func(ctx context.Context) (string, error) {
		n, err := p.api.EarnerCount(ctx, badgeID)
		if err != nil {
			return "", err
		}
		return strconv.Itoa(n), nil
	})

	p.mu.Lock()
	p.earners = value
	p.mu.Unlock()
}

// initialsFromUser joins the first characters of the first and last name,
// uppercased.
func initialsFromUser(user apiclient.User) string {
	var b strings.Builder
	for _, name := range []string{user.FirstName, user.LastName} {
		r := []rune(name)
		if len(r) > 0 {
			b.WriteRune(r[0])
		}
	}
	return strings.ToUpper(b.String())
}
