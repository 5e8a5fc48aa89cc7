package screen

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/openbadger/badgekit/pkg/apiclient"
	"github.com/openbadger/badgekit/pkg/session"
	"github.com/openbadger/badgekit/pkg/viewstate"
)

// CatalogAPI is the slice of the API client the catalog screen needs.
type CatalogAPI interface {
	ListBadges(ctx context.Context) ([]apiclient.Badge, error)
	ListEarnedBadges(ctx context.Context, token string) ([]apiclient.Badge, error)
	CurrentUser(ctx context.Context, token string) (apiclient.User, error)
}

// CatalogData is what the catalog screen renders: the full catalog ordered
// owned-first, the owned-ID set driving the locked/unlocked treatment, and
// the top-bar identity.
type CatalogData struct {
	Badges      []apiclient.Badge
	OwnedIDs    map[int]bool
	AvatarImage *string
	Initials    string
	LoggedIn    bool
}

// Owned reports whether the user holds the badge.
func (d CatalogData) Owned(badgeID int) bool {
	return d.OwnedIDs[badgeID]
}

// Catalog is the all-badges screen.
type Catalog struct {
	rec *viewstate.Reconciler[CatalogData]
}

// NewCatalog creates the catalog screen model. The load runs as an ordered
// sequence: public catalog first, then (when a session exists) the current
// user and the earned badges.
func NewCatalog(api CatalogAPI, store session.Store, onUnauthorized func()) *Catalog {
	load := func(ctx context.Context) (CatalogData, error) {
		all, err := api.ListBadges(ctx)
		if err != nil {
			return CatalogData{}, err
		}

		data := CatalogData{OwnedIDs: map[int]bool{}}
		sess, err := store.Get(ctx)
		if err != nil {
			return CatalogData{}, err
		}
		if sess.IsAuthenticated() {
			data.LoggedIn = true
			data.Initials = initialsFromName(sess.Name)

			user, err := api.CurrentUser(ctx, sess.Token)
			switch {
			case err == nil:
				data.AvatarImage = user.Image
			case isUnauthorized(err):
				return CatalogData{}, err
			}

			earned, err := api.ListEarnedBadges(ctx, sess.Token)
			if err != nil {
				return CatalogData{}, err
			}
			for _, b := range earned {
				data.OwnedIDs[b.ID] = true
			}
		}

		// Owned badges float to the top, catalog order preserved otherwise.
		sorted := make([]apiclient.Badge, len(all))
		copy(sorted, all)
		sort.SliceStable(sorted, func(i, j int) bool {
			return data.OwnedIDs[sorted[i].ID] && !data.OwnedIDs[sorted[j].ID]
		})
		data.Badges = sorted
		return data, nil
	}

	return &Catalog{
		rec: viewstate.New(store, load, viewstate.WithUnauthorizedHandler[CatalogData](onUnauthorized)),
	}
}

// Load fetches the screen's data.
func (c *Catalog) Load(ctx context.Context) {
	c.rec.Reload(ctx)
}

// Retry re-runs the load after an error.
func (c *Catalog) Retry(ctx context.Context) {
	c.rec.Reload(ctx)
}

// State returns the render state.
func (c *Catalog) State() viewstate.State[CatalogData] {
	return c.rec.State()
}

// initialsFromName takes the first two characters of the stored display
// name, uppercased, defaulting to "U" when no name is stored.
func initialsFromName(name string) string {
	if name == "" {
		return "U"
	}
	runes := []rune(name)
	if len(runes) > 2 {
		runes = runes[:2]
	}
	return strings.ToUpper(string(runes))
}

func isUnauthorized(err error) bool {
	return errors.Is(err, apiclient.ErrUnauthorized)
}
