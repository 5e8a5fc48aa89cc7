package screen

import (
	"context"
	"strconv"
	"sync"

	"github.com/openbadger/badgekit/pkg/apiclient"
	"github.com/openbadger/badgekit/pkg/session"
	"github.com/openbadger/badgekit/pkg/viewstate"
)

// EarnerPlaceholder is rendered on the detail screen when the earner-count
// fetch degrades.
const EarnerPlaceholder = "N/A"

// DetailAPI is the slice of the API client the badge detail screen needs.
type DetailAPI interface {
	ListBadges(ctx context.Context) ([]apiclient.Badge, error)
	EarnerCount(ctx context.Context, badgeID int) (int, error)
}

// DetailData is what the detail screen renders: the catalog and the index
// of the badge in view.
type DetailData struct {
	Badges []apiclient.Badge
	Index  int
}

// Current returns the badge in view; false when the catalog is empty.
func (d DetailData) Current() (apiclient.Badge, bool) {
	if d.Index < 0 || d.Index >= len(d.Badges) {
		return apiclient.Badge{}, false
	}
	return d.Badges[d.Index], true
}

// Related returns up to three other badges to suggest.
func (d DetailData) Related() []apiclient.Badge {
	current, ok := d.Current()
	if !ok {
		return nil
	}
	var related []apiclient.Badge
	for _, b := range d.Badges {
		if b.ID != current.ID {
			related = append(related, b)
		}
		if len(related) == 3 {
			break
		}
	}
	return related
}

// Detail is the individual-badge screen. Changing the badge in view
// re-triggers only the earner-count fetch, never the full reload.
type Detail struct {
	api DetailAPI
	rec *viewstate.Reconciler[DetailData]

	mu      sync.Mutex
	earners string
}

// NewDetail creates the detail screen model for the badge with startID.
// When startID is not in the catalog the first badge is shown.
func NewDetail(api DetailAPI, store session.Store, startID int, onUnauthorized func()) *Detail {
	d := &Detail{api: api, earners: EarnerPlaceholder}

	load := func(ctx context.Context) (DetailData, error) {
		badges, err := api.ListBadges(ctx)
		if err != nil {
			return DetailData{}, err
		}
		index := 0
		for i, b := range badges {
			if b.ID == startID {
				index = i
				break
			}
		}
		data := DetailData{Badges: badges, Index: index}
		if current, ok := data.Current(); ok {
			d.fetchEarners(ctx, current.ID)
		}
		return data, nil
	}

	d.rec = viewstate.New(store, load, viewstate.WithUnauthorizedHandler[DetailData](onUnauthorized))
	return d
}

// Load fetches the screen's data.
func (d *Detail) Load(ctx context.Context) {
	d.rec.Reload(ctx)
}

// State returns the render state.
func (d *Detail) State() viewstate.State[DetailData] {
	return d.rec.State()
}

// Earners returns the display value for the earner metric, already degraded
// to the placeholder when the count could not be fetched.
func (d *Detail) Earners() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.earners
}

// Next moves to the following badge and refreshes only the earner count.
func (d *Detail) Next(ctx context.Context) {
	d.shift(ctx, +1)
}

// Prev moves to the preceding badge and refreshes only the earner count.
func (d *Detail) Prev(ctx context.Context) {
	d.shift(ctx, -1)
}

// Select jumps to the badge with the given id, if present.
func (d *Detail) Select(ctx context.Context, badgeID int) {
	state := d.rec.State()
	if state.Phase != viewstate.PhaseSuccess {
		return
	}
	for i, b := range state.Data.Badges {
		if b.ID == badgeID {
			d.setIndex(ctx, i)
			return
		}
	}
}

func (d *Detail) shift(ctx context.Context, delta int) {
	state := d.rec.State()
	if state.Phase != viewstate.PhaseSuccess {
		return
	}
	next := state.Data.Index + delta
	if next < 0 || next >= len(state.Data.Badges) {
		return
	}
	d.setIndex(ctx, next)
}

func (d *Detail) setIndex(ctx context.Context, index int) {
	d.rec.Update(func(data *DetailData) {
		data.Index = index
	})
	if current, ok := d.rec.State().Data.Current(); ok {
		d.fetchEarners(ctx, current.ID)
	}
}

func (d *Detail) fetchEarners(ctx context.Context, badgeID int) {
	value := viewstate.Secondary(ctx, EarnerPlaceholder, func(ctx context.Context) (string, error) {
		n, err := d.api.EarnerCount(ctx, badgeID)
		if err != nil {
			return "", err
		}
		return strconv.Itoa(n), nil
	})

	d.mu.Lock()
	d.earners = value
	d.mu.Unlock()
}
