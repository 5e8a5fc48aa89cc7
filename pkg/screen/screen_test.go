package screen_test

import (
	"context"
	"errors"
	"sync"

	"github.com/openbadger/badgekit/pkg/apiclient"
)

// fakeAPI implements every screen's API slice with per-endpoint call counts
// and programmable failures.
type fakeAPI struct {
	mu sync.Mutex

	badges []apiclient.Badge
	earned []apiclient.Badge
	user   apiclient.User

	listErr    error
	earnedErr  error
	userErr    error
	earnersErr error
	updateErr  error
	removeErr  error

	earnerCounts map[int]int

	listCalls    int
	earnedCalls  int
	userCalls    int
	earnersCalls int
	updateCalls  int
	removeCalls  int

	lastUpdate apiclient.ProfileUpdate
}

func (f *fakeAPI) ListBadges(ctx context.Context) ([]apiclient.Badge, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.badges, nil
}

func (f *fakeAPI) ListEarnedBadges(ctx context.Context, token string) ([]apiclient.Badge, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.earnedCalls++
	if f.earnedErr != nil {
		return nil, f.earnedErr
	}
	return f.earned, nil
}

func (f *fakeAPI) CurrentUser(ctx context.Context, token string) (apiclient.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.userCalls++
	if f.userErr != nil {
		return apiclient.User{}, f.userErr
	}
	return f.user, nil
}

func (f *fakeAPI) EarnerCount(ctx context.Context, badgeID int) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.earnersCalls++
	if f.earnersErr != nil {
		return 0, f.earnersErr
	}
	n, ok := f.earnerCounts[badgeID]
	if !ok {
		return 0, errors.New("unknown badge")
	}
	return n, nil
}

func (f *fakeAPI) UpdateProfile(ctx context.Context, token string, update apiclient.ProfileUpdate) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updateCalls++
	f.lastUpdate = update
	if f.updateErr != nil {
		return "", f.updateErr
	}
	return "Profile updated successfully", nil
}

func (f *fakeAPI) RemoveProfileImage(ctx context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removeCalls++
	return f.removeErr
}

func strptr(s string) *string { return &s }

func catalogOf(ids ...int) []apiclient.Badge {
	badges := make([]apiclient.Badge, 0, len(ids))
	names := map[int]string{
		1: "Cyber Titan",
		2: "Threat Hunter",
		3: "OSINT Scout",
		4: "Red Team Operator",
	}
	for _, id := range ids {
		badges = append(badges, apiclient.Badge{ID: id, Name: names[id]})
	}
	return badges
}
