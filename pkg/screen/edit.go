package screen

import (
	"context"
	"errors"
	"sync"

	"github.com/openbadger/badgekit/pkg/apiclient"
	"github.com/openbadger/badgekit/pkg/profile"
	"github.com/openbadger/badgekit/pkg/session"
	"github.com/openbadger/badgekit/pkg/viewstate"
)

// EditAPI is the slice of the API client the profile editor needs.
type EditAPI interface {
	CurrentUser(ctx context.Context, token string) (apiclient.User, error)
	UpdateProfile(ctx context.Context, token string, update apiclient.ProfileUpdate) (string, error)
	RemoveProfileImage(ctx context.Context, token string) error
}

// EditForm is the editable state of the profile editor. Email is shown but
// never submitted; it cannot be changed from the client.
type EditForm struct {
	FirstName       string
	LastName        string
	Email           string
	CurrentPassword string
	NewPassword     string
	Badges          []apiclient.UserBadge
	Preferences     profile.Preferences
	// RemoteImage is the stored avatar reference; PickedImage a newly
	// selected replacement not yet uploaded.
	RemoteImage *string
	PickedImage *apiclient.ImageUpload
}

// Editor is the edit-profile screen.
type Editor struct {
	api   EditAPI
	store session.Store
	rec   *viewstate.Reconciler[EditForm]

	onUnauthorized func()

	mu        sync.Mutex
	saving    bool
	submitted EditForm
}

// NewEditor creates the profile editor model.
func NewEditor(api EditAPI, store session.Store, onUnauthorized func()) *Editor {
	if onUnauthorized == nil {
		onUnauthorized = func() {}
	}
	e := &Editor{api: api, store: store, onUnauthorized: onUnauthorized}

	load := func(ctx context.Context) (EditForm, error) {
		sess, err := store.Get(ctx)
		if err != nil {
			return EditForm{}, err
		}
		user, err := api.CurrentUser(ctx, sess.Token)
		if err != nil {
			return EditForm{}, err
		}

		form := EditForm{
			FirstName:   user.FirstName,
			LastName:    user.LastName,
			Email:       user.Email,
			Badges:      user.Badges,
			RemoteImage: user.Image,
			// Defaults match the form's initial toggles; stored preferences
			// win when the profile carries them.
			Preferences: profile.Preferences{BadgeReceived: true, ProfileUpdate: true, AdminDaily: false},
		}
		if p := user.EmailPreferences; p != nil {
			form.Preferences = profile.Preferences{
				BadgeReceived: p.BadgeReceived,
				ProfileUpdate: p.ProfileUpdate,
				AdminDaily:    p.AdminDaily,
			}
		}
		return form, nil
	}

	e.rec = viewstate.New(store, load, viewstate.WithUnauthorizedHandler[EditForm](onUnauthorized))
	return e
}

// Load seeds the form from the current profile.
func (e *Editor) Load(ctx context.Context) {
	e.rec.Reload(ctx)
}

// State returns the render state.
func (e *Editor) State() viewstate.State[EditForm] {
	return e.rec.State()
}

// Apply mutates the form state (typed fields, toggles, picked image).
func (e *Editor) Apply(fn func(*EditForm)) {
	e.rec.Update(fn)
}

// SetBadgeVisibility toggles one owned badge's public flag.
func (e *Editor) SetBadgeVisibility(badgeID int, public bool) {
	e.rec.Update(func(form *EditForm) {
		for i := range form.Badges {
			if form.Badges[i].BadgeID == badgeID {
				form.Badges[i].IsPublic = public
			}
		}
	})
}

// Save builds the mutation from the form and submits it as one atomic
// multipart update. Password fields are cleared from the form after every
// attempt, success or failure; the rest of the form survives failure so the
// user can retry.
func (e *Editor) Save(ctx context.Context) (string, error) {
	e.mu.Lock()
	if e.saving {
		e.mu.Unlock()
		return "", ErrSaveInFlight
	}
	e.saving = true
	e.mu.Unlock()
	defer func() {
		e.mu.Lock()
		e.saving = false
		e.mu.Unlock()
	}()
	defer e.clearPasswords()

	state := e.rec.State()
	if state.Phase != viewstate.PhaseSuccess {
		return "", ErrFormNotLoaded
	}
	form := state.Data

	visibility := make([]profile.BadgeVisibility, 0, len(form.Badges))
	for _, b := range form.Badges {
		visibility = append(visibility, profile.BadgeVisibility{BadgeID: b.BadgeID, IsPublic: b.IsPublic})
	}

	update, err := profile.Mutation{
		FirstName:       form.FirstName,
		LastName:        form.LastName,
		CurrentPassword: form.CurrentPassword,
		NewPassword:     form.NewPassword,
		Badges:          visibility,
		Preferences:     form.Preferences,
		Image:           form.PickedImage,
	}.Build()
	if err != nil {
		return "", err
	}

	sess, err := e.store.Get(ctx)
	if err != nil {
		return "", err
	}
	msg, err := e.api.UpdateProfile(ctx, sess.Token, update)
	if err != nil {
		return "", e.clearOnUnauthorized(ctx, err)
	}
	return msg, nil
}

// RemoveImage deletes the stored avatar and discards any picked replacement.
func (e *Editor) RemoveImage(ctx context.Context) error {
	sess, err := e.store.Get(ctx)
	if err != nil {
		return err
	}
	if err := e.api.RemoveProfileImage(ctx, sess.Token); err != nil {
		return e.clearOnUnauthorized(ctx, err)
	}
	e.rec.Update(func(form *EditForm) {
		form.RemoteImage = nil
		form.PickedImage = nil
	})
	return nil
}

// clearOnUnauthorized enforces the 401 contract on the editor's write
// operations, which go to the API directly rather than through the
// reconciler: the session is cleared and the redirect fired, same as for
// any load.
func (e *Editor) clearOnUnauthorized(ctx context.Context, err error) error {
	if errors.Is(err, apiclient.ErrUnauthorized) {
		_ = e.store.Clear(ctx)
		e.onUnauthorized()
	}
	return err
}

func (e *Editor) clearPasswords() {
	e.rec.Update(func(form *EditForm) {
		form.CurrentPassword = ""
		form.NewPassword = ""
	})
}
