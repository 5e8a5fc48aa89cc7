package stubapi_test

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/openbadger/badgekit/pkg/apiclient"
	"github.com/openbadger/badgekit/pkg/stubapi"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStub(t *testing.T, opts ...stubapi.Option) (*stubapi.Server, *apiclient.Client) {
	t.Helper()
	srv := stubapi.New(opts...)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, apiclient.New(apiclient.WithBaseURL(ts.URL))
}

func TestLoginCycle(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	srv, client := newStub(t, stubapi.WithSeedCatalog())
	require.NoError(t, srv.SeedAccount(ctx, "jane@example.com", "Jane", "Doe", "password123",
		stubapi.UserBadge{BadgeID: 1, IsPublic: true},
	))

	t.Run("wrong password is a 401", func(t *testing.T) {
		_, err := client.Login(ctx, "jane@example.com", "wrong")
		require.ErrorIs(t, err, apiclient.ErrUnauthorized)
	})

	t.Run("unknown account is a 401", func(t *testing.T) {
		_, err := client.Login(ctx, "nobody@example.com", "password123")
		require.ErrorIs(t, err, apiclient.ErrUnauthorized)
	})

	t.Run("valid credentials yield a working token", func(t *testing.T) {
		token, err := client.Login(ctx, "jane@example.com", "password123")
		require.NoError(t, err)
		require.NotEmpty(t, token)

		user, err := client.CurrentUser(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, "Jane", user.FirstName)
		assert.Equal(t, "jane@example.com", user.Email)
		require.Len(t, user.Badges, 1)
		assert.Equal(t, 1, user.Badges[0].BadgeID)

		earned, err := client.ListEarnedBadges(ctx, token)
		require.NoError(t, err)
		require.Len(t, earned, 1)
		assert.Equal(t, "Cyber Titan", earned[0].Name)
	})

	t.Run("garbage token is a 401", func(t *testing.T) {
		_, err := client.CurrentUser(ctx, "not-a-token")
		require.ErrorIs(t, err, apiclient.ErrUnauthorized)
	})
}

func TestRegistrationCycle(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	srv, client := newStub(t)

	require.NoError(t, client.SendRegisterOTP(ctx, "new@example.com"))
	otp, ok := srv.OTPFor("new@example.com")
	require.True(t, ok)

	t.Run("wrong OTP is rejected", func(t *testing.T) {
		err := client.Register(ctx, apiclient.RegisterRequest{
			Email: "new@example.com", FirstName: "New", LastName: "User",
			OTP: otp + 1, Password: "password123",
		})
		require.Error(t, err)
		assert.True(t, apiclient.IsValidationError(err))
	})

	t.Run("correct OTP creates a loginable account", func(t *testing.T) {
		require.NoError(t, client.Register(ctx, apiclient.RegisterRequest{
			Email: "new@example.com", FirstName: "New", LastName: "User",
			OTP: otp, Password: "password123",
		}))

		token, err := client.Login(ctx, "new@example.com", "password123")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
	})

	t.Run("OTP is single use", func(t *testing.T) {
		err := client.Register(ctx, apiclient.RegisterRequest{
			Email: "new@example.com", FirstName: "New", LastName: "User",
			OTP: otp, Password: "password123",
		})
		require.Error(t, err)
	})

	t.Run("existing account cannot request a signup OTP", func(t *testing.T) {
		err := client.SendRegisterOTP(ctx, "new@example.com")
		require.Error(t, err)
		assert.True(t, apiclient.IsValidationError(err))
	})
}

func TestPasswordResetCycle(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	srv, client := newStub(t)
	require.NoError(t, srv.SeedAccount(ctx, "jane@example.com", "Jane", "Doe", "old-password"))

	t.Run("unknown account cannot request a reset OTP", func(t *testing.T) {
		err := client.SendResetOTP(ctx, "nobody@example.com")
		require.Error(t, err)
	})

	t.Run("reset with the emailed code changes the password", func(t *testing.T) {
		require.NoError(t, client.SendResetOTP(ctx, "jane@example.com"))
		otp, ok := srv.OTPFor("jane@example.com")
		require.True(t, ok)

		require.NoError(t, client.ResetPassword(ctx, "jane@example.com", otp, "fresh-password"))

		_, err := client.Login(ctx, "jane@example.com", "old-password")
		require.ErrorIs(t, err, apiclient.ErrUnauthorized)
		token, err := client.Login(ctx, "jane@example.com", "fresh-password")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
	})
}

func TestCatalogEndpoints(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	_, client := newStub(t, stubapi.WithSeedCatalog())

	t.Run("catalog lists seeded badges", func(t *testing.T) {
		badges, err := client.ListBadges(ctx)
		require.NoError(t, err)
		require.NotEmpty(t, badges)
		assert.Equal(t, "Cyber Titan", badges[0].Name)
	})

	t.Run("earner count is public", func(t *testing.T) {
		n, err := client.EarnerCount(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, 128, n)
	})

	t.Run("unknown badge is a 404", func(t *testing.T) {
		_, err := client.EarnerCount(ctx, 9999)
		require.ErrorIs(t, err, apiclient.ErrNotFound)
	})
}

func TestProfileUpdateCycle(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	srv, client := newStub(t, stubapi.WithSeedCatalog())
	require.NoError(t, srv.SeedAccount(ctx, "jane@example.com", "Jane", "Doe", "password123",
		stubapi.UserBadge{BadgeID: 1, IsPublic: true},
	))
	token, err := client.Login(ctx, "jane@example.com", "password123")
	require.NoError(t, err)

	t.Run("update changes names, visibility, preferences and image", func(t *testing.T) {
		msg, err := client.UpdateProfile(ctx, token, apiclient.ProfileUpdate{
			FirstName:            "Janet",
			LastName:             "Doe",
			BadgesJSON:           `[{"badgeId":"1","isPublic":false}]`,
			EmailPreferencesJSON: `{"badgeReceived":true,"profileUpdate":false,"adminDaily":true}`,
			Image: &apiclient.ImageUpload{
				Filename:    "avatar.png",
				ContentType: "image/png",
				Data:        []byte{0x89, 'P', 'N', 'G'},
			},
		})
		require.NoError(t, err)
		assert.NotEmpty(t, msg)

		user, err := client.CurrentUser(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, "Janet", user.FirstName)
		require.Len(t, user.Badges, 1)
		assert.False(t, user.Badges[0].IsPublic)
		require.NotNil(t, user.EmailPreferences)
		assert.True(t, user.EmailPreferences.AdminDaily)
		assert.NotNil(t, user.Image)
	})

	t.Run("password change requires the current password", func(t *testing.T) {
		_, err := client.UpdateProfile(ctx, token, apiclient.ProfileUpdate{
			FirstName: "Janet", LastName: "Doe",
			Password: "wrong", NewPassword: "next-password",
		})
		require.Error(t, err)
		assert.True(t, apiclient.IsValidationError(err))
	})

	t.Run("correct current password rotates the credential", func(t *testing.T) {
		_, err := client.UpdateProfile(ctx, token, apiclient.ProfileUpdate{
			FirstName: "Janet", LastName: "Doe",
			Password: "password123", NewPassword: "next-password",
		})
		require.NoError(t, err)

		_, err = client.Login(ctx, "jane@example.com", "next-password")
		require.NoError(t, err)
	})

	t.Run("remove image clears the avatar", func(t *testing.T) {
		require.NoError(t, client.RemoveProfileImage(ctx, token))

		user, err := client.CurrentUser(ctx, token)
		require.NoError(t, err)
		assert.Nil(t, user.Image)
	})

	t.Run("profile endpoints reject missing tokens", func(t *testing.T) {
		_, err := client.CurrentUser(ctx, "")
		require.ErrorIs(t, err, apiclient.ErrUnauthorized)
	})
}
