package usecase

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"servicehub/pkg/errors"
)

func newSessionFixture(t *testing.T) (*SessionUseCase, *fakeProfileRepo, *fakeAuthClient) {
	t.Helper()

	profileRepo := newFakeProfileRepo()
	authClient := &fakeAuthClient{}
	names := NewDisplayNameCache(profileRepo)
	uc := NewSessionUseCase(NewProfileUseCase(profileRepo), authClient, names)
	return uc, profileRepo, authClient
}

func TestBootstrapAnonymous(t *testing.T) {
	uc, _, _ := newSessionFixture(t)

	session, err := uc.Bootstrap(context.Background(), "")
	require.NoError(t, err)

	assert.NotEmpty(t, session.Identity)
	assert.NotEmpty(t, session.Token)
	assert.Nil(t, session.Profile)
	// An unregistered identity lands on registration.
	assert.Equal(t, PageRegister, session.Route.Page)
}

func TestBootstrapWithCredential(t *testing.T) {
	uc, profileRepo, _ := newSessionFixture(t)
	profiles := NewProfileUseCase(profileRepo)
	_, err := profiles.Register(context.Background(), "verified-tok", "Sam", "seller")
	require.NoError(t, err)

	session, err := uc.Bootstrap(context.Background(), "tok")
	require.NoError(t, err)

	assert.Equal(t, "verified-tok", session.Identity)
	assert.Empty(t, session.Token)
	require.NotNil(t, session.Profile)
	assert.Equal(t, PageSellerDashboard, session.Route.Page)
}

func TestBootstrapInvalidCredential(t *testing.T) {
	uc, _, authClient := newSessionFixture(t)
	authClient.verifyErr = fmt.Errorf("token expired")

	_, err := uc.Bootstrap(context.Background(), "stale")

	assert.True(t, errors.Is(err, "UNAUTHORIZED"))
}

func TestRegisterAdvancesRoute(t *testing.T) {
	uc, _, _ := newSessionFixture(t)
	ctx := context.Background()

	session, err := uc.Bootstrap(ctx, "")
	require.NoError(t, err)
	require.Equal(t, PageRegister, session.Route.Page)

	profile, err := uc.Register(ctx, session, "Bea", "buyer")
	require.NoError(t, err)

	assert.Equal(t, "Bea", profile.DisplayName)
	assert.Equal(t, PageBuyerDashboard, session.Route.Page)
	assert.Equal(t, profile, session.Profile)
}

func TestRegisterRefreshesCachedName(t *testing.T) {
	uc, _, _ := newSessionFixture(t)
	ctx := context.Background()

	session, err := uc.Bootstrap(ctx, "")
	require.NoError(t, err)

	// Prime the cache while the identity is still unregistered.
	assert.Equal(t, UnknownUserName, uc.Names().Resolve(ctx, session.Identity))

	_, err = uc.Register(ctx, session, "Bea", "buyer")
	require.NoError(t, err)

	assert.Equal(t, "Bea", uc.Names().Resolve(ctx, session.Identity))
}

func TestNavigateReleasesSubscriptionsOnRouteChange(t *testing.T) {
	session := &Session{Route: Route{Page: PageBuyerDashboard}}

	released := 0
	session.Track(func() { released++ })
	session.Track(func() { released++ })

	// Same destination: the view did not change, feeds stay live.
	session.Navigate(GoHome{Role: "buyer"})
	assert.Equal(t, 0, released)

	next := session.Navigate(OpenChats{})
	assert.Equal(t, PageChatList, next.Page)
	assert.Equal(t, 2, released)

	// Already released disposers must not fire again.
	session.Navigate(Back{})
	assert.Equal(t, 2, released)
}

func TestEndReleasesEverything(t *testing.T) {
	session := &Session{Route: Route{Page: PageChatList}}

	released := 0
	session.Track(func() { released++ })

	session.End()
	assert.Equal(t, 1, released)

	session.End()
	assert.Equal(t, 1, released)
}
