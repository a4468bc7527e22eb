package usecase

import (
	"context"
	"sync"

	"servicehub/internal/domain/entity"
	"servicehub/pkg/errors"
	"servicehub/pkg/logger"
)

// SessionUseCase owns the identity lifecycle: bootstrapping an anonymous
// or credentialed identity, resolving its profile, and handing out
// sessions that the view layer drives.
type SessionUseCase struct {
	profileUC  *ProfileUseCase
	authClient FirebaseAuthClient
	names      *DisplayNameCache
}

func NewSessionUseCase(profileUC *ProfileUseCase, authClient FirebaseAuthClient, names *DisplayNameCache) *SessionUseCase {
	return &SessionUseCase{
		profileUC:  profileUC,
		authClient: authClient,
		names:      names,
	}
}

// Session is the per-client state: the resolved identity, its profile (nil
// until registered), the current route, and the live subscriptions opened
// for the current view.
type Session struct {
	Identity string          `json:"identity"`
	Token    string          `json:"token,omitempty"`
	Profile  *entity.Profile `json:"profile,omitempty"`
	Route    Route           `json:"route"`

	mu    sync.Mutex
	stops []func()
}

// Bootstrap establishes an identity and resolves its registration state.
// A supplied credential is verified; without one an anonymous identity is
// minted and a custom token returned for the client to sign in with.
func (uc *SessionUseCase) Bootstrap(ctx context.Context, credential string) (*Session, error) {
	var identity, token string
	var err error

	if credential != "" {
		identity, err = uc.authClient.VerifyToken(ctx, credential)
		if err != nil {
			return nil, errors.Unauthorized("Invalid or expired credential", err)
		}
	} else {
		identity, err = uc.authClient.CreateAnonymousUser(ctx)
		if err != nil {
			return nil, errors.Internal("Failed to establish anonymous identity", err)
		}
		token, err = uc.authClient.GenerateToken(ctx, identity)
		if err != nil {
			return nil, errors.Internal("Failed to issue session token", err)
		}
		logger.Info("Anonymous identity established: %s", identity)
	}

	session := &Session{
		Identity: identity,
		Token:    token,
		Route:    Route{Page: PageHome},
	}

	if err := uc.Refresh(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

// Refresh re-runs profile resolution for the session's identity and
// routes to registration or the role-appropriate dashboard. Called after
// bootstrap and after any identity change.
func (uc *SessionUseCase) Refresh(ctx context.Context, session *Session) error {
	profile, err := uc.profileUC.Resolve(ctx, session.Identity)
	if err != nil {
		if errors.Is(err, "NOT_FOUND") {
			session.Profile = nil
			session.Route = Transition(session.Route, ProfileMissing{})
			return nil
		}
		return err
	}

	session.Profile = profile
	session.Route = Transition(session.Route, ProfileResolved{Role: profile.Role})
	return nil
}

// Register creates (or overwrites) the profile for the session's identity
// and advances the route to the matching dashboard.
func (uc *SessionUseCase) Register(ctx context.Context, session *Session, displayName, role string) (*entity.Profile, error) {
	profile, err := uc.profileUC.Register(ctx, session.Identity, displayName, role)
	if err != nil {
		return nil, err
	}

	// The cached name may predate this registration.
	uc.names.Evict(session.Identity)

	session.Profile = profile
	session.Route = Transition(session.Route, Registered{Role: profile.Role})
	return profile, nil
}

func (uc *SessionUseCase) Names() *DisplayNameCache {
	return uc.names
}

// Navigate applies a navigation event. Subscriptions belonging to the
// previous view are cancelled before the new route takes effect, so a
// torn-down view can never receive a delivery.
func (s *Session) Navigate(event NavEvent) Route {
	s.mu.Lock()
	next := Transition(s.Route, event)
	changed := next != s.Route
	s.Route = next
	var stops []func()
	if changed {
		stops = s.stops
		s.stops = nil
	}
	s.mu.Unlock()

	for _, stop := range stops {
		stop()
	}
	return next
}

// Track registers a subscription disposer with the current view.
func (s *Session) Track(stop func()) {
	s.mu.Lock()
	s.stops = append(s.stops, stop)
	s.mu.Unlock()
}

// End cancels everything the session still holds open.
func (s *Session) End() {
	s.mu.Lock()
	stops := s.stops
	s.stops = nil
	s.mu.Unlock()

	for _, stop := range stops {
		stop()
	}
}
