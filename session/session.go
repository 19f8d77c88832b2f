// Package session owns the client's authentication state: the cached
// user, the advisory is-authenticated flag, and every transition between
// them (login, registration, OAuth handoff, refresh, logout).
//
// The service is an explicitly constructed instance, not ambient state:
// guards and interceptors receive it as a dependency. Navigation is never
// performed here - transitions return or emit the intended route so the
// surrounding UI (or a test) decides what to do with it.
package session

import (
	"sync"
	"time"

	"github.com/fittrack/go-fitness-client/notify"
	"github.com/fittrack/go-fitness-client/routes"
	"github.com/fittrack/go-fitness-client/storage"
	"github.com/fittrack/go-fitness-client/token"
	"github.com/fittrack/go-fitness-client/users"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// defaultCheckInterval is how often the proactive refresh watcher wakes
// up when no explicit interval is configured.
const defaultCheckInterval = 30 * time.Second

// Errors returned by session transitions.
var (
	// ErrNoRefreshToken is returned by Refresh when no refresh token is
	// stored; re-login is the only way forward.
	ErrNoRefreshToken = errors.New("no refresh token available")

	// ErrInvalidToken is returned by HandleOAuthToken for tokens whose
	// payload cannot be decoded.
	ErrInvalidToken = errors.New("invalid token")
)

// State is a snapshot of the session. IsAuthenticated implies User is
// set and a non-expired access token existed when the state was computed;
// the token may expire between checks, which the server catches.
type State struct {
	User            *users.User
	IsAuthenticated bool
}

// Service is the session manager. One instance per process.
type Service struct {
	store    *storage.Store
	api      AuthAPI
	notifier notify.Notifier
	log      zerolog.Logger
	nowTime  func() time.Time

	threshold     time.Duration // refresh when time-to-expiry falls below this
	checkInterval time.Duration // proactive watcher poll interval

	mu    sync.RWMutex
	state State

	subsMu  sync.Mutex
	subs    map[int]chan State
	nextSub int
	nav     chan routes.Route

	refreshGroup singleflight.Group

	changes storage.ChangeNotifier

	done      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// Option configures the Service.
type Option func(*Service)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) Option {
	return func(s *Service) {
		s.nowTime = nowFunc
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Service) {
		s.log = log
	}
}

// WithNotifier sets the user-facing notifier.
func WithNotifier(n notify.Notifier) Option {
	return func(s *Service) {
		s.notifier = n
	}
}

// WithRefreshThreshold sets how close to expiry the access token may get
// before the proactive watcher refreshes it. Defaults to five minutes.
func WithRefreshThreshold(d time.Duration) Option {
	return func(s *Service) {
		s.threshold = d
	}
}

// WithCheckInterval sets how often the proactive watcher re-evaluates the
// token in addition to evaluating on every state change. A value of zero
// or less means the default thirty seconds.
func WithCheckInterval(d time.Duration) Option {
	return func(s *Service) {
		s.checkInterval = d
	}
}

// WithChangeNotifier subscribes the session to external storage changes
// so concurrent processes of the same profile stay consistent. The
// service takes ownership and closes the notifier on Close.
func WithChangeNotifier(cn storage.ChangeNotifier) Option {
	return func(s *Service) {
		s.changes = cn
	}
}

// New creates the session service and computes its initial state from
// storage: authenticated iff a non-expired access token is present. No
// network call is made. The caller must Close the service.
func New(store *storage.Store, api AuthAPI, options ...Option) (*Service, error) {
	if store == nil {
		return nil, errors.New("[session.New] store is required")
	}
	if api == nil {
		return nil, errors.New("[session.New] auth API is required")
	}

	s := &Service{
		store:         store,
		api:           api,
		notifier:      notify.NopNotifier{},
		log:           zerolog.Nop(),
		nowTime:       time.Now,
		threshold:     token.DefaultRefreshThreshold,
		checkInterval: defaultCheckInterval,
		subs:          make(map[int]chan State),
		nav:           make(chan routes.Route, 4),
		done:          make(chan struct{}),
	}
	for _, opt := range options {
		opt(s)
	}
	if s.checkInterval <= 0 {
		s.checkInterval = defaultCheckInterval
	}

	raw := store.GetToken()
	authenticated := raw != "" && !token.IsExpired(raw)

	var user *users.User
	if cached, ok := storage.Get[users.User](store, storage.KeyUser); ok {
		user = &cached
	}
	s.state = State{User: user, IsAuthenticated: authenticated}

	s.wg.Add(1)
	go s.watchRefresh()
	if s.changes != nil {
		s.wg.Add(1)
		go s.watchStorage()
	}
	return s, nil
}

// Close stops the watchers and closes all subscriber channels. It is safe
// to call more than once.
func (s *Service) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.done)
		if s.changes != nil {
			err = s.changes.Close()
		}
		s.wg.Wait()

		s.subsMu.Lock()
		for id, ch := range s.subs {
			close(ch)
			delete(s.subs, id)
		}
		s.subsMu.Unlock()
	})
	return err
}

// State returns a snapshot of the current session state.
func (s *Service) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// CurrentUser returns the cached user, or nil when signed out.
func (s *Service) CurrentUser() *users.User {
	return s.State().User
}

// IsAuthenticated reports whether the session is authenticated.
func (s *Service) IsAuthenticated() bool {
	return s.State().IsAuthenticated
}

// Role returns the current user's role. ok is false when signed out.
func (s *Service) Role() (role users.RoleType, ok bool) {
	user := s.CurrentUser()
	if user == nil {
		return "", false
	}
	return user.Role, true
}

// HasRole reports whether the current user holds the given role.
func (s *Service) HasRole(role users.RoleType) bool {
	current, ok := s.Role()
	return ok && current == role
}

// IsAdmin reports whether the current user is an administrator.
func (s *Service) IsAdmin() bool {
	return s.HasRole(users.RoleAdmin)
}

// IsUser reports whether the current user holds the regular USER role.
func (s *Service) IsUser() bool {
	return s.HasRole(users.RoleUser)
}

// Token returns the stored access token, or "" when none is stored.
func (s *Service) Token() string {
	return s.store.GetToken()
}

// Subscribe registers an observer of session state. Every completed
// transition is delivered as a State snapshot. The returned function
// unsubscribes.
func (s *Service) Subscribe() (<-chan State, func()) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()

	id := s.nextSub
	s.nextSub++
	ch := make(chan State, 8)
	s.subs[id] = ch

	unsubscribe := func() {
		s.subsMu.Lock()
		defer s.subsMu.Unlock()
		if existing, ok := s.subs[id]; ok {
			close(existing)
			delete(s.subs, id)
		}
	}
	return ch, unsubscribe
}

// Navigations emits the routes forced transitions want the UI to go to:
// the login route after a forced logout or an external token removal.
// Routes returned directly from Login/Register/HandleOAuthToken are not
// repeated here.
func (s *Service) Navigations() <-chan routes.Route {
	return s.nav
}

// setState replaces the state and notifies subscribers and the proactive
// refresh watcher.
func (s *Service) setState(user *users.User, authenticated bool) {
	s.mu.Lock()
	s.state = State{User: user, IsAuthenticated: authenticated}
	snapshot := s.state
	s.mu.Unlock()

	s.subsMu.Lock()
	for _, ch := range s.subs {
		select {
		case ch <- snapshot:
		default:
			s.log.Warn().Msg("session subscriber too slow, dropping state update")
		}
	}
	s.subsMu.Unlock()
}

func (s *Service) emitNav(route routes.Route) {
	select {
	case s.nav <- route:
	default:
	}
}
