package session_test

import (
	"context"
	"sync"
	"time"

	"github.com/fittrack/go-fitness-client/auth"
	"github.com/fittrack/go-fitness-client/storage"
	"github.com/fittrack/go-fitness-client/users"
)

// fakeAuthAPI is an in-memory AuthAPI with scriptable responses.
type fakeAuthAPI struct {
	mu sync.Mutex

	loginResp  *auth.Response
	loginErr   error
	loginCalls int

	registerResp  *auth.Response
	registerErr   error
	registerCalls int

	refreshResp  *auth.TokenRefreshResponse
	refreshErr   error
	refreshCalls int
	refreshDelay time.Duration

	profileResp  *users.User
	profileErr   error
	profileCalls int
}

func newFakeAuthAPI() *fakeAuthAPI {
	return &fakeAuthAPI{}
}

func (f *fakeAuthAPI) Login(_ context.Context, _ auth.LoginRequest) (*auth.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loginCalls++
	return f.loginResp, f.loginErr
}

func (f *fakeAuthAPI) Register(_ context.Context, _ auth.RegisterRequest) (*auth.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.registerCalls++
	return f.registerResp, f.registerErr
}

func (f *fakeAuthAPI) Refresh(_ context.Context, _ string) (*auth.TokenRefreshResponse, error) {
	f.mu.Lock()
	f.refreshCalls++
	delay := f.refreshDelay
	resp, err := f.refreshResp, f.refreshErr
	f.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}
	return resp, err
}

func (f *fakeAuthAPI) Profile(_ context.Context) (*users.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.profileCalls++
	return f.profileResp, f.profileErr
}

func (f *fakeAuthAPI) calls() (login, register, refresh, profile int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loginCalls, f.registerCalls, f.refreshCalls, f.profileCalls
}

// fakeChangeNotifier feeds scripted storage events to the session.
type fakeChangeNotifier struct {
	ch        chan storage.Event
	closeOnce sync.Once
}

func newFakeChangeNotifier() *fakeChangeNotifier {
	return &fakeChangeNotifier{ch: make(chan storage.Event, 8)}
}

func (f *fakeChangeNotifier) Events() <-chan storage.Event { return f.ch }

func (f *fakeChangeNotifier) Close() error {
	f.closeOnce.Do(func() { close(f.ch) })
	return nil
}

func (f *fakeChangeNotifier) emit(ev storage.Event) { f.ch <- ev }
