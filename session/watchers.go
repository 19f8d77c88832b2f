package session

import (
	"context"
	"time"

	"github.com/fittrack/go-fitness-client/routes"
	"github.com/fittrack/go-fitness-client/storage"
	"github.com/fittrack/go-fitness-client/users"
)

// watchRefresh is the proactive refresh watcher: it re-evaluates the
// token on a fixed interval. State changes also feed RefreshIfNeeded
// through the transition paths themselves, so the interval is a floor on
// detection latency while the process is otherwise idle.
func (s *Service) watchRefresh() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.RefreshIfNeeded(context.Background())
		}
	}
}

// watchStorage keeps this process consistent with external mutations of
// the credential slots: another process clearing the access token forces
// a local logout-equivalent reset, another process writing one makes this
// session adopt the stored user.
func (s *Service) watchStorage() {
	defer s.wg.Done()

	for {
		select {
		case <-s.done:
			return
		case ev, ok := <-s.changes.Events():
			if !ok {
				return
			}
			s.handleStorageEvent(ev)
		}
	}
}

func (s *Service) handleStorageEvent(ev storage.Event) {
	if ev.Key != storage.KeyAccessToken {
		return
	}

	if ev.Removed || s.store.GetToken() == "" {
		s.log.Info().Msg("access token cleared externally, resetting session")
		s.clearAuthData()
		s.emitNav(routes.RouteLogin)
		return
	}

	if user, ok := storage.Get[users.User](s.store, storage.KeyUser); ok {
		s.log.Info().Msg("access token updated externally, adopting session")
		s.setState(&user, true)
	}
}
