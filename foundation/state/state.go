package state

import "sync"

type Service int

const (
	Redis Service = iota
	Dashboard
)

// State tracks which publishing sinks are still live. A sink that fails is
// switched off so the frame pipeline keeps running without it.
type State struct {
	sync.RWMutex

	redis     bool
	dashboard bool
}

func NewState() *State {
	return &State{
		redis:     true,
		dashboard: true,
	}
}

func (s *State) Get(svc Service) bool {
	s.RLock()
	defer s.RUnlock()
	{
		switch svc {
		case Redis:
			return s.redis

		case Dashboard:
			return s.dashboard
		}
	}
	return false
}

func (s *State) Set(svc Service, state bool) {
	s.Lock()
	defer s.Unlock()
	{
		switch svc {
		case Redis:
			s.redis = state

		case Dashboard:
			s.dashboard = state
		}
	}
}
