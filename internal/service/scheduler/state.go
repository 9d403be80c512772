package scheduler

import (
	"slices"
	"sync"

	"examflow/internal/config"
	"examflow/internal/domain"
	"examflow/internal/model"
)

// State is the scheduling input pushed by the host page. Check receives it
// by value; callers take a Snapshot from the StateStore.
type State struct {
	Exams      []model.Exam      `json:"exams"`
	Locale     domain.Locale     `json:"lang"`
	Palette    []string          `json:"palette"`
	Colors     map[string]string `json:"colors"`
	Permission domain.Permission `json:"permission"`
}

// StateStore holds the latest State for the timer and the message bridge.
type StateStore struct {
	mu    sync.RWMutex
	state State
}

func NewStateStore(cfg *config.Config) (*StateStore, error) {
	permission, err := domain.ParsePermission(cfg.NotificationPermission)
	if err != nil {
		return nil, err
	}
	return &StateStore{state: State{
		Locale:     domain.DefaultLocale,
		Colors:     map[string]string{},
		Permission: permission,
	}}, nil
}

func (s *StateStore) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneState(s.state)
}

// ReplaceSchedule swaps exams, locale and palette and recomputes subject
// colors. Permission is kept.
func (s *StateStore) ReplaceSchedule(exams []model.Exam, locale domain.Locale, palette []string) State {
	subjects := make([]string, 0, len(exams))
	for _, exam := range exams {
		subjects = append(subjects, exam.Subject)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Exams = slices.Clone(exams)
	s.state.Locale = locale
	s.state.Palette = slices.Clone(palette)
	s.state.Colors = domain.AssignColors(subjects, palette)
	return cloneState(s.state)
}

func (s *StateStore) SetPermission(p domain.Permission) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Permission = p
}

func cloneState(st State) State {
	st.Exams = slices.Clone(st.Exams)
	st.Palette = slices.Clone(st.Palette)
	colors := make(map[string]string, len(st.Colors))
	for k, v := range st.Colors {
		colors[k] = v
	}
	st.Colors = colors
	return st
}
