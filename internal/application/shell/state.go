// Package shell owns the per-session UI state: the active mode and, for each mode, the
// request lifecycle and last fetched results.
package shell

import (
	"strings"
	"time"

	"github.com/ozzus/hopcraft/internal/application/forms"
	"github.com/ozzus/hopcraft/internal/domain/models"
)

type Mode string

const (
	ModeReverse Mode = "reverse"
	ModeSmart   Mode = "smart"
)

func ParseMode(value string) (Mode, bool) {
	switch Mode(strings.ToLower(strings.TrimSpace(value))) {
	case ModeReverse:
		return ModeReverse, true
	case ModeSmart:
		return ModeSmart, true
	default:
		return "", false
	}
}

type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// ModeState tracks one mode. Results are never mutated once stored, so copies may share them.
type ModeState struct {
	Status     Status
	Token      uint64
	StartedAt  time.Time
	Err        string
	FieldError *forms.FieldError

	Reverse   *models.ReverseResult
	Smart     *models.SmartMultiResult
	Travelers int
}

func (m ModeState) Loading() bool { return m.Status == StatusLoading }

type State struct {
	ID       string
	Mode     Mode
	Reverse  ModeState
	Smart    ModeState
	LastSeen time.Time

	ReverseForm forms.ReverseForm
	SmartForm   forms.SmartForm
}

func NewState(id string, today time.Time) State {
	return State{
		ID:          id,
		Mode:        ModeReverse,
		Reverse:     ModeState{Status: StatusIdle},
		Smart:       ModeState{Status: StatusIdle},
		ReverseForm: forms.DefaultReverseForm(today),
		SmartForm:   forms.DefaultSmartForm(today),
	}
}

func (s *State) modeState(mode Mode) *ModeState {
	if mode == ModeSmart {
		return &s.Smart
	}
	return &s.Reverse
}

// ModeState returns a copy of the state of mode.
func (s State) ModeState(mode Mode) ModeState {
	return *s.modeState(mode)
}

func (s *State) clearError(mode Mode) {
	ms := s.modeState(mode)
	ms.Err = ""
	ms.FieldError = nil
	if ms.Status == StatusError {
		ms.Status = StatusIdle
	}
}

// SwitchMode activates mode and drops the error of both modes. Results are kept.
func (s *State) SwitchMode(mode Mode) {
	s.clearError(s.Mode)
	s.clearError(mode)
	s.Mode = mode
}

// Reject records a validation failure. No request is issued and the mode status is unchanged.
func (s *State) Reject(mode Mode, fieldErr *forms.FieldError) {
	s.Mode = mode
	ms := s.modeState(mode)
	ms.Err = ""
	ms.FieldError = fieldErr
}

// Begin clears the previous outcome of mode, marks it loading and returns the new request token.
func (s *State) Begin(mode Mode, now time.Time) uint64 {
	s.Mode = mode
	ms := s.modeState(mode)
	ms.Token++
	ms.Status = StatusLoading
	ms.StartedAt = now
	ms.Err = ""
	ms.FieldError = nil
	ms.Reverse = nil
	ms.Smart = nil
	return ms.Token
}

func (s *State) current(mode Mode, token uint64) (*ModeState, bool) {
	ms := s.modeState(mode)
	if ms.Token != token || ms.Status != StatusLoading {
		return nil, false
	}
	return ms, true
}

// CompleteReverse stores result unless token is no longer the latest reverse request.
func (s *State) CompleteReverse(token uint64, result models.ReverseResult) bool {
	ms, ok := s.current(ModeReverse, token)
	if !ok {
		return false
	}
	ms.Status = StatusSuccess
	ms.Reverse = &result
	return true
}

// CompleteSmart stores result unless token is no longer the latest smart request.
func (s *State) CompleteSmart(token uint64, result models.SmartMultiResult, travelers int) bool {
	ms, ok := s.current(ModeSmart, token)
	if !ok {
		return false
	}
	ms.Status = StatusSuccess
	ms.Smart = &result
	ms.Travelers = travelers
	return true
}

func (s *State) Fail(mode Mode, token uint64, message string) bool {
	ms, ok := s.current(mode, token)
	if !ok {
		return false
	}
	ms.Status = StatusError
	ms.Err = message
	return true
}
