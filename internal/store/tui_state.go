package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

const tuiStateFileName = "tui_state.json"

// TUIState restores the last screen on relaunch. Best effort: callers
// tolerate missing or invalid data.
type TUIState struct {
	Version int `json:"version"`

	// Panel is one of the panel ids (ads|packages|kyc|users|events|secrets|
	// mining|branding|payments|knowledge).
	Panel string `json:"panel,omitempty"`

	// KYCStatusFilter is the last server-side status filter on the KYC panel.
	KYCStatusFilter string `json:"kycStatusFilter,omitempty"`
}

func (s Store) tuiStatePath() string {
	return filepath.Join(s.dir(), tuiStateFileName)
}

func (s Store) LoadTUIState() (*TUIState, error) {
	b, err := os.ReadFile(s.tuiStatePath())
	if errors.Is(err, os.ErrNotExist) {
		return &TUIState{Version: 1}, nil
	}
	if err != nil {
		return nil, err
	}
	var st TUIState
	if err := json.Unmarshal(b, &st); err != nil {
		return &TUIState{Version: 1}, nil
	}
	return &st, nil
}

func (s Store) SaveTUIState(st TUIState) error {
	if err := s.Ensure(); err != nil {
		return err
	}
	st.Version = 1
	b, err := json.Marshal(st)
	if err != nil {
		return err
	}
	tmp := s.tuiStatePath() + ".tmp"
	if err := os.WriteFile(tmp, append(b, '\n'), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.tuiStatePath())
}
