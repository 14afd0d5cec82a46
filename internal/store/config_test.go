package store

import (
	"testing"
)

func TestLoadConfig_MissingFileYieldsDefaults(t *testing.T) {
	s := Store{Dir: t.TempDir()}
	cfg, err := s.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.ServerURL != "" {
		t.Fatalf("expected empty server url; got %q", cfg.ServerURL)
	}
}

func TestSaveLoadConfig_RoundTrip(t *testing.T) {
	s := Store{Dir: t.TempDir()}
	in := Config{
		ServerURL:           "https://api.example.com/",
		StatsRefreshSeconds: 30,
		RateLimitPerSecond:  10,
	}
	if err := s.SaveConfig(in); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}
	out, err := s.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	// Trailing slash is normalized away on load.
	if out.ServerURL != "https://api.example.com" {
		t.Fatalf("server url = %q", out.ServerURL)
	}
	if out.StatsRefreshSeconds != 30 || out.RateLimitPerSecond != 10 {
		t.Fatalf("round trip lost fields: %+v", out)
	}
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	s := Store{Dir: t.TempDir()}
	if err := s.SaveConfig(Config{ServerURL: "https://file.example.com"}); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}
	t.Setenv("MINEBOARD_SERVER", "https://env.example.com")

	cfg, err := s.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.ServerURL != "https://env.example.com" {
		t.Fatalf("env override lost: %q", cfg.ServerURL)
	}
}

func TestTUIState_RoundTripAndMissing(t *testing.T) {
	s := Store{Dir: t.TempDir()}

	st, err := s.LoadTUIState()
	if err != nil {
		t.Fatalf("LoadTUIState: %v", err)
	}
	if st.Panel != "" {
		t.Fatalf("fresh state should be empty: %+v", st)
	}

	if err := s.SaveTUIState(TUIState{Panel: "kyc", KYCStatusFilter: "pending"}); err != nil {
		t.Fatalf("SaveTUIState: %v", err)
	}
	st, err = s.LoadTUIState()
	if err != nil {
		t.Fatalf("LoadTUIState: %v", err)
	}
	if st.Panel != "kyc" || st.KYCStatusFilter != "pending" {
		t.Fatalf("round trip: %+v", st)
	}
}
