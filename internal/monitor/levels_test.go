package monitor

import "testing"

func TestLevelSet_DefaultsEverywhere(t *testing.T) {
	s := NewLevelSet()
	for _, env := range []string{"", "production", "staging"} {
		if got := s.Resolve(env); got != DefaultLevel {
			t.Errorf("Resolve(%q) = %q, want %q", env, got, DefaultLevel)
		}
	}
}

func TestLevelSet_AgnosticMonitorIgnoresEnvironment(t *testing.T) {
	s := NewLevelSet()
	s.Set("critical", "")

	for _, env := range []string{"", "production", "staging"} {
		if got := s.Resolve(env); got != "critical" {
			t.Errorf("Resolve(%q) = %q, want %q", env, got, "critical")
		}
	}
}

func TestLevelSet_EnvironmentOverride(t *testing.T) {
	s := NewLevelSet()
	s.Set("warn", "")
	s.Set("critical", "production")

	if got := s.Resolve("production"); got != "critical" {
		t.Errorf("Resolve(production) = %q, want %q", got, "critical")
	}
	// No entry matches staging; the no-environment default only wins when
	// it is the sole entry, so staging falls back to the system default.
	if got := s.Resolve("staging"); got != DefaultLevel {
		t.Errorf("Resolve(staging) = %q, want %q", got, DefaultLevel)
	}
}

func TestLevelSet_SameNameReplaced(t *testing.T) {
	s := NewLevelSet()
	s.Set("critical", "production")
	s.Set("critical", "staging")

	if got := s.Resolve("production"); got != DefaultLevel {
		t.Errorf("Resolve(production) = %q, want %q after re-registration", got, DefaultLevel)
	}
	if got := s.Resolve("staging"); got != "critical" {
		t.Errorf("Resolve(staging) = %q, want %q", got, "critical")
	}
}

func TestLevelSet_LastRegisteredWins(t *testing.T) {
	s := NewLevelSet()
	s.Set("warn", "production")
	s.Set("critical", "production")

	if got := s.Resolve("production"); got != "critical" {
		t.Errorf("Resolve(production) = %q, want %q", got, "critical")
	}
}

func TestLevelSet_RepeatedRegistrationIdempotent(t *testing.T) {
	s := NewLevelSet()
	s.Set("critical", "production")
	s.Set("critical", "production")

	if n := len(s.Entries()); n != 2 { // seeded default + critical
		t.Errorf("entries = %d, want 2", n)
	}
	if got := s.Resolve("production"); got != "critical" {
		t.Errorf("Resolve(production) = %q, want %q", got, "critical")
	}
}

func TestLevelSet_NewDefaultDisplacesSeeded(t *testing.T) {
	s := NewLevelSet()
	s.Set("info", "")

	entries := s.Entries()
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	if entries[0].Name != "info" || entries[0].Environment != "" {
		t.Errorf("entry = %+v, want info with no environment", entries[0])
	}
}
