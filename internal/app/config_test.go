package app

import (
	"testing"
	"time"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOLIDAY_CALENDAR_CACHE_DIR", dir)
	t.Setenv("HOLIDAY_CALENDAR_PORT", "9090")
	t.Setenv("HOLIDAY_CALENDAR_COUNTRY", "de")
	t.Setenv("HOLIDAY_CALENDAR_WEEK_START", "monday")
	t.Setenv("HOLIDAY_CALENDAR_SOURCE", SourceBuiltin)
	t.Setenv("HOLIDAY_CALENDAR_FETCH_TIMEOUT", "3s")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}
	if cfg.Port != 9090 {
		t.Errorf("Expected port 9090, got %d", cfg.Port)
	}
	if cfg.CacheDir != dir {
		t.Errorf("Expected cache dir %s, got %s", dir, cfg.CacheDir)
	}
	if cfg.Country != "DE" {
		t.Errorf("Expected country DE, got %s", cfg.Country)
	}
	if cfg.FetchTimeout != 3*time.Second {
		t.Errorf("Expected 3s timeout, got %v", cfg.FetchTimeout)
	}
	if ws, _ := cfg.Weekday(); ws != time.Monday {
		t.Errorf("Expected Monday, got %v", ws)
	}

	src := cfg.NewHolidaySource()
	if _, ok := src.Next.(BuiltinHolidays); !ok {
		t.Errorf("Expected builtin source, got %T", src.Next)
	}
	if src.Name != SourceBuiltin {
		t.Errorf("Expected source name %s, got %s", SourceBuiltin, src.Name)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"Unknown source", "HOLIDAY_CALENDAR_SOURCE", "calendarific"},
		{"Bad week start", "HOLIDAY_CALENDAR_WEEK_START", "friday"},
		{"Bad port", "HOLIDAY_CALENDAR_PORT", "eighty"},
		{"Bad timeout", "HOLIDAY_CALENDAR_FETCH_TIMEOUT", "soon"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("HOLIDAY_CALENDAR_CACHE_DIR", t.TempDir())
			t.Setenv(tt.key, tt.value)
			if _, err := LoadConfig(); err == nil {
				t.Errorf("Expected error for %s=%s", tt.key, tt.value)
			}
		})
	}
}

func TestParseWeekStart(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Weekday
		wantErr bool
	}{
		{"", time.Sunday, false},
		{"sunday", time.Sunday, false},
		{"Sun", time.Sunday, false},
		{"MONDAY", time.Monday, false},
		{"mon", time.Monday, false},
		{"saturday", time.Sunday, true},
	}
	for _, tt := range tests {
		got, err := ParseWeekStart(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseWeekStart(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseWeekStart(%q): expected %v, got %v", tt.in, tt.want, got)
		}
	}
}

func TestValidateSource(t *testing.T) {
	for _, s := range []string{SourceNager, SourceBuiltin} {
		if err := ValidateSource(s); err != nil {
			t.Errorf("Expected %s to be valid, got %v", s, err)
		}
	}
	for _, s := range []string{"", "bogus", "Nager"} {
		if err := ValidateSource(s); err == nil {
			t.Errorf("Expected error for source %q", s)
		}
	}
}

func TestValidateYear(t *testing.T) {
	tests := []struct {
		year    int
		wantErr bool
	}{
		{MinYear, false},
		{2024, false},
		{MaxYear, false},
		{0, true},
		{-1, true},
		{MaxYear + 1, true},
	}
	for _, tt := range tests {
		if err := ValidateYear(tt.year); (err != nil) != tt.wantErr {
			t.Errorf("ValidateYear(%d) error = %v, wantErr %v", tt.year, err, tt.wantErr)
		}
	}
}
