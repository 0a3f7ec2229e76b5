package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Scheduling.MaxPerDoctorPerDay != 20 {
		t.Errorf("MaxPerDoctorPerDay = %d, want 20", cfg.Scheduling.MaxPerDoctorPerDay)
	}
	if cfg.Scheduling.MinInterval != 20*time.Minute {
		t.Errorf("MinInterval = %s, want 20m", cfg.Scheduling.MinInterval)
	}
	if cfg.Scheduling.DayStart != 8*time.Hour || cfg.Scheduling.DayEnd != 20*time.Hour {
		t.Errorf("working hours = [%s, %s), want [8h, 20h)", cfg.Scheduling.DayStart, cfg.Scheduling.DayEnd)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SCHED_MAX_PER_DOCTOR_PER_DAY", "12")
	t.Setenv("SCHED_MIN_INTERVAL", "30m")
	t.Setenv("DB_SSLMODE", "verify-full")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Scheduling.MaxPerDoctorPerDay != 12 {
		t.Errorf("MaxPerDoctorPerDay = %d, want 12", cfg.Scheduling.MaxPerDoctorPerDay)
	}
	if cfg.Scheduling.MinInterval != 30*time.Minute {
		t.Errorf("MinInterval = %s, want 30m", cfg.Scheduling.MinInterval)
	}
	if cfg.Database.SSLMode != "verify-full" {
		t.Errorf("SSLMode = %s, want verify-full", cfg.Database.SSLMode)
	}
}

func TestLoad_RejectsInvertedWorkingHours(t *testing.T) {
	t.Setenv("SCHED_DAY_START", "20h")
	t.Setenv("SCHED_DAY_END", "8h")

	_, err := Load()
	if err == nil {
		t.Fatal("want error for DAY_END before DAY_START")
	}
	if !strings.Contains(err.Error(), "SCHED_DAY_END") {
		t.Fatalf("error should name the offending key, got %v", err)
	}
}

func TestLoad_RequiresPasswordOutsideDevelopment(t *testing.T) {
	t.Setenv("APP_ENV", "staging")
	t.Setenv("DB_PASSWORD", "")

	if _, err := Load(); err == nil {
		t.Fatal("want error for missing DB_PASSWORD in staging")
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{
		Host: "db", Port: 5433, Name: "clinic", User: "svc", Password: "pw", SSLMode: "require",
	}
	dsn := d.DSN()
	for _, part := range []string{"host=db", "port=5433", "dbname=clinic", "user=svc", "sslmode=require"} {
		if !strings.Contains(dsn, part) {
			t.Errorf("DSN missing %q: %s", part, dsn)
		}
	}
}
