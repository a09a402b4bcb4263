package config

import (
	"strings"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("companymap-test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Database.DBName != "companymap" {
		t.Errorf("expected default dbname companymap, got %s", cfg.Database.DBName)
	}
	if cfg.Telemetry.Enabled {
		t.Error("telemetry must be off by default")
	}
}

func TestDSN(t *testing.T) {
	d := DatabaseConfig{
		Host: "db", Port: 5432, User: "app", Password: "s3cret",
		DBName: "companymap", SSLMode: "disable",
	}
	want := "postgres://app:s3cret@db:5432/companymap?sslmode=disable"
	if got := d.DSN(); got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestValidate_CollectsErrors(t *testing.T) {
	cfg := &Config{}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error for zero config")
	}
	msg := err.Error()
	for _, want := range []string{"server.port", "database.host", "database.user", "database.dbname"} {
		if !strings.Contains(msg, want) {
			t.Errorf("expected %q in error, got %s", want, msg)
		}
	}
}
