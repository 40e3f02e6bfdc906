package main

import (
	"strings"
	"testing"

	"github.com/go-sql-driver/mysql"
)

func testSecret() string { return strings.Repeat("s", 32) }

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("SECRET_KEY", testSecret())
	t.Setenv("ADMIN_PASSWORD", "letmein")
	t.Setenv("SERVER_ADDRESS", "")
	t.Setenv("DB_PORT", "")
	t.Setenv("DB_USER", "")
	t.Setenv("DB_NAME", "")
	t.Setenv("ADMIN_USERNAME", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Server.Address != ":8080" {
		t.Errorf("Default address should be :8080, got %q", cfg.Server.Address)
	}
	if cfg.Database.Port != 3306 {
		t.Errorf("Default DB port should be 3306, got %d", cfg.Database.Port)
	}
	if cfg.Security.AdminUsername != "admin" {
		t.Errorf("Default admin username should be admin, got %q", cfg.Security.AdminUsername)
	}
	if cfg.HasDatabase() {
		t.Error("No DB credentials were set; HasDatabase should be false")
	}
}

func TestLoadConfigRejectsMissingSecret(t *testing.T) {
	t.Setenv("SECRET_KEY", "")
	t.Setenv("ADMIN_PASSWORD", "letmein")
	if _, err := LoadConfig(); err == nil {
		t.Error("Expected an error without SECRET_KEY")
	}

	t.Setenv("SECRET_KEY", "short")
	if _, err := LoadConfig(); err == nil {
		t.Error("Expected an error for a short SECRET_KEY")
	}
}

func TestLoadConfigRejectsMissingAdminPassword(t *testing.T) {
	t.Setenv("SECRET_KEY", testSecret())
	t.Setenv("ADMIN_PASSWORD", "")
	t.Setenv("ADMIN_PASSWORD_HASH", "")
	if _, err := LoadConfig(); err == nil {
		t.Error("Expected an error without admin credentials")
	}
}

func TestDatabaseDSNEscapesCredentials(t *testing.T) {
	cfg := &Config{
		Database: DatabaseSettings{
			Host:     "db.internal",
			Port:     3307,
			User:     "klsb_web",
			Password: "akmal@kl$8kl$8", // special characters must survive
			Database: "klsb_site",
		},
	}

	parsed, err := mysql.ParseDSN(cfg.DatabaseDSN())
	if err != nil {
		t.Fatalf("Generated DSN does not parse: %v", err)
	}
	if parsed.User != "klsb_web" || parsed.Passwd != "akmal@kl$8kl$8" {
		t.Errorf("Credentials mangled: user=%q pass=%q", parsed.User, parsed.Passwd)
	}
	if parsed.Addr != "db.internal:3307" {
		t.Errorf("Unexpected address: %q", parsed.Addr)
	}
	if parsed.DBName != "klsb_site" {
		t.Errorf("Unexpected database: %q", parsed.DBName)
	}
	if !parsed.ParseTime {
		t.Error("DSN must enable parseTime for timestamp columns")
	}
}

func TestHasDatabase(t *testing.T) {
	cfg := &Config{Database: DatabaseSettings{User: "u", Database: "d"}}
	if !cfg.HasDatabase() {
		t.Error("User and database set; expected HasDatabase true")
	}
	cfg.Database.User = ""
	if cfg.HasDatabase() {
		t.Error("Missing user; expected HasDatabase false")
	}
}
