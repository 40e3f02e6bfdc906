// config.go
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-sql-driver/mysql"
)

// Config holds all server configuration, loaded from the environment.
type Config struct {
	Server   ServerSettings
	Database DatabaseSettings
	Security SecuritySettings
	Uploads  UploadSettings
}

// ServerSettings contains server-specific configuration
type ServerSettings struct {
	Address string // listen address, e.g. ":8080"
	AppName string // reported by the liveness endpoint
}

// DatabaseSettings contains database credentials. All fields come from the
// environment; when User or Database is empty the server starts without a
// database connection and persistence fails at first use.
type DatabaseSettings struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
}

// SecuritySettings contains session and admin-login configuration
type SecuritySettings struct {
	SecretKey         string // session cookie signing key, never serialized
	AdminUsername     string
	AdminPassword     string // plaintext comparison, used when no hash is set
	AdminPasswordHash string // bcrypt hash, preferred over AdminPassword
}

// UploadSettings contains the upload storage layout
type UploadSettings struct {
	Root    string // application root the stored paths are relative to
	CVDir   string // directory for CV uploads, relative to Root
	MaxSize int64  // request body limit in bytes
}

// LoadConfig builds the configuration from environment variables,
// applying defaults for everything that is safe to default.
func LoadConfig() (*Config, error) {
	root, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("cannot determine application root: %v", err)
	}

	config := &Config{
		Server: ServerSettings{
			Address: getEnv("SERVER_ADDRESS", ":8080"),
			AppName: getEnv("APP_NAME", "KLSB"),
		},
		Database: DatabaseSettings{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 3306),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASS"),
			Database: os.Getenv("DB_NAME"),
		},
		Security: SecuritySettings{
			SecretKey:         os.Getenv("SECRET_KEY"),
			AdminUsername:     getEnv("ADMIN_USERNAME", "admin"),
			AdminPassword:     os.Getenv("ADMIN_PASSWORD"),
			AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		},
		Uploads: UploadSettings{
			Root:    getEnv("APP_ROOT", root),
			CVDir:   getEnv("UPLOAD_DIR", filepath.Join("uploads", "cv")),
			MaxSize: 16 << 20, // 16 MB, same cap the site always had
		},
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %v", err)
	}

	return config, nil
}

// Validate checks the parts of the configuration the server cannot run
// without. Database credentials are deliberately not required here: their
// absence is handled at first use, not at startup.
func (c *Config) Validate() error {
	if c.Security.SecretKey == "" {
		return fmt.Errorf("SECRET_KEY is required")
	}
	if len(c.Security.SecretKey) < 32 {
		return fmt.Errorf("SECRET_KEY must be at least 32 characters long")
	}
	if c.Security.AdminPassword == "" && c.Security.AdminPasswordHash == "" {
		return fmt.Errorf("ADMIN_PASSWORD or ADMIN_PASSWORD_HASH is required")
	}
	return nil
}

// HasDatabase reports whether enough credentials are present to attempt a
// database connection.
func (c *Config) HasDatabase() bool {
	return c.Database.User != "" && c.Database.Database != ""
}

// DatabaseDSN assembles the MySQL connection string. mysql.Config takes care
// of escaping, so credentials containing @, $ or other special characters
// survive intact.
func (c *Config) DatabaseDSN() string {
	dsn := mysql.NewConfig()
	dsn.User = c.Database.User
	dsn.Passwd = c.Database.Password
	dsn.Net = "tcp"
	dsn.Addr = fmt.Sprintf("%s:%d", c.Database.Host, c.Database.Port)
	dsn.DBName = c.Database.Database
	dsn.ParseTime = true
	dsn.Params = map[string]string{"charset": "utf8mb4"}
	return dsn.FormatDSN()
}

// CVUploadDir returns the absolute directory CV files are written to.
func (c *Config) CVUploadDir() string {
	return filepath.Join(c.Uploads.Root, c.Uploads.CVDir)
}

// getEnv returns the environment value or a default when unset.
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getEnvInt returns the environment value parsed as int, or a default.
func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}
