package app

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the service configuration. It is read from a JSON file at
// startup; secrets can be overridden from the environment (a local .env file
// is honored when present).
type Config struct {
	ListenAddr       string   `json:"listen_addr"`
	DbHost           string   `json:"db_host"`
	DbPort           int      `json:"db_port"`
	DbUser           string   `json:"db_user"`
	DbPassword       string   `json:"db_password"`
	DbName           string   `json:"db_name"`
	DbSchema         string   `json:"db_schema"`
	SSLMode          string   `json:"ssl_mode"`
	OriginTimeoutSec int      `json:"origin_timeout_sec"`
	AdminJwtSecret   string   `json:"admin_jwt_secret"`
	AllowedOrigins   []string `json:"allowed_origins"`
}

func LoadConfig(fileName string) (Config, error) {
	var config Config

	file, err := os.Open(fileName)
	if err != nil {
		return config, err
	}
	defer file.Close()

	if err := json.NewDecoder(file).Decode(&config); err != nil {
		return config, fmt.Errorf("parse %s: %w", fileName, err)
	}

	// .env is optional; a missing file is not an error.
	_ = godotenv.Load()

	if v := os.Getenv("PICTOR_DB_HOST"); v != "" {
		config.DbHost = v
	}
	if v := os.Getenv("PICTOR_DB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			config.DbPort = port
		}
	}
	if v := os.Getenv("PICTOR_DB_PASSWORD"); v != "" {
		config.DbPassword = v
	}
	if v := os.Getenv("PICTOR_ADMIN_JWT_SECRET"); v != "" {
		config.AdminJwtSecret = v
	}

	config.applyDefaults()
	return config, nil
}

func (config *Config) applyDefaults() {
	if config.ListenAddr == "" {
		config.ListenAddr = ":8080"
	}
	if config.DbPort == 0 {
		config.DbPort = 5432
	}
	if config.DbSchema == "" {
		config.DbSchema = "public"
	}
	if config.SSLMode == "" {
		config.SSLMode = "require"
	}
	if config.OriginTimeoutSec <= 0 {
		config.OriginTimeoutSec = 30
	}
}

// DbConfigured reports whether the deployment carries enough database
// configuration to attempt a connection.
func (config Config) DbConfigured() bool {
	return config.DbHost != "" && config.DbName != "" && config.DbUser != ""
}

func (config Config) ConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		config.DbUser, config.DbPassword, config.DbHost, config.DbPort, config.DbName, config.SSLMode)
}

func (config Config) Print() {
	fmt.Println("pictor Config")
	fmt.Printf("  listen_addr: %s\n", config.ListenAddr)
	fmt.Printf("  db_host: %s\n", config.DbHost)
	fmt.Printf("  db_port: %d\n", config.DbPort)
	fmt.Printf("  db_user: %s\n", config.DbUser)
	fmt.Printf("  db_name: %s\n", config.DbName)
	fmt.Printf("  db_schema: %s\n", config.DbSchema)
	fmt.Printf("  ssl_mode: %s\n", config.SSLMode)
	fmt.Printf("  origin_timeout_sec: %d\n", config.OriginTimeoutSec)
	fmt.Printf("  allowed_origins: %v\n", config.AllowedOrigins)
}
