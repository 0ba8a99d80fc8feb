package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
	"unicode"
)

type Config struct {
	Environment string
	Name        string
	Version     string
	HTTP        HTTPConfig
	Postgres    PostgresConfig
	S3          S3Config
	Admin       AdminConfig
	Forms       FormsConfig
}

type HTTPConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	MaxHeaderMB  int
	MaxUploadMB  int
	CORSOrigins  []string
}

type PostgresConfig struct {
	Host               string
	Port               string
	Username           string
	Password           string
	DBName             string
	SSLMode            string
	MaxConnections     int
	MaxIdleConnections int
	MaxLifetime        time.Duration
	MigrationsDir      string
}

type S3Config struct {
	Endpoint        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	UseSSL          bool
	PresignTTL      time.Duration
}

// AdminConfig guards the appointment table. The passkey is the six digit
// code entered in the admin modal.
type AdminConfig struct {
	Passkey    string
	SigningKey string
	TokenTTL   time.Duration
}

type FormsConfig struct {
	SessionTTL time.Duration
}

func NewConfig() (*Config, error) {
	httpReadTimeout, err := time.ParseDuration(getEnv("HTTP_READ_TIMEOUT", "10s"))
	if err != nil {
		return nil, err
	}

	httpWriteTimeout, err := time.ParseDuration(getEnv("HTTP_WRITE_TIMEOUT", "10s"))
	if err != nil {
		return nil, err
	}

	postgresMaxLifetime, err := time.ParseDuration(getEnv("POSTGRES_MAX_LIFETIME", "5m"))
	if err != nil {
		return nil, err
	}

	presignTTL, err := time.ParseDuration(getEnv("S3_PRESIGN_TTL", "15m"))
	if err != nil {
		return nil, err
	}

	adminTokenTTL, err := time.ParseDuration(getEnv("ADMIN_TOKEN_TTL", "8h"))
	if err != nil {
		return nil, err
	}

	sessionTTL, err := time.ParseDuration(getEnv("FORM_SESSION_TTL", "30m"))
	if err != nil {
		return nil, err
	}

	return &Config{
		Environment: getEnv("APP_ENV", "development"),
		Name:        getEnv("APP_NAME", "carepulse"),
		Version:     getEnv("APP_VERSION", "1.0.0"),
		HTTP: HTTPConfig{
			Port:         getEnv("HTTP_PORT", "8080"),
			ReadTimeout:  httpReadTimeout,
			WriteTimeout: httpWriteTimeout,
			MaxHeaderMB:  getEnvAsInt("HTTP_MAX_HEADER_MB", 1),
			MaxUploadMB:  getEnvAsInt("HTTP_MAX_UPLOAD_MB", 10),
			CORSOrigins:  getEnvAsList("CORS_ORIGINS", "http://localhost:3000"),
		},
		Postgres: PostgresConfig{
			Host:               getEnv("POSTGRES_HOST", "localhost"),
			Port:               getEnv("POSTGRES_PORT", "5432"),
			Username:           getEnv("POSTGRES_USER", "postgres"),
			Password:           getEnv("POSTGRES_PASSWORD", "postgres"),
			DBName:             getEnv("POSTGRES_DB", "carepulse"),
			SSLMode:            getEnv("POSTGRES_SSL_MODE", "disable"),
			MaxConnections:     getEnvAsInt("POSTGRES_MAX_CONNECTIONS", 10),
			MaxIdleConnections: getEnvAsInt("POSTGRES_MAX_IDLE_CONNECTIONS", 5),
			MaxLifetime:        postgresMaxLifetime,
			MigrationsDir:      getEnv("POSTGRES_MIGRATIONS_DIR", "./migrations"),
		},
		S3: S3Config{
			Endpoint:        getEnv("S3_ENDPOINT", ""),
			Region:          getEnv("S3_REGION", "us-east-1"),
			AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", ""),
			Bucket:          getEnv("S3_BUCKET", "carepulse"),
			UseSSL:          getEnvAsBool("S3_USE_SSL", true),
			PresignTTL:      presignTTL,
		},
		Admin: AdminConfig{
			Passkey:    getEnv("ADMIN_PASSKEY", ""),
			SigningKey: getEnv("ADMIN_SIGNING_KEY", "your_secret_key"),
			TokenTTL:   adminTokenTTL,
		},
		Forms: FormsConfig{
			SessionTTL: sessionTTL,
		},
	}, nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Validate refuses configurations the admin table cannot be protected with.
func (c *Config) Validate() error {
	if len(c.Admin.Passkey) != 6 {
		return errors.New("ADMIN_PASSKEY must be a six digit code")
	}
	for _, r := range c.Admin.Passkey {
		if !unicode.IsDigit(r) {
			return errors.New("ADMIN_PASSKEY must be a six digit code")
		}
	}

	if c.IsProduction() && c.Admin.SigningKey == "your_secret_key" {
		return errors.New("ADMIN_SIGNING_KEY must be set in production")
	}

	if c.Forms.SessionTTL <= 0 {
		return fmt.Errorf("FORM_SESSION_TTL must be positive, got %s", c.Forms.SessionTTL)
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value := 0
	_, err := fmt.Sscanf(valueStr, "%d", &value)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := strings.ToLower(os.Getenv(key))
	switch valueStr {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	default:
		return defaultValue
	}
}

func getEnvAsList(key, defaultValue string) []string {
	var out []string
	for _, part := range strings.Split(getEnv(key, defaultValue), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
