package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config contains server configuration parameters.
type Config struct {
	LogLevel  int       `env:"LOG_LEVEL" envDefault:"0"`
	HTTP      HTTP      `envPrefix:"HTTP_"`
	Database  Database  `envPrefix:"DATABASE_"`
	KDF       KDF       `envPrefix:"KDF_"`
	JWT       JWT       `envPrefix:"JWT_"`
	Storage   Storage   `envPrefix:"MINIO_"`
	Redis     Redis     `envPrefix:"REDIS_"`
	NATS      NATS      `envPrefix:"NATS_"`
	Order     Order     `envPrefix:"ORDER_"`
	Product   Product   `envPrefix:"PRODUCT_"`
	RateLimit RateLimit `envPrefix:"RATE_LIMIT_"`
}

// HTTP contains HTTP server parameters.
type HTTP struct {
	Port               string `env:"PORT" envDefault:"5000"`
	EnableHTTPS        bool   `env:"ENABLE_HTTPS" envDefault:"false"`
	CertFileName       string `env:"CERT_FILE_NAME" envDefault:"cert.pem"`
	PrivateKeyFileName string `env:"PRIVATE_KEY_FILE_NAME" envDefault:"key.pem"`
	SecureCookie       bool   `env:"SECURE_COOKIE" envDefault:"false"`
	// CORSOrigins lists allowed browser origins; "*" allows any.
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"*"`
}

// Database drivers supported by the server.
const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)

// Database contains database connection parameters.
type Database struct {
	Driver string `env:"DRIVER" envDefault:"postgres"`
	DSN    string `env:"DSN,required,notEmpty"`
	// Name is the mongo database name; ignored by postgres.
	Name string `env:"NAME" envDefault:"storefront"`
}

// KDF contains argon2id parameters for password hashing.
type KDF struct {
	Time   uint32 `env:"TIME" envDefault:"1"`
	MemKiB uint32 `env:"MEM" envDefault:"65536"`
	Par    uint8  `env:"PAR" envDefault:"4"`
}

// JWT contains JWT-related parameters.
type JWT struct {
	Secret string        `env:"SECRET,required,notEmpty"`
	TTL    time.Duration `env:"TTL" envDefault:"1h"`
}

// Storage contains object storage parameters.
type Storage struct {
	Endpoint  string `env:"ENDPOINT" envDefault:"localhost:9000"`
	AccessKey string `env:"ACCESS_KEY" envDefault:"storefront-access-key"`
	SecretKey string `env:"SECRET_KEY" envDefault:"storefront-secret-key"`
	Bucket    string `env:"BUCKET_NAME" envDefault:"storefront-photos"`
	UseSSL    bool   `env:"USE_SSL" envDefault:"false"`
}

// Redis contains token denylist parameters. Empty Addr disables revocation.
type Redis struct {
	Addr     string `env:"ADDR"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB" envDefault:"0"`
}

// NATS contains event publishing parameters. Empty URL disables publishing.
type NATS struct {
	URL           string `env:"URL"`
	SubjectPrefix string `env:"SUBJECT_PREFIX" envDefault:"storefront"`
}

// Order contains order lifecycle parameters.
type Order struct {
	Statuses    []string `env:"STATUSES" envSeparator:"," envDefault:"Not processed,Processing,Shipped,Delivered,Cancelled"`
	ForwardOnly bool     `env:"FORWARD_ONLY" envDefault:"false"`
}

// Product contains catalog parameters.
type Product struct {
	MaxPhotoSize int64 `env:"MAX_PHOTO_SIZE" envDefault:"3000000"`
}

// RateLimit bounds the request rate accepted by the API. RPS <= 0 disables it.
type RateLimit struct {
	RPS   float64 `env:"RPS" envDefault:"0"`
	Burst int     `env:"BURST" envDefault:"20"`
}

// NewConfig loads configuration from a .env file, if present, and environment variables.
func NewConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	switch cfg.Database.Driver {
	case DriverPostgres, DriverMongo:
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}

	for _, origin := range cfg.HTTP.CORSOrigins {
		if origin != "*" && !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			return nil, fmt.Errorf("invalid CORS origin %q: must be * or start with http:// or https://", origin)
		}
	}

	return &cfg, nil
}
