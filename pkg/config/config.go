package config

import (
	"os"
	"time"

	"github.com/pkg/errors"
)

type Config struct {
	Hostname   string
	ServerHost string
	ServerPort int

	// RootFolderID bounds the entire visible hierarchy; nothing outside its
	// subtree is reachable.
	RootFolderID       string
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRefreshToken string

	// DriveBaseURL and TokenURL are overridable so tests can point the
	// client and token source at fixture servers.
	DriveBaseURL string
	TokenURL     string

	ListPageSize     int
	SearchMaxPages   int
	SearchMaxResults int
	SearchPageSize   int

	ZipMaxFiles int
	ZipMaxBytes int64

	ListCacheSize int
	ListCacheTTL  time.Duration

	UpstreamTimeout time.Duration
}

const environmentENV = "ENVIRONMENT"

func New() (*Config, error) {
	hostname, err := os.Hostname()
	if err != nil {
		return nil, errors.WithStack(err)
	}

	cfg := &Config{
		Hostname:   hostname,
		ServerPort: 8787,

		DriveBaseURL: "https://www.googleapis.com/drive/v3",
		TokenURL:     "https://oauth2.googleapis.com/token",

		ListPageSize:     100,
		SearchMaxPages:   30,
		SearchMaxResults: 300,
		SearchPageSize:   100,

		ZipMaxFiles: 100,
		ZipMaxBytes: 200 * 1024 * 1024,

		ListCacheSize: 256,
		ListCacheTTL:  60 * time.Second,

		UpstreamTimeout: 60 * time.Second,
	}

	switch os.Getenv(environmentENV) {
	case "development", "":
		loadDevelopmentConfig(cfg)
	case "test":
		loadTestConfig(cfg)
	case "production":
		loadProductionConfig(cfg)
	}

	return cfg, nil
}

// Validate checks the settings the proxy cannot run without.
func (cfg *Config) Validate() error {
	if cfg.RootFolderID == "" {
		return errors.New("ROOT_FOLDER_ID is not set")
	}
	if cfg.GoogleClientID == "" || cfg.GoogleClientSecret == "" || cfg.GoogleRefreshToken == "" {
		return errors.New("Google OAuth credentials are not fully set")
	}
	return nil
}
