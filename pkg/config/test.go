package config

import "time"

func loadTestConfig(cfg *Config) {
	cfg.ServerHost = "127.0.0.1"
	cfg.ServerPort = 0

	cfg.RootFolderID = "root-folder"
	cfg.GoogleClientID = "test-client"
	cfg.GoogleClientSecret = "test-secret"
	cfg.GoogleRefreshToken = "test-refresh"

	cfg.ListCacheTTL = time.Second
}
