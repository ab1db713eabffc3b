package config

import (
	"os"
	"strconv"
)

func loadDevelopmentConfig(cfg *Config) {
	port, err := strconv.Atoi(os.Getenv("PORT"))
	if err == nil {
		cfg.ServerPort = port
	}

	cfg.ServerHost = "127.0.0.1"
	loadCredentialsFromEnv(cfg)
}

func loadCredentialsFromEnv(cfg *Config) {
	cfg.RootFolderID = os.Getenv("ROOT_FOLDER_ID")
	cfg.GoogleClientID = os.Getenv("GOOGLE_CLIENT_ID")
	cfg.GoogleClientSecret = os.Getenv("GOOGLE_CLIENT_SECRET")
	cfg.GoogleRefreshToken = os.Getenv("GOOGLE_REFRESH_TOKEN")
}
