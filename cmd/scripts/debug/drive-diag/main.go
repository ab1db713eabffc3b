package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jessevdk/go-flags"
	"github.com/robinjoseph08/golib/logger"
	"github.com/zdrivehq/zdrive/pkg/config"
	"github.com/zdrivehq/zdrive/pkg/diag"
	"github.com/zdrivehq/zdrive/pkg/drive"
	"github.com/zdrivehq/zdrive/pkg/oauth"
)

func main() {
	log := logger.New()

	var opts struct {
		RootFolderID string `short:"r" long:"root" description:"Override the configured root folder ID"`
	}

	if _, err := flags.Parse(&opts); err != nil {
		log.Err(err).Fatal("flags parse error")
	}

	cfg, err := config.New()
	if err != nil {
		log.Err(err).Fatal("config error")
	}
	if opts.RootFolderID != "" {
		cfg.RootFolderID = opts.RootFolderID
	}

	httpClient := &http.Client{Timeout: cfg.UpstreamTimeout}
	tokens := oauth.NewTokenSource(oauth.Config{
		TokenURL:     cfg.TokenURL,
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RefreshToken: cfg.GoogleRefreshToken,
	}, httpClient)
	client := drive.NewClient(cfg.DriveBaseURL, tokens, httpClient)

	report := diag.NewService(client, tokens, cfg).Probe(context.Background())

	fmt.Printf("client id set:      %v\n", report.HasClientID)
	fmt.Printf("client secret set:  %v\n", report.HasClientSecret)
	fmt.Printf("refresh token set:  %v\n", report.HasRefreshToken)
	fmt.Printf("root folder set:    %v\n", report.HasRootFolder)
	fmt.Printf("token exchange ok:  %v\n", report.TokenOK)
	fmt.Printf("root metadata ok:   %v (status %d)\n", report.RootOK, report.RootStatus)
}
