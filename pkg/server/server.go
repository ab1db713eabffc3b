package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/echo/v4/health"
	"github.com/robinjoseph08/golib/echo/v4/middleware/logger"
	"github.com/robinjoseph08/golib/echo/v4/middleware/recovery"
	"github.com/zdrivehq/zdrive/pkg/access"
	"github.com/zdrivehq/zdrive/pkg/binder"
	"github.com/zdrivehq/zdrive/pkg/config"
	"github.com/zdrivehq/zdrive/pkg/content"
	"github.com/zdrivehq/zdrive/pkg/deepsearch"
	"github.com/zdrivehq/zdrive/pkg/diag"
	"github.com/zdrivehq/zdrive/pkg/drive"
	"github.com/zdrivehq/zdrive/pkg/errcodes"
	"github.com/zdrivehq/zdrive/pkg/listing"
	"github.com/zdrivehq/zdrive/pkg/oauth"
	"github.com/zdrivehq/zdrive/pkg/tree"
	"github.com/zdrivehq/zdrive/pkg/zipgen"
)

func New(cfg *config.Config) (*http.Server, error) {
	e := echo.New()

	b, err := binder.New()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	e.Binder = b

	e.Use(logger.Middleware())
	e.Use(recovery.Middleware())
	e.Use(middleware.CORS())

	health.RegisterRoutes(e)

	httpClient := &http.Client{Timeout: cfg.UpstreamTimeout}
	tokens := oauth.NewTokenSource(oauth.Config{
		TokenURL:     cfg.TokenURL,
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RefreshToken: cfg.GoogleRefreshToken,
	}, httpClient)
	client := drive.NewClient(cfg.DriveBaseURL, tokens, httpClient)
	gate := access.NewGate(client, cfg.RootFolderID)

	listing.RegisterRoutes(e, client, cfg)
	deepsearch.RegisterRoutes(e, client, cfg)
	tree.RegisterRoutes(e, client, gate)
	content.RegisterRoutes(e, client, gate)
	zipgen.RegisterRoutes(e, client, gate, cfg)
	diag.RegisterRoutes(e, client, tokens, cfg)

	e.RouteNotFound("/*", notFoundHandler)
	e.HTTPErrorHandler = errcodes.NewHandler().Handle

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort),
		Handler:           e,
		ReadHeaderTimeout: 3 * time.Second,
	}

	return srv, nil
}

func notFoundHandler(echo.Context) error {
	return errcodes.NotFound("Page")
}
