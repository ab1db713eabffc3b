// Package diag reports whether the proxy's credentials and root folder are
// usable, without exposing any secret material.
package diag

import (
	"context"
	"net/http"

	"github.com/zdrivehq/zdrive/pkg/config"
	"github.com/zdrivehq/zdrive/pkg/drive"
)

// MetadataGetter is the slice of the Drive client the probe needs.
type MetadataGetter interface {
	GetMetadata(ctx context.Context, fileID string, fields ...string) (*drive.File, error)
}

type Service struct {
	client MetadataGetter
	tokens drive.TokenSource
	cfg    *config.Config
}

// NewService creates a Service.
func NewService(client MetadataGetter, tokens drive.TokenSource, cfg *config.Config) *Service {
	return &Service{client: client, tokens: tokens, cfg: cfg}
}

// Report is the probe result. Booleans only; never the values themselves.
type Report struct {
	HasClientID     bool `json:"hasClientId"`
	HasClientSecret bool `json:"hasClientSecret"`
	HasRefreshToken bool `json:"hasRefresh"`
	HasRootFolder   bool `json:"hasRoot"`
	TokenOK         bool `json:"tokenOk"`
	RootOK          bool `json:"rootHeadOk"`
	RootStatus      int  `json:"rootStatus"`
}

// Probe checks configuration presence, then tries a live token exchange and
// a metadata fetch of the root folder. Failures are reported in the result,
// not returned as errors.
func (svc *Service) Probe(ctx context.Context) *Report {
	report := &Report{
		HasClientID:     svc.cfg.GoogleClientID != "",
		HasClientSecret: svc.cfg.GoogleClientSecret != "",
		HasRefreshToken: svc.cfg.GoogleRefreshToken != "",
		HasRootFolder:   svc.cfg.RootFolderID != "",
	}

	token, err := svc.tokens.Token(ctx)
	report.TokenOK = err == nil && token != ""
	if !report.TokenOK {
		return report
	}

	_, err = svc.client.GetMetadata(ctx, svc.cfg.RootFolderID, "id")
	if err == nil {
		report.RootOK = true
		report.RootStatus = http.StatusOK
		return report
	}
	if status, ok := drive.StatusCode(err); ok {
		report.RootStatus = status
	}
	return report
}
