// Package uploader runs the collect, authenticate, build and send stages in
// order. A failing stage stops the run before any later stage touches the
// network.
package uploader

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"darkstatic/internal/canvas"
	"darkstatic/internal/collector"
	"darkstatic/internal/formdata"
	"darkstatic/internal/models"
	"darkstatic/internal/session"
	"darkstatic/pkg/utils"
)

type Authenticator interface {
	Authenticate(ctx context.Context, host models.HostTarget, creds models.Credentials) (*models.Session, error)
}

type Sender interface {
	Send(ctx context.Context, host models.HostTarget, session *models.Session, body *formdata.Body, dryRun bool) (*models.UploadOutcome, error)
}

type Request struct {
	Host        models.HostTarget
	Credentials models.Credentials
	PathSpecs   []string
	DryRun      bool
}

type Uploader struct {
	auth   Authenticator
	sender Sender
}

func New(auth Authenticator, sender Sender) *Uploader {
	return &Uploader{auth: auth, sender: sender}
}

func NewDefault(authTimeout time.Duration) *Uploader {
	return New(session.New(session.WithTimeout(authTimeout)), canvas.New())
}

func (u *Uploader) Run(ctx context.Context, req Request) (*models.UploadResult, error) {
	startTime := time.Now()

	batch, err := collector.Collect(req.PathSpecs)
	if err != nil {
		return nil, err
	}
	for _, entry := range batch.Entries {
		slog.Info("File", "name", entry.Name, "path", entry.Path)
	}

	sess, err := u.auth.Authenticate(ctx, req.Host, req.Credentials)
	if err != nil {
		return nil, err
	}
	slog.Debug("Session established", "canvas", req.Host.Canvas)

	body, err := formdata.Build(batch)
	if err != nil {
		return nil, fmt.Errorf("failed to build upload body: %w", err)
	}

	slog.Info("Going to attempt to upload files",
		"files", len(batch.Entries),
		"total_size", utils.FormatBytes(batch.TotalSizeBytes))

	outcome, err := u.sender.Send(ctx, req.Host, sess, body, req.DryRun)
	if err != nil {
		return nil, err
	}

	result := &models.UploadResult{
		Canvas:         req.Host.Canvas,
		URL:            req.Host.AssetsURL(),
		Items:          batch.Entries,
		TotalFiles:     len(batch.Entries),
		TotalSizeBytes: batch.TotalSizeBytes,
		TotalSizeHuman: utils.FormatBytes(batch.TotalSizeBytes),
		OperationTime:  utils.FormatTime(startTime),
		UploadDuration: time.Since(startTime).String(),
		StatusCode:     outcome.StatusCode,
		Response:       outcome.Response,
		DryRun:         req.DryRun,
		Request:        outcome.DryRun,
	}
	return result, nil
}
