// Package canvas sends static asset uploads to a canvas.
package canvas

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"darkstatic/internal/apperr"
	"darkstatic/internal/formdata"
	"darkstatic/internal/models"
)

const (
	headerCookie    = "cookie"
	headerCSRFToken = "x-csrf-token"
)

type Client struct {
	httpClient *http.Client
}

// New returns a Client without a request timeout so large uploads are never
// cut short. Gzip response decoding is left on in the transport.
func New() *Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DisableCompression = false

	return &Client{
		httpClient: &http.Client{Transport: transport},
	}
}

func NewWithHTTPClient(c *http.Client) *Client {
	return &Client{httpClient: c}
}

// Send posts body to the canvas' static asset endpoint, or renders the
// request without sending it when dryRun is set. Any HTTP status is returned
// as-is; only transport and read failures are errors.
func (c *Client) Send(ctx context.Context, host models.HostTarget, session *models.Session, body *formdata.Body, dryRun bool) (*models.UploadOutcome, error) {
	headers := map[string]string{
		headerCookie:    session.Cookie,
		headerCSRFToken: session.CSRFToken,
		"Content-Type":  body.ContentType(),
	}

	if dryRun {
		slog.Debug("Dry run, not sending upload", "url", host.AssetsURL())
		return &models.UploadOutcome{
			DryRun: &models.DryRunResult{
				Method:      http.MethodPost,
				URL:         host.AssetsURL(),
				Headers:     headers,
				ContentType: body.ContentType(),
				BodyLength:  body.Len(),
				Fields:      body.Fields(),
			},
		}, nil
	}

	stream := body.Open()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, host.AssetsURL(), stream)
	if err != nil {
		stream.Close()
		return nil, apperr.UploadFailure(fmt.Errorf("failed to build upload request: %w", err))
	}
	req.ContentLength = body.Len()
	req.GetBody = func() (io.ReadCloser, error) {
		return body.Open(), nil
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	slog.Debug("Sending upload", "url", host.AssetsURL(), "parts", len(body.Fields()))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperr.UploadFailure(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperr.UploadFailure(fmt.Errorf("failed to read upload response: %w", err))
	}

	return &models.UploadOutcome{
		StatusCode: resp.StatusCode,
		Response:   string(respBody),
	}, nil
}
