package uploader_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"darkstatic/internal/apperr"
	"darkstatic/internal/canvas"
	"darkstatic/internal/models"
	"darkstatic/internal/session"
	"darkstatic/internal/uploader"
)

type fakeCanvas struct {
	mu         sync.Mutex
	authStatus int
	probes     int
	uploads    int
	parts      []string
}

func (f *fakeCanvas) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /a/demo", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.probes++
		f.mu.Unlock()

		if user, pass, ok := r.BasicAuth(); !ok || user != "alice" || pass != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if f.authStatus != 0 {
			w.WriteHeader(f.authStatus)
			return
		}
		w.Header().Set("Set-Cookie", "__session=s3cr3t; Path=/")
		_, _ = w.Write([]byte(`<script>const csrfToken = "tok-1";</script>`))
	})
	mux.HandleFunc("POST /api/demo/static_assets", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "__session=s3cr3t; Path=/", r.Header.Get("Cookie"))
		assert.Equal(t, "tok-1", r.Header.Get("X-Csrf-Token"))
		if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		f.mu.Lock()
		f.uploads++
		for name := range r.MultipartForm.File {
			f.parts = append(f.parts, name)
		}
		f.mu.Unlock()

		_, _ = w.Write([]byte(`{"success":true}`))
	})
	return mux
}

func setup(t *testing.T, f *fakeCanvas) (*uploader.Uploader, models.HostTarget) {
	t.Helper()

	srv := httptest.NewServer(f.handler(t))
	t.Cleanup(srv.Close)

	u := uploader.New(
		session.New(session.WithHTTPClient(srv.Client())),
		canvas.NewWithHTTPClient(srv.Client()),
	)
	return u, models.NewHostTarget(srv.URL, "demo")
}

func assetsDir(t *testing.T) string {
	t.Helper()

	dir := filepath.Join(t.TempDir(), "assets")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "logo.png"), make([]byte, 1024), 0o644))
	return dir
}

var alice = models.Credentials{Username: "alice", Password: "secret"}

func TestRun_EndToEnd(t *testing.T) {
	f := &fakeCanvas{}
	u, host := setup(t, f)

	result, err := u.Run(context.Background(), uploader.Request{
		Host:        host,
		Credentials: alice,
		PathSpecs:   []string{assetsDir(t)},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, f.probes)
	assert.Equal(t, 1, f.uploads)
	assert.Equal(t, []string{"logo.png"}, f.parts)

	assert.Equal(t, "demo", result.Canvas)
	assert.Equal(t, host.AssetsURL(), result.URL)
	assert.Equal(t, 1, result.TotalFiles)
	assert.Equal(t, int64(1024), result.TotalSizeBytes)
	assert.Equal(t, "1.024kB", result.TotalSizeHuman)
	assert.Equal(t, http.StatusOK, result.StatusCode)
	assert.Equal(t, `{"success":true}`, result.Response)
	assert.False(t, result.DryRun)
	assert.Nil(t, result.Request)
}

func TestRun_LogsUploadTotalAsAttributes(t *testing.T) {
	var buf bytes.Buffer
	old := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(old) })

	f := &fakeCanvas{}
	u, host := setup(t, f)

	_, err := u.Run(context.Background(), uploader.Request{
		Host:        host,
		Credentials: alice,
		PathSpecs:   []string{assetsDir(t)},
		DryRun:      true,
	})
	require.NoError(t, err)

	var found bool
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var record map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &record))
		if record["msg"] != "Going to attempt to upload files" {
			continue
		}
		found = true
		assert.Equal(t, "1.024kB", record["total_size"])
		assert.Equal(t, float64(1), record["files"])
	}
	assert.True(t, found, "upload total was not logged")
}

func TestRun_DryRunSkipsUpload(t *testing.T) {
	f := &fakeCanvas{}
	u, host := setup(t, f)

	result, err := u.Run(context.Background(), uploader.Request{
		Host:        host,
		Credentials: alice,
		PathSpecs:   []string{assetsDir(t)},
		DryRun:      true,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, f.probes)
	assert.Equal(t, 0, f.uploads)
	assert.True(t, result.DryRun)
	require.NotNil(t, result.Request)
	assert.Equal(t, "tok-1", result.Request.Headers["x-csrf-token"])
	require.Len(t, result.Request.Fields, 1)
	assert.Equal(t, "logo.png", result.Request.Fields[0].Name)
}

func TestRun_NoFilesStopsBeforeNetwork(t *testing.T) {
	f := &fakeCanvas{}
	u, host := setup(t, f)

	_, err := u.Run(context.Background(), uploader.Request{
		Host:        host,
		Credentials: alice,
		PathSpecs:   []string{t.TempDir()},
	})

	assert.ErrorIs(t, err, apperr.ErrNoFilesFound)
	assert.Equal(t, 0, f.probes)
	assert.Equal(t, 0, f.uploads)
}

func TestRun_AuthFailureStopsBeforeUpload(t *testing.T) {
	f := &fakeCanvas{}
	u, host := setup(t, f)

	_, err := u.Run(context.Background(), uploader.Request{
		Host:        host,
		Credentials: models.Credentials{Username: "alice", Password: "wrong"},
		PathSpecs:   []string{assetsDir(t)},
	})

	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.KindAuthFailure, appErr.Kind)
	assert.Equal(t, http.StatusUnauthorized, appErr.StatusCode)
	assert.Equal(t, 0, f.uploads)
}

func TestRun_ServerErrorOnProbe(t *testing.T) {
	f := &fakeCanvas{authStatus: http.StatusInternalServerError}
	u, host := setup(t, f)

	_, err := u.Run(context.Background(), uploader.Request{
		Host:        host,
		Credentials: alice,
		PathSpecs:   []string{assetsDir(t)},
	})

	assert.ErrorIs(t, err, apperr.ErrAuth)
	assert.Equal(t, 0, f.uploads)
}
