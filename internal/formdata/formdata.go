// Package formdata assembles the multipart body for a static asset upload.
//
// Part headers are rendered up front; file contents are only read when the
// body is streamed, one file handle at a time.
package formdata

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"

	"darkstatic/internal/models"
)

type part struct {
	field  models.FormField
	header []byte
}

type Body struct {
	contentType string
	boundary    string
	parts       []part
	trailer     []byte
}

// Build renders one part per entry, in entry order. Field name and file name
// are both the entry's base name; repeated names are kept as separate parts.
func Build(batch *models.UploadBatch) (*Body, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	body := &Body{
		contentType: w.FormDataContentType(),
		boundary:    w.Boundary(),
		parts:       make([]part, 0, len(batch.Entries)),
	}

	for _, entry := range batch.Entries {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
			escapeQuotes(entry.Name), escapeQuotes(entry.Name)))
		h.Set("Content-Type", detectContentType(entry.Name))

		if _, err := w.CreatePart(h); err != nil {
			return nil, fmt.Errorf("failed to write part header for %s: %w", entry.Path, err)
		}

		body.parts = append(body.parts, part{
			field: models.FormField{
				Name:     entry.Name,
				FileName: entry.Name,
				Path:     entry.Path,
				Size:     entry.Size,
			},
			header: bytes.Clone(buf.Bytes()),
		})
		buf.Reset()
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart body: %w", err)
	}
	body.trailer = bytes.Clone(buf.Bytes())

	return body, nil
}

func (b *Body) ContentType() string {
	return b.contentType
}

func (b *Body) Boundary() string {
	return b.boundary
}

func (b *Body) Fields() []models.FormField {
	fields := make([]models.FormField, len(b.parts))
	for i, p := range b.parts {
		fields[i] = p.field
	}
	return fields
}

// Len is the expected body length given the sizes seen at collection time.
func (b *Body) Len() int64 {
	n := int64(len(b.trailer))
	for _, p := range b.parts {
		n += int64(len(p.header)) + p.field.Size
	}
	return n
}

// Open returns a fresh stream over the whole body. Closing it releases any
// file handle still open.
func (b *Body) Open() io.ReadCloser {
	readers := make([]io.Reader, 0, 2*len(b.parts)+1)
	files := make([]*lazyFile, 0, len(b.parts))

	for _, p := range b.parts {
		f := &lazyFile{path: p.field.Path}
		readers = append(readers, bytes.NewReader(p.header), f)
		files = append(files, f)
	}
	readers = append(readers, bytes.NewReader(b.trailer))

	return &stream{Reader: io.MultiReader(readers...), files: files}
}

type stream struct {
	io.Reader
	files []*lazyFile
}

func (s *stream) Close() error {
	var firstErr error
	for _, f := range s.files {
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// lazyFile opens its path on first Read and closes it at EOF.
type lazyFile struct {
	path string
	file *os.File
	done bool
}

func (l *lazyFile) Read(p []byte) (int, error) {
	if l.done {
		return 0, io.EOF
	}
	if l.file == nil {
		f, err := os.Open(l.path)
		if err != nil {
			return 0, fmt.Errorf("failed to open file %s: %w", l.path, err)
		}
		l.file = f
	}

	n, err := l.file.Read(p)
	if err == io.EOF {
		l.done = true
		if cerr := l.file.Close(); cerr != nil {
			return n, cerr
		}
		l.file = nil
	}
	return n, err
}

func (l *lazyFile) Close() error {
	l.done = true
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}

func detectContentType(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))

	contentTypes := map[string]string{
		".txt":   "text/plain",
		".html":  "text/html",
		".css":   "text/css",
		".js":    "application/javascript",
		".json":  "application/json",
		".xml":   "application/xml",
		".pdf":   "application/pdf",
		".zip":   "application/zip",
		".tar":   "application/x-tar",
		".gz":    "application/gzip",
		".jpg":   "image/jpeg",
		".jpeg":  "image/jpeg",
		".png":   "image/png",
		".gif":   "image/gif",
		".svg":   "image/svg+xml",
		".ico":   "image/x-icon",
		".webp":  "image/webp",
		".woff":  "font/woff",
		".woff2": "font/woff2",
		".mp3":   "audio/mpeg",
		".mp4":   "video/mp4",
	}

	if contentType, exists := contentTypes[ext]; exists {
		return contentType
	}
	if contentType := mime.TypeByExtension(ext); contentType != "" {
		return contentType
	}

	return "application/octet-stream"
}
