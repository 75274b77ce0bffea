package models

type FileEntry struct {
	Path string `json:"path"`
	Name string `json:"name"`
	Size int64  `json:"size"`
}

// UploadBatch is never empty and TotalSizeBytes is the sum of entry sizes.
type UploadBatch struct {
	Entries        []FileEntry `json:"entries"`
	TotalSizeBytes int64       `json:"total_size_bytes"`
}

func (b *UploadBatch) Add(entry FileEntry) {
	b.Entries = append(b.Entries, entry)
	b.TotalSizeBytes += entry.Size
}

type FormField struct {
	Name     string `json:"name"`
	FileName string `json:"file_name"`
	Path     string `json:"path"`
	Size     int64  `json:"size"`
}

type DryRunResult struct {
	Method      string            `json:"method"`
	URL         string            `json:"url"`
	Headers     map[string]string `json:"headers"`
	ContentType string            `json:"content_type"`
	BodyLength  int64             `json:"body_length"`
	Fields      []FormField       `json:"fields"`
}

// UploadOutcome holds either a dry-run rendering or the server's raw response.
type UploadOutcome struct {
	DryRun     *DryRunResult
	StatusCode int
	Response   string
}

type UploadResult struct {
	Canvas         string        `json:"canvas"`
	URL            string        `json:"url"`
	Items          []FileEntry   `json:"items"`
	TotalFiles     int           `json:"total_files"`
	TotalSizeBytes int64         `json:"total_size_bytes"`
	TotalSizeHuman string        `json:"total_size_human"`
	OperationTime  string        `json:"operation_time"`
	UploadDuration string        `json:"upload_duration"`
	StatusCode     int           `json:"status_code,omitempty"`
	Response       string        `json:"response,omitempty"`
	DryRun         bool          `json:"dry_run"`
	Request        *DryRunResult `json:"request,omitempty"`
}

type ListResult struct {
	Items          []FileEntry `json:"items"`
	TotalFiles     int         `json:"total_files"`
	TotalSizeBytes int64       `json:"total_size_bytes"`
	TotalSizeHuman string      `json:"total_size_human"`
	OperationTime  string      `json:"operation_time"`
}
