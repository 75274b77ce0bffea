package utils

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/docker/go-units"

	"darkstatic/internal/apperr"
	"darkstatic/internal/models"
)

// FormatBytes renders a size with decimal (SI) units, e.g. "1.024kB".
func FormatBytes(bytes int64) string {
	return units.HumanSize(float64(bytes))
}

func PrintJSON(data interface{}) error {
	return WriteJSON(os.Stdout, data)
}

func WriteJSON(w io.Writer, data interface{}) error {
	jsonOutput, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(jsonOutput))
	return err
}

func PrintError(err error, command string) {
	errorResp := models.ErrorResponse{
		Error:     err.Error(),
		Kind:      apperr.KindOf(err).String(),
		Timestamp: time.Now().Format(time.RFC3339),
		Command:   command,
	}
	err = PrintJSON(errorResp)
	if err != nil {
		slog.Error("Failed to print error in JSON format", "error", err)
		fmt.Println("Error: ", errorResp)
		return
	}
}

func FormatTime(t time.Time) string {
	return t.Format(time.RFC3339)
}
