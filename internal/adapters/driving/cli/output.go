package cli

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/juris/internal/core/domain"
)

// wantJSON reports whether command output should be JSON. In auto mode JSON
// is used when stdout is a file or pipe rather than a terminal.
func wantJSON(cmd *cobra.Command) bool {
	switch outputFormat {
	case "json":
		return true
	case "text":
		return false
	}
	f, ok := cmd.OutOrStdout().(*os.File)
	return ok && !term.IsTerminal(int(f.Fd()))
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func formatTime(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04")
}

// parseWhen accepts RFC 3339, "2006-01-02 15:04" or a bare date in local time.
func parseWhen(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	for _, layout := range []string{"2006-01-02 15:04", time.DateOnly} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, domain.Errorf(domain.ErrValidation, "cannot parse time %q (use RFC 3339 or YYYY-MM-DD HH:MM)", s)
}

// readUpload loads a file for attaching. The content type is sniffed so
// the domain check sees what the bytes are, not what the name claims.
func readUpload(path string) (domain.Upload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Upload{}, fmt.Errorf("reading %s: %w", path, err)
	}
	return domain.Upload{
		Filename:    filepath.Base(path),
		ContentType: http.DetectContentType(data),
		Data:        data,
	}, nil
}
