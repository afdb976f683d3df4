package github

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
)

// SetOutput appends a step output to the file GitHub exposes through GITHUB_OUTPUT.
// Multiline values use the heredoc syntax with a random delimiter.
func SetOutput(path, name, value string) error {
	if path == "" {
		return fmt.Errorf("GITHUB_OUTPUT is not set, cannot set output %s", name)
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}

	if strings.ContainsAny(value, "\r\n") {
		delimiter := "ghadelimiter_" + uuid.NewString()
		_, err = fmt.Fprintf(file, "%s<<%s\n%s\n%s\n", name, delimiter, value, delimiter)
	} else {
		_, err = fmt.Fprintf(file, "%s=%s\n", name, value)
	}

	if closeErr := file.Close(); err == nil {
		err = closeErr
	}

	return err
}

// WriteError prints an error annotation shown on the workflow run summary.
func WriteError(w io.Writer, message string) {
	_, _ = fmt.Fprintf(w, "::error::%s\n", escapeData(message))
}

func escapeData(value string) string {
	replacer := strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A")
	return replacer.Replace(value)
}
