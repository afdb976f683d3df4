package helpers

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
)

const redacted = "***"

// CurlCommandFromRequest renders an equivalent cURL command for troubleshooting.
// Credentials in the Authorization header are redacted, the request body is
// restored so the request can still be sent.
func CurlCommandFromRequest(request *http.Request) (string, error) {
	var command strings.Builder

	command.WriteString("curl -X ")
	command.WriteString(request.Method)

	headers := make([]string, 0, len(request.Header))
	for name := range request.Header {
		headers = append(headers, name)
	}
	sort.Strings(headers)

	for _, name := range headers {
		for _, value := range request.Header[name] {
			if name == "Authorization" {
				value = redactCredentials(value)
			}
			fmt.Fprintf(&command, " -H '%s: %s'", name, shellEscapeSingleQuote(value))
		}
	}

	if request.Body != nil && request.Body != http.NoBody {
		body, err := io.ReadAll(request.Body)
		if err != nil {
			return "", err
		}
		if err := request.Body.Close(); err != nil {
			return "", err
		}
		request.Body = io.NopCloser(bytes.NewReader(body))

		if len(body) > 0 {
			fmt.Fprintf(&command, " -d '%s'", shellEscapeSingleQuote(string(body)))
		}
	}

	fmt.Fprintf(&command, " '%s'", shellEscapeSingleQuote(request.URL.String()))

	return command.String(), nil
}

// shellEscapeSingleQuote escapes single quotes for use inside a single-quoted shell string.
func shellEscapeSingleQuote(value string) string {
	return strings.ReplaceAll(value, "'", `'\''`)
}

// redactCredentials keeps the authorization scheme and hides the credentials.
func redactCredentials(value string) string {
	if scheme, _, found := strings.Cut(value, " "); found {
		return scheme + " " + redacted
	}
	return redacted
}
