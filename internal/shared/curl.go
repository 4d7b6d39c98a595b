// Utilities for turning a browser "Copy as cURL" command into the headers
// file the ytmusicapi proxy authenticates with.
package shared

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"
)

// BrowserHeaders represents headers and cookies parsed from a cURL command
// captured on music.youtube.com.
type BrowserHeaders struct {
	Headers map[string]string
	Cookie  string
}

// ParseCurlFile reads a .sh file containing a cURL command and extracts headers.
func ParseCurlFile(filepath string) (*BrowserHeaders, error) {
	content, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read curl file: %w", err)
	}

	return ParseCurlCommand(content)
}

// ParseCurlCommand parses a cURL command string and extracts headers.
func ParseCurlCommand(data []byte) (*BrowserHeaders, error) {
	curlCmd := string(data)
	curlCmd = strings.ReplaceAll(curlCmd, "\\\n", " ")
	curlCmd = strings.ReplaceAll(curlCmd, "\\", "")

	headers := make(map[string]string)
	var cookie string

	headerRegex := regexp.MustCompile(`-H\s+'([^']+)'|-H\s+"([^"]+)"`)
	matches := headerRegex.FindAllStringSubmatch(curlCmd, -1)

	for _, match := range matches {
		headerLine := match[1]
		if headerLine == "" {
			headerLine = match[2]
		}

		parts := strings.SplitN(headerLine, ":", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		if strings.EqualFold(key, "cookie") {
			cookie = value
		} else {
			headers[key] = value
		}
	}

	// Cookies may also arrive via curl's -b flag instead of a header.
	cookieRegex := regexp.MustCompile(`-b\s+'([^']+)'|-b\s+"([^"]+)"`)
	if cookieMatches := cookieRegex.FindStringSubmatch(curlCmd); len(cookieMatches) > 1 {
		if cookieMatches[1] != "" {
			cookie = cookieMatches[1]
		} else if cookieMatches[2] != "" {
			cookie = cookieMatches[2]
		}
	}

	if len(headers) == 0 && cookie == "" {
		return nil, fmt.Errorf("no headers found in curl command")
	}

	return &BrowserHeaders{
		Headers: headers,
		Cookie:  cookie,
	}, nil
}

// ToHeadersRaw converts parsed headers to the headers_raw format ytmusicapi
// expects: newline-separated "Key: Value" pairs.
func (b *BrowserHeaders) ToHeadersRaw() string {
	var lines []string

	for key, value := range b.Headers {
		lines = append(lines, fmt.Sprintf("%s: %s", key, value))
	}

	if b.Cookie != "" {
		lines = append(lines, fmt.Sprintf("cookie: %s", b.Cookie))
	}

	return strings.Join(lines, "\n")
}

// ToJSON serializes the headers as the JSON document written to
// headers_auth.json for upload to the proxy.
func (b *BrowserHeaders) ToJSON() ([]byte, error) {
	doc := make(map[string]string, len(b.Headers)+1)
	for key, value := range b.Headers {
		doc[key] = value
	}
	if b.Cookie != "" {
		doc["Cookie"] = b.Cookie
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal headers: %w", err)
	}
	return data, nil
}
