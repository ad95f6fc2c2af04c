package jobscan

import (
	"bufio"
	"io"
	"net/url"
	"strings"
)

// DefaultURLLimit caps how many URLs a batch processes.
const DefaultURLLimit = 10

// ReadURLList reads one URL per line. Blank lines and lines starting with
// '#' are ignored, URLs without a scheme get https://, exact duplicates are
// dropped, and at most limit entries are returned (limit <= 0 means no cap).
func ReadURLList(r io.Reader, limit int) ([]string, error) {
	var urls []string
	seen := make(map[string]struct{})

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = EnsureScheme(line)
		if _, ok := seen[line]; ok {
			continue
		}
		seen[line] = struct{}{}
		urls = append(urls, line)
		if limit > 0 && len(urls) >= limit {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return urls, nil
}

// ParseURLList is ReadURLList over a string.
func ParseURLList(text string, limit int) []string {
	urls, _ := ReadURLList(strings.NewReader(text), limit)
	return urls
}

// EnsureScheme prepends https:// when rawURL has no scheme.
func EnsureScheme(rawURL string) string {
	if strings.Contains(rawURL, "://") {
		return rawURL
	}
	return "https://" + rawURL
}

// ValidateURL returns an EINVALID error unless rawURL is an absolute
// http or https URL with a host.
func ValidateURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return Errorf(EINVALID, "invalid URL %q: %v", rawURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return Errorf(EINVALID, "unsupported URL scheme %q, use http or https", u.Scheme)
	}
	if u.Host == "" {
		return Errorf(EINVALID, "URL %q has no host", rawURL)
	}
	return nil
}

// HostOf returns the host of rawURL, or "" if it cannot be parsed.
func HostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
