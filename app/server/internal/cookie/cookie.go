// Package cookie parses raw Cookie headers and builds Set-Cookie values.
//
// Parsing is lenient:
//   - a segment without "=" yields its name with an empty value
//   - segments with an empty name are skipped
//   - a value that is not valid percent-encoding is kept as is
//   - for repeated names the last one wins
//
// Serialize never sets Secure or SameSite.
package cookie

import (
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// NameSession holds the opaque session token in session mode.
	NameSession = "session"

	// NameUser holds the display name itself in cookie mode.
	NameUser = "name"

	// Path is the path attribute set on every issued cookie.
	Path = "/"
)

// Options defines Set-Cookie attributes. Zero values are omitted.
type Options struct {
	ExpiresAt time.Time
	HTTPOnly  bool
	Path      string
}

// Parse splits a raw Cookie header into name -> decoded value pairs.
// Empty header gives an empty map.
func Parse(raw string) map[string]string {
	res := map[string]string{}
	if strings.TrimSpace(raw) == "" {
		return res
	}
	for _, segment := range strings.Split(raw, ";") {
		name, value, _ := strings.Cut(segment, "=")
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if decoded, err := url.PathUnescape(value); err == nil {
			value = decoded
		}
		res[name] = value
	}
	return res
}

// FromRequest parses all Cookie headers of the request.
func FromRequest(r *http.Request) map[string]string {
	return Parse(strings.Join(r.Header.Values("Cookie"), "; "))
}

// Serialize makes a Set-Cookie header value,
// i.e. "name=<encoded value>; Expires=<GMT date>; HttpOnly; Path=/".
func Serialize(name, value string, opts Options) string {
	var sb strings.Builder
	sb.WriteString(name)
	sb.WriteByte('=')
	sb.WriteString(url.PathEscape(value))
	if !opts.ExpiresAt.IsZero() {
		sb.WriteString("; Expires=")
		sb.WriteString(opts.ExpiresAt.UTC().Format(http.TimeFormat))
	}
	if opts.HTTPOnly {
		sb.WriteString("; HttpOnly")
	}
	if opts.Path != "" {
		sb.WriteString("; Path=")
		sb.WriteString(opts.Path)
	}
	return sb.String()
}
