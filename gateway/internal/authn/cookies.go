package authn

import (
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var (
	sameSiteRegex = regexp.MustCompile(`(?i)^samesite=(lax|strict|none)$`)
	maxAgeRegex   = regexp.MustCompile(`(?i)^max-age=(-?\d+)$`)
)

// ParseSetCookie parses one raw Set-Cookie header value into a cookie
// suitable for re-emission on the gateway's own origin. The value is
// URL-decoded exactly once, the Secure and HttpOnly flags are recognized
// case-insensitively, and the path is always rewritten to "/" so the cookie
// covers the whole site. A non-nil error means the directive was malformed
// and the cookie should be skipped.
func ParseSetCookie(raw string) (*http.Cookie, error) {
	directives := strings.Split(raw, ";")
	nameValue := strings.SplitN(strings.TrimSpace(directives[0]), "=", 2)
	if len(nameValue) != 2 || nameValue[0] == "" {
		return nil, errors.Errorf("malformed cookie directive %q", raw)
	}
	value, err := url.PathUnescape(nameValue[1])
	if err != nil {
		return nil, errors.Wrapf(
			err,
			"error decoding value of cookie %q",
			nameValue[0],
		)
	}
	cookie := &http.Cookie{
		Name:  nameValue[0],
		Value: value,
		Path:  "/",
	}
	// Attributes live strictly after the name=value pair. The value itself
	// may contain text that looks like an attribute and must never match.
	for _, directive := range directives[1:] {
		directive = strings.TrimSpace(directive)
		switch strings.ToLower(directive) {
		case "secure":
			cookie.Secure = true
		case "httponly":
			cookie.HttpOnly = true
		default:
			if match := sameSiteRegex.FindStringSubmatch(directive); match != nil {
				switch strings.ToLower(match[1]) {
				case "lax":
					cookie.SameSite = http.SameSiteLaxMode
				case "strict":
					cookie.SameSite = http.SameSiteStrictMode
				case "none":
					cookie.SameSite = http.SameSiteNoneMode
				}
			} else if match := maxAgeRegex.FindStringSubmatch(directive); match != nil {
				// The regex only matches integers, so this cannot fail
				maxAge, _ := strconv.Atoi(match[1]) // nolint: errcheck
				cookie.MaxAge = maxAge
			}
		}
	}
	return cookie, nil
}

// relayedCookies parses every Set-Cookie header on a backend response,
// skipping any directive that cannot be parsed. A bad cookie never aborts
// forwarding of the rest of the response.
func relayedCookies(resp *http.Response) []*http.Cookie {
	rawCookies := resp.Header["Set-Cookie"]
	cookies := make([]*http.Cookie, 0, len(rawCookies))
	for _, raw := range rawCookies {
		cookie, err := ParseSetCookie(raw)
		if err != nil {
			continue
		}
		cookies = append(cookies, cookie)
	}
	return cookies
}
