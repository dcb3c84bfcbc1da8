package webextract

import "net/url"

// ValidateURL checks that raw has both a scheme and a host before any
// network access is attempted. It does not check that the host resolves.
func ValidateURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, Errorf(EINVALID, "Invalid URL format")
	}
	return u, nil
}
