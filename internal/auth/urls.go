package auth

import "net/url"

// LoginURL returns the provider login page with a redirect back to returnTo.
func LoginURL(authURL, returnTo string) string {
	if returnTo == "" {
		returnTo = "/"
	}
	return authURL + "?redirect=" + url.QueryEscape(returnTo)
}

// LogoutURL returns the provider logout endpoint with a redirect back to returnTo.
func LogoutURL(authURL, returnTo string) string {
	if returnTo == "" {
		returnTo = "/"
	}
	return authURL + "/api/logout?redirect=" + url.QueryEscape(returnTo)
}
