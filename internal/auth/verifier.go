package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Mrlopezio/homelabpwa/internal/config"
	"github.com/Mrlopezio/homelabpwa/internal/models"
)

// Identity response headers set by the provider's nginx-auth endpoint.
const (
	headerRemoteUser   = "Remote-User"
	headerRemoteEmail  = "Remote-Email"
	headerRemoteName   = "Remote-Name"
	headerRemoteGroups = "Remote-Groups"
)

// Verifier checks session cookies against a tinyauth-compatible identity
// provider. It owns no state beyond its HTTP client; the provider owns
// authentication entirely.
type Verifier struct {
	baseURL    string
	cookieName string
	client     *http.Client
}

// NewVerifier creates a verifier for the configured identity provider.
func NewVerifier(cfg *config.Config) *Verifier {
	return &Verifier{
		baseURL:    strings.TrimRight(cfg.AuthURL, "/"),
		cookieName: cfg.SessionCookie,
		client: &http.Client{
			Timeout: 5 * time.Second,
			// Auth failures arrive as redirects to the login page; surface
			// them instead of following.
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// Verify checks the session cookie value with the identity provider.
// A non-nil error means the provider was unreachable, which callers must
// treat differently from an unauthenticated verdict (503 vs 401 at the gate).
func (v *Verifier) Verify(ctx context.Context, sessionValue string) (*models.AuthResult, error) {
	if sessionValue == "" {
		return &models.AuthResult{Authenticated: false}, nil
	}

	// Primary: /api/me returns the identity as JSON.
	resp, err := v.get(ctx, "/api/me", sessionValue)
	if err != nil {
		return nil, fmt.Errorf("identity provider unreachable: %w", err)
	}
	if resp.StatusCode == http.StatusOK {
		defer resp.Body.Close()
		var body struct {
			Email    string   `json:"email"`
			Username string   `json:"username"`
			Name     string   `json:"name"`
			Groups   []string `json:"groups"`
		}
		// A 200 with an unreadable body still counts as authenticated; the
		// provider's verdict is what we trust, not its payload.
		_ = json.NewDecoder(resp.Body).Decode(&body)

		email := body.Email
		if email == "" {
			email = body.Username
		}
		if email == "" {
			email = "unknown"
		}
		name := body.Name
		if name == "" {
			name = body.Username
		}
		groups := body.Groups
		if groups == nil {
			groups = []string{}
		}
		return &models.AuthResult{
			Authenticated: true,
			User:          &models.SessionIdentity{Email: email, Name: name, Groups: groups},
		}, nil
	}
	resp.Body.Close()

	// Fallback: the nginx-auth endpoint reports identity in response headers.
	resp, err = v.get(ctx, "/api/auth/nginx", sessionValue)
	if err != nil {
		return nil, fmt.Errorf("identity provider unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK {
		email := resp.Header.Get(headerRemoteUser)
		if email == "" {
			email = resp.Header.Get(headerRemoteEmail)
		}
		if email != "" {
			var groups []string
			if raw := resp.Header.Get(headerRemoteGroups); raw != "" {
				groups = strings.Split(raw, ",")
			} else {
				groups = []string{}
			}
			return &models.AuthResult{
				Authenticated: true,
				User: &models.SessionIdentity{
					Email:  email,
					Name:   resp.Header.Get(headerRemoteName),
					Groups: groups,
				},
			}, nil
		}
	}

	return &models.AuthResult{Authenticated: false}, nil
}

func (v *Verifier) get(ctx context.Context, path, sessionValue string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.AddCookie(&http.Cookie{Name: v.cookieName, Value: sessionValue})
	return v.client.Do(req)
}
