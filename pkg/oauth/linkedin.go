// Package oauth runs the LinkedIn OpenID Connect code flow and maps the
// returned profile onto the fields the tracker uses.
package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/linkedin"
)

const (
	DefaultUserInfoURL = "https://api.linkedin.com/v2/userinfo"
	fallbackName       = "LinkedIn User"
)

// Profile is the provider profile after fallbacks are applied.
type Profile struct {
	ID    string
	Name  string
	Email string
	Image string
}

// rawProfile covers both the OIDC userinfo shape and the legacy v2 /me shape.
type rawProfile struct {
	ID                 string `json:"id"`
	Sub                string `json:"sub"`
	LocalizedFirstName string `json:"localizedFirstName"`
	LocalizedLastName  string `json:"localizedLastName"`
	Name               string `json:"name"`
	EmailAddress       string `json:"emailAddress"`
	Email              string `json:"email"`
	Picture            string `json:"picture"`
}

type LinkedIn struct {
	config      *oauth2.Config
	userInfoURL string
}

func NewLinkedIn(clientID, clientSecret, redirectURL string) *LinkedIn {
	return &LinkedIn{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Endpoint:     linkedin.Endpoint,
			Scopes:       []string{"openid", "profile", "email"},
		},
		userInfoURL: DefaultUserInfoURL,
	}
}

// WithEndpoints points the flow at other URLs; used by tests.
func (l *LinkedIn) WithEndpoints(endpoint oauth2.Endpoint, userInfoURL string) *LinkedIn {
	l.config.Endpoint = endpoint
	l.userInfoURL = userInfoURL
	return l
}

// AuthCodeURL returns the provider URL the browser is sent to. prompt=login
// forces the account chooser so switching accounts works.
func (l *LinkedIn) AuthCodeURL(state string) string {
	return l.config.AuthCodeURL(state, oauth2.SetAuthURLParam("prompt", "login"))
}

// Exchange trades the callback code for a token and loads the profile.
func (l *LinkedIn) Exchange(ctx context.Context, code string) (*Profile, error) {
	token, err := l.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("oauth exchange: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.userInfoURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := l.config.Client(ctx, token).Do(req)
	if err != nil {
		return nil, fmt.Errorf("oauth userinfo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("oauth userinfo: provider returned %d", resp.StatusCode)
	}

	var raw rawProfile
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("oauth userinfo: %w", err)
	}

	profile := MapProfile(raw)
	if profile.ID == "" {
		return nil, fmt.Errorf("oauth userinfo: profile has no id")
	}
	return profile, nil
}

// MapProfile applies the field fallbacks: full localized name, then the
// generic name, then a placeholder.
func MapProfile(raw rawProfile) *Profile {
	p := &Profile{
		ID:    firstNonEmpty(raw.ID, raw.Sub),
		Email: firstNonEmpty(raw.EmailAddress, raw.Email),
		Image: raw.Picture,
	}

	switch {
	case raw.LocalizedFirstName != "" && raw.LocalizedLastName != "":
		p.Name = raw.LocalizedFirstName + " " + raw.LocalizedLastName
	case strings.TrimSpace(raw.Name) != "":
		p.Name = raw.Name
	default:
		p.Name = fallbackName
	}
	return p
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
