package security

import (
	"Nexus/internal/api/config"
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
)

const (
	googleTokenURL    = "https://oauth2.googleapis.com/token"
	googleUserInfoURL = "https://www.googleapis.com/oauth2/v3/userinfo"
)

// GoogleUser Google userinfo 接口返回的用户信息
type GoogleUser struct {
	Sub        string `json:"sub"`
	Email      string `json:"email"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
	Picture    string `json:"picture"`
}

type googleTokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

var googleClient = resty.New()

// ExchangeGoogleCode 用授权码换取 access token 并拉取用户信息
func ExchangeGoogleCode(ctx context.Context, code string) (*GoogleUser, error) {
	cfg := config.Cfg.Google

	var tokenRes googleTokenResponse
	resp, err := googleClient.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"code":          code,
			"client_id":     cfg.ClientID,
			"client_secret": cfg.ClientSecret,
			"redirect_uri":  cfg.RedirectURI,
			"grant_type":    "authorization_code",
		}).
		SetResult(&tokenRes).
		Post(googleTokenURL)
	if err != nil {
		return nil, fmt.Errorf("google token exchange failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("google token exchange failed: status %d", resp.StatusCode())
	}

	var user GoogleUser
	resp, err = googleClient.R().
		SetContext(ctx).
		SetAuthToken(tokenRes.AccessToken).
		SetResult(&user).
		Get(googleUserInfoURL)
	if err != nil {
		return nil, fmt.Errorf("google userinfo fetch failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("google userinfo fetch failed: status %d", resp.StatusCode())
	}

	if user.Email == "" {
		return nil, fmt.Errorf("google userinfo missing email")
	}

	return &user, nil
}
