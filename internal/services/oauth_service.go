package services

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"agrisoil-backend/internal/config"
)

const (
	googleTokenInfoURL = "https://oauth2.googleapis.com/tokeninfo"
	googleUserInfoURL  = "https://www.googleapis.com/oauth2/v3/userinfo"
	twitterTokenURL    = "https://api.twitter.com/2/oauth2/token"
	twitterUserMeURL   = "https://api.twitter.com/2/users/me"
)

// OAuthIdentity is the provider-agnostic result of a social login.
type OAuthIdentity struct {
	Email    string
	Name     string
	Provider string
}

type IOAuthService interface {
	VerifyGoogleToken(token string) (*OAuthIdentity, error)
	ExchangeTwitterCode(code, codeVerifier, redirectURI string) (*OAuthIdentity, error)
}

type OAuthService struct {
	cfg    config.OAuthConfig
	client *http.Client
}

func NewOAuthService(cfg config.OAuthConfig) IOAuthService {
	return &OAuthService{
		cfg: cfg,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type googleTokenInfo struct {
	Aud           string `json:"aud"`
	Email         string `json:"email"`
	EmailVerified string `json:"email_verified"`
	Name          string `json:"name"`
}

type googleUserInfo struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// VerifyGoogleToken accepts either a Google Sign-In ID token or an
// OAuth access token. ID token verification is tried first; on failure
// the value is treated as an access token against the userinfo
// endpoint.
func (s *OAuthService) VerifyGoogleToken(token string) (*OAuthIdentity, error) {
	identity, err := s.verifyGoogleIDToken(token)
	if err == nil {
		return identity, nil
	}
	log.Printf("google id_token verification failed, trying access token: %v", err)

	return s.verifyGoogleAccessToken(token)
}

func (s *OAuthService) verifyGoogleIDToken(idToken string) (*OAuthIdentity, error) {
	resp, err := s.client.Get(googleTokenInfoURL + "?id_token=" + url.QueryEscape(idToken))
	if err != nil {
		return nil, fmt.Errorf("failed to call google tokeninfo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google tokeninfo returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read tokeninfo response: %w", err)
	}

	var info googleTokenInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, fmt.Errorf("failed to parse tokeninfo response: %w", err)
	}

	if s.cfg.GoogleClientID != "" && info.Aud != s.cfg.GoogleClientID {
		return nil, fmt.Errorf("token audience mismatch")
	}
	if info.Email == "" {
		return nil, fmt.Errorf("token carries no email")
	}

	return &OAuthIdentity{Email: info.Email, Name: info.Name, Provider: "google"}, nil
}

func (s *OAuthService) verifyGoogleAccessToken(accessToken string) (*OAuthIdentity, error) {
	req, err := http.NewRequest(http.MethodGet, googleUserInfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build userinfo request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call google userinfo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google userinfo returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read userinfo response: %w", err)
	}

	var info googleUserInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, fmt.Errorf("failed to parse userinfo response: %w", err)
	}
	if info.Email == "" {
		return nil, fmt.Errorf("userinfo carries no email")
	}

	return &OAuthIdentity{Email: info.Email, Name: info.Name, Provider: "google"}, nil
}

type twitterTokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type twitterUserResponse struct {
	Data struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Username string `json:"username"`
	} `json:"data"`
}

// ExchangeTwitterCode completes the OAuth 2.0 PKCE flow. Twitter does
// not expose the account email, so a stable synthetic address keyed on
// the account ID identifies the user locally.
func (s *OAuthService) ExchangeTwitterCode(code, codeVerifier, redirectURI string) (*OAuthIdentity, error) {
	if redirectURI == "" {
		redirectURI = s.cfg.TwitterRedirectURI
	}

	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("code_verifier", codeVerifier)
	form.Set("redirect_uri", redirectURI)
	form.Set("client_id", s.cfg.TwitterClientID)

	req, err := http.NewRequest(http.MethodPost, twitterTokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if s.cfg.TwitterClientSecret != "" {
		req.SetBasicAuth(s.cfg.TwitterClientID, s.cfg.TwitterClientSecret)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call twitter token endpoint: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read token response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		log.Printf("twitter token exchange failed: status %d body %s", resp.StatusCode, string(body))
		return nil, fmt.Errorf("twitter token exchange returned status %d", resp.StatusCode)
	}

	var tokenResp twitterTokenResponse
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return nil, fmt.Errorf("failed to parse token response: %w", err)
	}
	if tokenResp.AccessToken == "" {
		return nil, fmt.Errorf("twitter returned no access token")
	}

	userReq, err := http.NewRequest(http.MethodGet, twitterUserMeURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build user request: %w", err)
	}
	userReq.Header.Set("Authorization", "Bearer "+tokenResp.AccessToken)

	userResp, err := s.client.Do(userReq)
	if err != nil {
		return nil, fmt.Errorf("failed to call twitter users/me: %w", err)
	}
	defer userResp.Body.Close()

	if userResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("twitter users/me returned status %d", userResp.StatusCode)
	}

	userBody, err := io.ReadAll(userResp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read users/me response: %w", err)
	}

	var user twitterUserResponse
	if err := json.Unmarshal(userBody, &user); err != nil {
		return nil, fmt.Errorf("failed to parse users/me response: %w", err)
	}
	if user.Data.ID == "" {
		return nil, fmt.Errorf("twitter returned no account id")
	}

	return &OAuthIdentity{
		Email:    fmt.Sprintf("%s@twitter.oauth", user.Data.ID),
		Name:     user.Data.Name,
		Provider: "twitter",
	}, nil
}
