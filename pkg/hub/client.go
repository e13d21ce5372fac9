// Package hub talks to the external Hub identity/schedule authority. The
// only call this service makes is the SSO authorization-code verification;
// the Hub issues every token, we never mint our own.
package hub

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"tutorboard_backend/internal/config"
)

var (
	// ErrCodeRejected means the Hub refused the authorization code; the
	// caller must restart the SSO flow.
	ErrCodeRejected = errors.New("hub rejected the authorization code")
	// ErrUnavailable means the Hub could not be reached at all.
	ErrUnavailable = errors.New("hub sso service unreachable")
)

type Client struct {
	baseURL    string
	serviceID  string
	httpClient *http.Client
}

func NewClient(cfg *config.HubConfig) *Client {
	return &Client{
		baseURL:    cfg.APIURL,
		serviceID:  cfg.ServiceID,
		httpClient: &http.Client{},
	}
}

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// verifyResponse unwraps both envelope shapes the Hub has been seen to
// return: {data: {...}} and the bare token pair.
type verifyResponse struct {
	Data *TokenPair `json:"data"`
	TokenPair
}

// VerifyCode exchanges an SSO authorization code for a Hub-issued token
// pair. There is no retry: a failed exchange restarts the flow client-side.
func (c *Client) VerifyCode(code string) (*TokenPair, error) {
	body, err := json.Marshal(map[string]string{
		"code":      code,
		"serviceId": c.serviceID,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest("POST", c.baseURL+"/auth/sso/verify-code", bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, ErrCodeRejected
	}

	var parsed verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%w: malformed response: %v", ErrUnavailable, err)
	}

	pair := parsed.TokenPair
	if parsed.Data != nil {
		pair = *parsed.Data
	}
	if pair.AccessToken == "" {
		return nil, ErrCodeRejected
	}

	return &pair, nil
}
