// Package emailjs is a small client for the EmailJS REST API.
package emailjs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

const (
	DefaultBaseURL = "https://api.emailjs.com"
	sendPath       = "/api/v1.0/email/send"
	maxBodyBytes   = 4 << 10
)

var (
	ErrNotInitialized = errors.New("emailjs: client not initialized, call Init first")
	ErrKeyMismatch    = errors.New("emailjs: already initialized with a different public key")
	ErrEmptyKey       = errors.New("emailjs: public key is empty")
)

// DeliveryError is returned when the API answers with a non-200 status
type DeliveryError struct {
	StatusCode int
	Body       string
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("emailjs: send failed with status %d: %s", e.StatusCode, e.Body)
}

// Receipt is the API's acknowledgment of an accepted message
type Receipt struct {
	Status int
	Text   string
}

type Config struct {
	BaseURL    string
	ServiceID  string
	PrivateKey string // accessToken, only needed when the account enforces strict mode
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client sends template emails. Init must be called once before Send.
type Client struct {
	baseURL    string
	serviceID  string
	privateKey string
	httpClient *http.Client

	mu        sync.RWMutex
	publicKey string
}

type sendRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	TemplateParams map[string]string `json:"template_params"`
	AccessToken    string            `json:"accessToken,omitempty"`
}

func New(cfg Config) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		baseURL:    baseURL,
		serviceID:  cfg.ServiceID,
		privateKey: cfg.PrivateKey,
		httpClient: httpClient,
	}
}

// Init registers the account public key. Calling it again with the same key is a no-op.
func (c *Client) Init(publicKey string) error {
	publicKey = strings.TrimSpace(publicKey)
	if publicKey == "" {
		return ErrEmptyKey
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.publicKey != "" && c.publicKey != publicKey {
		return ErrKeyMismatch
	}
	c.publicKey = publicKey
	return nil
}

func (c *Client) Initialized() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.publicKey != ""
}

// Ready reports whether Send can be attempted: initialized and bound to a service
func (c *Client) Ready() bool {
	return c.serviceID != "" && c.Initialized()
}

// Send renders templateID with params through the configured service.
func (c *Client) Send(ctx context.Context, templateID string, params map[string]string) (Receipt, error) {
	c.mu.RLock()
	publicKey := c.publicKey
	c.mu.RUnlock()
	if publicKey == "" {
		return Receipt{}, ErrNotInitialized
	}

	payload, err := json.Marshal(sendRequest{
		ServiceID:      c.serviceID,
		TemplateID:     templateID,
		UserID:         publicKey,
		TemplateParams: params,
		AccessToken:    c.privateKey,
	})
	if err != nil {
		return Receipt{}, fmt.Errorf("emailjs: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+sendPath, bytes.NewReader(payload))
	if err != nil {
		return Receipt{}, fmt.Errorf("emailjs: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Receipt{}, fmt.Errorf("emailjs: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	text := strings.TrimSpace(string(body))

	if resp.StatusCode != http.StatusOK {
		return Receipt{}, &DeliveryError{StatusCode: resp.StatusCode, Body: text}
	}

	return Receipt{Status: resp.StatusCode, Text: text}, nil
}
