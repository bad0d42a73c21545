// Package gemini implements the assistant transport against the Gemini
// generative language API. Conversations stream replies over SSE from the
// streamGenerateContent endpoint with the google_search tool enabled, so
// answers arrive with web grounding metadata attached.
package gemini

import (
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/campus-ai/tutor/provider"
)

const (
	defaultModel     = "gemini-2.5-flash"
	defaultBaseURL   = "https://generativelanguage.googleapis.com"
	defaultAPIKeyEnv = "GEMINI_API_KEY"
	defaultTimeout   = 2 * time.Minute
)

// ErrMissingAPIKey is reported on a conversation's first stream when no API
// key was found at client construction time.
var ErrMissingAPIKey = errors.New("gemini: API key not set")

func init() {
	provider.Register("gemini", func(cfg *provider.Config) (provider.Provider, error) {
		return NewClient(cfg), nil
	})
}

// Client talks to the Gemini API. A client with no API key is still valid:
// the failure is deferred to the first streamed turn, per the transport
// contract.
type Client struct {
	model   string
	baseURL string
	apiKey  string
	timeout time.Duration
	http    *http.Client

	// setupErr, when non-nil, terminates every stream immediately.
	setupErr error
}

// NewClient creates a Client from configuration, resolving the API key from
// the configured environment variable (GEMINI_API_KEY by default).
func NewClient(cfg *provider.Config) *Client {
	c := &Client{
		model:   cfg.Model,
		baseURL: cfg.BaseURL,
		timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
	}
	if c.model == "" {
		c.model = defaultModel
	}
	if c.baseURL == "" {
		c.baseURL = defaultBaseURL
	}
	if c.timeout <= 0 {
		c.timeout = defaultTimeout
	}

	keyEnv := cfg.APIKeyEnv
	if keyEnv == "" {
		keyEnv = defaultAPIKeyEnv
	}
	c.apiKey = os.Getenv(keyEnv)
	if c.apiKey == "" {
		c.setupErr = ErrMissingAPIKey
	}

	// No http.Client.Timeout: it would cap the whole response body and
	// cut long streams short. Per-turn deadlines are set via context in
	// Stream instead.
	c.http = &http.Client{}

	return c
}

// Open starts a fresh conversation with the given system instruction.
func (c *Client) Open(instruction string) provider.Conversation {
	return &conversation{
		client:      c,
		instruction: instruction,
	}
}
