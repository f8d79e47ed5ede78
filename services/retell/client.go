// File: services/retell/client.go
package retell

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultBaseURL = "https://api.retellai.com"

// Client is a thin administrative client for the voice platform: originating
// calls and registering the agent. The real-time channel goes through the
// websocket handler, not this client.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// WithBaseURL overrides the API base URL. Used in tests.
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.baseURL = baseURL
	return c
}

// Call is the platform's call descriptor, passed through untouched beyond the
// fields the dashboard needs.
type Call struct {
	CallID      string `json:"call_id"`
	CallStatus  string `json:"call_status"`
	AgentID     string `json:"agent_id,omitempty"`
	AccessToken string `json:"access_token,omitempty"`
}

// Agent is the platform's agent descriptor.
type Agent struct {
	AgentID   string `json:"agent_id"`
	AgentName string `json:"agent_name,omitempty"`
}

// RegisterAgentRequest configures the receptionist agent on the platform.
type RegisterAgentRequest struct {
	AgentName      string         `json:"agent_name"`
	VoiceID        string         `json:"voice_id"`
	Language       string         `json:"language"`
	ResponseEngine map[string]any `json:"response_engine"`
	WebhookURL     string         `json:"webhook_url,omitempty"`
}

// CreatePhoneCall originates an outbound call to the given number.
func (c *Client) CreatePhoneCall(ctx context.Context, fromNumber, toNumber, agentID string) (*Call, error) {
	body := map[string]string{
		"from_number": fromNumber,
		"to_number":   toNumber,
		"agent_id":    agentID,
	}
	var call Call
	if err := c.do(ctx, http.MethodPost, "/v2/create-phone-call", body, &call); err != nil {
		return nil, fmt.Errorf("failed to create phone call: %w", err)
	}
	return &call, nil
}

// CreateWebCall creates a browser-based test call.
func (c *Client) CreateWebCall(ctx context.Context, agentID string) (*Call, error) {
	body := map[string]string{"agent_id": agentID}
	var call Call
	if err := c.do(ctx, http.MethodPost, "/v2/create-web-call", body, &call); err != nil {
		return nil, fmt.Errorf("failed to create web call: %w", err)
	}
	return &call, nil
}

// GetCall retrieves full call details as the platform reports them.
func (c *Client) GetCall(ctx context.Context, callID string) (map[string]any, error) {
	var details map[string]any
	if err := c.do(ctx, http.MethodGet, "/v2/get-call/"+callID, nil, &details); err != nil {
		return nil, fmt.Errorf("failed to retrieve call %s: %w", callID, err)
	}
	return details, nil
}

// RegisterAgent creates or updates the receptionist agent on the platform.
func (c *Client) RegisterAgent(ctx context.Context, req RegisterAgentRequest) (*Agent, error) {
	var agent Agent
	if err := c.do(ctx, http.MethodPost, "/create-agent", req, &agent); err != nil {
		return nil, fmt.Errorf("failed to register agent: %w", err)
	}
	return &agent, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("platform returned %d: %s", resp.StatusCode, string(data))
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
