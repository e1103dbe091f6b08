// Package whatsapp provides the outbound messenger adapter. It posts plain
// text messages to the WhatsApp Business provider's message endpoint using
// form-encoded payloads (Twilio-compatible shape).
package whatsapp

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"mealbot/internal/core/domain/model/kernel"
	"mealbot/internal/pkg/errs"
)

// DefaultTimeout bounds a single send call to the provider API.
const DefaultTimeout = 10 * time.Second

// Client sends WhatsApp text messages through the provider's HTTP API.
// It implements ports.Messenger.
type Client struct {
	apiURL     string
	authToken  string
	fromNumber string
	httpClient *http.Client
}

// NewClient creates a messenger client for the provider endpoint.
// fromNumber is the bot's WhatsApp-enabled sender number.
func NewClient(apiURL, authToken, fromNumber string) (*Client, error) {
	if apiURL == "" {
		return nil, errs.NewValueIsRequiredError("apiURL")
	}
	if authToken == "" {
		return nil, errs.NewValueIsRequiredError("authToken")
	}
	if fromNumber == "" {
		return nil, errs.NewValueIsRequiredError("fromNumber")
	}

	return &Client{
		apiURL:     apiURL,
		authToken:  authToken,
		fromNumber: fromNumber,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}, nil
}

// SendText delivers a plain text message to the phone number.
func (c *Client) SendText(ctx context.Context, to kernel.Phone, body string) error {
	if err := to.Validate(); err != nil {
		return err
	}
	if body == "" {
		return errs.NewValueIsRequiredError("body")
	}

	form := url.Values{}
	form.Set("From", c.fromNumber)
	form.Set("To", to.WhatsAppAddress())
	form.Set("Body", body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build whatsapp request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+c.authToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send whatsapp message to %s: %w", to.String(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("whatsapp provider returned %d: %s", resp.StatusCode, string(detail))
	}

	return nil
}
