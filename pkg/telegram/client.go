package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultBaseURL = "https://api.telegram.org"

// Config holds the bot credentials and target chats.
type Config struct {
	BotToken  string
	BaseURL   string // override for tests; defaults to the Bot API host
	AlertChat string // internal staff chat for lead and sale alerts
	PromoChat string // public channel for vehicle promotions
}

func (c Config) Validate() error {
	if c.BotToken == "" {
		return fmt.Errorf("bot token is required")
	}
	if c.AlertChat == "" && c.PromoChat == "" {
		return fmt.Errorf("at least one chat id is required")
	}
	return nil
}

// Client is a thin Telegram Bot API client covering the two calls the
// dealership uses: text messages and photo posts.
type Client struct {
	config     Config
	httpClient *http.Client
}

func NewClient(config Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if config.BaseURL == "" {
		config.BaseURL = defaultBaseURL
	}

	httpClient := &http.Client{
		Timeout: 30 * time.Second,
	}

	return &Client{
		config:     config,
		httpClient: httpClient,
	}, nil
}

type sendMessageRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode,omitempty"`
}

type sendPhotoRequest struct {
	ChatID  string `json:"chat_id"`
	Photo   string `json:"photo"`
	Caption string `json:"caption,omitempty"`
}

type apiResponse struct {
	OK          bool   `json:"ok"`
	ErrorCode   int    `json:"error_code,omitempty"`
	Description string `json:"description,omitempty"`
}

// NotifyStaff sends a plain text message to the staff alert chat.
func (c *Client) NotifyStaff(message string) error {
	if c.config.AlertChat == "" {
		return fmt.Errorf("alert chat not configured")
	}
	return c.sendMessage(context.Background(), c.config.AlertChat, message)
}

// BroadcastPromo posts a promotion to the public channel, as a photo with
// caption when a photo URL is given.
func (c *Client) BroadcastPromo(message, photoURL string) error {
	if c.config.PromoChat == "" {
		return fmt.Errorf("promo chat not configured")
	}
	ctx := context.Background()
	if photoURL != "" {
		return c.sendPhoto(ctx, c.config.PromoChat, photoURL, message)
	}
	return c.sendMessage(ctx, c.config.PromoChat, message)
}

func (c *Client) sendMessage(ctx context.Context, chatID, text string) error {
	return c.doRequest(ctx, "sendMessage", sendMessageRequest{
		ChatID: chatID,
		Text:   text,
	})
}

func (c *Client) sendPhoto(ctx context.Context, chatID, photoURL, caption string) error {
	return c.doRequest(ctx, "sendPhoto", sendPhotoRequest{
		ChatID:  chatID,
		Photo:   photoURL,
		Caption: caption,
	})
}

func (c *Client) doRequest(ctx context.Context, method string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/%s", c.config.BaseURL, c.config.BotToken, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call %s: %w", method, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	var apiResp apiResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return fmt.Errorf("failed to unmarshal response (status %d): %w", resp.StatusCode, err)
	}
	if !apiResp.OK {
		return fmt.Errorf("%s failed: %d %s", method, apiResp.ErrorCode, apiResp.Description)
	}
	return nil
}
