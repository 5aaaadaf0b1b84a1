// Package platform – Web API client.
//
// This file implements the outbound half of the chat-platform boundary:
// posting direct messages, opening dialogs, and replying to response URLs.
// All calls are synchronous, best-effort, and context-aware; the caller
// decides what a failure means (the exchange engine treats a failed
// notification after a committed record as a partial failure, not a
// rollback).
package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client talks to the chat platform's Web API. It is constructed once at
// process start and held for the process lifetime; it is safe for
// concurrent use.
type Client struct {
	// BaseURL is the platform API root, e.g. "https://chat.example.com/api".
	BaseURL string
	// Token is the bot credential sent as a bearer token.
	Token string
	// HTTPClient performs the requests; it carries the outbound timeout.
	HTTPClient *http.Client
}

// NewClient constructs a Client with the given API root, bot token, and
// per-call timeout.
func NewClient(baseURL, token string, timeout time.Duration) *Client {
	return &Client{
		BaseURL:    baseURL,
		Token:      token,
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

// postMessageRequest is the wire payload for PostMessage.
type postMessageRequest struct {
	Channel string  `json:"channel"`
	Text    string  `json:"text"`
	Blocks  []Block `json:"blocks,omitempty"`
}

// openDialogRequest is the wire payload for OpenDialog.
type openDialogRequest struct {
	TriggerID string `json:"trigger_id"`
	Dialog    Form   `json:"dialog"`
}

// ephemeralResponse is the wire payload for RespondEphemeral.
type ephemeralResponse struct {
	ResponseType    string  `json:"response_type"`
	ReplaceOriginal bool    `json:"replace_original"`
	Text            string  `json:"text"`
	Blocks          []Block `json:"blocks,omitempty"`
}

// PostMessage sends msg as a direct message to userID.
func (c *Client) PostMessage(ctx context.Context, userID string, msg Message) error {
	body := postMessageRequest{Channel: userID, Text: msg.Text, Blocks: msg.Blocks}
	return c.post(ctx, c.BaseURL+"/messages", body)
}

// OpenDialog opens form as a modal dialog using the short-lived triggerID
// issued by the interaction that requested it.
func (c *Client) OpenDialog(ctx context.Context, triggerID string, form Form) error {
	body := openDialogRequest{TriggerID: triggerID, Dialog: form}
	return c.post(ctx, c.BaseURL+"/dialogs", body)
}

// RespondEphemeral replies to an interaction's response URL with a message
// visible only to the interacting user. When replacePrior is true the
// platform replaces the previous ephemeral response instead of appending.
func (c *Client) RespondEphemeral(ctx context.Context, responseURL string, msg Message, replacePrior bool) error {
	body := ephemeralResponse{
		ResponseType:    "ephemeral",
		ReplaceOriginal: replacePrior,
		Text:            msg.Text,
		Blocks:          msg.Blocks,
	}
	return c.post(ctx, responseURL, body)
}

// post marshals body as JSON and POSTs it with the bearer token. Non-2xx
// statuses are returned as errors carrying a bounded body snippet.
func (c *Client) post(ctx context.Context, url string, body any) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("platform: %s returned %d: %s", url, resp.StatusCode, snippet)
	}
	return nil
}
