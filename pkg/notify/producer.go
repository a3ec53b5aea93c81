// Package notify is the producer-side client for the notification service.
// Marketplace flows call its typed producers when a domain event happens;
// each one maps the event to a dispatch request and fires it off without
// blocking or failing the caller's own transaction.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"
)

// dispatchRequest mirrors the dispatch endpoint's wire payload. Kept local so
// this package stays importable outside the service's own module.
type dispatchRequest struct {
	RecipientID string                 `json:"recipientId"`
	Title       string                 `json:"title"`
	Body        string                 `json:"body"`
	Type        string                 `json:"type"`
	Data        map[string]interface{} `json:"data,omitempty"`
}

// MessagePayload describes a new chat message event.
type MessagePayload struct {
	ConversationID string
	SenderID       string
	SenderName     string
	RecipientID    string
	ContentPreview string
}

// LeadPayload describes a lead becoming available to one professional.
type LeadPayload struct {
	ProfessionalID   string
	Category         string
	Location         string
	LeadID           string
	ServiceRequestID string
}

// ProposalPayload describes a proposal submitted on a client's request.
type ProposalPayload struct {
	ClientID         string
	ProfessionalName string
	ServiceTitle     string
	ServiceRequestID string
}

// Client invokes the notification service's dispatch endpoint.
// Producers are fire-and-forget: failures are logged as warnings and never
// surface to the caller. Wait flushes in-flight dispatches at shutdown.
type Client struct {
	dispatchURL string
	token       string
	httpClient  *http.Client
	timeout     time.Duration
	wg          sync.WaitGroup
}

// NewClient builds a producer client. baseURL is the notification service
// root (e.g. "https://api.example.com"); token is the caller's bearer JWT.
func NewClient(baseURL, token string) *Client {
	return &Client{
		dispatchURL: baseURL + "/v1/notifications/dispatch",
		token:       token,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		timeout:     10 * time.Second,
	}
}

// NotifyMessage notifies a chat recipient about a new message.
func (c *Client) NotifyMessage(p MessagePayload) {
	c.dispatch(dispatchRequest{
		RecipientID: p.RecipientID,
		Title:       fmt.Sprintf("%s sent a new message", p.SenderName),
		Body:        p.ContentPreview,
		Type:        "chat",
		Data: map[string]interface{}{
			"conversationId": p.ConversationID,
		},
	})
}

// NotifyLeadAvailable notifies a professional about a new matching lead.
func (c *Client) NotifyLeadAvailable(p LeadPayload) {
	c.dispatch(dispatchRequest{
		RecipientID: p.ProfessionalID,
		Title:       "New request available",
		Body:        fmt.Sprintf("%s in %s", p.Category, p.Location),
		Type:        "leads",
		Data: map[string]interface{}{
			"leadId":           p.LeadID,
			"serviceRequestId": p.ServiceRequestID,
			"category":         p.Category,
		},
	})
}

// BroadcastLeadAvailable fires one lead notification per matching
// professional. Each recipient is an independent dispatch.
func (c *Client) BroadcastLeadAvailable(payloads []LeadPayload) {
	for _, p := range payloads {
		c.NotifyLeadAvailable(p)
	}
}

// NotifyProposalSubmitted notifies a client that a proposal arrived.
func (c *Client) NotifyProposalSubmitted(p ProposalPayload) {
	c.dispatch(dispatchRequest{
		RecipientID: p.ClientID,
		Title:       fmt.Sprintf("%s sent a proposal", p.ProfessionalName),
		Body:        fmt.Sprintf("See the details for request %q.", p.ServiceTitle),
		Type:        "proposals",
		Data: map[string]interface{}{
			"serviceRequestId": p.ServiceRequestID,
		},
	})
}

// Wait blocks until all in-flight dispatches have finished. Call it during
// graceful shutdown so pending notifications are not dropped mid-send.
func (c *Client) Wait() {
	c.wg.Wait()
}

// dispatch submits the request on a detached goroutine. The producing
// transaction has already committed by the time this runs; a failed
// notification must never roll it back, so errors end up in the log and
// nowhere else.
func (c *Client) dispatch(req dispatchRequest) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
		defer cancel()
		if err := c.send(ctx, req); err != nil {
			slog.Warn("notification dispatch failed",
				"recipient", req.RecipientID, "type", req.Type, "err", err)
		}
	}()
}

func (c *Client) send(ctx context.Context, req dispatchRequest) error {
	payload, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal dispatch request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.dispatchURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("dispatch endpoint returned %d: %s", resp.StatusCode, detail)
	}
	return nil
}
