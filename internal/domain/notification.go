package domain

import "time"

// MaxBodyLength is the ceiling applied to a notification body before it is
// persisted or handed to a delivery channel. Longer bodies are cut at this
// length and get a trailing ellipsis.
const MaxBodyLength = 180

type Notification struct {
	NotificationID string                 `json:"id" dynamodbav:"notification_id"`
	UserID         string                 `json:"user_id" dynamodbav:"user_id"`
	Type           string                 `json:"type" dynamodbav:"type"`
	Title          string                 `json:"title" dynamodbav:"title"`
	Body           string                 `json:"body" dynamodbav:"body"`
	Data           map[string]interface{} `json:"data" dynamodbav:"data"`
	ReadAt         *time.Time             `json:"read_at,omitempty" dynamodbav:"read_at"`
	CreatedAt      time.Time              `json:"created" dynamodbav:"created_at"`
}

// DispatchRequest is the wire payload accepted by the dispatch endpoint.
// Type defaults to CategoryGeneric when empty; Data is forwarded verbatim to
// push delivery and never interpreted here.
type DispatchRequest struct {
	RecipientID string                 `json:"recipientId" validate:"required"`
	Title       string                 `json:"title" validate:"required"`
	Body        string                 `json:"body" validate:"required"`
	Type        string                 `json:"type"`
	Data        map[string]interface{} `json:"data"`
}

// TruncateBody cuts body to MaxBodyLength runes and appends "…" when it was
// longer. Bodies at or under the limit pass through unchanged.
func TruncateBody(body string) string {
	r := []rune(body)
	if len(r) <= MaxBodyLength {
		return body
	}
	return string(r[:MaxBodyLength]) + "…"
}
