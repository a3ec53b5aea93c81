package domain

import "time"

// DeviceToken is one push-capable device registered by a user. The pair
// (UserID, Token) is the table's composite key, so re-registering the same
// device replaces the row instead of duplicating it.
type DeviceToken struct {
	UserID    string    `json:"user_id" dynamodbav:"user_id"`
	Token     string    `json:"token" dynamodbav:"token"`
	Platform  string    `json:"platform" dynamodbav:"platform"`
	CreatedAt time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt time.Time `json:"updated" dynamodbav:"updated_at"`
}

type RegisterDeviceRequest struct {
	Token    string `json:"token" validate:"required"`
	Platform string `json:"platform" validate:"required,oneof=ios android web"`
}
