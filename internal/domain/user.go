package domain

import "time"

type User struct {
	UserID      string                   `json:"id" dynamodbav:"user_id"`
	Email       string                   `json:"email" dynamodbav:"email"`
	Name        string                   `json:"name" dynamodbav:"name"`
	Role        string                   `json:"role" dynamodbav:"role"` // "client" | "professional"
	Preferences *NotificationPreferences `json:"notification_preferences,omitempty" dynamodbav:"notification_preferences"`
	Enable      bool                     `json:"enable" dynamodbav:"enable"`
	CreatedAt   time.Time                `json:"created" dynamodbav:"created_at"`
	UpdatedAt   time.Time                `json:"updated" dynamodbav:"updated_at"`
}

const (
	RoleClient       = "client"
	RoleProfessional = "professional"
)
