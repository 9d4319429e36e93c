package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ChatExchange is one question/answer pair. Append-only.
type ChatExchange struct {
	ID               uuid.UUID                   `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ProjectID        uuid.UUID                   `json:"projectId" gorm:"type:uuid;not null;index"`
	UserMessage      string                      `json:"userMessage" gorm:"type:text"`
	AIResponse       string                      `json:"aiResponse" gorm:"column:ai_response;type:text"`
	SupportingQuotes datatypes.JSONType[[]Quote] `json:"supportingQuotes" gorm:"column:response_quotes;type:jsonb"`
	SessionID        *string                     `json:"sessionId,omitempty" gorm:"type:varchar(255);index"`
	CreatedAt        time.Time                   `json:"createdAt" gorm:"autoCreateTime"`
}

// TableName specifies the table name for GORM
func (ChatExchange) TableName() string {
	return "chat_conversations"
}

// NewChatExchange creates an exchange ready to persist
func NewChatExchange(projectID uuid.UUID, question, answer string, quotes []Quote, sessionID string) *ChatExchange {
	ex := &ChatExchange{
		ID:               uuid.New(),
		ProjectID:        projectID,
		UserMessage:      question,
		AIResponse:       answer,
		SupportingQuotes: datatypes.NewJSONType(quotes),
		CreatedAt:        time.Now().UTC(),
	}
	if sessionID != "" {
		ex.SessionID = &sessionID
	}
	return ex
}

// Quotes returns the supporting quotes, never nil
func (c *ChatExchange) Quotes() []Quote {
	q := c.SupportingQuotes.Data()
	if q == nil {
		return []Quote{}
	}
	return q
}
