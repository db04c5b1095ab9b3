package model

import (
	"hostel/shared/sequence"
	"time"
)

const (
	TableName  = "contact_messages"
	EntityName = "contact_message"

	FieldID     = "id"
	FieldIsRead = "is_read"
	FieldSentAt = "sent_at"
)

var Sequence = sequence.Source{Prefix: "M", Table: TableName, Column: FieldID}

type ContactMessage struct {
	ID      string    `db:"id"`
	Name    string    `db:"name"`
	Email   string    `db:"email"`
	Message string    `db:"message"`
	IsRead  bool      `db:"is_read"`
	SentAt  time.Time `db:"sent_at"`
}

// ReceivedEvent is published once a message is stored so staff can be alerted.
type ReceivedEvent struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}
