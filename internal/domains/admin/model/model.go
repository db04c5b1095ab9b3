package model

import (
	"hostel/shared/model"
	"time"
)

const (
	TableName  = "admins"
	EntityName = "admin"

	FieldID           = "id"
	FieldEmail        = "email"
	FieldPasswordHash = "password_hash"
	FieldRole         = "role"
	FieldActive       = "active"
	FieldLastLogin    = "last_login"
)

type Admin struct {
	ID           string     `db:"id"`
	Email        string     `db:"email"`
	PasswordHash string     `db:"password_hash"`
	Role         string     `db:"role"`
	Active       bool       `db:"active"`
	LastLogin    *time.Time `db:"last_login"`
	model.Metadata
}
