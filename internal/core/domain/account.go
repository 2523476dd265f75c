package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is a Discord user's credit balance.
type Account struct {
	Identity  string          `json:"identity"`
	Balance   decimal.Decimal `json:"balance"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// LoginCode is a one-time code the Discord bot issues for web login.
type LoginCode struct {
	Identity  string    `json:"identity"`
	Code      string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}
