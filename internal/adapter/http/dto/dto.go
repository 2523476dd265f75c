package dto

import (
	"bytes"
	"encoding/json"
)

// LoginRequest is the request body for exchanging a bot-issued login code.
type LoginRequest struct {
	DiscordID string `json:"discord_id" binding:"required,numeric,max=32"`
	LoginCode string `json:"login_code" binding:"required,safe_id,max=64"`
}

// LoginResponse is the response body for successful login.
type LoginResponse struct {
	Token     string `json:"token"`
	Expiry    int64  `json:"expiry"` // Unix timestamp
	DiscordID string `json:"discord_id"`
}

// Amount is a credit amount sent either as a JSON number or a JSON string.
// It is kept as text so the service parses it exactly.
type Amount string

// UnmarshalJSON accepts 10, 10.5, "10" and "10.50".
func (a *Amount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*a = ""
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*a = Amount(s)
	default:
		*a = Amount(b)
	}
	return nil
}

// StartGameRequest is the request body for starting a Mines game.
// MineCount is a pointer so that 0 reaches the range check instead of
// failing as a missing field.
type StartGameRequest struct {
	Bet       Amount `json:"bet" binding:"required,max=32"`
	MineCount *int   `json:"mine_count" binding:"required"`
}

// RevealRequest is the request body for revealing a tile.
type RevealRequest struct {
	Tile *int `json:"tile" binding:"required"`
}
