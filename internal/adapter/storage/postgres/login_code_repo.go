package postgres

import (
	"context"
	"fmt"
)

// LoginCodeRepo implements ports.LoginCodeRepository over the bot's login_codes table.
type LoginCodeRepo struct {
	pool Pool
}

// NewLoginCodeRepo creates a new LoginCodeRepo.
func NewLoginCodeRepo(pool Pool) *LoginCodeRepo {
	return &LoginCodeRepo{pool: pool}
}

// Consume deletes the identity's code if it matches, so it cannot be replayed.
func (r *LoginCodeRepo) Consume(ctx context.Context, identity, code string) (bool, error) {
	query := `DELETE FROM login_codes WHERE discord_id = $1 AND code = $2`

	tag, err := r.pool.Exec(ctx, query, identity, code)
	if err != nil {
		return false, fmt.Errorf("consume login code: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}
