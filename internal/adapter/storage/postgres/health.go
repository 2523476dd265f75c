package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
)

// schemaTables are the tables the balance, ledger, login and audit repos need.
var schemaTables = []string{"users", "ledger_entries", "login_codes", "audit_logs"}

// HealthCheck implements ports.HealthChecker for PostgreSQL.
type HealthCheck struct {
	pool Pool
}

// NewHealthCheck creates a PostgreSQL health checker.
func NewHealthCheck(pool Pool) *HealthCheck {
	return &HealthCheck{pool: pool}
}

// Check fails if the database is unreachable or any schema table is missing.
func (h *HealthCheck) Check(ctx context.Context) error {
	query := `SELECT t FROM unnest($1::text[]) AS t WHERE to_regclass('public.' || t) IS NULL`

	rows, err := h.pool.Query(ctx, query, schemaTables)
	if err != nil {
		return fmt.Errorf("check schema: %w", err)
	}
	missing, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return fmt.Errorf("check schema: %w", err)
	}
	if len(missing) > 0 {
		return fmt.Errorf("schema not applied, missing tables: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Name returns the dependency name.
func (h *HealthCheck) Name() string {
	return "postgresql"
}
