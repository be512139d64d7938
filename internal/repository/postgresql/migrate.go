package postgresql

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/gestipresence/presence-backend-go/internal/pkg/database"
)

//go:embed schema.sql
var schema string

// Migrate creates the presence tables when they do not exist yet.
func Migrate(ctx context.Context, db *database.DB) error {
	if _, err := db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
