package services

import (
	"context"
	"log/slog"

	"vibe-todo/vibetodo/database"
)

// Bootstrap ensures the schema exists and seeds the system lists. It is safe
// to run on every start. The returned error covers schema and transaction
// failures; per-list failures are reported in the SeedReport.
func Bootstrap(ctx context.Context, db *database.Database, lists ListServiceInterface) (SeedReport, error) {
	if err := db.Migrate(); err != nil {
		return nil, err
	}

	var report SeedReport
	err := db.WithSession(ctx, func(s *database.Session) error {
		report = lists.InitializeSystemLists(s)
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, o := range report {
		if o.Err == nil {
			slog.Debug("system list ready", "name", o.Name, "id", o.List.ID)
		}
	}
	return report, nil
}
