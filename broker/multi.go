package broker

import (
	"context"

	"vibe-todo/vibetodo/database"
	"vibe-todo/vibetodo/models"
)

// MultiPublisher hands every batch to each publisher in order.
type MultiPublisher []database.EventPublisher

func (m MultiPublisher) Publish(ctx context.Context, events []models.Event) {
	for _, p := range m {
		if p != nil {
			p.Publish(ctx, events)
		}
	}
}
