package database

import (
	"context"
	"log/slog"

	"vibe-todo/vibetodo/apperrors"
	"vibe-todo/vibetodo/models"

	"gorm.io/gorm"
)

// EventPublisher receives the events of a unit of work after it committed.
type EventPublisher interface {
	Publish(ctx context.Context, events []models.Event)
}

// Session is one open unit of work. DB is the transaction handle; every
// read and write of the unit of work goes through it.
type Session struct {
	DB     *gorm.DB
	events []models.Event
}

// NewSession wraps an already open transaction. WithSession is the normal
// way to obtain one.
func NewSession(tx *gorm.DB) *Session {
	return &Session{DB: tx}
}

func (s *Session) Context() context.Context {
	return s.DB.Statement.Context
}

// Emit records an event to publish once the unit of work commits.
func (s *Session) Emit(event models.EventType, entity string, entityID uint, data interface{}) error {
	ev, err := models.NewEvent(event, entity, entityID, data)
	if err != nil {
		return apperrors.Storage("failed to encode event", err)
	}
	s.events = append(s.events, *ev)
	return nil
}

func (s *Session) Events() []models.Event {
	out := make([]models.Event, len(s.events))
	copy(out, s.events)
	return out
}

// Savepoint runs fn behind a named savepoint. When fn fails its writes and
// events are undone and the session stays usable.
func (s *Session) Savepoint(name string, fn func() error) error {
	if err := s.DB.SavePoint(name).Error; err != nil {
		return apperrors.Storage("failed to create savepoint", err)
	}
	mark := len(s.events)
	if err := fn(); err != nil {
		if rbErr := s.DB.RollbackTo(name).Error; rbErr != nil {
			return apperrors.Storage("failed to roll back to savepoint", rbErr)
		}
		s.events = s.events[:mark]
		return err
	}
	return nil
}

// WithSession runs fn inside one transaction. It commits when fn returns nil
// and rolls back when fn returns an error or panics; the panic is re-raised.
// The connection is released on every path. Calls must not nest.
func (d *Database) WithSession(ctx context.Context, fn func(s *Session) error) error {
	tx := d.DB.WithContext(ctx).Begin()
	if tx.Error != nil {
		return apperrors.Storage("failed to begin transaction", tx.Error)
	}
	s := NewSession(tx)

	finished := false
	defer func() {
		if finished {
			return
		}
		r := recover()
		rollback(tx)
		if r != nil {
			panic(r)
		}
	}()

	if err := fn(s); err != nil {
		finished = true
		rollback(tx)
		return err
	}

	finished = true
	if err := tx.Commit().Error; err != nil {
		return apperrors.Storage("failed to commit transaction", err)
	}

	// The work is committed; delivery must not stop when the caller goes away.
	if d.publisher != nil && len(s.events) > 0 {
		d.publisher.Publish(context.WithoutCancel(ctx), s.events)
	}
	return nil
}

func rollback(tx *gorm.DB) {
	if err := tx.Rollback().Error; err != nil {
		slog.Error("failed to roll back transaction", "error", err)
	}
}
