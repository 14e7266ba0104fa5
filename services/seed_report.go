package services

import (
	"errors"
	"fmt"
	"strconv"

	"vibe-todo/vibetodo/models"
)

// SeedOutcome is the result of seeding one system list: exactly one of List
// and Err is set.
type SeedOutcome struct {
	Name string
	List *models.List
	Err  error
}

type SeedReport []SeedOutcome

// Lists returns the seeded lists without duplicates, in seeding order.
func (r SeedReport) Lists() []models.List {
	seen := make(map[uint]bool, len(r))
	lists := make([]models.List, 0, len(r))
	for _, o := range r {
		if o.List == nil || seen[o.List.ID] {
			continue
		}
		seen[o.List.ID] = true
		lists = append(lists, *o.List)
	}
	return lists
}

func (r SeedReport) Failed() []SeedOutcome {
	var failed []SeedOutcome
	for _, o := range r {
		if o.Err != nil {
			failed = append(failed, o)
		}
	}
	return failed
}

// Err joins the failures, or returns nil when every name was seeded.
func (r SeedReport) Err() error {
	var errs []error
	for _, o := range r.Failed() {
		errs = append(errs, fmt.Errorf("system list %q: %w", o.Name, o.Err))
	}
	return errors.Join(errs...)
}

// Outcomes maps each name to "ok" or the error text.
func (r SeedReport) Outcomes() map[string]string {
	out := make(map[string]string, len(r))
	for _, o := range r {
		if o.Err != nil {
			out[o.Name] = o.Err.Error()
			continue
		}
		out[o.Name] = "ok"
	}
	return out
}

func seedSavepoint(i int) string {
	return "seed_" + strconv.Itoa(i)
}
