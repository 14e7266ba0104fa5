package broker

import (
	"strings"

	"vibe-todo/vibetodo/models"
)

// Subject returns the NATS subject an event is published on,
// for example "vibetodo.task.created".
func Subject(prefix string, event models.EventType) string {
	prefix = strings.Trim(prefix, ".")
	if prefix == "" {
		return string(event)
	}
	return prefix + "." + string(event)
}
