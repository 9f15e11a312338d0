package nats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventSubject(t *testing.T) {
	assert.Equal(t, "taskboard.events.board.created", EventSubject("board.created"))
	assert.Equal(t, "taskboard.events.task.deleted", EventSubject("task.deleted"))
	assert.Equal(t, "taskboard.events.>", SubjectEventsAll)
}
