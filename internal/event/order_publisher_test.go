package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublisherStatsStartEmpty(t *testing.T) {
	p := NewOrderEventPublisher(nil)

	stats := p.Stats()
	assert.Zero(t, stats.Published)
	assert.Zero(t, stats.Failed)
	assert.True(t, stats.LastPublish.IsZero())
}

func TestPublisherStatsReflectCounters(t *testing.T) {
	p := NewOrderEventPublisher(nil)
	p.messagesPublished.Add(3)
	p.messagesFailed.Add(1)

	stats := p.Stats()
	assert.Equal(t, int64(3), stats.Published)
	assert.Equal(t, int64(1), stats.Failed)
}
