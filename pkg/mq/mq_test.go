package mq

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInteractionEvent(t *testing.T) {
	e := NewInteractionEvent(EventLiked, "u1", "video", "v1")
	assert.NotEmpty(t, e.EventID)
	assert.NotZero(t, e.Timestamp)

	raw, err := json.Marshal(e)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"type":"like.created"`)
	assert.Contains(t, string(raw), `"target_kind":"video"`)
	assert.NotEqual(t, e.EventID, NewInteractionEvent(EventLiked, "u1", "video", "v1").EventID)
}
