package search

import (
	"encoding/json"
	"testing"
	"time"

	"VidTube.com/cmd/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDoc(t *testing.T) {
	v := &model.Video{
		ID:          model.NewID(),
		OwnerID:     model.NewID(),
		Title:       "golang",
		Description: "generics",
		VideoFileID: "secret/object",
		IsPublished: true,
		CreatedAt:   time.Now(),
	}
	raw, err := json.Marshal(toDoc(v))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"owner_id":"`+v.OwnerID.String()+`"`)
	assert.NotContains(t, string(raw), "secret/object")

	var mapping map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(videoMapping), &mapping))
}
