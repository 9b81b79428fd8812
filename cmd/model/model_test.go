package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseID(t *testing.T) {
	id := NewID()
	parsed, err := ParseID(id.String())
	require.NoError(t, err)
	assert.True(t, parsed.Equal(id))

	for _, bad := range []string{"", "123", "not-a-uuid", "../etc/passwd"} {
		_, err := ParseID(bad)
		assert.ErrorIs(t, err, ErrInvalidID, bad)
	}
}

func TestIDEqual(t *testing.T) {
	a, b := NewID(), NewID()
	assert.False(t, a.Equal(b))
	assert.True(t, a.Equal(ID(a.String())))
	assert.False(t, ID("").Equal(ID("")))
}

func TestNewLikeTarget(t *testing.T) {
	id := NewID()
	target, err := NewLikeTarget(LikeComment, id)
	require.NoError(t, err)
	assert.Equal(t, LikeComment, target.Kind())
	assert.Equal(t, id, target.ID())

	_, err = NewLikeTarget("playlist", id)
	assert.Error(t, err)
	_, err = NewLikeTarget(LikeVideo, "")
	assert.ErrorIs(t, err, ErrInvalidID)
}

func TestUserSecretsNeverSerialized(t *testing.T) {
	u := &User{ID: NewID(), Username: "alice", Password: "hash", RefreshToken: "token"}

	raw, err := json.Marshal(u)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "hash")
	assert.NotContains(t, string(raw), "token")

	raw, err = json.Marshal(u.Public())
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "password")
	assert.NotContains(t, string(raw), "refresh")

	owner := u.Owner()
	assert.Equal(t, "alice", owner.Username)
}
