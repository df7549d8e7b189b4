package services

import (
	"context"
	"encoding/hex"
	"testing"

	"github.com/dmitrijs2005/profilevault/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreHashTag_ExplicitToken(t *testing.T) {
	rm := defaultRepoManager()
	db, _ := newMockDB(t)
	svc := NewHashTagService(db, rm, NewIdentityService(db, rm))

	token, err := svc.StoreHashTag(context.Background(), "alice", "lhcb", "myLink", "cafebabe")
	require.NoError(t, err)
	assert.Equal(t, "cafebabe", token)
	assert.Equal(t, "cafebabe", rm.hashtags.stored["myLink"])
}

func TestStoreHashTag_GeneratedToken(t *testing.T) {
	rm := defaultRepoManager()
	db, _ := newMockDB(t)
	svc := NewHashTagService(db, rm, NewIdentityService(db, rm))

	token, err := svc.StoreHashTag(context.Background(), "alice", "lhcb", "myLink", "")
	require.NoError(t, err)
	require.Len(t, token, 32)
	_, err = hex.DecodeString(token)
	require.NoError(t, err, "token must be hex")
	assert.Equal(t, token, rm.hashtags.stored["myLink"])
}

func TestStoreHashTag_ReissueReplacesToken(t *testing.T) {
	rm := defaultRepoManager()
	db, _ := newMockDB(t)
	svc := NewHashTagService(db, rm, NewIdentityService(db, rm))

	first, err := svc.StoreHashTag(context.Background(), "alice", "lhcb", "myLink", "")
	require.NoError(t, err)
	second, err := svc.StoreHashTag(context.Background(), "alice", "lhcb", "myLink", "")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.Equal(t, second, rm.hashtags.stored["myLink"], "the old token is gone")
}

func TestRetrieveHashTag(t *testing.T) {
	rm := defaultRepoManager()
	rm.hashtags.tagNames = map[string]string{"cafebabe": "myLink"}
	db, _ := newMockDB(t)
	svc := NewHashTagService(db, rm, NewIdentityService(db, rm))

	tagName, err := svc.RetrieveHashTag(context.Background(), "alice", "lhcb", "cafebabe")
	require.NoError(t, err)
	assert.Equal(t, "myLink", tagName)

	_, err = svc.RetrieveHashTag(context.Background(), "alice", "lhcb", "stale")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestRetrieveAllHashTags(t *testing.T) {
	rm := defaultRepoManager()
	rm.hashtags.tagNames = map[string]string{"aaaa": "first", "bbbb": "second"}
	db, _ := newMockDB(t)
	svc := NewHashTagService(db, rm, NewIdentityService(db, rm))

	got, err := svc.RetrieveAllHashTags(context.Background(), "alice", "lhcb")
	require.NoError(t, err)
	assert.Equal(t, rm.hashtags.tagNames, got)
}
