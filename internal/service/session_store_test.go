package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	current time.Time
}

func (c *fakeClock) now() time.Time { return c.current }

func (c *fakeClock) advance(d time.Duration) { c.current = c.current.Add(d) }

func TestSessionStoreSlidingExpiry(t *testing.T) {
	clock := &fakeClock{current: time.Date(2024, 8, 5, 8, 0, 0, 0, time.UTC)}
	store := newSessionStore(10*time.Minute, clock.now)

	expiresAt, count := store.Save(&enlistmentSession{studentID: "s1"})
	assert.Equal(t, clock.current.Add(10*time.Minute), expiresAt)
	assert.Equal(t, 1, count)

	clock.advance(8 * time.Minute)
	session, extended, ok := store.Get("s1")
	require.True(t, ok)
	assert.Equal(t, "s1", session.studentID)
	assert.Equal(t, clock.current.Add(10*time.Minute), extended)

	clock.advance(8 * time.Minute)
	_, _, ok = store.Get("s1")
	assert.True(t, ok)

	clock.advance(11 * time.Minute)
	_, _, ok = store.Get("s1")
	assert.False(t, ok)
	assert.Zero(t, store.Len())
}

func TestSessionStoreSaveSweepsExpired(t *testing.T) {
	clock := &fakeClock{current: time.Date(2024, 8, 5, 8, 0, 0, 0, time.UTC)}
	store := newSessionStore(time.Minute, clock.now)

	store.Save(&enlistmentSession{studentID: "s1"})
	store.Save(&enlistmentSession{studentID: "s2"})
	clock.advance(2 * time.Minute)

	_, count := store.Save(&enlistmentSession{studentID: "s3"})
	assert.Equal(t, 1, count)
	_, _, ok := store.Get("s1")
	assert.False(t, ok)
}

func TestSessionStoreSaveReplaces(t *testing.T) {
	clock := &fakeClock{current: time.Date(2024, 8, 5, 8, 0, 0, 0, time.UTC)}
	store := newSessionStore(time.Minute, clock.now)

	first := &enlistmentSession{studentID: "s1", courseFilter: "ALL"}
	second := &enlistmentSession{studentID: "s1", courseFilter: "BSCS"}
	store.Save(first)
	_, count := store.Save(second)

	assert.Equal(t, 1, count)
	session, _, ok := store.Get("s1")
	require.True(t, ok)
	assert.Same(t, second, session)
}

func TestSessionStoreAttachKeepsLiveSession(t *testing.T) {
	clock := &fakeClock{current: time.Date(2024, 8, 5, 8, 0, 0, 0, time.UTC)}
	store := newSessionStore(time.Minute, clock.now)

	first := &enlistmentSession{studentID: "s1"}
	assert.Same(t, first, store.Attach(first))
	assert.Same(t, first, store.Attach(&enlistmentSession{studentID: "s1"}))

	clock.advance(2 * time.Minute)
	replacement := &enlistmentSession{studentID: "s1"}
	assert.Same(t, replacement, store.Attach(replacement))
	assert.Equal(t, 1, store.Len())
}
