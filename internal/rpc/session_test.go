package rpc

import (
	"sync"
	"testing"

	"github.com/dkeye/roomsignal/internal/core"
	"github.com/stretchr/testify/require"
)

func TestSessionStore_GetOrCreateIsAtomic(t *testing.T) {
	req := require.New(t)
	store := NewSessionStore()
	cid := core.ConnectionID("conn-1")

	const workers = 64
	got := make([]*ParticipantSession, workers)
	var start, done sync.WaitGroup
	start.Add(1)
	for i := range workers {
		done.Add(1)
		go func() {
			defer done.Done()
			start.Wait()
			got[i] = store.GetOrCreate(cid)
		}()
	}
	start.Done()
	done.Wait()

	for _, s := range got {
		req.Same(got[0], s)
	}
	req.Equal(1, store.Len())
}

func TestSessionStore_MutationsAreVisible(t *testing.T) {
	req := require.New(t)
	store := NewSessionStore()
	cid := core.ConnectionID("conn-1")

	// Given a fresh session
	sess := store.GetOrCreate(cid)
	req.Empty(sess.RoomName())
	req.Empty(sess.ParticipantName())
	req.False(sess.DataChannels())

	// When it is bound through a transaction
	tx := NewTransaction(store, core.ParticipantRequest{ConnectionID: cid})
	tx.Session().Bind("bob", "R1", true)

	// Then the same session sees it
	got, ok := store.Get(cid)
	req.True(ok)
	req.Equal("R1", got.RoomName())
	req.Equal("bob", got.ParticipantName())
	req.True(got.DataChannels())

	store.Remove(cid)
	_, ok = store.Get(cid)
	req.False(ok)
}
