package conversation

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrCreateNewSession(t *testing.T) {
	store := NewMemoryStore(0)

	session := store.GetOrCreate("user-1")
	require.NotNil(t, session)
	assert.Equal(t, "user-1", session.UserID)
	assert.NotEmpty(t, session.SessionID)
	assert.Equal(t, FlowNone, session.CurrentFlow)
	assert.Equal(t, 1, session.MessageCount)
	assert.Equal(t, 1, store.Len())

	again := store.GetOrCreate("user-1")
	assert.Equal(t, session.SessionID, again.SessionID)
	assert.Equal(t, 2, again.MessageCount)
	assert.Equal(t, 1, store.Len())
}

func TestGetReturnsNilForMissingUser(t *testing.T) {
	store := NewMemoryStore(0)
	assert.Nil(t, store.Get("nadie"))
}

func TestSessionExpiresAfterTimeout(t *testing.T) {
	store := NewMemoryStore(10 * time.Minute)
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store.nowFn = func() time.Time { return base }

	store.GetOrCreate("user-1")

	// Exatamente no limite ainda está viva
	store.nowFn = func() time.Time { return base.Add(10 * time.Minute) }
	assert.NotNil(t, store.Get("user-1"))

	// Um instante depois do limite expira e é removida no acesso
	store.nowFn = func() time.Time { return base.Add(10*time.Minute + time.Nanosecond) }
	assert.Nil(t, store.Get("user-1"))
	assert.Equal(t, 0, store.Len())
}

func TestGetOrCreateReplacesExpiredSession(t *testing.T) {
	store := NewMemoryStore(10 * time.Minute)
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store.nowFn = func() time.Time { return base }

	first := store.GetOrCreate("user-1")
	first.CurrentFlow = FlowCreatingBudget

	store.nowFn = func() time.Time { return base.Add(11 * time.Minute) }
	second := store.GetOrCreate("user-1")

	assert.NotEqual(t, first.SessionID, second.SessionID)
	assert.Equal(t, FlowNone, second.CurrentFlow)
	assert.Empty(t, second.FlowData)
}

func TestSweepRemovesOnlyExpired(t *testing.T) {
	store := NewMemoryStore(10 * time.Minute)
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store.nowFn = func() time.Time { return base }

	store.GetOrCreate("viejo-1")
	store.GetOrCreate("viejo-2")

	store.nowFn = func() time.Time { return base.Add(5 * time.Minute) }
	store.GetOrCreate("reciente")

	store.nowFn = func() time.Time { return base.Add(12 * time.Minute) }
	assert.Equal(t, 2, store.Sweep())
	assert.Equal(t, 1, store.Len())
	assert.NotNil(t, store.Get("reciente"))
}

func TestDelete(t *testing.T) {
	store := NewMemoryStore(0)

	store.GetOrCreate("user-1")
	store.Delete("user-1")
	assert.Nil(t, store.Get("user-1"))
	assert.Equal(t, 0, store.Len())

	// Delete de usuário inexistente não falha
	store.Delete("nadie")
}

func TestLockSerializesSameUser(t *testing.T) {
	store := NewMemoryStore(0)

	const iterations = 200
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < iterations; j++ {
				store.Lock("user-1")
				counter++
				store.Unlock("user-1")
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 4*iterations, counter)
}

func TestConcurrentDistinctUsers(t *testing.T) {
	store := NewMemoryStore(0)

	var wg sync.WaitGroup
	users := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	for _, u := range users {
		wg.Add(1)
		go func(userID string) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				store.Lock(userID)
				store.GetOrCreate(userID)
				store.Unlock(userID)
			}
		}(u)
	}
	wg.Wait()

	assert.Equal(t, len(users), store.Len())
	for _, u := range users {
		session := store.Get(u)
		require.NotNil(t, session)
		assert.Equal(t, 50, session.MessageCount)
	}
}
