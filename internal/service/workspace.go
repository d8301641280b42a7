package service

import (
	"strconv"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

// Workspaces keeps one SessionStore per Telegram chat. Chats share nothing.
// With a positive idle TTL a workspace untouched for that long is dropped.
type Workspaces struct {
	mu    sync.Mutex
	ids   *IDSource
	cache *cache.Cache
}

func NewWorkspaces(ids *IDSource, idleTTL time.Duration) *Workspaces {
	expiration := cache.NoExpiration
	var cleanup time.Duration
	if idleTTL > 0 {
		expiration = idleTTL
		cleanup = idleTTL / 2
		if cleanup < time.Minute {
			cleanup = time.Minute
		}
	}
	return &Workspaces{
		ids:   ids,
		cache: cache.New(expiration, cleanup),
	}
}

// Get returns the chat's store, creating it on first use, and refreshes its idle timer.
func (w *Workspaces) Get(chatID int64) *SessionStore {
	key := strconv.FormatInt(chatID, 10)

	w.mu.Lock()
	defer w.mu.Unlock()

	var store *SessionStore
	if v, ok := w.cache.Get(key); ok {
		store = v.(*SessionStore)
	} else {
		store = NewSessionStore(w.ids)
	}
	w.cache.SetDefault(key, store)
	return store
}

func (w *Workspaces) Len() int {
	return w.cache.ItemCount()
}
