package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/akolanti/DietRAG/internal/config"
	"github.com/akolanti/DietRAG/internal/domain/sessionModel"
	"github.com/akolanti/DietRAG/pkg/logger_i"
)

var inMemLogger = logger_i.NewLogger("InMemory ConversationStore")

// InMemoryConversationStore is the fallback when Redis is offline. Same
// contract, no TTL: entries live until logout.
type InMemoryConversationStore struct {
	chatLock *sync.RWMutex
	chatMap  map[string][]sessionModel.ConversationEntry
}

func InitConversationStore() *InMemoryConversationStore {
	return &InMemoryConversationStore{
		chatLock: new(sync.RWMutex),
		chatMap:  make(map[string][]sessionModel.ConversationEntry),
	}
}

func (store *InMemoryConversationStore) InitConversation(ctx context.Context, sessionId string) error {
	store.chatLock.Lock()
	defer store.chatLock.Unlock()
	store.chatMap[sessionId] = make([]sessionModel.ConversationEntry, 0)
	return nil
}

func (store *InMemoryConversationStore) HasConversation(ctx context.Context, sessionId string) bool {
	store.chatLock.RLock()
	defer store.chatLock.RUnlock()
	_, ok := store.chatMap[sessionId]
	return ok
}

func (store *InMemoryConversationStore) AppendExchange(ctx context.Context, sessionId string, entry sessionModel.ConversationEntry) error {
	store.chatLock.Lock()
	defer store.chatLock.Unlock()
	if _, ok := store.chatMap[sessionId]; !ok {
		return fmt.Errorf("unknown conversation %s", sessionId)
	}
	store.chatMap[sessionId] = append(store.chatMap[sessionId], entry)
	return nil
}

func (store *InMemoryConversationStore) RecentHistory(ctx context.Context, sessionId string) ([]string, error) {
	store.chatLock.RLock()
	defer store.chatLock.RUnlock()

	entries, ok := store.chatMap[sessionId]
	if !ok {
		return []string{}, nil
	}
	if len(entries) > config.HistoryWindow {
		entries = entries[len(entries)-config.HistoryWindow:]
	}

	lines := make([]string, 0, len(entries))
	for _, entry := range entries {
		lines = append(lines, fmt.Sprintf("User: %s\nAssistant: %s", entry.UserMessage, entry.AssistantResponse))
	}
	return lines, nil
}

func (store *InMemoryConversationStore) DeleteConversation(ctx context.Context, sessionId string) error {
	store.chatLock.Lock()
	defer store.chatLock.Unlock()
	delete(store.chatMap, sessionId)
	return nil
}
