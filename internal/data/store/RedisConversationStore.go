package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/akolanti/DietRAG/internal/config"
	"github.com/akolanti/DietRAG/internal/data/redisStore"
	"github.com/akolanti/DietRAG/internal/domain/sessionModel"
	"github.com/akolanti/DietRAG/pkg/logger_i"
)

// RedisConversationStore keeps each session's exchanges as a Redis list with
// a TTL. The TTL refreshes on every append so only abandoned conversations
// expire.
type RedisConversationStore struct {
	store  *redisStore.Store
	logger *logger_i.Logger
}

func GetRedisConversationStore(ctx context.Context) sessionModel.ConversationStore {
	backing := redisStore.GetRedisStore(ctx, config.RedisConversationStore)
	if backing == nil {
		return nil
	}
	return &RedisConversationStore{
		store:  backing,
		logger: logger_i.NewLogger("ConversationStore"),
	}
}

// NewTestConversationStore wires an arbitrary backing store, for tests.
func NewTestConversationStore(backing *redisStore.Store) *RedisConversationStore {
	return &RedisConversationStore{
		store:  backing,
		logger: logger_i.NewLogger("ConversationStore"),
	}
}

func (s *RedisConversationStore) InitConversation(ctx context.Context, sessionId string) error {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "sessionId", sessionId)
	log.Debug("Initializing conversation")

	if err := s.store.Del(ctx, sessionId); err != nil && !s.store.IsNil(err) {
		log.Error("Error clearing previous conversation", "error", err)
		return err
	}
	// Empty sentinel entry marks the key as a live conversation.
	return s.push(ctx, sessionId, sessionModel.ConversationEntry{})
}

func (s *RedisConversationStore) HasConversation(ctx context.Context, sessionId string) bool {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "sessionId", sessionId)

	found, err := s.store.Exists(ctx, sessionId)
	if err != nil && !s.store.IsNil(err) {
		log.Error("Failed to check conversation existence", "error", err)
		return false
	}
	return found
}

func (s *RedisConversationStore) AppendExchange(ctx context.Context, sessionId string, entry sessionModel.ConversationEntry) error {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "sessionId", sessionId)

	if !s.HasConversation(ctx, sessionId) {
		err := fmt.Errorf("unknown conversation %s", sessionId)
		log.Error("Failed validation before saving", "error", err)
		return err
	}
	return s.push(ctx, sessionId, entry)
}

func (s *RedisConversationStore) RecentHistory(ctx context.Context, sessionId string) ([]string, error) {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "sessionId", sessionId)
	log.Debug("Getting conversation history")

	raw, err := s.store.ListRecent(ctx, sessionId, config.HistoryWindow)
	if err != nil {
		log.Error("Error getting history", "error", err)
		return nil, err
	}
	return renderEntries(raw, s.logger), nil
}

func (s *RedisConversationStore) DeleteConversation(ctx context.Context, sessionId string) error {
	err := s.store.Del(ctx, sessionId)
	if err != nil && !s.store.IsNil(err) {
		return err
	}
	return nil
}

func (s *RedisConversationStore) push(ctx context.Context, sessionId string, entry sessionModel.ConversationEntry) error {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "sessionId", sessionId)

	if err := s.store.ListPush(ctx, sessionId, marshallEntry(entry, s.logger)); err != nil {
		log.Error("Error saving exchange", "error", err)
		return err
	}
	if err := s.store.Expire(ctx, sessionId, config.RedisConversationTTL); err != nil {
		log.Error("Error refreshing conversation TTL", "error", err)
	}
	return nil
}

func marshallEntry(entry sessionModel.ConversationEntry, logger *logger_i.Logger) []byte {
	data, err := json.Marshal(entry)
	if err != nil {
		logger.Error("Error marshalling entry", "error", err)
	}
	return data
}

// renderEntries turns stored exchanges into prompt-ready lines, oldest
// first. The init sentinel and anything unparseable are skipped.
func renderEntries(raw []string, logger *logger_i.Logger) []string {
	lines := make([]string, 0, len(raw))
	for _, item := range raw {
		var entry sessionModel.ConversationEntry
		if err := json.Unmarshal([]byte(item), &entry); err != nil {
			logger.Error("Error unmarshalling entry", "error", err)
			continue
		}
		if entry.UserMessage == "" && entry.AssistantResponse == "" {
			continue
		}
		lines = append(lines, fmt.Sprintf("User: %s\nAssistant: %s", entry.UserMessage, entry.AssistantResponse))
	}
	return lines
}
