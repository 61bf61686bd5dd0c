package store_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/akolanti/DietRAG/internal/config"
	"github.com/akolanti/DietRAG/internal/data/redisStore"
	"github.com/akolanti/DietRAG/internal/data/store"
	"github.com/akolanti/DietRAG/internal/domain/sessionModel"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestRedisConversationStore_Lifecycle(t *testing.T) {
	// 1. Start miniredis
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	internalStore := redisStore.NewTestStore(client)
	conversations := store.NewTestConversationStore(internalStore)

	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "test-trace")
	sessionId := "session_abc_123"

	t.Run("Init and Has", func(t *testing.T) {
		if conversations.HasConversation(ctx, sessionId) {
			t.Fatal("conversation exists before init")
		}

		if err := conversations.InitConversation(ctx, sessionId); err != nil {
			t.Fatalf("InitConversation failed: %v", err)
		}

		if !conversations.HasConversation(ctx, sessionId) {
			t.Fatal("conversation missing after init")
		}
	})

	t.Run("Sentinel Hidden From History", func(t *testing.T) {
		history, err := conversations.RecentHistory(ctx, sessionId)
		if err != nil {
			t.Fatalf("RecentHistory failed: %v", err)
		}
		if len(history) != 0 {
			t.Errorf("fresh conversation should have no history, got %v", history)
		}
	})

	t.Run("Append and Read Roundtrip", func(t *testing.T) {
		entry := sessionModel.ConversationEntry{
			MessageId:         "msg-1",
			UserMessage:       "what should I eat for breakfast?",
			AssistantResponse: "Oats with low-fat milk work well.",
		}
		if err := conversations.AppendExchange(ctx, sessionId, entry); err != nil {
			t.Fatalf("AppendExchange failed: %v", err)
		}

		history, err := conversations.RecentHistory(ctx, sessionId)
		if err != nil {
			t.Fatalf("RecentHistory failed: %v", err)
		}
		if len(history) != 1 {
			t.Fatalf("history length got %d, want 1", len(history))
		}
		want := "User: what should I eat for breakfast?\nAssistant: Oats with low-fat milk work well."
		if history[0] != want {
			t.Errorf("rendered history got %q, want %q", history[0], want)
		}
	})

	t.Run("Window Keeps Most Recent Oldest First", func(t *testing.T) {
		for i := 2; i <= 8; i++ {
			entry := sessionModel.ConversationEntry{
				MessageId:         fmt.Sprintf("msg-%d", i),
				UserMessage:       fmt.Sprintf("question %d", i),
				AssistantResponse: fmt.Sprintf("answer %d", i),
			}
			if err := conversations.AppendExchange(ctx, sessionId, entry); err != nil {
				t.Fatalf("AppendExchange %d failed: %v", i, err)
			}
		}

		history, err := conversations.RecentHistory(ctx, sessionId)
		if err != nil {
			t.Fatalf("RecentHistory failed: %v", err)
		}
		if len(history) != config.HistoryWindow {
			t.Fatalf("history length got %d, want %d", len(history), config.HistoryWindow)
		}
		// 8 exchanges total, window of 5 keeps 4 through 8.
		if !strings.Contains(history[0], "question 4") {
			t.Errorf("oldest windowed line got %q, want question 4", history[0])
		}
		if !strings.Contains(history[len(history)-1], "question 8") {
			t.Errorf("newest line got %q, want question 8", history[len(history)-1])
		}
	})

	t.Run("TTL Set On Conversation", func(t *testing.T) {
		if mr.TTL(sessionId) <= 0 {
			t.Error("conversation key has no TTL")
		}
	})

	t.Run("Append To Unknown Session", func(t *testing.T) {
		err := conversations.AppendExchange(ctx, "no-such-session", sessionModel.ConversationEntry{
			UserMessage:       "hello",
			AssistantResponse: "hi",
		})
		if err == nil {
			t.Fatal("expected error appending to an unknown conversation")
		}
	})

	t.Run("Delete Conversation", func(t *testing.T) {
		if err := conversations.DeleteConversation(ctx, sessionId); err != nil {
			t.Fatalf("DeleteConversation failed: %v", err)
		}
		if conversations.HasConversation(ctx, sessionId) {
			t.Error("conversation still exists after delete")
		}
		// Deleting again is a no-op.
		if err := conversations.DeleteConversation(ctx, sessionId); err != nil {
			t.Errorf("second delete errored: %v", err)
		}
	})
}
