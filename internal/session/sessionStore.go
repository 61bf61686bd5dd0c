package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/akolanti/DietRAG/internal/adapter/utils"
	"github.com/akolanti/DietRAG/internal/config"
	"github.com/akolanti/DietRAG/internal/domain/sessionModel"
	"github.com/akolanti/DietRAG/internal/rag/medical"
	"github.com/akolanti/DietRAG/internal/rag/vectorDB"
	"github.com/akolanti/DietRAG/pkg/logger_i"
)

var (
	ErrNotFound = errors.New("session not found")
)

// Store owns the session-id -> state map. Every mutation happens under the
// lock; ingest status transitions are terminal (pending -> completed|failed,
// never back), and Logout is the only deletion path.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*sessionModel.Session

	index         vectorDB.Index
	conversations sessionModel.ConversationStore
	logger        *logger_i.Logger
}

func NewStore(index vectorDB.Index, conversations sessionModel.ConversationStore) *Store {
	return &Store{
		sessions:      make(map[string]*sessionModel.Session),
		index:         index,
		conversations: conversations,
		logger:        logger_i.NewLogger("Session Store"),
	}
}

// Create registers a new session. With no files to ingest there is nothing
// pending, so the session starts completed with an empty record.
func (s *Store) Create(ctx context.Context, profile sessionModel.MedicalProfile, hasFiles bool) (sessionModel.Session, error) {
	id := utils.GetNewUUID()

	status := sessionModel.IngestCompleted
	if hasFiles {
		status = sessionModel.IngestPending
	}

	session := &sessionModel.Session{
		Id:           id,
		Profile:      profile,
		Partition:    config.SessionPartitionPref + id,
		IngestStatus: status,
		CreatedAt:    time.Now(),
	}

	if err := s.conversations.InitConversation(ctx, id); err != nil {
		return sessionModel.Session{}, err
	}

	s.mu.Lock()
	s.sessions[id] = session
	s.mu.Unlock()

	s.logger.Info("Session created", "sessionId", id, "ingestStatus", status)
	return *session, nil
}

func (s *Store) Get(id string) (sessionModel.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	if !ok {
		return sessionModel.Session{}, ErrNotFound
	}
	return *session, nil
}

// CompleteIngest moves a pending session to completed and attaches the
// extracted record. A second completion or a completion after failure is a
// no-op: the first terminal state wins.
func (s *Store) CompleteIngest(id string, record medical.Record, failedFiles []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return ErrNotFound
	}
	if session.IngestStatus != sessionModel.IngestPending {
		return nil
	}

	session.IngestStatus = sessionModel.IngestCompleted
	session.Record = record
	session.FailedFiles = failedFiles
	return nil
}

// FailIngest marks a pending session as terminally failed.
func (s *Store) FailIngest(id string, reason string, failedFiles []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return ErrNotFound
	}
	if session.IngestStatus != sessionModel.IngestPending {
		return nil
	}

	session.IngestStatus = sessionModel.IngestFailed
	session.FailureReason = reason
	session.FailedFiles = failedFiles
	return nil
}

// Logout tears the session down: index partition, conversation history,
// then the map entry. The entry goes last so a failed teardown leaves the
// session resolvable and a retry runs the removal again. Idempotent, logging
// out twice is not an error.
func (s *Store) Logout(ctx context.Context, id string) error {
	s.mu.RLock()
	session, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok {
		return nil
	}

	if err := s.index.RemovePartition(ctx, session.Partition); err != nil {
		s.logger.Error("Error removing session partition", "sessionId", id, "error", err)
		return err
	}
	if err := s.conversations.DeleteConversation(ctx, id); err != nil {
		s.logger.Error("Error deleting conversation history", "sessionId", id, "error", err)
		return err
	}

	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()

	s.logger.Info("Session logged out", "sessionId", id)
	return nil
}

// SweepExpired removes sessions older than maxAge through the same teardown
// path as Logout. Meant for an external cron, never runs implicitly.
func (s *Store) SweepExpired(ctx context.Context, maxAge time.Duration) int {
	cutoff := time.Now().Add(-maxAge)

	s.mu.RLock()
	var expired []string
	for id, session := range s.sessions {
		if session.CreatedAt.Before(cutoff) {
			expired = append(expired, id)
		}
	}
	s.mu.RUnlock()

	removed := 0
	for _, id := range expired {
		if err := s.Logout(ctx, id); err == nil {
			removed++
		}
	}

	if removed > 0 {
		s.logger.Info("Expired sessions swept", "count", removed)
	}
	return removed
}
