// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jeranaias/missionchat/internal/classify"
	"github.com/jeranaias/missionchat/internal/logger"
	"github.com/jeranaias/missionchat/internal/model"
	"github.com/jeranaias/missionchat/internal/storage"
)

// =============================================================================
// SESSION
// =============================================================================

// Session is the single owner of the message log for one run.
type Session struct {
	mu sync.Mutex

	id        string
	startTime time.Time

	classifier *classify.Classifier
	store      storage.Store
	log        *model.Log

	// Session-only chat turns, never persisted
	transcript []model.Exchange

	loadErr    error
	persistErr error
	logger     *slog.Logger

	// now is replaced in tests
	now func() time.Time
}

// Open starts a session and loads the existing log from store.
//
// A store that is missing or cannot be read yields an empty log. The load
// error is logged and available from LoadError, but is never returned.
// A nil classifier uses the built-in lexicon.
func Open(ctx context.Context, store storage.Store, classifier *classify.Classifier) *Session {
	if classifier == nil {
		classifier = classify.Default()
	}

	id := uuid.NewString()
	s := &Session{
		id:         id,
		startTime:  time.Now(),
		classifier: classifier,
		store:      store,
		logger:     logger.WithSession(id),
		now:        time.Now,
	}

	var entries []model.Entry
	if store != nil {
		loaded, err := store.Load(ctx)
		if err != nil {
			s.logger.Warn("LOAD_FAILED", "location", store.Location(), "error", err)
			s.loadErr = err
		} else {
			entries = loaded
		}
	}
	s.log = model.NewLog(entries)

	s.logger.Info("SESSION_START", "entries", s.log.Len(), "location", s.Location())
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// StartTime returns when the session was opened.
func (s *Session) StartTime() time.Time {
	return s.startTime
}

// Classifier returns the classifier used by Submit.
func (s *Session) Classifier() *classify.Classifier {
	return s.classifier
}

// Location is the backing store's file, or "" when running without one.
func (s *Session) Location() string {
	if s.store == nil {
		return ""
	}
	return s.store.Location()
}

// =============================================================================
// SUBMIT CYCLE
// =============================================================================

// Submit runs one full cycle: classify text, append the entry, save the
// log and record the turn in the transcript. It never fails; a save error
// is logged and kept as LastPersistError.
func (s *Session) Submit(text string) model.Exchange {
	return s.SubmitContext(context.Background(), text)
}

// SubmitContext is Submit with a context for the save.
func (s *Session) SubmitContext(ctx context.Context, text string) model.Exchange {
	s.mu.Lock()
	defer s.mu.Unlock()

	match := s.classifier.Match(text)
	ex := model.Exchange{
		Message:   text,
		Result:    match.Result,
		Timestamp: s.now(),
	}

	s.log.Append(model.NewEntry(text, match.Result))
	s.transcript = append(s.transcript, ex)

	s.logger.Debug("MESSAGE_CLASSIFIED",
		"label", match.Label,
		"rule", match.Rule.String(),
		"token", match.Token,
		"entries", s.log.Len())

	s.persistLocked(ctx)
	return ex
}

// Persist saves the full log to the store.
func (s *Session) Persist(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persistLocked(ctx)
}

func (s *Session) persistLocked(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	if err := s.store.Save(ctx, s.log.Entries()); err != nil {
		s.logger.Warn("PERSIST_FAILED", "location", s.store.Location(), "error", err)
		s.persistErr = err
		return err
	}
	s.persistErr = nil
	return nil
}

// LastPersistError returns the error from the most recent save, or nil if
// it succeeded or nothing has been saved yet.
func (s *Session) LastPersistError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persistErr
}

// LoadError returns the error that made Open start from an empty log.
func (s *Session) LoadError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadErr
}

// =============================================================================
// READ ACCESS
// =============================================================================

// Len returns the number of logged entries.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.log.Len()
}

// Entries returns a copy of the full log.
func (s *Session) Entries() []model.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.log.Entries()
}

// Tail returns the last n log entries, oldest first.
func (s *Session) Tail(n int) []model.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.log.Tail(n)
}

// Counts returns the number of entries per label.
func (s *Session) Counts() model.Counts {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.log.CountByLabel()
}

// Transcript returns a copy of this session's chat turns.
func (s *Session) Transcript() []model.Exchange {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Exchange, len(s.transcript))
	copy(out, s.transcript)
	return out
}

// LastExchange returns the most recent turn, if any.
func (s *Session) LastExchange() (model.Exchange, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.transcript) == 0 {
		return model.Exchange{}, false
	}
	return s.transcript[len(s.transcript)-1], true
}

// =============================================================================
// SESSION STATUS
// =============================================================================

// Status is a snapshot of the session for status bars and summaries.
type Status struct {
	ID               string
	StartTime        time.Time
	Duration         time.Duration
	Entries          int
	Turns            int
	Location         string
	LoadError        error
	LastPersistError error
}

// GetStatus returns the current session status.
func (s *Session) GetStatus() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Status{
		ID:               s.id,
		StartTime:        s.startTime,
		Duration:         time.Since(s.startTime),
		Entries:          s.log.Len(),
		Turns:            len(s.transcript),
		Location:         s.Location(),
		LoadError:        s.loadErr,
		LastPersistError: s.persistErr,
	}
}

// Close releases the store.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logger.Info("SESSION_END", "entries", s.log.Len(), "turns", len(s.transcript))
	if s.store == nil {
		return nil
	}
	return s.store.Close()
}
