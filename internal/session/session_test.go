// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/missionchat/internal/classify"
	"github.com/jeranaias/missionchat/internal/model"
	"github.com/jeranaias/missionchat/internal/storage"
)

// failingStore loads and saves with fixed errors.
type failingStore struct {
	loadErr error
	saveErr error
	saves   int
}

func (f *failingStore) Load(context.Context) ([]model.Entry, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return nil, nil
}

func (f *failingStore) Save(context.Context, []model.Entry) error {
	f.saves++
	return f.saveErr
}

func (f *failingStore) Location() string { return "nowhere.csv" }
func (f *failingStore) Close() error     { return nil }

func newCSVSession(t *testing.T) (*Session, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "user_messages.csv")
	return Open(context.Background(), storage.NewCSVStore(path), nil), path
}

// =============================================================================
// OPEN TESTS
// =============================================================================

func TestOpen_MissingFile(t *testing.T) {
	sess, path := newCSVSession(t)
	defer sess.Close()

	assert.Equal(t, 0, sess.Len())
	assert.NoError(t, sess.LoadError())
	assert.NoError(t, sess.LastPersistError())
	assert.Equal(t, path, sess.Location())

	_, err := uuid.Parse(sess.ID())
	assert.NoError(t, err, "session id should be a UUID")

	// No input means no file.
	_, err = os.Stat(path)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestOpen_UnreadableStoreIsEmpty(t *testing.T) {
	store := &failingStore{loadErr: errors.New("disk on fire")}
	sess := Open(context.Background(), store, nil)

	assert.Equal(t, 0, sess.Len())
	assert.EqualError(t, sess.LoadError(), "disk on fire")
	assert.NoError(t, sess.LastPersistError(), "a load failure is not a save failure")

	sess.Submit("hello")
	assert.NoError(t, sess.LastPersistError())
	assert.Error(t, sess.LoadError(), "load error is kept for the session")
	assert.Equal(t, 1, store.saves)
}

func TestOpen_MalformedFileIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "user_messages.csv")
	require.NoError(t, os.WriteFile(path, []byte("nonsense\n1\n"), 0644))

	sess := Open(context.Background(), storage.NewCSVStore(path), nil)
	assert.Equal(t, 0, sess.Len())
	assert.ErrorIs(t, sess.LoadError(), storage.ErrMalformedHeader)
	assert.NoError(t, sess.LastPersistError())
}

func TestOpen_CorruptSQLiteIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "user_messages.db")
	require.NoError(t, os.WriteFile(path, []byte("garbage that is not a sqlite header at all\n"), 0644))

	store, err := storage.OpenSQLite(path)
	require.NoError(t, err)
	sess := Open(context.Background(), store, nil)
	defer sess.Close()

	assert.Equal(t, 0, sess.Len())
	assert.Error(t, sess.LoadError())

	ex := sess.Submit("hello")
	assert.Equal(t, classify.GreetingResponse, ex.Result.Response)
	assert.Equal(t, 1, sess.Len())
	assert.Error(t, sess.LastPersistError())
}

func TestOpen_NilStore(t *testing.T) {
	sess := Open(context.Background(), nil, nil)
	ex := sess.Submit("hello")

	assert.Equal(t, classify.GreetingResponse, ex.Result.Response)
	assert.Equal(t, 1, sess.Len())
	assert.Equal(t, "", sess.Location())
	assert.NoError(t, sess.Close())
}

// =============================================================================
// SUBMIT TESTS
// =============================================================================

func TestSubmit_Scenarios(t *testing.T) {
	sess, _ := newCSVSession(t)
	defer sess.Close()

	tests := []struct {
		input    string
		label    classify.Label
		response string
		connect  string
	}{
		{"hello", classify.Neutral, "Hello, what can I help you?", "False"},
		{"you are stupid", classify.Negative, classify.NegativeResponse, "False"},
		{"I believe in God", classify.Positive, classify.PositiveResponse, "True"},
		{"what's the weather", classify.Neutral, "Any other questions?", "False"},
	}

	for i, tt := range tests {
		ex := sess.Submit(tt.input)
		assert.Equal(t, tt.label, ex.Result.Label, tt.input)
		assert.Equal(t, tt.response, ex.Result.Response, tt.input)
		assert.False(t, ex.Timestamp.IsZero())

		tail := sess.Tail(1)
		require.Len(t, tail, 1)
		assert.Equal(t, tt.input, tail[0].Message)
		assert.Equal(t, tt.connect, tail[0].Connect)
		assert.Equal(t, i+1, sess.Len())
	}

	assert.Len(t, sess.Transcript(), len(tests))
	assert.NoError(t, sess.LastPersistError())
}

func TestSubmit_PersistsEveryTurn(t *testing.T) {
	sess, path := newCSVSession(t)

	sess.Submit("hi")
	sess.Submit("amen")
	require.NoError(t, sess.Close())

	// A new session sees everything the first one wrote.
	reopened := Open(context.Background(), storage.NewCSVStore(path), nil)
	defer reopened.Close()

	entries := reopened.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "hi", entries[0].Message)
	assert.Equal(t, classify.Positive, entries[1].Label)

	// The transcript does not survive a restart.
	assert.Empty(t, reopened.Transcript())
}

func TestSubmit_PersistFailureIsSwallowed(t *testing.T) {
	store := &failingStore{saveErr: errors.New("read-only")}
	sess := Open(context.Background(), store, nil)

	ex := sess.Submit("you idiot")
	assert.Equal(t, classify.Negative, ex.Result.Label)
	assert.Equal(t, 1, sess.Len(), "entry stays in memory after a failed save")
	assert.EqualError(t, sess.LastPersistError(), "read-only")
	assert.Equal(t, 1, store.saves)

	// A later successful save clears the error.
	store.saveErr = nil
	sess.Submit("ok")
	assert.NoError(t, sess.LastPersistError())
	assert.Equal(t, 2, store.saves)
}

func TestSubmit_LenIsMonotonic(t *testing.T) {
	sess := Open(context.Background(), &failingStore{}, nil)
	prev := sess.Len()
	for _, text := range []string{"", " ", "hello", "hate", "jesus", "x"} {
		sess.Submit(text)
		assert.Equal(t, prev+1, sess.Len())
		prev = sess.Len()
	}
}

func TestSubmit_CustomClassifier(t *testing.T) {
	c := classify.New(classify.Lexicon{
		Greetings: []string{"yo"},
		Negative:  []string{"meh"},
		Positive:  []string{"great"},
	})
	sess := Open(context.Background(), &failingStore{}, c)

	assert.Equal(t, classify.GreetingResponse, sess.Submit("yo").Result.Response)
	assert.Equal(t, classify.Positive, sess.Submit("great").Result.Label)
	assert.Equal(t, classify.Neutral, sess.Submit("hello").Result.Label)
	assert.Same(t, c, sess.Classifier())
}

// =============================================================================
// READ ACCESS TESTS
// =============================================================================

func TestCountsAndTail(t *testing.T) {
	sess := Open(context.Background(), &failingStore{}, nil)
	for _, text := range []string{"a", "b", "c", "hate", "god"} {
		sess.Submit(text)
	}

	counts := sess.Counts()
	assert.Equal(t, 3, counts[classify.Neutral])
	assert.Equal(t, 1, counts[classify.Negative])
	assert.Equal(t, 1, counts[classify.Positive])

	tail := sess.Tail(10)
	require.Len(t, tail, 5)
	assert.Equal(t, "a", tail[0].Message)
	assert.Empty(t, sess.Tail(0))
}

func TestEntriesAreCopies(t *testing.T) {
	sess := Open(context.Background(), &failingStore{}, nil)
	sess.Submit("hello")

	entries := sess.Entries()
	entries[0].Message = "changed"
	transcript := sess.Transcript()
	transcript[0].Message = "changed"

	assert.Equal(t, "hello", sess.Entries()[0].Message)
	assert.Equal(t, "hello", sess.Transcript()[0].Message)
}

func TestLastExchange(t *testing.T) {
	sess := Open(context.Background(), &failingStore{}, nil)
	_, ok := sess.LastExchange()
	assert.False(t, ok)

	sess.Submit("hello")
	sess.Submit("god bless")
	last, ok := sess.LastExchange()
	require.True(t, ok)
	assert.Equal(t, "god bless", last.Message)
}

func TestGetStatus(t *testing.T) {
	store := &failingStore{}
	sess := Open(context.Background(), store, nil)
	sess.Submit("hello")

	st := sess.GetStatus()
	assert.Equal(t, sess.ID(), st.ID)
	assert.Equal(t, 1, st.Entries)
	assert.Equal(t, 1, st.Turns)
	assert.Equal(t, "nowhere.csv", st.Location)
	assert.NoError(t, st.LastPersistError)
	assert.False(t, st.StartTime.IsZero())
}

func TestPersist_Explicit(t *testing.T) {
	store := &failingStore{}
	sess := Open(context.Background(), store, nil)
	sess.Submit("hello")

	require.NoError(t, sess.Persist(context.Background()))
	assert.Equal(t, 2, store.saves)
}
