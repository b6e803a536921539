package main

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
)

// responderCall is one recorded Respond invocation.
type responderCall struct {
	persona Persona
	history []string
	prompt  string
}

// mockResponder is a test double for the Responder interface.
// reply decides the outcome of each call; nil replies with a fixed text.
type mockResponder struct {
	mu    sync.Mutex
	calls []responderCall
	reply func(n int, persona Persona) (string, error)
}

func (m *mockResponder) Respond(_ context.Context, persona Persona, history []string, prompt string) (string, error) {
	m.mu.Lock()
	n := len(m.calls)
	m.calls = append(m.calls, responderCall{persona: persona, history: append([]string(nil), history...), prompt: prompt})
	m.mu.Unlock()

	if m.reply == nil {
		return fmt.Sprintf("%sの発言%d", persona.ID, n+1), nil
	}
	return m.reply(n, persona)
}

func (m *mockResponder) recorded() []responderCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]responderCall(nil), m.calls...)
}

// callsBy returns the calls made for one persona, in order.
func (m *mockResponder) callsBy(id string) []responderCall {
	var out []responderCall
	for _, c := range m.recorded() {
		if c.persona.ID == id {
			out = append(out, c)
		}
	}
	return out
}

// newTestStore opens an in-memory store private to the test.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	store, err := openStore(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("Failed to open test store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// newTestGameLogger writes the transcript to a temp dir and returns the console buffer.
func newTestGameLogger(t *testing.T) (*GameLogger, *bytes.Buffer) {
	t.Helper()
	var console bytes.Buffer
	out, err := NewGameLogger(t.TempDir(), "test", "test", &console)
	if err != nil {
		t.Fatalf("Failed to create game logger: %v", err)
	}
	t.Cleanup(func() { out.Close() })
	return out, &console
}

func newTestPrompts(t *testing.T) *Prompts {
	t.Helper()
	prompts, err := loadPrompts()
	if err != nil {
		t.Fatalf("Failed to load prompts: %v", err)
	}
	return prompts
}

// newTestSequencer seats a game for mode with a fixed seed.
func newTestSequencer(t *testing.T, mode gameMode, responder Responder, maxDays int) (*Sequencer, *bytes.Buffer) {
	t.Helper()
	state, cast, err := setupGame(mode, 42)
	if err != nil {
		t.Fatalf("setupGame: %v", err)
	}
	store := newTestStore(t)
	runID, err := store.createRun(mode.name)
	if err != nil {
		t.Fatalf("createRun: %v", err)
	}
	if err := store.addPlayers(runID, state.Players); err != nil {
		t.Fatalf("addPlayers: %v", err)
	}
	out, console := newTestGameLogger(t)
	return &Sequencer{
		state:     state,
		mode:      mode,
		cast:      cast,
		responder: responder,
		out:       out,
		store:     store,
		runID:     runID,
		prompts:   newTestPrompts(t),
		maxDays:   maxDays,
	}, console
}
