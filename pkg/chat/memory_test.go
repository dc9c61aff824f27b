package chat

import (
	"fmt"
	"testing"
)

func TestMemoryBound(t *testing.T) {
	m := NewMemory(8)

	for i := 1; i <= 8; i++ {
		m.AddPrompt(fmt.Sprintf("entry %d", i))
	}
	if m.Len() != 8 {
		t.Fatalf("expected 8 entries, got %d", m.Len())
	}

	// The 9th append evicts entry 1.
	m.AddOutput("entry 9")
	if m.Len() != 8 {
		t.Fatalf("expected 8 entries after eviction, got %d", m.Len())
	}
	entries := m.Entries()
	if entries[0].Content != "entry 2" {
		t.Errorf("expected oldest entry to be evicted, front is %q", entries[0].Content)
	}
	if entries[7].Content != "entry 9" || entries[7].Kind != Output {
		t.Errorf("expected newest entry at the back, got %+v", entries[7])
	}

	// Size never exceeds the cap for any append sequence.
	for i := 0; i < 50; i++ {
		m.AddPrompt("filler")
		if m.Len() > 8 {
			t.Fatalf("memory exceeded cap: %d", m.Len())
		}
	}
}

func TestMemoryDefaultCap(t *testing.T) {
	m := NewMemory(0)
	for i := 0; i < 20; i++ {
		m.AddPrompt("x")
	}
	if m.Len() != DefaultMaxEntries {
		t.Errorf("expected default cap %d, got %d", DefaultMaxEntries, m.Len())
	}
}

func TestMemoryClear(t *testing.T) {
	m := NewMemory(4)
	m.AddPrompt("a")
	m.AddOutput("b")

	m.Clear()
	if m.Len() != 0 {
		t.Errorf("expected empty memory after clear, got %d entries", m.Len())
	}

	// Still usable after a wipe.
	m.AddPrompt("c")
	if m.Len() != 1 {
		t.Errorf("expected 1 entry, got %d", m.Len())
	}
}

func TestMemoryMessages(t *testing.T) {
	m := NewMemory(4)
	m.AddPrompt("status")
	m.AddOutput("say(hello)")
	m.AddPrompt("action_result: done")

	msgs := m.Messages()
	if len(msgs) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(msgs))
	}
	want := []Message{
		{Role: RoleUser, Content: "status"},
		{Role: RoleAgent, Content: "say(hello)"},
		{Role: RoleUser, Content: "action_result: done"},
	}
	for i, w := range want {
		if msgs[i] != w {
			t.Errorf("message %d = %+v, want %+v", i, msgs[i], w)
		}
	}
}

func TestEntriesIsACopy(t *testing.T) {
	m := NewMemory(4)
	m.AddPrompt("original")

	entries := m.Entries()
	entries[0].Content = "mutated"

	if m.Entries()[0].Content != "original" {
		t.Error("Entries should return a copy")
	}
}
