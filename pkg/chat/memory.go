package chat

// EntryKind tags who authored a log entry.
type EntryKind int

const (
	// Prompt is text sent to the model: status blocks, action feedback,
	// or lines the guest typed.
	Prompt EntryKind = iota
	// Output is text the model produced.
	Output
)

// Entry is one recorded turn of dialogue context.
type Entry struct {
	Kind    EntryKind
	Content string
}

// DefaultMaxEntries caps the context window sent with each request.
// It can't be much higher because of the model's token limit.
const DefaultMaxEntries = 8

// Memory is the agent's bounded conversational context. Entries are
// appended at the back; once the cap is reached the oldest entry is
// evicted first. Memory is not safe for concurrent use; the tick
// goroutine is its only mutator.
type Memory struct {
	max     int
	entries []Entry
}

// NewMemory creates a memory holding at most max entries. A max of
// zero or less falls back to DefaultMaxEntries.
func NewMemory(max int) *Memory {
	if max <= 0 {
		max = DefaultMaxEntries
	}
	return &Memory{
		max:     max,
		entries: make([]Entry, 0, max),
	}
}

// Add appends an entry, evicting the oldest if the cap is exceeded.
func (m *Memory) Add(kind EntryKind, content string) {
	m.entries = append(m.entries, Entry{Kind: kind, Content: content})
	if len(m.entries) > m.max {
		m.entries = m.entries[1:]
	}
}

// AddPrompt appends a Prompt-kind entry.
func (m *Memory) AddPrompt(content string) {
	m.Add(Prompt, content)
}

// AddOutput appends an Output-kind entry.
func (m *Memory) AddOutput(content string) {
	m.Add(Output, content)
}

// Len returns the number of stored entries.
func (m *Memory) Len() int {
	return len(m.entries)
}

// Entries returns a copy of the log in insertion order.
func (m *Memory) Entries() []Entry {
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

// Clear discards the whole log. Used when an upstream response could
// not be parsed: the context is treated as corrupted and the dialogue
// restarts from empty.
func (m *Memory) Clear() {
	m.entries = m.entries[:0]
}

// Messages maps the log onto wire messages in insertion order,
// Prompt entries as the user role and Output entries as the
// assistant role.
func (m *Memory) Messages() []Message {
	out := make([]Message, 0, len(m.entries))
	for _, e := range m.entries {
		role := RoleUser
		if e.Kind == Output {
			role = RoleAgent
		}
		out = append(out, Message{Role: role, Content: e.Content})
	}
	return out
}
