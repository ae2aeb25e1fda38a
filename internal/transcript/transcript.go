// Package transcript holds the append-only chat log for one interview.
package transcript

import "time"

// Entry roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Entry is one chat turn. Entries are immutable once appended.
// IsQuestion is true only for assistant entries that present a new
// question awaiting an answer.
type Entry struct {
	Role       string    `json:"role"`
	Content    string    `json:"content"`
	Timestamp  time.Time `json:"timestamp"`
	IsQuestion bool      `json:"isQuestion,omitempty"`
}

// Log is an ordered, append-only sequence of entries. Entries are never
// reordered or deleted within a session; abandoning a session discards
// the whole log. Log is not safe for concurrent use; the session
// controller serializes access.
type Log struct {
	entries []Entry
}

// NewLog creates an empty transcript.
func NewLog() *Log {
	return &Log{}
}

// Append adds an entry with the current time and returns it.
func (l *Log) Append(role, content string) Entry {
	return l.append(Entry{Role: role, Content: content, Timestamp: time.Now()})
}

// AppendQuestion adds an assistant entry flagged as a question.
func (l *Log) AppendQuestion(content string) Entry {
	return l.append(Entry{
		Role:       RoleAssistant,
		Content:    content,
		Timestamp:  time.Now(),
		IsQuestion: true,
	})
}

func (l *Log) append(e Entry) Entry {
	l.entries = append(l.entries, e)
	return e
}

// Len returns the number of entries.
func (l *Log) Len() int {
	return len(l.entries)
}

// Snapshot returns a copy of the entries in append order.
func (l *Log) Snapshot() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Last returns the most recent entry and true, or a zero Entry and
// false when the log is empty.
func (l *Log) Last() (Entry, bool) {
	if len(l.entries) == 0 {
		return Entry{}, false
	}
	return l.entries[len(l.entries)-1], true
}
