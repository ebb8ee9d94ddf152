// Package msglog holds ordered warning and error messages produced while reading
// or writing images.
package msglog

import "strings"

// MessageType is the severity of a [Message].
type MessageType uint8

const (
	Warning MessageType = iota // warning
	Error                      // error
)

func (t MessageType) String() string {
	switch t {
	case Warning:
		return "warning"
	case Error:
		return "error"
	}
	return "unknown"
}

// Message is a single log entry.
type Message struct {
	Text string
	Type MessageType
}

func (m Message) String() string {
	return m.Type.String() + ": " + m.Text
}

// MessageLog is an ordered collection of messages. The zero value is an empty log
// ready to use. MessageLog is not safe for concurrent use; callers sharing a log
// across goroutines guard it themselves.
type MessageLog struct {
	messages []Message
}

// Add appends a message with the given text and type.
func (l *MessageLog) Add(text string, t MessageType) {
	l.messages = append(l.messages, Message{Text: text, Type: t})
}

// AddMessage appends m.
func (l *MessageLog) AddMessage(m Message) {
	l.messages = append(l.messages, m)
}

// Append appends all messages of other, keeping their order.
func (l *MessageLog) Append(other MessageLog) {
	l.messages = append(l.messages, other.messages...)
}

// Messages returns a copy of the logged messages in insertion order.
func (l *MessageLog) Messages() []Message {
	if len(l.messages) == 0 {
		return nil
	}
	return append([]Message(nil), l.messages...)
}

// Len returns the number of messages.
func (l *MessageLog) Len() int { return len(l.messages) }

// HasErrors reports whether any message has type [Error].
func (l *MessageLog) HasErrors() bool {
	for _, m := range l.messages {
		if m.Type == Error {
			return true
		}
	}
	return false
}

// Clear removes all messages.
func (l *MessageLog) Clear() {
	l.messages = nil
}

// Clone returns an independent copy of the log.
func (l *MessageLog) Clone() MessageLog {
	return MessageLog{messages: l.Messages()}
}

// String returns one message per line.
func (l *MessageLog) String() string {
	var sb strings.Builder
	for _, m := range l.messages {
		sb.WriteString(m.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
