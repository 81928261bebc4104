package pipeline

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// MockObserver records events and messages for test assertions.
type MockObserver struct {
	events   []Event
	messages []string
	fields   map[string]string
}

func NewMockObserver() *MockObserver {
	return &MockObserver{fields: make(map[string]string)}
}

func (m *MockObserver) Printf(format string, v ...any) {
	m.messages = append(m.messages, fmt.Sprintf(format, v...))
}

func (m *MockObserver) Event(event Event) {
	m.events = append(m.events, event)
}

func (m *MockObserver) WithFields(fields map[string]string) Observer {
	merged := make(map[string]string, len(m.fields)+len(fields))
	for k, v := range m.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &MockObserver{fields: merged}
}

func (m *MockObserver) eventTypes() []EventType {
	types := make([]EventType, len(m.events))
	for i, e := range m.events {
		types[i] = e.Type
	}
	return types
}

func TestConsoleObserver_FormatEvent(t *testing.T) {
	o := &ConsoleObserver{contextFields: map[string]string{"project": "acme"}}

	msg := o.formatEvent(Event{
		Type:     EventArtifactWritten,
		Phase:    "generate",
		Resource: "out/compose.yaml",
		Message:  "artifact written",
		Fields:   map[string]string{},
	})

	assert.Contains(t, msg, "artifact.written")
	assert.Contains(t, msg, "[generate]")
	assert.Contains(t, msg, "resource=out/compose.yaml")
}

func TestConsoleObserver_WithFieldsPropagates(t *testing.T) {
	base := &ConsoleObserver{contextFields: map[string]string{"project": "acme"}}
	scoped := base.WithFields(map[string]string{"phase": "provision"}).(*ConsoleObserver)

	assert.Equal(t, "acme", scoped.contextFields["project"])
	assert.Equal(t, "provision", scoped.contextFields["phase"])
	// Base is unchanged.
	assert.NotContains(t, base.contextFields, "phase")
}

func TestLogHelpers(t *testing.T) {
	observer := NewMockObserver()

	LogPhaseStart(observer, "generate")
	LogArtifactWritten(observer, "generate", "out/compose.yaml")
	LogToolInvoked(observer, "provision", "tofu", []string{"apply"})
	LogPhaseComplete(observer, "generate", 2*time.Second)
	LogPhaseFailed(observer, "configure", fmt.Errorf("unreachable"))

	assert.Equal(t, []EventType{
		EventPhaseStarted,
		EventArtifactWritten,
		EventToolInvoked,
		EventPhaseCompleted,
		EventPhaseFailed,
	}, observer.eventTypes())
	assert.Contains(t, observer.events[4].Message, "unreachable")
}
