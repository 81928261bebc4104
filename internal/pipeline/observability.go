package pipeline

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Observer receives structured events during a pipeline run.
type Observer interface {
	// Printf logs a free-form message.
	Printf(format string, v ...any)

	// Event emits a structured event.
	Event(event Event)

	// WithFields returns a new Observer that attaches the given context
	// fields to every event it emits.
	WithFields(fields map[string]string) Observer
}

// Event is a structured deployment event.
type Event struct {
	Type      EventType
	Phase     string
	Message   string
	Resource  string
	Timestamp time.Time
	Fields    map[string]string
}

// EventType classifies a deployment event.
type EventType string

const (
	// EventPhaseStarted indicates a deployment phase has started.
	EventPhaseStarted EventType = "phase.started"
	// EventPhaseCompleted indicates a deployment phase completed successfully.
	EventPhaseCompleted EventType = "phase.completed"
	// EventPhaseFailed indicates a deployment phase failed.
	EventPhaseFailed EventType = "phase.failed"

	// EventArtifactWritten indicates a generated artifact was written to disk.
	EventArtifactWritten EventType = "artifact.written"
	// EventToolInvoked indicates an external tool is being invoked.
	EventToolInvoked EventType = "tool.invoked"
)

var (
	styleFailed    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	styleCompleted = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	styleEventType = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// ConsoleObserver writes events to the standard logger. Event types are
// colorized when stdout is a terminal.
type ConsoleObserver struct {
	contextFields map[string]string
	color         bool
}

// NewConsoleObserver creates a console-based observer.
func NewConsoleObserver() *ConsoleObserver {
	return &ConsoleObserver{
		contextFields: make(map[string]string),
		color:         isatty.IsTerminal(os.Stdout.Fd()),
	}
}

// Printf implements Observer.
func (o *ConsoleObserver) Printf(format string, v ...any) {
	log.Printf(format, v...)
}

// Event implements Observer.
func (o *ConsoleObserver) Event(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if event.Fields == nil {
		event.Fields = make(map[string]string)
	}
	for k, v := range o.contextFields {
		if _, exists := event.Fields[k]; !exists {
			event.Fields[k] = v
		}
	}
	log.Print(o.formatEvent(event))
}

// WithFields implements Observer.
func (o *ConsoleObserver) WithFields(fields map[string]string) Observer {
	merged := make(map[string]string, len(o.contextFields)+len(fields))
	for k, v := range o.contextFields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &ConsoleObserver{contextFields: merged, color: o.color}
}

func (o *ConsoleObserver) formatEvent(event Event) string {
	var parts []string

	parts = append(parts, o.styleType(event.Type))
	if event.Phase != "" {
		parts = append(parts, fmt.Sprintf("[%s]", event.Phase))
	}
	if event.Resource != "" {
		parts = append(parts, fmt.Sprintf("resource=%s", event.Resource))
	}
	parts = append(parts, event.Message)

	if len(event.Fields) > 0 {
		fieldParts := make([]string, 0, len(event.Fields))
		for k, v := range event.Fields {
			fieldParts = append(fieldParts, fmt.Sprintf("%s=%s", k, v))
		}
		parts = append(parts, fmt.Sprintf("(%s)", strings.Join(fieldParts, ", ")))
	}

	return strings.Join(parts, " ")
}

func (o *ConsoleObserver) styleType(t EventType) string {
	if !o.color {
		return string(t)
	}
	switch t {
	case EventPhaseFailed:
		return styleFailed.Render(string(t))
	case EventPhaseCompleted:
		return styleCompleted.Render(string(t))
	default:
		return styleEventType.Render(string(t))
	}
}

// LogPhaseStart logs a phase start event.
func LogPhaseStart(observer Observer, phase string) {
	observer.Event(Event{
		Type:    EventPhaseStarted,
		Phase:   phase,
		Message: "starting",
	})
}

// LogPhaseComplete logs a phase completion event.
func LogPhaseComplete(observer Observer, phase string, duration time.Duration) {
	observer.Event(Event{
		Type:    EventPhaseCompleted,
		Phase:   phase,
		Message: fmt.Sprintf("completed in %v", duration.Round(time.Millisecond)),
	})
}

// LogPhaseFailed logs a phase failure event.
func LogPhaseFailed(observer Observer, phase string, err error) {
	observer.Event(Event{
		Type:    EventPhaseFailed,
		Phase:   phase,
		Message: fmt.Sprintf("failed: %v", err),
	})
}

// LogArtifactWritten logs a written artifact event.
func LogArtifactWritten(observer Observer, phase, path string) {
	observer.Event(Event{
		Type:     EventArtifactWritten,
		Phase:    phase,
		Resource: path,
		Message:  "artifact written",
	})
}

// LogToolInvoked logs an external tool invocation event.
func LogToolInvoked(observer Observer, phase, tool string, args []string) {
	observer.Event(Event{
		Type:     EventToolInvoked,
		Phase:    phase,
		Resource: tool,
		Message:  strings.Join(args, " "),
	})
}
