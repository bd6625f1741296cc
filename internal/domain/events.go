package domain

type EventKind string

const (
	EventCommand  EventKind = "command"
	EventText     EventKind = "text"
	EventPhoto    EventKind = "photo"
	EventDocument EventKind = "document"
	EventSelect   EventKind = "select"
)

// Event is one normalized inbound message. Value carries the command name,
// the message text, the callback data or the file id depending on Kind.
type Event struct {
	From     int64
	FromName string
	Kind     EventKind
	Value    string
}

// Action is one outbound instruction: a text, photo or document addressed
// either to a single chat or to the whole admin group. Options, when set,
// are rendered as selection buttons under the message.
type Action struct {
	ChatID     int64
	ToAdmins   bool
	Text       string
	PhotoID    string
	DocumentID string
	Caption    string
	Options    []string
}
