package domain

type Step string

const (
	StepIdle Step = ""

	// админский сценарий
	StepAwaitingPhoto  Step = "awaiting_photo"
	StepAwaitingNumber Step = "awaiting_number"
	StepAwaitingDriver Step = "awaiting_driver"

	// водительский сценарий
	StepAwaitingIdentity Step = "awaiting_identity"
	StepAwaitingRequest  Step = "awaiting_request"
	StepAwaitingDocs     Step = "awaiting_docs"
)

// Session holds the conversational state of one chat. Scratch fields are
// only meaningful for the current step and are zeroed on every completed
// or restarted flow; CorrelationID survives resets.
type Session struct {
	CorrelationID string `json:"correlation_id"`
	Step          Step   `json:"step"`
	PhotoID       string `json:"photo_id,omitempty"`
	RequestNumber string `json:"request_number,omitempty"`
	Driver        string `json:"driver,omitempty"`
	RequestID     string `json:"request_id,omitempty"`
}

// Reset returns the session to the initial step and clears scratch.
func (s *Session) Reset() {
	*s = Session{CorrelationID: s.CorrelationID}
}
