package detect

// Kind identifies the category of an attention reason.
type Kind int

const (
	// KindWaitingForInput means the process appears blocked reading
	// interactive input from a terminal.
	KindWaitingForInput Kind = iota

	// KindProcessStalled means the process has shown no CPU progress for
	// an abnormal duration.
	KindProcessStalled

	// KindCustom is the escape variant for callers composing their own
	// detectors; it carries free-form text.
	KindCustom
)

// String returns a short identifier for the kind.
func (k Kind) String() string {
	switch k {
	case KindWaitingForInput:
		return "waiting_for_input"
	case KindProcessStalled:
		return "process_stalled"
	case KindCustom:
		return "custom"
	default:
		return "unknown"
	}
}

// AttentionReason explains why a monitored process needs human attention.
// It is an immutable value created fresh per detection; rendering sites do
// not need to know the full set of kinds because String always produces a
// human-readable message.
type AttentionReason struct {
	kind    Kind
	message string
}

// WaitingForInput returns the reason for a process blocked on interactive
// input.
func WaitingForInput() *AttentionReason {
	return &AttentionReason{kind: KindWaitingForInput}
}

// ProcessStalled returns the reason for a process with no CPU progress.
func ProcessStalled() *AttentionReason {
	return &AttentionReason{kind: KindProcessStalled}
}

// Custom returns a reason carrying free-form text.
func Custom(message string) *AttentionReason {
	return &AttentionReason{kind: KindCustom, message: message}
}

// Kind returns the reason's category.
func (r *AttentionReason) Kind() Kind {
	return r.kind
}

// String returns the human-readable rendering of the reason.
func (r *AttentionReason) String() string {
	switch r.kind {
	case KindWaitingForInput:
		return "Waiting for input"
	case KindProcessStalled:
		return "Process stalled (no activity)"
	case KindCustom:
		return r.message
	default:
		return "unknown"
	}
}
