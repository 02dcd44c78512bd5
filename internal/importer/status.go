package importer

// Status tracks the lifecycle of one import job.
type Status string

const (
	StatusPending      Status = "pending"
	StatusDecoding     Status = "decoding"
	StatusAwaitingCrop Status = "awaiting_crop"
	StatusConverting   Status = "converting"
	StatusCompleted    Status = "completed"
	StatusFailed       Status = "failed"
)

// validTransitions maps each status to the statuses a job may move to next.
// Failed and completed are terminal.
var validTransitions = map[Status][]Status{
	StatusPending:      {StatusDecoding, StatusFailed},
	StatusDecoding:     {StatusAwaitingCrop, StatusFailed},
	StatusAwaitingCrop: {StatusConverting, StatusFailed},
	StatusConverting:   {StatusCompleted, StatusFailed},
}

// CanTransition reports whether moving from one status to another is legal.
func CanTransition(from, to Status) bool {
	for _, next := range validTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether a status ends the job.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}
