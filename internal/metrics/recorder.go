package metrics

import "time"

// Outcome classifies how a connection ended.
type Outcome string

const (
	// OutcomeServed means a document was written to the client.
	OutcomeServed Outcome = "served"
	// OutcomeRejected means a failure status was written to the client.
	OutcomeRejected Outcome = "rejected"
	// OutcomeDropped means the connection closed without any reply.
	OutcomeDropped Outcome = "dropped"
)

// Recorder receives observability events. Implementations must be safe for
// concurrent use.
type Recorder interface {
	ConnectionOpened()
	ConnectionClosed(outcome Outcome, d time.Duration)
	ObserveResponse(status int, bytes int)
	ObserveConversion(d time.Duration, success bool)
}

// NoopRecorder is a Recorder that does nothing.
type NoopRecorder struct{}

func (NoopRecorder) ConnectionOpened() {}
func (NoopRecorder) ConnectionClosed(Outcome, time.Duration) {}
func (NoopRecorder) ObserveResponse(int, int) {}
func (NoopRecorder) ObserveConversion(time.Duration, bool) {}
