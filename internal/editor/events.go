package editor

// Key identifies a key press delivered to the editor
type Key string

// KeyConfirm is the commit gesture
const KeyConfirm Key = "enter"

// Event is an input to Reduce
type Event interface {
	isEvent()
}

// Mounted starts the editor. Only the first one issues the initial load.
type Mounted struct{}

// InputChanged reports the new content of the input field
type InputChanged struct {
	Text string
}

// KeyPressed reports a key press while the input has focus
type KeyPressed struct {
	Key Key
}

// FetchSucceeded completes the initial load
type FetchSucceeded struct {
	Seq  uint64
	Body string
}

// FetchFailed completes the initial load with an error
type FetchFailed struct {
	Seq uint64
	Err error
}

// SubmitSucceeded completes a commit with the server's canonical echo
type SubmitSucceeded struct {
	Seq  uint64
	Body string
}

// SubmitFailed completes a commit with an error
type SubmitFailed struct {
	Seq uint64
	Err error
}

func (Mounted) isEvent()         {}
func (InputChanged) isEvent()    {}
func (KeyPressed) isEvent()      {}
func (FetchSucceeded) isEvent()  {}
func (FetchFailed) isEvent()     {}
func (SubmitSucceeded) isEvent() {}
func (SubmitFailed) isEvent()    {}

// Effect is work Reduce asks the caller to perform
type Effect interface {
	isEffect()
}

// Fetch asks for a read of the resource. Its result must come back as
// FetchSucceeded or FetchFailed carrying the same Seq.
type Fetch struct {
	Seq uint64
}

// Submit asks for a write of Body. Its result must come back as
// SubmitSucceeded or SubmitFailed carrying the same Seq.
type Submit struct {
	Seq  uint64
	Body string
}

// LogFailure asks for a failed request to be logged
type LogFailure struct {
	Seq uint64
	Op  string
	Err error
}

// LogStale asks for a discarded response to be logged
type LogStale struct {
	Seq    uint64
	Op     string
	Latest uint64
}

func (Fetch) isEffect()      {}
func (Submit) isEffect()     {}
func (LogFailure) isEffect() {}
func (LogStale) isEffect()   {}

// Operation names used in log effects
const (
	OpFetch  = "fetch"
	OpSubmit = "submit"
)
