package editor

// Reduce applies one event to the state. It never performs I/O; requests and
// logging are returned as effects.
func Reduce(s State, ev Event) (State, []Effect) {
	switch ev := ev.(type) {
	case Mounted:
		if s.mounted {
			return s, nil
		}
		s.mounted = true
		seq := s.issue()
		return s, []Effect{Fetch{Seq: seq}}

	case InputChanged:
		s.Input = ev.Text
		return s, nil

	case KeyPressed:
		if ev.Key != KeyConfirm {
			return s, nil
		}
		// Empty input is a valid submission. The field is cleared only once
		// the write succeeds.
		seq := s.issue()
		return s, []Effect{Submit{Seq: seq, Body: s.Input}}

	case FetchSucceeded:
		s.complete()
		if s.isStale(ev.Seq) {
			return s, []Effect{LogStale{Seq: ev.Seq, Op: OpFetch, Latest: s.lastApplied}}
		}
		s.applied(ev.Seq)
		s.Display = Display{Kind: Loaded, Value: ev.Body}
		return s, nil

	case FetchFailed:
		s.complete()
		if s.isStale(ev.Seq) {
			return s, []Effect{LogStale{Seq: ev.Seq, Op: OpFetch, Latest: s.lastApplied}}
		}
		s.applied(ev.Seq)
		s.Display = Display{Kind: Errored}
		return s, []Effect{LogFailure{Seq: ev.Seq, Op: OpFetch, Err: ev.Err}}

	case SubmitSucceeded:
		s.complete()
		if s.isStale(ev.Seq) {
			return s, []Effect{LogStale{Seq: ev.Seq, Op: OpSubmit, Latest: s.lastApplied}}
		}
		s.applied(ev.Seq)
		s.Display = Display{Kind: Loaded, Value: ev.Body}
		s.Input = ""
		return s, nil

	case SubmitFailed:
		s.complete()
		if s.isStale(ev.Seq) {
			return s, []Effect{LogStale{Seq: ev.Seq, Op: OpSubmit, Latest: s.lastApplied}}
		}
		s.applied(ev.Seq)
		// Input is kept so the user can retry
		s.Display = Display{Kind: Errored}
		return s, []Effect{LogFailure{Seq: ev.Seq, Op: OpSubmit, Err: ev.Err}}
	}

	return s, nil
}

func (s *State) issue() uint64 {
	s.nextSeq++
	s.inFlight++
	return s.nextSeq
}

func (s *State) complete() {
	if s.inFlight > 0 {
		s.inFlight--
	}
}

// isStale reports whether a completion must be dropped. Without
// DiscardStale every completion applies, so the last to arrive wins.
func (s *State) isStale(seq uint64) bool {
	return s.opts.DiscardStale && seq < s.lastApplied
}

func (s *State) applied(seq uint64) {
	if seq > s.lastApplied {
		s.lastApplied = seq
	}
}
