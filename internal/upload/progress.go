package upload

// ProgressEvent reports resumable-upload advancement. Events stream on
// a channel owned by the uploader; the channel is closed when the
// upload finishes, so a range loop over it terminates on its own.
type ProgressEvent struct {
	BytesSent  int64
	TotalBytes int64
}

// Fraction returns completion in [0, 1]; 0 when the total is unknown.
func (e ProgressEvent) Fraction() float64 {
	if e.TotalBytes <= 0 {
		return 0
	}
	return float64(e.BytesSent) / float64(e.TotalBytes)
}

// notify sends without blocking. Uploads must not stall because a
// consumer fell behind, so a full buffer drops the event.
func notify(events chan<- ProgressEvent, e ProgressEvent) {
	if events == nil {
		return
	}
	select {
	case events <- e:
	default:
	}
}
