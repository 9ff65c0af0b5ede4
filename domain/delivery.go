package domain

// Delivery is the outcome of one directed emission.
type Delivery int

const (
	// Offline means the recipient had no registered connection; the event was dropped.
	Offline Delivery = iota
	// Delivered means the event was handed to the recipient's connection.
	Delivered
	// Failed means the transport refused the event (closed or saturated connection).
	Failed
)

func (d Delivery) String() string {
	switch d {
	case Delivered:
		return "delivered"
	case Failed:
		return "failed"
	default:
		return "offline"
	}
}

// FanoutReport counts the outcomes of emitting one event to many recipients.
type FanoutReport struct {
	Recipients int
	Delivered  int
	Offline    int
	Failed     int
}

func (r *FanoutReport) Add(d Delivery) {
	r.Recipients++
	switch d {
	case Delivered:
		r.Delivered++
	case Failed:
		r.Failed++
	default:
		r.Offline++
	}
}
