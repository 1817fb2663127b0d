package manchester

import "fmt"

// Config is the fixed setup of a Decoder. The zero value expects an idle
// high line, syncs on the first edge and packs BigEndian.
type Config struct {
	Inactivity InactivityLevel
	Sync       SyncEdge
	Order      BitOrder

	// Discarded, if set, is called with the bits collected so far whenever a
	// datagram is abandoned because the line went quiet away from its idle
	// level. Sample itself still reports nothing for such datagrams.
	Discarded func(partial Datagram)
}

// Decoder decodes a Manchester modulated stream of periodically taken
// samples into Datagrams. Sampling has to happen at SamplesPerHalfBit times
// the half-bit frequency.
type Decoder struct {
	cfg      Config
	idleHigh bool

	datagram          Datagram
	previousSample    bool
	edgeDistance      uint8
	recordingDistance uint8
	receiving         bool
}

func NewDecoder(cfg Config) *Decoder {
	d := &Decoder{
		cfg:      cfg,
		idleHigh: cfg.Inactivity == InactiveHigh,
	}
	d.Reset()
	return d
}

// Reset drops whatever is in flight and waits for a fresh datagram.
func (d *Decoder) Reset() {
	d.datagram = NewDatagram(d.cfg.Order)
	d.previousSample = d.idleHigh
	d.edgeDistance = NoEdgeExitLimit
	d.recordingDistance = NoEdgeExitLimit
	d.receiving = false
}

// Pending is the number of bits collected for the datagram in flight.
func (d *Decoder) Pending() uint8 {
	return d.datagram.Len()
}

// Receiving reports whether the decoder has locked onto a datagram.
func (d *Decoder) Receiving() bool {
	return d.receiving
}

// Sample feeds the level of the pin (true = high) taken at the current tick.
// ok is true when this sample completed a datagram.
//
// Record markers are the samples taken directly after the edge in the middle
// of a bit. Manchester coding guarantees that edge, so at each marker the
// bit value is latched:
//
//	       |bit_1|bit_0|bit_0     - idle high, starting with "1"
//	-------...------...---...
//	          ^     ^     ^
//
//	       |bit_0|bit_1|bit_1     - idle high, starting with "0"
//	----------......---...---
//	          ^     ^     ^
func (d *Decoder) Sample(level bool) (datagram Datagram, ok bool) {
	if level != d.previousSample {
		marker := false
		if !d.receiving {
			switch d.cfg.Sync {
			case SyncSecondEdge:
				// the first edge starts the bit, the mid-bit one follows
				// within half a bit
				if d.edgeDistance <= SamplesPerHalfBit+Tolerance {
					marker = true
					d.receiving = true
				}
			default:
				marker = true
				d.receiving = true
			}
		}
		if d.recordingDistance >= LowerBarrier && d.recordingDistance <= UpperBarrier {
			marker = true
		}
		if marker {
			if err := d.datagram.Append(level == d.idleHigh); err != nil {
				panic(fmt.Errorf("manchester: decoder: %w", err))
			}
			d.recordingDistance = 1
		}
		d.previousSample = level
		d.edgeDistance = 1
	} else {
		d.edgeDistance++
		d.recordingDistance++
	}

	if d.edgeDistance > NoEdgeExitLimit {
		// no edge anymore: end of datagram
		if !d.datagram.IsEmpty() {
			if level == d.idleHigh {
				datagram, ok = d.datagram, true
			} else if d.cfg.Discarded != nil {
				d.cfg.Discarded(d.datagram)
			}
		}
		d.datagram = NewDatagram(d.cfg.Order)
		d.receiving = false
		d.edgeDistance--
	}
	if d.recordingDistance > NoEdgeExitLimit {
		d.recordingDistance--
	}
	return datagram, ok
}
