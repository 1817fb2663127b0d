/*
Package manchester decodes and encodes Manchester modulated signals, the way
Philips RC5 infrared remotes send them, from and into a stream of periodically
taken samples.

Every bit has an edge in its middle. The Decoder uses those mid-bit edges as
its clock: it only needs a single periodic timer running at three times the
half-bit frequency. For RC5 (889µs half-bit) that is one sample every 296µs.

	|bit_1|bit_0|bit_0     - the bits
	-------...------...---...  - the signal, idle high
	          ^     ^     ^    - record markers

A datagram starts after the line has been quiet for longer than a bit period
and ends once no edge has been seen for one and a half bit periods while the
line sits at its idle level. Anything else is noise and is dropped.

## Example

	const irPin = machine.GPIO15
	sm := manchester.NewStateMachine(manchester.Config{}, func(d manchester.Datagram) {
		println(d.String())
	})
	rx := manchester.NewRxDevice(irPin, sm)
	rx.Start(296 * time.Microsecond)

Decoder, Encoder and Emitter never allocate and never block, so they are safe
to drive from an interrupt handler. None of them lock; keep each instance on
one goroutine.
*/
package manchester

const (
	// Freq36Khz is the RC5 carrier frequency
	Freq36Khz = 36000
	// Freq38Khz is the most commonly used frequency for IR remotes
	Freq38Khz = 38000
)

const (
	// SamplesPerHalfBit is the fixed ratio between the sampling tick and the half-bit period.
	SamplesPerHalfBit = 3
	// Tolerance is how many samples an edge may drift and still count.
	Tolerance = 1

	//   ___---___------   e - first edge
	//   xxx012345678901   x - exit criteria no bits are send anymore
	//     f----tttt--xxx  t - tolerance range an edge is expected

	LowerBarrier    = 2*SamplesPerHalfBit - Tolerance
	UpperBarrier    = 2*SamplesPerHalfBit + Tolerance
	NoEdgeExitLimit = 3 * SamplesPerHalfBit
)

// BitOrder selects how bits are packed into a Datagram.
type BitOrder uint8

const (
	// BigEndian means the MSB is transmitted first, the LSB last.
	BigEndian BitOrder = iota
	// LittleEndian means the LSB is transmitted first, the MSB last.
	LittleEndian
)

func (o BitOrder) String() string {
	if o == LittleEndian {
		return "little"
	}
	return "big"
}

// InactivityLevel is the level the line rests at when nothing is sent.
type InactivityLevel uint8

const (
	InactiveHigh InactivityLevel = iota
	InactiveLow
)

func (l InactivityLevel) String() string {
	if l == InactiveLow {
		return "low"
	}
	return "high"
}

// SyncEdge tells the Decoder which edge of a fresh datagram is the first
// record marker. It has to be known up front because it depends on the
// value of the first bit.
type SyncEdge uint8

const (
	// SyncFirstEdge suits datagrams whose first half-bit sits at idle level:
	// the very first edge is already mid-bit.
	SyncFirstEdge SyncEdge = iota
	// SyncSecondEdge suits datagrams whose first half-bit is active: the first
	// edge starts the bit, the second one (half a bit later) is mid-bit.
	SyncSecondEdge
)

func (s SyncEdge) String() string {
	if s == SyncSecondEdge {
		return "second"
	}
	return "first"
}

// DatagramMarshaller defines an interface for marshalling data to a Datagram
type DatagramMarshaller interface {
	MarshalDatagram() Datagram
}
