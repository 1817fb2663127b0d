/*
# rc5

rc5 implements a manchester.RxStateMachine that decodes Philips RC5 (and RC5X)
infrared remote control frames, and a Frame type that marshals into a
manchester.Datagram for sending.

## Protocol

A frame is 14 bits, MSB first, each bit 1.778ms long (two 889µs halves) on a
36kHz carrier. A frame is repeated every 114ms while a button is held.

	| S1 | S2 | T | A4 A3 A2 A1 A0 | C5 C4 C3 C2 C1 C0 |

	S1 - start bit, always 1
	S2 - field bit; 1 for plain RC5, the inverted 7th command bit for RC5X
	T  - toggle; flips on every new key press
	A  - 5 bit address (the device: TV is 0, VCR is 5, ...)
	C  - low 6 bits of the command

RC5 sends a one as space-then-mark. The common demodulating receivers idle
high and pull low while they see the carrier, so a one arrives as high-then-low
and the first edge of a frame already sits in the middle of S1. The
manchester.Decoder latches the level after each mid-bit edge, which for such
a receiver is the complement of the bit, so StateMachine flips the datagram
back before unmarshalling.

## Example

	const rxPin = machine.GPIO15
	sm := rc5.NewStateMachine(func(f rc5.Frame) {
		fmt.Printf("addr %d cmd %d toggle %v\r\n", f.Address, f.Command, f.Toggle)
	})
	rx := manchester.NewRxDevice(rxPin, sm)
	rx.Start(rc5.SamplePeriod)
*/
package rc5

import (
	"errors"
	"fmt"
	"time"

	"github.com/sparques/manchester"
)

const (
	// Carrier is the RC5 modulation frequency
	Carrier = manchester.Freq36Khz
	// HalfBit is the length of half a bit; Emitter.Tick has to run at this period.
	HalfBit = 889 * time.Microsecond
	// SamplePeriod is how often the receiver pin has to be sampled.
	SamplePeriod = HalfBit / manchester.SamplesPerHalfBit
	// RepeatPeriod is the time from the start of one frame to the start of the next.
	RepeatPeriod = 114 * time.Millisecond

	FrameLength = 14

	// PauseTicks is the quiet time between frames, in half-bits, that keeps
	// the repeat period: 128 half-bits minus the 28 of the frame itself.
	PauseTicks = 100
)

const (
	AddrMask    = 0b0011111
	CmdMask     = 0b0111111
	CmdExtMask  = 0b1111111
	fieldCmdBit = 0b1000000
)

var (
	// ErrFrameAlloc is returned when an attempt to unmarshal to a nil Frame is done--the frame must be allocated ahead of time
	ErrFrameAlloc = errors.New("tried to unmarshal to unallocated frame")
	// ErrFrameLength is returned for datagrams that are not 14 bits long.
	ErrFrameLength = errors.New("not an rc5 frame length")
	// ErrStartBit is returned when the first bit is not a one.
	ErrStartBit = errors.New("missing rc5 start bit")
	// ErrBitOrder is returned for datagrams not packed BigEndian.
	ErrBitOrder = errors.New("rc5 frames are big endian")
)

type Frame struct {
	Toggle bool
	// Address is 5 bits
	Address uint8
	// Command is 7 bits; values above 63 need RC5X capable receivers
	Command uint8
}

// MarshalDatagram implements manchester.DatagramMarshaller
func (f Frame) MarshalDatagram() manchester.Datagram {
	d := manchester.NewDatagram(manchester.BigEndian)
	// 14 bits always fit, ignoring errors is safe
	_ = d.Append(true)
	_ = d.Append(f.Command&fieldCmdBit == 0)
	_ = d.Append(f.Toggle)
	for bit := 4; bit >= 0; bit-- {
		_ = d.Append((f.Address>>bit)&1 == 1)
	}
	for bit := 5; bit >= 0; bit-- {
		_ = d.Append((f.Command>>bit)&1 == 1)
	}
	return d
}

func (f *Frame) UnmarshalDatagram(d manchester.Datagram) error {
	if f == nil {
		return ErrFrameAlloc
	}
	if d.Order() != manchester.BigEndian {
		return ErrBitOrder
	}
	if d.Len() != FrameLength {
		return fmt.Errorf("%w: %d bits", ErrFrameLength, d.Len())
	}
	if !d.Bit(0) {
		return ErrStartBit
	}
	f.Toggle = d.Bit(2)
	f.Address = uint8(d.Extract(3, 8).Lo)
	f.Command = uint8(d.Extract(8, 14).Lo)
	if !d.Bit(1) {
		f.Command |= fieldCmdBit
	}
	return nil
}

func (f Frame) String() string {
	return fmt.Sprintf("rc5 addr=%d cmd=%d toggle=%v", f.Address, f.Command, f.Toggle)
}

// StateMachine decodes RC5 frames from an idle-high (active low) receiver.
type StateMachine struct {
	CmdHandler func(Frame)

	decoder *manchester.Decoder
}

// NewStateMachine creates an implementation of manchester.RxStateMachine that decodes RC5 frames.
// When a frame is received, cmdHandler is called. This call usually comes from an interrupt
// handler so you cannot make any blocking calls and should try to keep this as quick
// as possible.
func NewStateMachine(cmdHandler func(Frame)) *StateMachine {
	return &StateMachine{
		CmdHandler: cmdHandler,
		decoder: manchester.NewDecoder(manchester.Config{
			Inactivity: manchester.InactiveHigh,
			Sync:       manchester.SyncFirstEdge,
			Order:      manchester.BigEndian,
		}),
	}
}

// HandleSample implements the manchester.RxStateMachine interface
func (sm *StateMachine) HandleSample(level bool) {
	d, ok := sm.decoder.Sample(level)
	if !ok {
		return
	}
	var f Frame
	if err := f.UnmarshalDatagram(d.Invert()); err != nil {
		// noise or another protocol
		return
	}
	if sm.CmdHandler != nil {
		sm.CmdHandler(f)
	}
}
