package manchester

// MaxPower is the highest duty cycle, in percent, the Emitter will ask for.
// IR LEDs are driven hard; more than 25% risks the diode.
const MaxPower = 25

// Modulator is what the Emitter switches on and off every half-bit. The
// channel is bound by the implementation, see TxDevice.
type Modulator interface {
	Enable()
	Disable()
	// SetPower sets the carrier duty cycle in percent.
	SetPower(percent uint8)
}

// Emitter sends datagrams one half-bit per Tick and keeps the air quiet for
// a number of ticks between datagrams so other senders get a chance.
//
// Tick needs to be called every half-bit period (889µs for RC5), typically
// from a timer interrupt.
type Emitter struct {
	mod        Modulator
	dir        Direction
	encoder    Encoder
	sending    bool
	pauseTicks uint8
	paused     uint8
}

// NewEmitter creates an Emitter that waits pauseTicks half-bit periods after
// each datagram before it accepts the next. Datagrams are sent in dir.
// A fresh Emitter can send right away.
func NewEmitter(mod Modulator, pauseTicks uint8, dir Direction) *Emitter {
	return &Emitter{
		mod:        mod,
		dir:        dir,
		pauseTicks: pauseTicks,
		paused:     pauseTicks,
	}
}

// Sending reports whether a datagram is on its way.
func (e *Emitter) Sending() bool {
	return e.sending
}

// SendIfPossible starts sending d unless a datagram is already being sent or
// the pause after the last one has not passed yet. It never blocks and never
// retries; false means nothing happened.
// power is the carrier duty cycle in percent, capped at MaxPower. Lower power
// is handy for pairing.
func (e *Emitter) SendIfPossible(d Datagram, power uint8) bool {
	if e.sending || e.paused < e.pauseTicks {
		return false
	}
	e.mod.SetPower(min(power, MaxPower))
	e.encoder = NewEncoder(d, e.dir)
	e.sending = true
	return true
}

// SendFrame is SendIfPossible for anything that marshals to a Datagram.
func (e *Emitter) SendFrame(fm DatagramMarshaller, power uint8) bool {
	if e.sending || e.paused < e.pauseTicks {
		return false
	}
	return e.SendIfPossible(fm.MarshalDatagram(), power)
}

// Tick emits the next half-bit, or counts one more quiet period.
func (e *Emitter) Tick() {
	if !e.sending {
		if e.paused < 255 {
			e.paused++
		}
		return
	}
	level, ok := e.encoder.Next()
	switch {
	case !ok:
		e.mod.Disable()
		e.sending = false
		e.paused = 0
	case level:
		e.mod.Enable()
	default:
		e.mod.Disable()
	}
}
