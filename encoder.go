package manchester

// Encoder turns a Datagram into Manchester coded half-bit levels.
//
// Every bit becomes two levels: first its complement, then the bit itself.
// So "01" encodes to true, false, false, true.
type Encoder struct {
	view       BitView
	bit        bool
	pending    bool
	secondHalf bool
}

// NewEncoder returns an Encoder ready to encode d, walking its bits in dir.
func NewEncoder(d Datagram, dir Direction) Encoder {
	e := Encoder{view: d.View(dir)}
	e.bit, e.pending = e.view.Next()
	return e
}

// Next returns the level of the next half-bit. ok is false once all
// 2*d.Len() levels have been produced.
func (e *Encoder) Next() (level, ok bool) {
	if !e.pending {
		return false, false
	}
	if !e.secondHalf {
		e.secondHalf = true
		return !e.bit, true
	}
	e.secondHalf = false
	level = e.bit
	e.bit, e.pending = e.view.Next()
	return level, true
}

// Remaining is the number of half-bits Next will still produce.
func (e *Encoder) Remaining() int {
	if !e.pending {
		return 0
	}
	n := 2*e.view.Remaining() + 2
	if e.secondHalf {
		n--
	}
	return n
}
