package manchester

// Direction selects which end of a Datagram a BitView starts from.
type Direction uint8

const (
	// Forward walks the bits in the order they were received: bit 0 first.
	// For a BigEndian datagram that is MSB first, i.e. transmission order.
	Forward Direction = iota
	// Reverse walks the bits from the last received one back to bit 0.
	Reverse
)

func (dir Direction) String() string {
	if dir == Reverse {
		return "reverse"
	}
	return "forward"
}

// BitView iterates once over the bits of a Datagram. It holds its own copy
// of the datagram. Once exhausted it stays exhausted; build a new one to
// start over.
type BitView struct {
	datagram Datagram
	dir      Direction
	done     uint8
}

// View returns a BitView over d.
func (d Datagram) View(dir Direction) BitView {
	return BitView{datagram: d, dir: dir}
}

// Next returns the next bit. ok is false once all bits have been produced.
func (v *BitView) Next() (bit, ok bool) {
	if v.done >= v.datagram.Len() {
		return false, false
	}
	index := v.done
	if v.dir == Reverse {
		index = v.datagram.Len() - 1 - v.done
	}
	v.done++
	return v.datagram.Bit(index), true
}

// Remaining is the number of bits Next will still produce.
func (v *BitView) Remaining() int {
	return int(v.datagram.Len() - v.done)
}
