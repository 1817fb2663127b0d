package manchester

import (
	"errors"
	"fmt"
	"strings"

	"lukechampine.com/uint128"
)

// Capacity is the maximum number of bits a Datagram can hold.
const Capacity = 127

var (
	// ErrDatagramFull is returned when a bit is appended to a Datagram that already holds Capacity bits.
	ErrDatagramFull = errors.New("datagram is full")
)

// Datagram is a fixed capacity sequence of up to 127 bits.
//
// Bits are numbered in the order they were appended: bit 0 is the first bit
// received. The BitOrder only decides where bits land inside the packed word
// returned by Bits, it never changes what Bit(i) returns.
//
// The zero value is an empty BigEndian datagram. Datagrams are plain values;
// copy them freely.
type Datagram struct {
	length uint8
	bits   uint128.Uint128
	order  BitOrder
}

// NewDatagram returns an empty datagram packed in the given order.
func NewDatagram(order BitOrder) Datagram {
	return Datagram{order: order}
}

// Parse creates a datagram from a "binary" string. Every '0' and '1' is a bit;
// anything else (e.g. "0-111_10101") is ignored so it can be used for readability.
func Parse(repr string, order BitOrder) (Datagram, error) {
	d := NewDatagram(order)
	for i := 0; i < len(repr); i++ {
		var err error
		switch repr[i] {
		case '0':
			err = d.Append(false)
		case '1':
			err = d.Append(true)
		}
		if err != nil {
			return d, fmt.Errorf("parsing %q: %w", repr, err)
		}
	}
	return d, nil
}

// MustParse is like Parse with BigEndian order but panics on error.
func MustParse(repr string) Datagram {
	d, err := Parse(repr, BigEndian)
	if err != nil {
		panic(err)
	}
	return d
}

// Append adds bit at index d.Len().
func (d *Datagram) Append(bit bool) error {
	if d.length == Capacity {
		return ErrDatagramFull
	}
	switch d.order {
	case LittleEndian:
		if bit {
			d.bits = d.bits.Or(uint128.From64(1).Lsh(uint(d.length)))
		}
	default:
		d.bits = d.bits.Lsh(1)
		if bit {
			d.bits = d.bits.Or64(1)
		}
	}
	d.length++
	return nil
}

func (d Datagram) Len() uint8 {
	return d.length
}

func (d Datagram) IsEmpty() bool {
	return d.length == 0
}

func (d Datagram) Order() BitOrder {
	return d.order
}

// Bits returns the packed word. For BigEndian the first bit received is the
// most significant of the d.Len() used bits, for LittleEndian the least.
func (d Datagram) Bits() uint128.Uint128 {
	return d.bits
}

// position maps a logical index to its place in the packed word.
func (d Datagram) position(index uint8) uint {
	if d.order == LittleEndian {
		return uint(index)
	}
	return uint(d.length - 1 - index)
}

// Bit returns the bit at index. It panics if index is out of range.
func (d Datagram) Bit(index uint8) bool {
	if index >= d.length {
		panic(fmt.Sprintf("manchester: bit index %d out of range [0,%d)", index, d.length))
	}
	return d.bits.Rsh(d.position(index)).Lo&1 == 1
}

// Extract returns the bits [min, max) as a number. The bit order of the
// datagram is kept: for BigEndian, bit min ends up as the most significant
// bit of the result; for LittleEndian, as the least significant.
// It panics unless min < max <= d.Len().
func (d Datagram) Extract(min, max uint8) uint128.Uint128 {
	if max > d.length {
		panic(fmt.Sprintf("manchester: extract max %d beyond length %d", max, d.length))
	}
	if min >= max {
		panic(fmt.Sprintf("manchester: extract min %d not below max %d", min, max))
	}
	mask := uint128.Max.Rsh(uint(128 - (max - min)))
	shift := uint(min)
	if d.order != LittleEndian {
		shift = uint(d.length - max)
	}
	return d.bits.Rsh(shift).And(mask)
}

// Equal reports whether d and other hold the same bits in the same order.
func (d Datagram) Equal(other Datagram) bool {
	if d.length != other.length {
		return false
	}
	if d.order == other.order {
		return d.bits.Equals(other.bits)
	}
	for i := uint8(0); i < d.length; i++ {
		if d.Bit(i) != other.Bit(i) {
			return false
		}
	}
	return true
}

// MarshalDatagram implements DatagramMarshaller so a Datagram can be sent as is.
func (d Datagram) MarshalDatagram() Datagram {
	return d
}

// Invert returns d with every bit flipped.
func (d Datagram) Invert() Datagram {
	if d.length == 0 {
		return d
	}
	mask := uint128.Max.Rsh(uint(128 - d.length))
	d.bits = d.bits.Xor(mask)
	return d
}

// String dumps the bits in the order they were received, grouped by four, e.g. "0111-1010-1".
func (d Datagram) String() string {
	var sb strings.Builder
	for i := uint8(0); i < d.length; i++ {
		if i > 0 && i%4 == 0 {
			sb.WriteByte('-')
		}
		if d.Bit(i) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}
