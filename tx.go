//go:build tinygo

package manchester

import (
	. "machine"

	"github.com/sparques/pwm"
)

// TxDevice drives an IR LED through a PWM channel running at the carrier
// frequency. It implements Modulator.
type TxDevice struct {
	pin    Pin
	pgroup pwm.Group
	ch     uint8
	duty   uint32
	freq   uint64
}

// NewTxDevice configures pin for a 36kHz (RC5) carrier.
func NewTxDevice(pin Pin) *TxDevice {
	return NewTxDeviceFreq(pin, Freq36Khz)
}

func NewTxDeviceFreq(pin Pin, freq uint64) *TxDevice {
	pin.Configure(PinConfig{Mode: PinPWM})
	pgroup := pwm.Get(pin)
	pgroup.Configure(PWMConfig{Period: uint64(1e9) / freq})
	ch, _ := pgroup.Channel(pin)
	pgroup.Set(ch, 0)
	tx := &TxDevice{
		pin:    pin,
		pgroup: pgroup,
		ch:     ch,
		freq:   freq,
	}
	tx.SetPower(MaxPower)
	return tx
}

// SetPower implements Modulator. Values above MaxPower are capped.
func (tx *TxDevice) SetPower(percent uint8) {
	tx.duty = tx.pgroup.Top() / 100 * uint32(min(percent, MaxPower))
}

// Enable implements Modulator
func (tx *TxDevice) Enable() {
	tx.pgroup.Set(tx.ch, tx.duty)
}

// Disable implements Modulator
func (tx *TxDevice) Disable() {
	tx.pgroup.Set(tx.ch, 0)
}
