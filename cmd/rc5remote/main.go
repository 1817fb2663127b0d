//go:build tinygo

// rc5remote relays RC5 commands: whatever it hears for one device address it
// repeats, on its own LED, for another. Wire a 36-38kHz demodulating receiver
// to rxPin and an IR LED (with a transistor) to txPin.
package main

import (
	"machine"
	"time"

	"github.com/sparques/manchester"
	"github.com/sparques/manchester/rc5"
)

const (
	rxPin = machine.GPIO15
	txPin = machine.GPIO16

	listenAddress = 0 // TV
	relayAddress  = 5 // VCR
	power         = 20
)

func main() {
	frames := make(chan rc5.Frame, 4)

	sm := rc5.NewStateMachine(func(f rc5.Frame) {
		if f.Address != listenAddress {
			return
		}
		select {
		case frames <- f:
		default:
			// still busy with earlier ones
		}
	})
	rx := manchester.NewRxDevice(rxPin, sm)
	rx.Start(rc5.SamplePeriod)

	tx := manchester.NewTxDevice(txPin)
	emitter := manchester.NewEmitter(tx, rc5.PauseTicks, manchester.Forward)

	var (
		pending rc5.Frame
		queued  bool
	)
	ticker := time.NewTicker(rc5.HalfBit)
	for range ticker.C {
		emitter.Tick()
		if !queued {
			select {
			case pending = <-frames:
				pending.Address = relayAddress
				queued = true
			default:
			}
		}
		if queued && emitter.SendFrame(pending, power) {
			println("relayed", pending.String())
			queued = false
		}
	}
}
