//go:build tinygo

package manchester

import (
	. "machine"
	"time"
)

// RxDevice samples a demodulating IR receiver at a fixed period and feeds
// each sample to an RxStateMachine.
type RxDevice struct {
	pin          Pin
	inverted     bool
	stop         chan struct{}
	stateMachine RxStateMachine
}

func NewRxDevice(pin Pin, rsm RxStateMachine) *RxDevice {
	// the most common receivers have a pull up pin builtin
	// but in the future, may want to add the option to use PinPullupInput
	pin.Configure(PinConfig{Mode: PinInput})
	return &RxDevice{
		pin:          pin,
		stateMachine: rsm,
	}
}

// Poll takes one sample. Call it from your own timer interrupt if you don't
// want Start's goroutine.
func (rx *RxDevice) Poll() {
	rx.stateMachine.HandleSample(rx.pin.Get() != rx.inverted)
}

// Start samples the pin every period, which has to be a third of the
// half-bit period (e.g. rc5.SamplePeriod).
func (rx *RxDevice) Start(period time.Duration) {
	rx.start(period, false)
}

// StartInverted is Start for receivers whose output is inverted.
func (rx *RxDevice) StartInverted(period time.Duration) {
	rx.start(period, true)
}

func (rx *RxDevice) start(period time.Duration, inverted bool) {
	rx.Stop()
	rx.inverted = inverted
	rx.stop = make(chan struct{})
	go rx.run(period, rx.stop)
}

func (rx *RxDevice) run(period time.Duration, stop chan struct{}) {
	ticker := time.NewTicker(period)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			rx.Poll()
		}
	}
}

// Stop ends sampling.
func (rx *RxDevice) Stop() {
	if rx.stop != nil {
		close(rx.stop)
		rx.stop = nil
	}
}
