package manchester

// RxStateMachine consumes one sample per tick.
type RxStateMachine interface {
	HandleSample(level bool)
}

// StateMachine is an RxStateMachine that hands every completed Datagram to
// a callback.
type StateMachine struct {
	decoder *Decoder
	handler func(Datagram)
}

// NewStateMachine creates a StateMachine decoding with cfg. handler runs in
// whatever context HandleSample is called from, often an interrupt handler:
// keep it short and don't block.
func NewStateMachine(cfg Config, handler func(Datagram)) *StateMachine {
	return &StateMachine{
		decoder: NewDecoder(cfg),
		handler: handler,
	}
}

// SetHandler lets you change the callback for when a datagram is received.
func (sm *StateMachine) SetHandler(handler func(Datagram)) {
	sm.handler = handler
}

// Decoder exposes the underlying decoder, e.g. to Reset it.
func (sm *StateMachine) Decoder() *Decoder {
	return sm.decoder
}

// HandleSample implements RxStateMachine
func (sm *StateMachine) HandleSample(level bool) {
	d, ok := sm.decoder.Sample(level)
	if ok && sm.handler != nil {
		sm.handler(d)
	}
}

type multiRxStateMachine []RxStateMachine

func (mrsm multiRxStateMachine) HandleSample(level bool) {
	for i := range mrsm {
		mrsm[i].HandleSample(level)
	}
}

// MultiRxStateMachine accepts a list of RxStateMachines and returns an object
// that also implements RxStateMachine. When HandleSample is called against it,
// it calls HandleSample against all the RxStateMachines used to define it.
// In this way, you can listen for datagrams with different sync or idle
// settings on a single IR receiver.
// E.G.:
//
//	mult := manchester.MultiRxStateMachine(rc5.NewStateMachine(rc5Handler), manchester.NewStateMachine(cfg, rawHandler))
//	rxd := manchester.NewRxDevice(pin, mult)
func MultiRxStateMachine(rsm ...RxStateMachine) RxStateMachine {
	return multiRxStateMachine(rsm)
}
