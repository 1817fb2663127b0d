// Package loopback simulates an IR link on the host: an Emitter on one end,
// a demodulating receiver sampled SamplesPerHalfBit times per half-bit on the
// other. Handy for tests and for trying decoder settings without hardware.
package loopback

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/sparques/manchester"
)

// Line is a simulated IR path. It implements manchester.Modulator on the
// sending side; Pin is what an idle-high, active-low receiver would output.
type Line struct {
	on    bool
	power uint8
}

func (l *Line) Enable() { l.on = true }
func (l *Line) Disable() { l.on = false }
func (l *Line) SetPower(percent uint8) { l.power = percent }

// On reports whether the carrier is being sent.
func (l *Line) On() bool { return l.on }

// Power is the last duty cycle set, in percent.
func (l *Line) Power() uint8 { return l.power }

// Pin is the receiver output: low while the carrier is seen.
func (l *Line) Pin() bool { return !l.on }

// Link joins an Emitter and an RxStateMachine through a Line.
type Link struct {
	emitter  *manchester.Emitter
	line     *Line
	receiver manchester.RxStateMachine
	logger   zerolog.Logger

	// TrailingTicks is how many quiet half-bits are sent after the last
	// frame so the receiver sees the end of it.
	TrailingTicks int
}

// NewLink creates a Link whose Emitter pauses pauseTicks half-bits between frames.
func NewLink(pauseTicks uint8, receiver manchester.RxStateMachine, logger zerolog.Logger) *Link {
	line := &Line{}
	return &Link{
		emitter:       manchester.NewEmitter(line, pauseTicks, manchester.Forward),
		line:          line,
		receiver:      receiver,
		logger:        logger,
		TrailingTicks: 2 * manchester.NoEdgeExitLimit,
	}
}

// Line returns the simulated IR path.
func (l *Link) Line() *Line {
	return l.line
}

// Transmit sends frames one after the other and returns once the receiver
// has consumed every sample. The Emitter runs on one goroutine, the receiver
// on another; they only share the sample channel.
func (l *Link) Transmit(ctx context.Context, power uint8, frames ...manchester.DatagramMarshaller) error {
	samples := make(chan bool, 8*manchester.SamplesPerHalfBit)
	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		defer close(samples)
		for i, fm := range frames {
			waited := 0
			for !l.emitter.SendFrame(fm, power) {
				if err := l.tick(ctx, samples); err != nil {
					return err
				}
				waited++
			}
			l.logger.Debug().Int("frame", i).Int("waited_ticks", waited).Msg("sending")
			for l.emitter.Sending() {
				if err := l.tick(ctx, samples); err != nil {
					return err
				}
			}
		}
		for i := 0; i < l.TrailingTicks; i++ {
			if err := l.tick(ctx, samples); err != nil {
				return err
			}
		}
		return nil
	})

	eg.Go(func() error {
		n := 0
		for s := range samples {
			l.receiver.HandleSample(s)
			n++
		}
		l.logger.Debug().Int("samples", n).Msg("receiver drained")
		return nil
	})

	return eg.Wait()
}

// tick advances the emitter one half-bit and pushes what the receiver sees.
func (l *Link) tick(ctx context.Context, samples chan<- bool) error {
	l.emitter.Tick()
	level := l.line.Pin()
	for i := 0; i < manchester.SamplesPerHalfBit; i++ {
		select {
		case samples <- level:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// ParseStream turns a textual sample stream into levels: '-' is high, '.' is
// low, anything else is ignored, e.g. "--------...---...---------".
func ParseStream(s string) []bool {
	out := make([]bool, 0, len(s))
	for _, c := range s {
		switch c {
		case '-':
			out = append(out, true)
		case '.':
			out = append(out, false)
		}
	}
	return out
}

// FormatStream is the inverse of ParseStream.
func FormatStream(levels []bool) string {
	var sb strings.Builder
	sb.Grow(len(levels))
	for _, l := range levels {
		if l {
			sb.WriteByte('-')
		} else {
			sb.WriteByte('.')
		}
	}
	return sb.String()
}

// Decode runs a whole sample stream through a fresh decoder and returns
// every datagram it completed.
func Decode(cfg manchester.Config, levels []bool) []manchester.Datagram {
	var out []manchester.Datagram
	d := manchester.NewDecoder(cfg)
	for _, level := range levels {
		if dg, ok := d.Sample(level); ok {
			out = append(out, dg)
		}
	}
	return out
}
