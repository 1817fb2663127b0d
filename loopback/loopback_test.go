package loopback

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/sparques/manchester"
	"github.com/sparques/manchester/rc5"
)

func TestStreamHelpers(t *testing.T) {
	levels := ParseStream("--- ...|-.")
	want := []bool{true, true, true, false, false, false, true, false}
	if len(levels) != len(want) {
		t.Fatalf("got %d levels, want %d", len(levels), len(want))
	}
	for i := range want {
		if levels[i] != want[i] {
			t.Errorf("level %d: got %v, want %v", i, levels[i], want[i])
		}
	}
	if got := FormatStream(levels); got != "---...-." {
		t.Errorf("FormatStream: got %q", got)
	}
}

func TestDecode(t *testing.T) {
	stream := "--------......---------- --------...---...---------- .........."
	got := Decode(manchester.Config{}, ParseStream(stream))
	want := []string{"01", "00"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if !got[i].Equal(manchester.MustParse(want[i])) {
			t.Errorf("datagram %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestLinkRC5(t *testing.T) {
	sent := []rc5.Frame{
		{Address: 0, Command: 1},
		{Address: 0, Command: 1, Toggle: true},
		{Address: 17, Command: 99},
	}
	var got []rc5.Frame
	link := NewLink(8, rc5.NewStateMachine(func(f rc5.Frame) {
		got = append(got, f)
	}), zerolog.Nop())

	frames := make([]manchester.DatagramMarshaller, len(sent))
	for i := range sent {
		frames[i] = sent[i]
	}
	if err := link.Transmit(context.Background(), 10, frames...); err != nil {
		t.Fatal(err)
	}
	if len(got) != len(sent) {
		t.Fatalf("received %d frames, want %d", len(got), len(sent))
	}
	for i := range sent {
		if got[i] != sent[i] {
			t.Errorf("frame %d: got %v, want %v", i, got[i], sent[i])
		}
	}
	if link.Line().On() {
		t.Error("carrier left on")
	}
	if link.Line().Power() != 10 {
		t.Errorf("power: got %d, want 10", link.Line().Power())
	}
}

func TestLinkRawDatagram(t *testing.T) {
	for _, repr := range []string{"0", "1", "0110-1", "1111-0000-1010", "0000-0000-0000-0001"} {
		sent := manchester.MustParse(repr)
		// the line inverts: a leading one arrives with its mid-bit edge first
		cfg := manchester.Config{Sync: manchester.SyncSecondEdge}
		if sent.Bit(0) {
			cfg.Sync = manchester.SyncFirstEdge
		}
		var got []manchester.Datagram
		link := NewLink(4, manchester.NewStateMachine(cfg, func(d manchester.Datagram) {
			got = append(got, d.Invert())
		}), zerolog.Nop())
		if err := link.Transmit(context.Background(), 25, sent, sent); err != nil {
			t.Fatal(err)
		}
		if len(got) != 2 {
			t.Fatalf("%s: received %d datagrams, want 2", repr, len(got))
		}
		for _, d := range got {
			if !d.Equal(sent) {
				t.Errorf("%s: got %s", repr, d)
			}
		}
	}
}

func TestLinkCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	link := NewLink(8, manchester.NewStateMachine(manchester.Config{}, nil), zerolog.Nop())
	err := link.Transmit(ctx, 10, rc5.Frame{Command: 1}, rc5.Frame{Command: 2})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, want context.Canceled", err)
	}
}
