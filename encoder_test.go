package manchester

import (
	"reflect"
	"testing"
)

func encodeAll(t *testing.T, e Encoder) []bool {
	t.Helper()
	var out []bool
	for {
		want := e.Remaining()
		level, ok := e.Next()
		if !ok {
			if want != 0 {
				t.Errorf("exhausted with %d remaining", want)
			}
			break
		}
		if e.Remaining() != want-1 {
			t.Errorf("remaining went from %d to %d", want, e.Remaining())
		}
		out = append(out, level)
	}
	if _, ok := e.Next(); ok {
		t.Error("encoder produced a value after exhaustion")
	}
	return out
}

func TestEncoder(t *testing.T) {
	tests := []struct {
		repr string
		dir  Direction
		want []bool
	}{
		{"", Forward, nil},
		{"0", Forward, []bool{true, false}},
		{"1", Forward, []bool{false, true}},
		{"00", Forward, []bool{true, false, true, false}},
		{"01", Forward, []bool{true, false, false, true}},
		{"01", Reverse, []bool{false, true, true, false}},
		{"110", Forward, []bool{false, true, false, true, true, false}},
	}
	for _, tt := range tests {
		t.Run(tt.repr+"/"+tt.dir.String(), func(t *testing.T) {
			got := encodeAll(t, NewEncoder(MustParse(tt.repr), tt.dir))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEncoderLength(t *testing.T) {
	d, _ := Parse("1010-1100-1110-0001-1", LittleEndian)
	e := NewEncoder(d, Forward)
	if e.Remaining() != 2*int(d.Len()) {
		t.Errorf("remaining: got %d, want %d", e.Remaining(), 2*d.Len())
	}
	if got := encodeAll(t, e); len(got) != 2*int(d.Len()) {
		t.Errorf("levels: got %d, want %d", len(got), 2*d.Len())
	}
}
