package segment

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/hexforge/ihex/pkg/record"
)

func TestContainer_AddDisjoint(t *testing.T) {
	c := NewContainer()
	c.Add(New(0x200, []byte{3, 4}))
	c.Add(New(0x100, []byte{1, 2}))

	segs := c.Segments()
	if len(segs) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segs))
	}
	if segs[0].Start() != 0x100 || segs[1].Start() != 0x200 {
		t.Errorf("segments not sorted: %X, %X", segs[0].Start(), segs[1].Start())
	}
}

func TestContainer_AddMerges(t *testing.T) {
	testCases := []struct {
		name      string
		first     *Segment
		second    *Segment
		wantStart uint64
		wantData  []byte
	}{
		{
			name:      "overlap, later bytes win",
			first:     New(0x100, []byte{1, 2, 3, 4}),
			second:    New(0x102, []byte{9, 9, 9}),
			wantStart: 0x100,
			wantData:  []byte{1, 2, 9, 9, 9},
		},
		{
			name:      "touching ranges coalesce",
			first:     New(0x100, []byte{1, 2}),
			second:    New(0x102, []byte{3, 4}),
			wantStart: 0x100,
			wantData:  []byte{1, 2, 3, 4},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := NewContainer()
			c.Add(tc.first)
			c.Add(tc.second)

			segs := c.Segments()
			if len(segs) != 1 {
				t.Fatalf("expected 1 segment, got %d", len(segs))
			}
			if segs[0].Start() != tc.wantStart {
				t.Errorf("start mismatch: got %X, want %X", segs[0].Start(), tc.wantStart)
			}
			if !bytes.Equal(segs[0].Bytes(), tc.wantData) {
				t.Errorf("data mismatch: got %v, want %v", segs[0].Bytes(), tc.wantData)
			}
		})
	}
}

func TestContainer_AddBridgesNeighbors(t *testing.T) {
	c := NewContainer()
	c.Add(New(0x100, []byte{1, 2}))
	c.Add(New(0x108, []byte{7, 8}))
	// Fills the gap and touches both, so all three must collapse.
	c.Add(New(0x102, []byte{3, 4, 5, 6}))

	segs := c.Segments()
	if len(segs) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segs))
	}
	if !bytes.Equal(segs[0].Bytes(), []byte{1, 2, 3, 4, 5, 6, 7, 8}) {
		t.Errorf("data mismatch: got %v", segs[0].Bytes())
	}
}

func TestContainer_MaxAddress(t *testing.T) {
	c := NewContainer()
	if c.MaxAddress() != 0 {
		t.Errorf("empty container max mismatch: got %X", c.MaxAddress())
	}

	c.Add(New(0x100, make([]byte, 4)))
	c.Add(New(0x500, make([]byte, 8)))
	if c.MaxAddress() != 0x508 {
		t.Errorf("max mismatch: got %X, want 508", c.MaxAddress())
	}
}

func TestContainer_Unique(t *testing.T) {
	c := NewContainer()
	c.segments = []*Segment{
		New(0x100, make([]byte, 4)),
		New(0x104, make([]byte, 4)), // touching is fine
	}
	if !c.Unique() {
		t.Error("touching segments reported as overlapping")
	}

	c.segments = append(c.segments, New(0x106, make([]byte, 4)))
	if c.Unique() {
		t.Error("overlapping segments not detected")
	}
}

func TestContainer_Binary(t *testing.T) {
	c := NewContainer()
	c.Add(New(0x102, []byte{1, 2}))
	c.Add(New(0x106, []byte{3, 4}))

	got := c.Binary(0x100, 10, 0xFF)
	want := []byte{0xFF, 0xFF, 1, 2, 0xFF, 0xFF, 3, 4, 0xFF, 0xFF}
	if !bytes.Equal(got, want) {
		t.Errorf("binary mismatch:\ngot  %X\nwant %X", got, want)
	}
}

func TestContainer_DumpChunking(t *testing.T) {
	c := NewContainer()
	data := make([]byte, 10)
	for i := range data {
		data[i] = byte(i)
	}
	c.Add(New(0x30, data))

	var out strings.Builder
	if err := c.Dump(&out, record.NewCodec(), record.I8HEX, 4); err != nil {
		t.Fatalf("Dump failed: %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected ceil(10/4)=3 records, got %d: %q", len(lines), lines)
	}
	want := []string{
		":0400300000010203C6",
		":0400340004050607B2",
		":020038000809B5",
	}
	for i, line := range lines {
		if line != want[i] {
			t.Errorf("line %d mismatch:\ngot  %q\nwant %q", i, line, want[i])
		}
	}
}

func TestContainer_DumpExtendedAddressRecords(t *testing.T) {
	c := NewContainer()
	c.Add(New(0xFFFE, []byte{1, 2, 3, 4})) // crosses the first 64 KiB boundary

	var out strings.Builder
	if err := c.Dump(&out, record.NewCodec(), record.I32HEX, 16); err != nil {
		t.Fatalf("Dump failed: %v", err)
	}

	want := ":02FFFE000102FE\n" +
		":020000040001F9\n" +
		":020000000304F7\n"
	if out.String() != want {
		t.Errorf("dump mismatch:\ngot\n%swant\n%s", out.String(), want)
	}
}

func TestContainer_DumpFormatRange(t *testing.T) {
	testCases := []struct {
		name   string
		start  uint64
		size   int
		format record.Format
		ok     bool
	}{
		{name: "i8hex at limit", start: 0xFFF0, size: 16, format: record.I8HEX, ok: true},
		{name: "i8hex beyond limit", start: 0xFFF0, size: 17, format: record.I8HEX, ok: false},
		{name: "i16hex beyond limit", start: 0xFFFF0, size: 2, format: record.I16HEX, ok: false},
		{name: "i32hex top of range", start: 0xFFFFFFF0, size: 16, format: record.I32HEX, ok: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := NewContainer()
			c.Add(New(tc.start, make([]byte, tc.size)))

			err := c.Dump(&strings.Builder{}, record.NewCodec(), tc.format, 16)
			if tc.ok && err != nil {
				t.Fatalf("Dump failed: %v", err)
			}
			if !tc.ok {
				var re *record.RangeError
				if !errors.As(err, &re) {
					t.Fatalf("expected RangeError, got %v", err)
				}
			}
		})
	}
}

func TestContainer_DumpLineLength(t *testing.T) {
	c := NewContainer()
	for _, n := range []int{0, 256, -1} {
		var ve *record.ValueError
		err := c.Dump(&strings.Builder{}, record.NewCodec(), record.I32HEX, n)
		if !errors.As(err, &ve) {
			t.Errorf("line length %d: expected ValueError, got %v", n, err)
		}
	}
}
