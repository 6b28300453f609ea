//go:build bench
// +build bench

package record

import (
	"bytes"
	"testing"
)

func BenchmarkCodec_EncodeData(b *testing.B) {
	c := NewCodec()

	benchmarks := []struct {
		name    string
		payload []byte
	}{
		{name: "16 bytes", payload: bytes.Repeat([]byte{0xA5}, 16)},
		{name: "64 bytes", payload: bytes.Repeat([]byte{0xA5}, 64)},
		{name: "255 bytes", payload: bytes.Repeat([]byte{0xA5}, 255)},
	}

	for _, bm := range benchmarks {
		b.Run(bm.name, func(b *testing.B) {
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := c.EncodeData(0x0030, bm.payload); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkCodec_Decode(b *testing.B) {
	c := NewCodec()

	benchmarks := []struct {
		name    string
		payload []byte
	}{
		{name: "16 bytes", payload: bytes.Repeat([]byte{0xA5}, 16)},
		{name: "64 bytes", payload: bytes.Repeat([]byte{0xA5}, 64)},
		{name: "255 bytes", payload: bytes.Repeat([]byte{0xA5}, 255)},
	}

	for _, bm := range benchmarks {
		b.Run(bm.name, func(b *testing.B) {
			line, err := c.EncodeData(0x0030, bm.payload)
			if err != nil {
				b.Fatal(err)
			}
			source := []byte(line)

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, _, err := c.Decode(source, 0); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
