package loadimage

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"
)

func TestNativeHonoursPitches(t *testing.T) {
	// 2x2 RGBA8 with a 12-byte client row (4 bytes padding).
	in := []byte{
		1, 2, 3, 4, 5, 6, 7, 8, 0xEE, 0xEE, 0xEE, 0xEE,
		9, 10, 11, 12, 13, 14, 15, 16, 0xEE, 0xEE, 0xEE, 0xEE,
	}
	out := make([]byte, 16)
	Native(4)(2, 2, 1, in, 12, 24, out, 8, 16)

	want := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}
	if !bytes.Equal(out, want) {
		t.Errorf("Native() = %v, want %v", out, want)
	}
}

func TestRGB8ToRGBA8(t *testing.T) {
	in := []byte{10, 20, 30, 40, 50, 60}
	out := make([]byte, 8)
	RGB8ToRGBA8(0xFF)(2, 1, 1, in, 6, 6, out, 8, 8)
	want := []byte{10, 20, 30, 0xFF, 40, 50, 60, 0xFF}
	if !bytes.Equal(out, want) {
		t.Errorf("RGB8ToRGBA8() = %v, want %v", out, want)
	}
}

func TestLuminance(t *testing.T) {
	out := make([]byte, 4)
	L8ToRGBA8(1, 1, 1, []byte{77}, 1, 1, out, 4, 4)
	if want := []byte{77, 77, 77, 255}; !bytes.Equal(out, want) {
		t.Errorf("L8ToRGBA8() = %v, want %v", out, want)
	}

	LA8ToRGBA8(1, 1, 1, []byte{77, 9}, 2, 2, out, 4, 4)
	if want := []byte{77, 77, 77, 9}; !bytes.Equal(out, want) {
		t.Errorf("LA8ToRGBA8() = %v, want %v", out, want)
	}

	A8ToRGBA8(1, 1, 1, []byte{200}, 1, 1, out, 4, 4)
	if want := []byte{0, 0, 0, 200}; !bytes.Equal(out, want) {
		t.Errorf("A8ToRGBA8() = %v, want %v", out, want)
	}
}

func TestPackedShorts(t *testing.T) {
	in := make([]byte, 2)
	out := make([]byte, 4)

	binary.LittleEndian.PutUint16(in, 0xF0F0)
	RGBA4ToRGBA8(1, 1, 1, in, 2, 2, out, 4, 4)
	if want := []byte{255, 0, 255, 0}; !bytes.Equal(out, want) {
		t.Errorf("RGBA4ToRGBA8() = %v, want %v", out, want)
	}

	binary.LittleEndian.PutUint16(in, 0xF801)
	RGB5A1ToRGBA8(1, 1, 1, in, 2, 2, out, 4, 4)
	if want := []byte{255, 0, 0, 255}; !bytes.Equal(out, want) {
		t.Errorf("RGB5A1ToRGBA8() = %v, want %v", out, want)
	}

	binary.LittleEndian.PutUint16(in, 0x07E0)
	R5G6B5ToRGBA8(1, 1, 1, in, 2, 2, out, 4, 4)
	if want := []byte{0, 255, 0, 255}; !bytes.Equal(out, want) {
		t.Errorf("R5G6B5ToRGBA8() = %v, want %v", out, want)
	}
}

func TestFloat32ToFloat16(t *testing.T) {
	in := make([]byte, 8)
	binary.LittleEndian.PutUint32(in, math.Float32bits(1))
	binary.LittleEndian.PutUint32(in[4:], math.Float32bits(-2))
	out := make([]byte, 4)
	Float32ToFloat16(2)(1, 1, 1, in, 8, 8, out, 4, 4)

	if got := binary.LittleEndian.Uint16(out); got != 0x3C00 {
		t.Errorf("half(1) = %#x, want 0x3c00", got)
	}
	if got := binary.LittleEndian.Uint16(out[2:]); got != 0xC000 {
		t.Errorf("half(-2) = %#x, want 0xc000", got)
	}
}

func TestRGB32FToRGBA32F(t *testing.T) {
	in := make([]byte, 12)
	binary.LittleEndian.PutUint32(in[8:], math.Float32bits(0.5))
	out := make([]byte, 16)
	RGB32FToRGBA32F(1, 1, 1, in, 12, 12, out, 16, 16)
	if got := math.Float32frombits(binary.LittleEndian.Uint32(out[8:])); got != 0.5 {
		t.Errorf("blue = %v, want 0.5", got)
	}
	if got := math.Float32frombits(binary.LittleEndian.Uint32(out[12:])); got != 1 {
		t.Errorf("alpha = %v, want 1", got)
	}
}

func TestDepthRepack(t *testing.T) {
	in := make([]byte, 4)
	binary.LittleEndian.PutUint32(in, 0xABCDEF12)
	out := make([]byte, 4)

	R32ToR24G8(1, 1, 1, in, 4, 4, out, 4, 4)
	if got := binary.LittleEndian.Uint32(out); got != 0x12ABCDEF {
		t.Errorf("R32ToR24G8() = %#x, want 0x12abcdef", got)
	}

	R32ToR16(1, 1, 1, in, 4, 4, out, 2, 2)
	if got := binary.LittleEndian.Uint16(out); got != 0xABCD {
		t.Errorf("R32ToR16() = %#x, want 0xabcd", got)
	}
}

func TestMultipleSlices(t *testing.T) {
	in := []byte{1, 2, 3, 4}
	out := make([]byte, 4)
	Native(1)(2, 1, 2, in, 2, 2, out, 2, 2)
	if !bytes.Equal(out, in) {
		t.Errorf("Native() depth 2 = %v, want %v", out, in)
	}
}
