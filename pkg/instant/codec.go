package instant

import (
	"encoding/binary"
	"fmt"

	"github.com/go-json-experiment/json"

	"github.com/BYTE-6D65/timescale/pkg/leapsecond"
)

// Compact binary form, bit-exact:
//
//	header byte: tttt00fl
//	  tttt = typeTag (high nibble)
//	  f    = has-nonzero-fraction (bit 1)
//	  l    = positive-leap marker  (bit 0)
//	8 bytes: big-endian signed POSIX seconds
//	4 bytes: big-endian nanosecond, present only when f is set
const (
	typeTag = 0x01

	flagLeap     = 0x01
	flagFraction = 0x02
)

// Encode serializes an instant into the compact binary form.
func Encode(m Instant) []byte {
	header := byte(typeTag << 4)
	size := 9
	if m.leap {
		header |= flagLeap
	}
	if m.nano != 0 {
		header |= flagFraction
		size = 13
	}
	buf := make([]byte, size)
	buf[0] = header
	binary.BigEndian.PutUint64(buf[1:9], uint64(m.sec))
	if m.nano != 0 {
		binary.BigEndian.PutUint32(buf[9:13], uint32(m.nano))
	}
	return buf
}

// Decode reconstructs an instant from the compact binary form. A leap
// marker is accepted only when the table registers a positive leap
// second at the decoded POSIX second; this guards against moving a
// serialized instant between processes with differing leap-second
// tables.
func Decode(data []byte, table *leapsecond.Table) (Instant, error) {
	if len(data) < 9 {
		return Zero, fmt.Errorf("instant: truncated binary form (%d bytes)", len(data))
	}
	header := data[0]
	if header>>4 != typeTag {
		return Zero, fmt.Errorf("instant: unexpected type tag %#x", header>>4)
	}
	sec := int64(binary.BigEndian.Uint64(data[1:9]))

	nano := 0
	want := 9
	if header&flagFraction != 0 {
		want = 13
		if len(data) < want {
			return Zero, fmt.Errorf("instant: truncated binary form (%d bytes)", len(data))
		}
		nano = int(binary.BigEndian.Uint32(data[9:13]))
	}
	if len(data) != want {
		return Zero, fmt.Errorf("instant: binary form has %d trailing bytes", len(data)-want)
	}

	m, err := FromPosix(sec, nano)
	if err != nil {
		return Zero, err
	}
	if header&flagLeap != 0 {
		if !table.HasPositiveEventAt(sec) {
			return Zero, fmt.Errorf("%w: posix second %d", ErrLeapConfig, sec)
		}
		m.leap = true
	}
	return m, nil
}

type jsonInstant struct {
	Posix int64 `json:"posix"`
	Nano  int32 `json:"nano"`
	Leap  bool  `json:"leap,omitzero"`
}

// EncodeJSON serializes an instant as {"posix": s, "nano": n, "leap": b}.
func EncodeJSON(m Instant) ([]byte, error) {
	return json.Marshal(jsonInstant{Posix: m.sec, Nano: m.nano, Leap: m.leap})
}

// DecodeJSON is the inverse of EncodeJSON, with the same leap-marker
// validation as Decode.
func DecodeJSON(data []byte, table *leapsecond.Table) (Instant, error) {
	var raw jsonInstant
	if err := json.Unmarshal(data, &raw); err != nil {
		return Zero, fmt.Errorf("instant: %w", err)
	}
	m, err := FromPosix(raw.Posix, int(raw.Nano))
	if err != nil {
		return Zero, err
	}
	if raw.Leap {
		if !table.HasPositiveEventAt(raw.Posix) {
			return Zero, fmt.Errorf("%w: posix second %d", ErrLeapConfig, raw.Posix)
		}
		m.leap = true
	}
	return m, nil
}
