package sfnt

import (
	"encoding/binary"
	"fmt"
)

// reader is a bounds-checked, big-endian cursor over a borrowed byte
// slice. It never allocates and never reads past the end of data; every
// operation that would returns ErrTruncatedInput instead.
type reader struct {
	data []byte
	pos  int
}

func newReader(data []byte) *reader {
	return &reader{data: data}
}

// position returns the current cursor offset.
func (r *reader) position() int {
	return r.pos
}

// seek moves the cursor to an absolute offset.
func (r *reader) seek(offset int) error {
	if offset < 0 || offset > len(r.data) {
		return fmt.Errorf("seek to %d: %w", offset, ErrTruncatedInput)
	}
	r.pos = offset
	return nil
}

// skip advances the cursor by n bytes.
func (r *reader) skip(n int) error {
	return r.seek(r.pos + n)
}

func (r *reader) require(n int) error {
	if r.pos+n > len(r.data) {
		return fmt.Errorf("need %d bytes at %d, have %d: %w", n, r.pos, len(r.data)-r.pos, ErrTruncatedInput)
	}
	return nil
}

func (r *reader) readU8() (uint8, error) {
	if err := r.require(1); err != nil {
		return 0, err
	}
	v := r.data[r.pos]
	r.pos++
	return v, nil
}

func (r *reader) readU16() (uint16, error) {
	if err := r.require(2); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint16(r.data[r.pos:])
	r.pos += 2
	return v, nil
}

func (r *reader) readI16() (int16, error) {
	v, err := r.readU16()
	return int16(v), err
}

func (r *reader) readU32() (uint32, error) {
	if err := r.require(4); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint32(r.data[r.pos:])
	r.pos += 4
	return v, nil
}

func (r *reader) readI64() (int64, error) {
	if err := r.require(8); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint64(r.data[r.pos:])
	r.pos += 8
	return int64(v), nil
}

// readBytes returns the next n bytes without copying; the returned slice
// aliases the reader's underlying data.
func (r *reader) readBytes(n int) ([]byte, error) {
	if err := r.require(n); err != nil {
		return nil, err
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// u16At/u32At/i16At read a value at an absolute offset without moving the
// cursor, used by table walkers that jump around inside one slice.
func u16At(data []byte, offset int) (uint16, error) {
	if offset < 0 || offset+2 > len(data) {
		return 0, fmt.Errorf("u16 at %d: %w", offset, ErrTruncatedInput)
	}
	return binary.BigEndian.Uint16(data[offset:]), nil
}

func i16At(data []byte, offset int) (int16, error) {
	v, err := u16At(data, offset)
	return int16(v), err
}

func u32At(data []byte, offset int) (uint32, error) {
	if offset < 0 || offset+4 > len(data) {
		return 0, fmt.Errorf("u32 at %d: %w", offset, ErrTruncatedInput)
	}
	return binary.BigEndian.Uint32(data[offset:]), nil
}

func u8At(data []byte, offset int) (uint8, error) {
	if offset < 0 || offset >= len(data) {
		return 0, fmt.Errorf("u8 at %d: %w", offset, ErrTruncatedInput)
	}
	return data[offset], nil
}
