package serial

import (
	"encoding/binary"
	"fmt"
	"math"
)

// ObjectInputStream reads back data produced by ObjectOutputStream.
//
// Every read checks the field tag first; on failure the read position is not
// advanced past the offending tag.
type ObjectInputStream struct {
	data []byte
	pos  int
}

// NewObjectInputStream validates the header and returns a stream positioned
// at the first object.
func NewObjectInputStream(data []byte) (*ObjectInputStream, error) {
	if len(data) < len(streamMagic)+1 {
		return nil, fmt.Errorf("%w: %d bytes", ErrBadHeader, len(data))
	}
	for i, b := range streamMagic {
		if data[i] != b {
			return nil, ErrBadHeader
		}
	}
	if v := data[len(streamMagic)]; v != StreamVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrBadHeader, v)
	}
	return &ObjectInputStream{data: data, pos: len(streamMagic) + 1}, nil
}

// Offset returns the current read position
func (in *ObjectInputStream) Offset() int {
	return in.pos
}

// Remaining returns the number of unread bytes
func (in *ObjectInputStream) Remaining() int {
	return len(in.data) - in.pos
}

// EOF reports whether all bytes were consumed
func (in *ObjectInputStream) EOF() bool {
	return in.pos >= len(in.data)
}

// ReadObject consumes the opening marker of an object named name
func (in *ObjectInputStream) ReadObject(name string) error {
	start := in.pos
	got, err := in.ReadObjectName()
	if err != nil {
		return err
	}
	if got != name {
		in.pos = start
		return &FieldError{Op: "ReadObject", Expected: name, Got: got, Offset: start}
	}
	return nil
}

// ReadObjectName consumes the opening marker of the next object and returns
// its name
func (in *ObjectInputStream) ReadObjectName() (string, error) {
	start := in.pos
	if in.pos >= len(in.data) {
		return "", &FieldError{Op: "ReadObject", Expected: "object", Offset: start, Err: ErrTruncated}
	}
	if in.data[in.pos] != tagBeginObject {
		return "", &FieldError{Op: "ReadObject", Expected: "object", Got: in.describe(in.pos), Offset: start}
	}
	in.pos++
	name, err := in.readRawString("ReadObject")
	if err != nil {
		in.pos = start
		return "", err
	}
	return name, nil
}

// PeekObjectName returns the name of the next object without consuming it
func (in *ObjectInputStream) PeekObjectName() (string, error) {
	start := in.pos
	name, err := in.ReadObjectName()
	in.pos = start
	return name, err
}

// EndObject consumes the closing marker of the current object
func (in *ObjectInputStream) EndObject() error {
	if in.pos >= len(in.data) {
		return &FieldError{Op: "EndObject", Expected: "end of object", Offset: in.pos, Err: ErrTruncated}
	}
	if in.data[in.pos] != tagEndObject {
		return &FieldError{Op: "EndObject", Expected: "end of object", Got: in.describe(in.pos), Offset: in.pos}
	}
	in.pos++
	return nil
}

// ReadInt reads a signed 32-bit integer
func (in *ObjectInputStream) ReadInt() (int32, error) {
	b, err := in.readField("ReadInt", FieldInt, 4)
	if err != nil {
		return 0, err
	}
	return int32(binary.LittleEndian.Uint32(b)), nil
}

// ReadUInt reads an unsigned 32-bit integer
func (in *ObjectInputStream) ReadUInt() (uint32, error) {
	b, err := in.readField("ReadUInt", FieldUInt, 4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// ReadSizeT reads an unsigned 64-bit size or count
func (in *ObjectInputStream) ReadSizeT() (uint64, error) {
	b, err := in.readField("ReadSizeT", FieldSizeT, 8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// ReadDouble reads a 64-bit float
func (in *ObjectInputStream) ReadDouble() (float64, error) {
	b, err := in.readField("ReadDouble", FieldDouble, 8)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(b)), nil
}

// ReadString reads a length-prefixed string
func (in *ObjectInputStream) ReadString() (string, error) {
	start := in.pos
	if err := in.expectTag("ReadString", FieldString); err != nil {
		return "", err
	}
	s, err := in.readRawString("ReadString")
	if err != nil {
		in.pos = start
		return "", err
	}
	return s, nil
}

// ReadData reads a data field whose items must be width bytes wide. It
// returns a copy of the raw bytes and the item count.
func (in *ObjectInputStream) ReadData(width int) ([]byte, int, error) {
	start := in.pos
	if err := in.expectTag("ReadData", FieldData); err != nil {
		return nil, 0, err
	}
	hdr, err := in.take("ReadData", 8)
	if err != nil {
		in.pos = start
		return nil, 0, err
	}
	count := int(binary.LittleEndian.Uint32(hdr[:4]))
	gotWidth := int(binary.LittleEndian.Uint32(hdr[4:]))
	if gotWidth != width {
		in.pos = start
		return nil, 0, &FieldError{
			Op:       "ReadData",
			Expected: fmt.Sprintf("item width %d", width),
			Got:      fmt.Sprintf("item width %d", gotWidth),
			Offset:   start,
		}
	}
	if width > 0 && count > in.Remaining()/width {
		in.pos = start
		return nil, 0, &FieldError{Op: "ReadData", Expected: fmt.Sprintf("%d items", count), Offset: start, Err: ErrTruncated}
	}
	raw, err := in.take("ReadData", count*width)
	if err != nil {
		in.pos = start
		return nil, 0, err
	}
	out := make([]byte, len(raw))
	copy(out, raw)
	return out, count, nil
}

// ReadDoubleArray reads a data field written by WriteDoubleArray with the
// same stride
func (in *ObjectInputStream) ReadDoubleArray(stride int) ([]float64, error) {
	raw, count, err := in.ReadData(stride * 8)
	if err != nil {
		return nil, err
	}
	vals := make([]float64, count*stride)
	for i := range vals {
		vals[i] = math.Float64frombits(binary.LittleEndian.Uint64(raw[i*8:]))
	}
	return vals, nil
}

// ReadImage reads an encoded image buffer
func (in *ObjectInputStream) ReadImage() ([]byte, error) {
	start := in.pos
	if err := in.expectTag("ReadImage", FieldImage); err != nil {
		return nil, err
	}
	hdr, err := in.take("ReadImage", 4)
	if err != nil {
		in.pos = start
		return nil, err
	}
	raw, err := in.take("ReadImage", int(binary.LittleEndian.Uint32(hdr)))
	if err != nil {
		in.pos = start
		return nil, err
	}
	out := make([]byte, len(raw))
	copy(out, raw)
	return out, nil
}

func (in *ObjectInputStream) readField(op string, t FieldType, size int) ([]byte, error) {
	start := in.pos
	if err := in.expectTag(op, t); err != nil {
		return nil, err
	}
	b, err := in.take(op, size)
	if err != nil {
		in.pos = start
		return nil, err
	}
	return b, nil
}

func (in *ObjectInputStream) expectTag(op string, t FieldType) error {
	if in.Remaining() < 2 {
		return &FieldError{Op: op, Expected: t.String(), Offset: in.pos, Err: ErrTruncated}
	}
	if in.data[in.pos] != tagField || FieldType(in.data[in.pos+1]) != t {
		return &FieldError{Op: op, Expected: t.String(), Got: in.describe(in.pos), Offset: in.pos}
	}
	in.pos += 2
	return nil
}

func (in *ObjectInputStream) readRawString(op string) (string, error) {
	hdr, err := in.take(op, 4)
	if err != nil {
		return "", err
	}
	raw, err := in.take(op, int(binary.LittleEndian.Uint32(hdr)))
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// take returns the next n bytes without copying
func (in *ObjectInputStream) take(op string, n int) ([]byte, error) {
	if n < 0 || n > in.Remaining() {
		return nil, &FieldError{Op: op, Expected: fmt.Sprintf("%d bytes", n), Offset: in.pos, Err: ErrTruncated}
	}
	b := in.data[in.pos : in.pos+n]
	in.pos += n
	return b, nil
}

// describe names whatever sits at offset i, for error messages
func (in *ObjectInputStream) describe(i int) string {
	switch {
	case i >= len(in.data):
		return "end of stream"
	case in.data[i] == tagBeginObject:
		return "object"
	case in.data[i] == tagEndObject:
		return "end of object"
	case in.data[i] == tagField && i+1 < len(in.data):
		return FieldType(in.data[i+1]).String()
	default:
		return fmt.Sprintf("byte 0x%02x", in.data[i])
	}
}
