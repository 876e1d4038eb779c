package serial

import (
	"encoding/binary"
	"io"
	"math"
)

// ObjectOutputStream accumulates a serialized object graph in memory
type ObjectOutputStream struct {
	buf   []byte
	depth int
}

// NewObjectOutputStream creates a stream and writes the header
func NewObjectOutputStream() *ObjectOutputStream {
	out := &ObjectOutputStream{buf: make([]byte, 0, 256)}
	out.buf = append(out.buf, streamMagic[:]...)
	out.buf = append(out.buf, StreamVersion)
	return out
}

// Bytes returns the serialized data written so far
func (o *ObjectOutputStream) Bytes() []byte {
	return o.buf
}

// Len returns the number of bytes written so far
func (o *ObjectOutputStream) Len() int {
	return len(o.buf)
}

// Depth returns the number of objects that are open
func (o *ObjectOutputStream) Depth() int {
	return o.depth
}

// WriteTo writes the serialized data to w
func (o *ObjectOutputStream) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(o.buf)
	return int64(n), err
}

// WriteObject opens a named object
func (o *ObjectOutputStream) WriteObject(name string) {
	o.buf = append(o.buf, tagBeginObject)
	o.appendString(name)
	o.depth++
}

// EndObject closes the innermost open object
func (o *ObjectOutputStream) EndObject() {
	o.buf = append(o.buf, tagEndObject)
	o.depth--
}

// WriteInt writes a signed 32-bit integer
func (o *ObjectOutputStream) WriteInt(v int32) {
	o.writeTag(FieldInt)
	o.buf = binary.LittleEndian.AppendUint32(o.buf, uint32(v))
}

// WriteUInt writes an unsigned 32-bit integer
func (o *ObjectOutputStream) WriteUInt(v uint32) {
	o.writeTag(FieldUInt)
	o.buf = binary.LittleEndian.AppendUint32(o.buf, v)
}

// WriteSizeT writes an unsigned 64-bit size or count
func (o *ObjectOutputStream) WriteSizeT(v uint64) {
	o.writeTag(FieldSizeT)
	o.buf = binary.LittleEndian.AppendUint64(o.buf, v)
}

// WriteDouble writes a 64-bit float
func (o *ObjectOutputStream) WriteDouble(v float64) {
	o.writeTag(FieldDouble)
	o.buf = binary.LittleEndian.AppendUint64(o.buf, math.Float64bits(v))
}

// WriteString writes a length-prefixed string
func (o *ObjectOutputStream) WriteString(s string) {
	o.writeTag(FieldString)
	o.appendString(s)
}

// WriteData writes count items of width bytes each. len(data) must equal
// count*width.
func (o *ObjectOutputStream) WriteData(data []byte, count, width int) {
	o.writeTag(FieldData)
	o.buf = binary.LittleEndian.AppendUint32(o.buf, uint32(count))
	o.buf = binary.LittleEndian.AppendUint32(o.buf, uint32(width))
	o.buf = append(o.buf, data[:count*width]...)
}

// WriteDoubleArray writes vals as data items of stride doubles each.
// len(vals) must be a multiple of stride.
func (o *ObjectOutputStream) WriteDoubleArray(vals []float64, stride int) {
	raw := make([]byte, 0, len(vals)*8)
	for _, v := range vals {
		raw = binary.LittleEndian.AppendUint64(raw, math.Float64bits(v))
	}
	o.WriteData(raw, len(vals)/stride, stride*8)
}

// WriteImage writes an encoded image buffer
func (o *ObjectOutputStream) WriteImage(data []byte) {
	o.writeTag(FieldImage)
	o.buf = binary.LittleEndian.AppendUint32(o.buf, uint32(len(data)))
	o.buf = append(o.buf, data...)
}

func (o *ObjectOutputStream) writeTag(t FieldType) {
	o.buf = append(o.buf, tagField, byte(t))
}

func (o *ObjectOutputStream) appendString(s string) {
	o.buf = binary.LittleEndian.AppendUint32(o.buf, uint32(len(s)))
	o.buf = append(o.buf, s...)
}
