package element

import (
	"github.com/pyhub-apps/inkdoc-golang/pkg/serial"
)

// New returns an empty element of the given type, ready for ReadSerialized
func New(t Type) (Element, bool) {
	switch t {
	case TypeStroke:
		return NewStroke(0), true
	case TypeImage:
		return NewImage(nil, unitSquare), true
	case TypeTexImage:
		return NewTexImage("", nil, unitSquare), true
	case TypeText:
		return NewText("", 0, 0), true
	default:
		return nil, false
	}
}

// typeByObjectName maps serialized object names to element types
var typeByObjectName = map[string]Type{
	"Stroke":   TypeStroke,
	"Image":    TypeImage,
	"TexImage": TypeTexImage,
	"Text":     TypeText,
}

// ReadElement decodes the next element, whatever its kind
func ReadElement(in *serial.ObjectInputStream) (Element, error) {
	start := in.Offset()
	name, err := in.PeekObjectName()
	if err != nil {
		return nil, err
	}
	t, ok := typeByObjectName[name]
	if !ok {
		return nil, &serial.FieldError{Op: "ReadElement", Expected: "element", Got: name, Offset: start}
	}
	e, _ := New(t)
	if err := e.ReadSerialized(in); err != nil {
		return nil, err
	}
	return e, nil
}

// WriteElements writes an "Elements" object holding elems in order
func WriteElements(out *serial.ObjectOutputStream, elems []Element) {
	out.WriteObject("Elements")
	out.WriteSizeT(uint64(len(elems)))
	for _, e := range elems {
		e.Serialize(out)
	}
	out.EndObject()
}

// ReadElements decodes an "Elements" object
func ReadElements(in *serial.ObjectInputStream) ([]Element, error) {
	if err := in.ReadObject("Elements"); err != nil {
		return nil, err
	}
	n, err := in.ReadSizeT()
	if err != nil {
		return nil, err
	}
	// every element takes more than one byte
	if n > uint64(in.Remaining()) {
		return nil, serial.InvalidValuef("element count %d exceeds stream size", n)
	}
	elems := make([]Element, 0, n)
	for range n {
		e, err := ReadElement(in)
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)
	}
	if err := in.EndObject(); err != nil {
		return nil, err
	}
	return elems, nil
}

// Marshal serializes a single element into a complete stream
func Marshal(e Element) []byte {
	out := serial.NewObjectOutputStream()
	e.Serialize(out)
	return out.Bytes()
}

// Unmarshal decodes a stream produced by Marshal
func Unmarshal(data []byte) (Element, error) {
	in, err := serial.NewObjectInputStream(data)
	if err != nil {
		return nil, err
	}
	return ReadElement(in)
}
