package serial

// Serializable is implemented by every value that can write itself to an
// ObjectOutputStream and later restore itself from the same bytes.
//
// ReadSerialized must either consume a complete, valid object and update the
// receiver, or return an error and leave the receiver untouched.
type Serializable interface {
	Serialize(out *ObjectOutputStream)
	ReadSerialized(in *ObjectInputStream) error
}

// StreamVersion is the current stream format version
const StreamVersion byte = 1

var streamMagic = [3]byte{'X', 'O', 'J'}

// FieldType identifies the kind of a field on the stream
type FieldType byte

const (
	FieldInt    FieldType = 'i'
	FieldUInt   FieldType = 'u'
	FieldSizeT  FieldType = 'l'
	FieldDouble FieldType = 'd'
	FieldString FieldType = 's'
	FieldData   FieldType = 'b'
	FieldImage  FieldType = 'm'
)

const (
	tagField       byte = '_'
	tagBeginObject byte = '{'
	tagEndObject   byte = '}'
)

func (t FieldType) String() string {
	switch t {
	case FieldInt:
		return "int"
	case FieldUInt:
		return "uint"
	case FieldSizeT:
		return "size"
	case FieldDouble:
		return "double"
	case FieldString:
		return "string"
	case FieldData:
		return "data"
	case FieldImage:
		return "image"
	default:
		return "unknown"
	}
}
