package element

// Type identifies the concrete kind of an element
type Type int

const (
	TypeStroke Type = iota + 1
	TypeImage
	TypeTexImage
	TypeText
)

func (t Type) String() string {
	switch t {
	case TypeStroke:
		return "Stroke"
	case TypeImage:
		return "Image"
	case TypeTexImage:
		return "TexImage"
	case TypeText:
		return "Text"
	default:
		return "Unknown"
	}
}
