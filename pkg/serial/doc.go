// Package serial implements the ordered, type-tagged binary stream that
// elements use to persist and restore their state.
//
// A stream starts with a short header, followed by nested objects. Each
// object is opened with a name and closed explicitly; between the two
// markers the writer emits typed fields, each preceded by a tag that the
// reader checks before decoding:
//
//	out := serial.NewObjectOutputStream()
//	out.WriteObject("Element")
//	out.WriteDouble(x)
//	out.WriteDouble(y)
//	out.WriteUInt(color)
//	out.EndObject()
//
//	in, err := serial.NewObjectInputStream(out.Bytes())
//	if err != nil {
//	    // bad header
//	}
//	if err := in.ReadObject("Element"); err != nil {
//	    // wrong or truncated object
//	}
//
// The field order and tags form the compatibility contract between the
// element model and whatever persistence layer stores the bytes.
package serial
