package content

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

// File assembles a PDF file from numbered objects. Object bodies are raw
// PDF syntax; File only adds the object framing, the cross-reference table
// and the trailer.
type File struct {
	objects [][]byte // objects[i] holds object i+1, nil when reserved
	root    int
	info    int
}

// NewFile returns an empty file
func NewFile() *File {
	return &File{}
}

// Ref formats an indirect reference to object num
func Ref(num int) string {
	return strconv.Itoa(num) + " 0 R"
}

// Reserve allocates an object number whose body is set later with Set
func (f *File) Reserve() int {
	f.objects = append(f.objects, nil)
	return len(f.objects)
}

// Set assigns the body of a reserved object
func (f *File) Set(num int, body string) {
	f.objects[num-1] = []byte(body)
}

// Add appends an object and returns its number
func (f *File) Add(body string) int {
	num := f.Reserve()
	f.Set(num, body)
	return num
}

// AddStream appends a stream object. dict holds the dictionary entries
// without the enclosing brackets and without /Length.
func (f *File) AddStream(dict string, data []byte) int {
	num := f.Reserve()
	body := make([]byte, 0, len(dict)+len(data)+64)
	body = fmt.Appendf(body, "<< %s /Length %d >>\nstream\n", dict, len(data))
	body = append(body, data...)
	body = append(body, "\nendstream"...)
	f.objects[num-1] = body
	return num
}

// SetRoot selects the document catalog
func (f *File) SetRoot(num int) {
	f.root = num
}

// SetInfo selects the document information dictionary
func (f *File) SetInfo(num int) {
	f.info = num
}

// WriteTo writes the complete file
func (f *File) WriteTo(w io.Writer) (int64, error) {
	if f.root == 0 {
		return 0, fmt.Errorf("pdf file has no catalog")
	}
	cw := &countingWriter{w: bufio.NewWriter(w)}
	offsets := make([]int64, len(f.objects))

	cw.WriteString("%PDF-1.7\n%\xe2\xe3\xcf\xd3\n")
	for i, body := range f.objects {
		if body == nil {
			return cw.n, fmt.Errorf("pdf object %d reserved but never set", i+1)
		}
		offsets[i] = cw.n
		fmt.Fprintf(cw, "%d 0 obj\n", i+1)
		cw.Write(body)
		cw.WriteString("\nendobj\n")
	}

	xref := cw.n
	fmt.Fprintf(cw, "xref\n0 %d\n", len(f.objects)+1)
	cw.WriteString("0000000000 65535 f\r\n")
	for _, off := range offsets {
		fmt.Fprintf(cw, "%010d 00000 n\r\n", off)
	}
	fmt.Fprintf(cw, "trailer\n<< /Size %d /Root %s", len(f.objects)+1, Ref(f.root))
	if f.info != 0 {
		fmt.Fprintf(cw, " /Info %s", Ref(f.info))
	}
	fmt.Fprintf(cw, " >>\nstartxref\n%d\n%%%%EOF\n", xref)

	if cw.err != nil {
		return cw.n, cw.err
	}
	return cw.n, cw.w.Flush()
}

// countingWriter tracks byte offsets for the xref table and keeps the
// first write error
type countingWriter struct {
	w   *bufio.Writer
	n   int64
	err error
}

func (c *countingWriter) Write(p []byte) (int, error) {
	if c.err != nil {
		return 0, c.err
	}
	n, err := c.w.Write(p)
	c.n += int64(n)
	c.err = err
	return n, err
}

func (c *countingWriter) WriteString(s string) {
	c.Write([]byte(s))
}
