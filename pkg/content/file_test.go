package content

import (
	"bytes"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileLayout(t *testing.T) {
	f := NewFile()
	pages := f.Reserve()
	catalog := f.Add("<< /Type /Catalog /Pages " + Ref(pages) + " >>")
	f.Set(pages, "<< /Type /Pages /Kids [] /Count 0 >>")
	stream := f.AddStream("/Filter /FlateDecode", []byte("xyz"))
	f.SetRoot(catalog)

	var buf bytes.Buffer
	n, err := f.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)
	assert.Equal(t, 3, stream)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "%PDF-1.7\n"))
	assert.Contains(t, out, "3 0 obj\n<< /Filter /FlateDecode /Length 3 >>\nstream\nxyz\nendstream\nendobj\n")
	assert.Contains(t, out, "/Root 2 0 R")
	assert.True(t, strings.HasSuffix(out, "%%EOF\n"))

	// every xref entry points at its object header
	xref := strings.Index(out, "xref\n")
	entries := strings.Split(out[xref:], "\r\n")[1:4]
	for i, e := range entries {
		off, err := strconv.Atoi(e[:10])
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(out[off:], strconv.Itoa(i+1)+" 0 obj"), "object %d", i+1)
	}

	startxref := out[strings.LastIndex(out, "startxref\n")+len("startxref\n"):]
	off, err := strconv.Atoi(strings.TrimSuffix(startxref, "\n%%EOF\n"))
	require.NoError(t, err)
	assert.Equal(t, xref, off)
}

func TestFileRejectsIncomplete(t *testing.T) {
	f := NewFile()
	_, err := f.WriteTo(&bytes.Buffer{})
	assert.Error(t, err)

	f.SetRoot(f.Reserve())
	_, err = f.WriteTo(&bytes.Buffer{})
	assert.Error(t, err)
}
