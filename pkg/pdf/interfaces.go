package pdf

// Document represents an opened PDF file
type Document interface {
	// GetMetadata returns the PDF metadata
	GetMetadata() Metadata

	// GetPages returns all pages in the document
	GetPages() []Page

	// GetPage returns a specific page by index (0-based)
	GetPage(index int) (Page, error)

	// PageCount returns the total number of pages
	PageCount() int

	// Close releases resources associated with the document
	Close() error
}

// Page represents a single page in a PDF document
type Page interface {
	// GetPageNumber returns the page number (1-based)
	GetPageNumber() int

	// GetWidth returns the page width in points
	GetWidth() float64

	// GetHeight returns the page height in points
	GetHeight() float64

	// GetRotation returns the page rotation in degrees
	GetRotation() int

	// GetBBox returns the page bounding box
	GetBBox() BoundingBox
}

// TextPage is implemented by pages whose backend can extract text
type TextPage interface {
	Page

	// ExtractText returns the text shown on the page
	ExtractText() string
}

// ContentPage is implemented by pages whose backend exposes the decoded
// content stream
type ContentPage interface {
	Page

	// Content returns the concatenated, decoded content streams
	Content() []byte
}
