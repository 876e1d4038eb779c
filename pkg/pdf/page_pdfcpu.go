package pdf

import (
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// PDFCPUPage implements the Page interface using pdfcpu
type PDFCPUPage struct {
	ctx        *model.Context
	pageNumber int
	pageDict   types.Dict
	width      float64
	height     float64
	rotation   int
	content    []byte
}

// NewPDFCPUPage creates a new page using pdfcpu context
func NewPDFCPUPage(ctx *model.Context, pageNumber int) (*PDFCPUPage, error) {
	if ctx == nil {
		return nil, fmt.Errorf("context is nil")
	}

	if pageNumber < 1 || pageNumber > ctx.PageCount {
		return nil, fmt.Errorf("page number %d out of range [1, %d]", pageNumber, ctx.PageCount)
	}

	// Get page dictionary and inherited attributes
	pageDict, _, attrs, err := ctx.PageDict(pageNumber, false)
	if err != nil {
		return nil, fmt.Errorf("failed to get page dict: %w", err)
	}

	width, height := mediaBoxSize(nil)
	if attrs != nil && attrs.MediaBox != nil {
		width = attrs.MediaBox.Width()
		height = attrs.MediaBox.Height()
	}

	page := &PDFCPUPage{
		ctx:        ctx,
		pageNumber: pageNumber,
		pageDict:   pageDict,
		width:      width,
		height:     height,
	}

	// Inherited attributes first, then the page dict
	if attrs != nil {
		page.rotation = attrs.Rotate
	} else if rot, ok := pageDict["Rotate"].(types.Integer); ok {
		page.rotation = int(rot)
	}

	if err := page.extractContent(); err != nil {
		return nil, fmt.Errorf("failed to extract content: %w", err)
	}

	return page, nil
}

// extractContent decodes the page's content streams
func (p *PDFCPUPage) extractContent() error {
	contents := p.pageDict["Contents"]
	if contents == nil {
		return nil
	}

	var refs []types.IndirectRef
	switch v := contents.(type) {
	case *types.IndirectRef:
		refs = append(refs, *v)
	case types.IndirectRef:
		refs = append(refs, v)
	case types.Array:
		for _, item := range v {
			switch ref := item.(type) {
			case *types.IndirectRef:
				refs = append(refs, *ref)
			case types.IndirectRef:
				refs = append(refs, ref)
			}
		}
	}

	var contentStreams [][]byte
	for _, ref := range refs {
		stream, _, err := p.ctx.DereferenceStreamDict(ref)
		if err != nil {
			return fmt.Errorf("failed to dereference content: %w", err)
		}
		if stream == nil {
			continue
		}
		decoded, err := decodeStream(stream)
		if err != nil {
			return fmt.Errorf("failed to decode stream: %w", err)
		}
		contentStreams = append(contentStreams, decoded)
	}

	p.content = combineContentStreams(contentStreams)
	return nil
}

// decodeStream decodes a stream dictionary
func decodeStream(stream *types.StreamDict) ([]byte, error) {
	if len(stream.Content) > 0 {
		return stream.Content, nil
	}

	if err := stream.Decode(); err != nil {
		return nil, err
	}

	return stream.Content, nil
}

// combineContentStreams combines multiple content streams
func combineContentStreams(streams [][]byte) []byte {
	var combined []byte
	for _, stream := range streams {
		combined = append(combined, stream...)
		combined = append(combined, '\n')
	}
	return combined
}

// GetPageNumber returns the page number (1-based)
func (p *PDFCPUPage) GetPageNumber() int {
	return p.pageNumber
}

// GetWidth returns the page width
func (p *PDFCPUPage) GetWidth() float64 {
	return p.width
}

// GetHeight returns the page height
func (p *PDFCPUPage) GetHeight() float64 {
	return p.height
}

// GetRotation returns the page rotation in degrees
func (p *PDFCPUPage) GetRotation() int {
	return p.rotation
}

// GetBBox returns the page bounding box
func (p *PDFCPUPage) GetBBox() BoundingBox {
	return BoundingBox{
		X0: 0,
		Y0: 0,
		X1: p.width,
		Y1: p.height,
	}
}

// Content returns the decoded content streams
func (p *PDFCPUPage) Content() []byte {
	return p.content
}
