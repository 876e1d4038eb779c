// Package export writes documents to PDF.
//
// CreateExport is the factory: it resolves a Backend to one of the
// implementations compiled into the binary and returns an Exporter bound
// to a document and an optional progress listener.
//
//	exp, err := export.CreateExport(doc, nil, export.BackendDefault)
//	if err != nil {
//		return err
//	}
//	exp.SetExportBackground(export.BackgroundUnruled)
//	if err := exp.CreatePDF("out.pdf"); err != nil {
//		return err
//	}
//
// The raster backend is left out of builds tagged noraster; requesting it
// then fails with ErrBackendUnavailable.
package export

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/pyhub-apps/inkdoc-golang/pkg/document"
	"github.com/pyhub-apps/inkdoc-golang/pkg/logging"
)

// Exporter writes one document to PDF. An Exporter is bound to the
// document and listener it was created with.
type Exporter interface {
	// Backend returns the concrete backend, never BackendDefault
	Backend() Backend

	// SetExportBackground selects how much background is drawn
	SetExportBackground(b ExportBackground)

	// SetProgressiveMode makes every visible layer produce its own output
	// page, showing the layers up to and including it
	SetProgressiveMode(on bool)

	// CreatePDF writes all pages to path. On error no file is left behind.
	CreatePDF(path string) error

	// CreatePDFRange writes the selected pages to path
	CreatePDFRange(path string, r PageRange) error

	// WritePDF writes the selected pages to w. Nothing is written when the
	// export fails.
	WritePDF(w io.Writer, r PageRange) error
}

// Canceler is implemented by exporters that can be stopped between pages
type Canceler interface {
	Cancel()
}

// renderer is the backend-specific part of an export
type renderer interface {
	render(s *session, w io.Writer) error
}

var (
	registryMu sync.RWMutex
	registry   = map[Backend]func() renderer{}
)

func register(b Backend, newRenderer func() renderer) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[b] = newRenderer
}

// Available reports whether b can be created in this build
func Available(b Backend) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := registry[b.resolve()]
	return ok
}

// CreateExport returns an exporter for doc using backend. A nil listener
// is allowed. An unknown or excluded backend fails with a *BackendError
// wrapping ErrBackendUnavailable; there is no fallback to another backend.
func CreateExport(doc *document.Document, listener ProgressListener, backend Backend, opts ...Option) (Exporter, error) {
	if doc == nil {
		return nil, ErrNilDocument
	}

	resolved := backend.resolve()
	registryMu.RLock()
	newRenderer, ok := registry[resolved]
	registryMu.RUnlock()
	if !ok {
		return nil, &BackendError{Backend: backend, Err: ErrBackendUnavailable}
	}

	if listener == nil {
		listener = nopListener{}
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	e := &exporter{
		doc:      doc,
		listener: listener,
		backend:  resolved,
		renderer: newRenderer(),
		opts:     o,
		id:       uuid.New(),
	}
	e.log().Debug("created PDF export", "requested", backend)
	return e, nil
}

type exporter struct {
	doc      *document.Document
	listener ProgressListener
	backend  Backend
	renderer renderer
	id       uuid.UUID

	mu       sync.Mutex
	opts     options
	canceled atomic.Bool
}

func (e *exporter) log() *slog.Logger {
	return logging.Logger().With("export", e.id.String(), "backend", e.backend)
}

func (e *exporter) Backend() Backend {
	return e.backend
}

func (e *exporter) SetExportBackground(b ExportBackground) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.opts.background = b
}

func (e *exporter) SetProgressiveMode(on bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.opts.progressive = on
}

// Cancel stops a running export before its next page
func (e *exporter) Cancel() {
	e.canceled.Store(true)
}

func (e *exporter) CreatePDF(path string) error {
	return e.CreatePDFRange(path, nil)
}

func (e *exporter) CreatePDFRange(path string, r PageRange) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	err = e.WritePDF(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return err
	}
	return nil
}

func (e *exporter) WritePDF(w io.Writer, r PageRange) error {
	if !e.doc.TryLockExport() {
		return ErrExportInProgress
	}
	defer e.doc.UnlockExport()

	e.mu.Lock()
	opts := e.opts
	e.mu.Unlock()
	e.canceled.Store(false)

	s, err := e.newSession(opts, r)
	if err != nil {
		return err
	}

	log := e.log()
	log.Info("exporting PDF", "pages", len(s.pages), "range", r, "background", opts.background, "progressive", opts.progressive)
	e.listener.SetMaximumState(len(s.pages))

	if err := e.renderer.render(s, w); err != nil {
		if errors.Is(err, ErrCanceled) {
			log.Info("export canceled", "done", s.done)
		} else {
			log.Error("export failed", "error", err)
		}
		return err
	}
	log.Info("export finished", "pages", len(s.pages))
	return nil
}

// outputPage is one page of the written PDF
type outputPage struct {
	source int // 0-based index in the document
	page   *document.Page
	layers []*document.Layer
}

// session holds the state of one WritePDF call
type session struct {
	e     *exporter
	opts  options
	title string
	pages []outputPage
	done  int
}

func (e *exporter) newSession(opts options, r PageRange) (*session, error) {
	pages, err := planPages(e.doc, r, opts.progressive)
	if err != nil {
		return nil, err
	}
	s := &session{e: e, opts: opts, title: opts.title, pages: pages}
	if s.title == "" {
		s.title = e.doc.Title
	}
	return s, nil
}

// planPages lists the output pages for the selected source pages
func planPages(doc *document.Document, r PageRange, progressive bool) ([]outputPage, error) {
	indices, err := r.Pages(doc.PageCount())
	if err != nil {
		return nil, err
	}
	if len(indices) == 0 {
		return nil, fmt.Errorf("%w: document has no pages", ErrPageRange)
	}

	var pages []outputPage
	for _, i := range indices {
		p, err := doc.Page(i)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPageRange, err)
		}
		visible := p.VisibleLayers()
		if !progressive || len(visible) <= 1 {
			pages = append(pages, outputPage{source: i, page: p, layers: visible})
			continue
		}
		for k := 1; k <= len(visible); k++ {
			pages = append(pages, outputPage{source: i, page: p, layers: visible[:k]})
		}
	}
	return pages, nil
}

// OutputPageCount returns how many pages an export of doc writes
func OutputPageCount(doc *document.Document, r PageRange, progressive bool) (int, error) {
	if doc == nil {
		return 0, ErrNilDocument
	}
	pages, err := planPages(doc, r, progressive)
	if err != nil {
		return 0, err
	}
	return len(pages), nil
}

// beginPage returns ErrCanceled once Cancel was called
func (s *session) beginPage() error {
	if s.e.canceled.Load() {
		return ErrCanceled
	}
	return nil
}

// endPage reports one more finished page
func (s *session) endPage(op outputPage) {
	s.done++
	s.e.log().Debug("exported page", "page", op.source+1, "layers", len(op.layers), "done", s.done)
	s.e.listener.SetCurrentState(s.done)
}
