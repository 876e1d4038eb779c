package export

import (
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// DefaultRasterDPI is the raster backend resolution unless WithRasterDPI
// is given
const DefaultRasterDPI = 150.0

// Option configures an exporter
type Option func(*options)

type options struct {
	rasterDPI   float64
	pdfcpuConf  *model.Configuration
	background  ExportBackground
	progressive bool
	title       string
}

func defaultOptions() options {
	return options{
		rasterDPI:  DefaultRasterDPI,
		background: BackgroundAll,
	}
}

// WithRasterDPI sets the resolution of rendered pages. Values <= 0 are
// ignored.
func WithRasterDPI(dpi float64) Option {
	return func(o *options) {
		if dpi > 0 {
			o.rasterDPI = dpi
		}
	}
}

// WithPdfcpuConfig sets the pdfcpu configuration used to assemble and
// optimize the output
func WithPdfcpuConfig(conf *model.Configuration) Option {
	return func(o *options) {
		o.pdfcpuConf = conf
	}
}

// WithExportBackground sets the initial background mode
func WithExportBackground(b ExportBackground) Option {
	return func(o *options) {
		o.background = b
	}
}

// WithProgressiveMode sets the initial progressive mode
func WithProgressiveMode(on bool) Option {
	return func(o *options) {
		o.progressive = on
	}
}

// WithTitle sets the document title written to the PDF info dictionary.
// The document's own title is used when empty.
func WithTitle(title string) Option {
	return func(o *options) {
		o.title = title
	}
}

func (o *options) config() *model.Configuration {
	if o.pdfcpuConf != nil {
		return o.pdfcpuConf
	}
	return model.NewDefaultConfiguration()
}
