package export

import (
	"fmt"
	"strings"
)

// Backend selects the PDF export implementation
type Backend int

const (
	// BackendDefault resolves to BackendVector
	BackendDefault Backend = iota
	// BackendVector writes strokes and text as PDF vector content
	BackendVector
	// BackendRaster renders every page to a bitmap first
	BackendRaster
)

func (b Backend) String() string {
	switch b {
	case BackendDefault:
		return "default"
	case BackendVector:
		return "vector"
	case BackendRaster:
		return "raster"
	default:
		return fmt.Sprintf("backend(%d)", int(b))
	}
}

// ParseBackend maps a backend name to a Backend
func ParseBackend(name string) (Backend, error) {
	switch strings.ToLower(name) {
	case "", "default":
		return BackendDefault, nil
	case "vector":
		return BackendVector, nil
	case "raster":
		return BackendRaster, nil
	default:
		return 0, fmt.Errorf("unknown export backend %q", name)
	}
}

// resolve maps BackendDefault to the concrete default. The rule does not
// depend on which backends are compiled in.
func (b Backend) resolve() Backend {
	if b == BackendDefault {
		return BackendVector
	}
	return b
}

// ExportBackground selects how much of the page background is exported
type ExportBackground int

const (
	// BackgroundNone exports the layers only
	BackgroundNone ExportBackground = iota
	// BackgroundUnruled exports the paper color without ruling
	BackgroundUnruled
	// BackgroundAll exports paper color and ruling
	BackgroundAll
)

func (b ExportBackground) String() string {
	switch b {
	case BackgroundNone:
		return "none"
	case BackgroundUnruled:
		return "unruled"
	case BackgroundAll:
		return "all"
	default:
		return fmt.Sprintf("background(%d)", int(b))
	}
}

// ParseExportBackground maps a name to an ExportBackground
func ParseExportBackground(name string) (ExportBackground, error) {
	switch strings.ToLower(name) {
	case "none":
		return BackgroundNone, nil
	case "unruled":
		return BackgroundUnruled, nil
	case "", "all":
		return BackgroundAll, nil
	default:
		return 0, fmt.Errorf("unknown export background %q", name)
	}
}
