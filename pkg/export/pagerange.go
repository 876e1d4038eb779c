package export

import (
	"fmt"
	"strconv"
	"strings"
)

// PageInterval is an inclusive range of 0-based page indices. Last < 0
// means "to the last page".
type PageInterval struct {
	First, Last int
}

// PageRange selects pages for export. A nil range selects all pages.
type PageRange []PageInterval

// ParsePageRange parses 1-based user syntax such as "1-3,5,8-". An empty
// string selects all pages.
func ParsePageRange(s string) (PageRange, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	var r PageRange
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		first, last, isRange := strings.Cut(part, "-")
		a, err := parsePageNumber(first)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrPageRange, part)
		}
		iv := PageInterval{First: a - 1, Last: a - 1}
		if isRange {
			if strings.TrimSpace(last) == "" {
				iv.Last = -1
			} else {
				b, err := parsePageNumber(last)
				if err != nil || b < a {
					return nil, fmt.Errorf("%w: %q", ErrPageRange, part)
				}
				iv.Last = b - 1
			}
		}
		r = append(r, iv)
	}
	return r, nil
}

func parsePageNumber(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, fmt.Errorf("page %d", n)
	}
	return n, nil
}

// Pages expands the range against a document of n pages. Pages keep the
// order they are listed in.
func (r PageRange) Pages(n int) ([]int, error) {
	if r == nil {
		pages := make([]int, n)
		for i := range pages {
			pages[i] = i
		}
		return pages, nil
	}
	var pages []int
	for _, iv := range r {
		last := iv.Last
		if last < 0 {
			last = n - 1
		}
		if iv.First < 0 || iv.First >= n || last >= n || last < iv.First {
			return nil, fmt.Errorf("%w: pages %d-%d of %d", ErrPageRange, iv.First+1, last+1, n)
		}
		for p := iv.First; p <= last; p++ {
			pages = append(pages, p)
		}
	}
	return pages, nil
}

func (r PageRange) String() string {
	if r == nil {
		return "all"
	}
	parts := make([]string, len(r))
	for i, iv := range r {
		switch {
		case iv.Last < 0:
			parts[i] = fmt.Sprintf("%d-", iv.First+1)
		case iv.First == iv.Last:
			parts[i] = strconv.Itoa(iv.First + 1)
		default:
			parts[i] = fmt.Sprintf("%d-%d", iv.First+1, iv.Last+1)
		}
	}
	return strings.Join(parts, ",")
}
