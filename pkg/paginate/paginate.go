// Package paginate implements clamping pagination over in-memory
// result sets: a non-integer or missing page number falls back to page
// 1 and an out-of-range integer falls back to the last page, never an
// error.
package paginate

import "strconv"

// Window is one resolved page of a result set.
type Window struct {
	Number   int
	NumPages int
	Offset   int
	End      int
	HasPrev  bool
	HasNext  bool
}

// Page resolves the raw page parameter against a result set of
// totalItems with the given pageSize. An empty result set yields a
// single empty page 1.
func Page(totalItems, pageSize int, raw string) Window {
	if pageSize < 1 {
		pageSize = 1
	}

	numPages := (totalItems + pageSize - 1) / pageSize
	if numPages < 1 {
		numPages = 1
	}

	number, err := strconv.Atoi(raw)
	if err != nil {
		number = 1
	}
	// Integers outside [1, numPages] clamp to the last page.
	if number < 1 || number > numPages {
		number = numPages
	}

	offset := (number - 1) * pageSize
	end := offset + pageSize
	if end > totalItems {
		end = totalItems
	}
	if offset > totalItems {
		offset = totalItems
	}

	return Window{
		Number:   number,
		NumPages: numPages,
		Offset:   offset,
		End:      end,
		HasPrev:  number > 1,
		HasNext:  number < numPages,
	}
}
