package shared

import (
	"math"
	"net/http"
	"strconv"
)

// Page is a window over a listing. A zero Limit means the whole listing.
type Page struct {
	Limit  int
	Offset int
}

// ParsePage reads limit and offset from the query. page (1-based) is accepted
// in place of offset; a page past the addressable range lands beyond the end.
// Malformed values fall back to the defaults.
func ParsePage(r *http.Request, defaultLimit, maxLimit int) Page {
	query := r.URL.Query()
	page := Page{Limit: defaultLimit}
	if n, ok := queryInt(query.Get("limit")); ok && n > 0 {
		page.Limit = n
	}
	if maxLimit > 0 && page.Limit > maxLimit {
		page.Limit = maxLimit
	}
	if n, ok := queryInt(query.Get("offset")); ok && n >= 0 {
		page.Offset = n
	} else if n, ok := queryInt(query.Get("page")); ok && n > 1 && page.Limit > 0 {
		page.Offset = math.MaxInt
		if n-1 <= math.MaxInt/page.Limit {
			page.Offset = (n - 1) * page.Limit
		}
	}
	return page
}

// SetTotal exposes the unpaged size of a listing to the client.
func SetTotal(w http.ResponseWriter, total int) {
	w.Header().Set("X-Total-Count", strconv.Itoa(total))
}

func queryInt(raw string) (int, bool) {
	if raw == "" {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	return n, err == nil
}
