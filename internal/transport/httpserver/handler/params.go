package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

const dateLayout = "2006-01-02"

// idParam reads a route parameter already constrained to digits by the
// route pattern. Values that overflow int64 are reported as absent.
func idParam(r *http.Request, name string) (int64, bool) {
	parsed, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		return 0, false
	}
	return parsed, true
}

func parseDateRequired(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("date is required")
	}
	return time.Parse(dateLayout, value)
}

func formatDate(value time.Time) string {
	return value.Format(dateLayout)
}
