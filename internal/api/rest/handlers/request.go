package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/CameronXie/ecommerce-backend/commerce/page"
)

// maxBodyBytes limits the size of request bodies.
const maxBodyBytes = 1 << 20

// Listing holds the ordering applied when a list request does not name one
type Listing struct {
	Sort      string
	Direction page.Direction
}

// pageable reads page, size, sortBy and sortDirection from the query string.
func pageable(r *http.Request, defaults Listing) (page.Pageable, error) {
	q := r.URL.Query()

	pageIndex, err := intParam(q, "page", page.DefaultPage)
	if err != nil {
		return page.Pageable{}, err
	}

	size, err := intParam(q, "size", page.DefaultSize)
	if err != nil {
		return page.Pageable{}, err
	}

	sort := q.Get("sortBy")
	if sort == "" {
		sort = defaults.Sort
	}

	direction := q.Get("sortDirection")
	if direction == "" {
		direction = string(defaults.Direction)
	}

	return page.NewPageable(pageIndex, size, sort, direction)
}

func intParam(q url.Values, name string, fallback int) (int, error) {
	raw := q.Get(name)
	if raw == "" {
		return fallback, nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("query parameter %s must be an integer, got %q", name, raw)
	}

	return v, nil
}

// decodeRecord decodes a JSON object into v.
func decodeRecord(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}
	return trailingData(dec)
}

// decodeUpdates decodes a JSON object of field updates. Numbers are kept as json.Number so decimal
// fields receive the exact literal.
func decodeUpdates(w http.ResponseWriter, r *http.Request) (map[string]any, error) {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.UseNumber()

	var updates map[string]any
	if err := dec.Decode(&updates); err != nil {
		return nil, fmt.Errorf("decode body: %w", err)
	}

	if updates == nil {
		return nil, errors.New("body must be a JSON object")
	}

	return updates, trailingData(dec)
}

func trailingData(dec *json.Decoder) error {
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return errors.New("body must contain a single JSON value")
	}
	return nil
}
