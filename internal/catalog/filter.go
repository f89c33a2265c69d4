package catalog

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/protyayrd/tweestbd-sub003/internal/models"
)

const (
	StockIn  = "in_stock"
	StockOut = "out_of_stock"
)

// FilterState is the listing filter configuration. It is the single source of
// truth serialized bidirectionally to the URL query string, so a shared link
// reproduces the exact same listing.
type FilterState struct {
	Category     string // slug or hex id
	PriceRange   string // "min-max"
	Colors       []string
	Sizes        []string
	MinDiscount  int
	Rating       int
	Stock        string // StockIn, StockOut or ""
	IsNewArrival bool
	IsFeatured   bool
	Search       string
	Sort         string
	Page         int
}

// Change is one filter mutation. The closed set of variants gets an
// exhaustive treatment in Apply.
type Change interface {
	applyTo(*FilterState)
}

type (
	SetCategory    string
	SetPriceRange  string
	SetColors      []string
	SetSizes       []string
	SetMinDiscount int
	SetRating      int
	SetStock       string
	SetNewArrival  bool
	SetFeatured    bool
	SetSearch      string
	SetSort        string
	SetPage        int
)

func (v SetCategory) applyTo(f *FilterState)    { f.Category = string(v) }
func (v SetPriceRange) applyTo(f *FilterState)  { f.PriceRange = string(v) }
func (v SetColors) applyTo(f *FilterState)      { f.Colors = []string(v) }
func (v SetSizes) applyTo(f *FilterState)       { f.Sizes = []string(v) }
func (v SetMinDiscount) applyTo(f *FilterState) { f.MinDiscount = int(v) }
func (v SetRating) applyTo(f *FilterState)      { f.Rating = int(v) }
func (v SetStock) applyTo(f *FilterState)       { f.Stock = string(v) }
func (v SetNewArrival) applyTo(f *FilterState)  { f.IsNewArrival = bool(v) }
func (v SetFeatured) applyTo(f *FilterState)    { f.IsFeatured = bool(v) }
func (v SetSearch) applyTo(f *FilterState)      { f.Search = string(v) }
func (v SetSort) applyTo(f *FilterState)        { f.Sort = string(v) }
func (v SetPage) applyTo(f *FilterState)        { f.Page = int(v) }

// Apply returns the state after one change. Every change except SetPage
// resets the page to 1, so a stale page number can never outlive the result
// set it belonged to.
func Apply(f FilterState, c Change) FilterState {
	c.applyTo(&f)
	if _, ok := c.(SetPage); !ok {
		f.Page = 1
	}
	return f
}

// BuildQuery serializes a filter state to listing query parameters. Default
// and empty values are omitted rather than emitted as empty strings, keeping
// URLs minimal. A category token is resolved slug-or-id to its canonical id;
// when resolution fails the category constraint is dropped, not errored.
func BuildQuery(f FilterState, categories []models.Category) url.Values {
	q := url.Values{}

	if f.Category != "" {
		if category := Resolve(f.Category, categories); category != nil {
			q.Set("category", category.ID.Hex())
		}
	}

	if minPrice, maxPrice, ok := SplitPriceRange(f.PriceRange); ok {
		q.Set("minPrice", minPrice)
		q.Set("maxPrice", maxPrice)
	}

	if len(f.Colors) > 0 {
		q.Set("colors", strings.Join(f.Colors, ","))
	}
	if len(f.Sizes) > 0 {
		q.Set("sizes", strings.Join(f.Sizes, ","))
	}

	if f.MinDiscount > 0 {
		q.Set("minDiscount", strconv.Itoa(f.MinDiscount))
	}
	if f.Rating > 0 {
		q.Set("rating", strconv.Itoa(f.Rating))
	}
	if f.Stock == StockIn || f.Stock == StockOut {
		q.Set("stock", f.Stock)
	}
	if f.IsNewArrival {
		q.Set("isNewArrival", "true")
	}
	if f.IsFeatured {
		q.Set("isFeatured", "true")
	}
	if search := strings.TrimSpace(f.Search); search != "" {
		q.Set("search", search)
	}
	if f.Sort != "" {
		q.Set("sort", f.Sort)
	}
	if f.Page > 1 {
		q.Set("pageNumber", strconv.Itoa(f.Page))
	}

	return q
}

// ParseQuery is the inverse of BuildQuery: every serialized field has a parse
// rule mirroring its serialize rule, so bookmarked links deep-link back into
// the same filter state.
func ParseQuery(q url.Values) FilterState {
	f := FilterState{Page: 1}

	f.Category = strings.TrimSpace(q.Get("category"))

	minPrice := strings.TrimSpace(q.Get("minPrice"))
	maxPrice := strings.TrimSpace(q.Get("maxPrice"))
	if minPrice != "" && maxPrice != "" {
		f.PriceRange = minPrice + "-" + maxPrice
	}

	if colors := strings.TrimSpace(q.Get("colors")); colors != "" {
		f.Colors = splitList(colors)
	}
	if sizes := strings.TrimSpace(q.Get("sizes")); sizes != "" {
		f.Sizes = splitList(sizes)
	}

	f.MinDiscount = parsePositiveInt(q.Get("minDiscount"))
	f.Rating = parsePositiveInt(q.Get("rating"))

	if stock := strings.TrimSpace(q.Get("stock")); stock == StockIn || stock == StockOut {
		f.Stock = stock
	}
	f.IsNewArrival = q.Get("isNewArrival") == "true"
	f.IsFeatured = q.Get("isFeatured") == "true"
	f.Search = strings.TrimSpace(q.Get("search"))
	f.Sort = strings.TrimSpace(q.Get("sort"))

	if page := parsePositiveInt(q.Get("pageNumber")); page > 1 {
		f.Page = page
	}

	return f
}

// SplitPriceRange parses a "min-max" range. Both ends must be non-negative
// numbers with min <= max; anything else reports not ok.
func SplitPriceRange(priceRange string) (string, string, bool) {
	priceRange = strings.TrimSpace(priceRange)
	if priceRange == "" {
		return "", "", false
	}
	parts := strings.SplitN(priceRange, "-", 2)
	if len(parts) != 2 {
		return "", "", false
	}
	minStr := strings.TrimSpace(parts[0])
	maxStr := strings.TrimSpace(parts[1])
	minVal, errMin := strconv.ParseFloat(minStr, 64)
	maxVal, errMax := strconv.ParseFloat(maxStr, 64)
	if errMin != nil || errMax != nil || minVal < 0 || maxVal < minVal {
		return "", "", false
	}
	return minStr, maxStr, true
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func parsePositiveInt(value string) int {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed < 1 {
		return 0
	}
	return parsed
}
