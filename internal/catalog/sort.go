package catalog

// SortSpec is the server-side ordering resolved from the client sort token.
// Price sorts key on the discounted price, not the list price.
type SortSpec struct {
	SortBy    string
	SortOrder string
}

// ParseSort maps the closed client vocabulary to a sort spec. An unrecognized
// value reports false and the caller falls back to the store's natural order.
func ParseSort(value string) (SortSpec, bool) {
	switch value {
	case "newest":
		return SortSpec{SortBy: "createdAt", SortOrder: "desc"}, true
	case "oldest":
		return SortSpec{SortBy: "createdAt", SortOrder: "asc"}, true
	case "priceLow", "price_low":
		return SortSpec{SortBy: "discountedPrice", SortOrder: "asc"}, true
	case "priceHigh", "price_high":
		return SortSpec{SortBy: "discountedPrice", SortOrder: "desc"}, true
	case "name":
		return SortSpec{SortBy: "title", SortOrder: "asc"}, true
	}
	return SortSpec{}, false
}
