package models

// AvailableFilters lists the colors and sizes actually present in the
// unfiltered category result set, used to populate filter option lists.
type AvailableFilters struct {
	Colors []string `json:"colors"`
	Sizes  []string `json:"sizes"`
}

// ProductListResponse is the listing page contract. CurrentPage is 0-based
// while the request's pageNumber is 1-based; UI pagination controls add 1.
// Existing clients rely on this asymmetry.
type ProductListResponse struct {
	Content          []Product        `json:"content"`
	TotalPages       int64            `json:"totalPages"`
	CurrentPage      int64            `json:"currentPage"`
	TotalProducts    int64            `json:"totalProducts"`
	AvailableFilters AvailableFilters `json:"availableFilters"`
}
