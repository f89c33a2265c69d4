package handlers

import "testing"

func TestParsePageParamsDefaults(t *testing.T) {
	page, size, err := parsePageParams("", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page != 1 || size != defaultPageSize {
		t.Fatalf("expected defaults 1/%d, got %d/%d", defaultPageSize, page, size)
	}
}

func TestParsePageParamsExplicit(t *testing.T) {
	page, size, err := parsePageParams("3", "24")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page != 3 || size != 24 {
		t.Fatalf("expected 3/24, got %d/%d", page, size)
	}
}

func TestParsePageParamsCapsPageSize(t *testing.T) {
	_, size, err := parsePageParams("1", "5000")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if size != maxPageSize {
		t.Fatalf("expected cap %d, got %d", maxPageSize, size)
	}
}

func TestParsePageParamsRejectsMalformed(t *testing.T) {
	for _, pair := range [][2]string{{"0", ""}, {"-1", ""}, {"abc", ""}, {"", "0"}, {"", "ten"}} {
		if _, _, err := parsePageParams(pair[0], pair[1]); err == nil {
			t.Fatalf("expected error for pageNumber=%q pageSize=%q", pair[0], pair[1])
		}
	}
}

func TestTotalPages(t *testing.T) {
	cases := []struct {
		total, size, want int64
	}{
		{0, 12, 0},
		{1, 12, 1},
		{12, 12, 1},
		{13, 12, 2},
		{25, 12, 3},
	}
	for _, tc := range cases {
		if got := totalPages(tc.total, tc.size); got != tc.want {
			t.Fatalf("totalPages(%d, %d): expected %d, got %d", tc.total, tc.size, tc.want, got)
		}
	}
}
