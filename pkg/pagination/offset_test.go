package pagination

import "testing"

func TestParamsValidate(t *testing.T) {
	if err := (Params{Page: 1, PageSize: 10}).Validate(); err != nil {
		t.Fatalf("expected valid params, got %v", err)
	}
	if err := (Params{Page: 0, PageSize: 10}).Validate(); err == nil {
		t.Fatal("expected error for page 0")
	}
	if err := (Params{Page: -3, PageSize: 10}).Validate(); err == nil {
		t.Fatal("expected error for negative page")
	}
	if err := (Params{Page: 1, PageSize: 0}).Validate(); err == nil {
		t.Fatal("expected error for page size 0")
	}
}

func TestParamsOffset(t *testing.T) {
	cases := []struct {
		page, size, want int
	}{
		{1, 10, 0},
		{2, 10, 10},
		{2, 3, 3},
		{5, 7, 28},
	}
	for _, c := range cases {
		got := Params{Page: c.page, PageSize: c.size}.Offset()
		if got != c.want {
			t.Errorf("Offset(page=%d,size=%d) = %d, want %d", c.page, c.size, got, c.want)
		}
	}
}

func TestClampPageSize(t *testing.T) {
	if got := ClampPageSize(0); got != DefaultPageSize {
		t.Fatalf("expected default for 0, got %d", got)
	}
	if got := ClampPageSize(-5); got != DefaultPageSize {
		t.Fatalf("expected default for negative, got %d", got)
	}
	if got := ClampPageSize(MaxPageSize + 1); got != MaxPageSize {
		t.Fatalf("expected max, got %d", got)
	}
	if got := ClampPageSize(33); got != 33 {
		t.Fatalf("expected passthrough, got %d", got)
	}
}

func TestTotalPages(t *testing.T) {
	if got := TotalPages(0, 10); got != 0 {
		t.Fatalf("expected 0 pages for empty set, got %d", got)
	}
	if got := TotalPages(7, 3); got != 3 {
		t.Fatalf("expected 3 pages, got %d", got)
	}
	if got := TotalPages(9, 3); got != 3 {
		t.Fatalf("expected 3 pages, got %d", got)
	}
	if got := TotalPages(10, 3); got != 4 {
		t.Fatalf("expected 4 pages, got %d", got)
	}
}
