package pagination

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name         string
		page         int
		paginate     int
		wantPage     int
		wantPaginate int
		wantOffset   int
	}{
		{"defaults", 0, 0, 1, DefaultPaginate, 0},
		{"negative page", -3, 10, 1, 10, 0},
		{"normal", 3, 10, 3, 10, 20},
		{"paginate capped", 1, 500, 1, MaxPaginate, 0},
		{"paginate floor", 2, -1, 2, DefaultPaginate, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Normalize(tt.page, tt.paginate)
			if p.Page != tt.wantPage {
				t.Errorf("Page = %d, want %d", p.Page, tt.wantPage)
			}
			if p.Paginate != tt.wantPaginate {
				t.Errorf("Paginate = %d, want %d", p.Paginate, tt.wantPaginate)
			}
			if p.Offset != tt.wantOffset {
				t.Errorf("Offset = %d, want %d", p.Offset, tt.wantOffset)
			}
		})
	}
}

func TestLastPage(t *testing.T) {
	tests := []struct {
		total   int64
		perPage int
		want    int
	}{
		{0, 10, 1},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{95, 10, 10},
		{100, 25, 4},
	}

	for _, tt := range tests {
		if got := LastPage(tt.total, tt.perPage); got != tt.want {
			t.Errorf("LastPage(%d, %d) = %d, want %d", tt.total, tt.perPage, got, tt.want)
		}
	}
}

func TestNewWindowEmpty(t *testing.T) {
	type row struct {
		ID uint `json:"id"`
	}

	params := Normalize(1, 10)

	tests := []struct {
		name string
		data interface{}
	}{
		{"untyped nil", nil},
		{"typed nil slice", []*row(nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewWindow(tt.data, params, 0)

			if w.CurrentPage != 1 {
				t.Errorf("CurrentPage = %d, want 1", w.CurrentPage)
			}
			if w.LastPage != 1 {
				t.Errorf("LastPage = %d, want 1", w.LastPage)
			}
			if w.Total != 0 {
				t.Errorf("Total = %d, want 0", w.Total)
			}

			// An empty Find leaves the slice nil; the wire contract
			// still requires "data": [].
			payload, err := json.Marshal(w)
			if err != nil {
				t.Fatalf("Marshal: %v", err)
			}
			if strings.Contains(string(payload), `"data":null`) {
				t.Errorf("window marshaled with null data: %s", payload)
			}
			if !strings.Contains(string(payload), `"data":[]`) {
				t.Errorf("window must marshal with empty data array: %s", payload)
			}
		})
	}
}

func TestNewWindowKeepsPopulatedData(t *testing.T) {
	type row struct {
		ID uint `json:"id"`
	}

	w := NewWindow([]*row{{ID: 7}}, Normalize(1, 10), 1)
	rows, ok := w.Data.([]*row)
	if !ok || len(rows) != 1 || rows[0].ID != 7 {
		t.Errorf("Data = %#v, want the original slice", w.Data)
	}
}
