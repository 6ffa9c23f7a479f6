package pagination

import (
	"context"
	"testing"
)

type row struct{ seq int64 }

// seqSource simulates a seq-descending table of n rows (seq n..1).
func seqSource(n int) Fetcher[row] {
	return func(_ context.Context, offset, limit int, after int64) ([]row, error) {
		rows := make([]row, 0, limit)
		for seq := int64(n); seq >= 1 && len(rows) < limit; seq-- {
			if after != 0 && seq >= after {
				continue
			}
			if offset > 0 {
				offset--
				continue
			}
			rows = append(rows, row{seq: seq})
		}
		return rows, nil
	}
}

func rowSeq(r row) int64 { return r.seq }

func TestPaginateSkipBoundaries(t *testing.T) {
	const total = 25
	tests := []struct {
		skip    string
		req     Request
		items   int
		hasMore bool
	}{
		{"first page", Request{Skip: 0, Limit: 10}, 10, true},
		{"mid page", Request{Skip: 10, Limit: 10}, 10, true},
		{"last partial page", Request{Skip: 20, Limit: 10}, 5, false},
		{"skip past end", Request{Skip: 25, Limit: 10}, 0, false},
		{"skip far past end", Request{Skip: 100, Limit: 10}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.skip, func(t *testing.T) {
			page, err := Paginate(context.Background(), tt.req, rowSeq, seqSource(total))
			if err != nil {
				t.Fatal(err)
			}
			if len(page.Items) != tt.items || page.HasMore != tt.hasMore {
				t.Errorf("got %d items hasMore=%v, want %d items hasMore=%v",
					len(page.Items), page.HasMore, tt.items, tt.hasMore)
			}
		})
	}
}

// Walking the cursor to exhaustion must yield every row exactly once with no
// overlap between pages.
func TestPaginateCursorWalk(t *testing.T) {
	const total = 23
	seen := make(map[int64]int)
	req := Request{Mode: ModeCursor, Limit: 5}
	pages := 0
	for {
		page, err := Paginate(context.Background(), req, rowSeq, seqSource(total))
		if err != nil {
			t.Fatal(err)
		}
		pages++
		for _, r := range page.Items {
			seen[r.seq]++
		}
		if !page.HasNextPage {
			if len(page.Items) != total%5 {
				t.Errorf("final page had %d items, want %d", len(page.Items), total%5)
			}
			break
		}
		if len(page.Items) != 5 {
			t.Fatalf("full page had %d items", len(page.Items))
		}
		seq, ok := DecodeCursor(page.Cursor)
		if !ok {
			t.Fatalf("page returned undecodable cursor %q", page.Cursor)
		}
		req.After, req.HasAfter = seq, true
	}
	if pages != 5 {
		t.Errorf("walk took %d pages, want 5", pages)
	}
	if len(seen) != total {
		t.Fatalf("saw %d distinct rows, want %d", len(seen), total)
	}
	for seq, n := range seen {
		if n != 1 {
			t.Errorf("row %d returned %d times", seq, n)
		}
	}
}

func TestPaginateCursorOrdering(t *testing.T) {
	page, err := Paginate(context.Background(), Request{Mode: ModeCursor, Limit: 10}, rowSeq, seqSource(4))
	if err != nil {
		t.Fatal(err)
	}
	if page.HasNextPage {
		t.Error("HasNextPage true with everything on one page")
	}
	for i := 1; i < len(page.Items); i++ {
		if page.Items[i].seq >= page.Items[i-1].seq {
			t.Fatalf("items not seq-descending: %v", page.Items)
		}
	}
	if page.Cursor != EncodeCursor(1) {
		t.Errorf("cursor = %q, want seq of last item", page.Cursor)
	}
}

func TestPaginateEmptySource(t *testing.T) {
	page, err := Paginate(context.Background(), Request{Mode: ModeCursor, Limit: 10}, rowSeq, seqSource(0))
	if err != nil {
		t.Fatal(err)
	}
	if len(page.Items) != 0 || page.HasNextPage || page.Cursor != "" {
		t.Errorf("empty source gave %+v", page)
	}
}
