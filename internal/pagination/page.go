package pagination

import "context"

// Page is one page of items plus its continuation signal. Exactly one of the
// two indicators is meaningful, matching the mode of the request that
// produced it: HasMore for skip mode, HasNextPage+Cursor for cursor mode.
type Page[T any] struct {
	Items       []T
	HasMore     bool
	HasNextPage bool
	// Cursor is the sort-key token of the last item in the trimmed page;
	// empty when the page is empty.
	Cursor string
}

// Fetcher loads up to limit items from an already-filtered, already-sorted
// source. In skip mode offset is the absolute position and after is zero; in
// cursor mode offset is zero and after is the exclusive watermark (zero when
// absent). The source must sort on a unique seq so the watermark never skips
// or repeats a tied item.
type Fetcher[T any] func(ctx context.Context, offset, limit int, after int64) ([]T, error)

// Paginate fetches one page for req. It over-fetches a single lookahead item
// to compute the continuation signal without a second count query, then trims
// it from the returned items. The signal reflects the result set at query
// time; there is no snapshot isolation across pages.
func Paginate[T any](ctx context.Context, req Request, seqOf func(T) int64, fetch Fetcher[T]) (*Page[T], error) {
	page := &Page[T]{}
	switch req.Mode {
	case ModeCursor:
		items, err := fetch(ctx, 0, req.Limit+1, req.After)
		if err != nil {
			return nil, err
		}
		if len(items) > req.Limit {
			items = items[:req.Limit]
			page.HasNextPage = true
		}
		page.Items = items
		if len(items) > 0 {
			page.Cursor = EncodeCursor(seqOf(items[len(items)-1]))
		}
	default:
		items, err := fetch(ctx, req.Skip, req.Limit+1, 0)
		if err != nil {
			return nil, err
		}
		if len(items) > req.Limit {
			items = items[:req.Limit]
			page.HasMore = true
		}
		page.Items = items
	}
	return page, nil
}

// SkipEnvelope builds the v1 response body: { hasMore, <itemsKey>: [...] }.
func SkipEnvelope(itemsKey string, items any, hasMore bool) map[string]any {
	return map[string]any{
		"hasMore": hasMore,
		itemsKey:  items,
	}
}

// CursorEnvelope builds the v2 response body:
// { hasNextPage, cursor?, <itemsKey>: [...] }. The cursor key is omitted for
// an empty page.
func CursorEnvelope(itemsKey string, items any, hasNextPage bool, cursor string) map[string]any {
	body := map[string]any{
		"hasNextPage": hasNextPage,
		itemsKey:      items,
	}
	if cursor != "" {
		body["cursor"] = cursor
	}
	return body
}
