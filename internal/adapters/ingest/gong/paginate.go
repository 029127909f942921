package gong

import (
	"context"
	"maps"
	"net/http"
	"net/url"
	"strings"
)

// Paginator follows cursors over any Doer and merges the pages
type Paginator struct {
	doer Doer
}

// NewPaginator wraps d
func NewPaginator(d Doer) *Paginator { return &Paginator{doer: d} }

// Fetch performs req. With paginate set it keeps requesting while the response
// carries a cursor, concatenating list fields and keeping the last value of
// every other field
func (p *Paginator) Fetch(ctx context.Context, req Request, paginate bool) (map[string]any, error) {
	if !paginate {
		return p.doer.Do(ctx, req)
	}
	isGet := strings.EqualFold(req.Method, http.MethodGet) || req.Method == ""
	agg := map[string]any{}
	cursor := ""
	for {
		page := req
		if cursor != "" {
			if isGet {
				q := url.Values{}
				for k, v := range req.Query {
					q[k] = append([]string(nil), v...)
				}
				q.Set("cursor", cursor)
				page.Query = q
			} else {
				b := maps.Clone(req.Body)
				if b == nil {
					b = map[string]any{}
				}
				b["cursor"] = cursor
				page.Body = b
			}
		}

		resp, err := p.doer.Do(ctx, page)
		if err != nil {
			return nil, err
		}
		merge(agg, resp)

		cursor = nextCursor(resp)
		if cursor == "" {
			return agg, nil
		}
	}
}

func merge(agg, page map[string]any) {
	for k, v := range page {
		if list, ok := v.([]any); ok {
			prev, _ := agg[k].([]any)
			agg[k] = append(prev, list...)
			continue
		}
		agg[k] = v
	}
}

// nextCursor reads records.cursor, or the top level cursor when records is not an object
func nextCursor(resp map[string]any) string {
	if rec, ok := resp["records"].(map[string]any); ok {
		s, _ := rec["cursor"].(string)
		return s
	}
	s, _ := resp["cursor"].(string)
	return s
}
