package attendance

import (
	"context"
	"sort"
	"time"
)

// Reports answers faculty read queries over admitted records.
type Reports struct {
	records RecordStore
	loc     *time.Location
	now     func() time.Time
}

// NewReports creates a reader that buckets days in loc.
func NewReports(records RecordStore, loc *time.Location) *Reports {
	if loc == nil {
		loc = time.UTC
	}
	return &Reports{records: records, loc: loc, now: time.Now}
}

// Today returns the records marked during the current calendar day, oldest
// first.
func (r *Reports) Today(ctx context.Context) ([]Record, error) {
	now := r.now().In(r.loc)
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, r.loc)
	to := from.AddDate(0, 0, 1).Add(-time.Nanosecond)
	out, err := r.records.ListMarkedBetween(ctx, from, to)
	if err != nil {
		return nil, storageError(err)
	}
	if out == nil {
		out = []Record{}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MarkedAt.Before(out[j].MarkedAt) })
	return out, nil
}
