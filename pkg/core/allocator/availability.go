package allocator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dnminh/restaff/pkg/core/model"
)

// interval is a half-open [start, end) window in minutes since midnight.
type interval struct {
	start int
	end   int
}

// AvailabilityIndex turns raw per-user/per-date availability declarations
// into queryable free-time intervals. Rebuilt per run; never mutated after
// build.
type AvailabilityIndex struct {
	byUserDate map[string][]interval
	weekTotals map[string]int
}

func dayKey(userID, date string) string {
	return userID + "|" + date
}

// BuildAvailabilityIndex indexes availability records by (user, date).
// Overlapping or touching windows for the same user and date are merged,
// so two declarations 08:00-10:00 and 10:00-12:00 satisfy a query for
// 09:00-11:00. Malformed records are a hard error.
func BuildAvailabilityIndex(records []model.AvailabilityInterval) (*AvailabilityIndex, error) {
	idx := &AvailabilityIndex{
		byUserDate: make(map[string][]interval),
		weekTotals: make(map[string]int),
	}

	for _, rec := range records {
		if rec.UserID == "" || rec.Date == "" {
			return nil, fmt.Errorf("availability record missing user id or date")
		}
		start, err := model.MinuteOfDay(rec.Start)
		if err != nil {
			return nil, fmt.Errorf("availability for user %s on %s: %w", rec.UserID, rec.Date, err)
		}
		end, err := model.MinuteOfDay(rec.End)
		if err != nil {
			return nil, fmt.Errorf("availability for user %s on %s: %w", rec.UserID, rec.Date, err)
		}
		if end <= start {
			return nil, fmt.Errorf("availability for user %s on %s: end %s not after start %s",
				rec.UserID, rec.Date, rec.End, rec.Start)
		}
		key := dayKey(rec.UserID, rec.Date)
		idx.byUserDate[key] = append(idx.byUserDate[key], interval{start, end})
	}

	// Merge and total per key
	for key, intervals := range idx.byUserDate {
		sort.Slice(intervals, func(i, j int) bool {
			if intervals[i].start != intervals[j].start {
				return intervals[i].start < intervals[j].start
			}
			return intervals[i].end < intervals[j].end
		})

		merged := intervals[:0]
		for _, iv := range intervals {
			if n := len(merged); n > 0 && iv.start <= merged[n-1].end {
				if iv.end > merged[n-1].end {
					merged[n-1].end = iv.end
				}
				continue
			}
			merged = append(merged, iv)
		}
		idx.byUserDate[key] = merged

		userID := key[:strings.LastIndex(key, "|")]
		total := 0
		for _, iv := range merged {
			total += iv.end - iv.start
		}
		idx.weekTotals[userID] += total
	}

	return idx, nil
}

// IsAvailable reports whether some declared window fully contains the
// requested [start, end) interval. There is no partial-overlap credit.
func (idx *AvailabilityIndex) IsAvailable(userID, date string, start, end int) bool {
	for _, iv := range idx.byUserDate[dayKey(userID, date)] {
		if iv.start <= start && end <= iv.end {
			return true
		}
	}
	return false
}

// FreeMinutes returns the user's total declared free minutes on a date.
func (idx *AvailabilityIndex) FreeMinutes(userID, date string) int {
	total := 0
	for _, iv := range idx.byUserDate[dayKey(userID, date)] {
		total += iv.end - iv.start
	}
	return total
}

// TotalFreeMinutes returns the user's declared free minutes across every
// indexed date. Feeds the proportional-allocation heuristic.
func (idx *AvailabilityIndex) TotalFreeMinutes(userID string) int {
	return idx.weekTotals[userID]
}
