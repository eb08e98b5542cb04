package company

import "sort"

// TabCounts holds the number of companies visible under each tab.
type TabCounts struct {
	All        int
	Requesting int
	Others     int
}

func CountTabs(items []Company) TabCounts {
	out := TabCounts{All: len(items)}
	for _, c := range items {
		if c.RequestingVerification() {
			out.Requesting++
			continue
		}
		out.Others++
	}
	return out
}

// FilterAndSort returns the companies in tab, requesting verification first and
// then newest first. The input slice is not modified.
func FilterAndSort(items []Company, tab Tab) []Company {
	out := make([]Company, 0, len(items))
	for _, c := range items {
		if c.InTab(tab) {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		ri := out[i].RequestingVerification()
		rj := out[j].RequestingVerification()
		if ri != rj {
			return ri
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// SortNewestFirst orders companies by creation time, newest first.
func SortNewestFirst(items []Company) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
}
