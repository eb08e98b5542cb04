package freelancer

import (
	"sort"
	"strings"
)

type CompletionBand string

const (
	CompletionAll    CompletionBand = "all"
	CompletionHigh   CompletionBand = "high"
	CompletionMedium CompletionBand = "medium"
	CompletionLow    CompletionBand = "low"
)

func ParseCompletionBand(s string) (CompletionBand, bool) {
	switch CompletionBand(s) {
	case "", CompletionAll:
		return CompletionAll, true
	case CompletionHigh, CompletionMedium, CompletionLow:
		return CompletionBand(s), true
	default:
		return "", false
	}
}

func (b CompletionBand) Contains(completion int) bool {
	switch b {
	case CompletionHigh:
		return completion >= 80
	case CompletionMedium:
		return completion >= 50 && completion < 80
	case CompletionLow:
		return completion < 50
	default:
		return true
	}
}

// Filter narrows the directory. Empty Query and Location (or "all") match everything.
type Filter struct {
	Query      string
	Completion CompletionBand
	Location   string
}

func (f Filter) Match(fl Freelancer) bool {
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" && !matchesQuery(fl, q) {
		return false
	}
	if !f.Completion.Contains(fl.Completion()) {
		return false
	}
	if f.Location != "" && f.Location != "all" {
		if fl.Location == nil || *fl.Location != f.Location {
			return false
		}
	}
	return true
}

func matchesQuery(fl Freelancer, q string) bool {
	if strings.Contains(strings.ToLower(fl.DisplayName()), q) {
		return true
	}
	for _, v := range []*string{fl.Email, fl.ProfessionalTitle, fl.Location} {
		if v != nil && strings.Contains(strings.ToLower(*v), q) {
			return true
		}
	}
	return false
}

func Apply(items []Freelancer, f Filter) []Freelancer {
	out := make([]Freelancer, 0, len(items))
	for _, it := range items {
		if f.Match(it) {
			out = append(out, it)
		}
	}
	return out
}

// UniqueLocations returns the sorted set of non-blank locations.
func UniqueLocations(items []Freelancer) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0)
	for _, it := range items {
		if it.Location == nil || strings.TrimSpace(*it.Location) == "" {
			continue
		}
		if _, ok := seen[*it.Location]; ok {
			continue
		}
		seen[*it.Location] = struct{}{}
		out = append(out, *it.Location)
	}
	sort.Strings(out)
	return out
}
