package company

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func boolPtr(v bool) *bool { return &v }

func TestFilterAndSort_RequestingFirstThenNewest(t *testing.T) {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	oldRequesting := Company{ID: uuid.New(), Name: "old-req", RequestVerify: true, IsVerified: boolPtr(false), CreatedAt: base}
	newVerified := Company{ID: uuid.New(), Name: "new-verified", IsVerified: boolPtr(true), CreatedAt: base.Add(48 * time.Hour)}
	midPlain := Company{ID: uuid.New(), Name: "mid", IsVerified: boolPtr(false), CreatedAt: base.Add(24 * time.Hour)}
	newRequesting := Company{ID: uuid.New(), Name: "new-req", RequestVerify: true, IsVerified: boolPtr(false), CreatedAt: base.Add(72 * time.Hour)}

	items := []Company{oldRequesting, newVerified, midPlain, newRequesting}
	got := FilterAndSort(items, TabAll)

	want := []string{"new-req", "old-req", "new-verified", "mid"}
	if len(got) != len(want) {
		t.Fatalf("expected %d items, got %d", len(want), len(got))
	}
	for i, name := range want {
		if got[i].Name != name {
			t.Fatalf("position %d: expected %s, got %s", i, name, got[i].Name)
		}
	}
	if items[0].Name != "old-req" {
		t.Fatalf("input slice was reordered")
	}
}

func TestFilterAndSort_Tabs(t *testing.T) {
	items := []Company{
		{Name: "a", RequestVerify: true, IsVerified: boolPtr(false)},
		{Name: "b", RequestVerify: true, IsVerified: boolPtr(true)},
		{Name: "c", RequestVerify: true},
		{Name: "d"},
	}

	requesting := FilterAndSort(items, TabRequesting)
	if len(requesting) != 1 || requesting[0].Name != "a" {
		t.Fatalf("unexpected requesting tab: %+v", requesting)
	}
	others := FilterAndSort(items, TabOthers)
	if len(others) != 3 {
		t.Fatalf("expected 3 others, got %d", len(others))
	}

	counts := CountTabs(items)
	if counts.All != 4 || counts.Requesting != 1 || counts.Others != 3 {
		t.Fatalf("unexpected counts: %+v", counts)
	}
}

func TestParseTab(t *testing.T) {
	if tab, ok := ParseTab(""); !ok || tab != TabAll {
		t.Fatalf("empty tab should default to all")
	}
	if _, ok := ParseTab("archived"); ok {
		t.Fatalf("unknown tab should be rejected")
	}
}
