package render

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMergeHiddenFields(t *testing.T) {
	base := map[string]string{"source": "kiosk", " padded ": "x"}

	got := MergeHiddenFields(base,
		RoomNameField("room_name", "demo-42"),
		Hidden("", "dropped"),
		Hidden("source", "override"),
	)

	want := map[string]string{
		"source":    "override",
		"padded":    "x",
		"room_name": "demo-42",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("merge mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeHiddenFields_Empty(t *testing.T) {
	if got := MergeHiddenFields(nil); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
	if got := MergeHiddenFields(nil, Hidden("  ", "v")); got != nil {
		t.Fatalf("blank names alone produce nil, got %v", got)
	}
}

func TestSortedHiddenFields(t *testing.T) {
	got := SortedHiddenFields(map[string]string{
		"room_name": "demo-42",
		"lang":      "en",
	})
	want := []HiddenField{
		{Name: "lang", Value: "en"},
		{Name: "room_name", Value: "demo-42"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("sorted mismatch (-want +got):\n%s", diff)
	}
}

func TestHidden_CoercesValues(t *testing.T) {
	field := Hidden(" attempt ", 3)
	if field.Name != "attempt" || field.Value != "3" {
		t.Fatalf("unexpected field: %+v", field)
	}
}
