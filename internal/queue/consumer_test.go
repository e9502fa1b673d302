package queue

import (
	"strings"
	"testing"
)

func TestFormatLineBarter(t *testing.T) {
	line := FormatLine(RequestDecidedEvent{
		Kind:          "barter",
		RequestID:     42,
		RequesterName: "Vismay Patel",
		RecipientName: "Anita Rao",
		ListingName:   "Rotavator",
		OfferedName:   "Power Tiller",
		Status:        "accepted",
		DecidedAt:     "2026-08-31T10:00:00Z",
	})
	if !strings.HasPrefix(line, "[2026-08-31T10:00:00Z] Barter accepted") {
		t.Fatalf("unexpected prefix: %q", line)
	}
	for _, want := range []string{"request_id=42", `"Vismay Patel"`, `"Rotavator"`, `"Power Tiller"`} {
		if !strings.Contains(line, want) {
			t.Errorf("line missing %s: %q", want, line)
		}
	}
	if !strings.HasSuffix(line, "\n") {
		t.Errorf("line must end with newline: %q", line)
	}
}

func TestFormatLinePurchase(t *testing.T) {
	line := FormatLine(RequestDecidedEvent{
		Kind:          "purchase",
		RequestID:     17,
		RequesterName: "Ravi Kumar",
		RecipientName: "Anita Rao",
		ListingName:   "Wheat",
		TotalPrice:    110000,
		Status:        "rejected",
		DecidedAt:     "2026-08-31T11:00:00Z",
	})
	if !strings.Contains(line, "Purchase rejected") {
		t.Fatalf("unexpected line: %q", line)
	}
	if !strings.Contains(line, "total=110000.00") {
		t.Errorf("line missing total: %q", line)
	}
}
