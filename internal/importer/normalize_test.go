package importer

import "testing"

func TestNormalizeHeader(t *testing.T) {
	variants := []string{"WT-ID", "wt id", "Wt_Id", "WT.ID", " wt-id ", "WT  ID"}
	for _, v := range variants {
		if got := NormalizeHeader(v); got != "wtid" {
			t.Errorf("NormalizeHeader(%q) = %q, want %q", v, got, "wtid")
		}
	}
}

func TestNormalizeHeaderKeepsDigits(t *testing.T) {
	if got := NormalizeHeader("Facility Number 2"); got != "facilitynumber2" {
		t.Errorf("got %q", got)
	}
}

func TestNormalizeHeaderEmpty(t *testing.T) {
	if got := NormalizeHeader("---"); got != "" {
		t.Errorf("expected empty key, got %q", got)
	}
}
