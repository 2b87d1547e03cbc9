package credibility

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseDataset(t *testing.T) {
	raw := []byte(`{"data": [
		{"Source URL": "https://www.bbc.com/", "Bias": "Least Biased", "Factual Reporting": "High", "Credibility": "High"},
		{"Source URL": "https://example.org/", "Bias": "Center", "Factual Reporting": "Mixed", "Credibility": "Medium"}
	]}`)

	ds, err := ParseDataset(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ds.Len() != 2 {
		t.Errorf("expected 2 entries, got %d", ds.Len())
	}
}

func TestParseDataset_Invalid(t *testing.T) {
	if _, err := ParseDataset([]byte("not json")); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestLoadDataset_MissingFile(t *testing.T) {
	if _, err := LoadDataset(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadDataset_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mbfc.json")
	content := `{"data": [{"Source URL": "https://reuters.com/", "Bias": "Least Biased", "Factual Reporting": "Very High", "Credibility": "High"}]}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	ds, err := LoadDataset(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry := ds.Lookup("reuters.com"); entry == nil {
		t.Error("expected lookup hit for reuters.com")
	}
}

func TestDataset_Lookup_FirstMatchWins(t *testing.T) {
	ds := &Dataset{entries: []Entry{
		{SourceURL: "https://news.example.com/", Bias: "Left"},
		{SourceURL: "https://example.com/", Bias: "Center"},
	}}

	// "example.com" is a substring of both Source URLs; dataset order decides
	entry := ds.Lookup("example.com")
	if entry == nil {
		t.Fatal("expected a match")
	}
	if entry.Bias != "Left" {
		t.Errorf("expected first entry to win, got bias %q", entry.Bias)
	}
}

func TestDataset_Lookup_CaseInsensitive(t *testing.T) {
	ds := &Dataset{entries: []Entry{{SourceURL: "https://WWW.BBC.COM/"}}}
	if ds.Lookup("bbc.com") == nil {
		t.Error("expected case-insensitive match")
	}
}

func TestDataset_Lookup_EmptyDomain(t *testing.T) {
	ds := testDataset()
	if ds.Lookup("") != nil {
		t.Error("expected no match for empty domain")
	}
}

func TestRegistrableDomain(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://www.bbc.co.uk/news/abc", "bbc.co.uk"},
		{"https://randomblog.net/eiffel", "randomblog.net"},
		{"https://sub.deep.example.com/x?q=1", "example.com"},
		{"not a url", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := RegistrableDomain(tt.url); got != tt.want {
			t.Errorf("RegistrableDomain(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}
