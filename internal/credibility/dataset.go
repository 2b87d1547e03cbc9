package credibility

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// Entry is one record of the media-bias/fact-check reference dataset
type Entry struct {
	SourceURL        string `json:"Source URL"`
	Bias             string `json:"Bias"`
	FactualReporting string `json:"Factual Reporting"`
	Credibility      string `json:"Credibility"`
}

// Dataset holds the reference records in file order. Lookup is a linear
// substring scan and the first match wins, so order matters.
type Dataset struct {
	entries []Entry
}

type datasetFile struct {
	Data []Entry `json:"data"`
}

// LoadDataset reads the reference dataset from a JSON file
func LoadDataset(path string) (*Dataset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	return ParseDataset(raw)
}

// ParseDataset decodes dataset JSON of the form {"data": [...]}
func ParseDataset(raw []byte) (*Dataset, error) {
	var file datasetFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}
	return &Dataset{entries: file.Data}, nil
}

// Len returns the number of reference records
func (d *Dataset) Len() int {
	return len(d.entries)
}

// Lookup finds the first entry whose Source URL contains the given
// domain (case-insensitive). Returns nil when no entry matches.
func (d *Dataset) Lookup(domain string) *Entry {
	domain = strings.ToLower(domain)
	if domain == "" {
		return nil
	}
	for i := range d.entries {
		if strings.Contains(strings.ToLower(d.entries[i].SourceURL), domain) {
			return &d.entries[i]
		}
	}
	return nil
}

// RegistrableDomain extracts the registrable domain (eTLD+1) from a URL,
// e.g. "https://www.bbc.co.uk/news/x" -> "bbc.co.uk"
func RegistrableDomain(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return ""
	}
	host := parsed.Hostname()
	domain, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return host
	}
	return domain
}
