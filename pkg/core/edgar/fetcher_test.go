package edgar

import (
	"compress/gzip"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func factsFixture() companyFacts {
	return companyFacts{
		Facts: map[string]map[string]companyConcept{
			"us-gaap": {
				"Revenues": {
					Units: map[string][]factValue{
						"USD": {
							{End: "2023-12-31", Val: 90e9, FY: 2023, Form: "10-K"},
							{End: "2024-12-31", Val: 100e9, FY: 2024, Form: "10-K"},
							{End: "2025-03-31", Val: 26e9, FY: 2025, Form: "10-Q"},
						},
					},
				},
				"OperatingIncomeLoss": {
					Units: map[string][]factValue{
						"USD": {
							{End: "2024-12-31", Val: 20e9, FY: 2024, Form: "10-K"},
						},
					},
				},
			},
			"dei": {
				"EntityCommonStockSharesOutstanding": {
					Units: map[string][]factValue{
						"shares": {
							{End: "2025-01-31", Val: 5.6e9, Form: "10-K"},
						},
					},
				},
			},
		},
	}
}

func TestLatestPrefersAnnualForms(t *testing.T) {
	cf := factsFixture()

	// The 10-Q point is newer but must lose to the latest 10-K
	val, year := latest(cf, "us-gaap", "USD", revenueTags)
	if val != 100e9 {
		t.Errorf("Expected 100e9, got %f", val)
	}
	if year != 2024 {
		t.Errorf("Expected FY 2024, got %d", year)
	}
}

func TestLatestTagFallback(t *testing.T) {
	cf := factsFixture()

	// First tag in the list missing: fall through to the next
	val, _ := latest(cf, "us-gaap", "USD", []string{"SalesRevenueNet", "Revenues"})
	if val != 100e9 {
		t.Errorf("Expected fallback to Revenues, got %f", val)
	}

	// Nothing matches: zero means unobserved
	val, year := latest(cf, "us-gaap", "USD", []string{"NoSuchTag"})
	if val != 0 || year != 0 {
		t.Errorf("Expected (0, 0) for unknown tags, got (%f, %d)", val, year)
	}
}

func TestLatestMScalesToMillions(t *testing.T) {
	cf := factsFixture()
	val, _ := latestM(cf, ebitTags)
	if val != 20000 {
		t.Errorf("Expected 20000 ($M), got %f", val)
	}
}

func TestGetJSONDecodesGzipResponses(t *testing.T) {
	// SEC compresses responses when the client accepts gzip. The request
	// must not set Accept-Encoding itself: a manual header suppresses the
	// transport's transparent decompression and raw gzip bytes would reach
	// the JSON decoder.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
			t.Error("Expected the transport to negotiate gzip")
		}
		if r.Header.Get("User-Agent") != userAgent {
			t.Errorf("Expected SEC user agent, got %q", r.Header.Get("User-Agent"))
		}
		w.Header().Set("Content-Encoding", "gzip")
		w.Header().Set("Content-Type", "application/json")
		gz := gzip.NewWriter(w)
		gz.Write([]byte(`{"cik": 320193, "entityName": "DEMO CO"}`))
		gz.Close()
	}))
	defer server.Close()

	f := NewFetcher(nil)
	var cf companyFacts
	if err := f.getJSON(context.Background(), server.URL, &cf); err != nil {
		t.Fatalf("getJSON failed on a gzip response: %v", err)
	}
	if cf.CIK != 320193 {
		t.Errorf("Expected CIK 320193, got %d", cf.CIK)
	}
	if cf.EntityName != "DEMO CO" {
		t.Errorf("Expected entity name DEMO CO, got %q", cf.EntityName)
	}
}

func TestFiscalYearFallsBackToEndDate(t *testing.T) {
	fv := factValue{End: "2024-06-30", Val: 1}
	if y := fiscalYearOf(fv); y != 2024 {
		t.Errorf("Expected 2024 from end date, got %d", y)
	}
}
