package normalize

import (
	"errors"
	"testing"
	"time"

	"github.com/amishk599/interndigest/internal/model"
)

var runDate = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func TestPosting_FillsDefaults(t *testing.T) {
	raw := model.RawPosting{
		Title:          "  Data   Science\n Intern ",
		SearchURL:      "https://in.indeed.com/jobs?q=data+intern&l=Pune",
		SearchLocation: "Pune",
	}

	p, err := Posting(raw, model.SourceIndeed, runDate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Title != "Data Science Intern" {
		t.Errorf("Title = %q", p.Title)
	}
	if p.Company != model.CompanyNotListed {
		t.Errorf("Company = %q, want sentinel", p.Company)
	}
	if p.Location != "Pune" {
		t.Errorf("Location = %q, want search location", p.Location)
	}
	if p.Compensation != model.CompensationUnstated {
		t.Errorf("Compensation = %q, want sentinel", p.Compensation)
	}
	if p.URL != raw.SearchURL {
		t.Errorf("URL = %q, want search URL fallback", p.URL)
	}
	if p.Source != model.SourceIndeed {
		t.Errorf("Source = %q", p.Source)
	}
	if !p.PostedDate.Equal(time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("PostedDate = %v, want run date", p.PostedDate)
	}
}

func TestPosting_KeepsExtractedFields(t *testing.T) {
	raw := model.RawPosting{
		Title:          "Backend Intern",
		Company:        "Acme",
		Location:       "Bangalore,\n   Karnataka",
		Compensation:   "₹15,000 /month",
		Link:           "/rc/clk?jk=abc123",
		PostedDate:     "2026-03-10",
		SearchURL:      "https://in.indeed.com/jobs?q=backend",
		SearchLocation: "India",
	}

	p, err := Posting(raw, model.SourceIndeed, runDate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Location != "Bangalore, Karnataka" {
		t.Errorf("Location = %q", p.Location)
	}
	if p.Compensation != "₹15,000 /month" {
		t.Errorf("Compensation = %q", p.Compensation)
	}
	if p.URL != "https://in.indeed.com/rc/clk?jk=abc123" {
		t.Errorf("URL = %q", p.URL)
	}
	if !p.PostedDate.Equal(time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("PostedDate = %v", p.PostedDate)
	}
}

func TestPosting_MissingTitle(t *testing.T) {
	_, err := Posting(model.RawPosting{Title: " \n\t", SearchURL: "https://example.com"}, model.SourceNaukri, runDate)
	if !errors.Is(err, ErrMissingTitle) {
		t.Fatalf("err = %v, want ErrMissingTitle", err)
	}
}

func TestPosting_NoUsableURL(t *testing.T) {
	_, err := Posting(model.RawPosting{Title: "Intern", Link: "/relative"}, model.SourceNaukri, runDate)
	if !errors.Is(err, ErrNoURL) {
		t.Fatalf("err = %v, want ErrNoURL", err)
	}
}

func TestResolveURL(t *testing.T) {
	base := "https://internshala.com/internships/python-internship"
	tests := []struct {
		name string
		href string
		want string
	}{
		{"absolute kept", "https://www.naukri.com/job-listings-1", "https://www.naukri.com/job-listings-1"},
		{"root relative", "/internship/detail/42", "https://internshala.com/internship/detail/42"},
		{"empty falls back", "", base},
		{"javascript falls back", "javascript:void(0)", base},
		{"mailto falls back", "mailto:jobs@example.com", base},
		{"protocol relative", "//cdn.example.com/x", "https://cdn.example.com/x"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ResolveURL(tc.href, base)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("ResolveURL(%q) = %q, want %q", tc.href, got, tc.want)
			}
		})
	}
}

func TestText_NFKC(t *testing.T) {
	// Full-width letters and a non-breaking space are common in scraped markup.
	if got := Text("Ｉｎｔｅｒｎ Role"); got != "Intern Role" {
		t.Errorf("Text = %q", got)
	}
}
