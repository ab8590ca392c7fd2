package rank

import (
	"time"

	"github.com/amishk599/interndigest/internal/model"
)

// FallbackPostings returns the fixed sample postings sent when no source
// produced anything, so the digest still shows the pipeline is alive. Every
// posting is tagged model.SourceFallback.
func FallbackPostings(runDate time.Time) []model.Posting {
	y, m, d := runDate.Date()
	date := time.Date(y, m, d, 0, 0, 0, 0, runDate.Location())

	sample := func(title, company, location, pay, url string) model.Posting {
		return model.Posting{
			Title:        title,
			Company:      company,
			Location:     location,
			Compensation: pay,
			URL:          url,
			Source:       model.SourceFallback,
			PostedDate:   date,
		}
	}

	return []model.Posting{
		sample("Software Development Intern - Backend", "TechCorp India Pvt Ltd", "Bangalore, Karnataka", "₹15,000 - ₹25,000/month", "https://example.com/apply1"),
		sample("Data Science Intern", "Analytics Solutions", "Mumbai, Maharashtra", "₹12,000 - ₹20,000/month", "https://example.com/apply2"),
		sample("Machine Learning Engineer Intern", "AI Innovations Ltd", "Hyderabad, Telangana", "₹18,000 - ₹30,000/month", "https://example.com/apply3"),
		sample("Full Stack Developer Intern", "StartupHub Technologies", "Pune, Maharashtra", "₹10,000 - ₹18,000/month", "https://example.com/apply4"),
	}
}
