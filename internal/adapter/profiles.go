package adapter

import (
	"time"

	"github.com/amishk599/interndigest/internal/model"
)

// LinkedInProfile scrapes the logged-out LinkedIn job search, filtered to internships.
func LinkedInProfile() SiteProfile {
	return SiteProfile{
		Source:       model.SourceLinkedIn,
		SearchURL:    "https://www.linkedin.com/jobs/search/?keywords={keyword}&location={location}&f_JT=I&sortBy=DD",
		Encoding:     EncodeQuery,
		MaxKeywords:  4,
		MaxLocations: 3,
		MaxCards:     10,
		MinDelay:     1 * time.Second,
		MaxDelay:     4 * time.Second,
		Timeout:      15 * time.Second,
		Cards: []string{
			"div.base-card",
			"div.job-search-card",
			"ul.jobs-search__results-list > li",
		},
		Title: Chain{
			Text("h3.base-search-card__title"),
			Text("span.sr-only"),
			Text("h3"),
		},
		Company: Chain{
			Text("h4.base-search-card__subtitle"),
			Text("a.hidden-nested-link"),
			Text("h4"),
		},
		Location: Chain{
			Text("span.job-search-card__location"),
			Text("div.base-search-card__metadata span"),
		},
		Compensation: Chain{
			Text("span.job-search-card__salary-info"),
		},
		Link: Chain{
			Attr("a.base-card__full-link", "href"),
			Attr("a[href*='/jobs/view/']", "href"),
			OwnAttr("href"),
		},
		PostedDate: Chain{
			Attr("time.job-search-card__listdate", "datetime"),
			Attr("time.job-search-card__listdate--new", "datetime"),
			Attr("time", "datetime"),
		},
	}
}

// IndeedProfile scrapes Indeed India's internship search sorted by date.
func IndeedProfile() SiteProfile {
	return SiteProfile{
		Source:       model.SourceIndeed,
		SearchURL:    "https://in.indeed.com/jobs?q={keyword}&l={location}&jt=internship&sort=date",
		Encoding:     EncodeQuery,
		MaxKeywords:  6,
		MaxLocations: 4,
		MaxCards:     8,
		MinDelay:     1 * time.Second,
		MaxDelay:     4 * time.Second,
		Timeout:      15 * time.Second,
		Cards: []string{
			"div[data-result-id]",
			"div.job_seen_beacon",
			"div.slider_container",
			"div.result",
		},
		Title: Chain{
			Text("h2.jobTitle"),
			Text("a[data-jk]"),
			Attr("span[title]", "title"),
			Text("h2.jobTitle-color-purple"),
		},
		Company: Chain{
			Text("span.companyName"),
			Text("[data-testid='company-name']"),
			Text("div.companyName"),
		},
		Location: Chain{
			Text("div.companyLocation"),
			Text("[data-testid='text-location']"),
		},
		Compensation: Chain{
			Text("span.salary-text"),
			Text("div.salary-snippet-container"),
			Text("[data-testid='job-salary']"),
		},
		Link: Chain{
			Link("h2.jobTitle"),
			Attr("a[data-jk]", "href"),
			Attr("a.jcs-JobTitle", "href"),
		},
	}
}

// InternshalaProfile scrapes Internshala category pages. Every listing on the
// site is an internship, so titles are not filtered.
func InternshalaProfile() SiteProfile {
	return SiteProfile{
		Source:          model.SourceInternshala,
		SearchURL:       "https://internshala.com/internships/{keyword}-internship-in-{location}/",
		Encoding:        EncodeInternshipSlug,
		MaxKeywords:     5,
		MaxLocations:    2,
		MaxCards:        15,
		MinDelay:        2 * time.Second,
		MaxDelay:        6 * time.Second,
		Timeout:         20 * time.Second,
		InternshipsOnly: true,
		Cards: []string{
			"div.individual_internship",
			"div.internship_meta",
			"div[internshipid]",
		},
		Title: Chain{
			Text("h3.heading_4_5"),
			Text("h3.job-internship-name"),
			Text("a.job-title-href"),
			Text("h3"),
			Text("div.profile"),
		},
		Company: Chain{
			Text("p.company_name"),
			Text("p.company-name"),
			Text("div.company h4"),
			Text("div.company"),
		},
		Location: Chain{
			Text("div.locations"),
			Text("div#location_names"),
			Text("a[data-placement='top']"),
			Text("span.location_link"),
		},
		Compensation: Chain{
			Text("div.stipend"),
			Text("span.stipend"),
			Text("[class*='stipend']"),
		},
		Link: Chain{
			Attr("a.link_display_like_text", "href"),
			Attr("a.job-title-href", "href"),
			Link("h3"),
			OwnAttr("data-href"),
			Prefixed("/internship/detail/", OwnAttr("internshipid")),
		},
	}
}

// NaukriProfile scrapes Naukri's internship listings. Naukri blocks quickly,
// so it gets the smallest request budget.
func NaukriProfile() SiteProfile {
	return SiteProfile{
		Source:       model.SourceNaukri,
		SearchURL:    "https://www.naukri.com/internship-jobs?k={keyword}&l={location}",
		Encoding:     EncodeQuery,
		Headers:      map[string]string{"Referer": "https://www.naukri.com/"},
		MaxKeywords:  3,
		MaxLocations: 1,
		MaxCards:     5,
		MinDelay:     2 * time.Second,
		MaxDelay:     6 * time.Second,
		Timeout:      15 * time.Second,
		Cards: []string{
			"div.jobTuple",
			"article.jobTuple",
			"div.srp-jobtuple-wrapper",
		},
		Title: Chain{
			Text("a.title"),
		},
		Company: Chain{
			Text("a.subTitle"),
			Text("a.comp-name"),
		},
		Location: Chain{
			Text("li.location span"),
			Text("span.locWdth"),
		},
		Compensation: Chain{
			Text("li.salary span"),
			Text("span.sal"),
		},
		Link: Chain{
			Attr("a.title", "href"),
		},
	}
}

// ProfileFor returns the built-in profile for a config source name.
func ProfileFor(name string) (SiteProfile, bool) {
	switch name {
	case "linkedin":
		return LinkedInProfile(), true
	case "indeed":
		return IndeedProfile(), true
	case "internshala":
		return InternshalaProfile(), true
	case "naukri":
		return NaukriProfile(), true
	default:
		return SiteProfile{}, false
	}
}
