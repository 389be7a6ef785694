// Package ictjob scrapes ICTjob.be, the main Belgian IT job board.
package ictjob

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"jobradar-engine/internal/domain"
	"jobradar-engine/internal/source"
	"jobradar-engine/internal/source/util"
)

const (
	baseURL     = "https://www.ictjob.be"
	searchPath  = "/en/search-it-jobs"
	userAgent   = "JobRadar/1.0 (+local)"
	maxListings = 40
)

type Scraper struct {
	hc      *http.Client
	limiter *util.HostLimiter
}

func New(limiter *util.HostLimiter) *Scraper {
	return &Scraper{
		hc:      &http.Client{Timeout: 20 * time.Second},
		limiter: limiter,
	}
}

func (s *Scraper) Name() string { return "ictjob" }

func (s *Scraper) Available(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, baseURL, nil)
	if err != nil {
		return false
	}
	req.Header.Set("User-Agent", userAgent)
	res, err := s.hc.Do(req)
	if err != nil {
		return false
	}
	defer res.Body.Close()
	return res.StatusCode < 500
}

func (s *Scraper) Search(ctx context.Context, q source.Query) ([]domain.Listing, error) {
	params := url.Values{}
	params.Set("keywords", q.Keywords)
	if q.Location != "" {
		params.Set("location", q.Location)
	}
	searchURL := baseURL + searchPath + "?" + params.Encode()

	if err := s.limiter.WaitURL(ctx, searchURL); err != nil {
		return nil, source.NetworkErr(s.Name(), err)
	}

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html")

	res, err := s.hc.Do(req)
	if err != nil {
		return nil, source.NetworkErr(s.Name(), err)
	}
	defer res.Body.Close()
	if res.StatusCode >= 500 {
		return nil, source.UnavailableErr(s.Name(), fmt.Errorf("status %d", res.StatusCode))
	}
	if res.StatusCode >= 400 {
		return nil, source.NetworkErr(s.Name(), fmt.Errorf("status %d", res.StatusCode))
	}

	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		return nil, source.ParseErr(s.Name(), err)
	}

	now := time.Now().UTC()
	var out []domain.Listing
	doc.Find("li.search-item, .job-result-item").EachWithBreak(func(_ int, item *goquery.Selection) bool {
		title := util.CleanText(item.Find(".job-title, h2 a").First().Text())
		href, _ := item.Find("a.job-title, h2 a, a[href*='/detail-']").First().Attr("href")
		href = strings.TrimSpace(href)
		if title == "" || href == "" {
			// partial extraction failure is routine; drop this one card
			return true
		}
		if strings.HasPrefix(href, "/") {
			href = baseURL + href
		}

		out = append(out, domain.Listing{
			Title:     title,
			Company:   util.CleanText(item.Find(".job-company, .company-name").First().Text()),
			Location:  util.CleanText(item.Find(".job-location, .location").First().Text()),
			Salary:    util.StripSalaryNoise(item.Find(".job-salary, .salary").First().Text()),
			URL:       href,
			Source:    s.Name(),
			ScrapedAt: now,
		})
		return len(out) < maxListings
	})

	return out, nil
}
