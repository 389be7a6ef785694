// Package vdab reads the VDAB (Flemish employment service) job feed.
// Unlike the HTML boards this one publishes a proper RSS feed, so the
// adapter is a plain XML decode.
package vdab

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"jobradar-engine/internal/domain"
	"jobradar-engine/internal/source"
	"jobradar-engine/internal/source/util"
)

const (
	baseURL     = "https://www.vdab.be"
	feedPath    = "/rss/vindeenjob.rss"
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

func (s *Scraper) Name() string { return "vdab" }

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

type feed struct {
	Channel struct {
		Items []item `xml:"item"`
	} `xml:"channel"`
}

type item struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	Author      string `xml:"author"`
}

func (s *Scraper) Search(ctx context.Context, q source.Query) ([]domain.Listing, error) {
	params := url.Values{}
	params.Set("trefwoord", q.Keywords)
	if q.Location != "" {
		params.Set("locatie", q.Location)
	}
	feedURL := baseURL + feedPath + "?" + params.Encode()

	if err := s.limiter.WaitURL(ctx, feedURL); err != nil {
		return nil, source.NetworkErr(s.Name(), err)
	}

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/rss+xml, application/xml, text/xml")

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

	var f feed
	if err := xml.NewDecoder(res.Body).Decode(&f); err != nil {
		return nil, source.ParseErr(s.Name(), err)
	}

	now := time.Now().UTC()
	var out []domain.Listing
	for _, it := range f.Channel.Items {
		if len(out) >= maxListings {
			break
		}
		title, company, location := splitTitle(it.Title)
		link := strings.TrimSpace(it.Link)
		if title == "" || link == "" {
			continue
		}
		if company == "" {
			company = util.CleanText(it.Author)
		}

		out = append(out, domain.Listing{
			Title:     title,
			Company:   company,
			Location:  location,
			URL:       link,
			Source:    s.Name(),
			ScrapedAt: now,
		})
	}

	return out, nil
}

// splitTitle unpacks the feed's "Functie - Bedrijf - Gemeente" title
// convention. Missing segments just come back empty.
func splitTitle(raw string) (title, company, location string) {
	parts := strings.Split(raw, " - ")
	for i := range parts {
		parts[i] = util.CleanText(parts[i])
	}
	switch len(parts) {
	case 0:
		return "", "", ""
	case 1:
		return parts[0], "", ""
	case 2:
		return parts[0], parts[1], ""
	default:
		return parts[0], strings.Join(parts[1:len(parts)-1], " - "), parts[len(parts)-1]
	}
}
