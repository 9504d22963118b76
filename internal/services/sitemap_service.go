package services

import (
	"context"
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"restaurant_backend/internal/repositories"
)

const sitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// staticPages are always listed, in this order.
var staticPages = []struct {
	path       string
	changeFreq string
	priority   string
}{
	{"/", "weekly", "1.0"},
	{"/menu", "weekly", "0.9"},
	{"/gallery", "monthly", "0.7"},
	{"/about", "monthly", "0.6"},
	{"/contact", "yearly", "0.6"},
	{"/blog", "daily", "0.8"},
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

// SitemapService renders sitemap.xml from the static pages and published posts.
type SitemapService interface {
	Generate(ctx context.Context) ([]byte, error)
}

type sitemapService struct {
	blogRepo repositories.BlogRepository
	siteURL  string
}

// NewSitemapService creates a new instance of SitemapService.
func NewSitemapService(blogRepo repositories.BlogRepository, siteURL string) SitemapService {
	return &sitemapService{blogRepo: blogRepo, siteURL: strings.TrimRight(siteURL, "/")}
}

func (s *sitemapService) Generate(ctx context.Context) ([]byte, error) {
	entries, err := s.blogRepo.GetPublishedSlugs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list published posts: %w", err)
	}

	set := urlSet{Xmlns: sitemapNamespace}
	for _, p := range staticPages {
		set.URLs = append(set.URLs, sitemapURL{Loc: s.siteURL + p.path, ChangeFreq: p.changeFreq, Priority: p.priority})
	}
	for _, e := range entries {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        s.siteURL + "/blog/" + e.Slug,
			LastMod:    e.UpdatedAt.UTC().Format(time.DateOnly),
			ChangeFreq: "weekly",
			Priority:   "0.7",
		})
	}

	out, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode sitemap: %w", err)
	}
	return append([]byte(xml.Header), out...), nil
}
