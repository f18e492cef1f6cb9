// Package crawl discovers the pages of a site for `process --url --all`.
// It reads sitemap.xml when the site has one and otherwise follows
// same-host links breadth-first.
package crawl

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/gaurav-prasanna/chunkpipe/core"
)

// DefaultMaxPages caps discovery when the caller passes a non-positive limit.
const DefaultMaxPages = 50

type urlset struct {
	URLs []struct {
		Loc string `xml:"loc"`
	} `xml:"url"`
}

// Discover returns up to maxPages same-host page URLs starting at baseURL.
// baseURL itself is always first.
func Discover(ctx context.Context, baseURL string, fetcher core.Fetcher, maxPages int) ([]string, error) {
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL %q: %w", baseURL, err)
	}
	if base.Host == "" {
		return nil, fmt.Errorf("base URL %q has no host", baseURL)
	}

	found := newFrontier()
	found.push(Canonical(baseURL))

	sitemap := (&url.URL{Scheme: base.Scheme, Host: base.Host, Path: "/sitemap.xml"}).String()
	if locs, err := fromSitemap(ctx, sitemap, fetcher); err == nil && len(locs) > 0 {
		for _, loc := range locs {
			if len(found.all()) >= maxPages {
				break
			}
			if SameHost(loc, base.Host) && Chunkable(loc) {
				found.push(Canonical(loc))
			}
		}
		return found.all(), nil
	}

	for len(found.all()) < maxPages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		current, ok := found.pop()
		if !ok {
			break
		}
		res, err := fetcher.Fetch(ctx, current)
		if err != nil {
			continue
		}
		for _, link := range links(res.HTML, current) {
			if len(found.all()) >= maxPages {
				break
			}
			if SameHost(link, base.Host) && Chunkable(link) {
				found.push(Canonical(link))
			}
		}
	}
	return found.all(), nil
}

func fromSitemap(ctx context.Context, sitemapURL string, fetcher core.Fetcher) ([]string, error) {
	res, err := fetcher.Fetch(ctx, sitemapURL)
	if err != nil {
		return nil, err
	}
	var set urlset
	if err := xml.Unmarshal([]byte(res.HTML), &set); err != nil {
		return nil, fmt.Errorf("parsing sitemap: %w", err)
	}
	locs := make([]string, 0, len(set.URLs))
	for _, u := range set.URLs {
		if loc := strings.TrimSpace(u.Loc); loc != "" {
			locs = append(locs, loc)
		}
	}
	return locs, nil
}

// links returns every navigable href in html resolved against pageURL.
func links(html, pageURL string) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil
	}

	var out []string
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href := strings.TrimSpace(s.AttrOr("href", ""))
		if href == "" || strings.HasPrefix(href, "#") {
			return
		}
		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		abs := base.ResolveReference(ref)
		if abs.Scheme != "http" && abs.Scheme != "https" {
			return
		}
		abs.Fragment = ""
		out = append(out, abs.String())
	})
	return out
}
