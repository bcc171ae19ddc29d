package main

import (
	"fmt"
	"log/slog"
	"path"
	"strings"
	"time"
	"unicode/utf8"

	atom "github.com/thomas11/atomgenerator"
	"golang.org/x/net/html"
)

const excerptLength = 200

// generateFeed writes <section>/index.xml with one entry per item that has a
// parseable date. The feed date is the newest entry date so unchanged input
// yields an unchanged feed.
func (s *Site) generateFeed(section string, frame Frame, its items, docs map[string]renderedDoc) error {
	xml, err := s.renderFeed(pageTitle(frame), section+"/", section, its, docs)
	if err != nil {
		return err
	}
	if xml == nil {
		slog.Debug("No dated items, skipping feed", logSection(section))
		return nil
	}
	return s.write(section, path.Join(section, "index.xml"), xml)
}

func (s *Site) renderFeed(title, relUrl, section string, its items, docs map[string]renderedDoc) ([]byte, error) {
	feedUrl := s.conf.BaseURL + strings.TrimPrefix(relUrl, "/")

	feed := atom.Feed{
		Title: title,
		Link:  feedUrl,
	}
	feed.AddAuthor(atom.Author{
		Name: s.conf.Author,
		Uri:  s.conf.AuthorURI,
	})

	var newest time.Time
	for _, it := range its {
		date, err := parseItemDate(it.Date)
		if err != nil {
			slog.Debug("Leaving item out of the feed", logSection(section), logItem(it.ID), logErr(err))
			continue
		}
		if date.After(newest) {
			newest = date
		}
		feed.AddEntry(s.entryForItem(section, it, date, docs[it.ID]))
	}
	if newest.IsZero() {
		return nil, nil
	}
	feed.PubDate = newest

	errs := feed.Validate()
	if len(errs) > 0 {
		for _, e := range errs {
			slog.Error("Atom feed is not valid", logSection(section), logErr(e))
		}
		return nil, contentError(section, "index.xml", errs[0])
	}

	return feed.GenXml()
}

func (s *Site) entryForItem(section string, it Item, date time.Time, doc renderedDoc) *atom.Entry {
	link := s.conf.BaseURL + path.Join(section, "index.html")
	if it.HasBody() {
		link = s.conf.BaseURL + path.Join(section, it.ID, itemPageName)
	}

	e := &atom.Entry{
		Title:       it.Title,
		Description: it.Summary,
		Link:        link,
		PubDate:     date,
		Content:     string(doc.HTML),
	}
	if e.Description == "" {
		e.Description = excerpt(string(doc.HTML), excerptLength)
	}
	if e.Content == "" {
		e.Content = html.EscapeString(e.Description)
	}

	if it.Category != "" {
		e.AddCategory(atom.Category{Term: it.Category})
	}
	for _, tag := range it.Tags {
		e.AddCategory(atom.Category{Term: tag})
	}
	return e
}

func parseItemDate(d string) (time.Time, error) {
	for _, layout := range []string{time.DateOnly, time.RFC3339} {
		if t, err := time.Parse(layout, d); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported date %q", d)
}

// excerpt returns the first n characters of the text content of an HTML
// fragment, with whitespace collapsed.
func excerpt(fragment string, n int) string {
	z := html.NewTokenizer(strings.NewReader(fragment))
	var b strings.Builder
	skip := 0
	for {
		switch z.Next() {
		case html.ErrorToken:
			return truncate(strings.Join(strings.Fields(b.String()), " "), n)
		case html.StartTagToken:
			if name, _ := z.TagName(); isHiddenTag(string(name)) {
				skip++
			}
		case html.EndTagToken:
			if name, _ := z.TagName(); isHiddenTag(string(name)) && skip > 0 {
				skip--
			}
		case html.TextToken:
			if skip == 0 {
				b.Write(z.Text())
				b.WriteByte(' ')
			}
		}
	}
}

func isHiddenTag(name string) bool {
	return name == "script" || name == "style"
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return strings.TrimSpace(string(r[:n])) + "…"
}
