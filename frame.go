package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"maps"
	"path/filepath"
)

// Frame holds the presentation settings shared by a page: titles, navigation
// labels and footer text. Keys that have no field of their own end up in Extra.
type Frame struct {
	SiteTitle     string
	NavLogo       string
	NavTitle      string
	PageTitle     string
	FooterText    string
	FooterTagline string
	ICPNumber     string
	Extra         map[string]any
}

var frameKeys = []string{"site_title", "nav_logo", "nav_title", "page_title", "footer_text", "footer_tagline", "icp_number"}

func (f *Frame) field(key string) *string {
	switch key {
	case "site_title":
		return &f.SiteTitle
	case "nav_logo":
		return &f.NavLogo
	case "nav_title":
		return &f.NavTitle
	case "page_title":
		return &f.PageTitle
	case "footer_text":
		return &f.FooterText
	case "footer_tagline":
		return &f.FooterTagline
	case "icp_number":
		return &f.ICPNumber
	}
	return nil
}

func (f *Frame) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for k, v := range raw {
		if dst := f.field(k); dst != nil {
			s, ok := v.(string)
			if !ok && v != nil {
				return fmt.Errorf("frame key %q: expected string, got %T", k, v)
			}
			*dst = s
			continue
		}
		if f.Extra == nil {
			f.Extra = make(map[string]any)
		}
		f.Extra[k] = v
	}
	return nil
}

// Get returns the value of key, looking at the named fields first. Called
// from templates.
func (f Frame) Get(key string) any {
	if dst := f.field(key); dst != nil {
		return *dst
	}
	return f.Extra[key]
}

// Text returns the string value of key or "".
func (f Frame) Text(key string) string {
	s, _ := f.Get(key).(string)
	return s
}

// Merge returns f overridden by every non-empty field of over.
func (f Frame) Merge(over Frame) Frame {
	out := f
	for _, k := range frameKeys {
		if v := *over.field(k); v != "" {
			*out.field(k) = v
		}
	}
	out.Extra = make(map[string]any, len(f.Extra)+len(over.Extra))
	maps.Copy(out.Extra, f.Extra)
	maps.Copy(out.Extra, over.Extra)
	return out
}

func defaultFrame() Frame {
	return Frame{
		SiteTitle:  "Personal Homepage",
		NavLogo:    "Home",
		FooterText: "© Personal Homepage",
		Extra:      map[string]any{},
	}
}

// hero is the landing block at the top of the home page.
type hero struct {
	Title      string `json:"hero_title"`
	Subtitle   string `json:"hero_subtitle"`
	ButtonText string `json:"hero_button_text"`
	ButtonLink string `json:"hero_button_link"`
}

func defaultHero() hero {
	return hero{
		Title:      "Welcome",
		Subtitle:   "This is my personal homepage",
		ButtonText: "Learn more",
		ButtonLink: "#resume",
	}
}

// dataTree resolves the JSON files of the data directory.
type dataTree struct {
	root string
}

func (d dataTree) sectionDir(section string) string {
	if section == sectionHome {
		return d.root
	}
	return filepath.Join(d.root, section)
}

func (d dataTree) path(section, name string) string {
	return filepath.Join(d.sectionDir(section), name)
}

// frame returns the layered frame of a section: built-in defaults, then
// data/frame.json, then data/<section>/frame.json. A missing section frame is
// an error only when required is set.
func (d dataTree) frame(section string, required bool) (Frame, error) {
	f := defaultFrame()

	global, err := d.readFrame(filepath.Join(d.root, "frame.json"))
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return Frame{}, configError(section, filepath.Join(d.root, "frame.json"), err)
	default:
		f = f.Merge(global)
	}

	if section == sectionHome {
		return f, nil
	}

	p := d.path(section, "frame.json")
	page, err := d.readFrame(p)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if required {
			return Frame{}, configError(section, p, err)
		}
	case err != nil:
		return Frame{}, configError(section, p, err)
	default:
		f = f.Merge(page)
	}
	return f, nil
}

func (d dataTree) readFrame(path string) (Frame, error) {
	var f Frame
	err := loadJSON(path, &f)
	return f, err
}

// title loads the title.json of a section; for home it is data/title.json.
func (d dataTree) title(section string) (map[string]any, error) {
	p := d.path(section, "title.json")
	var t map[string]any
	if err := loadJSON(p, &t); err != nil {
		return nil, configError(section, p, err)
	}
	if t == nil {
		t = map[string]any{}
	}
	return t, nil
}

// hero reads the home hero from data/title.json, keeping defaults for
// missing keys.
func (d dataTree) hero() hero {
	h := defaultHero()
	p := d.path(sectionHome, "title.json")
	err := loadJSON(p, &h)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		slog.Debug("No home title, using defaults", logPath(p))
	case err != nil:
		slog.Warn("Ignoring broken home title", logPath(p), logErr(err))
		return defaultHero()
	}
	return h
}

// order returns data/order.json, or the registry order when it is absent.
func (d dataTree) order() []string {
	p := filepath.Join(d.root, "order.json")
	var order []string
	err := loadJSON(p, &order)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return targetNames()
	case err != nil:
		slog.Warn("Ignoring broken navigation order", logPath(p), logErr(err))
		return targetNames()
	}
	return order
}

// NavEntry is one link of the site navigation.
type NavEntry struct {
	ID     string
	Title  string
	Href   string
	Active bool
}

func navAnchor(section string) string {
	switch section {
	case sectionHome:
		return "#home"
	case sectionResume:
		return "#resume"
	case sectionBlog:
		return "#blog-preview"
	case sectionProject:
		return "#projects"
	}
	return "#" + section
}

// buildNav cross-references order.json with each section's nav_title.
// Sections without a nav title are left out.
func buildNav(d dataTree) ([]NavEntry, error) {
	home, err := d.frame(sectionHome, false)
	if err != nil {
		return nil, err
	}

	entries := make([]NavEntry, 0, len(targetNames()))
	for _, section := range d.order() {
		if section == sectionHome {
			entries = append(entries, NavEntry{ID: section, Title: home.NavLogo, Href: navAnchor(section)})
			continue
		}
		f, err := d.frame(section, false)
		if err != nil {
			slog.Warn("Skipping navigation entry", logSection(section), logErr(err))
			continue
		}
		if f.NavTitle == "" {
			continue
		}
		entries = append(entries, NavEntry{ID: section, Title: f.NavTitle, Href: navAnchor(section)})
	}
	return entries, nil
}

// navFor marks the active entry and makes anchors point back to the home
// page when the page is not at the site root.
func navFor(entries []NavEntry, active, root string) []NavEntry {
	out := make([]NavEntry, len(entries))
	for i, e := range entries {
		e.Active = e.ID == active
		if root != "" {
			e.Href = root + "home.html" + e.Href
		}
		out[i] = e
	}
	return out
}
