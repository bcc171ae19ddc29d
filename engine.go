// homesite is a static personal website generator. It reads JSON metadata
// and Markdown from a data directory, renders them through html/template
// templates and writes the finished pages and their assets to an output
// directory.
//
// The site has sections: home, resume, blog, project, docs, stack and
// contact. Blog and project are collections of items, one directory each
// with a card.json and an optional content.md. The other sections are driven
// by a handful of JSON files.
//
// You need to provide your own templates.
package main

import (
	"html/template"
	"log/slog"
	"path/filepath"
)

type Site struct {
	conf     *SiteConf
	data     dataTree
	engine   *templateEngine
	recorder Recorder
	sections []section

	nav     []NavEntry
	navErr  error
	navRead bool
}

// NewSite prepares a generation run. Nothing is read until a section runs;
// every run reads its data fresh.
func NewSite(conf *SiteConf, recorder Recorder) *Site {
	if recorder == nil {
		recorder = NoopRecorder{}
	}
	return &Site{
		conf:     conf,
		data:     dataTree{root: conf.DataDir},
		engine:   newTemplateEngine(newMarkdownRenderer(conf.Markdown), conf.TemplateDir),
		recorder: recorder,
		sections: registry(conf),
	}
}

func (s *Site) outPath(elem ...string) string {
	return filepath.Join(append([]string{s.conf.OutDir}, elem...)...)
}

// section returns the registered section with the given name.
func (s *Site) section(name string) (section, bool) {
	for _, sec := range s.sections {
		if sec.Name() == name {
			return sec, true
		}
	}
	return nil, false
}

func (s *Site) navigation() ([]NavEntry, error) {
	if !s.navRead {
		s.nav, s.navErr = buildNav(s.data)
		s.navRead = true
	}
	return s.nav, s.navErr
}

// standardNav renders nav.html for a page at the given depth.
func (s *Site) standardNav(active, root string, frame Frame) (template.HTML, error) {
	nav, err := s.navigation()
	if err != nil {
		return "", err
	}
	return s.engine.render("nav.html", navParam{
		NavLogo: frame.NavLogo,
		Items:   navFor(nav, active, root),
		Root:    root,
		Current: active,
	})
}

func (s *Site) footer(page, root string, frame Frame) (template.HTML, error) {
	return s.engine.render("footer.html", footerParam{
		FooterText:    frame.FooterText,
		FooterTagline: frame.FooterTagline,
		ICPNumber:     frame.ICPNumber,
		Page:          page,
		Root:          root,
	})
}

// composePage wraps content into base.html with the standard navigation and
// footer.
func (s *Site) composePage(page, root, title string, frame Frame, content template.HTML) ([]byte, error) {
	nav, err := s.standardNav(page, root, frame)
	if err != nil {
		return nil, err
	}
	return s.composePageWithNav(page, root, title, frame, nav, content)
}

func (s *Site) composePageWithNav(page, root, title string, frame Frame, nav, content template.HTML) ([]byte, error) {
	footer, err := s.footer(page, root, frame)
	if err != nil {
		return nil, err
	}
	return s.engine.renderBytes("base.html", pageParam{
		SiteTitle: title,
		Root:      root,
		Page:      page,
		Nav:       nav,
		Content:   content,
		Footer:    footer,
	})
}

// write stores a page below the output directory.
func (s *Site) write(section string, rel string, content []byte) error {
	p := s.outPath(filepath.FromSlash(rel))
	if err := writePage(p, content); err != nil {
		return err
	}
	s.recorder.IncPagesWritten(section)
	slog.Debug("Wrote page", logSection(section), logPath(p))
	return nil
}

// warn logs a problem that does not stop the current section.
func (s *Site) warn(section, msg string, args ...any) {
	s.recorder.IncWarnings(section)
	slog.Warn(msg, append([]any{logSection(section)}, args...)...)
}

// pageTitle is the browser title of a section page.
func pageTitle(f Frame) string {
	if f.PageTitle != "" {
		return f.PageTitle
	}
	return f.SiteTitle
}
