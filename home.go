package main

import (
	"bytes"
	"html/template"
	"path/filepath"
)

// homeSection writes home.html: the hero followed by the preview of every
// other section. It also writes the 404 page and the shared static files.
type homeSection struct{}

func (homeSection) Name() string { return sectionHome }

func (h homeSection) Generate(s *Site) error {
	if err := h.writeHome(s); err != nil {
		return err
	}
	if err := s.write404(); err != nil {
		return err
	}

	var css bytes.Buffer
	if err := writeHighlightCSS(&css, s.conf.Markdown.HighlightStyle); err != nil {
		return renderError("highlight.css", err)
	}
	if err := s.write(sectionHome, "static/highlight.css", css.Bytes()); err != nil {
		return err
	}
	return copyStaticFiles(filepath.Join(s.conf.DataDir, "static"), s.outPath("static"))
}

// writeHome renders home.html only. Other sections call it to refresh their
// preview.
func (homeSection) writeHome(s *Site) error {
	frame, err := s.data.frame(sectionHome, false)
	if err != nil {
		return err
	}

	heroHTML, err := s.engine.render("hero.html", heroParam{Hero: s.data.hero()})
	if err != nil {
		return err
	}
	var content bytes.Buffer
	content.WriteString(string(heroHTML))
	for _, sec := range s.sections {
		p, ok := sec.(previewer)
		if !ok {
			continue
		}
		fragment, err := p.Preview(s)
		if err != nil {
			s.warn(sec.Name(), "Leaving preview out of the home page", logErr(err))
			continue
		}
		content.WriteString(string(fragment))
	}

	page, err := s.composePage(sectionHome, "", frame.SiteTitle, frame, template.HTML(content.String()))
	if err != nil {
		return err
	}
	return s.write(sectionHome, "home.html", page)
}

func (s *Site) write404() error {
	frame, err := s.data.frame(sectionHome, false)
	if err != nil {
		return err
	}
	page, err := s.engine.renderBytes("404.html", pageParam{SiteTitle: frame.SiteTitle, Page: "404"})
	if err != nil {
		return err
	}
	return s.write(sectionHome, "404.html", page)
}
