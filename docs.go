package main

import (
	"html/template"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
)

const docsFilesDir = "files"

var docIcons = map[string]string{
	"pdf":  "fa-file-pdf",
	"docx": "fa-file-word",
	"doc":  "fa-file-word",
	"md":   "fa-file-code",
	"txt":  "fa-file-text",
	"jpg":  "fa-file-image",
	"png":  "fa-file-image",
	"zip":  "fa-file-archive",
}

type docFile struct {
	Name   string
	Title  string
	Size   string
	Icon   string
	Exists bool
	// URL is relative to docs/index.html.
	URL string
}

type docGroup struct {
	Name  string
	Files []docFile
}

type docsPageParam struct {
	Frame    Frame
	Title    string
	Subtitle string
	Meta     map[string]any
	Groups   []docGroup
	Root     string
}

type docsPreviewParam struct {
	Title    string
	Subtitle string
	Meta     map[string]any
	URL      string
}

func docIcon(name string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	if icon, ok := docIcons[ext]; ok {
		return icon
	}
	return "fa-file"
}

// docsSection lists downloadable files grouped as in files.json and copies
// the existing ones to docs/files.
type docsSection struct{}

func (docsSection) Name() string { return sectionDocs }

func (docsSection) OutputDir() string { return sectionDocs }

func (docsSection) Generate(s *Site) error {
	title, err := s.data.title(sectionDocs)
	if err != nil {
		return err
	}
	groups, err := loadDocGroups(s.data)
	if err != nil {
		return err
	}
	frame, err := s.data.frame(sectionDocs, false)
	if err != nil {
		return err
	}

	const root = "../"
	content, err := s.engine.render("sections/docs/page.html", docsPageParam{
		Frame:    frame,
		Title:    stringField(title, "title"),
		Subtitle: stringField(title, "subtitle"),
		Meta:     title,
		Groups:   groups,
		Root:     root,
	})
	if err != nil {
		return err
	}
	page, err := s.composePage(sectionDocs, root, pageTitle(frame), frame, content)
	if err != nil {
		return err
	}
	if err := s.write(sectionDocs, "docs/index.html", page); err != nil {
		return err
	}

	for _, g := range groups {
		for _, f := range g.Files {
			if !f.Exists {
				s.warn(sectionDocs, "Listed file does not exist", logPath(f.Name))
				continue
			}
			src := s.data.path(sectionDocs, f.Name)
			if err := copyFile(src, s.outPath(sectionDocs, docsFilesDir, filepath.FromSlash(f.Name))); err != nil {
				return err
			}
		}
	}
	return nil
}

func loadDocGroups(d dataTree) ([]docGroup, error) {
	p := d.path(sectionDocs, "files.json")
	var byCategory orderedObject
	if err := loadJSON(p, &byCategory); err != nil {
		return nil, configError(sectionDocs, p, err)
	}

	groups := make([]docGroup, 0, len(byCategory))
	for _, cat := range byCategory {
		var files orderedObject
		if err := files.UnmarshalJSON(cat.Raw); err != nil {
			return nil, configError(sectionDocs, p, err)
		}
		g := docGroup{Name: cat.Key, Files: make([]docFile, 0, len(files))}
		for _, f := range files {
			if !isLocalName(f.Key) {
				slog.Warn("Skipping file outside the docs directory", logSection(sectionDocs), logPath(f.Key))
				continue
			}
			g.Files = append(g.Files, docFileInfo(d, f.Key, f.String()))
		}
		groups = append(groups, g)
	}
	return groups, nil
}

func docFileInfo(d dataTree, name, title string) docFile {
	f := docFile{
		Name:  name,
		Title: title,
		Size:  "unknown",
		Icon:  docIcon(name),
		URL:   path.Join(docsFilesDir, name),
	}
	info, err := os.Stat(d.path(sectionDocs, name))
	if err == nil && !info.IsDir() {
		f.Exists = true
		f.Size = humanize.IBytes(uint64(info.Size()))
	}
	return f
}

func (docsSection) Preview(s *Site) (template.HTML, error) {
	title, err := s.data.title(sectionDocs)
	if err != nil {
		return "", err
	}
	return s.engine.render("home/docs_preview.html", docsPreviewParam{
		Title:    stringField(title, "title"),
		Subtitle: stringField(title, "subtitle"),
		Meta:     title,
		URL:      "docs/index.html",
	})
}
