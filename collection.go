package main

import (
	"errors"
	"fmt"
	"html/template"
	"path"
)

// collectionConfig parameterizes the item pipeline shared by blog and
// project.
type collectionConfig struct {
	name         string
	accepted     set[string]
	previewLimit int
	feed         bool
}

func blogConfig(conf *SiteConf) collectionConfig {
	return collectionConfig{
		name:         sectionBlog,
		accepted:     newSet("published"),
		previewLimit: conf.PreviewLimit,
		feed:         true,
	}
}

func projectConfig(conf *SiteConf) collectionConfig {
	return collectionConfig{
		name:         sectionProject,
		accepted:     newSet("published", "completed", "in-development"),
		previewLimit: conf.PreviewLimit,
	}
}

// collection renders a directory of items: a card and an item page per item,
// a list page, one page per category and, for the blog, an Atom feed.
type collection struct {
	collectionConfig
}

func newCollection(c collectionConfig) *collection {
	if c.previewLimit <= 0 {
		c.previewLimit = defaultPreviewLimit
	}
	return &collection{collectionConfig: c}
}

func (c *collection) Name() string { return c.name }

func (c *collection) OutputDir() string { return c.name }

func (c *collection) load(s *Site) (items, error) {
	return loadItems(c.name, s.data.sectionDir(c.name), c.accepted)
}

func (c *collection) Generate(s *Site) error {
	frame, err := s.data.frame(c.name, true)
	if err != nil {
		return err
	}
	its, err := c.load(s)
	if err != nil {
		return err
	}
	s.recorder.SetItems(c.name, len(its))

	declared, err := loadCategories(c.name, s.data.sectionDir(c.name))
	if err != nil {
		s.warn(c.name, "Ignoring category declarations", logErr(err))
	}

	var failed []error
	docs := make(map[string]renderedDoc, len(its))
	for _, it := range its {
		doc, err := c.generateItem(s, frame, it)
		if err != nil {
			s.warn(c.name, "Item failed", logItem(it.ID), logErr(err))
			failed = append(failed, err)
			continue
		}
		docs[it.ID] = doc
	}

	byCat := groupByCategory(c.name, its, declared)
	if err := c.generateList(s, frame, its, byCat); err != nil {
		return err
	}
	for _, cat := range byCat {
		if err := c.generateCategory(s, frame, cat); err != nil {
			s.warn(c.name, "Category page failed", logPath(cat.Category.ID), logErr(err))
			failed = append(failed, err)
		}
	}

	if c.feed && s.conf.BaseURL != "" {
		if err := s.generateFeed(c.name, frame, its, docs); err != nil {
			failed = append(failed, err)
		}
	}

	if len(failed) > 0 {
		return fmt.Errorf("%s: %d of its pages failed: %w", c.name, len(failed), errors.Join(failed...))
	}
	return nil
}

// generateItem writes card.html, copies the assets and, for items with a
// body, writes content.html. It returns the rendered body.
func (c *collection) generateItem(s *Site, frame Frame, it Item) (renderedDoc, error) {
	card := it.rewrite("")
	rel := path.Join(c.name, it.ID)

	cardHTML, err := s.engine.renderBytes("components/card.html", cardParam{Card: card, Section: c.name})
	if err != nil {
		return renderedDoc{}, err
	}
	if err := s.write(c.name, path.Join(rel, cardPageName), cardHTML); err != nil {
		return renderedDoc{}, err
	}
	if err := copyItemAssets(it, s.outPath(c.name, it.ID)); err != nil {
		return renderedDoc{}, err
	}

	if !it.HasBody() {
		return renderedDoc{}, nil
	}

	doc, err := s.engine.renderMarkdown(it.Body)
	if err != nil {
		return renderedDoc{}, err
	}
	const root = "../../"
	content, err := s.engine.render("components/article.html", articleParam{
		Card:    card,
		Content: doc.HTML,
		TOC:     doc.TOC,
		Section: c.name,
		Frame:   frame,
		Root:    root,
	})
	if err != nil {
		return renderedDoc{}, err
	}
	page, err := s.composePage(c.name, root, card.Title, frame, content)
	if err != nil {
		return renderedDoc{}, err
	}
	return doc, s.write(c.name, path.Join(rel, itemPageName), page)
}

func (c *collection) generateList(s *Site, frame Frame, its items, byCat itemsByCategory) error {
	fromList := func(it Item) string { return it.ID }
	cats := make(itemsByCategory, len(byCat))
	for i, cat := range byCat {
		cats[i] = categoryWithItems{Category: cat.Category, Items: cat.Items.rewrite(fromList)}
	}

	const root = "../"
	content, err := s.engine.render(path.Join("sections", c.name, "list.html"), listParam{
		Frame:      frame,
		Section:    c.name,
		Items:      its.rewrite(fromList),
		Total:      len(its),
		Categories: cats,
		Root:       root,
	})
	if err != nil {
		return err
	}
	page, err := s.composePage(c.name, root, pageTitle(frame), frame, content)
	if err != nil {
		return err
	}
	return s.write(c.name, path.Join(c.name, "index.html"), page)
}

func (c *collection) generateCategory(s *Site, frame Frame, cat categoryWithItems) error {
	const root = "../../../"
	fromCategory := func(it Item) string { return path.Join("../..", it.ID) }
	content, err := s.engine.render(path.Join("sections", c.name, "category.html"), categoryParam{
		Frame:    frame,
		Section:  c.name,
		Category: cat.Category,
		Items:    cat.Items.rewrite(fromCategory),
		Root:     root,
	})
	if err != nil {
		return err
	}
	page, err := s.composePage(c.name, root, cat.Category.Name, frame, content)
	if err != nil {
		return err
	}
	return s.write(c.name, path.Join(c.name, "category", cat.Category.ID, "index.html"), page)
}

// Preview renders the latest items for the home page.
func (c *collection) Preview(s *Site) (template.HTML, error) {
	title, err := s.data.title(c.name)
	if err != nil {
		return "", err
	}
	its, err := c.load(s)
	if err != nil {
		return "", err
	}
	shown, more := its.head(c.previewLimit)
	return s.engine.render(path.Join("home", c.name+"_preview.html"), collectionPreviewParam{
		Title:    stringField(title, "title"),
		Subtitle: stringField(title, "subtitle"),
		Meta:     title,
		Section:  c.name,
		Items:    shown.rewrite(func(it Item) string { return path.Join(c.name, it.ID) }),
		Total:    len(its),
		HasMore:  more,
		URL:      path.Join(c.name, "index.html"),
	})
}
