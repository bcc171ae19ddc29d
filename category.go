package main

import (
	"bytes"
	"cmp"
	"errors"
	"io/fs"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"
)

const categoriesFileName = "categories.json"

// Category groups the items of a section. Declared in categories.json or
// synthesized from the category field of the items.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

func (c Category) String() string { return c.Name }

// categoryID turns a category name into a path segment.
func categoryID(name string) string { return strings.ReplaceAll(strings.TrimSpace(name), " ", "_") }

// validCategoryID reports whether id can be used as a single directory name.
func validCategoryID(id string) bool {
	if id == "" || id == "." || id == ".." {
		return false
	}
	return !strings.ContainsAny(id, `/\`) && filepath.Base(id) == id
}

type categoryWithItems struct {
	Category Category
	Items    items
}

// Called from templates
func (c categoryWithItems) Count() int { return len(c.Items) }

// Called from templates
func (c categoryWithItems) LatestDate() string { return c.Items.latestDate() }

// Items grouped by category. Declared categories come first in declaration
// order, the rest by number of items, then by newest item.
type itemsByCategory []categoryWithItems

func (ic *itemsByCategory) addItem(c Category, it Item) {
	for i, cat := range *ic {
		if cat.Category.ID == c.ID {
			cat.Items = append(cat.Items, it)
			(*ic)[i] = cat
			return
		}
	}
	*ic = append(*ic, categoryWithItems{Category: c, Items: items{it}})
}

func (ic itemsByCategory) String() string {
	b := new(bytes.Buffer)
	for _, c := range ic {
		b.WriteString(c.Category.String())
		b.WriteString(": ")
		for i, it := range c.Items {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(it.Title)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// loadCategories reads the optional categories.json of a section.
func loadCategories(section, dir string) ([]Category, error) {
	p := filepath.Join(dir, categoriesFileName)
	var cats []Category
	err := loadJSON(p, &cats)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, configError(section, p, err)
	}
	for i, c := range cats {
		if c.ID == "" {
			c.ID = categoryID(c.Name)
		}
		if c.Name == "" {
			c.Name = c.ID
		}
		cats[i] = c
	}
	return cats, nil
}

// groupByCategory groups sorted items. Declared categories without items are
// dropped. Categories with an ID that is not a safe path segment are skipped.
func groupByCategory(section string, its items, declared []Category) itemsByCategory {
	byID := make(map[string]Category, len(declared))
	byName := make(map[string]string, len(declared))
	rank := make(map[string]int, len(declared))
	for i, c := range declared {
		byID[c.ID] = c
		byName[c.Name] = c.ID
		rank[c.ID] = i
	}

	byCat := make(itemsByCategory, 0, len(declared)+4)
	for _, it := range its {
		if it.Category == "" {
			continue
		}
		id, ok := byName[it.Category]
		if !ok {
			id = categoryID(it.Category)
		}
		if !validCategoryID(id) {
			slog.Warn("Skipping invalid category", logSection(section), logItem(it.ID), slog.String("category", it.Category))
			continue
		}
		c, ok := byID[id]
		if !ok {
			c = Category{ID: id, Name: it.Category}
		}
		byCat.addItem(c, it)
	}

	slices.SortStableFunc(byCat, func(a, b categoryWithItems) int {
		ra, aDeclared := rank[a.Category.ID]
		rb, bDeclared := rank[b.Category.ID]
		switch {
		case aDeclared && bDeclared:
			return cmp.Compare(ra, rb)
		case aDeclared:
			return -1
		case bDeclared:
			return 1
		}
		// More items = comes first (descending order)
		if c := cmp.Compare(len(b.Items), len(a.Items)); c != 0 {
			return c
		}
		// If equal item count, newer comes first
		if c := cmp.Compare(b.Items.latestDate(), a.Items.latestDate()); c != 0 {
			return c
		}
		return cmp.Compare(a.Category.ID, b.Category.ID)
	})

	return byCat
}
