package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFrameUnmarshal(t *testing.T) {
	var f Frame
	require.NoError(t, json.Unmarshal([]byte(`{"site_title": "S", "nav_title": "N", "custom": 3, "page_title": null}`), &f))
	require.Equal(t, "S", f.SiteTitle)
	require.Equal(t, "N", f.NavTitle)
	require.Empty(t, f.PageTitle)
	require.Equal(t, 3.0, f.Get("custom"))
	require.Equal(t, "S", f.Get("site_title"))
	require.Empty(t, f.Text("custom"))

	err := json.Unmarshal([]byte(`{"site_title": 1}`), &f)
	require.ErrorContains(t, err, "site_title")
}

func TestFrameMerge(t *testing.T) {
	base := Frame{SiteTitle: "Base", FooterText: "foot", Extra: map[string]any{"a": 1, "b": 2}}
	over := Frame{SiteTitle: "Over", NavTitle: "Nav", Extra: map[string]any{"b": 3}}

	got := base.Merge(over)
	require.Equal(t, "Over", got.SiteTitle)
	require.Equal(t, "Nav", got.NavTitle)
	require.Equal(t, "foot", got.FooterText)
	require.Equal(t, map[string]any{"a": 1, "b": 3}, got.Extra)
	// Merge does not touch its inputs.
	require.Equal(t, 2, base.Extra["b"])
}

func TestDataTreeFrameLayers(t *testing.T) {
	conf := newFixture(t)
	d := dataTree{root: conf.DataDir}

	home, err := d.frame(sectionHome, false)
	require.NoError(t, err)
	require.Equal(t, "Test Site", home.SiteTitle)
	require.Equal(t, "Me", home.NavLogo)
	require.Empty(t, home.NavTitle)

	blog, err := d.frame(sectionBlog, true)
	require.NoError(t, err)
	require.Equal(t, "Test Site", blog.SiteTitle)
	require.Equal(t, "Blog", blog.NavTitle)
	require.Equal(t, "Writing", blog.PageTitle)
	require.Equal(t, "ICP-1", blog.ICPNumber)

	_, err = d.frame(sectionStack, true)
	require.Error(t, err)
	require.Equal(t, kindConfig, kindOf(err))

	stack, err := d.frame(sectionStack, false)
	require.NoError(t, err)
	require.Equal(t, "Test Site", pageTitle(stack))
}

func TestDataTreeDefaults(t *testing.T) {
	d := dataTree{root: t.TempDir()}

	f, err := d.frame(sectionHome, false)
	require.NoError(t, err)
	require.Equal(t, "Personal Homepage", f.SiteTitle)
	require.Equal(t, "Home", f.NavLogo)

	require.Equal(t, defaultHero(), d.hero())
	require.Equal(t, targetNames(), d.order())

	_, err = d.title(sectionBlog)
	require.Equal(t, kindConfig, kindOf(err))
}

func TestDataTreeHeroKeepsDefaults(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "title.json"), `{"hero_title": "Hi"}`)
	h := dataTree{root: root}.hero()
	require.Equal(t, "Hi", h.Title)
	require.Equal(t, "Learn more", h.ButtonText)

	writeFile(t, filepath.Join(root, "title.json"), `[`)
	require.Equal(t, defaultHero(), dataTree{root: root}.hero())
}

func TestBuildNav(t *testing.T) {
	conf := newFixture(t)
	d := dataTree{root: conf.DataDir}

	nav, err := buildNav(d)
	require.NoError(t, err)
	require.Equal(t, []NavEntry{
		{ID: "home", Title: "Me", Href: "#home"},
		{ID: "resume", Title: "Resume", Href: "#resume"},
		{ID: "blog", Title: "Blog", Href: "#blog-preview"},
		{ID: "project", Title: "Projects", Href: "#projects"},
		{ID: "docs", Title: "Docs", Href: "#docs"},
	}, nav)

	writeFile(t, filepath.Join(conf.DataDir, "order.json"), `["blog", "home"]`)
	nav, err = buildNav(d)
	require.NoError(t, err)
	require.Len(t, nav, 2)
	require.Equal(t, "blog", nav[0].ID)

	require.NoError(t, os.Remove(filepath.Join(conf.DataDir, "order.json")))
	nav, err = buildNav(d)
	require.NoError(t, err)
	require.Len(t, nav, 5)
}

func TestNavFor(t *testing.T) {
	entries := []NavEntry{{ID: "home", Href: "#home"}, {ID: "blog", Href: "#blog-preview"}}

	got := navFor(entries, "blog", "")
	require.Equal(t, "#home", got[0].Href)
	require.False(t, got[0].Active)
	require.True(t, got[1].Active)

	got = navFor(entries, "blog", "../../")
	require.Equal(t, "../../home.html#blog-preview", got[1].Href)
	// The shared entries are not modified.
	require.Equal(t, "#blog-preview", entries[1].Href)
	require.False(t, entries[1].Active)
}
