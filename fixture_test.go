package main

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	// #nosec G304 -- path is controlled by test.
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(b)
}

func requireExists(t *testing.T, path string) {
	t.Helper()
	_, err := os.Stat(path)
	require.NoError(t, err, "expected %s to exist", path)
}

func requireMissing(t *testing.T, path string) {
	t.Helper()
	_, err := os.Stat(path)
	require.ErrorIs(t, err, fs.ErrNotExist, "expected %s to be missing", path)
}

func testTemplateDir(t *testing.T) string {
	t.Helper()
	dir, err := filepath.Abs(filepath.Join("testdata", "templates"))
	require.NoError(t, err)
	return dir
}

// newFixture lays out a data tree covering every section and returns a
// configuration generating into a fresh output directory.
func newFixture(t *testing.T) *SiteConf {
	t.Helper()
	dir := t.TempDir()
	data := filepath.Join(dir, "data")
	f := func(rel, content string) { writeFile(t, filepath.Join(data, filepath.FromSlash(rel)), content) }

	f("frame.json", `{"site_title": "Test Site", "nav_logo": "Me", "footer_text": "© Me", "icp_number": "ICP-1"}`)
	f("order.json", `["home", "resume", "blog", "project", "docs", "stack", "contact"]`)
	f("title.json", `{"hero_title": "Hello there"}`)
	f("static/site.css", `body {}`)

	f("resume/frame.json", `{"nav_title": "Resume", "page_title": "My Resume",
		"nav_buttons": [{"href": "resume.pdf", "icon": "fa-download", "text": "Download"}]}`)
	f("resume/title.json", `{"title": "About me", "subtitle": "Curriculum vitae"}`)
	f("resume/resume.pdf", "%PDF-1.4")

	f("blog/frame.json", `{"nav_title": "Blog", "page_title": "Writing"}`)
	f("blog/title.json", `{"title": "Latest posts"}`)
	f("blog/categories.json", `[{"id": "Go", "name": "Go", "description": "Posts about Go"}]`)
	f("blog/first-post/card.json", `{"title": "First", "summary": "The first one", "status": "published",
		"date": "2024-01-01", "image": "cover.png", "category": "Go", "tags": ["go", "intro"]}`)
	f("blog/first-post/content.md", "# Hello\n\nSome math: $x^2$.\n\n## Details\n\nMore text.\n")
	f("blog/first-post/cover.png", "png")
	f("blog/first-post/img/diagram.svg", "<svg/>")
	f("blog/second-post/card.json", `{"title": "Second", "summary": "Another one", "status": "published",
		"date": "2024-06-15", "image": "https://example.com/x.png", "category": "Life"}`)
	f("blog/second-post/content.md", "Second body.\n")
	f("blog/old-post/card.json", `{"title": "Old", "summary": "No body", "status": "published", "date": "2023-12-31"}`)
	f("blog/draft/card.json", `{"title": "Secret Draft", "status": "draft", "date": "2025-01-01"}`)
	f("blog/draft/content.md", "Not yet.\n")
	f("blog/broken/card.json", `{"title": `)
	f("blog/no-card/content.md", "orphan\n")

	f("project/frame.json", `{"nav_title": "Projects", "page_title": "Projects"}`)
	f("project/title.json", `{"title": "Things I built"}`)
	f("project/tool/card.json", `{"title": "Tool", "summary": "A CLI", "status": "in-development",
		"date": "2024-03-01", "category": "CLI"}`)
	f("project/tool/content.md", "## Tool\n\n```go\nfunc main() {}\n```\n")
	f("project/idea/card.json", `{"title": "Idea", "status": "planned", "date": "2024-04-01"}`)

	f("docs/frame.json", `{"nav_title": "Docs"}`)
	f("docs/title.json", `{"title": "Documents", "subtitle": "Downloads"}`)
	f("docs/files.json", `{"Papers": {"paper.pdf": "My Paper", "missing.docx": "Gone"}, "Slides": {"talk.zip": "Talk"}}`)
	f("docs/paper.pdf", "%PDF")
	f("docs/talk.zip", "PK")

	f("stack/title.json", `{"title": "Stack"}`)
	f("stack/stack.json", `{"Go": "daily", "PostgreSQL": "often", "Haskell": "rarely"}`)

	f("contact/title.json", `{"title": "Contact"}`)
	f("contact/contact.json", `{"email": "me@example.com", "wechat": "qr.png", "phone": ""}`)
	f("contact/qr.png", "png")

	return &SiteConf{
		DataDir:      data,
		TemplateDir:  testTemplateDir(t),
		OutDir:       filepath.Join(dir, "html"),
		PreviewLimit: 2,
		Markdown:     MarkdownConf{Engine: engineGoldmark, HighlightStyle: defaultHighlightStyle},
	}
}

// snapshot reads every file below root, keyed by relative path.
func snapshot(t *testing.T, root string) map[string]string {
	t.Helper()
	files := make(map[string]string)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files[filepath.ToSlash(rel)] = readFile(t, path)
		return nil
	})
	require.NoError(t, err)
	return files
}
