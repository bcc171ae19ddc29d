package main

import (
	"html/template"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
)

var contactIcons = map[string]string{
	"phone":    "fas fa-phone",
	"email":    "fas fa-envelope",
	"github":   "fab fa-github",
	"wechat":   "fab fa-weixin",
	"qq":       "fab fa-qq",
	"douyin":   "fab fa-tiktok",
	"linkedin": "fab fa-linkedin",
	"twitter":  "fab fa-twitter",
	"weibo":    "fab fa-weibo",
	"website":  "fas fa-globe",
	"location": "fas fa-map-marker-alt",
}

var contactNames = map[string]string{
	"phone":    "Phone",
	"email":    "Email",
	"github":   "GitHub",
	"wechat":   "WeChat",
	"qq":       "QQ",
	"douyin":   "Douyin",
	"linkedin": "LinkedIn",
	"twitter":  "Twitter",
	"weibo":    "Weibo",
	"website":  "Website",
	"location": "Location",
}

var imageExts = newSet(".png", ".jpg", ".jpeg", ".gif", ".svg")

type contactEntry struct {
	Type        string
	Value       string
	Icon        string
	DisplayName string
	// IsImage marks values naming an image in data/contact, like a QR code.
	// Value is then relative to the site root.
	IsImage bool
}

type contactPreviewParam struct {
	Title    string
	Subtitle string
	Meta     map[string]any
	Contacts []contactEntry
}

func contactIcon(kind string) string {
	if icon, ok := contactIcons[strings.ToLower(kind)]; ok {
		return icon
	}
	return "fas fa-address-card"
}

func contactName(kind string) string {
	if name, ok := contactNames[strings.ToLower(kind)]; ok {
		return name
	}
	return kind
}

func isImageValue(v string) bool {
	return imageExts.has(strings.ToLower(filepath.Ext(v)))
}

// contactSection has no page of its own. Its target copies the images the
// contact entries refer to and refreshes the home page.
type contactSection struct{}

func (contactSection) Name() string { return sectionContact }

func (contactSection) Generate(s *Site) error {
	if _, err := s.data.title(sectionContact); err != nil {
		return err
	}
	contacts, err := loadContacts(s.data)
	if err != nil {
		return err
	}
	for _, c := range contacts {
		if !c.IsImage {
			continue
		}
		name := strings.TrimPrefix(c.Value, sectionContact+"/")
		src := s.data.path(sectionContact, filepath.FromSlash(name))
		if _, err := os.Stat(src); err != nil {
			s.warn(sectionContact, "Contact image not found", logPath(src))
			continue
		}
		if err := copyFile(src, s.outPath(sectionContact, filepath.FromSlash(name))); err != nil {
			return err
		}
	}
	return nil
}

// loadContacts reads contact.json in file order, dropping empty values.
func loadContacts(d dataTree) ([]contactEntry, error) {
	p := d.path(sectionContact, "contact.json")
	var raw orderedObject
	if err := loadJSON(p, &raw); err != nil {
		return nil, configError(sectionContact, p, err)
	}
	contacts := make([]contactEntry, 0, len(raw))
	for _, f := range raw {
		v := strings.TrimSpace(f.String())
		if v == "" {
			continue
		}
		c := contactEntry{
			Type:        f.Key,
			Value:       v,
			Icon:        contactIcon(f.Key),
			DisplayName: contactName(f.Key),
		}
		if isImageValue(v) && !isExternalRef(v) {
			name := strings.TrimPrefix(v, "./")
			if !isLocalName(name) {
				slog.Warn("Skipping contact image outside the contact directory", logSection(sectionContact), logItem(f.Key), logPath(v))
				continue
			}
			c.IsImage = true
			c.Value = path.Join(sectionContact, name)
		}
		contacts = append(contacts, c)
	}
	return contacts, nil
}

func (contactSection) Preview(s *Site) (template.HTML, error) {
	title, err := s.data.title(sectionContact)
	if err != nil {
		return "", err
	}
	contacts, err := loadContacts(s.data)
	if err != nil {
		return "", err
	}
	return s.engine.render("home/contact_preview.html", contactPreviewParam{
		Title:    stringField(title, "title"),
		Subtitle: stringField(title, "subtitle"),
		Meta:     title,
		Contacts: contacts,
	})
}
