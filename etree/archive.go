// Package etree serializes a migration archive as a WordPress WXR 1.2
// import document.
package etree

import (
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/mkrzemien/wixport"
)

// Ensure ArchiveWriter implements wixport.ArchiveWriter.
var _ wixport.ArchiveWriter = (*ArchiveWriter)(nil)

// WXR namespace declarations required by the WordPress importer.
var wxrNamespaces = map[string]string{
	"xmlns:excerpt": "http://wordpress.org/export/1.2/excerpt/",
	"xmlns:content": "http://purl.org/rss/1.0/modules/content/",
	"xmlns:wfw":     "http://wellformedweb.org/CommentAPI/",
	"xmlns:dc":      "http://purl.org/dc/elements/1.1/",
	"xmlns:wp":      "http://wordpress.org/export/1.2/",
}

// emptyContentMarker is written in place of a body when normalization
// left nothing. The item is still emitted so no post silently disappears
// from the archive.
const emptyContentMarker = "<!-- no content extracted -->"

// absentPostDate is the WordPress convention for an unknown publish date.
const absentPostDate = "0000-00-00 00:00:00"

// ArchiveWriter writes archives as WXR 1.2 RSS documents.
type ArchiveWriter struct {
	// Creator is the dc:creator written on every item. Defaults to "admin",
	// which the WordPress importer remaps on import.
	Creator string

	// Language is the channel language. Defaults to "en-US".
	Language string
}

// NewArchiveWriter creates an ArchiveWriter with default channel settings.
func NewArchiveWriter() *ArchiveWriter {
	return &ArchiveWriter{
		Creator:  "admin",
		Language: "en-US",
	}
}

// WriteArchive serializes the archive. Every post maps 1:1 to an <item>;
// partial posts degrade field by field rather than being dropped.
func (a *ArchiveWriter) WriteArchive(w io.Writer, archive *wixport.Archive) error {
	if archive == nil {
		return wixport.Errorf(wixport.EINVALID, "archive required")
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	rss := doc.CreateElement("rss")
	rss.CreateAttr("version", "2.0")
	for _, ns := range []string{"xmlns:excerpt", "xmlns:content", "xmlns:wfw", "xmlns:dc", "xmlns:wp"} {
		rss.CreateAttr(ns, wxrNamespaces[ns])
	}

	channel := rss.CreateElement("channel")
	channel.CreateElement("title").SetText(archive.Title)
	channel.CreateElement("link").SetText(archive.Link)
	channel.CreateElement("description").SetText(archive.Description)
	channel.CreateElement("pubDate").SetText(time.Now().UTC().Format(time.RFC1123Z))
	channel.CreateElement("language").SetText(a.language())
	channel.CreateElement("wp:wxr_version").SetText("1.2")

	for i, post := range archive.Posts {
		if post == nil || post.URL == "" {
			continue
		}
		a.writeItem(channel, post, i+1)
	}

	doc.Indent(2)
	_, err := doc.WriteTo(w)
	return err
}

func (a *ArchiveWriter) writeItem(channel *etree.Element, post *wixport.Post, id int) {
	item := channel.CreateElement("item")

	item.CreateElement("title").SetText(post.Title)
	item.CreateElement("link").SetText(post.URL)
	if post.PublishedAt != nil {
		item.CreateElement("pubDate").SetText(post.PublishedAt.UTC().Format(time.RFC1123Z))
	}
	item.CreateElement("dc:creator").SetText(a.creator())

	content := item.CreateElement("content:encoded")
	body := post.BodyHTML
	if strings.TrimSpace(body) == "" {
		body = emptyContentMarker
	}
	content.CreateCData(body)

	item.CreateElement("wp:post_id").SetText(fmt.Sprintf("%d", id))
	if post.PublishedAt != nil {
		item.CreateElement("wp:post_date").SetText(post.PublishedAt.UTC().Format("2006-01-02 15:04:05"))
	} else {
		item.CreateElement("wp:post_date").SetText(absentPostDate)
	}
	item.CreateElement("wp:post_name").SetText(postSlug(post.URL))
	item.CreateElement("wp:status").SetText("publish")
	item.CreateElement("wp:post_type").SetText("post")

	for _, category := range post.Categories {
		cat := item.CreateElement("category")
		cat.CreateAttr("domain", "category")
		cat.CreateAttr("nicename", nicename(category))
		cat.CreateCData(category)
	}
}

func (a *ArchiveWriter) creator() string {
	if a.Creator == "" {
		return "admin"
	}
	return a.Creator
}

func (a *ArchiveWriter) language() string {
	if a.Language == "" {
		return "en-US"
	}
	return a.Language
}

// postSlug derives the wp:post_name from the URL's last path segment.
func postSlug(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	path := strings.TrimSuffix(u.Path, "/")
	return path[strings.LastIndex(path, "/")+1:]
}

// nicename lowercases a category into the slug form WordPress expects.
func nicename(category string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(category)) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteRune('-')
		}
	}
	return b.String()
}
