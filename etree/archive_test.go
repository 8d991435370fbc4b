package etree_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/mkrzemien/wixport"
	wixetree "github.com/mkrzemien/wixport/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeArchive runs the writer and parses the output back into a document.
func writeArchive(t *testing.T, archive *wixport.Archive) *etree.Document {
	t.Helper()

	var buf bytes.Buffer
	w := wixetree.NewArchiveWriter()
	require.NoError(t, w.WriteArchive(&buf, archive))

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(buf.Bytes()), "output must be well-formed XML")
	return doc
}

func testArchive(posts ...*wixport.Post) *wixport.Archive {
	return &wixport.Archive{
		Title:       "My Old Blog",
		Link:        "https://example.com",
		Description: "Migrated archive",
		Posts:       posts,
	}
}

func TestArchiveWriter_Channel(t *testing.T) {
	t.Parallel()

	doc := writeArchive(t, testArchive())

	rss := doc.Root()
	require.NotNil(t, rss)
	assert.Equal(t, "rss", rss.Tag)
	assert.Equal(t, "2.0", rss.SelectAttrValue("version", ""))
	assert.Equal(t, "http://wordpress.org/export/1.2/", rss.SelectAttrValue("xmlns:wp", ""))

	channel := rss.SelectElement("channel")
	require.NotNil(t, channel)
	assert.Equal(t, "My Old Blog", channel.SelectElement("title").Text())
	assert.Equal(t, "https://example.com", channel.SelectElement("link").Text())
	assert.Equal(t, "1.2", channel.SelectElement("wp:wxr_version").Text())
	assert.Equal(t, "en-US", channel.SelectElement("language").Text())
}

func TestArchiveWriter_Item(t *testing.T) {
	t.Parallel()

	published := time.Date(2023, 4, 12, 9, 30, 0, 0, time.UTC)
	doc := writeArchive(t, testArchive(&wixport.Post{
		URL:         "https://example.com/post/spring-in-the-valley",
		Title:       "Spring in the Valley",
		PublishedAt: &published,
		Categories:  []string{"Travel", "Day Hikes"},
		BodyHTML:    "<p>The valley turns green.</p>",
	}))

	items := doc.FindElements("//channel/item")
	require.Len(t, items, 1)
	item := items[0]

	assert.Equal(t, "Spring in the Valley", item.SelectElement("title").Text())
	assert.Equal(t, "https://example.com/post/spring-in-the-valley", item.SelectElement("link").Text())
	assert.Equal(t, "Wed, 12 Apr 2023 09:30:00 +0000", item.SelectElement("pubDate").Text())
	assert.Equal(t, "admin", item.SelectElement("dc:creator").Text())
	assert.Equal(t, "<p>The valley turns green.</p>", item.SelectElement("content:encoded").Text())
	assert.Equal(t, "1", item.SelectElement("wp:post_id").Text())
	assert.Equal(t, "2023-04-12 09:30:00", item.SelectElement("wp:post_date").Text())
	assert.Equal(t, "spring-in-the-valley", item.SelectElement("wp:post_name").Text())
	assert.Equal(t, "publish", item.SelectElement("wp:status").Text())
	assert.Equal(t, "post", item.SelectElement("wp:post_type").Text())

	categories := item.SelectElements("category")
	require.Len(t, categories, 2)
	assert.Equal(t, "Travel", categories[0].Text())
	assert.Equal(t, "category", categories[0].SelectAttrValue("domain", ""))
	assert.Equal(t, "travel", categories[0].SelectAttrValue("nicename", ""))
	assert.Equal(t, "day-hikes", categories[1].SelectAttrValue("nicename", ""))
}

func TestArchiveWriter_AbsentDate(t *testing.T) {
	t.Parallel()

	doc := writeArchive(t, testArchive(&wixport.Post{
		URL:      "https://example.com/post/undated",
		Title:    "Undated",
		BodyHTML: "<p>body</p>",
	}))

	items := doc.FindElements("//channel/item")
	require.Len(t, items, 1)
	item := items[0]

	assert.Nil(t, item.SelectElement("pubDate"))
	assert.Equal(t, "0000-00-00 00:00:00", item.SelectElement("wp:post_date").Text())
}

func TestArchiveWriter_EmptyBodyMarker(t *testing.T) {
	t.Parallel()

	doc := writeArchive(t, testArchive(&wixport.Post{
		URL:        "https://example.com/post/hollow",
		Title:      "Hollow",
		Incomplete: true,
	}))

	items := doc.FindElements("//channel/item")
	require.Len(t, items, 1)
	assert.Equal(t, "<!-- no content extracted -->", items[0].SelectElement("content:encoded").Text())
}

func TestArchiveWriter_EveryPostBecomesAnItem(t *testing.T) {
	t.Parallel()

	doc := writeArchive(t, testArchive(
		&wixport.Post{URL: "https://example.com/post/one", Title: "One", BodyHTML: "<p>1</p>"},
		&wixport.Post{URL: "https://example.com/post/two", Title: "Two"},
		&wixport.Post{URL: "https://example.com/post/three", Title: "Three", BodyHTML: "<p>3</p>"},
	))

	items := doc.FindElements("//channel/item")
	require.Len(t, items, 3)
	assert.Equal(t, "One", items[0].SelectElement("title").Text())
	assert.Equal(t, "Two", items[1].SelectElement("title").Text())
	assert.Equal(t, "Three", items[2].SelectElement("title").Text())
	assert.Equal(t, "2", items[1].SelectElement("wp:post_id").Text())
}

func TestArchiveWriter_NilArchive(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := wixetree.NewArchiveWriter().WriteArchive(&buf, nil)
	assert.Equal(t, wixport.EINVALID, wixport.ErrorCode(err))
}
