package htmldoc

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Document wraps a parsed HTML page with the queries the audit needs:
// tag lookups, attribute reads, and text extraction with structural removal.
type Document struct {
	doc *goquery.Document
}

// Heading is a heading element with its level (1-6) and cleaned text.
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

// Image describes an img element. HasAlt distinguishes a missing alt
// attribute from a present-but-blank one.
type Image struct {
	Src    string `json:"src"`
	Alt    string `json:"alt"`
	HasAlt bool   `json:"has_alt"`
}

// Parse parses raw markup into a Document.
func Parse(html string) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	return &Document{doc: doc}, nil
}

// Title returns the cleaned text of the first title element.
func (d *Document) Title() (string, bool) {
	selection := d.doc.Find("title").First()
	if selection.Length() == 0 {
		return "", false
	}

	return cleanText(selection.Text()), true
}

// MetaContent returns the content attribute of the first meta tag whose name
// matches (case-insensitive).
func (d *Document) MetaContent(name string) (string, bool) {
	var (
		found   bool
		content string
	)

	d.doc.Find("meta[name]").EachWithBreak(func(_ int, selection *goquery.Selection) bool {
		metaName, ok := selection.Attr("name")
		if !ok || !strings.EqualFold(strings.TrimSpace(metaName), name) {
			return true
		}

		found = true
		raw, _ := selection.Attr("content")
		content = strings.TrimSpace(raw)

		return false
	})

	return content, found
}

// Headings returns every h1-h6 element with non-empty text, in document order.
func (d *Document) Headings() []Heading {
	headings := []Heading{}
	d.doc.Find("h1,h2,h3,h4,h5,h6").Each(func(_ int, selection *goquery.Selection) {
		text := cleanText(selection.Text())
		if text == "" {
			return
		}

		name := goquery.NodeName(selection)
		if len(name) != 2 {
			return
		}

		headings = append(headings, Heading{Level: int(name[1] - '0'), Text: text})
	})

	return headings
}

// TagTexts returns the cleaned text of every matching element, empty entries
// included (an empty h1 still counts as an h1).
func (d *Document) TagTexts(tag string) []string {
	texts := []string{}
	d.doc.Find(tag).Each(func(_ int, selection *goquery.Selection) {
		texts = append(texts, cleanText(selection.Text()))
	})

	return texts
}

// Images returns every img element on the page.
func (d *Document) Images() []Image {
	images := []Image{}
	d.doc.Find("img").Each(func(_ int, selection *goquery.Selection) {
		src, _ := selection.Attr("src")
		alt, hasAlt := selection.Attr("alt")

		images = append(images, Image{
			Src:    strings.TrimSpace(src),
			Alt:    strings.TrimSpace(alt),
			HasAlt: hasAlt,
		})
	})

	return images
}

// JSONLD returns the raw bodies of all application/ld+json scripts.
func (d *Document) JSONLD() []string {
	bodies := []string{}
	d.doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, selection *goquery.Selection) {
		bodies = append(bodies, selection.Text())
	})

	return bodies
}

// Links returns the trimmed href attribute of every anchor.
func (d *Document) Links() []string {
	links := []string{}
	d.doc.Find("a[href]").Each(func(_ int, selection *goquery.Selection) {
		href, ok := selection.Attr("href")
		if !ok {
			return
		}

		links = append(links, strings.TrimSpace(href))
	})

	return links
}

// Paragraphs returns the cleaned text of every p element.
func (d *Document) Paragraphs() []string {
	return d.TagTexts("p")
}

// Lists returns the item texts of every ul/ol that has at least one non-empty
// item.
func (d *Document) Lists() [][]string {
	lists := [][]string{}
	d.doc.Find("ul,ol").Each(func(_ int, selection *goquery.Selection) {
		items := []string{}
		selection.Find("li").Each(func(_ int, li *goquery.Selection) {
			if text := cleanText(li.Text()); text != "" {
				items = append(items, text)
			}
		})

		if len(items) > 0 {
			lists = append(lists, items)
		}
	})

	return lists
}

// MainParagraphs returns the cleaned text of every p element outside the
// structural chrome (nav, footer, aside, header).
func (d *Document) MainParagraphs() []string {
	clone := goquery.CloneDocument(d.doc)
	clone.Find("nav,footer,aside,header").Remove()

	paragraphs := []string{}
	clone.Find("p").Each(func(_ int, selection *goquery.Selection) {
		paragraphs = append(paragraphs, cleanText(selection.Text()))
	})

	return paragraphs
}

// Tables returns the cell texts of every table, one slice of rows per table.
// Empty rows are dropped; tables with no non-empty rows are omitted.
func (d *Document) Tables() [][][]string {
	tables := [][][]string{}
	d.doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		rows := [][]string{}
		table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
			cells := []string{}
			nonEmpty := false
			tr.Find("td,th").Each(func(_ int, cell *goquery.Selection) {
				text := cleanText(cell.Text())
				cells = append(cells, text)
				if text != "" {
					nonEmpty = true
				}
			})

			if nonEmpty {
				rows = append(rows, cells)
			}
		})

		if len(rows) > 0 {
			tables = append(tables, rows)
		}
	})

	return tables
}

// Count returns the number of elements matching a CSS selector.
func (d *Document) Count(selector string) int {
	return d.doc.Find(selector).Length()
}

// CountWithAttr returns the number of elements carrying the attribute.
func (d *Document) CountWithAttr(attr string) int {
	return d.doc.Find("[" + attr + "]").Length()
}

// MetaPropertyPrefixCount counts meta tags whose property attribute starts
// with prefix (Open Graph style).
func (d *Document) MetaPropertyPrefixCount(prefix string) int {
	count := 0
	d.doc.Find("meta[property]").Each(func(_ int, selection *goquery.Selection) {
		property, _ := selection.Attr("property")
		if strings.HasPrefix(strings.ToLower(strings.TrimSpace(property)), prefix) {
			count++
		}
	})

	return count
}

// MetaNamePrefixCount counts meta tags whose name attribute starts with
// prefix (Twitter Card style).
func (d *Document) MetaNamePrefixCount(prefix string) int {
	count := 0
	d.doc.Find("meta[name]").Each(func(_ int, selection *goquery.Selection) {
		name, _ := selection.Attr("name")
		if strings.HasPrefix(strings.ToLower(strings.TrimSpace(name)), prefix) {
			count++
		}
	})

	return count
}

// VisibleText extracts the page text after removing script and style
// subtrees, with whitespace collapsed.
func (d *Document) VisibleText() string {
	return d.textWithout("script,style,noscript")
}

// MainText extracts the page text after additionally removing the structural
// chrome a text-only reader skips (nav, footer, aside, header).
func (d *Document) MainText() string {
	return d.textWithout("script,style,noscript,nav,footer,aside,header")
}

func (d *Document) textWithout(selector string) string {
	clone := goquery.CloneDocument(d.doc)
	clone.Find(selector).Remove()

	return cleanText(clone.Text())
}
