// Package wikidump streams pages out of a MediaWiki XML export such as
// hiwiki-latest-pages-articles.xml. Only one page is held in memory at a
// time.
package wikidump

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
)

// Page is one article of the dump, with the text of its last revision.
type Page struct {
	Title string
	Text  string
}

// pageXML matches <page> regardless of the export schema namespace.
type pageXML struct {
	Title     string `xml:"title"`
	Revisions []struct {
		Text string `xml:"text"`
	} `xml:"revision"`
}

// Walk decodes r and calls fn for every page in document order. It returns
// the number of pages visited. An error from fn stops the walk and is
// returned as is.
func Walk(ctx context.Context, r io.Reader, fn func(Page) error) (int, error) {
	dec := xml.NewDecoder(r)
	pages := 0
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return pages, nil
		}
		if err != nil {
			return pages, fmt.Errorf("read dump after %d pages: %w", pages, err)
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "page" {
			continue
		}
		if err := ctx.Err(); err != nil {
			return pages, err
		}

		var p pageXML
		if err := dec.DecodeElement(&p, &se); err != nil {
			return pages, fmt.Errorf("decode page %d: %w", pages+1, err)
		}
		page := Page{Title: p.Title}
		if n := len(p.Revisions); n > 0 {
			page.Text = p.Revisions[n-1].Text
		}
		pages++
		if err := fn(page); err != nil {
			return pages, err
		}
	}
}
