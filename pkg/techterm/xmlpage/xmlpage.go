// Package xmlpage reads the page/text XML written by pdftohtml -xml into
// styled text runs.
package xmlpage

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// Run is one styled text fragment of a page
type Run struct {
	Text     string  `json:"text"`
	FontSize float64 `json:"font_size"`
	Color    string  `json:"color"`
	Top      float64 `json:"top"`
	Left     float64 `json:"left"`
}

// Page is the ordered runs of one PDF page
type Page struct {
	Number int   `json:"number"`
	Runs   []Run `json:"runs"`
}

// Document is a converted PDF
type Document struct {
	Path  string `json:"path"`
	Pages []Page `json:"pages"`
}

type font struct {
	size  float64
	color string
}

// Parse reads converter XML. Font specs are global to the document; a text
// element refers to one by its font attribute. Markup nested in a text
// element (bold, italic, links) is flattened. Empty runs are dropped.
func Parse(r io.Reader) (*Document, error) {
	z := html.NewTokenizer(r)
	fonts := make(map[string]font)
	doc := &Document{}

	var page *Page
	var run *Run
	var text strings.Builder

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if errors.Is(z.Err(), io.EOF) {
				if page != nil {
					doc.Pages = append(doc.Pages, *page)
				}
				return doc, nil
			}
			return nil, fmt.Errorf("parse converter xml: %w", z.Err())

		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			switch tok.Data {
			case "page":
				if page != nil {
					doc.Pages = append(doc.Pages, *page)
				}
				n, _ := strconv.Atoi(attr(tok, "number"))
				if n == 0 {
					n = len(doc.Pages) + 1
				}
				page = &Page{Number: n}
			case "fontspec":
				size, _ := strconv.ParseFloat(attr(tok, "size"), 64)
				fonts[attr(tok, "id")] = font{size: size, color: strings.ToLower(attr(tok, "color"))}
			case "text":
				if tt == html.SelfClosingTagToken {
					continue
				}
				f := fonts[attr(tok, "font")]
				top, _ := strconv.ParseFloat(attr(tok, "top"), 64)
				left, _ := strconv.ParseFloat(attr(tok, "left"), 64)
				run = &Run{FontSize: f.size, Color: f.color, Top: top, Left: left}
				text.Reset()
			}

		case html.TextToken:
			if run != nil {
				text.Write(z.Text())
			}

		case html.EndTagToken:
			name, _ := z.TagName()
			if string(name) != "text" || run == nil {
				continue
			}
			run.Text = strings.Join(strings.Fields(text.String()), " ")
			if run.Text != "" {
				if page == nil {
					page = &Page{Number: 1}
				}
				page.Runs = append(page.Runs, *run)
			}
			run = nil
		}
	}
}

// ParseBytes is Parse over an in-memory document
func ParseBytes(data []byte) (*Document, error) {
	return Parse(bytes.NewReader(data))
}

func attr(tok html.Token, key string) string {
	for _, a := range tok.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
