package localdump

import (
	"fmt"
	"net/url"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	mdplugin "github.com/JohannesKaufmann/html-to-markdown/plugin"
	"github.com/PuerkitoBio/goquery"
	"gopkg.in/yaml.v3"

	"github.com/toothbrush/coda-tools/coda"
)

const defaultBrowserHost = "https://coda.io"

// htmlToMarkdown converts an HTML export.  Relative links are made absolute against base, which
// should be the browser URL of the doc.
func htmlToMarkdown(html string, base *url.URL) (string, error) {
	// md.NewConverter only takes a hostname, not a base URI, so the scheme has to be patched in
	// by hand.  See https://github.com/JohannesKaufmann/html-to-markdown/issues/44
	opt := &md.Options{
		GetAbsoluteURL: func(selec *goquery.Selection, rawURL string, domain string) string {
			if domain == "" {
				return rawURL
			}

			u, err := url.Parse(rawURL)
			if err != nil {
				return rawURL
			}

			if u.Scheme == "data" || u.Scheme == "mailto" {
				return rawURL
			}

			if u.Scheme == "" {
				u.Scheme = base.Scheme
			}
			if u.Host == "" {
				u.Host = domain
			}

			return u.String()
		},
	}

	converter := md.NewConverter(base.Host, true, opt)
	// Github flavoured Markdown knows about tables 👍
	converter.Use(mdplugin.GitHubFlavored())

	markdown, err := converter.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("localdump: failed to convert to Markdown: %w", err)
	}
	return markdown, nil
}

func browserBase(link string) *url.URL {
	u, err := url.Parse(link)
	if err != nil || u.Host == "" {
		u, _ = url.Parse(defaultBrowserHost)
	}
	return &url.URL{Scheme: u.Scheme, Host: u.Host}
}

// ConvertToMarkdown turns an exported page into the file we keep locally: YAML front matter
// followed by the page body.
func (dumper *DocDumper) ConvertToMarkdown(page coda.Page, exported string) (LocalMarkdown, error) {
	markdown := exported
	if dumper.outputFormat() == coda.FormatHTML {
		var err error
		markdown, err = htmlToMarkdown(exported, browserBase(page.BrowserLink))
		if err != nil {
			return LocalMarkdown{}, err
		}
	}

	dumper.remoteMetadataMu.Lock()
	defer dumper.remoteMetadataMu.Unlock()

	pageMetadata, ok := dumper.remotePageMetadata[PageID(page.ID)]
	if !ok {
		return LocalMarkdown{}, fmt.Errorf("localdump: missing ancestry data for %s", page.ID)
	}

	ancestorNames := []string{}
	ancestorIDs := []string{}
	for _, ancestor := range pageMetadata.AncestorIDs {
		ancestorMetadata, ok := dumper.remotePageMetadata[ancestor]
		if !ok {
			return LocalMarkdown{}, fmt.Errorf("localdump: found an ID reference we haven't seen before! %s", ancestor)
		}
		ancestorIDs = append(ancestorIDs, string(ancestor))
		ancestorNames = append(ancestorNames, ancestorMetadata.Page.Name)
	}

	header := MarkdownHeader{
		Title:         page.Name,
		Subtitle:      page.Subtitle,
		PageID:        page.ID,
		DocID:         dumper.doc.ID,
		DocName:       dumper.doc.Name,
		URI:           page.BrowserLink,
		UpdatedAt:     page.UpdatedAt,
		AncestorNames: ancestorNames,
		AncestorIDs:   ancestorIDs,
	}

	if page.UpdatedBy != nil && page.UpdatedBy.Name != "" {
		header.Author = page.UpdatedBy.Name
		if page.UpdatedBy.Email != "" {
			header.Author = fmt.Sprintf("%s <%s>", page.UpdatedBy.Name, page.UpdatedBy.Email)
		}
	}

	yamlHeader, err := yaml.Marshal(header)
	if err != nil {
		return LocalMarkdown{}, fmt.Errorf("localdump: couldn't marshal header YAML: %w", err)
	}

	body := fmt.Sprintf(`---
%s
---
%s
`,
		strings.TrimSpace(string(yamlHeader)),
		strings.TrimSpace(markdown))

	relativeOutputPath, err := dumper.pagePath(pageMetadata)
	if err != nil {
		return LocalMarkdown{}, fmt.Errorf("localdump: couldn't determine page path: %w", err)
	}

	return LocalMarkdown{
		ID:           PageID(page.ID),
		Content:      body,
		UpdatedAt:    page.UpdatedAt,
		AncestorIDs:  pageMetadata.AncestorIDs,
		RelativePath: relativeOutputPath,
	}, nil
}
