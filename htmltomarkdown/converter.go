// Package htmltomarkdown renders posting markup as Markdown for inspection.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/jobscan"
)

// Ensure Converter implements jobscan.Converter at compile time.
var _ jobscan.Converter = (*Converter)(nil)

// Converter wraps html-to-markdown to convert HTML to Markdown.
type Converter struct {
	conv   *converter.Converter
	domain string
}

// Option configures a Converter.
type Option func(*Converter)

// WithDomain resolves relative links against the given domain,
// e.g. "https://boards.greenhouse.io".
func WithDomain(domain string) Option {
	return func(c *Converter) {
		c.domain = domain
	}
}

// NewConverter creates a new Converter.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Convert transforms HTML content into Markdown.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", jobscan.Errorf(jobscan.EINVALID, "empty HTML input")
	}

	var opts []converter.ConvertOptionFunc
	if c.domain != "" {
		opts = append(opts, converter.WithDomain(c.domain))
	}
	result, err := c.conv.ConvertString(html, opts...)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(result), nil
}
