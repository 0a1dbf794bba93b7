package markdown

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"go.abhg.dev/goldmark/frontmatter"
)

// Parser renders generated study material and reads front matter from
// embedded prompt templates. Raw HTML in the source is never passed through.
type Parser struct {
	md goldmark.Markdown
}

func NewParser() *Parser {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Typographer,
			&frontmatter.Extender{},
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			goldmarkhtml.WithHardWraps(),
			goldmarkhtml.WithXHTML(),
		),
	)

	return &Parser{
		md: md,
	}
}

// Render converts markdown to HTML.
func (p *Parser) Render(source []byte) ([]byte, error) {
	var buf bytes.Buffer
	err := p.md.Convert(source, &buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RenderString is Render for string content. Failures fall back to an empty
// string since the caller always has the raw markdown to show instead.
func (p *Parser) RenderString(source string) string {
	if source == "" {
		return ""
	}
	out, err := p.Render([]byte(source))
	if err != nil {
		return ""
	}
	return string(out)
}

// ExtractFrontmatter decodes the YAML front matter of source. A missing or
// malformed block yields an empty map.
func (p *Parser) ExtractFrontmatter(source []byte) map[string]any {
	context := parser.NewContext()
	p.md.Parser().Parse(text.NewReader(source), parser.WithContext(context))

	data := frontmatter.Get(context)
	if data == nil {
		return make(map[string]any)
	}

	var meta map[string]any
	err := data.Decode(&meta)
	if err != nil {
		return make(map[string]any)
	}
	return meta
}

// Body returns source without its leading front matter block.
func Body(source []byte) []byte {
	const fence = "---"

	if !bytes.HasPrefix(source, []byte(fence)) {
		return source
	}

	rest := source[len(fence):]
	nl := bytes.IndexByte(rest, '\n')
	if nl < 0 || len(bytes.TrimSpace(rest[:nl])) != 0 {
		return source
	}
	rest = rest[nl+1:]

	for len(rest) > 0 {
		line := rest
		next := []byte(nil)
		if i := bytes.IndexByte(rest, '\n'); i >= 0 {
			line = rest[:i]
			next = rest[i+1:]
		}
		if bytes.Equal(bytes.TrimRight(line, " \r\t"), []byte(fence)) {
			return bytes.TrimLeft(next, "\r\n")
		}
		rest = next
	}

	return source
}
