package markdown

import (
	"strings"
	"testing"
)

const sample = `---
system: You are a tutor.
model: test
---

# Day 1

Read **chapter one**.
`

func TestExtractFrontmatter(t *testing.T) {
	p := NewParser()

	meta := p.ExtractFrontmatter([]byte(sample))
	if got, _ := meta["system"].(string); got != "You are a tutor." {
		t.Fatalf("system: want=%q got=%q", "You are a tutor.", got)
	}

	meta = p.ExtractFrontmatter([]byte("# no front matter"))
	if len(meta) != 0 {
		t.Fatalf("want empty meta, got %v", meta)
	}
}

func TestBody(t *testing.T) {
	got := string(Body([]byte(sample)))
	if !strings.HasPrefix(got, "# Day 1") {
		t.Fatalf("Body: got %q", got)
	}

	plain := "# Title\n---\ntext"
	if got := string(Body([]byte(plain))); got != plain {
		t.Fatalf("Body without front matter changed input: %q", got)
	}

	unterminated := "---\nsystem: x\n# Title"
	if got := string(Body([]byte(unterminated))); got != unterminated {
		t.Fatalf("Body with open fence changed input: %q", got)
	}
}

func TestRenderEscapesRawHTML(t *testing.T) {
	p := NewParser()

	out := p.RenderString("## Core Concepts\n\n<script>alert(1)</script>\n\n- one\n- two")
	if !strings.Contains(out, "<h2") || !strings.Contains(out, "<li>one</li>") {
		t.Fatalf("RenderString: got %q", out)
	}
	if strings.Contains(out, "<script>") {
		t.Fatalf("RenderString passed raw HTML through: %q", out)
	}

	if p.RenderString("") != "" {
		t.Fatalf("RenderString(\"\"): want empty")
	}
}
