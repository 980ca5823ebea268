package output

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/law-makers/curate/pkg/models"
)

func TestAggregate_Text(t *testing.T) {
	pages := []*models.PageData{
		{URL: "https://a.test/", Content: "first page"},
		{URL: "https://b.test/", Content: "second page"},
	}

	got := string(Aggregate(pages, FormatText))
	if got != "first page\n\nsecond page\n\n" {
		t.Errorf("Unexpected aggregate %q", got)
	}
}

func TestAggregate_Empty(t *testing.T) {
	if got := Aggregate(nil, FormatText); len(got) != 0 {
		t.Errorf("Expected empty output, got %q", got)
	}
}

func TestAggregate_Markdown(t *testing.T) {
	pages := []*models.PageData{{
		URL:     "https://a.test/docs/",
		Content: "plain",
		HTML:    `<div><h1>Title</h1><p>Read <a href="guide" class="x">the guide</a>.</p><script>evil()</script></div>`,
	}}

	got := string(Aggregate(pages, FormatMarkdown))
	if !strings.Contains(got, "# Title") {
		t.Errorf("Expected heading in markdown, got %q", got)
	}
	if !strings.Contains(got, "[the guide](https://a.test/docs/guide)") {
		t.Errorf("Expected resolved link in markdown, got %q", got)
	}
	if strings.Contains(got, "evil") {
		t.Errorf("Expected scripts stripped, got %q", got)
	}
	if !strings.HasSuffix(got, "\n\n") {
		t.Errorf("Expected trailing blank line, got %q", got)
	}
}

func TestAggregate_MarkdownWithoutHTMLUsesText(t *testing.T) {
	got := string(Aggregate([]*models.PageData{{Content: "only text"}}, FormatMarkdown))
	if got != "only text\n\n" {
		t.Errorf("Unexpected aggregate %q", got)
	}
}

func TestWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "result.txt")
	if err := Write(path, []*models.PageData{{Content: "x"}}, FormatText); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "x\n\n" {
		t.Errorf("Unexpected file content %q", data)
	}
}

func TestCleanHTML(t *testing.T) {
	got, err := CleanHTML(`<p class="lead" style="color:red">Hi <a href="/x" onclick="y()">x</a><img src="i.png" width="3"></p><style>p{}</style>`)
	if err != nil {
		t.Fatalf("CleanHTML failed: %v", err)
	}
	want := `<p>Hi <a href="/x">x</a><img src="i.png"/></p>`
	if got != want {
		t.Errorf("CleanHTML() = %q, want %q", got, want)
	}
}
