package docx

import (
	"strings"
	"testing"
)

func TestExtractText_ParagraphsAndTags(t *testing.T) {
	markup := `<w:body>` +
		`<w:p><w:r><w:t>Câu 1. What is 2+2?</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>A. 3</w:t></w:r><w:r><w:t xml:space="preserve"> extra</w:t></w:r></w:p>` +
		`</w:body>`

	got := ExtractText(markup)
	want := "Câu 1. What is 2+2?\nA. 3 extra"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestExtractText_PlaceholdersSurviveVerbatim(t *testing.T) {
	markup := `<w:p><w:r><w:t>Compute </w:t></w:r><w:r>[!m:$m1$]</w:r>` +
		`<w:r><w:t> and </w:t></w:r><w:r>[!img:$i1$]</w:r></w:p>`

	got := ExtractText(markup)
	if !strings.Contains(got, "[!m:$m1$]") {
		t.Errorf("math placeholder lost: %q", got)
	}
	if !strings.Contains(got, "[!img:$i1$]") {
		t.Errorf("image placeholder lost: %q", got)
	}
}

func TestExtractText_UnderlineRuns(t *testing.T) {
	markup := `<w:p>` +
		`<w:r><w:t>B. 4 </w:t></w:r>` +
		`<w:r><w:rPr><w:u w:val="single"/></w:rPr><w:t>C</w:t></w:r>` +
		`<w:r><w:t>. 5</w:t></w:r>` +
		`</w:p>`

	got := ExtractText(markup)
	want := "B. 4 [u]C[/u]. 5"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestExtractText_UnderlineNoneIgnored(t *testing.T) {
	markup := `<w:p><w:r><w:rPr><w:u w:val="none"/></w:rPr><w:t>plain</w:t></w:r></w:p>`
	got := ExtractText(markup)
	if got != "plain" {
		t.Errorf("got %q, want %q", got, "plain")
	}
}

func TestExtractText_Entities(t *testing.T) {
	markup := `<w:p><w:r><w:t>x &lt; 1 &amp;&amp; y &gt; 2</w:t></w:r></w:p>`
	got := ExtractText(markup)
	if got != "x < 1 && y > 2" {
		t.Errorf("got %q", got)
	}
}

func TestExtractText_MalformedMarkupDegrades(t *testing.T) {
	// A truncated run and an unmatched close tag must not panic or eat
	// surrounding text.
	markup := `<w:p><w:r><w:t>before</w:t></w:p>` +
		`<w:p><w:r><w:rPr><w:u w:val="single"/></w:rPr><w:t>truncated`

	got := ExtractText(markup)
	if !strings.Contains(got, "before") {
		t.Errorf("surrounding text lost: %q", got)
	}
	if !strings.Contains(got, "truncated") {
		t.Errorf("trailing text lost: %q", got)
	}
}

func TestExtractText_BreaksAndTabs(t *testing.T) {
	markup := `<w:p><w:r><w:t>a</w:t><w:br/><w:t>b</w:t><w:tab/><w:t>c</w:t></w:r></w:p>`
	got := ExtractText(markup)
	if got != "a\nb c" {
		t.Errorf("got %q", got)
	}
}
