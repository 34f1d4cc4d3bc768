package docx

import (
	"strings"
	"testing"
)

func TestLocateFormulas_Basic(t *testing.T) {
	markup := `<w:p><w:r>` +
		`<w:object><v:shape><v:imagedata r:id="rId5"/></v:shape><o:OLEObject r:id="rId4"/></w:object>` +
		`</w:r></w:p>`
	rels := map[string]string{
		"rId4": "embeddings/oleObject1.bin",
		"rId5": "media/image1.wmf",
	}

	out, formulas := LocateFormulas(markup, rels)

	if len(formulas) != 1 {
		t.Fatalf("expected 1 formula, got %d", len(formulas))
	}
	f := formulas[0]
	if f.Key != "m1" {
		t.Errorf("key: got %q, want m1", f.Key)
	}
	if f.BinaryRef != "rId4" {
		t.Errorf("binary ref: got %q", f.BinaryRef)
	}
	if f.PreviewRef != "rId5" {
		t.Errorf("preview ref: got %q", f.PreviewRef)
	}
	if !strings.Contains(out, "[!m:$m1$]") {
		t.Errorf("placeholder missing from output: %s", out)
	}
	if strings.Contains(out, "<w:object") {
		t.Errorf("object block not rewritten: %s", out)
	}
}

func TestLocateFormulas_UnknownRelLeftUntouched(t *testing.T) {
	markup := `<w:object><o:OLEObject r:id="rId9"/></w:object>`
	out, formulas := LocateFormulas(markup, map[string]string{})
	if len(formulas) != 0 {
		t.Fatalf("expected no formulas, got %d", len(formulas))
	}
	if out != markup {
		t.Errorf("block should be untouched, got %s", out)
	}
}

func TestLocateFormulas_NestedBlocks(t *testing.T) {
	// The inner object must not end the outer block early.
	markup := `<w:object><w:object><o:OLEObject r:id="rIdX"/></w:object>` +
		`<o:OLEObject r:id="rId1"/></w:object><w:t>after</w:t>`
	rels := map[string]string{"rId1": "embeddings/a.bin", "rIdX": "embeddings/b.bin"}

	out, formulas := LocateFormulas(markup, rels)
	if len(formulas) != 1 {
		t.Fatalf("expected 1 formula (whole outer block), got %d", len(formulas))
	}
	if want := "[!m:$m1$]<w:t>after</w:t>"; out != want {
		t.Errorf("output: got %q, want %q", out, want)
	}
}

func TestLocateFormulas_PreviewFirstMatchWins(t *testing.T) {
	markup := `<w:object>` +
		`<w:drawing><a:blip r:embed="rId7"/></w:drawing>` +
		`<v:imagedata r:id="rId8"/>` +
		`<o:OLEObject r:id="rId4"/></w:object>`
	rels := map[string]string{"rId4": "embeddings/x.bin", "rId7": "a", "rId8": "b"}

	_, formulas := LocateFormulas(markup, rels)
	if len(formulas) != 1 {
		t.Fatalf("expected 1 formula, got %d", len(formulas))
	}
	if formulas[0].PreviewRef != "rId7" {
		t.Errorf("expected first preview representation (rId7) to win, got %q", formulas[0].PreviewRef)
	}
}

func TestLocateFormulas_KeysAssignedInDocumentOrder(t *testing.T) {
	markup := `<w:object><o:OLEObject r:id="rId1"/></w:object>` +
		`<w:t>mid</w:t>` +
		`<w:object><o:OLEObject r:id="rId2"/></w:object>`
	rels := map[string]string{"rId1": "a.bin", "rId2": "b.bin"}

	out, formulas := LocateFormulas(markup, rels)
	if len(formulas) != 2 {
		t.Fatalf("expected 2 formulas, got %d", len(formulas))
	}
	if formulas[0].Key != "m1" || formulas[1].Key != "m2" {
		t.Errorf("keys: got %q, %q", formulas[0].Key, formulas[1].Key)
	}
	if want := "[!m:$m1$]<w:t>mid</w:t>[!m:$m2$]"; out != want {
		t.Errorf("output: got %q", out)
	}
}
