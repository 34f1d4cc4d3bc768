package mathml

import (
	"strings"
	"testing"
)

func TestConvertMarkup_SimpleRadical(t *testing.T) {
	got := ConvertMarkup(`<math><msqrt><mn>2</mn></msqrt></math>`)
	if got != `\sqrt{2}` {
		t.Errorf("got %q, want %q", got, `\sqrt{2}`)
	}
}

func TestConvertMarkup_NestedRadical(t *testing.T) {
	got := ConvertMarkup(`<math><msqrt><mi>x</mi><msqrt><mn>2</mn></msqrt></msqrt></math>`)
	if got != `\sqrt{x\sqrt{2}}` {
		t.Errorf("got %q, want %q", got, `\sqrt{x\sqrt{2}}`)
	}
}

func TestConvertMarkup_Root(t *testing.T) {
	got := ConvertMarkup(`<math><mroot><mrow><mi>x</mi></mrow><mn>3</mn></mroot></math>`)
	if got != `\sqrt[3]{x}` {
		t.Errorf("got %q, want %q", got, `\sqrt[3]{x}`)
	}
}

func TestConvertMarkup_RadicalInsideFraction(t *testing.T) {
	got := ConvertMarkup(`<math><mfrac><msqrt><mn>2</mn></msqrt><mn>2</mn></mfrac></math>`)
	if got != `\frac{\sqrt{2}}{2}` {
		t.Errorf("got %q, want %q", got, `\frac{\sqrt{2}}{2}`)
	}
}

func TestConvertMarkup_SiblingRadicals(t *testing.T) {
	got := ConvertMarkup(`<math><msqrt><mi>a</mi></msqrt><mo>+</mo><msqrt><mi>b</mi></msqrt></math>`)
	if got != `\sqrt{a}+\sqrt{b}` {
		t.Errorf("got %q, want %q", got, `\sqrt{a}+\sqrt{b}`)
	}
}

func TestConvertMarkup_RadicalCountPreserved(t *testing.T) {
	// Every radical subtree in the source must surface as a \sqrt in the
	// output, no matter how deeply it nests.
	markup := `<math><mfrac>` +
		`<msqrt><mroot><mi>x</mi><mn>5</mn></mroot></msqrt>` +
		`<msqrt><mn>3</mn></msqrt>` +
		`</mfrac></math>`
	got := ConvertMarkup(markup)
	if n := strings.Count(got, `\sqrt`); n != 3 {
		t.Errorf("expected 3 radicals in %q, found %d", got, n)
	}
}
