package mathml

import "testing"

func TestConvert_Basics(t *testing.T) {
	tests := []struct {
		name   string
		markup string
		want   string
	}{
		{
			"fraction",
			`<math><mfrac><mn>1</mn><mn>2</mn></mfrac></math>`,
			`\frac{1}{2}`,
		},
		{
			"superscript",
			`<math><msup><mi>x</mi><mn>2</mn></msup></math>`,
			`{x}^{2}`,
		},
		{
			"subsup",
			`<math><msubsup><mi>x</mi><mn>1</mn><mn>2</mn></msubsup></math>`,
			`{x}_{1}^{2}`,
		},
		{
			"operator mapping",
			`<math><mn>1</mn><mo>≤</mo><mi>x</mi></math>`,
			`1\le x`,
		},
		{
			"fenced defaults to parens",
			`<math><mfenced><mi>a</mi><mi>b</mi></mfenced></math>`,
			`\left(a,b\right)`,
		},
		{
			"limit",
			`<math><munder><mi>lim</mi><mrow><mi>x</mi><mo>→</mo><mn>0</mn></mrow></munder></math>`,
			`\lim_{x\to 0}`,
		},
		{
			"text",
			`<math><mtext>khi</mtext></math>`,
			`\text{khi}`,
		},
		{
			"matrix",
			`<math><mtable><mtr><mtd><mn>1</mn></mtd><mtd><mn>2</mn></mtd></mtr><mtr><mtd><mn>3</mn></mtd><mtd><mn>4</mn></mtd></mtr></mtable></math>`,
			`\begin{matrix}1 & 2 \\ 3 & 4\end{matrix}`,
		},
		{
			"greek identifier",
			`<math><mi>α</mi></math>`,
			`\alpha`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Convert(tt.markup); got != tt.want {
				t.Errorf("Convert(%s) = %q, want %q", tt.markup, got, tt.want)
			}
		})
	}
}

func TestConvert_GarbageReturnsSomething(t *testing.T) {
	// A lenient parse of junk must not panic; empty output is acceptable.
	_ = Convert("<<<not markup")
}
