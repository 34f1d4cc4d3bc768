package mathml

import "testing"

func TestPostprocess_BalancesDelimiters(t *testing.T) {
	tests := []struct {
		name, in, want string
	}{
		{"missing right", `\left(x`, `\left(x\right.`},
		{"missing left", `x\right)`, `\left.x\right)`},
		{"arrows not counted", `a\leftarrow b`, `a\leftarrow b`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Postprocess(tt.in, ""); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPostprocess_RepairsLim(t *testing.T) {
	tests := []struct {
		name, in, want string
	}{
		{"split", `l i m_{x\to 0}`, `\lim_{x\to 0}`},
		{"bare", `lim_{x\to 0}`, `\lim_{x\to 0}`},
		{"already escaped", `\lim_{x\to 0}`, `\lim_{x\to 0}`},
		{"word containing lim untouched", `climb`, `climb`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Postprocess(tt.in, ""); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPostprocess_JoinsFractionArgs(t *testing.T) {
	got := Postprocess(`\frac {a+1} {b}`, "")
	if got != `\frac{a+1}{b}` {
		t.Errorf("got %q", got)
	}
}

func TestPostprocess_RebuildsPiecewise(t *testing.T) {
	in := `f(x)=\left\{\begin{matrix}1 & x>0 \\ 0 & x\le 0\end{matrix}\right.`
	want := `f(x)=\begin{cases}1 & x>0 \\ 0 & x\le 0\end{cases}`
	if got := Postprocess(in, ""); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPostprocess_RepairsRadicalGlyphs(t *testing.T) {
	tests := []struct {
		name, in, want string
	}{
		{"braced glyph", `√{2}`, `\sqrt{2}`},
		{"bare glyph", `√2`, `\sqrt{2}`},
		{"spaced sqrt arg", `\sqrt x`, `\sqrt{x}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Postprocess(tt.in, ""); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPostprocess_EmptySet(t *testing.T) {
	if got := Postprocess(`A=\{ \}`, ""); got != `A=\varnothing` {
		t.Errorf("got %q", got)
	}
}

func TestPostprocess_RadicalBackstop(t *testing.T) {
	got := Postprocess("x+1", `<msqrt><mi>x</mi><mn>1</mn></msqrt>`)
	if got != `\sqrt{x+1}` {
		t.Errorf("got %q", got)
	}
	// No indicator in the source: output passes through.
	if got := Postprocess("x+1", `<mi>x</mi>`); got != "x+1" {
		t.Errorf("got %q", got)
	}
	// Output already carries a radical: no double wrap.
	in := `\sqrt{x}+1`
	if got := Postprocess(in, `<msqrt/>`); got != in {
		t.Errorf("got %q", got)
	}
}
