package mathml

import (
	"regexp"
	"strings"
)

// Postprocess applies order-sensitive text-level repairs to converter
// output. sourceMarkup is the normalized markup the LaTeX came from; the
// final backstop consults it for radical indicators.
func Postprocess(latex, sourceMarkup string) string {
	s := balanceDelimiters(latex)
	s = repairOperators(s)
	s = joinFractionArgs(s)
	s = rebuildPiecewise(s)
	s = repairRadicalGlyphs(s)
	s = radicalBackstop(s, sourceMarkup)
	return strings.TrimSpace(s)
}

// balanceDelimiters repairs mismatched \left/\right pairs by appending or
// prepending null delimiters.
func balanceDelimiters(s string) string {
	lefts := strings.Count(s, `\left`) - strings.Count(s, `\leftarrow`)
	rights := strings.Count(s, `\right`) - strings.Count(s, `\rightarrow`)
	for ; lefts > rights; rights++ {
		s += `\right.`
	}
	for ; rights > lefts; lefts++ {
		s = `\left.` + s
	}
	return s
}

var (
	splitLimRe   = regexp.MustCompile(`\bl(\s+i\s*m|\s*i\s+m)\b`)
	bareLimRe    = regexp.MustCompile(`(^|[^\\a-zA-Z])lim\b`)
	fracSpaceRe  = regexp.MustCompile(`\\frac\s+\{`)
	sqrtBareRe   = regexp.MustCompile(`\\sqrt\s+([A-Za-z0-9])`)
	glyphBraceRe = regexp.MustCompile(`√\s*\{`)
	glyphBareRe  = regexp.MustCompile(`√\s*([A-Za-z0-9])`)
)

// repairOperators fixes sequences the flat conversion is known to garble:
// split-up lim, raw arrow glyphs and raw set-builder braces.
func repairOperators(s string) string {
	s = splitLimRe.ReplaceAllString(s, `\lim`)
	s = bareLimRe.ReplaceAllString(s, `$1\lim`)
	replacements := [...][2]string{
		{`\lim\lim`, `\lim`},
		{"→", `\to `},
		{"⇒", `\Rightarrow `},
		{"⇔", `\Leftrightarrow `},
		{"∈", `\in `},
		{"∞", `\infty `},
		{"≤", `\le `},
		{"≥", `\ge `},
		{"≠", `\ne `},
		{`\{ \}`, `\varnothing `},
	}
	for _, r := range replacements {
		s = strings.ReplaceAll(s, r[0], r[1])
	}
	return s
}

// joinFractionArgs rejoins fraction arguments that were split apart by
// injected whitespace: \frac {a} {b} becomes \frac{a}{b}.
func joinFractionArgs(s string) string {
	s = fracSpaceRe.ReplaceAllString(s, `\frac{`)
	var out strings.Builder
	i := 0
	for {
		j := strings.Index(s[i:], `\frac{`)
		if j < 0 {
			out.WriteString(s[i:])
			break
		}
		j += i
		numEnd := matchBrace(s, j+len(`\frac`))
		if numEnd < 0 {
			out.WriteString(s[i:])
			break
		}
		out.WriteString(s[i:numEnd])
		k := numEnd
		for k < len(s) && (s[k] == ' ' || s[k] == '\t' || s[k] == '\n') {
			k++
		}
		// Only close the gap when a denominator group actually follows.
		if k < len(s) && s[k] == '{' {
			i = k
		} else {
			i = numEnd
		}
	}
	return out.String()
}

// matchBrace returns the index just past the brace group opening at
// s[open] ('{'), tracking nested braces, or -1.
func matchBrace(s string, open int) int {
	if open >= len(s) || s[open] != '{' {
		return -1
	}
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++ // skip escaped character, including \{ and \}
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}
	return -1
}

var piecewiseOpeners = [...]string{`\left\{\begin{matrix}`, `\{\begin{matrix}`}

// rebuildPiecewise rewrites a brace-opened matrix block into a proper
// cases construct. The converter emits this malformed shape for piecewise
// function definitions.
func rebuildPiecewise(s string) string {
	for _, opener := range piecewiseOpeners {
		for {
			start := strings.Index(s, opener)
			if start < 0 {
				break
			}
			bodyStart := start + len(opener)
			end := matchMatrixEnd(s, bodyStart)
			if end < 0 {
				break
			}
			body := s[bodyStart:end]
			tail := s[end+len(`\end{matrix}`):]
			tail = strings.TrimPrefix(strings.TrimLeft(tail, " "), `\right.`)
			s = s[:start] + `\begin{cases}` + body + `\end{cases}` + tail
		}
	}
	return s
}

// matchMatrixEnd finds the \end{matrix} matching the already-open matrix
// at from, tracking nested begin/end depth.
func matchMatrixEnd(s string, from int) int {
	depth := 1
	i := from
	for depth > 0 {
		nb := strings.Index(s[i:], `\begin{matrix}`)
		ne := strings.Index(s[i:], `\end{matrix}`)
		if ne < 0 {
			return -1
		}
		if nb >= 0 && nb < ne {
			depth++
			i += nb + len(`\begin{matrix}`)
		} else {
			depth--
			if depth == 0 {
				return i + ne
			}
			i += ne + len(`\end{matrix}`)
		}
	}
	return -1
}

// repairRadicalGlyphs replaces literal radical glyphs and rewraps bare
// single-character radical arguments.
func repairRadicalGlyphs(s string) string {
	s = glyphBraceRe.ReplaceAllString(s, `\sqrt{`)
	s = glyphBareRe.ReplaceAllString(s, `\sqrt{$1}`)
	s = strings.ReplaceAll(s, "√", `\sqrt{}`)
	s = sqrtBareRe.ReplaceAllString(s, `\sqrt{$1}`)
	return s
}

var radicalIndicators = [...]string{"<msqrt", "<mroot", "√", `notation="radical"`}

// radicalBackstop wraps the whole output in a radical when the source
// markup contained radical indicators but the LaTeX lost them all. Last
// resort for paths that bypassed the radical-preserving conversion.
func radicalBackstop(s, sourceMarkup string) string {
	if strings.Contains(s, `\sqrt`) {
		return s
	}
	for _, ind := range radicalIndicators {
		if strings.Contains(sourceMarkup, ind) {
			return `\sqrt{` + s + `}`
		}
	}
	return s
}
