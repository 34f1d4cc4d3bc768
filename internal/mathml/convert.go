package mathml

import "strings"

// Convert renders MathML markup to LaTeX with a single flat tree walk.
// Radical elements are not trusted to this path; ConvertMarkup isolates
// them first. A defensive msqrt/mroot case exists anyway so a radical that
// reaches the walk is degraded, not lost.
func Convert(markup string) string {
	root, err := parseTree(markup)
	if err != nil || root == nil {
		return ""
	}
	return strings.TrimSpace(render(root))
}

func render(n *Node) string {
	switch n.Tag {
	case "#root", "math", "mrow", "mstyle", "semantics", "mpadded", "mphantom", "merror":
		return renderChildren(n, "")

	case "mi":
		return mapIdentifier(strings.TrimSpace(n.Text))
	case "mn":
		return strings.TrimSpace(n.Text)
	case "mo":
		return mapOperator(strings.TrimSpace(n.Text))
	case "mtext":
		t := strings.TrimSpace(n.Text)
		if t == "" {
			return " "
		}
		return `\text{` + t + `}`
	case "mspace":
		return `\ `

	case "mfrac":
		a, b := childPair(n)
		return `\frac{` + a + `}{` + b + `}`
	case "msup":
		a, b := childPair(n)
		return `{` + a + `}^{` + b + `}`
	case "msub":
		a, b := childPair(n)
		return `{` + a + `}_{` + b + `}`
	case "msubsup":
		if len(n.Children) >= 3 {
			return `{` + render(n.Children[0]) + `}_{` + render(n.Children[1]) + `}^{` + render(n.Children[2]) + `}`
		}
		a, b := childPair(n)
		return `{` + a + `}_{` + b + `}`

	case "munder":
		base, under := childPair(n)
		if base == `\lim` {
			return `\lim_{` + under + `}`
		}
		return `\underset{` + under + `}{` + base + `}`
	case "mover":
		base, over := childPair(n)
		switch over {
		case `\to`, "→":
			return `\vec{` + base + `}`
		case "^", "ˆ":
			return `\hat{` + base + `}`
		case "¯", "_":
			return `\overline{` + base + `}`
		}
		return `\overset{` + over + `}{` + base + `}`
	case "munderover":
		if len(n.Children) >= 3 {
			return `{` + render(n.Children[0]) + `}_{` + render(n.Children[1]) + `}^{` + render(n.Children[2]) + `}`
		}
		return renderChildren(n, "")

	case "mfenced":
		open := n.attr("open")
		closeDelim := n.attr("close")
		if n.Attr == nil || (open == "" && closeDelim == "" && n.attr("separators") == "") {
			open, closeDelim = "(", ")"
		}
		sep := n.attr("separators")
		if sep == "" {
			sep = ","
		}
		return leftDelim(open) + renderChildren(n, sep) + rightDelim(closeDelim)

	case "mtable":
		var rows []string
		for _, tr := range n.Children {
			var cells []string
			for _, td := range tr.Children {
				cells = append(cells, render(td))
			}
			rows = append(rows, strings.Join(cells, " & "))
		}
		return `\begin{matrix}` + strings.Join(rows, ` \\ `) + `\end{matrix}`
	case "mtr", "mtd", "mlabeledtr":
		return renderChildren(n, "")

	// Defensive only: ConvertMarkup tokenizes radicals before the walk.
	case "msqrt":
		return `\sqrt{` + renderChildren(n, "") + `}`
	case "mroot":
		a, b := childPair(n)
		return `\sqrt[` + b + `]{` + a + `}`

	default:
		return renderChildren(n, "")
	}
}

func renderChildren(n *Node, sep string) string {
	if len(n.Children) == 0 {
		return strings.TrimSpace(n.Text)
	}
	parts := make([]string, 0, len(n.Children))
	for _, c := range n.Children {
		parts = append(parts, render(c))
	}
	return strings.Join(parts, sep)
}

func childPair(n *Node) (string, string) {
	var a, b string
	if len(n.Children) > 0 {
		a = render(n.Children[0])
	}
	if len(n.Children) > 1 {
		b = render(n.Children[1])
	}
	return a, b
}

func leftDelim(d string) string {
	switch d {
	case "", ".":
		return `\left.`
	case "{":
		return `\left\{`
	case "|":
		return `\left|`
	default:
		return `\left` + d
	}
}

func rightDelim(d string) string {
	switch d {
	case "", ".":
		return `\right.`
	case "}":
		return `\right\}`
	case "|":
		return `\right|`
	default:
		return `\right` + d
	}
}

var identifiers = map[string]string{
	"α": `\alpha`, "β": `\beta`, "γ": `\gamma`, "δ": `\delta`,
	"ε": `\varepsilon`, "θ": `\theta`, "λ": `\lambda`, "μ": `\mu`,
	"π": `\pi`, "ρ": `\rho`, "σ": `\sigma`, "τ": `\tau`,
	"φ": `\varphi`, "ω": `\omega`,
	"Γ": `\Gamma`, "Δ": `\Delta`, "Ω": `\Omega`, "Σ": `\Sigma`,
	"∞": `\infty`,
	"lim":    `\lim`, "sin": `\sin`, "cos": `\cos`, "tan": `\tan`, "cot": `\cot`,
	"log": `\log`, "ln": `\ln`, "max": `\max`, "min": `\min`,
}

func mapIdentifier(s string) string {
	if v, ok := identifiers[s]; ok {
		return v
	}
	return s
}

var operators = map[string]string{
	"×": `\times `, "÷": `\div `, "±": `\pm `, "∓": `\mp `,
	"−": `-`, "⋅": `\cdot `, "∙": `\cdot `,
	"≤": `\le `, "≥": `\ge `, "≠": `\ne `, "≈": `\approx `,
	"≡": `\equiv `, "∞": `\infty `,
	"→": `\to `, "⇒": `\Rightarrow `, "⇔": `\Leftrightarrow `,
	"←": `\leftarrow `, "↦": `\mapsto `,
	"∈": `\in `, "∉": `\notin `, "⊂": `\subset `, "⊆": `\subseteq `,
	"∪": `\cup `, "∩": `\cap `, "∅": `\varnothing `,
	"∀": `\forall `, "∃": `\exists `,
	"∫": `\int `, "∑": `\sum `, "∏": `\prod `,
	"∂": `\partial `, "∇": `\nabla `,
	"lim": `\lim`, "{": `\{`, "}": `\}`, "%": `\%`,
	"′": `'`, "…": `\dots `, "⋯": `\cdots `,
}

func mapOperator(s string) string {
	if v, ok := operators[s]; ok {
		return v
	}
	return s
}
