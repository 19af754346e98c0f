package markdown

import (
	"regexp"
	"strings"
)

var (
	fracPattern  = regexp.MustCompile(`\\frac\{([^{}]*)\}\{([^{}]*)\}`)
	sqrtPattern  = regexp.MustCompile(`\\sqrt\{([^{}]*)\}`)
	subPattern   = regexp.MustCompile(`_\{([^{}]*)\}`)
	supPattern   = regexp.MustCompile(`\^\{([^{}]*)\}`)
	spacePattern = regexp.MustCompile(`\s+`)
)

var texSymbols = strings.NewReplacer(
	`\lim`, "lim",
	`\to`, "→",
	`\infty`, "∞",
	`\pi`, "π",
	`\theta`, "θ",
	`\Delta`, "Δ",
	`\delta`, "δ",
	`\epsilon`, "ε",
	`\sum`, "Σ",
	`\int`, "∫",
	`\cdot`, "·",
	`\times`, "×",
	`\pm`, "±",
	`\left`, "",
	`\right`, "",
	`\leq`, "≤",
	`\geq`, "≥",
	`\le`, "≤",
	`\ge`, "≥",
	`\neq`, "≠",
	`\approx`, "≈",
	`\,`, " ",
)

var superscripts = map[rune]rune{
	'0': '⁰', '1': '¹', '2': '²', '3': '³', '4': '⁴',
	'5': '⁵', '6': '⁶', '7': '⁷', '8': '⁸', '9': '⁹',
	'n': 'ⁿ', '-': '⁻', '+': '⁺',
}

// PrettyTeX renders a small TeX subset as plain unicode for terminal display.
// Unknown commands pass through unchanged.
func PrettyTeX(tex string) string {
	out := sqrtPattern.ReplaceAllString(tex, "√($1)")
	out = fracPattern.ReplaceAllString(out, "($1)/($2)")
	out = subPattern.ReplaceAllString(out, "_$1")
	out = supPattern.ReplaceAllStringFunc(out, func(match string) string {
		return superscript(match[2 : len(match)-1])
	})
	out = texSymbols.Replace(out)
	out = simpleSuperscripts(out)
	return strings.TrimSpace(spacePattern.ReplaceAllString(out, " "))
}

func superscript(s string) string {
	var b strings.Builder
	for _, r := range s {
		sup, ok := superscripts[r]
		if !ok {
			return "^(" + s + ")"
		}
		b.WriteRune(sup)
	}
	return b.String()
}

func simpleSuperscripts(s string) string {
	runes := []rune(s)
	var b strings.Builder
	for i := 0; i < len(runes); i++ {
		if runes[i] == '^' && i+1 < len(runes) {
			if sup, ok := superscripts[runes[i+1]]; ok {
				b.WriteRune(sup)
				i++
				continue
			}
		}
		b.WriteRune(runes[i])
	}
	return b.String()
}
