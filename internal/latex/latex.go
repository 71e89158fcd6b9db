// Package latex converts a practical subset of TeX math notation to Unicode
// text. Unknown commands are left as written, so the output always degrades
// to something readable instead of failing.
package latex

import (
	"strings"
	"unicode"
)

// Delimiter pairs recognized by StripDelimiters, longest first.
var delimiters = [][2]string{
	{`$$`, `$$`},
	{`\[`, `\]`},
	{`\(`, `\)`},
	{`$`, `$`},
}

// StripDelimiters removes one enclosing pair of math delimiters from s and
// reports whether the pair denotes display math.
func StripDelimiters(s string) (body string, display bool) {
	trimmed := strings.TrimSpace(s)
	for _, d := range delimiters {
		if len(trimmed) >= len(d[0])+len(d[1]) &&
			strings.HasPrefix(trimmed, d[0]) && strings.HasSuffix(trimmed, d[1]) {
			body = trimmed[len(d[0]) : len(trimmed)-len(d[1])]
			return strings.TrimSpace(body), d[0] == `$$` || d[0] == `\[`
		}
	}
	return trimmed, false
}

// Convert renders TeX source as Unicode text.
func Convert(src string) string {
	p := &parser{src: []rune(src)}
	return strings.TrimSpace(p.parseUntil(0))
}

type parser struct {
	src []rune
	pos int
}

func (p *parser) eof() bool { return p.pos >= len(p.src) }

func (p *parser) peek() rune {
	if p.eof() {
		return 0
	}
	return p.src[p.pos]
}

// parseUntil consumes input until EOF or the closing rune stop (consumed).
// A zero stop parses to EOF.
func (p *parser) parseUntil(stop rune) string {
	var b strings.Builder
	for !p.eof() {
		r := p.src[p.pos]
		switch {
		case stop != 0 && r == stop:
			p.pos++
			return b.String()
		case r == '{':
			p.pos++
			b.WriteString(p.parseUntil('}'))
		case r == '\\':
			p.pos++
			b.WriteString(p.command())
		case r == '^':
			p.pos++
			b.WriteString(superscript(p.argument()))
		case r == '_':
			p.pos++
			b.WriteString(subscript(p.argument()))
		case r == '&':
			p.pos++
		case r == '~':
			p.pos++
			b.WriteRune(' ')
		case r == '\'':
			p.pos++
			b.WriteRune('′')
		default:
			p.pos++
			b.WriteRune(r)
		}
	}
	return b.String()
}

// argument reads one command argument: a braced group, a command or a rune.
func (p *parser) argument() string {
	for !p.eof() && unicode.IsSpace(p.peek()) {
		p.pos++
	}
	if p.eof() {
		return ""
	}
	switch r := p.src[p.pos]; r {
	case '{':
		p.pos++
		return p.parseUntil('}')
	case '\\':
		p.pos++
		return p.command()
	default:
		p.pos++
		return string(r)
	}
}

// optional reads a bracketed optional argument if one follows.
func (p *parser) optional() (string, bool) {
	if p.peek() != '[' {
		return "", false
	}
	p.pos++
	return p.parseUntil(']'), true
}

// raw reads a braced argument without interpreting its content.
func (p *parser) raw() string {
	for !p.eof() && unicode.IsSpace(p.peek()) {
		p.pos++
	}
	if p.peek() != '{' {
		return p.argument()
	}
	p.pos++
	depth := 1
	start := p.pos
	for !p.eof() {
		switch p.src[p.pos] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				s := string(p.src[start:p.pos])
				p.pos++
				return s
			}
		}
		p.pos++
	}
	return string(p.src[start:])
}

// name reads a command name after the backslash.
func (p *parser) name() string {
	if p.eof() {
		return ""
	}
	start := p.pos
	if !unicode.IsLetter(p.src[p.pos]) {
		p.pos++
		return string(p.src[start:p.pos])
	}
	for !p.eof() && unicode.IsLetter(p.src[p.pos]) {
		p.pos++
	}
	return string(p.src[start:p.pos])
}

func (p *parser) command() string {
	name := p.name()
	switch name {
	case "":
		return `\`
	case "frac", "dfrac", "tfrac":
		num := p.argument()
		den := p.argument()
		return fraction(num, den)
	case "sqrt":
		index, _ := p.optional()
		return radical(index, p.argument())
	case "text", "textrm", "mathrm", "operatorname", "textit", "textbf", "mbox":
		return p.raw()
	case "mathbb":
		return mapRunes(p.argument(), doubleStruck)
	case "mathbf", "mathit", "mathsf", "mathcal", "boldsymbol":
		return p.argument()
	case "overline", "bar":
		return combine(p.argument(), '\u0305')
	case "hat":
		return combine(p.argument(), '\u0302')
	case "vec":
		return combine(p.argument(), '\u20d7')
	case "dot":
		return combine(p.argument(), '\u0307')
	case "tilde":
		return combine(p.argument(), '\u0303')
	case "not":
		return combine(p.argument(), '\u0338')
	case "begin", "end":
		// Environment names are dropped; rows are separated by \\.
		p.raw()
		return ""
	case `\`:
		return "\n"
	case "{", "}", "%", "$", "#", "_", "&":
		return name
	case "|":
		return "‖"
	}
	if s, ok := spacing[name]; ok {
		return s
	}
	if sizing[name] {
		return ""
	}
	if s, ok := symbols[name]; ok {
		return s
	}
	return `\` + name
}

func superscript(s string) string {
	if mapped, ok := mapAll(s, superscripts); ok {
		return mapped
	}
	return "^" + scriptGroup(s)
}

func subscript(s string) string {
	if mapped, ok := mapAll(s, subscripts); ok {
		return mapped
	}
	return "_" + scriptGroup(s)
}

// scriptGroup parenthesizes a script that could not be mapped to Unicode
// when it spans more than one rune.
func scriptGroup(s string) string {
	if len([]rune(s)) <= 1 {
		return s
	}
	return "(" + s + ")"
}

// mapAll maps every rune of s through m, failing if any rune is missing.
func mapAll(s string, m map[rune]rune) (string, bool) {
	if s == "" {
		return "", false
	}
	var b strings.Builder
	for _, r := range s {
		mapped, ok := m[r]
		if !ok {
			return "", false
		}
		b.WriteRune(mapped)
	}
	return b.String(), true
}

// mapRunes maps runes through m, keeping those without a mapping.
func mapRunes(s string, m map[rune]rune) string {
	var b strings.Builder
	for _, r := range s {
		if mapped, ok := m[r]; ok {
			b.WriteRune(mapped)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func combine(s string, mark rune) string {
	var b strings.Builder
	for _, r := range s {
		b.WriteRune(r)
		if !unicode.IsSpace(r) {
			b.WriteRune(mark)
		}
	}
	return b.String()
}

func fraction(num, den string) string {
	num, den = strings.TrimSpace(num), strings.TrimSpace(den)
	if v, ok := vulgarFractions[num+"/"+den]; ok {
		return v
	}
	return group(num) + "/" + group(den)
}

func radical(index, radicand string) string {
	sign := "√"
	switch strings.TrimSpace(index) {
	case "", "2":
	case "3":
		sign = "∛"
	case "4":
		sign = "∜"
	default:
		sign = superscript(strings.TrimSpace(index)) + "√"
	}
	return sign + group(strings.TrimSpace(radicand))
}

// group parenthesizes s when it is more than one atom.
func group(s string) string {
	if len([]rune(s)) <= 1 || isAtom(s) {
		return s
	}
	return "(" + s + ")"
}

func isAtom(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
