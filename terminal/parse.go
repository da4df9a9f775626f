package terminal

import (
	"fmt"
	"strings"
)

// Config grammar characters. Entries are separated by colons, and a colon
// inside a value must be escaped. The mode tags accepted after a graphics
// label select normal, graphics and standout.
const (
	varSep   = ':'
	varTerm  = ':'
	varModes = "NGS"
)

// label pairs a two-character config name with the code it stands for.
type label struct {
	name string
	code int
}

// varParser walks one label=value string against a fixed label table. The
// two grammars share it: keymap entries are label=value, graphics entries
// are label=\Mvalue with a mode tag ahead of the value. Any malformed label
// or mode is an error; the configuration must be fully well formed before
// either table is used.
type varParser struct {
	src    string
	pos    int
	labels []label
}

func newVarParser(src string, labels []label) *varParser {
	return &varParser{src: src, labels: labels}
}

// nextLabel advances past leading separators and matches the next label,
// returning its code and leaving the parser just after the following '='.
// ok is false at a clean end of string.
func (p *varParser) nextLabel() (code int, ok bool, err error) {
	for p.pos < len(p.src) && p.src[p.pos] == varSep {
		p.pos++
	}
	if p.pos == len(p.src) {
		return 0, false, nil
	}
	rest := p.src[p.pos:]
	for _, l := range p.labels {
		if len(rest) < len(l.name) || !strings.EqualFold(rest[:len(l.name)], l.name) {
			continue
		}
		eq := strings.IndexByte(rest, '=')
		if eq < 0 {
			return 0, false, fmt.Errorf("no '=' after label %q", l.name)
		}
		p.pos += eq + 1
		return l.code, true, nil
	}
	return 0, false, fmt.Errorf("unrecognized label at %q", head(rest))
}

// readMode consumes the \N, \G or \S tag that must open a graphics value.
func (p *varParser) readMode() (Mode, error) {
	rest := p.src[p.pos:]
	if len(rest) < 2 || rest[0] != '\\' || !strings.ContainsRune(varModes, rune(rest[1])) {
		return 0, fmt.Errorf("value at %q must start with \\N, \\G or \\S", head(rest))
	}
	p.pos += 2
	return Mode(rest[1]), nil
}

// readValue decodes value bytes up to an unescaped separator or the end of
// the string. An escaped colon lands in the value without ending it.
func (p *varParser) readValue() []byte {
	var out []byte
	for p.pos < len(p.src) && p.src[p.pos] != varTerm {
		var c byte
		c, p.pos = unescape(p.src, p.pos)
		out = append(out, c)
	}
	return out
}

// head trims s for use in error messages.
func head(s string) string {
	if len(s) > 12 {
		return s[:12] + "..."
	}
	return s
}
