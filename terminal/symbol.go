package terminal

// Symbol is one abstract display unit. Values below symGraphic are literal
// terminal bytes that pass through unchanged; values with the symGraphic bit
// set are pseudo-symbols drawn through the graphics table. Two symbols may
// look the same on a given terminal, but each has a single use in the code.
type Symbol uint16

const (
	symGraphic Symbol = 0x100 // marks pseudo-symbols
	symbolMask Symbol = 0xFF  // low bits index the graphics table
)

// Pseudo-symbols, in graphics label table order.
const (
	SymTab             Symbol = symGraphic | iota // displayed tab
	SymNotASCII                                   // byte outside the ascii range
	SymLinefeed                                   // displayed linefeed
	SymCarriageReturn                             // displayed carriage return
	SymFormfeed                                   // displayed formfeed
	SymControlCode                                // any other control character
	SymUnknown                                    // plaintext not yet known
	SymUnderline                                  // pseudo underline character
	SymHorizontalBar                              // horizontal bar
	SymVerticalBar                                // vertical bar
	SymLowerLeftCorner                            // lower left corner
)

// numSymbols is the size of the graphics table.
const numSymbols = 11

// Pseudo reports whether s is a pseudo-symbol rather than a literal byte.
func (s Symbol) Pseudo() bool {
	return s&symGraphic != 0
}

// CharToSymbol returns the symbol used to display the given plaintext
// character. The value -1 denotes a character whose plaintext is unknown.
func CharToSymbol(c int) Symbol {
	switch {
	case c >= 0 && c <= 0xFF && printable(byte(c)):
		return Symbol(c)
	case c == -1:
		return SymUnknown
	case c > 0x7F || c < 0:
		return SymNotASCII
	case c == '\n':
		return SymLinefeed
	case c == '\r':
		return SymCarriageReturn
	case c == '\f':
		return SymFormfeed
	case c == '\t':
		return SymTab
	default:
		return SymControlCode
	}
}

// printable reports whether c is an ascii printing character, space included.
func printable(c byte) bool {
	return c >= 0x20 && c < 0x7F
}

// symbolLabels maps the two-character names accepted in the GRAPHICS
// variable to pseudo-symbol codes.
var symbolLabels = []label{
	{"tb", int(SymTab)},
	{"na", int(SymNotASCII)},
	{"lf", int(SymLinefeed)},
	{"cr", int(SymCarriageReturn)},
	{"ff", int(SymFormfeed)},
	{"cc", int(SymControlCode)},
	{"uk", int(SymUnknown)},
	{"ul", int(SymUnderline)},
	{"hb", int(SymHorizontalBar)},
	{"vb", int(SymVerticalBar)},
	{"ll", int(SymLowerLeftCorner)},
}

// symbolToName maps pseudo-symbols to readable names for diagnostics
var symbolToName = map[Symbol]string{
	SymTab:             "tab",
	SymNotASCII:        "not-ascii",
	SymLinefeed:        "linefeed",
	SymCarriageReturn:  "carriage-return",
	SymFormfeed:        "formfeed",
	SymControlCode:     "control-code",
	SymUnknown:         "unknown",
	SymUnderline:       "underline",
	SymHorizontalBar:   "horizontal-bar",
	SymVerticalBar:     "vertical-bar",
	SymLowerLeftCorner: "lower-left-corner",
}

// SymbolName returns a readable name for a pseudo-symbol, or the character
// itself for a literal printable byte.
func SymbolName(s Symbol) string {
	if n, ok := symbolToName[s]; ok {
		return n
	}
	if !s.Pseudo() && printable(byte(s)) {
		return string(rune(s))
	}
	return ""
}
