package terminal

import "fmt"

// GraphicsEntry tells the renderer how to draw one pseudo-symbol: the mode
// the terminal must be in and the byte sequence to send once it is.
type GraphicsEntry struct {
	Mode Mode
	Seq  []byte
}

// GraphicsTable maps pseudo-symbol codes to their graphics. It is built once
// and read-only afterwards.
type GraphicsTable [numSymbols]GraphicsEntry

// DefaultGraphics is the built-in graphics for an ordinary CRT: standout
// letters for the control pseudo-symbols and plain ascii for the drawing
// ones. It is written in the GRAPHICS grammar and parsed like user input.
const DefaultGraphics = `tb=\St:na=\Sm:lf=\Sl:cr=\Sr:ff=\Sf:cc=\Sc:uk=\S?:ul=\N_:hb=\N-:vb=\N|:ll=\N+`

// NewGraphicsTable builds the table from the defaults, then applies the
// override string, if any. A symbol set twice keeps the later value, so
// overrides win. A malformed override is a configuration error.
func NewGraphicsTable(override string) (*GraphicsTable, error) {
	var gt GraphicsTable
	if err := gt.read(DefaultGraphics); err != nil {
		return nil, fmt.Errorf("graphics defaults: %w", err)
	}
	if override != "" {
		if err := gt.read(override); err != nil {
			return nil, fmt.Errorf("graphics: %w", err)
		}
	}
	return &gt, nil
}

func (gt *GraphicsTable) read(src string) error {
	p := newVarParser(src, symbolLabels)
	for {
		code, ok, err := p.nextLabel()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		mode, err := p.readMode()
		if err != nil {
			return err
		}
		gt[code&int(symbolMask)] = GraphicsEntry{Mode: mode, Seq: p.readValue()}
	}
}
