package terminal

import (
	"bytes"
	"fmt"
)

// KeyBinding pairs the exact bytes a keystroke produces with a command code.
// Several keystrokes may produce the same command.
type KeyBinding struct {
	Seq  []byte
	Code CommandCode
}

// Keymap is an ordered list of bindings. Order is load bearing: search scans
// it front to back and the first exact match wins, which is how earlier
// passes of the build take priority over later ones.
type Keymap []KeyBinding

// DefaultKeymap holds the built-in bindings, appended after user and
// capability entries so either can shadow them.
const DefaultKeymap = `up=\020:do=\016:le=\002:ri=\006:re=\014:un=\025:cl=\013:ws=\027:df=\004:db=\010:db=\177:pr=\033p:ne=\033n:ac=\015:ex=\033e:ta=\033t:jc=\033j`

// NewKeymap builds the key table in three passes, each appending and never
// replacing: the user override string, bindings synthesized from the
// capability database's special keys, and the built-in defaults.
func NewKeymap(user string, caps *Caps) (Keymap, error) {
	var km Keymap
	if user != "" {
		if err := km.read(user); err != nil {
			return nil, fmt.Errorf("keymap: %w", err)
		}
	}
	if caps != nil {
		if err := km.read(capsKeymap(caps)); err != nil {
			return nil, fmt.Errorf("keymap capabilities: %w", err)
		}
	}
	if err := km.read(DefaultKeymap); err != nil {
		return nil, fmt.Errorf("keymap defaults: %w", err)
	}
	return km, nil
}

func (km *Keymap) read(src string) error {
	p := newVarParser(src, commandLabels)
	for {
		code, ok, err := p.nextLabel()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		*km = append(*km, KeyBinding{Seq: p.readValue(), Code: CommandCode(code)})
	}
}

// capsKeymap writes the capability database's special keys in the KEYMAP
// grammar so they are parsed exactly like user-supplied bindings. Keys the
// terminal does not have contribute nothing.
func capsKeymap(c *Caps) string {
	var b []byte
	add := func(name, seq string) {
		if seq == "" {
			return
		}
		b = append(b, name...)
		b = append(b, '=')
		b = appendEscaped(b, seq)
		b = append(b, varSep)
	}
	add("up", c.KeyUp)
	add("do", c.KeyDown)
	add("le", c.KeyLeft)
	add("ri", c.KeyRight)
	add("pr", c.KeyF1)
	add("ne", c.KeyF2)
	add("ac", c.KeyF3)
	add("jc", c.KeyF4)
	return string(b)
}

// Search outcomes below zero; values at or above zero are entry indices.
const (
	matchPrefix = -1 // buffer is a proper prefix of at least one entry
	matchNone   = -2 // buffer matches nothing
)

// search scans the table in order for the accumulated keystroke. An exact
// match returns that entry's index and is checked before prefixes at every
// step, so a short binding fires even when a longer one shares its start.
func (km Keymap) search(stroke []byte) int {
	prefixes := 0
	for i := range km {
		if bytes.Equal(km[i].Seq, stroke) {
			return i
		}
		if len(km[i].Seq) > len(stroke) && bytes.HasPrefix(km[i].Seq, stroke) {
			prefixes++
		}
	}
	if prefixes > 0 {
		return matchPrefix
	}
	return matchNone
}
