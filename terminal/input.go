package terminal

import "io"

// quoteKey makes the next byte self-insert even when it is a control
// character or bound in the key table.
const quoteKey = 0x11 // ctrl-Q

// keyReader turns raw input bytes into commands by matching them against an
// ordered key table. Reads block until a byte arrives; there is no timeout,
// so a keystroke may straddle any number of reads.
type keyReader struct {
	km     Keymap
	in     io.ByteReader
	bell   func()
	stroke []byte
}

func newKeyReader(in io.ByteReader, km Keymap, bell func()) *keyReader {
	if bell == nil {
		bell = func() {}
	}
	return &keyReader{km: km, in: in, bell: bell, stroke: make([]byte, 0, 16)}
}

// readCommand blocks until a complete keystroke resolves to a command.
// Rejected keystrokes ring the bell and recognition starts over.
func (k *keyReader) readCommand() (Command, error) {
	for {
		cmd, ok, err := k.attempt()
		if err != nil {
			return 0, err
		}
		if ok {
			return cmd, nil
		}
		k.bell()
	}
}

// attempt accumulates one keystroke from scratch. It returns ok=false when
// the keystroke was rejected and the caller should start over.
func (k *keyReader) attempt() (Command, bool, error) {
	k.stroke = k.stroke[:0]
	for {
		c, err := k.in.ReadByte()
		if err != nil {
			return 0, false, err
		}
		k.stroke = append(k.stroke, c)
		i := k.km.search(k.stroke)
		if i >= 0 {
			return MakeCommand(k.km[i].Code, c), true, nil
		}
		if i == matchPrefix {
			continue
		}
		// Dead end. A single unbound byte may still self-insert; a longer
		// keystroke is thrown away whole, including the byte that killed it.
		if len(k.stroke) != 1 {
			return 0, false, nil
		}
		if c == quoteKey {
			c, err = k.in.ReadByte()
			if err != nil {
				return 0, false, err
			}
			return MakeCommand(CmdInsert, c), true, nil
		}
		if printable(c) || c == '\n' || c == '\t' {
			return MakeCommand(CmdInsert, c), true, nil
		}
		return 0, false, nil
	}
}
