package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"sync/atomic"

	"github.com/ebfe/cbw/terminal"
)

var (
	termFlag     = flag.String("term", "", "terminal type, overriding $TERM")
	keymapFlag   = flag.String("keymap", "", "key bindings, overriding $KEYMAP")
	graphicsFlag = flag.String("graphics", "", "symbol table, overriding $GRAPHICS")
)

func main() {
	// Panic recovery: the tty must come back up cooked before the trace prints
	defer func() {
		if r := recover(); r != nil {
			terminal.EmergencyReset(os.Stdout)
			fmt.Fprintf(os.Stderr, "\r\nINPUT PROBE CRASHED: %v\r\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
			os.Exit(1)
		}
	}()

	flag.Parse()

	opts := []terminal.Option{
		terminal.WithDiagnostics(func(msg string) {
			// \r\n because the tty is in raw mode while this runs
			fmt.Fprintf(os.Stderr, "\r\nprobe: %s\r\n", msg)
		}),
	}
	if *termFlag != "" {
		opts = append(opts, terminal.WithTerm(*termFlag))
	}
	if *keymapFlag != "" {
		opts = append(opts, terminal.WithKeymap(*keymapFlag))
	}
	if *graphicsFlag != "" {
		opts = append(opts, terminal.WithGraphics(*graphicsFlag))
	}

	t, err := terminal.Open(opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open terminal: %v\n", err)
		os.Exit(1)
	}
	defer t.Close()

	var resized atomic.Bool
	t.SetResizeHandler(func(cols, rows int) {
		resized.Store(true)
	})

	drawChrome(t)

	const firstRow = 3
	row := firstRow
	for {
		cmd, err := t.ReadCommand()
		if errors.Is(err, io.EOF) {
			return
		}
		if err != nil {
			panic(err)
		}

		// Redraw lazily; the resize callback runs on another goroutine and
		// must not touch the renderer itself
		if resized.Swap(false) {
			t.Clear()
			drawChrome(t)
			row = firstRow
		}

		_, rows := t.Size()
		if row >= rows-1 {
			row = firstRow
		}
		t.MoveTo(row, 0)
		t.ClearToEOL()
		t.WriteString(terminal.CommandName(cmd.Code()) + " ")
		// Control arguments come out as their pseudo-symbols
		t.PutSymbol(terminal.CharToSymbol(int(cmd.Arg())))
		t.EnterMode(terminal.ModeNormal)
		row++

		t.MoveTo(rows-1, 0)
		t.Flush()

		if cmd.Code() == terminal.CmdExecute ||
			(cmd.Code() == terminal.CmdInsert && cmd.Arg() == 'q') {
			return
		}
	}
}

// drawChrome paints the banner and a one-line rendering smoke check of
// every pseudo-symbol.
func drawChrome(t *terminal.Terminal) {
	cols, rows := t.Size()

	t.MoveTo(0, 0)
	t.EnterMode(terminal.ModeStandout)
	t.WriteString(" input probe ")
	t.EnterMode(terminal.ModeNormal)
	t.WriteString(fmt.Sprintf(" %dx%d, quit with q or ESC e", cols, rows))

	t.MoveTo(1, 0)
	t.WriteString("symbols: ")
	for _, s := range []terminal.Symbol{
		terminal.SymTab,
		terminal.SymNotASCII,
		terminal.SymLinefeed,
		terminal.SymCarriageReturn,
		terminal.SymFormfeed,
		terminal.SymControlCode,
		terminal.SymUnknown,
		terminal.SymUnderline,
		terminal.SymHorizontalBar,
		terminal.SymVerticalBar,
		terminal.SymLowerLeftCorner,
	} {
		t.PutSymbol(s)
		t.EnterMode(terminal.ModeNormal)
		t.WriteString(" ")
	}

	t.MoveTo(rows-1, 0)
	t.Flush()
}
