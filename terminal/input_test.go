package terminal

import (
	"bytes"
	"io"
	"testing"
)

func testReader(km Keymap, input string) (*keyReader, *int) {
	bells := 0
	k := newKeyReader(bytes.NewReader([]byte(input)), km, func() { bells++ })
	return k, &bells
}

func TestReadCommandExactMatch(t *testing.T) {
	km := Keymap{{Seq: []byte("\x1b[A"), Code: CmdUp}}
	k, bells := testReader(km, "\x1b[A")

	cmd, err := k.readCommand()
	if err != nil {
		t.Fatalf("readCommand failed: %v", err)
	}
	if cmd.Code() != CmdUp {
		t.Errorf("code mismatch: got %v, want CmdUp", cmd.Code())
	}
	if cmd.Arg() != 'A' {
		t.Errorf("argument should be the last byte: got %q", cmd.Arg())
	}
	if *bells != 0 {
		t.Errorf("unexpected bells: %d", *bells)
	}
}

// TestReadCommandAmbiguous drives the a/ab/ac table. A lone 'a' waits, "ab"
// resolves exactly, and "ac" is a dead end that throws away both bytes.
func TestReadCommandAmbiguous(t *testing.T) {
	km := Keymap{
		{Seq: []byte("ab"), Code: CmdUp},
		{Seq: []byte("ac"), Code: CmdDown},
	}

	k, bells := testReader(km, "ab")
	cmd, err := k.readCommand()
	if err != nil {
		t.Fatalf("readCommand failed: %v", err)
	}
	if cmd.Code() != CmdUp || cmd.Arg() != 'b' {
		t.Errorf("ab mismatch: got %v arg %q", cmd.Code(), cmd.Arg())
	}
	if *bells != 0 {
		t.Errorf("unexpected bells: %d", *bells)
	}

	// 'a' alone blocks for more input; the reader surfaces the stream end
	k, _ = testReader(km, "a")
	if _, err := k.readCommand(); err != io.EOF {
		t.Errorf("lone prefix should keep reading: got %v", err)
	}
}

// TestReadCommandDeadEndDiscards verifies that a failed multi-byte
// keystroke is thrown away whole, including the byte that killed it, before
// recognition restarts.
func TestReadCommandDeadEndDiscards(t *testing.T) {
	km := Keymap{
		{Seq: []byte("ab"), Code: CmdUp},
	}
	// "ax" dead-ends; the following "ab" resolves on a fresh buffer
	k, bells := testReader(km, "axab")

	cmd, err := k.readCommand()
	if err != nil {
		t.Fatalf("readCommand failed: %v", err)
	}
	if cmd.Code() != CmdUp || cmd.Arg() != 'b' {
		t.Errorf("post-restart mismatch: got %v arg %q", cmd.Code(), cmd.Arg())
	}
	if *bells != 1 {
		t.Errorf("dead end should ring the bell once: got %d", *bells)
	}
}

// TestReadCommandExactBeatsPrefix verifies that a one-byte binding fires
// immediately even when longer bindings share its first byte.
func TestReadCommandExactBeatsPrefix(t *testing.T) {
	km := Keymap{
		{Seq: []byte("ab"), Code: CmdDown},
		{Seq: []byte("a"), Code: CmdUp},
	}
	k, _ := testReader(km, "ab")

	cmd, err := k.readCommand()
	if err != nil {
		t.Fatalf("readCommand failed: %v", err)
	}
	if cmd.Code() != CmdUp || cmd.Arg() != 'a' {
		t.Errorf("bare 'a' should fire first: got %v arg %q", cmd.Code(), cmd.Arg())
	}

	// The 'b' left in the stream self-inserts on the next call
	cmd, err = k.readCommand()
	if err != nil {
		t.Fatalf("second readCommand failed: %v", err)
	}
	if cmd.Code() != CmdInsert || cmd.Arg() != 'b' {
		t.Errorf("leftover byte mismatch: got %v arg %q", cmd.Code(), cmd.Arg())
	}
}

func TestReadCommandSelfInsert(t *testing.T) {
	km := Keymap{{Seq: []byte("\x1b[A"), Code: CmdUp}}
	for _, c := range []byte{'q', ' ', '~', '\n', '\t'} {
		k, bells := testReader(km, string(c))
		cmd, err := k.readCommand()
		if err != nil {
			t.Fatalf("readCommand(%q) failed: %v", c, err)
		}
		if cmd.Code() != CmdInsert || cmd.Arg() != c {
			t.Errorf("self-insert %q mismatch: got %v arg %q", c, cmd.Code(), cmd.Arg())
		}
		if *bells != 0 {
			t.Errorf("self-insert %q rang the bell", c)
		}
	}
}

// TestReadCommandRejectsBareControl verifies that an unbound control
// character is refused with a bell and recognition restarts.
func TestReadCommandRejectsBareControl(t *testing.T) {
	km := Keymap{{Seq: []byte("\x1b[A"), Code: CmdUp}}
	k, bells := testReader(km, "\x01q")

	cmd, err := k.readCommand()
	if err != nil {
		t.Fatalf("readCommand failed: %v", err)
	}
	if cmd.Code() != CmdInsert || cmd.Arg() != 'q' {
		t.Errorf("post-reject mismatch: got %v arg %q", cmd.Code(), cmd.Arg())
	}
	if *bells != 1 {
		t.Errorf("rejected control should ring the bell once: got %d", *bells)
	}
}

// TestReadCommandQuoting verifies that the quote character forces the next
// byte through as a self-insert, control characters included.
func TestReadCommandQuoting(t *testing.T) {
	km := Keymap{{Seq: []byte{0x01}, Code: CmdUp}}

	k, bells := testReader(km, string([]byte{quoteKey, 0x01}))
	cmd, err := k.readCommand()
	if err != nil {
		t.Fatalf("readCommand failed: %v", err)
	}
	if cmd.Code() != CmdInsert || cmd.Arg() != 0x01 {
		t.Errorf("quoted byte mismatch: got %v arg 0x%02x", cmd.Code(), cmd.Arg())
	}
	if *bells != 0 {
		t.Errorf("quoting rang the bell: %d", *bells)
	}
}

// TestReadCommandQuoteKeyBindable verifies that a table entry for the quote
// character takes priority over quoting, since exact matches are checked
// before the self-insert rules.
func TestReadCommandQuoteKeyBindable(t *testing.T) {
	km := Keymap{{Seq: []byte{quoteKey}, Code: CmdRefresh}}
	k, _ := testReader(km, string([]byte{quoteKey}))

	cmd, err := k.readCommand()
	if err != nil {
		t.Fatalf("readCommand failed: %v", err)
	}
	if cmd.Code() != CmdRefresh {
		t.Errorf("bound quote key mismatch: got %v", cmd.Code())
	}
}

func TestReadCommandEOF(t *testing.T) {
	k, _ := testReader(Keymap{}, "")
	if _, err := k.readCommand(); err != io.EOF {
		t.Errorf("expected EOF, got %v", err)
	}
}

func TestReadCommandEOFAfterQuote(t *testing.T) {
	k, _ := testReader(Keymap{}, string([]byte{quoteKey}))
	if _, err := k.readCommand(); err != io.EOF {
		t.Errorf("expected EOF after dangling quote, got %v", err)
	}
}

// TestReadCommandDefaultTable drives the full default keymap through the
// reader: a control binding, an escape pair, and a printable.
func TestReadCommandDefaultTable(t *testing.T) {
	km, err := NewKeymap("", nil)
	if err != nil {
		t.Fatalf("NewKeymap failed: %v", err)
	}
	k, bells := testReader(km, "\x10\x1bph")

	cmd, err := k.readCommand()
	if err != nil {
		t.Fatalf("ctrl-P read failed: %v", err)
	}
	if cmd.Code() != CmdUp {
		t.Errorf("ctrl-P mismatch: got %v", cmd.Code())
	}

	cmd, err = k.readCommand()
	if err != nil {
		t.Fatalf("esc-p read failed: %v", err)
	}
	if cmd.Code() != CmdPrevBlock || cmd.Arg() != 'p' {
		t.Errorf("esc-p mismatch: got %v arg %q", cmd.Code(), cmd.Arg())
	}

	cmd, err = k.readCommand()
	if err != nil {
		t.Fatalf("printable read failed: %v", err)
	}
	if cmd.Code() != CmdInsert || cmd.Arg() != 'h' {
		t.Errorf("printable mismatch: got %v arg %q", cmd.Code(), cmd.Arg())
	}
	if *bells != 0 {
		t.Errorf("unexpected bells: %d", *bells)
	}
}
