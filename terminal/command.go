package terminal

// Command packs a command code with its argument byte. The argument is the
// last byte of the keystroke that produced the command, which lets windows
// give one command different meanings for different keys (the return key can
// insert a newline in one window and run the command line in another).
type Command uint16

const (
	cmdShift = 8
	charMask = 0xFF
)

// MakeCommand builds a Command from a code and the triggering byte.
func MakeCommand(code CommandCode, arg byte) Command {
	return Command(code)<<cmdShift | Command(arg)
}

// Code returns the command code.
func (c Command) Code() CommandCode {
	return CommandCode(c >> cmdShift)
}

// Arg returns the argument byte.
func (c Command) Arg() byte {
	return byte(c & charMask)
}

// CommandCode names one abstract keyboard action.
type CommandCode uint8

// A command's index in commandLabels is one less than its code.
const (
	CmdNone CommandCode = iota
	CmdUp
	CmdDown
	CmdLeft
	CmdRight
	CmdRefresh
	CmdUndo
	CmdClearLine
	CmdWordSearch
	CmdDeleteForward
	CmdDeleteBackward
	CmdPrevBlock
	CmdNextBlock
	CmdAccept
	CmdExecute
	CmdInsert
	CmdTryAll
	CmdJumpCommand
)

// commandLabels maps the two-character names accepted in the KEYMAP
// variable to command codes.
var commandLabels = []label{
	{"up", int(CmdUp)},
	{"do", int(CmdDown)},
	{"le", int(CmdLeft)},
	{"ri", int(CmdRight)},
	{"re", int(CmdRefresh)},
	{"un", int(CmdUndo)},
	{"cl", int(CmdClearLine)},
	{"ws", int(CmdWordSearch)},
	{"df", int(CmdDeleteForward)},
	{"db", int(CmdDeleteBackward)},
	{"pr", int(CmdPrevBlock)},
	{"ne", int(CmdNextBlock)},
	{"ac", int(CmdAccept)},
	{"ex", int(CmdExecute)},
	{"--", int(CmdInsert)}, // self-insert is implicit, not for the keymap var
	{"ta", int(CmdTryAll)},
	{"jc", int(CmdJumpCommand)},
}

// codeToName maps command codes to canonical names
var codeToName = map[CommandCode]string{
	CmdUp:             "up",
	CmdDown:           "down",
	CmdLeft:           "left",
	CmdRight:          "right",
	CmdRefresh:        "refresh",
	CmdUndo:           "undo",
	CmdClearLine:      "clear-line",
	CmdWordSearch:     "word-search",
	CmdDeleteForward:  "delete-forward",
	CmdDeleteBackward: "delete-backward",
	CmdPrevBlock:      "previous-block",
	CmdNextBlock:      "next-block",
	CmdAccept:         "accept",
	CmdExecute:        "execute",
	CmdInsert:         "insert",
	CmdTryAll:         "try-all",
	CmdJumpCommand:    "jump-to-command",
}

// nameToCode is the reverse lookup, built from codeToName
var nameToCode map[string]CommandCode

func init() {
	nameToCode = make(map[string]CommandCode, len(codeToName))
	for c, n := range codeToName {
		nameToCode[n] = c
	}
}

// CommandName returns the canonical name for a command code.
// Returns empty string for CmdNone and out-of-range codes.
func CommandName(c CommandCode) string {
	return codeToName[c]
}

// CommandByName resolves a canonical name to a command code.
// Returns CmdNone and false if name is unknown.
func CommandByName(name string) (CommandCode, bool) {
	c, ok := nameToCode[name]
	return c, ok
}
