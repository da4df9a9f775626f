package terminal

// unescape decodes one logical character of a backslash-escaped config
// string starting at i and returns it with the position of the next one.
// Handled forms: \\, \: and any other escaped literal, octal digit groups
// such as \033, and \n \t \r \f. The form \E maps to escape (0x1B). An
// unexpected character after the backslash is returned as itself, so there
// is no failure case. A backslash ending the string decodes to a backslash.
func unescape(s string, i int) (byte, int) {
	if s[i] != '\\' {
		return s[i], i + 1
	}
	if i+1 >= len(s) {
		return '\\', i + 1
	}
	i++
	c := s[i]
	switch c {
	case 'n':
		c = '\n'
	case 't':
		c = '\t'
	case 'r':
		c = '\r'
	case 'f':
		c = '\f'
	case 'E':
		c = 0x1B
	default:
		if !isDigit(c) {
			break
		}
		c -= '0'
		if i+1 >= len(s) || !isDigit(s[i+1]) {
			break
		}
		i++
		c = c*8 + (s[i] - '0')
		if i+1 >= len(s) || !isDigit(s[i+1]) {
			break
		}
		i++
		c = c*8 + (s[i] - '0')
	}
	return c, i + 1
}

// appendEscaped appends seq to dst in the config grammar, escaping the two
// bytes the grammar gives meaning to. Strings built with it parse back to
// the original bytes no matter what a capability entry contains.
func appendEscaped(dst []byte, seq string) []byte {
	for i := 0; i < len(seq); i++ {
		if seq[i] == '\\' || seq[i] == ':' {
			dst = append(dst, '\\')
		}
		dst = append(dst, seq[i])
	}
	return dst
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
