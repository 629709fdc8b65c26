package toml

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseError locates a syntax error in the source document
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("toml: line %d: %s", e.Line, e.Msg)
}

// Parse reads a document into nested map[string]any
// Supported: comments, [table] and [a.b] headers, dotted keys, basic and literal strings,
// integers (incl. 0x/0o/0b and underscores), floats (incl. inf/nan), booleans,
// arrays (may span lines) and inline tables
func Parse(data []byte) (map[string]any, error) {
	root := make(map[string]any)
	current := root

	lines := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
	for i := 0; i < len(lines); i++ {
		lineNo := i + 1
		text := strings.TrimSpace(stripComment(lines[i]))
		if text == "" {
			continue
		}

		if strings.HasPrefix(text, "[") {
			if strings.HasPrefix(text, "[[") {
				return nil, &ParseError{lineNo, "arrays of tables are not supported"}
			}
			if !strings.HasSuffix(text, "]") {
				return nil, &ParseError{lineNo, "unterminated table header"}
			}
			keys, err := splitKey(text[1 : len(text)-1])
			if err != nil {
				return nil, &ParseError{lineNo, err.Error()}
			}
			tbl, err := descend(root, keys)
			if err != nil {
				return nil, &ParseError{lineNo, err.Error()}
			}
			current = tbl
			continue
		}

		eq := indexOutsideQuotes(text, '=')
		if eq < 0 {
			return nil, &ParseError{lineNo, fmt.Sprintf("expected key = value, got %q", text)}
		}
		keys, err := splitKey(text[:eq])
		if err != nil {
			return nil, &ParseError{lineNo, err.Error()}
		}

		// Multi-line arrays: keep consuming lines until brackets balance
		raw := strings.TrimSpace(text[eq+1:])
		for depth(raw) > 0 && i+1 < len(lines) {
			i++
			raw += " " + strings.TrimSpace(stripComment(lines[i]))
		}

		s := &valueScanner{src: raw}
		val, err := s.value()
		if err == nil {
			s.skipSpace()
			if !s.done() {
				err = fmt.Errorf("unexpected %q after value", s.src[s.pos:])
			}
		}
		if err != nil {
			return nil, &ParseError{lineNo, err.Error()}
		}

		if err := assign(current, keys, val); err != nil {
			return nil, &ParseError{lineNo, err.Error()}
		}
	}

	return root, nil
}

// descend walks/creates nested tables for a header path
func descend(tbl map[string]any, keys []string) (map[string]any, error) {
	for _, k := range keys {
		next, exists := tbl[k]
		if !exists {
			m := make(map[string]any)
			tbl[k] = m
			tbl = m
			continue
		}
		m, ok := next.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("key %q is already a value, not a table", k)
		}
		tbl = m
	}
	return tbl, nil
}

func assign(tbl map[string]any, keys []string, val any) error {
	parent, err := descend(tbl, keys[:len(keys)-1])
	if err != nil {
		return err
	}
	last := keys[len(keys)-1]
	if _, exists := parent[last]; exists {
		return fmt.Errorf("duplicate key %q", strings.Join(keys, "."))
	}
	parent[last] = val
	return nil
}

// splitKey splits a possibly dotted, possibly quoted key
func splitKey(s string) ([]string, error) {
	var keys []string
	for _, part := range splitOutsideQuotes(s, '.') {
		part = strings.TrimSpace(part)
		switch {
		case part == "":
			return nil, fmt.Errorf("empty key in %q", s)
		case part[0] == '"' || part[0] == '\'':
			sc := &valueScanner{src: part}
			v, err := sc.str()
			if err != nil {
				return nil, err
			}
			keys = append(keys, v)
		case isBareKey(part):
			keys = append(keys, part)
		default:
			return nil, fmt.Errorf("invalid bare key %q", part)
		}
	}
	return keys, nil
}

func isBareKey(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '_' || r == '-') {
			return false
		}
	}
	return true
}

// --- quote-aware line helpers ---

// scanOutsideQuotes calls fn for each byte outside string literals; fn returns false to stop
func scanOutsideQuotes(s string, fn func(i int, c byte) bool) {
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		if quote != 0 {
			if c == '\\' && quote == '"' {
				i++
			} else if c == quote {
				quote = 0
			}
			continue
		}
		if c == '"' || c == '\'' {
			quote = c
			continue
		}
		if !fn(i, c) {
			return
		}
	}
}

func stripComment(s string) string {
	cut := len(s)
	scanOutsideQuotes(s, func(i int, c byte) bool {
		if c == '#' {
			cut = i
			return false
		}
		return true
	})
	return s[:cut]
}

func indexOutsideQuotes(s string, target byte) int {
	idx := -1
	scanOutsideQuotes(s, func(i int, c byte) bool {
		if c == target {
			idx = i
			return false
		}
		return true
	})
	return idx
}

func splitOutsideQuotes(s string, sep byte) []string {
	var parts []string
	start := 0
	scanOutsideQuotes(s, func(i int, c byte) bool {
		if c == sep {
			parts = append(parts, s[start:i])
			start = i + 1
		}
		return true
	})
	return append(parts, s[start:])
}

// depth is the unclosed [ / { count of s
func depth(s string) int {
	d := 0
	scanOutsideQuotes(s, func(_ int, c byte) bool {
		switch c {
		case '[', '{':
			d++
		case ']', '}':
			d--
		}
		return true
	})
	return d
}

// --- value scanner ---

type valueScanner struct {
	src string
	pos int
}

func (s *valueScanner) done() bool { return s.pos >= len(s.src) }

func (s *valueScanner) peek() byte {
	if s.done() {
		return 0
	}
	return s.src[s.pos]
}

func (s *valueScanner) skipSpace() {
	for !s.done() && (s.src[s.pos] == ' ' || s.src[s.pos] == '\t') {
		s.pos++
	}
}

func (s *valueScanner) value() (any, error) {
	s.skipSpace()
	switch c := s.peek(); {
	case c == 0:
		return nil, fmt.Errorf("missing value")
	case c == '"' || c == '\'':
		return s.str()
	case c == '[':
		return s.array()
	case c == '{':
		return s.inlineTable()
	default:
		return s.scalar()
	}
}

func (s *valueScanner) str() (string, error) {
	quote := s.src[s.pos]
	start := s.pos
	s.pos++
	for !s.done() {
		c := s.src[s.pos]
		if c == '\\' && quote == '"' {
			s.pos += 2
			continue
		}
		s.pos++
		if c == quote {
			lit := s.src[start:s.pos]
			if quote == '\'' {
				return lit[1 : len(lit)-1], nil
			}
			v, err := strconv.Unquote(lit)
			if err != nil {
				return "", fmt.Errorf("invalid string %s", lit)
			}
			return v, nil
		}
	}
	return "", fmt.Errorf("unterminated string")
}

func (s *valueScanner) array() ([]any, error) {
	s.pos++ // [
	arr := make([]any, 0)
	for {
		s.skipSpace()
		if s.peek() == ']' {
			s.pos++
			return arr, nil
		}
		v, err := s.value()
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)

		s.skipSpace()
		switch s.peek() {
		case ',':
			s.pos++
		case ']':
		default:
			return nil, fmt.Errorf("expected , or ] in array")
		}
	}
}

func (s *valueScanner) inlineTable() (map[string]any, error) {
	s.pos++ // {
	m := make(map[string]any)
	for {
		s.skipSpace()
		if s.peek() == '}' {
			s.pos++
			return m, nil
		}
		eq := indexOutsideQuotes(s.src[s.pos:], '=')
		if eq < 0 {
			return nil, fmt.Errorf("expected = in inline table")
		}
		keys, err := splitKey(s.src[s.pos : s.pos+eq])
		if err != nil {
			return nil, err
		}
		s.pos += eq + 1
		v, err := s.value()
		if err != nil {
			return nil, err
		}
		if err := assign(m, keys, v); err != nil {
			return nil, err
		}

		s.skipSpace()
		switch s.peek() {
		case ',':
			s.pos++
		case '}':
		default:
			return nil, fmt.Errorf("expected , or } in inline table")
		}
	}
}

// scalar reads a bare bool/int/float token up to a delimiter
func (s *valueScanner) scalar() (any, error) {
	start := s.pos
	for !s.done() {
		c := s.src[s.pos]
		if c == ',' || c == ']' || c == '}' || c == ' ' || c == '\t' {
			break
		}
		s.pos++
	}
	tok := s.src[start:s.pos]

	switch tok {
	case "true":
		return true, nil
	case "false":
		return false, nil
	case "inf", "+inf":
		return math.Inf(1), nil
	case "-inf":
		return math.Inf(-1), nil
	case "nan", "+nan", "-nan":
		return math.NaN(), nil
	}

	// Only 0x/0o/0b may follow a leading zero; 0500 is an error, not octal
	if digits := strings.TrimLeft(tok, "+-"); len(digits) > 1 && digits[0] == '0' &&
		(digits[1] >= '0' && digits[1] <= '9' || digits[1] == '_') {
		return nil, fmt.Errorf("leading zeros are not allowed in %q", tok)
	}

	if i, err := strconv.ParseInt(tok, 0, 64); err == nil {
		return int(i), nil
	}
	if !strings.HasPrefix(strings.TrimLeft(tok, "+-"), "0x") {
		if f, err := strconv.ParseFloat(strings.ReplaceAll(tok, "_", ""), 64); err == nil {
			return f, nil
		}
	}
	return nil, fmt.Errorf("invalid value %q", tok)
}
