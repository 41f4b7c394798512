package makevars

import (
	"bufio"
	"bytes"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

var (
	reAssignment = regexp.MustCompile(`^(?:(?:export|override|private)\s+)*([A-Za-z_][A-Za-z0-9_]*)\s*(::=|:=|\?=|\+=|!=|=)\s*(.*)$`)
	reName       = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

// skipped directives; their bodies are read as ordinary lines
var directives = map[string]bool{
	"ifeq": true, "ifneq": true, "ifdef": true, "ifndef": true,
	"else": true, "endif": true,
	"include": true, "-include": true, "sinclude": true,
	"export": true, "unexport": true, "vpath": true,
	"private": true,
}

// MakeParser is a koanf.Parser for make-style variable descriptors.
type MakeParser struct{}

// Parser returns a make descriptor parser.
func Parser() *MakeParser {
	return &MakeParser{}
}

// Unmarshal parses descriptor bytes into a flat map of variable name to
// string value.
func (p *MakeParser) Unmarshal(b []byte) (map[string]interface{}, error) {
	vars, err := parse(b)
	if err != nil {
		return nil, err
	}
	out := make(map[string]interface{}, len(vars))
	for name, value := range vars {
		out[name] = value
	}
	return out, nil
}

// Marshal writes the map back as simply expanded assignments, sorted by name.
func (p *MakeParser) Marshal(o map[string]interface{}) ([]byte, error) {
	names := make([]string, 0, len(o))
	for name := range o {
		if !reName.MatchString(name) {
			return nil, fmt.Errorf("invalid variable name %q", name)
		}
		names = append(names, name)
	}
	sort.Strings(names)

	var buf bytes.Buffer
	for _, name := range names {
		value := strings.ReplaceAll(fmt.Sprint(o[name]), "$", "$$")
		fmt.Fprintf(&buf, "%s := %s\n", name, value)
	}
	return buf.Bytes(), nil
}

// ParseError reports a malformed descriptor line.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

func parse(b []byte) (map[string]string, error) {
	vars := make(map[string]string)

	lines, err := logicalLines(b)
	if err != nil {
		return nil, err
	}

	inDefine := 0
	for _, ln := range lines {
		text := ln.text

		// Recipe lines belong to a rule.
		if strings.HasPrefix(text, "\t") && inDefine == 0 {
			continue
		}

		trimmed := strings.TrimSpace(stripComment(text))
		if inDefine > 0 {
			if trimmed == "endef" {
				inDefine = 0
			}
			continue
		}
		if trimmed == "" {
			continue
		}

		if m := reAssignment.FindStringSubmatch(trimmed); m != nil {
			name, op, raw := m[1], m[2], m[3]
			if err := assign(vars, name, op, raw, ln.number); err != nil {
				return nil, err
			}
			continue
		}

		// A lone $(info ...) or $(eval ...) sets nothing we track.
		call, err := isFunctionCall(trimmed)
		if err != nil {
			return nil, &ParseError{Line: ln.number, Msg: err.Error()}
		}
		if call {
			continue
		}

		fields := strings.Fields(trimmed)
		if fields[0] == "override" && len(fields) > 1 {
			fields = fields[1:]
		}
		word := fields[0]
		switch {
		case word == "undefine":
			for _, name := range fields[1:] {
				delete(vars, name)
			}
		case word == "define":
			inDefine = ln.number
		case word == "endef":
			return nil, &ParseError{Line: ln.number, Msg: "endef without define"}
		case directives[word]:
			// Conditionals and includes are not evaluated.
		case isRule(trimmed):
		default:
			return nil, &ParseError{Line: ln.number, Msg: fmt.Sprintf("unrecognized line %q", trimmed)}
		}
	}

	if inDefine > 0 {
		return nil, &ParseError{Line: inDefine, Msg: "define without endef"}
	}
	return vars, nil
}

func assign(vars map[string]string, name, op, raw string, line int) error {
	if op == "!=" {
		return &ParseError{Line: line, Msg: fmt.Sprintf("shell assignment to %s is not supported", name)}
	}
	value, err := expand(raw, vars)
	if err != nil {
		return &ParseError{Line: line, Msg: err.Error()}
	}
	switch op {
	case "?=":
		if _, ok := vars[name]; !ok {
			vars[name] = value
		}
	case "+=":
		if prev := vars[name]; prev != "" && value != "" {
			vars[name] = prev + " " + value
		} else {
			vars[name] = prev + value
		}
	default:
		vars[name] = value
	}
	return nil
}

// expand substitutes $(NAME) and ${NAME} references with the current value
// of NAME. References that are not plain names, such as make functions, are
// kept as written.
func expand(s string, vars map[string]string) (string, error) {
	var out strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '$' {
			out.WriteByte(c)
			continue
		}
		if i+1 >= len(s) {
			out.WriteByte(c)
			break
		}
		next := s[i+1]
		switch next {
		case '$':
			out.WriteByte('$')
			i++
		case '(', '{':
			end, err := matchingClose(s, i+1)
			if err != nil {
				return "", err
			}
			ref := s[i+2 : end]
			if reName.MatchString(ref) {
				out.WriteString(vars[ref])
			} else {
				out.WriteString(s[i : end+1])
			}
			i = end
		default:
			// Single character variable such as $@.
			out.WriteString(vars[string(next)])
			i++
		}
	}
	return out.String(), nil
}

func matchingClose(s string, open int) (int, error) {
	openCh := s[open]
	closeCh := byte(')')
	if openCh == '{' {
		closeCh = '}'
	}
	depth := 0
	for j := open; j < len(s); j++ {
		switch s[j] {
		case openCh:
			depth++
		case closeCh:
			depth--
			if depth == 0 {
				return j, nil
			}
		}
	}
	return 0, fmt.Errorf("unterminated variable reference %q", s[open-1:])
}

// isFunctionCall reports whether line is a single $(...) or ${...}
// reference and nothing else.
func isFunctionCall(line string) (bool, error) {
	if len(line) < 2 || line[0] != '$' || (line[1] != '(' && line[1] != '{') {
		return false, nil
	}
	end, err := matchingClose(line, 1)
	if err != nil {
		return false, err
	}
	return end == len(line)-1, nil
}

func isRule(line string) bool {
	idx := strings.IndexByte(line, ':')
	return idx > 0 && !strings.HasPrefix(line[idx:], ":=")
}

// stripComment removes a trailing # comment; \# is a literal hash.
func stripComment(line string) string {
	var out strings.Builder
	for i := 0; i < len(line); i++ {
		switch {
		case line[i] == '\\' && i+1 < len(line) && line[i+1] == '#':
			out.WriteByte('#')
			i++
		case line[i] == '#':
			return out.String()
		default:
			out.WriteByte(line[i])
		}
	}
	return out.String()
}

type logicalLine struct {
	number int
	text   string
}

// logicalLines joins backslash-continued physical lines. The number of a
// logical line is that of its first physical line.
func logicalLines(b []byte) ([]logicalLine, error) {
	var (
		lines   []logicalLine
		pending strings.Builder
		start   int
		joining bool
	)
	scanner := bufio.NewScanner(bytes.NewReader(b))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	number := 0
	for scanner.Scan() {
		number++
		text := strings.TrimRight(scanner.Text(), "\r")
		if !joining {
			start = number
			pending.Reset()
		} else {
			text = " " + strings.TrimLeft(text, " \t")
		}
		if strings.HasSuffix(text, `\`) && !strings.HasSuffix(text, `\\`) {
			pending.WriteString(strings.TrimRight(strings.TrimSuffix(text, `\`), " \t"))
			joining = true
			continue
		}
		pending.WriteString(text)
		joining = false
		lines = append(lines, logicalLine{number: start, text: pending.String()})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if joining {
		return nil, &ParseError{Line: start, Msg: "line continuation at end of file"}
	}
	return lines, nil
}
