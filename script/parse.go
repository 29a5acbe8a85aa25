// Package script reads and runs line-oriented command files against a tree:
//
//	# comment
//	insert 10 20 5
//	delete 6
//	search 7
//	print [inorder|postorder|tree]
//	check
package script

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/afero"
)

type Op int

const (
	OpInsert Op = iota
	OpDelete
	OpSearch
	OpPrint
	OpCheck
)

func (o Op) String() string {
	switch o {
	case OpInsert:
		return "insert"
	case OpDelete:
		return "delete"
	case OpSearch:
		return "search"
	case OpPrint:
		return "print"
	case OpCheck:
		return "check"
	default:
		return "unknown"
	}
}

// Print styles.
const (
	StyleInOrder   = "inorder"
	StylePostOrder = "postorder"
	StyleTree      = "tree"
)

type Command struct {
	Op    Op
	Keys  []int
	Style string
	Line  int
}

// Load parses the command file at path.
func Load(fs afero.Fs, path string) ([]Command, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Parse(f)
}

func Parse(r io.Reader) ([]Command, error) {
	var cmds []Command
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		cmd, ok, err := ParseLine(scanner.Text(), line)
		if err != nil {
			return nil, err
		}

		if ok {
			cmds = append(cmds, cmd)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return cmds, nil
}

// ParseLine parses a single line. ok is false for blank and comment lines.
func ParseLine(text string, line int) (cmd Command, ok bool, err error) {
	if i := strings.IndexByte(text, '#'); i >= 0 {
		text = text[:i]
	}

	fields := strings.Fields(text)
	if len(fields) == 0 {
		return Command{}, false, nil
	}

	cmd = Command{Line: line}
	args := fields[1:]
	switch strings.ToLower(fields[0]) {
	case "insert", "set":
		cmd.Op = OpInsert
	case "delete", "del":
		cmd.Op = OpDelete
	case "search", "get":
		cmd.Op = OpSearch
	case "print":
		cmd.Op = OpPrint
		style, err := parseStyle(args, line)
		if err != nil {
			return Command{}, false, err
		}
		cmd.Style = style
		return cmd, true, nil
	case "check":
		if len(args) != 0 {
			return Command{}, false, fmt.Errorf("%w: line %d: check takes no arguments", SYNTAX_ERROR, line)
		}
		cmd.Op = OpCheck
		return cmd, true, nil
	default:
		return Command{}, false, fmt.Errorf("%w: line %d: %q", UNKNOWN_COMMAND_ERROR, line, fields[0])
	}

	if len(args) == 0 {
		return Command{}, false, fmt.Errorf("%w: line %d: %s needs at least one key", SYNTAX_ERROR, line, cmd.Op)
	}

	cmd.Keys = make([]int, 0, len(args))
	for _, arg := range args {
		key, err := strconv.Atoi(arg)
		if err != nil {
			return Command{}, false, fmt.Errorf("%w: line %d: invalid key %q", SYNTAX_ERROR, line, arg)
		}
		cmd.Keys = append(cmd.Keys, key)
	}

	return cmd, true, nil
}

func parseStyle(args []string, line int) (string, error) {
	if len(args) == 0 {
		return StyleInOrder, nil
	}

	if len(args) > 1 {
		return "", fmt.Errorf("%w: line %d: print takes at most one style", SYNTAX_ERROR, line)
	}

	switch style := strings.ToLower(args[0]); style {
	case StyleInOrder, StylePostOrder, StyleTree:
		return style, nil
	default:
		return "", fmt.Errorf("%w: line %d: unknown print style %q", SYNTAX_ERROR, line, args[0])
	}
}
