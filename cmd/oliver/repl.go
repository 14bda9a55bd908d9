package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	shellquote "github.com/kballard/go-shellquote"
	"golang.org/x/term"

	"github.com/nrperez/oliver/internal/value"
	"github.com/nrperez/oliver/pkg/oliver"
)

func printBanner() {
	fmt.Println("oliver REPL (Ctrl+D to exit)")
	fmt.Println("  :load <path>   load and evaluate a file")
	fmt.Println("  :history [n]   list recorded sessions (requires -db)")
	fmt.Println()
}

func runREPL(runtime *oliver.Runtime) {
	printBanner()

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		runBasicREPL(runtime)
		return
	}

	runRawREPL(runtime)
}

// evalLine evaluates a single REPL input, handling the ":load"/":history"
// meta-commands before falling through to runtime.Eval.
func evalLine(runtime *oliver.Runtime, input string) (string, bool) {
	if strings.HasPrefix(strings.TrimSpace(input), ":") {
		return runMetaCommand(runtime, strings.TrimSpace(input))
	}

	result, err := runtime.Eval(input)
	if err != nil {
		return fmt.Sprintf("Error: %v", err), true
	}
	if _, ok := result.(value.Nothing); ok {
		return "", false
	}
	return value.RenderPlain(result), true
}

func runMetaCommand(runtime *oliver.Runtime, line string) (string, bool) {
	fields, err := shellquote.Split(line[1:])
	if err != nil || len(fields) == 0 {
		return fmt.Sprintf("Error: bad command %q", line), true
	}

	switch fields[0] {
	case "load":
		if len(fields) < 2 {
			return "Error: :load requires a file path", true
		}
		result, err := runtime.EvalFile(fields[1])
		if err != nil {
			return fmt.Sprintf("Error: %v", err), true
		}
		if _, ok := result.(value.Nothing); ok {
			return "", true
		}
		return value.RenderPlain(result), true

	case "history":
		limit := 0
		if len(fields) > 1 {
			limit = oliver.ParseLimit(fields[1])
		}
		sessions, err := runtime.Sessions(limit)
		if err != nil {
			return fmt.Sprintf("Error: %v", err), true
		}
		if len(sessions) == 0 {
			return "no recorded sessions", true
		}
		var b strings.Builder
		for _, s := range sessions {
			fmt.Fprintf(&b, "%s  %s => %s\n", s.ID[:8], s.Source, s.Result)
		}
		return strings.TrimRight(b.String(), "\n"), true

	default:
		return fmt.Sprintf("Error: unknown command :%s", fields[0]), true
	}
}

// runBasicREPL handles non-TTY input (piped input, dumb terminals).
func runBasicREPL(runtime *oliver.Runtime) {
	reader := bufio.NewReader(os.Stdin)
	var multiline strings.Builder
	inMultiline := false

	for {
		if inMultiline {
			fmt.Print("... ")
		} else {
			fmt.Print(">>> ")
		}

		line, err := reader.ReadString('\n')
		if err != nil {
			fmt.Println()
			return
		}
		line = strings.TrimRight(line, "\r\n")

		if strings.HasSuffix(line, "\\") {
			multiline.WriteString(strings.TrimSuffix(line, "\\"))
			multiline.WriteString("\n")
			inMultiline = true
			continue
		}

		var input string
		if inMultiline {
			multiline.WriteString(line)
			input = multiline.String()
			multiline.Reset()
			inMultiline = false
		} else {
			input = line
		}

		if strings.TrimSpace(input) == "" {
			continue
		}

		if out, show := evalLine(runtime, input); show {
			fmt.Println(out)
		}
	}
}

// runRawREPL handles TTY input with basic line editing (arrow keys,
// backspace, Ctrl+A/E/K/U). Oliver's operators are plain ASCII words, so
// there is no glyph-insertion table to speak of.
func runRawREPL(runtime *oliver.Runtime) {
	fd := int(os.Stdin.Fd())

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set raw mode: %v\n", err)
		runBasicREPL(runtime)
		return
	}
	defer term.Restore(fd, oldState)

	if w, _, err := term.GetSize(fd); err == nil && w > 0 {
		fmt.Printf("terminal width %s columns\r\n", humanize.Comma(int64(w)))
	}

	var multiline strings.Builder
	inMultiline := false

	for {
		if inMultiline {
			fmt.Print("... ")
		} else {
			fmt.Print(">>> ")
		}

		line, eof := readLineRaw(fd)
		if eof {
			fmt.Print("\r\n")
			return
		}

		if strings.HasSuffix(line, "\\") {
			multiline.WriteString(strings.TrimSuffix(line, "\\"))
			multiline.WriteString("\n")
			inMultiline = true
			continue
		}

		var input string
		if inMultiline {
			multiline.WriteString(line)
			input = multiline.String()
			multiline.Reset()
			inMultiline = false
		} else {
			input = line
		}

		if strings.TrimSpace(input) == "" {
			continue
		}

		if out, show := evalLine(runtime, input); show {
			fmt.Print(strings.ReplaceAll(out, "\n", "\r\n"))
			fmt.Print("\r\n")
		}
	}
}

// readLineRaw reads one line in raw mode with basic cursor navigation.
// Returns the line and whether EOF was encountered.
func readLineRaw(fd int) (string, bool) {
	var line []rune
	cursor := 0
	buf := make([]byte, 1)

	redrawFromCursor := func() {
		fmt.Print("\x1b[K")
		for i := cursor; i < len(line); i++ {
			fmt.Print(string(line[i]))
		}
		if cursor < len(line) {
			fmt.Printf("\x1b[%dD", len(line)-cursor)
		}
	}

	for {
		n, err := os.Stdin.Read(buf)
		if err != nil || n == 0 {
			return string(line), true
		}
		b := buf[0]

		switch b {
		case 0x04: // Ctrl+D
			if len(line) == 0 {
				return "", true
			}
			if cursor < len(line) {
				line = append(line[:cursor], line[cursor+1:]...)
				redrawFromCursor()
			}

		case 0x03: // Ctrl+C
			fmt.Print("^C\r\n")
			return "", false

		case 0x0d, 0x0a: // Enter
			fmt.Print("\r\n")
			return string(line), false

		case 0x7f, 0x08: // Backspace
			if cursor > 0 {
				cursor--
				line = append(line[:cursor], line[cursor+1:]...)
				fmt.Print("\b")
				redrawFromCursor()
			}

		case 0x1b: // ESC - arrow key sequence
			nextBuf := make([]byte, 1)
			if n, err := os.Stdin.Read(nextBuf); err != nil || n == 0 {
				continue
			}
			if nextBuf[0] != '[' {
				continue
			}
			arrowBuf := make([]byte, 1)
			if n, err := os.Stdin.Read(arrowBuf); err != nil || n == 0 {
				continue
			}
			switch arrowBuf[0] {
			case 'C':
				if cursor < len(line) {
					cursor++
					fmt.Print("\x1b[C")
				}
			case 'D':
				if cursor > 0 {
					cursor--
					fmt.Print("\x1b[D")
				}
			case '3':
				delBuf := make([]byte, 1)
				os.Stdin.Read(delBuf)
				if delBuf[0] == '~' && cursor < len(line) {
					line = append(line[:cursor], line[cursor+1:]...)
					redrawFromCursor()
				}
			}

		case 0x01: // Ctrl+A
			if cursor > 0 {
				fmt.Printf("\x1b[%dD", cursor)
				cursor = 0
			}

		case 0x05: // Ctrl+E
			if cursor < len(line) {
				fmt.Printf("\x1b[%dC", len(line)-cursor)
				cursor = len(line)
			}

		case 0x0b: // Ctrl+K
			if cursor < len(line) {
				line = line[:cursor]
				fmt.Print("\x1b[K")
			}

		case 0x15: // Ctrl+U
			if cursor > 0 {
				fmt.Printf("\x1b[%dD", cursor)
				line = line[cursor:]
				cursor = 0
				redrawFromCursor()
			}

		default:
			if b >= 0x20 && b < 0x7f {
				r := rune(b)
				newLine := make([]rune, 0, len(line)+1)
				newLine = append(newLine, line[:cursor]...)
				newLine = append(newLine, r)
				newLine = append(newLine, line[cursor:]...)
				line = newLine
				cursor++
				fmt.Print(string(r))
				if cursor < len(line) {
					redrawFromCursor()
				}
			}
		}
	}
}
