// Package logscript implements the line-based mini language that drives the
// /L pipeline stage: a short sequence of commands that can replace the
// working memory image wholesale from an externally loaded file.
package logscript

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/mkfw/hexcraft/memimage"
)

// CommandKind distinguishes the three recognised verbs.
type CommandKind int

const (
	FileOpen CommandKind = iota
	FileClose
	FileNew
)

// Command is one parsed line: its verb, the line it came from (for error
// reporting), and, for FileOpen, the path to load.
type Command struct {
	Line int
	Kind CommandKind
	Path string
}

// MissingFilenameError means a FileOpen command had no path argument.
type MissingFilenameError struct {
	Line int
}

func (e *MissingFilenameError) Error() string {
	return fmt.Sprintf("log command FileOpen missing filename on line %d", e.Line)
}

// UnsupportedCommandError means a line's verb was not one of FileOpen,
// FileClose, or FileNew.
type UnsupportedCommandError struct {
	Command string
	Line    int
}

func (e *UnsupportedCommandError) Error() string {
	return fmt.Sprintf("unsupported log command %q on line %d", e.Command, e.Line)
}

// LoadError wraps a failure from the host-supplied loader, annotated with
// the line of the FileOpen command that triggered it.
type LoadError struct {
	Line  int
	Cause error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("log command failed on line %d: %v", e.Line, e.Cause)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

func stripQuotes(s string) string {
	return strings.Trim(s, `"'`)
}

// Parse reads content line by line, skipping blank lines, and returns the
// parsed command sequence. Line numbers are 1-based.
func Parse(content string) ([]Command, error) {
	var commands []Command

	scanner := bufio.NewScanner(strings.NewReader(content))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		verb := strings.ToUpper(fields[0])
		rest := strings.TrimSpace(strings.TrimPrefix(line, fields[0]))

		switch verb {
		case "FILEOPEN":
			if rest == "" {
				return nil, &MissingFilenameError{Line: lineNo}
			}
			commands = append(commands, Command{Line: lineNo, Kind: FileOpen, Path: stripQuotes(rest)})
		case "FILECLOSE":
			commands = append(commands, Command{Line: lineNo, Kind: FileClose})
		case "FILENEW":
			commands = append(commands, Command{Line: lineNo, Kind: FileNew})
		default:
			return nil, &UnsupportedCommandError{Command: fields[0], Line: lineNo}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return commands, nil
}

// Loader loads the memory image found at path, supplied by the host
// (typically a codec.Parse call dispatched on file extension).
type Loader func(path string) (*memimage.Image, error)

// Execute runs commands in order against img, replacing its contents in
// place: FileOpen loads and substitutes a new image, FileClose and FileNew
// both reset it to empty.
func Execute(img *memimage.Image, commands []Command, load Loader) error {
	for _, cmd := range commands {
		switch cmd.Kind {
		case FileOpen:
			loaded, err := load(cmd.Path)
			if err != nil {
				return &LoadError{Line: cmd.Line, Cause: err}
			}
			img.SetSegments(loaded.Segments())
		case FileClose, FileNew:
			img.SetSegments(nil)
		}
	}
	return nil
}

// ExecuteScript parses content and runs it against img in one step.
func ExecuteScript(img *memimage.Image, content string, load Loader) error {
	commands, err := Parse(content)
	if err != nil {
		return err
	}
	return Execute(img, commands, load)
}
