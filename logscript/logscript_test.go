package logscript_test

import (
	"errors"
	"testing"

	"github.com/mkfw/hexcraft/internal/test"
	"github.com/mkfw/hexcraft/logscript"
	"github.com/mkfw/hexcraft/memimage"
)

func TestParseBasicCommands(t *testing.T) {
	content := "FileOpen test.hex\nFileClose\nFileNew\n"
	commands, err := logscript.Parse(content)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, len(commands), 3)
	test.ExpectEquality(t, commands[0], logscript.Command{Line: 1, Kind: logscript.FileOpen, Path: "test.hex"})
	test.ExpectEquality(t, commands[1].Kind, logscript.FileClose)
	test.ExpectEquality(t, commands[2].Kind, logscript.FileNew)
}

func TestParseStripsQuotesFromPath(t *testing.T) {
	commands, err := logscript.Parse(`FileOpen "a path.hex"`)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, commands[0].Path, "a path.hex")
}

func TestParseSkipsBlankLines(t *testing.T) {
	commands, err := logscript.Parse("\n\nFileNew\n\n")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, len(commands), 1)
}

func TestParseMissingFilename(t *testing.T) {
	_, err := logscript.Parse("FileOpen\n")
	var missing *logscript.MissingFilenameError
	test.ExpectEquality(t, errors.As(err, &missing), true)
	test.ExpectEquality(t, missing.Line, 1)
}

func TestParseUnsupportedCommand(t *testing.T) {
	_, err := logscript.Parse("Frobnicate foo\n")
	var unsupported *logscript.UnsupportedCommandError
	test.ExpectEquality(t, errors.As(err, &unsupported), true)
}

func TestExecuteFileOpenReplacesImage(t *testing.T) {
	img := memimage.New()
	img.AppendSegment(memimage.NewSegment(0x1000, []byte{0xAA}))

	loaded := memimage.New()
	loaded.AppendSegment(memimage.NewSegment(0x2000, []byte{0xBB}))

	err := logscript.Execute(img, []logscript.Command{
		{Line: 1, Kind: logscript.FileOpen, Path: "loaded.hex"},
	}, func(path string) (*memimage.Image, error) {
		test.ExpectEquality(t, path, "loaded.hex")
		return loaded, nil
	})
	test.ExpectSuccess(t, err)

	test.ExpectEquality(t, img.IsEmpty(), false)
	v, ok := img.ReadByte(0x2000)
	test.ExpectEquality(t, ok, true)
	test.ExpectEquality(t, v, byte(0xBB))
	_, ok = img.ReadByte(0x1000)
	test.ExpectEquality(t, ok, false)
}

func TestExecuteFileCloseEmptiesImage(t *testing.T) {
	img := memimage.New()
	img.AppendSegment(memimage.NewSegment(0x1000, []byte{0xAA}))

	err := logscript.Execute(img, []logscript.Command{{Line: 1, Kind: logscript.FileClose}}, nil)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, img.IsEmpty(), true)
}

func TestExecutePropagatesLoadError(t *testing.T) {
	img := memimage.New()
	loadErr := errors.New("disk exploded")

	err := logscript.Execute(img, []logscript.Command{
		{Line: 3, Kind: logscript.FileOpen, Path: "missing.hex"},
	}, func(path string) (*memimage.Image, error) {
		return nil, loadErr
	})

	var le *logscript.LoadError
	test.ExpectEquality(t, errors.As(err, &le), true)
	test.ExpectEquality(t, le.Line, 3)
	test.ExpectEquality(t, errors.Is(err, loadErr), true)
}
