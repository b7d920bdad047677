package tools

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/swarmgate/swarmgate"
)

const (
	// defaultReadLines keeps one read comfortably inside a model turn;
	// the continuation hint lets the agent page through larger files.
	defaultReadLines = 300
	maxLineChars     = 1000
	readMaxBytes     = 24_000
)

// ReadInput defines the input for the Read tool.
type ReadInput struct {
	FilePath  string `json:"file_path" jsonschema:"required,description=The absolute path to the file to read"`
	StartLine int    `json:"start_line,omitempty" jsonschema:"description=First line to read (1-based; defaults to 1)"`
	MaxLines  int    `json:"max_lines,omitempty" jsonschema:"description=Number of lines to read (defaults to 300)"`
}

// ReadTool reads a window of a text file. Output lines are numbered, and
// when the window does not reach the end of the file the result carries a
// continuation hint naming the next start_line, so an agent can page
// through a file across turns.
type ReadTool struct{}

var _ swarmgate.Tool[ReadInput] = (*ReadTool)(nil)

func (t *ReadTool) Name() string        { return "Read" }
func (t *ReadTool) Description() string { return "Read a window of a file from the local filesystem" }

func (t *ReadTool) Execute(_ context.Context, input ReadInput) (*swarmgate.ToolResult, error) {
	if input.FilePath == "" {
		return swarmgate.ErrorResult("file_path is required"), nil
	}

	info, err := os.Stat(input.FilePath)
	if err != nil {
		return swarmgate.ErrorResult(fmt.Sprintf("cannot read %s: %s", input.FilePath, err.Error())), nil
	}
	if info.IsDir() {
		return swarmgate.ErrorResult(fmt.Sprintf("%s is a directory", input.FilePath)), nil
	}

	f, err := os.Open(input.FilePath)
	if err != nil {
		return swarmgate.ErrorResult(fmt.Sprintf("cannot read %s: %s", input.FilePath, err.Error())), nil
	}
	defer f.Close()

	start := input.StartLine
	if start < 1 {
		start = 1
	}
	window := input.MaxLines
	if window < 1 {
		window = defaultReadLines
	}

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var b strings.Builder
	lineNum := 0
	emitted := 0
	lastEmitted := 0
	budgetHit := false

	for scanner.Scan() {
		lineNum++
		if lineNum < start || emitted >= window || budgetHit {
			// keep scanning to learn the total line count
			continue
		}

		line := scanner.Text()
		if len(line) > maxLineChars {
			line = line[:maxLineChars] + " [line truncated]"
		}

		if b.Len()+len(line) > readMaxBytes {
			budgetHit = true
			continue
		}

		fmt.Fprintf(&b, "%d: %s\n", lineNum, line)
		emitted++
		lastEmitted = lineNum
	}

	if err := scanner.Err(); err != nil {
		return swarmgate.ErrorResult(fmt.Sprintf("error reading %s: %s", input.FilePath, err.Error())), nil
	}

	if lineNum == 0 {
		return swarmgate.TextResult("file is empty"), nil
	}
	if emitted == 0 {
		return swarmgate.ErrorResult(fmt.Sprintf("start_line %d is past the end of the file (%d lines)", start, lineNum)), nil
	}

	if lastEmitted < lineNum {
		fmt.Fprintf(&b, "[showing lines %d-%d of %d; continue with start_line=%d]\n",
			start, lastEmitted, lineNum, lastEmitted+1)
	}

	return swarmgate.TextResult(b.String()), nil
}
