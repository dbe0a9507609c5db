package generator

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// DiffOptions configures how diffs are generated and displayed.
type DiffOptions struct {
	// ContextLines is the number of unchanged lines to show around changes.
	// Default: 3
	ContextLines int

	// TabWidth is the number of spaces each tab character expands to.
	// Default: 4
	TabWidth int

	// Width truncates long lines. Default: terminal width, or 80.
	Width int
}

// DiffGenerator renders unified diffs of regenerated metadata against the
// files on disk.
type DiffGenerator struct {
	opts DiffOptions
}

// NewDiffGenerator creates a diff generator with default options.
func NewDiffGenerator() *DiffGenerator {
	return NewDiffGeneratorWithOptions(DiffOptions{})
}

// NewDiffGeneratorWithOptions creates a diff generator; zero fields take defaults.
func NewDiffGeneratorWithOptions(opts DiffOptions) *DiffGenerator {
	if opts.ContextLines <= 0 {
		opts.ContextLines = 3
	}
	if opts.TabWidth <= 0 {
		opts.TabWidth = 4
	}
	if opts.Width <= 0 {
		opts.Width = terminalWidth()
	}
	return &DiffGenerator{opts: opts}
}

// GenerateDiff returns a unified diff from old to newer, or "" when the
// contents are identical.
func (dg *DiffGenerator) GenerateDiff(oldPath, newPath string, old, newer []byte) string {
	if bytes.Equal(old, newer) {
		return ""
	}
	if isBinary(old) || isBinary(newer) {
		return "Binary files differ\n"
	}

	oldLines := splitLines(string(old))
	newLines := splitLines(string(newer))
	if len(oldLines) > 10000 || len(newLines) > 10000 {
		return fmt.Sprintf("Files too large for diff (%d and %d lines)\n", len(oldLines), len(newLines))
	}

	hunks := buildHunks(editScript(oldLines, newLines), dg.opts.ContextLines)
	if len(hunks) == 0 {
		return ""
	}

	var buf strings.Builder
	buf.WriteString(headerStyle.Render("--- "+oldPath) + "\n")
	buf.WriteString(headerStyle.Render("+++ "+newPath) + "\n")
	for _, h := range hunks {
		dg.writeHunk(&buf, h)
	}
	return buf.String()
}

type lineOp int

const (
	opUnchanged lineOp = iota
	opAdded
	opRemoved
)

type diffLine struct {
	oldNum  int // 1-based, 0 if added
	newNum  int // 1-based, 0 if removed
	content string
	op      lineOp
}

type hunk struct {
	oldStart, oldCount int
	newStart, newCount int
	lines              []diffLine
}

var (
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	hunkStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan")).Bold(true)
	addedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("22"))
	removedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("52"))
)

// editScript computes the shortest edit script between a and b using the
// Myers O(ND) algorithm.
func editScript(a, b []string) []diffLine {
	n, m := len(a), len(b)
	limit := n + m
	offset := limit + 1
	v := make([]int, 2*limit+3)
	var trace [][]int

	for d := 0; d <= limit; d++ {
		trace = append(trace, append([]int(nil), v...))

		for k := -d; k <= d; k += 2 {
			var x int
			if k == -d || (k != d && v[offset+k-1] < v[offset+k+1]) {
				x = v[offset+k+1]
			} else {
				x = v[offset+k-1] + 1
			}
			y := x - k
			for x < n && y < m && a[x] == b[y] {
				x++
				y++
			}
			v[offset+k] = x

			if x >= n && y >= m {
				return backtrack(a, b, trace, offset)
			}
		}
	}
	return nil
}

func backtrack(a, b []string, trace [][]int, offset int) []diffLine {
	x, y := len(a), len(b)
	var out []diffLine

	for d := len(trace) - 1; d >= 0; d-- {
		v := trace[d]
		k := x - y

		prevK := k - 1
		if k == -d || (k != d && v[offset+k-1] < v[offset+k+1]) {
			prevK = k + 1
		}
		prevX := v[offset+prevK]
		prevY := prevX - prevK

		for x > prevX && y > prevY {
			x--
			y--
			out = append(out, diffLine{oldNum: x + 1, newNum: y + 1, content: a[x], op: opUnchanged})
		}

		if d == 0 {
			break
		}
		if x == prevX {
			y--
			out = append(out, diffLine{newNum: y + 1, content: b[y], op: opAdded})
		} else {
			x--
			out = append(out, diffLine{oldNum: x + 1, content: a[x], op: opRemoved})
		}
	}

	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// buildHunks groups changed lines with up to context unchanged lines around
// them. Changes separated by more than 2*context unchanged lines start a new
// hunk.
func buildHunks(lines []diffLine, context int) []hunk {
	var hunks []hunk

	for i := 0; i < len(lines); {
		if lines[i].op == opUnchanged {
			i++
			continue
		}

		start := max(0, i-context)
		last := i
		for j := i; j < len(lines); j++ {
			if lines[j].op != opUnchanged {
				last = j
			} else if j-last > 2*context {
				break
			}
		}
		stop := min(len(lines), last+context+1)

		hunks = append(hunks, newHunk(lines[start:stop]))
		i = stop
	}

	return hunks
}

func newHunk(lines []diffLine) hunk {
	h := hunk{lines: lines}
	for _, l := range lines {
		if l.oldNum > 0 && h.oldStart == 0 {
			h.oldStart = l.oldNum
		}
		if l.newNum > 0 && h.newStart == 0 {
			h.newStart = l.newNum
		}
		if l.op != opAdded {
			h.oldCount++
		}
		if l.op != opRemoved {
			h.newCount++
		}
	}
	return h
}

func (dg *DiffGenerator) writeHunk(buf *strings.Builder, h hunk) {
	header := fmt.Sprintf("@@ -%d,%d +%d,%d @@", h.oldStart, h.oldCount, h.newStart, h.newCount)
	buf.WriteString(hunkStyle.Render(header) + "\n")

	for _, l := range h.lines {
		content := truncateLine(expandTabs(l.content, dg.opts.TabWidth), dg.opts.Width-10)
		switch l.op {
		case opAdded:
			buf.WriteString(addedStyle.Render("+"+content) + "\n")
		case opRemoved:
			buf.WriteString(removedStyle.Render("-"+content) + "\n")
		default:
			buf.WriteString(" " + content + "\n")
		}
	}
}

// isBinary checks the first 8 KiB for null bytes.
func isBinary(data []byte) bool {
	return bytes.IndexByte(data[:min(len(data), 8192)], 0) != -1
}

// splitLines splits content into lines, dropping the empty element produced
// by a trailing newline.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

func expandTabs(s string, tabWidth int) string {
	if !strings.Contains(s, "\t") {
		return s
	}

	var buf strings.Builder
	col := 0
	for _, r := range s {
		if r == '\t' {
			spaces := tabWidth - col%tabWidth
			buf.WriteString(strings.Repeat(" ", spaces))
			col += spaces
			continue
		}
		buf.WriteRune(r)
		col++
	}
	return buf.String()
}

func truncateLine(s string, maxWidth int) string {
	if maxWidth <= 3 {
		maxWidth = 70
	}
	if utf8.RuneCountInString(s) <= maxWidth {
		return s
	}
	return string([]rune(s)[:maxWidth-3]) + "..."
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}
