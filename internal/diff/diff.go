// Package diff computes line-level diffs between two revisions of a text
// buffer using the sergi/go-diff engine.
package diff

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/joescharf/connoisseur/internal/models"
)

const contextLines = 3

type opKind byte

const (
	opContext opKind = ' '
	opAdd     opKind = '+'
	opDel     opKind = '-'
)

// op is one line of the computed diff. oldLine/newLine are 0-based indices
// into the respective revision, -1 when the line does not exist on that side.
type op struct {
	kind    opKind
	oldLine int
	newLine int
	text    string
}

// Compute returns the diff between two revisions. It is a pure function of
// the two texts: no I/O, no failure mode, identical inputs always produce an
// identical result. Equal texts yield a zero result with an empty patch.
func Compute(oldText, newText string) models.DiffResult {
	if oldText == newText {
		return models.DiffResult{}
	}

	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 0

	// Line-level reduction: map each distinct line to a rune, diff the rune
	// strings, then map back. Keeps the diff minimal so added/removed counts
	// stay symmetric under input swap.
	a, b, lineArray := dmp.DiffLinesToChars(oldText, newText)
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	ops := toOps(diffs)

	var added, removed int
	for _, o := range ops {
		switch o.kind {
		case opAdd:
			added++
		case opDel:
			removed++
		}
	}

	return models.DiffResult{
		Added:   added,
		Removed: removed,
		Patch:   renderUnified(ops),
	}
}

// toOps flattens diffmatchpatch diffs into per-line operations with line
// numbers on both sides.
func toOps(diffs []diffmatchpatch.Diff) []op {
	var ops []op
	oldLine, newLine := 0, 0

	for _, d := range diffs {
		for _, line := range splitKeepEnds(d.Text) {
			switch d.Type {
			case diffmatchpatch.DiffEqual:
				ops = append(ops, op{opContext, oldLine, newLine, line})
				oldLine++
				newLine++
			case diffmatchpatch.DiffDelete:
				ops = append(ops, op{opDel, oldLine, -1, line})
				oldLine++
			case diffmatchpatch.DiffInsert:
				ops = append(ops, op{opAdd, -1, newLine, line})
				newLine++
			}
		}
	}
	return ops
}

// splitKeepEnds splits text into lines, preserving each line's terminator so
// the rendered patch stays byte-faithful to the inputs.
func splitKeepEnds(text string) []string {
	if text == "" {
		return nil
	}
	var lines []string
	for {
		i := strings.IndexByte(text, '\n')
		if i < 0 {
			lines = append(lines, text)
			break
		}
		lines = append(lines, text[:i+1])
		text = text[i+1:]
		if text == "" {
			break
		}
	}
	return lines
}

// renderUnified produces a unified diff with three lines of context per
// hunk. Header and hunk lines are presentation only and are never counted.
func renderUnified(ops []op) string {
	hunks := groupHunks(ops)
	if len(hunks) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("--- old\n")
	sb.WriteString("+++ new\n")
	for _, h := range hunks {
		oldStart, oldCount := sideRange(h, false)
		newStart, newCount := sideRange(h, true)
		fmt.Fprintf(&sb, "@@ -%d,%d +%d,%d @@\n", oldStart, oldCount, newStart, newCount)
		for _, o := range h {
			sb.WriteByte(byte(o.kind))
			sb.WriteString(o.text)
			if !strings.HasSuffix(o.text, "\n") {
				sb.WriteString("\n")
			}
		}
	}
	return sb.String()
}

// groupHunks groups changed ops plus surrounding context into hunks,
// merging hunks whose context would overlap.
func groupHunks(ops []op) [][]op {
	var hunks [][]op
	var current []op
	lastChange := -1

	for i, o := range ops {
		if o.kind == opContext {
			continue
		}
		start := i - contextLines
		if start < 0 {
			start = 0
		}
		if current != nil && start <= lastChange+contextLines {
			// Extend the current hunk up through this change.
			from := lastChange + 1
			current = append(current, ops[from:i+1]...)
		} else {
			if current != nil {
				current = appendTrailing(current, ops, lastChange)
				hunks = append(hunks, current)
			}
			current = append([]op{}, ops[start:i+1]...)
		}
		lastChange = i
	}
	if current != nil {
		current = appendTrailing(current, ops, lastChange)
		hunks = append(hunks, current)
	}
	return hunks
}

func appendTrailing(hunk []op, ops []op, lastChange int) []op {
	end := lastChange + 1 + contextLines
	if end > len(ops) {
		end = len(ops)
	}
	return append(hunk, ops[lastChange+1:end]...)
}

// sideRange computes the 1-based start line and line count of one side of a
// hunk for its @@ header.
func sideRange(hunk []op, newSide bool) (start, count int) {
	first := -1
	for _, o := range hunk {
		line := o.oldLine
		if newSide {
			line = o.newLine
		}
		if line >= 0 {
			if first < 0 {
				first = line
			}
			count++
		}
	}
	if first < 0 {
		// Pure insertion/deletion hunk: anchor to the neighbor side.
		for _, o := range hunk {
			line := o.newLine
			if newSide {
				line = o.oldLine
			}
			if line >= 0 {
				return line, 0
			}
		}
		return 0, 0
	}
	return first + 1, count
}
