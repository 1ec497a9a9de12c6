// Package projects reads the hand-edited project list format: a sequence of
// records with scalar fields and one optional nested sequence field (stack).
// The format is a deliberately restricted subset of a block list syntax, and
// the reader is lenient: lines it cannot classify are skipped, never errors.
package projects

import (
	"strings"
)

// lineKind classifies one input line before it is applied to parser state.
type lineKind int

const (
	lineBlank lineKind = iota
	lineComment
	lineRecordStart
	lineStackHeader
	lineStackItem
	lineScalarField
	lineOther
)

const (
	recordStartPrefix = "- "
	stackHeaderPrefix = "  stack:"
	stackItemPrefix   = "    - "
	fieldIndent       = "  "
)

// classify maps a right-trimmed line to its kind. Classification is purely
// lexical; whether a kind is meaningful depends on parser state.
func classify(line string) lineKind {
	trimmed := strings.TrimSpace(line)
	switch {
	case trimmed == "":
		return lineBlank
	case strings.HasPrefix(trimmed, "#"):
		return lineComment
	case strings.HasPrefix(line, recordStartPrefix):
		return lineRecordStart
	case strings.HasPrefix(line, stackHeaderPrefix):
		return lineStackHeader
	case strings.HasPrefix(line, stackItemPrefix):
		return lineStackItem
	case strings.HasPrefix(line, fieldIndent) && !strings.HasPrefix(line, fieldIndent+" ") && strings.Contains(line, ":"):
		return lineScalarField
	default:
		return lineOther
	}
}

// Parse reads the list document and returns its records in file order.
// Lines before the first record start, and lines that fit no rule, are
// ignored. The last record is flushed at end of input. A key repeated
// within one record overwrites the earlier value (last wins).
func Parse(text string) []*Record {
	var (
		records []*Record
		current *Record
		inStack bool
	)

	flush := func() {
		if current != nil {
			records = append(records, current)
		}
	}

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimRight(raw, " \t\r")

		switch classify(line) {
		case lineBlank, lineComment:
			continue

		case lineRecordStart:
			flush()
			current = NewRecord()
			inStack = false
			if rest := line[len(recordStartPrefix):]; strings.Contains(rest, ":") {
				key, value, _ := strings.Cut(rest, ":")
				current.Set(strings.TrimSpace(key), stripQuotes(value))
			}

		case lineStackHeader:
			if current == nil {
				continue
			}
			current.Set("stack", []string{})
			inStack = true

		case lineStackItem:
			if current == nil || !inStack {
				continue
			}
			if item := stripQuotes(line[len(stackItemPrefix):]); item != "" {
				current.Set("stack", append(current.GetStrings("stack"), item))
			}

		case lineScalarField:
			if current == nil {
				continue
			}
			key, value, _ := strings.Cut(line, ":")
			current.Set(strings.TrimSpace(key), stripQuotes(value))
			inStack = false

		case lineOther:
			continue
		}
	}

	flush()
	return records
}

// stripQuotes trims surrounding whitespace and removes a single layer of
// matching double or single quotes. No escape decoding is performed.
func stripQuotes(value string) string {
	value = strings.TrimSpace(value)
	if len(value) >= 2 {
		first, last := value[0], value[len(value)-1]
		if first == last && (first == '"' || first == '\'') {
			return value[1 : len(value)-1]
		}
	}
	return value
}
