// Package include locates #include directives in comment-stripped C/C++
// source text.
package include

import (
	"regexp"
	"strings"
)

// Record identifies one include directive occurrence. Records are unique by
// (File, Line) within a single scan.
type Record struct {
	// Name is the included header name without the <> or "" delimiters.
	Name string `json:"include" yaml:"include"`

	// File is the path of the file containing the directive, as passed to Locate.
	File string `json:"file" yaml:"file"`

	// Line is the 1-based line number of the directive.
	Line int `json:"line" yaml:"line"`
}

// directivePattern matches the two standard include forms at the start of a
// line, with optional whitespace around the # and the keyword. Group 1
// captures an angle-bracket name, group 2 a quoted name.
var directivePattern = regexp.MustCompile(`^\s*#\s*include\s*(?:<([^>]+)>|"([^"]+)")`)

// Locate scans stripped text for include directives and returns them in
// top-to-bottom order. The text must already have comments blanked out (see
// textutil.StripComments), so commented-out directives never match.
// Directives inside preprocessor conditionals are matched like any other;
// conditional evaluation is out of scope.
func Locate(stripped, filePath string) []Record {
	var records []Record

	line := 0

	for rest := stripped; rest != ""; {
		var text string
		if i := strings.IndexByte(rest, '\n'); i >= 0 {
			text, rest = rest[:i+1], rest[i+1:]
		} else {
			text, rest = rest, ""
		}

		line++

		match := directivePattern.FindStringSubmatch(text)
		if match == nil {
			continue
		}

		name := match[1]
		if name == "" {
			name = match[2]
		}

		records = append(records, Record{Name: name, File: filePath, Line: line})
	}

	return records
}
