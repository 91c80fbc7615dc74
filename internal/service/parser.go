package service

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// Format is the declared layout of an uploaded knowledge file.
type Format string

const (
	FormatJSON     Format = "json"
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "markdown"
	FormatText     Format = "text"
)

// QAItem is one question/answer pair extracted from an upload. Immutable
// once created.
type QAItem struct {
	Question string
	Answer   string
}

// ParseOutcome distinguishes "nothing in the file" from "file did not
// decode" for diagnostics. The external contract is the same either way:
// an empty item slice.
type ParseOutcome int

const (
	OutcomeOK ParseOutcome = iota
	OutcomeEmpty
	OutcomeMalformed
)

var supportedExtensions = map[string]Format{
	".json":     FormatJSON,
	".csv":      FormatCSV,
	".md":       FormatMarkdown,
	".markdown": FormatMarkdown,
	".txt":      FormatText,
}

// UnsupportedFormatError names the rejected extension and the supported set.
type UnsupportedFormatError struct {
	Ext string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported file extension %q (supported: json, csv, md, markdown, txt)", e.Ext)
}

// FormatFromFilename maps a file extension to its parse format.
func FormatFromFilename(name string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(name))
	format, ok := supportedExtensions[ext]
	if !ok {
		return "", &UnsupportedFormatError{Ext: ext}
	}
	return format, nil
}

// ParseContent extracts question/answer pairs from raw file content. It is
// best-effort and never fails: malformed input yields an empty slice with
// OutcomeMalformed.
func ParseContent(content string, format Format) ([]QAItem, ParseOutcome) {
	if strings.TrimSpace(content) == "" {
		return nil, OutcomeEmpty
	}

	var (
		items     []QAItem
		malformed bool
	)
	switch format {
	case FormatJSON:
		items, malformed = parseJSON(content)
	case FormatCSV:
		items = parseCSV(content)
	case FormatMarkdown:
		items = parseMarkdown(content)
	case FormatText:
		items = parseText(content)
	}

	if malformed {
		return nil, OutcomeMalformed
	}
	if len(items) == 0 {
		return nil, OutcomeEmpty
	}
	return items, OutcomeOK
}

// parseJSON accepts either an array of objects (question|q|title and
// answer|a|content fields) or a flat key/value mapping where keys become
// questions. Key order of the flat form is preserved, which rules out
// decoding into a map.
func parseJSON(content string) ([]QAItem, bool) {
	dec := json.NewDecoder(strings.NewReader(content))
	tok, err := dec.Token()
	if err != nil {
		return nil, true
	}

	delim, ok := tok.(json.Delim)
	if !ok {
		// Top-level scalar: not a recognized shape.
		return nil, false
	}

	switch delim {
	case '[':
		return parseJSONArray(dec)
	case '{':
		return parseJSONObject(dec)
	}
	return nil, false
}

func parseJSONArray(dec *json.Decoder) ([]QAItem, bool) {
	var items []QAItem
	for dec.More() {
		var obj map[string]json.RawMessage
		if err := dec.Decode(&obj); err != nil {
			return nil, true
		}

		question := firstNonEmpty(obj, "question", "q", "title")
		if question == "" {
			question = "Untitled"
		}
		answer := firstNonEmpty(obj, "answer", "a", "content")

		items = append(items, QAItem{Question: question, Answer: answer})
	}
	return items, false
}

func parseJSONObject(dec *json.Decoder) ([]QAItem, bool) {
	var items []QAItem
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, true
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, true
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, true
		}

		items = append(items, QAItem{Question: key, Answer: stringifyJSONValue(raw)})
	}
	return items, false
}

func firstNonEmpty(obj map[string]json.RawMessage, keys ...string) string {
	for _, key := range keys {
		raw, ok := obj[key]
		if !ok {
			continue
		}
		if s := stringifyJSONValue(raw); s != "" {
			return s
		}
	}
	return ""
}

func stringifyJSONValue(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	text := strings.TrimSpace(string(raw))
	if text == "null" {
		return ""
	}
	return text
}

// parseCSV treats each line as one record: field 0 is the question, the
// remaining fields are rejoined with commas as the answer. A first line
// mentioning "question" is a header. Quoted fields keep top-level commas;
// escaped quotes and embedded newlines are deliberately not handled.
func parseCSV(content string) []QAItem {
	lines := strings.Split(content, "\n")

	var items []QAItem
	for i, line := range lines {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if i == 0 && strings.Contains(strings.ToLower(line), "question") {
			continue
		}

		fields := splitCSVLine(line)
		if len(fields) < 2 {
			continue
		}

		question := strings.TrimSpace(fields[0])
		answer := strings.TrimSpace(strings.Join(fields[1:], ","))
		if question == "" || answer == "" {
			continue
		}

		items = append(items, QAItem{Question: question, Answer: answer})
	}
	return items
}

func splitCSVLine(line string) []string {
	var fields []string
	var field strings.Builder
	inQuotes := false

	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case r == ',' && !inQuotes:
			fields = append(fields, field.String())
			field.Reset()
		default:
			field.WriteRune(r)
		}
	}
	fields = append(fields, field.String())
	return fields
}

var markdownHeading = regexp.MustCompile(`(?m)^#{2,3}[ \t]+(.+)$`)

// parseMarkdown splits the document at level-2/level-3 headings: each
// heading becomes a question, the body until the next heading its answer.
func parseMarkdown(content string) []QAItem {
	headings := markdownHeading.FindAllStringSubmatchIndex(content, -1)
	if len(headings) == 0 {
		body := strings.TrimSpace(content)
		if body == "" {
			return nil
		}
		return []QAItem{{Question: "General Information", Answer: body}}
	}

	var items []QAItem
	for i, loc := range headings {
		question := strings.TrimSpace(content[loc[2]:loc[3]])
		if question == "" {
			continue
		}

		end := len(content)
		if i+1 < len(headings) {
			end = headings[i+1][0]
		}
		answer := strings.TrimSpace(content[loc[1]:end])

		items = append(items, QAItem{Question: question, Answer: answer})
	}
	return items
}

var (
	questionMarker = regexp.MustCompile(`(?i)\bq:`)
	answerMarker   = regexp.MustCompile(`(?i)\ba:`)
	blankLineSplit = regexp.MustCompile(`\n[ \t]*\n`)
)

// parseText tries explicit Q:/A: markers first, then blank-line paragraph
// blocks, then falls back to a single catch-all item.
func parseText(content string) []QAItem {
	if items := parseQAMarkers(content); len(items) > 0 {
		return items
	}

	blocks := blankLineSplit.Split(content, -1)
	var trimmed []string
	for _, block := range blocks {
		if b := strings.TrimSpace(block); b != "" {
			trimmed = append(trimmed, b)
		}
	}
	if len(trimmed) >= 2 {
		items := make([]QAItem, len(trimmed))
		for i, block := range trimmed {
			items[i] = QAItem{
				Question: fmt.Sprintf("Information %d", i+1),
				Answer:   block,
			}
		}
		return items
	}

	body := strings.TrimSpace(content)
	if body == "" {
		return nil
	}
	return []QAItem{{Question: "General Information", Answer: body}}
}

func parseQAMarkers(content string) []QAItem {
	starts := questionMarker.FindAllStringIndex(content, -1)

	var items []QAItem
	for i, start := range starts {
		end := len(content)
		if i+1 < len(starts) {
			end = starts[i+1][0]
		}
		segment := content[start[1]:end]

		answerLoc := answerMarker.FindStringIndex(segment)
		if answerLoc == nil {
			continue
		}

		question := strings.TrimSpace(segment[:answerLoc[0]])
		answer := strings.TrimSpace(segment[answerLoc[1]:])
		if question == "" || answer == "" {
			continue
		}

		items = append(items, QAItem{Question: question, Answer: answer})
	}
	return items
}
