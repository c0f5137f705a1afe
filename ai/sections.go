package ai

import (
	"regexp"
	"strings"
)

// Section is a reply block reified into the same title-plus-bullets shape
// the advisory engine produces internally.
type Section struct {
	Title   string   `json:"title"`
	Bullets []string `json:"bullets"`
}

var ordinalPrefix = regexp.MustCompile(`^\d+\.\s*`)

// ParseSections is a tolerant parser for the model's free-text reply. It
// splits on markdown header lines; within each block the first non-empty
// line is the title and numbered lines become bullets. A block whose body
// has no numbered bullets degrades to a single bullet carrying the whole
// body, so content is never discarded. Empty input yields nil, never an
// error.
func ParseSections(text string) []Section {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}

	// Group lines into blocks, a header line starting each new block.
	var blocks [][]string
	current := []string{}
	for _, line := range strings.Split(trimmed, "\n") {
		line = strings.TrimRight(line, "\r")
		if isHeaderLine(line) {
			if len(current) > 0 {
				blocks = append(blocks, current)
			}
			current = []string{stripHeaderMarker(line)}
			continue
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		blocks = append(blocks, current)
	}

	var sections []Section
	for _, block := range blocks {
		section, ok := parseBlock(block)
		if ok {
			sections = append(sections, section)
		}
	}
	return sections
}

func parseBlock(lines []string) (Section, bool) {
	var section Section
	var body []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if section.Title == "" {
			section.Title = line
			continue
		}
		body = append(body, line)
	}
	if section.Title == "" {
		return Section{}, false
	}

	numbered := false
	for _, line := range body {
		if ordinalPrefix.MatchString(line) {
			numbered = true
			break
		}
	}
	if numbered {
		for _, line := range body {
			section.Bullets = append(section.Bullets, ordinalPrefix.ReplaceAllString(line, ""))
		}
	} else if len(body) > 0 {
		// Prose body without bullets: keep it verbatim as one bullet.
		section.Bullets = []string{strings.Join(body, "\n")}
	}
	return section, true
}

func isHeaderLine(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "#")
}

func stripHeaderMarker(line string) string {
	return strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "#"))
}
