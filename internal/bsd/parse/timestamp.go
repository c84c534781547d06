package parse

import (
	"regexp"
	"strings"
	"time"

	"github.com/banshee-data/detection.report/internal/bsd"
)

// Timestamp headers look like "2024-03-18 14:02:11.337". The fractional part
// has no fixed width in the logs.
var timestampPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}\s+\d{2}:\d{2}:\d{2}\.\d+$`)

const timestampLayout = "2006-01-02 15:04:05"

// ParseTimestamp reports whether a trimmed line is a timestamp header and, if
// so, returns the parsed timestamp. The raw header text is preserved so
// exports can show the line exactly as logged.
func ParseTimestamp(line string) (bsd.Timestamp, bool) {
	if !timestampPattern.MatchString(line) {
		return bsd.Timestamp{}, false
	}

	// Collapse the run of whitespace between date and time; time.Parse accepts
	// the trailing fractional second without it appearing in the layout.
	normalized := strings.Join(strings.Fields(line), " ")
	at, err := time.Parse(timestampLayout, normalized)
	if err != nil {
		return bsd.Timestamp{}, false
	}

	return bsd.Timestamp{Raw: line, At: at}, true
}
