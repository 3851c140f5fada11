package generator

import (
	"regexp"
	"strings"

	"github.com/viant/typedmind/parser"
)

// Format identifies the surface syntax of a document
type Format string

const (
	Shortform Format = "shortform"
	Longform  Format = "longform"
	Mixed     Format = "mixed"
)

// dominanceRatio is the share of significant lines one syntax needs to be considered dominant
const dominanceRatio = 0.6

var blockKeyExpr = regexp.MustCompile(`^[A-Za-z_][\w]*\s*:`)

// Detection describes the dominant syntax of a document
type Detection struct {
	Format     Format  `yaml:"format" json:"format"`
	Confidence float64 `yaml:"confidence" json:"confidence"`
	Shortform  int     `yaml:"shortformLines" json:"shortformLines"`
	Longform   int     `yaml:"longformLines" json:"longformLines"`
}

// DetectFormat counts shortform declarations and continuations against longform headers, block
// keys and closing braces. A document without significant lines is reported as shortform with zero confidence.
func DetectFormat(text string) *Detection {
	result := &Detection{Format: Shortform}
	for i, raw := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		line := parser.Classify(raw, i+1)
		switch line.Kind {
		case parser.LineDeclaration, parser.LineContinuation:
			result.Shortform++
		case parser.LineLongformHeader:
			result.Longform++
		case parser.LineUnknown:
			if line.Text == "}" || line.Text == "}," || blockKeyExpr.MatchString(line.Text) {
				result.Longform++
			}
		}
	}
	total := result.Shortform + result.Longform
	if total == 0 {
		return result
	}
	shortRatio := float64(result.Shortform) / float64(total)
	longRatio := float64(result.Longform) / float64(total)
	switch {
	case shortRatio > dominanceRatio:
		result.Format, result.Confidence = Shortform, shortRatio
	case longRatio > dominanceRatio:
		result.Format, result.Confidence = Longform, longRatio
	default:
		result.Format = Mixed
		result.Confidence = shortRatio
		if longRatio > shortRatio {
			result.Confidence = longRatio
		}
	}
	return result
}
