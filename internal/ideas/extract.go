package ideas

import (
	"encoding/json"
	"strings"

	"github.com/helixir/research-ideas-service/internal/llm"
)

// Extraction is the result of pulling a JSON object out of model text:
// either Parsed(object) or Unparsed(raw).
type Extraction struct {
	object map[string]any
	raw    string
	parsed bool
}

// Parsed returns an Extraction holding a decoded JSON object.
func Parsed(object map[string]any) Extraction {
	return Extraction{object: object, parsed: true}
}

// Unparsed returns an Extraction for text that held no parseable object.
func Unparsed(raw string) Extraction {
	return Extraction{raw: raw}
}

// Object returns the decoded object and true when the extraction parsed.
func (e Extraction) Object() (map[string]any, bool) {
	return e.object, e.parsed
}

// Raw returns the unparsed text. It is empty for Parsed extractions and for
// failed invocations.
func (e Extraction) Raw() string {
	return e.raw
}

// Extract pulls a JSON object out of a model outcome. A Failure yields
// Unparsed("").
func Extract(out llm.Outcome) Extraction {
	raw, ok := out.Text()
	if !ok {
		return Unparsed("")
	}
	return ExtractText(raw)
}

// ExtractText parses the substring between the first '{' and the last '}'
// of raw as a JSON object.
//
// The scan does not balance brackets. Text holding two sibling objects, as in
// `{"a":1} noise {"b":2}`, yields one substring spanning both, which fails to
// parse and returns Unparsed.
func ExtractText(raw string) Extraction {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end < start {
		return Unparsed(raw)
	}

	var object map[string]any
	if err := json.Unmarshal([]byte(raw[start:end+1]), &object); err != nil {
		return Unparsed(raw)
	}
	return Parsed(object)
}
