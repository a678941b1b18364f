package scorer

import (
	"encoding/json"
	"fmt"
	"strings"

	"LearnScout/be/internal/content"

	"github.com/invopop/jsonschema"
)

const systemPrompt = `You are an educational content analyst. Provide accurate, helpful assessments of learning materials. Be strict about educational quality - prioritize substantial, well-structured learning content.`

// resultSchema is the JSON schema of Result, embedded in the prompt so the
// model knows the exact shape it must produce.
var resultSchema = reflectResultSchema()

func reflectResultSchema() string {
	reflector := jsonschema.Reflector{DoNotReference: true}
	schema := reflector.Reflect(&Result{})
	schema.Version = ""
	out, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		// Reflection over a fixed struct cannot fail at runtime.
		panic(err)
	}
	return string(out)
}

func buildPrompt(in Input) string {
	var qualityNote string
	if in.ContentType == content.Video && in.Duration != "" {
		seconds := content.ParseClock(in.Duration)
		if seconds > 0 && seconds < 120 {
			qualityNote = " (Note: This is a very short video, consider if it provides sufficient educational depth)"
		} else if seconds >= 300 && seconds <= 3600 {
			qualityNote = " (Good duration for educational content)"
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Analyze this %s content for educational value and relevance to the search query %q.\n\n", in.ContentType, in.Query)
	fmt.Fprintf(&b, "Title: %s\n", in.Title)
	fmt.Fprintf(&b, "Description: %s\n", in.Description)
	if in.Duration != "" {
		fmt.Fprintf(&b, "Duration: %s", in.Duration)
	}
	b.WriteString(qualityNote)
	b.WriteString(`

Please provide:
1. A concise educational summary (2-3 sentences) explaining what the learner will gain
2. Whether this content is genuinely educational and valuable for learning (true/false)
3. Relevance score to the search query (0-100) - be strict, only high-quality educational content should score above 70
4. Key learning topics covered (array of topics)

For videos: Prefer content that is substantial enough for learning (typically 2+ minutes). Very short videos should generally score lower unless they are exceptionally valuable.

Respond with a single JSON object matching this schema, and nothing else:
`)
	b.WriteString(resultSchema)
	return b.String()
}

// extractJSON returns the first balanced {...} block in the text, so prose
// or code fences wrapping the object are tolerated.
func extractJSON(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}
	return "", false
}
