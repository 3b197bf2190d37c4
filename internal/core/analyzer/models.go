// internal/core/analyzer/models.go
package analyzer

// Entity is a named entity detected by the optional parser.
type Entity struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}

// Linguistics holds the deeper syntactic signals that are only present when
// a parser was injected. Callers must treat the whole block as optional.
type Linguistics struct {
	Entities          []Entity `json:"entities"`
	Sentences         []string `json:"sentences"`
	Subjects          []string `json:"subjects"`
	Objects           []string `json:"objects"`
	ImperativeCount   int      `json:"imperativeCount"`
	AvgSentenceLength float64  `json:"avgSentenceLength"`
	Complexity        float64  `json:"complexity"`
}

// Analysis is the shallow linguistic profile of a raw prompt.
type Analysis struct {
	Raw         string       `json:"raw"`
	Verbs       []string     `json:"verbs"`
	Nouns       []string     `json:"nouns"`
	Domains     []string     `json:"domains"`
	Tone        string       `json:"tone"`
	Audience    string       `json:"audience,omitempty"`
	WordCount   int          `json:"wordCount"`
	CharCount   int          `json:"charCount"`
	Linguistics *Linguistics `json:"linguistics,omitempty"`
}
