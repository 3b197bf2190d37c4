// internal/store/models.go
package store

// Framework is a named, reusable prompt template with declared fillable
// fields. Definitions are immutable once loaded; the pipeline only reads
// them.
type Framework struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Template    string            `json:"template"`
	Fields      map[string]string `json:"fields"`
}

// Summary is the listing view of a framework definition.
type Summary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}
