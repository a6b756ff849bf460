package domain

import (
	"encoding/json"
	"fmt"
)

// Intent is one named category of user request: the example phrasings it is
// trained on and the canned replies it may answer with.
type Intent struct {
	Tag       string   `json:"tag"`
	Patterns  []string `json:"patterns"`
	Responses []string `json:"responses"`
}

// Example returns the representative pattern exposed to clients.
func (i Intent) Example() string {
	if len(i.Patterns) == 0 {
		return ""
	}
	return i.Patterns[0]
}

// Catalog is the ordered, hand-authored set of intents. It is loaded once,
// re-serialized verbatim into the artifact bundle, and never mutated at runtime.
type Catalog struct {
	Intents []Intent `json:"intents"`
}

// ParseCatalog decodes and validates a catalog from its JSON authoring format.
func ParseCatalog(data []byte) (Catalog, error) {
	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return Catalog{}, fmt.Errorf("parse catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Catalog{}, err
	}
	return c, nil
}

// Validate checks the catalog invariants: at least one intent, unique tags,
// and at least one pattern and one response per intent.
func (c Catalog) Validate() error {
	if len(c.Intents) == 0 {
		return ErrEmptyCatalog
	}
	seen := make(map[string]bool, len(c.Intents))
	for _, in := range c.Intents {
		if in.Tag == "" {
			return fmt.Errorf("intent with empty tag")
		}
		if seen[in.Tag] {
			return fmt.Errorf("duplicate intent tag: %s", in.Tag)
		}
		seen[in.Tag] = true
		if len(in.Patterns) == 0 {
			return fmt.Errorf("intent %s has no patterns", in.Tag)
		}
		if len(in.Responses) == 0 {
			return fmt.Errorf("intent %s has no responses", in.Tag)
		}
	}
	return nil
}

// Find returns the intent with the given tag, or false if the tag is unknown.
func (c Catalog) Find(tag string) (Intent, bool) {
	for _, in := range c.Intents {
		if in.Tag == tag {
			return in, true
		}
	}
	return Intent{}, false
}

// Tags returns all intent tags in catalog order.
func (c Catalog) Tags() []string {
	tags := make([]string, len(c.Intents))
	for i, in := range c.Intents {
		tags[i] = in.Tag
	}
	return tags
}
