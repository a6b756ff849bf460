package domain

import (
	"errors"
	"testing"
)

func validCatalogJSON() []byte {
	return []byte(`{
		"intents": [
			{"tag": "greeting", "patterns": ["hello", "hi there"], "responses": ["Hello!", "Hi!"]},
			{"tag": "branch_hours", "patterns": ["what are your branch hours"], "responses": ["We are open 9-5."]}
		]
	}`)
}

func TestParseCatalog_Valid(t *testing.T) {
	c, err := ParseCatalog(validCatalogJSON())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(c.Intents) != 2 {
		t.Fatalf("intents: got %d, want 2", len(c.Intents))
	}
	if c.Intents[0].Tag != "greeting" {
		t.Errorf("order not preserved: got %q first", c.Intents[0].Tag)
	}
	if c.Intents[0].Example() != "hello" {
		t.Errorf("example: got %q, want %q", c.Intents[0].Example(), "hello")
	}
}

func TestParseCatalog_InvalidJSON(t *testing.T) {
	if _, err := ParseCatalog([]byte(`{"intents": [`)); err == nil {
		t.Fatal("expected error")
	}
}

func TestParseCatalog_Empty(t *testing.T) {
	_, err := ParseCatalog([]byte(`{"intents": []}`))
	if !errors.Is(err, ErrEmptyCatalog) {
		t.Fatalf("got %v, want ErrEmptyCatalog", err)
	}
}

func TestValidate_DuplicateTag(t *testing.T) {
	c := Catalog{Intents: []Intent{
		{Tag: "a", Patterns: []string{"x"}, Responses: []string{"y"}},
		{Tag: "a", Patterns: []string{"x"}, Responses: []string{"y"}},
	}}
	if err := c.Validate(); err == nil {
		t.Fatal("expected duplicate tag error")
	}
}

func TestValidate_NoPatterns(t *testing.T) {
	c := Catalog{Intents: []Intent{{Tag: "a", Responses: []string{"y"}}}}
	if err := c.Validate(); err == nil {
		t.Fatal("expected error for intent without patterns")
	}
}

func TestValidate_NoResponses(t *testing.T) {
	c := Catalog{Intents: []Intent{{Tag: "a", Patterns: []string{"x"}}}}
	if err := c.Validate(); err == nil {
		t.Fatal("expected error for intent without responses")
	}
}

func TestFind(t *testing.T) {
	c, err := ParseCatalog(validCatalogJSON())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	in, ok := c.Find("branch_hours")
	if !ok {
		t.Fatal("branch_hours not found")
	}
	if in.Responses[0] != "We are open 9-5." {
		t.Errorf("unexpected response: %q", in.Responses[0])
	}

	if _, ok := c.Find("nope"); ok {
		t.Error("unknown tag should not be found")
	}
}

func TestTags(t *testing.T) {
	c, _ := ParseCatalog(validCatalogJSON())
	tags := c.Tags()
	if len(tags) != 2 || tags[0] != "greeting" || tags[1] != "branch_hours" {
		t.Errorf("tags: got %v", tags)
	}
}
