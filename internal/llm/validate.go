package llm

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// compiledSchemas caches compiled schemas by Schema.Name.
var compiledSchemas sync.Map

func compileSchema(s *Schema) (*jsonschema.Schema, error) {
	if c, ok := compiledSchemas.Load(s.Name); ok {
		return c.(*jsonschema.Schema), nil
	}

	// The compiler wants plain decoded JSON, not Go maps with typed slices.
	b, err := json.Marshal(s.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema %q: %w", s.Name, err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("decode schema %q: %w", s.Name, err)
	}

	url := "mem://" + s.Name + ".json"
	c := jsonschema.NewCompiler()
	if err := c.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("add schema %q: %w", s.Name, err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema %q: %w", s.Name, err)
	}
	compiledSchemas.Store(s.Name, compiled)
	return compiled, nil
}

// checkObject decodes raw and validates it against s.
func checkObject(s *Schema, raw json.RawMessage) error {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	compiled, err := compileSchema(s)
	if err != nil {
		return err
	}
	if err := compiled.Validate(v); err != nil {
		return fmt.Errorf("schema %q: %w", s.Name, err)
	}
	return nil
}

// structuredContent turns a reply's text into Response.Content. With a
// schema the text must contain a conforming JSON object, possibly wrapped in
// prose or code fences. A reply cut off at MaxTokens reports KindTruncated.
func structuredContent(provider string, s *Schema, text string, stop StopReason) (json.RawMessage, error) {
	if s == nil {
		return textContent(text), nil
	}

	obj, ok := ExtractJSONObject(text)
	if !ok {
		if stop == StopMaxTokens {
			return nil, &Error{Kind: KindTruncated, Provider: provider, Content: json.RawMessage(text)}
		}
		return nil, badOutput(provider, json.RawMessage(text), errors.New("no JSON object in reply"))
	}
	if err := checkObject(s, obj); err != nil {
		if stop == StopMaxTokens {
			return nil, &Error{Kind: KindTruncated, Provider: provider, Content: obj, Err: err}
		}
		return nil, badOutput(provider, obj, err)
	}
	return obj, nil
}
