package resume

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Load validates a parsed structured-data document and returns the renderable bundle.
// Empty GitHub or LinkedIn values in the document are taken from fallback.
func Load(node *yaml.Node, fallback ContactInfo) (bundle Bundle, err error) {
	if node == nil {
		err = errors.New("no structured data to load")
		return bundle, err
	}

	var raw interface{}
	raw, err = nodeValue(node)
	if err != nil {
		err = errors.Wrap(err, "failed to decode structured data")
		return bundle, err
	}

	top, ok := raw.(map[string]interface{})
	if !ok {
		err = errors.New("structured data must be a mapping at the top level")
		return bundle, err
	}

	bundle, err = FromMap(top, fallback)
	return bundle, err
}

// FromMap validates an already-decoded structured-data mapping.
func FromMap(top map[string]interface{}, fallback ContactInfo) (bundle Bundle, err error) {
	top, _ = normalizeKeys(top).(map[string]interface{})

	var record map[string]interface{}
	record, err = unwrapRecord(top, KeyResume)
	if err != nil {
		return bundle, err
	}

	bundle.Model, err = ValidateModel(record)
	if err != nil {
		err = errors.Wrap(err, "resume validation failed")
		return bundle, err
	}

	bundle.Contact, err = parseContact(top, fallback)
	if err != nil {
		err = errors.Wrap(err, "personal details validation failed")
		return bundle, err
	}

	bundle.Sections, err = ParseSections(top[KeyResumeSections])
	if err != nil {
		err = errors.Wrap(err, "section list validation failed")
		return bundle, err
	}

	return bundle, err
}

// ParseSections reads the ordered section directives.
func ParseSections(raw interface{}) (sections []SectionDirective, err error) {
	if raw == nil {
		err = &ValidationError{Field: KeyResumeSections, Reason: "is required"}
		return sections, err
	}

	items, ok := raw.([]interface{})
	if !ok {
		err = &ValidationError{Field: KeyResumeSections, Reason: "must be a sequence"}
		return sections, err
	}

	sections = make([]SectionDirective, 0, len(items))
	for i, item := range items {
		entry, isMap := item.(map[string]interface{})
		if !isMap {
			err = &ValidationError{Field: fmt.Sprintf("%s.%d", KeyResumeSections, i), Reason: "must be a mapping"}
			return sections, err
		}

		name, isString := entry["type"].(string)
		if !isString {
			err = &ValidationError{Field: fmt.Sprintf("%s.%d.type", KeyResumeSections, i), Reason: "must be a string"}
			return sections, err
		}

		directive := SectionDirective{Type: name}
		err = ValidateSection(directive)
		if err != nil {
			return sections, err
		}

		sections = append(sections, directive)
	}

	return sections, err
}

func parseContact(top map[string]interface{}, fallback ContactInfo) (contact ContactInfo, err error) {
	var record map[string]interface{}
	record, err = unwrapRecord(top, KeyPersonalDetails)
	if err != nil {
		return contact, err
	}

	var data []byte
	data, err = json.Marshal(record)
	if err != nil {
		err = errors.Wrap(err, "failed to encode personal details")
		return contact, err
	}

	err = json.Unmarshal(data, &contact)
	if err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			err = &ValidationError{Field: KeyPersonalDetails + "." + typeErr.Field, Reason: "must be a string"}
			return contact, err
		}
		err = errors.Wrap(err, "failed to decode personal details")
		return contact, err
	}

	if contact.GitHub == "" {
		contact.GitHub = fallback.GitHub
	}
	if contact.LinkedIn == "" {
		contact.LinkedIn = fallback.LinkedIn
	}

	err = ValidateContact(contact)
	return contact, err
}

// unwrapRecord returns top[key] as a mapping. A sequence whose first element
// is a mapping is accepted as well.
func unwrapRecord(top map[string]interface{}, key string) (record map[string]interface{}, err error) {
	value, present := top[key]
	if !present || value == nil {
		err = &ValidationError{Field: key, Reason: "is required"}
		return record, err
	}

	switch v := value.(type) {
	case map[string]interface{}:
		record = v
		return record, err
	case []interface{}:
		if len(v) > 0 {
			if first, ok := v[0].(map[string]interface{}); ok {
				record = first
				return record, err
			}
		}
	}

	err = &ValidationError{Field: key, Reason: "must be a mapping"}
	return record, err
}

// normalizeKeys lower-cases mapping keys and renames "credential" to "credentials".
func normalizeKeys(value interface{}) (out interface{}) {
	switch v := value.(type) {
	case map[string]interface{}:
		out = normalizeMap(v)
	case []interface{}:
		items := make([]interface{}, len(v))
		for i, item := range v {
			items[i] = normalizeKeys(item)
		}
		out = items
	default:
		out = value
	}
	return out
}

func normalizeMap(in map[string]interface{}) (out map[string]interface{}) {
	keys := make([]string, 0, len(in))
	for k := range in {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out = make(map[string]interface{}, len(in))
	for _, k := range keys {
		out[strings.ToLower(k)] = normalizeKeys(in[k])
	}

	if creds, ok := out["credential"]; ok {
		if _, has := out["credentials"]; !has {
			out["credentials"] = creds
			delete(out, "credential")
		}
	}

	return out
}

// nodeValue converts a YAML node to plain Go values. Timestamps stay as their
// source text since dates in a resume are free-form.
func nodeValue(n *yaml.Node) (value interface{}, err error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return value, err
		}
		value, err = nodeValue(n.Content[0])
	case yaml.AliasNode:
		value, err = nodeValue(n.Alias)
	case yaml.MappingNode:
		m := make(map[string]interface{}, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			var v interface{}
			v, err = nodeValue(n.Content[i+1])
			if err != nil {
				return value, err
			}
			m[n.Content[i].Value] = v
		}
		value = m
	case yaml.SequenceNode:
		items := make([]interface{}, 0, len(n.Content))
		for _, child := range n.Content {
			var v interface{}
			v, err = nodeValue(child)
			if err != nil {
				return value, err
			}
			items = append(items, v)
		}
		value = items
	case yaml.ScalarNode:
		if n.ShortTag() == "!!timestamp" {
			value = n.Value
			return value, err
		}
		err = n.Decode(&value)
		if err != nil {
			err = errors.Wrapf(err, "line %d", n.Line)
		}
	default:
		err = errors.Errorf("unsupported YAML node at line %d", n.Line)
	}
	return value, err
}
