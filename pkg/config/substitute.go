package config

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/knadh/koanf/v2"
)

// referencePattern matches ${name} and the optional form ${?name}.
var referencePattern = regexp.MustCompile(`\$\{(\?)?\s*([^}\s]+)\s*\}`)

type resolvedValue struct {
	value any
	set   bool
}

type substituter struct {
	flat      map[string]any
	lookupEnv func(string) (string, bool)
	resolved  map[string]resolvedValue
	active    map[string]bool
}

// substitute replaces ${name} references in string values and in the string
// elements of lists. A name resolves to the configuration key of that name
// when present, otherwise to the environment variable. A value consisting of
// exactly one reference keeps the referenced value's type; an unresolved
// optional reference in that position removes the key.
func substitute(k *koanf.Koanf, lookupEnv func(string) (string, bool)) error {
	if lookupEnv == nil {
		lookupEnv = os.LookupEnv
	}
	s := &substituter{
		flat:      k.All(),
		lookupEnv: lookupEnv,
		resolved:  make(map[string]resolvedValue),
		active:    make(map[string]bool),
	}
	keys := make([]string, 0, len(s.flat))
	for key := range s.flat {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		original := s.flat[key]
		value, set, err := s.resolve(key)
		if err != nil {
			return err
		}
		if !set {
			k.Delete(key)
			continue
		}
		if needsSubstitution(original) {
			if err := k.Set(key, value); err != nil {
				return fmt.Errorf("failed to set substituted value for %q: %w", key, err)
			}
		}
	}
	return nil
}

func (s *substituter) resolve(key string) (any, bool, error) {
	if r, ok := s.resolved[key]; ok {
		return r.value, r.set, nil
	}
	if s.active[key] {
		return nil, false, fmt.Errorf("configuration substitution cycle at %q", key)
	}
	value := s.flat[key]
	if !needsSubstitution(value) {
		s.resolved[key] = resolvedValue{value: value, set: true}
		return value, true, nil
	}

	s.active[key] = true
	defer delete(s.active, key)

	var (
		out any
		set bool
		err error
	)
	switch val := value.(type) {
	case string:
		out, set, err = s.resolveText(key, val)
	case []any:
		out, set, err = s.resolveList(key, val)
	}
	if err != nil {
		return nil, false, err
	}
	s.resolved[key] = resolvedValue{value: out, set: set}
	return out, set, nil
}

// resolveList substitutes each string element of a list. Elements whose
// optional reference is unresolved are dropped; the list itself stays set.
func (s *substituter) resolveList(key string, list []any) (any, bool, error) {
	out := make([]any, 0, len(list))
	for i, item := range list {
		text, ok := item.(string)
		if !ok {
			out = append(out, item)
			continue
		}
		v, set, err := s.resolveText(fmt.Sprintf("%s[%d]", key, i), text)
		if err != nil {
			return nil, false, err
		}
		if set {
			out = append(out, v)
		}
	}
	return out, true, nil
}

// resolveText substitutes the references in text, reporting key in errors.
func (s *substituter) resolveText(key, text string) (any, bool, error) {
	matches := referencePattern.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 1 && matches[0][0] == 0 && matches[0][1] == len(text) {
		optional := matches[0][2] >= 0
		name := text[matches[0][4]:matches[0][5]]
		v, found, err := s.reference(name)
		if err != nil {
			return nil, false, err
		}
		if !found && !optional {
			return nil, false, fmt.Errorf("unresolved substitution ${%s} at %q", name, key)
		}
		return v, found, nil
	}

	var b strings.Builder
	last := 0
	for _, m := range matches {
		b.WriteString(text[last:m[0]])
		last = m[1]
		optional := m[2] >= 0
		name := text[m[4]:m[5]]
		v, found, err := s.reference(name)
		if err != nil {
			return nil, false, err
		}
		if !found {
			if !optional {
				return nil, false, fmt.Errorf("unresolved substitution ${%s} at %q", name, key)
			}
			continue
		}
		part, ok := scalarText(v)
		if !ok {
			return nil, false, fmt.Errorf("substitution ${%s} at %q is not a scalar", name, key)
		}
		b.WriteString(part)
	}
	b.WriteString(text[last:])
	return b.String(), true, nil
}

// needsSubstitution reports whether v is a string, or a list holding a
// string, that contains a reference.
func needsSubstitution(v any) bool {
	switch val := v.(type) {
	case string:
		return strings.Contains(val, "${")
	case []any:
		for _, item := range val {
			if text, ok := item.(string); ok && strings.Contains(text, "${") {
				return true
			}
		}
	}
	return false
}

func (s *substituter) reference(name string) (any, bool, error) {
	if _, ok := s.flat[name]; ok {
		return s.resolve(name)
	}
	if v, ok := s.lookupEnv(name); ok {
		return v, true, nil
	}
	return nil, false, nil
}
