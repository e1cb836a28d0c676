package filter

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

var allowedEntityKeys = map[string]bool{
	"sort":   true,
	"fields": true,
}

var allowedFieldKeys = map[string]bool{
	"name":     true,
	"column":   true,
	"numeric":  true,
	"repeated": true,
	"cast":     true,
}

type entityConfig struct {
	Sort   string           `yaml:"sort"`
	Fields map[string]Field `yaml:"fields"`
}

// LoadFile reads a YAML registry file. Entities already present in base are
// extended with the file's fields; new entities need a sort key.
//
//	conference:
//	  fields:
//	    COUNTRY: {name: country}
func LoadFile(path string, base Registries) (Registries, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Load(data, base)
}

func Load(data []byte, base Registries) (Registries, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("YAML parse error: %w", err)
	}
	if len(root.Content) == 0 {
		return nil, fmt.Errorf("empty YAML")
	}
	if err := validateRoot(root.Content[0]); err != nil {
		return nil, err
	}

	var cfg map[string]entityConfig
	if err := root.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal error: %w", err)
	}

	out := make(Registries, len(base)+len(cfg))
	for name, r := range base {
		out[name] = r
	}

	entities := make([]string, 0, len(cfg))
	for name := range cfg {
		entities = append(entities, name)
	}
	sort.Strings(entities)

	for _, name := range entities {
		ec := cfg[name]
		fields := make([]Field, 0, len(ec.Fields))
		tokens := make([]string, 0, len(ec.Fields))
		for tok := range ec.Fields {
			tokens = append(tokens, tok)
		}
		sort.Strings(tokens)
		for _, tok := range tokens {
			f := ec.Fields[tok]
			f.Token = tok
			fields = append(fields, f)
		}

		var (
			reg *Registry
			err error
		)
		if existing, ok := out[name]; ok {
			if ec.Sort != "" && ec.Sort != existing.SortField() {
				return nil, fmt.Errorf("entity %s: sort field cannot change from %s to %s", name, existing.SortField(), ec.Sort)
			}
			reg, err = existing.Extend(fields...)
		} else {
			reg, err = NewRegistry(ec.Sort, fields...)
		}
		if err != nil {
			return nil, fmt.Errorf("entity %s: %w", name, err)
		}
		out[name] = reg
	}
	return out, nil
}

func validateRoot(n *yaml.Node) error {
	if n.Kind != yaml.MappingNode {
		return fmt.Errorf("expected mapping at top level")
	}
	for i := 0; i < len(n.Content); i += 2 {
		entity := n.Content[i].Value
		if err := validateKeys(n.Content[i+1], allowedEntityKeys, entity); err != nil {
			return err
		}
		body := n.Content[i+1]
		for j := 0; j < len(body.Content); j += 2 {
			if body.Content[j].Value != "fields" {
				continue
			}
			fields := body.Content[j+1]
			if fields.Kind != yaml.MappingNode {
				return fmt.Errorf("%s.fields: expected mapping", entity)
			}
			for k := 0; k < len(fields.Content); k += 2 {
				path := entity + ".fields." + fields.Content[k].Value
				if err := validateKeys(fields.Content[k+1], allowedFieldKeys, path); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func validateKeys(n *yaml.Node, allowed map[string]bool, path string) error {
	if n.Kind != yaml.MappingNode {
		return fmt.Errorf("%s: expected mapping", path)
	}
	for i := 0; i < len(n.Content); i += 2 {
		key := n.Content[i].Value
		if !allowed[key] {
			return fmt.Errorf("%s: unknown key %q (line %d)", path, key, n.Content[i].Line)
		}
	}
	return nil
}
