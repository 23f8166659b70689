package config

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// SocialLink is an icon link shown in the site header.
type SocialLink struct {
	Icon  string `yaml:"icon" toml:"icon" json:"icon"`
	Label string `yaml:"label,omitempty" toml:"label,omitempty" json:"label,omitempty"`
	Href  string `yaml:"href" toml:"href" json:"href"`
}

// SocialLinks accepts either a list of links or a mapping of icon to href.
// The list form keeps declaration order.
type SocialLinks []SocialLink

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *SocialLinks) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		var links []SocialLink
		if err := node.Decode(&links); err != nil {
			return err
		}
		*s = links
		return nil
	case yaml.MappingNode:
		// Mapping nodes keep document order, so no sorting here.
		links := make([]SocialLink, 0, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			key, val := node.Content[i], node.Content[i+1]
			if val.Kind != yaml.ScalarNode {
				return fmt.Errorf("line %d: social %q must map to a URL", val.Line, key.Value)
			}
			links = append(links, SocialLink{Icon: key.Value, Label: key.Value, Href: val.Value})
		}
		*s = links
		return nil
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			*s = nil
			return nil
		}
	}
	return fmt.Errorf("line %d: social must be a list or a mapping", node.Line)
}

// UnmarshalTOML implements toml.Unmarshaler. TOML tables carry no key order,
// so the mapping form is sorted by icon.
func (s *SocialLinks) UnmarshalTOML(data any) error {
	switch v := data.(type) {
	case []map[string]any:
		links := make([]SocialLink, 0, len(v))
		for _, m := range v {
			links = append(links, socialFromTable(m))
		}
		*s = links
	case []any:
		links := make([]SocialLink, 0, len(v))
		for i, item := range v {
			m, ok := item.(map[string]any)
			if !ok {
				return fmt.Errorf("social[%d] must be a table", i)
			}
			links = append(links, socialFromTable(m))
		}
		*s = links
	case map[string]any:
		icons := make([]string, 0, len(v))
		for k := range v {
			icons = append(icons, k)
		}
		sort.Strings(icons)
		links := make([]SocialLink, 0, len(icons))
		for _, icon := range icons {
			href, ok := v[icon].(string)
			if !ok {
				return fmt.Errorf("social %q must map to a URL", icon)
			}
			links = append(links, SocialLink{Icon: icon, Label: icon, Href: href})
		}
		*s = links
	default:
		return fmt.Errorf("social must be an array of tables or a table, got %T", data)
	}
	return nil
}

func socialFromTable(m map[string]any) SocialLink {
	str := func(k string) string {
		v, _ := m[k].(string)
		return v
	}
	return SocialLink{Icon: str("icon"), Label: str("label"), Href: str("href")}
}
