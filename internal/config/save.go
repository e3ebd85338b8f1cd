package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vvwxvv/Data-Schema-Json-App/internal/fileutil"
)

// Set writes value under a dotted key such as "ui.theme" in the YAML file at
// configPath. Missing files and mappings are created. Comments and the
// order of the other keys are kept.
func Set(configPath, key string, value any) error {
	parts := strings.Split(key, ".")
	if slices.Contains(parts, "") {
		return fmt.Errorf("invalid config key %q", key)
	}

	doc, err := readDocument(configPath)
	if err != nil {
		return err
	}
	node := doc.Content[0]
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("parsing config: top level must be a mapping")
	}
	for _, part := range parts[:len(parts)-1] {
		node = mappingValue(node, part)
		if node.Kind != yaml.MappingNode {
			*node = yaml.Node{Kind: yaml.MappingNode, HeadComment: node.HeadComment, LineComment: node.LineComment}
		}
	}

	target := mappingValue(node, parts[len(parts)-1])
	var encoded yaml.Node
	if err := encoded.Encode(value); err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	encoded.HeadComment = target.HeadComment
	encoded.LineComment = target.LineComment
	encoded.FootComment = target.FootComment
	*target = encoded

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := fileutil.WriteAtomic(configPath, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// SaveTheme stores ui.theme.
func SaveTheme(configPath, theme string) error {
	if theme != ThemeDark && theme != ThemeLight {
		return fmt.Errorf("invalid theme %q", theme)
	}
	return Set(configPath, "ui.theme", theme)
}

// SavePreview stores ui.show_preview.
func SavePreview(configPath string, show bool) error {
	return Set(configPath, "ui.show_preview", show)
}

// readDocument parses the config file into a node tree. A missing or empty
// file yields a document holding an empty mapping.
func readDocument(path string) (*yaml.Node, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is the config file
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	doc := &yaml.Node{}
	if len(bytes.TrimSpace(data)) > 0 {
		if err := yaml.Unmarshal(data, doc); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		doc = &yaml.Node{
			Kind:    yaml.DocumentNode,
			Content: []*yaml.Node{{Kind: yaml.MappingNode}},
		}
	}
	return doc, nil
}

// mappingValue returns the value node for key, appending an empty one when
// the key is missing.
func mappingValue(m *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	value := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null"}
	m.Content = append(m.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: key}, value)
	return value
}
