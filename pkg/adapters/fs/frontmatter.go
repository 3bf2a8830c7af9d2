package fs

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/timeline/pkg/core"
)

// splitFrontmatter locates a leading "---" fenced YAML block. offset is the index
// of the first byte after the closing fence line.
func splitFrontmatter(data []byte) (yamlData []byte, offset int, ok bool) {
	var start int
	switch {
	case bytes.HasPrefix(data, []byte("---\n")):
		start = 4
	case bytes.HasPrefix(data, []byte("---\r\n")):
		start = 5
	default:
		return nil, 0, false
	}

	pos := start
	for pos <= len(data) {
		line, next := data[pos:], len(data)
		end := bytes.IndexByte(data[pos:], '\n')
		if end >= 0 {
			line, next = data[pos:pos+end], pos+end+1
		}
		if string(bytes.TrimRight(line, "\r")) == "---" {
			return data[start:pos], next, true
		}
		if end < 0 {
			break
		}
		pos = next
	}
	return nil, 0, false
}

// parseFrontmatter returns the metadata block in stored order and the body offset.
// Invalid YAML yields empty metadata and an error; the offset still skips the block.
func parseFrontmatter(data []byte) (core.Metadata, int, error) {
	yamlData, offset, ok := splitFrontmatter(data)
	if !ok {
		return nil, 0, nil
	}

	var root yaml.Node
	if err := yaml.Unmarshal(yamlData, &root); err != nil {
		return nil, offset, fmt.Errorf("failed to parse frontmatter: %w", err)
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, offset, nil
	}

	mapping := root.Content[0]
	if mapping.Kind != yaml.MappingNode {
		return nil, offset, fmt.Errorf("frontmatter is not a mapping")
	}

	meta := make(core.Metadata, 0, len(mapping.Content)/2)
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		meta = append(meta, core.Property{
			Key:   mapping.Content[i].Value,
			Value: nodeValue(mapping.Content[i+1]),
		})
	}
	return meta, offset, nil
}

// nodeValue keeps scalars that read as text (dates included) as strings and
// decodes everything else.
func nodeValue(n *yaml.Node) core.Value {
	if n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	if n.Kind == yaml.ScalarNode {
		switch n.ShortTag() {
		case "!!str", "!!timestamp":
			return core.StringValue(n.Value)
		}
	}

	var raw any
	if err := n.Decode(&raw); err != nil {
		return core.OtherValue(n.Value)
	}
	return core.OtherValue(raw)
}
