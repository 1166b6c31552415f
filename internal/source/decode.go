package source

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"github.com/andresuchdata/panaderia-reports/internal/domain"
	"gopkg.in/yaml.v3"
)

// Decode parses one document of the given kind. A document holds either a single report
// object or a list of them.
func Decode(kind domain.ReportKind, name string, data []byte) (domain.RawSet, error) {
	switch kind {
	case domain.KindDaily:
		items, err := decodeByExt[domain.RawDailyReport](name, data)
		if err != nil {
			return domain.RawSet{}, err
		}
		return domain.RawSet{Daily: items}, nil
	case domain.KindMonthly, domain.KindMaterial:
		items, err := decodeByExt[domain.RawPeriodReport](name, data)
		if err != nil {
			return domain.RawSet{}, err
		}
		if kind == domain.KindMonthly {
			return domain.RawSet{Monthly: items}, nil
		}
		return domain.RawSet{Material: items}, nil
	}
	return domain.RawSet{}, fmt.Errorf("unknown report kind %q", kind)
}

func decodeByExt[T any](name string, data []byte) ([]T, error) {
	switch strings.ToLower(path.Ext(name)) {
	case ".json":
		return decodeJSON[T](data)
	case ".yaml", ".yml":
		return decodeYAML[T](data)
	case ".xlsx":
		return decodeXLSX[T](data)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path.Ext(name))
}

func decodeJSON[T any](data []byte) ([]T, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}

	if trimmed[0] == '[' {
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("decode json list: %w", err)
		}
		return items, nil
	}

	var item T
	if err := json.Unmarshal(trimmed, &item); err != nil {
		return nil, fmt.Errorf("decode json object: %w", err)
	}
	return []T{item}, nil
}

func decodeYAML[T any](data []byte) ([]T, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, nil
	}

	root := doc.Content[0]
	switch root.Kind {
	case yaml.SequenceNode:
		var items []T
		if err := root.Decode(&items); err != nil {
			return nil, fmt.Errorf("decode yaml list: %w", err)
		}
		return items, nil
	case yaml.MappingNode:
		var item T
		if err := root.Decode(&item); err != nil {
			return nil, fmt.Errorf("decode yaml object: %w", err)
		}
		return []T{item}, nil
	case yaml.ScalarNode:
		if root.Tag == "!!null" {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("decode yaml: expected a list or an object, got %s", root.ShortTag())
}
