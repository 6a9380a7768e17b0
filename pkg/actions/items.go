package actions

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/sgaunet/auto-close/pkg/entity"
)

var errInvalidItems = errors.New("invalid agent output")

// ErrInvalidItems is returned when the agent output is neither an items
// object nor an array of items.
var ErrInvalidItems = errInvalidItems

type itemsDocument struct {
	Items []entity.Item `json:"items"`
}

// LoadItems reads agent output items from path and keeps those whose type
// matches itemType. Items without a type are kept.
func LoadItems(path, itemType string) ([]entity.Item, error) {
	// #nosec G304 - the path is provided by the workflow
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read agent output: %w", err)
	}
	return ParseItems(data, itemType)
}

// ParseItems decodes agent output given as {"items": [...]} or as a bare
// array. Numbers are kept as json.Number.
func ParseItems(data []byte, itemType string) ([]entity.Item, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}

	var items []entity.Item
	switch data[0] {
	case '[':
		if err := decodeJSON(data, &items); err != nil {
			return nil, err
		}
	case '{':
		var doc itemsDocument
		if err := decodeJSON(data, &doc); err != nil {
			return nil, err
		}
		items = doc.Items
	default:
		return nil, fmt.Errorf("%w: expected object or array", errInvalidItems)
	}

	filtered := make([]entity.Item, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		if t := item.Type(); t != "" && t != itemType {
			continue
		}
		filtered = append(filtered, item)
	}
	return filtered, nil
}

func decodeJSON(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %w", errInvalidItems, err)
	}
	return nil
}
