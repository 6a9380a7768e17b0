package entity

// Item is one agent output record asking for an entity to be closed.
// Values come straight from decoded JSON; numbers may be json.Number,
// float64, int or string depending on the producer.
type Item map[string]any

// Type returns the item's "type" field, or "" when absent.
func (i Item) Type() string {
	t, _ := i["type"].(string)
	return t
}
