package store

import (
	"encoding/json"
	"io/ioutil"
	"math"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

// Item is a single multiple-choice question.
// Correct is the index into Options of the right answer
// and must never be sent to clients.
type Item struct {
	ID       int      `json:"id"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Correct  int      `json:"correct"`
	Type     string   `json:"type"`

	// every stored field of the item except the answer key,
	// kept as raw json so unknown fields survive
	public map[string]json.RawMessage
}

// Public returns the client view of the item: all
// fields except the correct option.
func (i Item) Public() map[string]interface{} {
	out := make(map[string]interface{})
	if i.public != nil {
		for k, v := range i.public {
			out[k] = v
		}
		return out
	}
	out["id"] = i.ID
	out["question"] = i.Question
	out["options"] = i.Options
	out["type"] = i.Type
	return out
}

func (r *FileRepository) LoadItems() ([]Item, error) {
	data, err := ioutil.ReadFile(r.itemsPath)
	if err != nil {
		return nil, &LoadError{Source: r.itemsPath, Err: err}
	}
	items, err := ParseItems(data)
	if err != nil {
		return nil, &LoadError{Source: r.itemsPath, Err: err}
	}
	return items, nil
}

// ParseItems validates and decodes a catalog document of the form
// {"items": [{"id":..,"question":..,"options":[..],"correct":..,"type":..}, ...]}
//
// catalog order is preserved.
func ParseItems(data []byte) ([]Item, error) {

	if !gjson.ValidBytes(data) {
		return nil, errors.New("catalog is not valid json")
	}

	list := gjson.GetBytes(data, "items")
	if !list.IsArray() {
		return nil, errors.New("catalog has no items array")
	}

	items := []Item{}
	seen := map[int]bool{}
	var parseErr error
	n := 0
	list.ForEach(func(_, v gjson.Result) bool {
		item, err := parseItem(v)
		if err != nil {
			parseErr = errors.Wrapf(err, "item %d", n)
			return false
		}
		if seen[item.ID] {
			parseErr = errors.Errorf("item %d: duplicate id %d", n, item.ID)
			return false
		}
		seen[item.ID] = true
		items = append(items, item)
		n++
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}

	return items, nil
}

func parseItem(v gjson.Result) (Item, error) {

	if !v.IsObject() {
		return Item{}, errors.New("not an object")
	}

	id, err := intField(v, "id")
	if err != nil {
		return Item{}, err
	}
	question, err := stringField(v, "question")
	if err != nil {
		return Item{}, err
	}
	typ, err := stringField(v, "type")
	if err != nil {
		return Item{}, err
	}

	opts := v.Get("options")
	if !opts.IsArray() {
		return Item{}, errors.New("missing or invalid field: options")
	}
	options := []string{}
	for _, o := range opts.Array() {
		if o.Type != gjson.String {
			return Item{}, errors.New("options must all be strings")
		}
		options = append(options, o.String())
	}
	if len(options) == 0 {
		return Item{}, errors.New("options must not be empty")
	}

	correct, err := intField(v, "correct")
	if err != nil {
		return Item{}, err
	}
	if correct < 0 || correct >= len(options) {
		return Item{}, errors.Errorf("correct index %d out of range for %d options", correct, len(options))
	}

	public := map[string]json.RawMessage{}
	v.ForEach(func(key, val gjson.Result) bool {
		if key.String() != "correct" {
			public[key.String()] = json.RawMessage(val.Raw)
		}
		return true
	})

	return Item{
		ID:       id,
		Question: question,
		Options:  options,
		Correct:  correct,
		Type:     typ,
		public:   public,
	}, nil
}

func intField(v gjson.Result, name string) (int, error) {
	f := v.Get(name)
	if f.Type != gjson.Number {
		return 0, errors.Errorf("missing or invalid field: %s", name)
	}
	if f.Num != math.Trunc(f.Num) {
		return 0, errors.Errorf("field %s must be an integer", name)
	}
	return int(f.Int()), nil
}

func stringField(v gjson.Result, name string) (string, error) {
	f := v.Get(name)
	if f.Type != gjson.String {
		return "", errors.Errorf("missing or invalid field: %s", name)
	}
	return f.String(), nil
}
