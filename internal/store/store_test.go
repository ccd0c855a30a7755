package store

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const catalogJSON = `{
  "items": [
    {"id": 3, "question": "q3", "options": ["a", "b", "c"], "correct": 2, "type": "logical", "hint": "think"},
    {"id": 1, "question": "q1", "options": ["a", "b"], "correct": 0, "type": "verbal"}
  ]
}`

const normsCSV = `raw_score,iq_score,percentile,description
0,70,2,Low
2,100,50,Average
1,85,16,"Below, average"
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, ioutil.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadItems(t *testing.T) {
	dir := t.TempDir()
	repo := NewFileRepository(writeFile(t, dir, "items.json", catalogJSON), "")

	items, err := repo.LoadItems()
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, 3, items[0].ID)
	assert.Equal(t, "q3", items[0].Question)
	assert.Equal(t, []string{"a", "b", "c"}, items[0].Options)
	assert.Equal(t, 2, items[0].Correct)
	assert.Equal(t, "logical", items[0].Type)
	assert.Equal(t, 1, items[1].ID)
}

func TestItemPublicStripsCorrect(t *testing.T) {
	items, err := ParseItems([]byte(catalogJSON))
	require.NoError(t, err)

	for _, it := range items {
		pub := it.Public()
		assert.NotContains(t, pub, "correct")
		assert.Contains(t, pub, "id")
		assert.Contains(t, pub, "question")
		assert.Contains(t, pub, "options")
		assert.Contains(t, pub, "type")
	}

	// unknown fields are carried through
	b, err := json.Marshal(items[0].Public())
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":3,"question":"q3","options":["a","b","c"],"type":"logical","hint":"think"}`, string(b))

	// items built in code have no raw form
	pub := Item{ID: 9, Question: "q", Options: []string{"x"}, Correct: 0, Type: "t"}.Public()
	assert.NotContains(t, pub, "correct")
	assert.Equal(t, 9, pub["id"])
}

func TestLoadItemsMissingFile(t *testing.T) {
	repo := NewFileRepository(filepath.Join(t.TempDir(), "nope.json"), "")

	_, err := repo.LoadItems()
	require.Error(t, err)
	assert.True(t, IsLoadError(err))
	assert.True(t, os.IsNotExist(errorsCause(err)))
}

func errorsCause(err error) error {
	if le, ok := err.(*LoadError); ok {
		return le.Err
	}
	return err
}

func TestParseItemsInvalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		msg  string
	}{
		{name: "not json", doc: `{"items": [`, msg: "not valid json"},
		{name: "no items", doc: `{"questions": []}`, msg: "no items array"},
		{name: "items not array", doc: `{"items": {}}`, msg: "no items array"},
		{name: "item not object", doc: `{"items": [1]}`, msg: "not an object"},
		{name: "missing id", doc: `{"items": [{"question":"q","options":["a"],"correct":0,"type":"t"}]}`, msg: "field: id"},
		{name: "string id", doc: `{"items": [{"id":"1","question":"q","options":["a"],"correct":0,"type":"t"}]}`, msg: "field: id"},
		{name: "fractional id", doc: `{"items": [{"id":1.5,"question":"q","options":["a"],"correct":0,"type":"t"}]}`, msg: "must be an integer"},
		{name: "missing question", doc: `{"items": [{"id":1,"options":["a"],"correct":0,"type":"t"}]}`, msg: "field: question"},
		{name: "missing options", doc: `{"items": [{"id":1,"question":"q","correct":0,"type":"t"}]}`, msg: "field: options"},
		{name: "empty options", doc: `{"items": [{"id":1,"question":"q","options":[],"correct":0,"type":"t"}]}`, msg: "must not be empty"},
		{name: "non string option", doc: `{"items": [{"id":1,"question":"q","options":["a",2],"correct":0,"type":"t"}]}`, msg: "must all be strings"},
		{name: "missing correct", doc: `{"items": [{"id":1,"question":"q","options":["a"],"type":"t"}]}`, msg: "field: correct"},
		{name: "correct out of range", doc: `{"items": [{"id":1,"question":"q","options":["a","b"],"correct":2,"type":"t"}]}`, msg: "out of range"},
		{name: "negative correct", doc: `{"items": [{"id":1,"question":"q","options":["a","b"],"correct":-1,"type":"t"}]}`, msg: "out of range"},
		{name: "missing type", doc: `{"items": [{"id":1,"question":"q","options":["a"],"correct":0}]}`, msg: "field: type"},
		{name: "duplicate id", doc: `{"items": [{"id":1,"question":"q","options":["a"],"correct":0,"type":"t"},{"id":1,"question":"r","options":["a"],"correct":0,"type":"t"}]}`, msg: "duplicate id 1"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseItems([]byte(tc.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.msg)
		})
	}
}

func TestParseItemsEmptyCatalog(t *testing.T) {
	items, err := ParseItems([]byte(`{"items": []}`))
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestLoadItemsWrapsParseError(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "items.json", `{"items": [{"id": 1}]}`)

	_, err := NewFileRepository(path, "").LoadItems()
	require.Error(t, err)
	assert.True(t, IsLoadError(err))
	assert.Contains(t, err.Error(), path)
	assert.Contains(t, err.Error(), "item 0")
}

func TestLoadNorms(t *testing.T) {
	dir := t.TempDir()
	repo := NewFileRepository("", writeFile(t, dir, "norms.csv", normsCSV))

	norms, err := repo.LoadNorms()
	require.NoError(t, err)

	// stored order is kept
	assert.Equal(t, []NormRow{
		{RawScore: 0, IQScore: 70, Percentile: 2, Description: "Low"},
		{RawScore: 2, IQScore: 100, Percentile: 50, Description: "Average"},
		{RawScore: 1, IQScore: 85, Percentile: 16, Description: "Below, average"},
	}, norms)
}

func TestParseNormsColumnOrderAndSpaces(t *testing.T) {
	src := "description, percentile, iq_score, raw_score\nAverage, 50, 100, 5\n"

	norms, err := ParseNorms(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, norms, 1)
	assert.Equal(t, NormRow{RawScore: 5, IQScore: 100, Percentile: 50, Description: "Average"}, norms[0])
}

func TestParseNormsInvalid(t *testing.T) {
	tests := []struct {
		name string
		src  string
		msg  string
	}{
		{name: "empty file", src: "", msg: "norm table is empty"},
		{name: "header only", src: "raw_score,iq_score,percentile,description\n", msg: "has no rows"},
		{name: "missing column", src: "raw_score,iq_score,description\n0,70,Low\n", msg: "missing column: percentile"},
		{name: "bad raw score", src: "raw_score,iq_score,percentile,description\nx,70,2,Low\n", msg: "row 2: raw_score"},
		{name: "bad iq score", src: "raw_score,iq_score,percentile,description\n0,70.5,2,Low\n", msg: "row 2: iq_score"},
		{name: "bad percentile", src: "raw_score,iq_score,percentile,description\n0,70,2,Low\n1,75,,Low\n", msg: "row 3: percentile"},
		{name: "short row", src: "raw_score,iq_score,percentile,description\n0,70,2\n", msg: "row 2"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseNorms(strings.NewReader(tc.src))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.msg)
		})
	}
}

func TestLoadNormsMissingFile(t *testing.T) {
	repo := NewFileRepository("", filepath.Join(t.TempDir(), "nope.csv"))

	_, err := repo.LoadNorms()
	require.Error(t, err)
	assert.True(t, IsLoadError(err))
}
