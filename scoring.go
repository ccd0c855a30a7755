package iqtest

import (
	"github.com/nsip/iqtest-lite/internal/store"
	"github.com/pkg/errors"
)

// Disclaimer accompanies every score returned to a client.
const Disclaimer = "This is NOT a clinical or official IQ test. Results are approximate and for educational/entertainment purposes only. A proper IQ assessment should be administered by a qualified professional."

var errNoNorms = errors.New("norm table has no rows")

// Answer is one selected option for one question.
// Neither field is range checked: unknown questions and
// impossible options simply never score.
type Answer struct {
	QuestionID     int `json:"question_id"`
	SelectedOption int `json:"selected_option"`
}

// Submission is the body posted by a client, it need not
// cover every item in the catalog.
type Submission struct {
	Answers []Answer `json:"answers"`
}

type ScoreResult struct {
	RawScore       int    `json:"raw_score"`
	TotalQuestions int    `json:"total_questions"`
	IQScore        int    `json:"iq_score"`
	Percentile     int    `json:"percentile"`
	Description    string `json:"description"`
	Disclaimer     string `json:"disclaimer"`
}

// RawScore counts the answers whose selected option is the
// catalog's correct option for that question id.
// Every answer is counted as given, answers for the same
// question are not merged.
func RawScore(items []store.Item, answers []Answer) int {

	key := make(map[int]int, len(items))
	for _, it := range items {
		key[it.ID] = it.Correct
	}

	raw := 0
	for _, a := range answers {
		if correct, ok := key[a.QuestionID]; ok && a.SelectedOption == correct {
			raw++
		}
	}
	return raw
}

// SelectNorm picks the norm row for a raw score.
//
// The first row is the default. The table is scanned in stored
// order; a row with exactly the raw score wins immediately,
// otherwise the last row seen whose raw score is below the
// submitted one is kept. With a table sorted by raw score this
// is the nearest row at or below the score; scores under every
// row fall back to the first row.
func SelectNorm(norms []store.NormRow, raw int) (store.NormRow, error) {

	if len(norms) == 0 {
		return store.NormRow{}, errNoNorms
	}

	selected := norms[0]
	for _, n := range norms {
		if n.RawScore == raw {
			return n, nil
		}
		if n.RawScore < raw {
			selected = n
		}
	}
	return selected, nil
}

// ScoreSubmission recomputes the score of a submission
// from the repository's answer key and norm table.
// Any load failure is returned as a *ServiceError.
func ScoreSubmission(repo store.Repository, sub Submission) (*ScoreResult, error) {

	items, err := repo.LoadItems()
	if err != nil {
		return nil, &ServiceError{Msg: "Error calculating score", Err: err}
	}

	raw := RawScore(items, sub.Answers)

	norms, err := repo.LoadNorms()
	if err != nil {
		return nil, &ServiceError{Msg: "Error calculating score", Err: err}
	}

	norm, err := SelectNorm(norms, raw)
	if err != nil {
		return nil, &ServiceError{Msg: "Error calculating score", Err: err}
	}

	return &ScoreResult{
		RawScore:       raw,
		TotalQuestions: len(items),
		IQScore:        norm.IQScore,
		Percentile:     norm.Percentile,
		Description:    norm.Description,
		Disclaimer:     Disclaimer,
	}, nil
}

// PublicItems returns the catalog in stored order with the
// correct option removed from every item.
func PublicItems(repo store.Repository) ([]map[string]interface{}, error) {

	items, err := repo.LoadItems()
	if err != nil {
		return nil, &ServiceError{Msg: "Error loading test items", Err: err}
	}

	out := make([]map[string]interface{}, 0, len(items))
	for _, it := range items {
		out = append(out, it.Public())
	}
	return out, nil
}
