package question

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// mcRecord is the named object form of a multiple-choice record.
type mcRecord struct {
	Type        Kind     `json:"type"`
	Prompt      string   `json:"prompt"`
	Options     []Option `json:"options"`
	Explanation string   `json:"explanation,omitempty"`
}

// matchingRecord is the named object form of a matching record.
type matchingRecord struct {
	Type        Kind           `json:"type"`
	Prompt      string         `json:"prompt"`
	Categories  []string       `json:"categories"`
	Options     []string       `json:"options"`
	Answer      map[string]int `json:"answer"`
	Explanation string         `json:"explanation,omitempty"`
}

// MarshalJSON always writes the named object form.
func (q Question) MarshalJSON() ([]byte, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	switch q.Kind {
	case KindMultipleChoice:
		mc := q.MultipleChoice
		return json.Marshal(mcRecord{
			Type:        KindMultipleChoice,
			Prompt:      mc.Prompt,
			Options:     mc.Options,
			Explanation: mc.Explanation,
		})
	default:
		m := q.Matching
		return json.Marshal(matchingRecord{
			Type:        KindMatching,
			Prompt:      m.Prompt,
			Categories:  m.Categories,
			Options:     m.Options,
			Answer:      m.Answer,
			Explanation: m.Explanation,
		})
	}
}

// UnmarshalJSON accepts both the named object form and the positional
// array form used by older quiz files.
func (q *Question) UnmarshalJSON(data []byte) error {
	decoded, err := decodeRecord(data)
	if err != nil {
		return err
	}
	*q = decoded
	return nil
}

// decodeRecord decodes and validates a single record.
func decodeRecord(data []byte) (Question, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return Question{}, malformed("empty record")
	}

	var q Question
	var err error
	switch data[0] {
	case '{':
		q, err = decodeObject(data)
	case '[':
		q, err = decodePositional(data)
	default:
		return Question{}, malformed("record must be an object or an array")
	}
	if err != nil {
		return Question{}, err
	}
	if err := q.Validate(); err != nil {
		return Question{}, err
	}
	return q, nil
}

func decodeObject(data []byte) (Question, error) {
	var parsed any
	if err := json.Unmarshal(data, &parsed); err != nil {
		return Question{}, malformed("invalid JSON: %v", err)
	}
	if err := validateObject(parsed); err != nil {
		return Question{}, err
	}

	var head struct {
		Type Kind `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return Question{}, malformed("invalid JSON: %v", err)
	}

	switch head.Type {
	case KindMultipleChoice:
		var r mcRecord
		if err := json.Unmarshal(data, &r); err != nil {
			return Question{}, malformed("decode multiple-choice record: %v", err)
		}
		return NewMultipleChoice(MultipleChoice{
			Prompt:      r.Prompt,
			Options:     r.Options,
			Explanation: r.Explanation,
		}), nil
	case KindMatching:
		var r matchingRecord
		if err := json.Unmarshal(data, &r); err != nil {
			return Question{}, malformed("decode matching record: %v", err)
		}
		return NewMatching(Matching{
			Prompt:      r.Prompt,
			Categories:  r.Categories,
			Options:     r.Options,
			Answer:      r.Answer,
			Explanation: r.Explanation,
		}), nil
	default:
		return Question{}, malformed("unknown record type %q", head.Type)
	}
}

// decodePositional handles the two array layouts:
//
//	["prompt", ["option", true], ["option", false], ..., "explanation"]
//	["prompt", ["category", ...], ["option", ...], {"category": 0, ...}, "explanation"?]
func decodePositional(data []byte) (Question, error) {
	var elems []json.RawMessage
	if err := json.Unmarshal(data, &elems); err != nil {
		return Question{}, malformed("invalid JSON: %v", err)
	}
	if len(elems) < 3 {
		return Question{}, malformed("positional record needs at least 3 elements, got %d", len(elems))
	}

	var prompt string
	if err := json.Unmarshal(elems[0], &prompt); err != nil {
		return Question{}, malformed("prompt must be a string")
	}

	if q, ok, err := decodePositionalMatching(prompt, elems); ok {
		return q, err
	}
	return decodePositionalMultipleChoice(prompt, elems)
}

// decodePositionalMatching reports ok=false when elems is not shaped like
// a matching record, so the caller can fall back to multiple choice.
func decodePositionalMatching(prompt string, elems []json.RawMessage) (Question, bool, error) {
	if len(elems) != 4 && len(elems) != 5 {
		return Question{}, false, nil
	}
	var categories []string
	if err := json.Unmarshal(elems[1], &categories); err != nil {
		return Question{}, false, nil
	}
	if !bytes.HasPrefix(bytes.TrimSpace(elems[3]), []byte("{")) {
		return Question{}, false, nil
	}

	m := Matching{Prompt: prompt, Categories: categories}
	if err := json.Unmarshal(elems[2], &m.Options); err != nil {
		return Question{}, true, malformed("matching options must be strings")
	}
	if err := json.Unmarshal(elems[3], &m.Answer); err != nil {
		return Question{}, true, malformed("matching answer must map categories to option indices")
	}
	if len(elems) == 5 {
		if err := json.Unmarshal(elems[4], &m.Explanation); err != nil {
			return Question{}, true, malformed("explanation must be a string")
		}
	}
	return NewMatching(m), true, nil
}

func decodePositionalMultipleChoice(prompt string, elems []json.RawMessage) (Question, error) {
	mc := MultipleChoice{Prompt: prompt}
	if err := json.Unmarshal(elems[len(elems)-1], &mc.Explanation); err != nil {
		return Question{}, malformed("explanation must be a string")
	}

	for i, raw := range elems[1 : len(elems)-1] {
		var pair []json.RawMessage
		if err := json.Unmarshal(raw, &pair); err != nil || len(pair) != 2 {
			return Question{}, malformed("option %d must be a [text, correct] pair", i+1)
		}
		var opt Option
		if err := json.Unmarshal(pair[0], &opt.Text); err != nil {
			return Question{}, malformed("option %d text must be a string", i+1)
		}
		if err := json.Unmarshal(pair[1], &opt.Correct); err != nil {
			return Question{}, malformed("option %d flag must be a boolean", i+1)
		}
		mc.Options = append(mc.Options, opt)
	}
	return NewMultipleChoice(mc), nil
}

// Quiz is the decoded content of one quiz file.
type Quiz struct {
	Questions []Question

	// Skipped holds one error per record that failed to decode. Valid
	// records around it are still returned in Questions.
	Skipped []*RecordError
}

// Warnings returns Skipped as plain errors for logging.
func (q Quiz) Warnings() []error {
	out := make([]error, len(q.Skipped))
	for i, e := range q.Skipped {
		out[i] = e
	}
	return out
}

// Decode parses a JSON array of records. Only a document that is not a
// JSON array is an error; malformed records are collected in Skipped.
func Decode(data []byte) (Quiz, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return Quiz{}, fmt.Errorf("parse quiz: %w", err)
	}

	var quiz Quiz
	for i, raw := range raws {
		q, err := decodeRecord(raw)
		if err != nil {
			quiz.Skipped = append(quiz.Skipped, &RecordError{Index: i, Err: err})
			continue
		}
		quiz.Questions = append(quiz.Questions, q)
	}
	return quiz, nil
}

// Encode renders records as an indented JSON array.
func Encode(qs []Question) ([]byte, error) {
	if qs == nil {
		qs = []Question{}
	}
	data, err := json.MarshalIndent(qs, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("encode quiz: %w", err)
	}
	return append(data, '\n'), nil
}
