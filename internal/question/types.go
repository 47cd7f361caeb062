package question

// Kind identifies which variant a Question holds.
type Kind string

const (
	// KindMultipleChoice is a prompt with options, one or more of which are correct.
	KindMultipleChoice Kind = "multiple_choice"

	// KindMatching is a prompt where each category is paired with exactly one option.
	KindMatching Kind = "matching"
)

// Question is a single quiz record. Exactly one of MultipleChoice and
// Matching is set, selected by Kind.
type Question struct {
	Kind           Kind
	MultipleChoice *MultipleChoice
	Matching       *Matching
}

// Option is one answer choice of a multiple-choice question.
type Option struct {
	Text    string `json:"text"`
	Correct bool   `json:"correct"`
}

// MultipleChoice is a question answered by picking the set of correct options.
type MultipleChoice struct {
	Prompt      string
	Options     []Option
	Explanation string
}

// Matching is a question answered by pairing every category with an option.
type Matching struct {
	Prompt     string
	Categories []string
	Options    []string

	// Answer maps each category label to the index of its option in Options.
	Answer map[string]int

	Explanation string
}

// NewMultipleChoice wraps mc in a Question.
func NewMultipleChoice(mc MultipleChoice) Question {
	return Question{Kind: KindMultipleChoice, MultipleChoice: &mc}
}

// NewMatching wraps m in a Question.
func NewMatching(m Matching) Question {
	return Question{Kind: KindMatching, Matching: &m}
}

// Prompt returns the question text regardless of variant.
func (q Question) Prompt() string {
	switch q.Kind {
	case KindMultipleChoice:
		if q.MultipleChoice != nil {
			return q.MultipleChoice.Prompt
		}
	case KindMatching:
		if q.Matching != nil {
			return q.Matching.Prompt
		}
	}
	return ""
}

// Explanation returns the text shown after a wrong answer.
func (q Question) Explanation() string {
	switch q.Kind {
	case KindMultipleChoice:
		if q.MultipleChoice != nil {
			return q.MultipleChoice.Explanation
		}
	case KindMatching:
		if q.Matching != nil {
			return q.Matching.Explanation
		}
	}
	return ""
}

// CorrectIndices returns the 0-based indices of the correct options, in order.
func (mc *MultipleChoice) CorrectIndices() []int {
	var idx []int
	for i, o := range mc.Options {
		if o.Correct {
			idx = append(idx, i)
		}
	}
	return idx
}
