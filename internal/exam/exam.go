// Package exam defines the structured exam model produced by a document
// conversion: graded questions grouped into titled sections, plus the
// resolved formula and image maps.
//
// Known limitation: true/false statements carry a two-state answer. A
// statement is either underlined in the source document (true) or not
// marked at all (unset). The source format has no way to mark a statement
// explicitly false, so neither does this model.
package exam

// QuestionType classifies a parsed question block.
type QuestionType string

const (
	TypeMCQ         QuestionType = "mcq"
	TypeTrueFalse   QuestionType = "truefalse"
	TypeShortAnswer QuestionType = "shortanswer"
)

// Question is one graded exam item. Only the fields for its Type are
// populated: Choices/Answer for MCQ, Statements/Truth for true/false.
type Question struct {
	Number int          `json:"number"`
	Type   QuestionType `json:"type"`
	Stem   string       `json:"stem"`

	// MCQ: letter ("A".."D") to choice text; Answer is the correct letter
	// or "" when no starred or underlined marker was found.
	Choices map[string]string `json:"choices,omitempty"`
	Answer  string            `json:"answer,omitempty"`

	// True/false: letter ("a".."d") to statement text; Truth maps a letter
	// to true when its marker was underlined, nil when unset.
	Statements map[string]string `json:"statements,omitempty"`
	Truth      map[string]*bool  `json:"truth,omitempty"`

	Solution string `json:"solution,omitempty"`
	Detail   string `json:"detail,omitempty"`

	// Back-reference to the enclosing section, filled in after sections
	// are computed. SectionOrder is nil for questions that appear before
	// the first section marker.
	SectionOrder *int   `json:"section_order"`
	SectionTitle string `json:"section_title,omitempty"`

	// Offset is the character offset of the question anchor in the
	// extracted text.
	Offset int `json:"-"`
}

// Section is a titled grouping of consecutive questions.
type Section struct {
	Order int    `json:"order"` // 1-based document position
	ID    string `json:"id"`    // identifier from the section marker, e.g. "I"
	Title string `json:"title"`

	// Character range in the extracted text, closed-open.
	StartOffset int `json:"start_offset"`
	EndOffset   int `json:"end_offset"`

	// Half-open index range into the question sequence.
	QuestionStart int `json:"question_start"`
	QuestionEnd   int `json:"question_end"`
}

// BlockKind discriminates entries of the merged block sequence.
type BlockKind string

const (
	BlockSection  BlockKind = "section"
	BlockQuestion BlockKind = "question"
)

// Block is one entry of the linear render sequence: either a section
// header or a question, in original document order.
type Block struct {
	Kind     BlockKind `json:"kind"`
	Section  *Section  `json:"section,omitempty"`
	Question *Question `json:"question,omitempty"`
}

// Debug summarizes a conversion for troubleshooting.
type Debug struct {
	MCQCount         int `json:"mcq_count"`
	TrueFalseCount   int `json:"truefalse_count"`
	ShortAnswerCount int `json:"shortanswer_count"`
	Concurrency      int `json:"concurrency"`
}

// Result is the full conversion payload returned to the client.
type Result struct {
	Total     int               `json:"total"`
	Sections  []Section         `json:"sections"`
	Blocks    []Block           `json:"blocks"`
	Questions []Question        `json:"questions"`
	MCQ       []Question        `json:"mcq"` // legacy flattened MCQ-only list
	Latex     map[string]string `json:"latex"`
	Images    map[string]string `json:"images"`
	Text      string            `json:"text"`
	Debug     Debug             `json:"debug"`
}
