package parse

import "github.com/dgallion1/examgest/internal/exam"

// Assemble merges section headers and parsed questions into one linear
// sequence in original document order. A section header is emitted
// whenever a question's section differs from the previously emitted one;
// renderers iterate this to reproduce the source layout.
func Assemble(sections []exam.Section, questions []exam.Question) []exam.Block {
	blocks := make([]exam.Block, 0, len(questions)+len(sections))
	emitted := 0
	for i := range questions {
		q := &questions[i]
		if q.SectionOrder != nil && *q.SectionOrder != emitted {
			sec := sections[*q.SectionOrder-1]
			blocks = append(blocks, exam.Block{Kind: exam.BlockSection, Section: &sec})
			emitted = *q.SectionOrder
		}
		blocks = append(blocks, exam.Block{Kind: exam.BlockQuestion, Question: q})
	}
	return blocks
}
