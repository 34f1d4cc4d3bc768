package parse

import (
	"testing"

	"github.com/dgallion1/examgest/internal/exam"
)

func TestParse_MCQStarredAnswer(t *testing.T) {
	text := "Câu 1. What is 2+2?\n" +
		"A. 3\n" +
		"B. 4\n" +
		"*C. 5\n" +
		"D. 6\n" +
		"Lời giải\n" +
		"Because of arithmetic.\n"

	questions, _ := Parse(text)
	if len(questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(questions))
	}
	q := questions[0]
	if q.Type != exam.TypeMCQ {
		t.Fatalf("type: got %q", q.Type)
	}
	if q.Number != 1 {
		t.Errorf("number: got %d", q.Number)
	}
	if q.Stem != "What is 2+2?" {
		t.Errorf("stem: got %q", q.Stem)
	}
	wantChoices := map[string]string{"A": "3", "B": "4", "C": "5", "D": "6"}
	for l, want := range wantChoices {
		if q.Choices[l] != want {
			t.Errorf("choice %s: got %q, want %q", l, q.Choices[l], want)
		}
	}
	if q.Answer != "C" {
		t.Errorf("answer: got %q, want C", q.Answer)
	}
	if q.Solution != "Because of arithmetic." {
		t.Errorf("solution: got %q", q.Solution)
	}
}

func TestParse_MCQUnderlinedAnswer(t *testing.T) {
	text := "Câu 1. Pick one.\n" +
		"A. first\n" +
		"[u]B[/u]. second\n" +
		"C. third\n" +
		"D. fourth\n"

	questions, _ := Parse(text)
	if len(questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(questions))
	}
	q := questions[0]
	if q.Type != exam.TypeMCQ {
		t.Fatalf("type: got %q", q.Type)
	}
	if q.Answer != "B" {
		t.Errorf("answer: got %q, want B", q.Answer)
	}
	if q.Choices["B"] != "second" {
		t.Errorf("choice B: got %q", q.Choices["B"])
	}
}

func TestParse_MCQStarBeatsUnderline(t *testing.T) {
	text := "Câu 1. Pick one.\n" +
		"A. first\n" +
		"[u]B[/u]. second\n" +
		"*C. third\n" +
		"D. fourth\n"

	questions, _ := Parse(text)
	if questions[0].Answer != "C" {
		t.Errorf("answer: got %q, want starred C", questions[0].Answer)
	}
}

func TestParse_MCQUnderlinedStemWordIsNotAnAnswer(t *testing.T) {
	// Underline emphasis on an ordinary word must not be mistaken for a
	// marked choice letter, even when the word starts with A-D.
	text := "Câu 1. [u]Determine[/u] the value.\n" +
		"A. 1\n" +
		"B. 2\n" +
		"C. 3\n" +
		"D. 4\n"

	questions, _ := Parse(text)
	q := questions[0]
	if q.Type != exam.TypeMCQ {
		t.Fatalf("type: got %q", q.Type)
	}
	if q.Answer != "" {
		t.Errorf("answer: got %q, want empty (no marked choice)", q.Answer)
	}
}

func TestParse_MCQUnderlineSpansWholeChoice(t *testing.T) {
	text := "Câu 1. Pick one.\n" +
		"A. first\n" +
		"[u]B. second[/u]\n" +
		"C. third\n" +
		"D. fourth\n"

	questions, _ := Parse(text)
	if questions[0].Answer != "B" {
		t.Errorf("answer: got %q, want B", questions[0].Answer)
	}
}

func TestParse_MCQNoAnswerKey(t *testing.T) {
	text := "Câu 1. Pick one.\nA. first\nB. second\n"
	questions, _ := Parse(text)
	if questions[0].Answer != "" {
		t.Errorf("answer: got %q, want empty", questions[0].Answer)
	}
}

func TestParse_TrueFalse(t *testing.T) {
	text := "Câu 2. Consider the function f.\n" +
		"a) f is continuous\n" +
		"[u]b[/u]) f is even\n" +
		"c) f is bounded\n" +
		"[u]d)[/u] f is periodic\n"

	questions, _ := Parse(text)
	if len(questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(questions))
	}
	q := questions[0]
	if q.Type != exam.TypeTrueFalse {
		t.Fatalf("type: got %q", q.Type)
	}
	if q.Stem != "Consider the function f." {
		t.Errorf("stem: got %q", q.Stem)
	}
	if q.Statements["a"] != "f is continuous" || q.Statements["d"] != "f is periodic" {
		t.Errorf("statements: got %+v", q.Statements)
	}
	for _, l := range []string{"a", "c"} {
		if q.Truth[l] != nil {
			t.Errorf("truth[%s]: expected unset, got %v", l, *q.Truth[l])
		}
	}
	for _, l := range []string{"b", "d"} {
		if q.Truth[l] == nil || !*q.Truth[l] {
			t.Errorf("truth[%s]: expected true", l)
		}
	}
}

func TestParse_ShortAnswerFallback(t *testing.T) {
	text := "Câu 3. Compute the limit of 1/n.\n" +
		"Lời giải\n" +
		"It is zero.\n" +
		"Lời giải chi tiết\n" +
		"Squeeze it between 0 and 1/n.\n"

	questions, _ := Parse(text)
	q := questions[0]
	if q.Type != exam.TypeShortAnswer {
		t.Fatalf("type: got %q", q.Type)
	}
	if q.Stem != "Compute the limit of 1/n." {
		t.Errorf("stem: got %q", q.Stem)
	}
	if q.Solution != "It is zero." {
		t.Errorf("solution: got %q", q.Solution)
	}
	if q.Detail != "Squeeze it between 0 and 1/n." {
		t.Errorf("detail: got %q", q.Detail)
	}
}

func TestParse_SingleMarkerDoesNotClassify(t *testing.T) {
	// One stray "A. " is not enough evidence for a choice list.
	text := "Câu 4. Explain why A. Smith was right.\n"
	questions, _ := Parse(text)
	if questions[0].Type != exam.TypeShortAnswer {
		t.Errorf("type: got %q, want shortanswer", questions[0].Type)
	}
}

func TestParse_AnchorColonForm(t *testing.T) {
	text := "Câu 12: State the theorem.\n"
	questions, _ := Parse(text)
	if len(questions) != 1 || questions[0].Number != 12 {
		t.Fatalf("got %+v", questions)
	}
}

func TestParse_PlaceholdersKeptInStem(t *testing.T) {
	text := "Câu 1. Evaluate [!m:$m1$] using [!img:$i1$].\nA. 1\nB. 2\n"
	questions, _ := Parse(text)
	if got := questions[0].Stem; got != "Evaluate [!m:$m1$] using [!img:$i1$]." {
		t.Errorf("stem: got %q", got)
	}
}

func TestSplitSolution_NoMarkers(t *testing.T) {
	main, sol, det := splitSolution("just a stem")
	if main != "just a stem" || sol != "" || det != "" {
		t.Errorf("got %q, %q, %q", main, sol, det)
	}
}
