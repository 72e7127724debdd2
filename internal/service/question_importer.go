package service

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"job_board_backend/internal/model"
	"job_board_backend/internal/util"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

const (
	columnQuestion = "Question"
	columnAnswer   = "Answer"
	columnMulti    = "E"
)

// optionColumns fixes the answer order of every drafted question.
var optionColumns = []string{"A", "B", "C", "D"}

var requiredColumns = []string{columnQuestion, "A", "B", "C", "D", columnAnswer}

var trueFalseTokens = map[string]bool{"TRUE": true, "FALSE": true, "YES": true, "NO": true}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ImportOptions carries the metadata stamped onto every imported question.
type ImportOptions struct {
	Category   string
	Difficulty model.QuestionDifficulty
	Tags       []string
	MaxRows    int
}

func (o ImportOptions) withDefaults() ImportOptions {
	if strings.TrimSpace(o.Category) == "" {
		o.Category = "General"
	}
	if o.Difficulty == "" {
		o.Difficulty = model.QuestionMedium
	}
	return o
}

// ImportError pins a failed import to a data row (1-based, header excluded)
// and column. Row is 0 when the whole sheet is rejected.
type ImportError struct {
	Row    int
	Column string
	Value  string
	Err    error
}

func (e *ImportError) Error() string {
	var b strings.Builder
	b.WriteString("import")
	if e.Row > 0 {
		fmt.Fprintf(&b, " row %d", e.Row)
	}
	if e.Column != "" {
		fmt.Fprintf(&b, " column %q", e.Column)
	}
	if e.Value != "" {
		fmt.Fprintf(&b, " value %q", e.Value)
	}
	b.WriteString(": ")
	b.WriteString(e.Err.Error())
	return b.String()
}

func (e *ImportError) Unwrap() error { return e.Err }

// sheetRow is one data row addressed by column name.
type sheetRow struct {
	num    int
	index  map[string]int
	record []string
}

func (r sheetRow) has(column string) bool {
	_, ok := r.index[column]
	return ok
}

func (r sheetRow) cell(column string) string {
	i, ok := r.index[column]
	if !ok || i >= len(r.record) {
		return ""
	}
	return strings.TrimSpace(r.record[i])
}

func (r sheetRow) fail(column, value string, err error) error {
	return &ImportError{Row: r.num, Column: column, Value: value, Err: err}
}

// ImportQuestions turns a CSV question sheet into question aggregates bound
// to assessmentID. The batch is all-or-nothing: the first bad row aborts it
// and nothing is returned. It performs no I/O beyond reading raw.
func ImportQuestions(raw []byte, assessmentID string, opts ImportOptions) ([]model.Question, error) {
	opts = opts.withDefaults()

	text, err := decodeSheet(raw)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(strings.NewReader(text))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, &ImportError{Err: fmt.Errorf("%w: no header row", util.ErrMalformedSheet)}
	}
	if err != nil {
		return nil, &ImportError{Err: fmt.Errorf("%w: %v", util.ErrMalformedSheet, err)}
	}

	index, err := indexHeader(header)
	if err != nil {
		return nil, err
	}

	questions := make([]model.Question, 0, 16)
	for num := 1; ; num++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &ImportError{Row: num, Err: fmt.Errorf("%w: %v", util.ErrMalformedSheet, err)}
		}
		if opts.MaxRows > 0 && num > opts.MaxRows {
			return nil, &ImportError{Row: num, Err: fmt.Errorf("%w: limit is %d", util.ErrTooManyRows, opts.MaxRows)}
		}
		if len(record) > len(header) {
			return nil, &ImportError{Row: num, Err: fmt.Errorf("%w: %d cells for %d columns", util.ErrMalformedSheet, len(record), len(header))}
		}

		q, err := buildQuestion(sheetRow{num: num, index: index, record: record}, assessmentID, opts)
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}

	if len(questions) == 0 {
		return nil, &ImportError{Err: fmt.Errorf("%w: no data rows", util.ErrMalformedSheet)}
	}
	return questions, nil
}

// decodeSheet strips a UTF-8 BOM and falls back to Windows-1252 for sheets
// exported by older spreadsheet tools.
func decodeSheet(raw []byte) (string, error) {
	raw = bytes.TrimPrefix(raw, utf8BOM)
	if len(bytes.TrimSpace(raw)) == 0 {
		return "", &ImportError{Err: fmt.Errorf("%w: empty file", util.ErrMalformedSheet)}
	}
	if utf8.Valid(raw) {
		return string(raw), nil
	}
	decoded, err := charmap.Windows1252.NewDecoder().Bytes(raw)
	if err != nil {
		return "", &ImportError{Err: fmt.Errorf("%w: unreadable encoding: %v", util.ErrMalformedSheet, err)}
	}
	return string(decoded), nil
}

func indexHeader(header []string) (map[string]int, error) {
	allowed := map[string]bool{columnMulti: true}
	for _, c := range requiredColumns {
		allowed[c] = true
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if !allowed[name] {
			return nil, &ImportError{Column: name, Err: util.ErrUnknownColumn}
		}
		if _, dup := index[name]; dup {
			return nil, &ImportError{Column: name, Err: fmt.Errorf("%w: duplicate column", util.ErrMalformedSheet)}
		}
		index[name] = i
	}

	for _, c := range requiredColumns {
		if _, ok := index[c]; !ok {
			return nil, &ImportError{Column: c, Err: util.ErrMissingColumn}
		}
	}
	return index, nil
}

// cleanAnswerKey keeps letters only, upper-cased: " a) " -> "A".
func cleanAnswerKey(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) {
			b.WriteRune(unicode.ToUpper(r))
		}
	}
	return b.String()
}

// cleanMultiKey drops whitespace and punctuation but keeps everything else,
// so stray digits in an "E" cell are reported instead of ignored.
func cleanMultiKey(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsSpace(r) || unicode.IsPunct(r) {
			continue
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}

func isOptionColumn(letter string) bool {
	for _, c := range optionColumns {
		if c == letter {
			return true
		}
	}
	return false
}

func buildQuestion(r sheetRow, assessmentID string, opts ImportOptions) (model.Question, error) {
	q := model.Question{
		AssessmentID: assessmentID,
		Title:        r.cell(columnQuestion),
		Category:     opts.Category,
		Difficulty:   opts.Difficulty,
		Tags:         append([]string(nil), opts.Tags...),
	}
	if q.Title == "" {
		return q, r.fail(columnQuestion, "", util.ErrMissingCell)
	}
	for _, c := range optionColumns[:2] {
		if r.cell(c) == "" {
			return q, r.fail(c, "", util.ErrMissingCell)
		}
	}

	key := cleanAnswerKey(r.cell(columnAnswer))
	if key == "" {
		return q, r.fail(columnAnswer, r.cell(columnAnswer), util.ErrMissingCell)
	}

	var err error
	switch {
	case (key == "A" || key == "B") && trueFalseTokens[strings.ToUpper(r.cell(key))]:
		q.QuestionType = model.TrueFalse
		q.Answers = optionAnswers(r, optionColumns[:2], map[string]bool{key: true})
	case key == columnMulti:
		q.QuestionType = model.MultipleChoice
		q.Answers, err = multipleChoiceAnswers(r)
	default:
		q.QuestionType = model.SingleChoice
		q.Answers, err = singleChoiceAnswers(r, key)
	}
	if err != nil {
		return q, err
	}

	if err := model.ValidateQuestion(&q); err != nil {
		return q, r.fail("", "", err)
	}
	return q, nil
}

func singleChoiceAnswers(r sheetRow, key string) ([]model.Answer, error) {
	if !isOptionColumn(key) {
		return nil, r.fail(columnAnswer, key, util.ErrInvalidAnswerKey)
	}
	if r.cell(key) == "" {
		return nil, r.fail(key, key, util.ErrUnknownOption)
	}
	return optionAnswers(r, optionColumns, map[string]bool{key: true}), nil
}

func multipleChoiceAnswers(r sheetRow) ([]model.Answer, error) {
	if !r.has(columnMulti) {
		return nil, r.fail(columnMulti, "", util.ErrMissingCell)
	}
	keys := cleanMultiKey(r.cell(columnMulti))
	if keys == "" {
		return nil, r.fail(columnMulti, "", util.ErrMissingCell)
	}

	selected := make(map[string]bool, len(keys))
	for _, ch := range keys {
		letter := string(ch)
		if !isOptionColumn(letter) {
			return nil, r.fail(columnMulti, letter, util.ErrInvalidOption)
		}
		if r.cell(letter) == "" {
			return nil, r.fail(columnMulti, letter, util.ErrUnknownOption)
		}
		selected[letter] = true
	}
	return optionAnswers(r, optionColumns, selected), nil
}

// optionAnswers walks columns in order, skipping blank optional cells.
func optionAnswers(r sheetRow, columns []string, correct map[string]bool) []model.Answer {
	answers := make([]model.Answer, 0, len(columns))
	for _, c := range columns {
		text := r.cell(c)
		if text == "" {
			continue
		}
		ok := correct[c]
		answers = append(answers, model.Answer{
			AnswerText:  text,
			IsCorrect:   ok,
			BooleanText: ok,
			Position:    len(answers),
		})
	}
	return answers
}

// IsImportError reports whether err came from sheet validation rather than infrastructure.
func IsImportError(err error) bool {
	var ie *ImportError
	return errors.As(err, &ie)
}
