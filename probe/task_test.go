package probe

import (
	"testing"

	"github.com/revelaction/reval/deptree"
	sent "github.com/revelaction/reval/sentence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func johnSawMary() *sent.Example {
	return &sent.Example{
		Id:       "jsm",
		Tokens:   []string{"John", "saw", "Mary"},
		Label:    "per:knows",
		Head:     sent.Span{Start: 0, End: 0},
		Tail:     sent.Span{Start: 2, End: 2},
		Ner:      []string{"PERSON", "O", "PERSON"},
		Pos:      []string{"NNP", "VBD", "NNP"},
		Dep:      []string{"nsubj", "root", "dobj"},
		DepHead:  []int{2, 0, 2},
		HeadType: "PERSON",
		TailType: "PERSON",
	}
}

// twelve tokens, head "Acme Corp" at 0-1, tail "Paris" at 9
func acme() *sent.Example {
	return &sent.Example{
		Id:       "acme",
		Tokens:   []string{"Acme", "Corp", ",", "a", "firm", "of", "IBM", ",", "left", "Paris", "in", "May"},
		Label:    "org:left",
		Head:     sent.Span{Start: 0, End: 1},
		Tail:     sent.Span{Start: 9, End: 9},
		Ner:      []string{"ORGANIZATION", "ORGANIZATION", "O", "O", "O", "O", "ORGANIZATION", "O", "O", "LOCATION", "O", "DATE"},
		Pos:      []string{"NNP", "NNP", ",", "DT", "NN", "IN", "NNP", ",", "VBD", "NNP", "IN", "NNP"},
		Dep:      []string{"compound", "nsubj", "punct", "det", "appos", "case", "nmod", "punct", "root", "dobj", "case", "obl"},
		DepHead:  []int{2, 9, 2, 5, 2, 7, 5, 2, 0, 9, 12, 9},
		HeadType: "ORGANIZATION",
		TailType: "CITY",
	}
}

func newTask(t *testing.T, kind Kind, opts Options) Task {
	t.Helper()
	task, err := NewTask(kind, opts)
	require.NoError(t, err)
	return task
}

func label(t *testing.T, task Task, ex *sent.Example) (string, bool) {
	t.Helper()
	l, ok, err := task.Label(ex)
	require.NoError(t, err)
	return l, ok
}

func TestSentenceLength(t *testing.T) {
	task := newTask(t, SentenceLength, Options{})

	l, ok := label(t, task, acme())
	assert.True(t, ok)
	assert.Equal(t, "0", l, "12 tokens fall in the first default bucket")

	_, ok = label(t, task, johnSawMary())
	assert.False(t, ok, "3 tokens fall in no default bucket")

	task = newTask(t, SentenceLength, Options{Buckets: Buckets{{1, 2}, {3, 3}}})
	l, ok = label(t, task, johnSawMary())
	assert.True(t, ok)
	assert.Equal(t, "1", l)
}

func TestEntityDistance(t *testing.T) {
	ex := acme()
	assert.Equal(t, 8, Distance(ex))

	ex.Head, ex.Tail = ex.Tail, ex.Head
	assert.Equal(t, 8, Distance(ex), "distance does not depend on argument order")

	l, ok := label(t, newTask(t, EntityDistance, Options{}), ex)
	assert.True(t, ok)
	assert.Equal(t, "5", l, "bucket 7-8")
}

func TestArgumentOrder(t *testing.T) {
	task := newTask(t, ArgumentOrder, Options{})

	ex := johnSawMary()
	l, _ := label(t, task, ex)
	assert.Equal(t, "0", l)

	ex.Head, ex.Tail = ex.Tail, ex.Head
	l, _ = label(t, task, ex)
	assert.Equal(t, "1", l)
}

func TestEntityExistsBetween(t *testing.T) {
	task := newTask(t, EntityExistsBetween, Options{})

	l, ok := label(t, task, acme())
	assert.True(t, ok)
	assert.Equal(t, "1", l, "IBM lies between the arguments")

	l, _ = label(t, task, johnSawMary())
	assert.Equal(t, "0", l)

	ex := johnSawMary()
	ex.Ner = nil
	_, _, err := task.Label(ex)
	var dfe *sent.DataFormatError
	require.ErrorAs(t, err, &dfe)
	assert.Equal(t, sent.FieldNer, dfe.Field)
}

func TestEntityTypeCountBetween(t *testing.T) {
	task := newTask(t, EntityTypeCountBetween, Options{})
	assert.Equal(t, "entity_type_count_ORGANIZATION_between_head_tail", task.Name())

	l, ok := label(t, task, acme())
	assert.True(t, ok)
	assert.Equal(t, "1", l)

	ex := &sent.Example{
		Tokens: make([]string, 9),
		Head:   sent.Span{Start: 0, End: 0},
		Tail:   sent.Span{Start: 8, End: 8},
		Ner:    []string{"O", "PERSON", "PERSON", "PERSON", "PERSON", "PERSON", "PERSON", "PERSON", "O"},
	}

	l, _ = label(t, newTask(t, EntityTypeCountBetween, Options{NerTag: "PERSON"}), ex)
	assert.Equal(t, "5", l, "counts are clamped")

	bucketed := newTask(t, EntityTypeCountBetween, Options{NerTag: "PERSON", Buckets: Buckets{{0, 1}, {2, 4}}})
	_, ok = label(t, bucketed, ex)
	assert.False(t, ok, "clamped count outside every bucket")
}

func TestPosTagArgumentPosition(t *testing.T) {
	task := newTask(t, PosTagArgumentPosition, Options{Argument: Tail, Position: Left})
	assert.Equal(t, "pos_tag_tail_left", task.Name())

	_, _, err := task.Label(johnSawMary())
	var ce *ConfigurationError
	require.ErrorAs(t, err, &ce, "vocabulary must be prepared")

	task = Prepare(task, Splits{Train: []*sent.Example{johnSawMary()}, Test: []*sent.Example{acme()}})
	vocab := task.(*PosTagTask).Vocabulary()
	assert.Equal(t, []string{"NNP", "VBD", ",", "DT", "NN", "IN"}, vocab.Terms())

	l, ok := label(t, task, johnSawMary())
	assert.True(t, ok)
	assert.Equal(t, "1", l, "VBD")

	right := Prepare(newTask(t, PosTagArgumentPosition, Options{Argument: Tail, Position: Right}), Splits{Train: []*sent.Example{johnSawMary()}})
	_, ok = label(t, right, johnSawMary())
	assert.False(t, ok, "tail ends the sentence")

	left := Prepare(newTask(t, PosTagArgumentPosition, Options{Argument: Head, Position: Left}), Splits{Train: []*sent.Example{johnSawMary()}})
	_, ok = label(t, left, johnSawMary())
	assert.False(t, ok, "head starts the sentence")

	kept := Prepare(newTask(t, PosTagArgumentPosition, Options{Argument: Tail, Position: Left, KeepTags: []string{"NN"}}), Splits{Train: []*sent.Example{johnSawMary()}})
	_, ok = label(t, kept, johnSawMary())
	assert.False(t, ok, "VBD is filtered out")
}

func TestArgumentType(t *testing.T) {
	task := newTask(t, ArgumentType, Options{Argument: Tail})
	assert.Equal(t, "argument_type_tail", task.Name())

	task = Prepare(task, Splits{Train: []*sent.Example{johnSawMary()}, Validation: []*sent.Example{acme()}})
	assert.Equal(t, []string{"PERSON", "CITY"}, task.(*ArgumentTypeTask).Vocabulary().Terms())

	l, ok := label(t, task, acme())
	assert.True(t, ok)
	assert.Equal(t, "1", l)

	filtered := Prepare(newTask(t, ArgumentType, Options{Argument: Tail, KeepTypes: []string{"PERSON"}}), Splits{Train: []*sent.Example{acme()}})
	_, ok = label(t, filtered, acme())
	assert.False(t, ok)
}

func TestTreeDepth(t *testing.T) {
	task := newTask(t, TreeDepth, Options{Buckets: Buckets{{0, 0}, {1, 1}, {2, 5}}})

	l, ok := label(t, task, johnSawMary())
	assert.True(t, ok)
	assert.Equal(t, "1", l)

	// left(8) -> Corp(1) -> firm(4) -> IBM(6) -> of(5)
	l, _ = label(t, task, acme())
	assert.Equal(t, "2", l)
}

func TestSDPTreeDepth(t *testing.T) {
	task := newTask(t, SDPTreeDepth, Options{})

	l, ok := label(t, task, johnSawMary())
	assert.True(t, ok)
	assert.Equal(t, "0", l, "depth 1")

	// left(8) -> Corp(1) -> Acme(0), left(8) -> Paris(9)
	l, _ = label(t, task, acme())
	assert.Equal(t, "1", l, "depth 2")

	ex := johnSawMary()
	ex.DepHead = []int{2, 0, 0}
	_, _, err := task.Label(ex)
	var tce *deptree.TreeConstructionError
	require.ErrorAs(t, err, &tce)
}

func TestArgumentGrammaticalRole(t *testing.T) {
	head := newTask(t, ArgumentGrammaticalRole, Options{Argument: Head})
	assert.Equal(t, "argument_head_grammatical_role", head.Name())

	l, ok := label(t, head, johnSawMary())
	assert.True(t, ok)
	assert.Equal(t, "1", l, "nsubj")

	l, _ = label(t, newTask(t, ArgumentGrammaticalRole, Options{Argument: Tail}), johnSawMary())
	assert.Equal(t, "2", l, "dobj")

	l, _ = label(t, newTask(t, ArgumentGrammaticalRole, Options{Argument: Tail, Roles: []string{"nsubj"}}), johnSawMary())
	assert.Equal(t, "0", l, "dobj is not a known role")

	// "a firm of IBM" hangs from Corp, ", left" from two governors
	ex := acme()
	ex.Head = sent.Span{Start: 3, End: 6}
	l, ok = label(t, head, ex)
	assert.True(t, ok)
	assert.Equal(t, "0", l, "appos")

	ex.Head = sent.Span{Start: 7, End: 8}
	_, ok = label(t, head, ex)
	assert.False(t, ok)
}

func TestRoleId(t *testing.T) {
	assert.Equal(t, 1, RoleId(DefaultRoles, "nsubj"))
	assert.Equal(t, 4, RoleId(DefaultRoles, "nsubjpass"))
	assert.Equal(t, 0, RoleId(DefaultRoles, "amod"))
	assert.Equal(t, 0, RoleId(nil, "nsubj"))
}

func TestNewTaskRejectsBadConfiguration(t *testing.T) {
	_, err := NewTask(Kind(42), Options{})
	var ce *ConfigurationError
	require.ErrorAs(t, err, &ce)

	_, err = NewTask(SentenceLength, Options{Buckets: Buckets{{5, 4}}})
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "buckets", ce.Field)
}

func TestTaskKinds(t *testing.T) {
	for _, k := range Kinds() {
		task := newTask(t, k, Options{})
		assert.Equal(t, k, task.Kind())
		assert.NotEmpty(t, task.Name())
	}
}
