package probe

import (
	"fmt"
	"strconv"

	"github.com/revelaction/reval/deptree"
	sent "github.com/revelaction/reval/sentence"
)

// MaxEntityCount is the class of every entity count of five or more.
const MaxEntityCount = 5

// DefaultRoles is the grammatical role vocabulary. A role's class id is its
// 1-based position, any other relation label gets class 0.
var DefaultRoles = []string{"nsubj", "dobj", "iobj", "nsubjpass"}

// Task assigns a probing label to an example. The set of tasks is closed:
// one implementation per Kind, each carrying its own configuration.
type Task interface {
	Kind() Kind

	// Name is the dataset name of the task, used for output file names.
	Name() string

	// Label returns the label of ex. ok is false if the example does not
	// belong in the dataset of the task.
	Label(ex *sent.Example) (label string, ok bool, err error)

	validate() error
}

// Options is the configuration accepted by NewTask. Fields that do not
// apply to a kind are ignored; empty fields take the kind's defaults.
type Options struct {
	Buckets   Buckets
	Argument  Argument
	Position  Position
	NerTag    string
	KeepTags  []string
	KeepTypes []string
	Roles     []string
	Prune     int
}

// NewTask returns the Task of kind configured by opts.
func NewTask(kind Kind, opts Options) (Task, error) {
	var t Task
	switch kind {
	case SentenceLength:
		t = SentenceLengthTask{Buckets: opts.Buckets.Or(DefaultSentenceLengthBuckets)}
	case EntityDistance:
		t = EntityDistanceTask{Buckets: opts.Buckets.Or(DefaultEntityDistanceBuckets)}
	case ArgumentOrder:
		t = ArgumentOrderTask{}
	case EntityExistsBetween:
		t = EntityExistsBetweenTask{}
	case EntityTypeCountBetween:
		tag := opts.NerTag
		if tag == "" {
			tag = "ORGANIZATION"
		}
		t = EntityTypeCountBetweenTask{NerTag: tag, Buckets: opts.Buckets}
	case PosTagArgumentPosition:
		t = &PosTagTask{Argument: opts.Argument, Position: opts.Position, KeepTags: opts.KeepTags}
	case ArgumentType:
		t = &ArgumentTypeTask{Argument: opts.Argument, KeepTypes: opts.KeepTypes}
	case TreeDepth:
		t = TreeDepthTask{Buckets: opts.Buckets.Or(DefaultTreeDepthBuckets)}
	case SDPTreeDepth:
		t = SDPTreeDepthTask{Buckets: opts.Buckets.Or(DefaultSDPTreeDepthBuckets), Prune: opts.Prune}
	case ArgumentGrammaticalRole:
		roles := opts.Roles
		if len(roles) == 0 {
			roles = DefaultRoles
		}
		t = GrammaticalRoleTask{Argument: opts.Argument, Roles: roles}
	default:
		return nil, &ConfigurationError{Field: "task", Value: strconv.Itoa(int(kind)), Reason: "not a valid probing task"}
	}

	if err := t.validate(); err != nil {
		return nil, err
	}

	return t, nil
}

func argumentSpan(ex *sent.Example, a Argument) sent.Span {
	if a == Tail {
		return ex.Tail
	}
	return ex.Head
}

func bucketLabel(bs Buckets, v int) (string, bool) {
	idx, ok := bs.Index(v)
	if !ok {
		return "", false
	}
	return strconv.Itoa(idx), true
}

// between returns the bounds (exclusive) of the tokens strictly between
// both arguments. lo >= hi if the arguments touch or overlap.
func between(ex *sent.Example) (lo, hi int) {
	lo = min(ex.Head.End, ex.Tail.End) + 1
	hi = max(ex.Head.Start, ex.Tail.Start)
	return lo, hi
}

type SentenceLengthTask struct {
	Buckets Buckets
}

func (t SentenceLengthTask) Kind() Kind      { return SentenceLength }
func (t SentenceLengthTask) Name() string    { return SentenceLength.String() }
func (t SentenceLengthTask) validate() error { return t.Buckets.Validate() }

func (t SentenceLengthTask) Label(ex *sent.Example) (string, bool, error) {
	l, ok := bucketLabel(t.Buckets, ex.Len())
	return l, ok, nil
}

type EntityDistanceTask struct {
	Buckets Buckets
}

func (t EntityDistanceTask) Kind() Kind      { return EntityDistance }
func (t EntityDistanceTask) Name() string    { return EntityDistance.String() }
func (t EntityDistanceTask) validate() error { return t.Buckets.Validate() }

func (t EntityDistanceTask) Label(ex *sent.Example) (string, bool, error) {
	l, ok := bucketLabel(t.Buckets, Distance(ex))
	return l, ok, nil
}

// Distance is the difference between the start of the later argument and
// the end of the earlier one.
func Distance(ex *sent.Example) int {
	if ex.Tail.Start > ex.Head.End {
		return ex.Tail.Start - ex.Head.End
	}
	return ex.Head.Start - ex.Tail.End
}

type ArgumentOrderTask struct{}

func (t ArgumentOrderTask) Kind() Kind      { return ArgumentOrder }
func (t ArgumentOrderTask) Name() string    { return ArgumentOrder.String() }
func (t ArgumentOrderTask) validate() error { return nil }

func (t ArgumentOrderTask) Label(ex *sent.Example) (string, bool, error) {
	if ex.Tail.Start < ex.Head.Start {
		return "1", true, nil
	}
	return "0", true, nil
}

type EntityExistsBetweenTask struct{}

func (t EntityExistsBetweenTask) Kind() Kind      { return EntityExistsBetween }
func (t EntityExistsBetweenTask) Name() string    { return EntityExistsBetween.String() }
func (t EntityExistsBetweenTask) validate() error { return nil }

func (t EntityExistsBetweenTask) Label(ex *sent.Example) (string, bool, error) {
	if err := ex.Require(sent.FieldNer); err != nil {
		return "", false, err
	}

	lo, hi := between(ex)
	for i := lo; i < hi; i++ {
		if ex.Ner[i] != "O" {
			return "1", true, nil
		}
	}

	return "0", true, nil
}

// EntityTypeCountBetweenTask counts the tokens tagged NerTag between both
// arguments. Counts of MaxEntityCount or more share one class. With
// Buckets set the clamped count is bucketed.
type EntityTypeCountBetweenTask struct {
	NerTag  string
	Buckets Buckets
}

func (t EntityTypeCountBetweenTask) Kind() Kind { return EntityTypeCountBetween }

func (t EntityTypeCountBetweenTask) Name() string {
	return fmt.Sprintf("entity_type_count_%s_between_head_tail", t.NerTag)
}

func (t EntityTypeCountBetweenTask) validate() error { return t.Buckets.Validate() }

func (t EntityTypeCountBetweenTask) Label(ex *sent.Example) (string, bool, error) {
	if err := ex.Require(sent.FieldNer); err != nil {
		return "", false, err
	}

	count := 0
	lo, hi := between(ex)
	for i := lo; i < hi; i++ {
		if ex.Ner[i] == t.NerTag {
			count++
		}
	}

	count = min(count, MaxEntityCount)

	if len(t.Buckets) > 0 {
		l, ok := bucketLabel(t.Buckets, count)
		return l, ok, nil
	}

	return strconv.Itoa(count), true, nil
}

// PosTagTask labels an example with the vocabulary id of the POS tag next
// to one of its arguments. Examples whose argument touches the sentence
// boundary on that side are discarded, as are tags not in KeepTags when
// KeepTags is set.
type PosTagTask struct {
	Argument Argument
	Position Position
	KeepTags []string

	vocab *Vocabulary
}

func (t *PosTagTask) Kind() Kind { return PosTagArgumentPosition }

func (t *PosTagTask) Name() string {
	return fmt.Sprintf("pos_tag_%s_%s", t.Argument, t.Position)
}

func (t *PosTagTask) validate() error { return nil }

// Vocabulary returns the POS tag vocabulary, nil before Prepare.
func (t *PosTagTask) Vocabulary() *Vocabulary { return t.vocab }

func (t *PosTagTask) prepare(splits Splits) Task {
	v := NewVocabulary()
	splits.each(func(ex *sent.Example) {
		for _, p := range ex.Pos {
			v.Add(p)
		}
	})

	prepared := *t
	prepared.vocab = v
	return &prepared
}

func (t *PosTagTask) Label(ex *sent.Example) (string, bool, error) {
	if t.vocab == nil {
		return "", false, &ConfigurationError{Field: "task", Value: t.Name(), Reason: "vocabulary not prepared"}
	}

	if err := ex.Require(sent.FieldPos); err != nil {
		return "", false, err
	}

	span := argumentSpan(ex, t.Argument)

	var tag string
	switch t.Position {
	case Left:
		if span.Start == 0 {
			return "", false, nil
		}
		tag = ex.Pos[span.Start-1]
	case Right:
		if span.End == len(ex.Pos)-1 {
			return "", false, nil
		}
		tag = ex.Pos[span.End+1]
	}

	if len(t.KeepTags) > 0 && !contains(t.KeepTags, tag) {
		return "", false, nil
	}

	id, ok := t.vocab.Index(tag)
	if !ok {
		return "", false, nil
	}

	return strconv.Itoa(id), true, nil
}

// ArgumentTypeTask labels an example with the vocabulary id of the entity
// type of one of its arguments.
type ArgumentTypeTask struct {
	Argument  Argument
	KeepTypes []string

	vocab *Vocabulary
}

func (t *ArgumentTypeTask) Kind() Kind { return ArgumentType }

func (t *ArgumentTypeTask) Name() string {
	return fmt.Sprintf("argument_type_%s", t.Argument)
}

func (t *ArgumentTypeTask) validate() error { return nil }

// Vocabulary returns the argument type vocabulary, nil before Prepare.
func (t *ArgumentTypeTask) Vocabulary() *Vocabulary { return t.vocab }

func (t *ArgumentTypeTask) argType(ex *sent.Example) string {
	if t.Argument == Tail {
		return ex.TailType
	}
	return ex.HeadType
}

func (t *ArgumentTypeTask) prepare(splits Splits) Task {
	v := NewVocabulary()
	splits.each(func(ex *sent.Example) {
		v.Add(t.argType(ex))
	})

	prepared := *t
	prepared.vocab = v
	return &prepared
}

func (t *ArgumentTypeTask) Label(ex *sent.Example) (string, bool, error) {
	if t.vocab == nil {
		return "", false, &ConfigurationError{Field: "task", Value: t.Name(), Reason: "vocabulary not prepared"}
	}

	field := sent.FieldHeadType
	if t.Argument == Tail {
		field = sent.FieldTailType
	}

	if err := ex.Require(field); err != nil {
		return "", false, err
	}

	typ := t.argType(ex)
	if len(t.KeepTypes) > 0 && !contains(t.KeepTypes, typ) {
		return "", false, nil
	}

	id, ok := t.vocab.Index(typ)
	if !ok {
		return "", false, nil
	}

	return strconv.Itoa(id), true, nil
}

type TreeDepthTask struct {
	Buckets Buckets
}

func (t TreeDepthTask) Kind() Kind      { return TreeDepth }
func (t TreeDepthTask) Name() string    { return TreeDepth.String() }
func (t TreeDepthTask) validate() error { return t.Buckets.Validate() }

func (t TreeDepthTask) Label(ex *sent.Example) (string, bool, error) {
	tree, err := deptree.FromExample(ex)
	if err != nil {
		return "", false, err
	}

	l, ok := bucketLabel(t.Buckets, tree.Depth())
	return l, ok, nil
}

// SDPTreeDepthTask buckets the depth of the tree pruned to the shortest
// dependency path between the arguments, extended by Prune hops.
type SDPTreeDepthTask struct {
	Buckets Buckets
	Prune   int
}

func (t SDPTreeDepthTask) Kind() Kind      { return SDPTreeDepth }
func (t SDPTreeDepthTask) Name() string    { return SDPTreeDepth.String() }
func (t SDPTreeDepthTask) validate() error { return t.Buckets.Validate() }

func (t SDPTreeDepthTask) Label(ex *sent.Example) (string, bool, error) {
	tree, err := deptree.FromExample(ex)
	if err != nil {
		return "", false, err
	}

	sdp, err := deptree.Prune(tree, ex.Head, ex.Tail, t.Prune)
	if err != nil {
		return "", false, err
	}

	l, ok := bucketLabel(t.Buckets, sdp.Depth())
	return l, ok, nil
}

// GrammaticalRoleTask labels an argument with the relation label that
// attaches it, as a whole, to the rest of the sentence. Arguments that are
// not a constituent are discarded.
type GrammaticalRoleTask struct {
	Argument Argument
	Roles    []string
}

func (t GrammaticalRoleTask) Kind() Kind { return ArgumentGrammaticalRole }

func (t GrammaticalRoleTask) Name() string {
	return fmt.Sprintf("argument_%s_grammatical_role", t.Argument)
}

func (t GrammaticalRoleTask) validate() error { return nil }

func (t GrammaticalRoleTask) Label(ex *sent.Example) (string, bool, error) {
	tree, err := deptree.FromExample(ex)
	if err != nil {
		return "", false, err
	}

	c, ok := tree.CommonHead(argumentSpan(ex, t.Argument))
	if !ok {
		return "", false, nil
	}

	return strconv.Itoa(RoleId(t.Roles, c.Rel)), true, nil
}

// RoleId returns the 1-based position of rel in roles, 0 if absent.
func RoleId(roles []string, rel string) int {
	for i, r := range roles {
		if r == rel {
			return i + 1
		}
	}
	return 0
}

func contains(list []string, s string) bool {
	for _, l := range list {
		if l == s {
			return true
		}
	}
	return false
}
