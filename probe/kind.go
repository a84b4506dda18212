package probe

// Kind identifies a probing task.
type Kind int

const (
	SentenceLength Kind = iota
	EntityDistance
	ArgumentOrder
	EntityExistsBetween
	EntityTypeCountBetween
	PosTagArgumentPosition
	ArgumentType
	TreeDepth
	SDPTreeDepth
	ArgumentGrammaticalRole
)

var kindNames = []string{
	SentenceLength:          "sentence_length",
	EntityDistance:          "entity_distance",
	ArgumentOrder:           "argument_order",
	EntityExistsBetween:     "entity_exists_between_head_tail",
	EntityTypeCountBetween:  "entity_type_count_between_head_tail",
	PosTagArgumentPosition:  "pos_tag_argument_position",
	ArgumentType:            "argument_type",
	TreeDepth:               "tree_depth",
	SDPTreeDepth:            "sdp_tree_depth",
	ArgumentGrammaticalRole: "argument_grammatical_role",
}

var kindDescriptions = []string{
	SentenceLength:          "bucketed number of tokens of the sentence",
	EntityDistance:          "bucketed number of tokens between head and tail",
	ArgumentOrder:           "1 if the tail precedes the head",
	EntityExistsBetween:     "1 if a named entity lies between head and tail",
	EntityTypeCountBetween:  "number of entities of one NER type between head and tail",
	PosTagArgumentPosition:  "POS tag left or right of an argument",
	ArgumentType:            "entity type of an argument",
	TreeDepth:               "bucketed depth of the dependency tree",
	SDPTreeDepth:            "bucketed depth of the shortest dependency path tree",
	ArgumentGrammaticalRole: "grammatical role of an argument",
}

// Kinds returns all task kinds in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, len(kindNames))
	for i := range kindNames {
		kinds[i] = Kind(i)
	}
	return kinds
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

func (k Kind) Description() string {
	if k < 0 || int(k) >= len(kindDescriptions) {
		return ""
	}
	return kindDescriptions[k]
}

// ParseKind returns the Kind named name.
func ParseKind(name string) (Kind, error) {
	for i, n := range kindNames {
		if n == name {
			return Kind(i), nil
		}
	}
	return 0, &ConfigurationError{Field: "task", Value: name, Reason: "not a valid probing task"}
}

// Argument selects the head or the tail span of an example.
type Argument int

const (
	Head Argument = iota
	Tail
)

func (a Argument) String() string {
	if a == Tail {
		return "tail"
	}
	return "head"
}

func ParseArgument(s string) (Argument, error) {
	switch s {
	case "head":
		return Head, nil
	case "tail":
		return Tail, nil
	}
	return 0, &ConfigurationError{Field: "argument", Value: s, Reason: "must be head or tail"}
}

// Position selects the token left or right of an argument.
type Position int

const (
	Left Position = iota
	Right
)

func (p Position) String() string {
	if p == Right {
		return "right"
	}
	return "left"
}

func ParsePosition(s string) (Position, error) {
	switch s {
	case "left":
		return Left, nil
	case "right":
		return Right, nil
	}
	return 0, &ConfigurationError{Field: "position", Value: s, Reason: "must be left or right"}
}
