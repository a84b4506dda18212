package sentence

import "fmt"

// Field names an annotation field of an Example.
type Field string

const (
	FieldTokens   Field = "tokens"
	FieldHead     Field = "head"
	FieldTail     Field = "tail"
	FieldNer      Field = "ner"
	FieldPos      Field = "pos"
	FieldDep      Field = "dep"
	FieldDepHead  Field = "dep_head"
	FieldHeadType Field = "head_type"
	FieldTailType Field = "tail_type"
)

// DataFormatError reports an example whose fields are absent or disagree in
// length with its tokens.
type DataFormatError struct {
	Id     string
	Field  Field
	Reason string
}

func (e *DataFormatError) Error() string {
	id := e.Id
	if id == "" {
		id = "None"
	}

	return fmt.Sprintf("example %s: field %s: %s", id, e.Field, e.Reason)
}
