package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/revelaction/reval/deptree"
	"github.com/revelaction/reval/probe"
	sent "github.com/revelaction/reval/sentence"
	"github.com/revelaction/reval/stat"
)

const indent = "  "

type Renderer struct {
	HasColor bool

	Out io.Writer

	head  *color.Color
	tail  *color.Color
	rel   *color.Color
	title *color.Color
}

func NewRenderer(out io.Writer, hasColor bool) *Renderer {
	r := &Renderer{
		HasColor: hasColor,
		Out:      out,
		head:     color.New(color.FgGreen, color.Bold),
		tail:     color.New(color.FgMagenta, color.Bold),
		rel:      color.New(color.FgYellow),
		title:    color.New(color.Bold),
	}

	for _, c := range []*color.Color{r.head, r.tail, r.rel, r.title} {
		if hasColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	return r
}

// token returns the text of token i of ex, highlighted if it belongs to
// one of the arguments.
func (r *Renderer) token(ex *sent.Example, i int) string {
	text := ex.Tokens[i]
	switch {
	case ex.Head.Contains(i):
		return r.head.Sprint(text)
	case ex.Tail.Contains(i):
		return r.tail.Sprint(text)
	}
	return text
}

// SentenceString returns the tokens of ex. Without color the head argument
// is enclosed in [] and the tail argument in <>.
func (r *Renderer) SentenceString(ex *sent.Example) string {
	var str strings.Builder
	for i := range ex.Tokens {
		if i > 0 {
			str.WriteString(" ")
		}

		if !r.HasColor {
			if i == ex.Head.Start {
				str.WriteString("[")
			}
			if i == ex.Tail.Start {
				str.WriteString("<")
			}
		}

		str.WriteString(r.token(ex, i))

		if !r.HasColor {
			if i == ex.Tail.End {
				str.WriteString(">")
			}
			if i == ex.Head.End {
				str.WriteString("]")
			}
		}
	}

	return str.String()
}

func (r *Renderer) Sentence(ex *sent.Example, prefix string) {
	fmt.Fprintf(r.Out, "%s%s\n", prefix, r.SentenceString(ex))
}

// TreeString renders t one node per line, root first, children in token
// order and indented below their parent. Each line holds the token index,
// its text and its relation label.
func (r *Renderer) TreeString(t *deptree.Tree, ex *sent.Example) string {
	if t.Len() == 0 {
		return ""
	}

	var str strings.Builder

	type item struct {
		node  int
		depth int
	}

	stack := []item{{t.Root(), 0}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		text := t.Text(it.node)
		if ex != nil && it.node < len(ex.Tokens) {
			text = r.token(ex, it.node)
		}

		fmt.Fprintf(&str, "%s%d %s %s\n", strings.Repeat(indent, it.depth), it.node, text, r.rel.Sprintf("(%s)", t.Rel(it.node)))

		children := t.Children(it.node)
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, item{children[i], it.depth + 1})
		}
	}

	return str.String()
}

func (r *Renderer) Tree(t *deptree.Tree, ex *sent.Example) {
	fmt.Fprint(r.Out, r.TreeString(t, ex))
}

// Tokens writes a table with one row per token of ex and the annotations
// present in the example. The arg column marks the head (H) and tail (T)
// tokens.
func (r *Renderer) Tokens(ex *sent.Example) {
	w := tabwriter.NewWriter(r.Out, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "idx\targ\ttoken\tner\tpos\tdep\thead")
	for i := range ex.Tokens {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n", i, argument(ex, i), ex.Tokens[i], at(ex.Ner, i), at(ex.Pos, i), at(ex.Dep, i), atInt(ex.DepHead, i))
	}

	w.Flush()
}

func argument(ex *sent.Example, i int) string {
	switch {
	case ex.Head.Contains(i):
		return "H"
	case ex.Tail.Contains(i):
		return "T"
	}
	return ""
}

func at(s []string, i int) string {
	if i >= len(s) {
		return "-"
	}
	return s[i]
}

func atInt(s []int, i int) string {
	if i >= len(s) {
		return "-"
	}
	return strconv.Itoa(s[i])
}

// Splits writes a table with the example counts of each split.
func (r *Renderer) Splits(splits []stat.Stats, total stat.Stats) {
	w := tabwriter.NewWriter(r.Out, 0, 0, 2, ' ', tabwriter.AlignRight)

	all := append(append([]stat.Stats{}, splits...), total)

	fmt.Fprintln(w, "split\texamples\tkept\tdiscarded\t")
	for _, s := range all {
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t\n", s.Split, s.Examples, s.Kept, s.Discarded)
	}

	w.Flush()
}

// Distribution writes the class counts of s, most common first.
func (r *Renderer) Distribution(s stat.Stats) {
	w := tabwriter.NewWriter(r.Out, 0, 0, 2, ' ', tabwriter.AlignRight)

	fmt.Fprintln(w, "label\tcount\tshare\t")
	for _, c := range s.Distribution() {
		share := 0.0
		if s.Kept > 0 {
			share = 100 * float64(c.N) / float64(s.Kept)
		}
		fmt.Fprintf(w, "%s\t%d\t%.1f%%\t\n", c.Label, c.N, share)
	}

	w.Flush()
}

// Report writes the split counts and the class distribution of a run.
func (r *Renderer) Report(rep *probe.Report) {
	fmt.Fprintln(r.Out, r.title.Sprint(rep.Task))
	r.Splits(rep.Splits, rep.Total)
	fmt.Fprintln(r.Out)
	r.Distribution(rep.Total)

	if rep.Errors > 0 {
		fmt.Fprintf(r.Out, "%d examples discarded with errors\n", rep.Errors)
	}
}
