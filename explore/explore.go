package explore

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/c-bata/go-prompt"

	"github.com/revelaction/reval/deptree"
	"github.com/revelaction/reval/probe"
	"github.com/revelaction/reval/render"
	sent "github.com/revelaction/reval/sentence"
)

const maxFound = 20

var ErrQuit = errors.New("quit")

type command struct {
	name string
	args string
	desc string
}

var commands = []command{
	{"show", "i", "sentence and token table of example i"},
	{"tree", "i", "dependency tree of example i"},
	{"sdp", "i [k]", "tree of example i pruned to the path between the arguments, plus k hops"},
	{"role", "i head|tail", "grammatical role of an argument of example i"},
	{"labels", "i", "label of every probing task for example i"},
	{"find", "word", "examples containing word"},
	{"help", "", "list commands"},
	{"quit", "", "leave"},
}

// Handler runs an interactive session over the examples of a dataset.
type Handler struct {
	Examples []*sent.Example
	Renderer *render.Renderer
	Out      io.Writer

	// Roles is the role vocabulary of the role command.
	Roles []string

	tasks []probe.Task
}

func NewHandler(examples []*sent.Example, r *render.Renderer, out io.Writer) *Handler {
	return &Handler{
		Examples: examples,
		Renderer: r,
		Out:      out,
		Roles:    probe.DefaultRoles,
	}
}

func (h *Handler) Run() error {
	fmt.Fprintf(h.Out, "%d examples, type help for the commands, 🔧 quit\n", len(h.Examples))

	// initialize prompt history
	history := []string{}

	for {
		in := prompt.Input("🔎 ", h.completer,
			prompt.OptionTitle("reval explore"),
			prompt.OptionPrefixTextColor(prompt.Yellow),
			prompt.OptionPreviewSuggestionTextColor(prompt.Blue),
			prompt.OptionSelectedSuggestionBGColor(prompt.LightGray),
			prompt.OptionMaxSuggestion(12),
			prompt.OptionSuggestionBGColor(prompt.DarkGray),
			prompt.OptionHistory(history),
		)

		history = append(history, in)

		err := h.Exec(in)
		if errors.Is(err, ErrQuit) {
			return nil
		}

		if err != nil {
			fmt.Fprintf(h.Out, "error: %v\n", err)
		}
	}
}

func (h *Handler) completer(in prompt.Document) []prompt.Suggest {
	befCursor := in.TextBeforeCursor()
	if befCursor == "" || strings.Contains(befCursor, " ") {
		return nil
	}

	s := []prompt.Suggest{}
	for _, c := range commands {
		if strings.HasPrefix(c.name, befCursor) {
			s = append(s, prompt.Suggest{Text: c.name, Description: c.desc})
		}
	}

	return s
}

// Exec runs one command line. It returns ErrQuit for the quit command.
func (h *Handler) Exec(in string) error {
	fields := strings.Fields(in)
	if len(fields) == 0 {
		return nil
	}

	args := fields[1:]
	switch fields[0] {
	case "quit", "exit":
		return ErrQuit
	case "help":
		h.help()
		return nil
	case "find":
		return h.find(args)
	case "show":
		return h.show(args)
	case "tree":
		return h.tree(args)
	case "sdp":
		return h.sdp(args)
	case "role":
		return h.role(args)
	case "labels":
		return h.labels(args)
	}

	return fmt.Errorf("unknown command %q", fields[0])
}

func (h *Handler) help() {
	for _, c := range commands {
		fmt.Fprintf(h.Out, "%-7s %-12s %s\n", c.name, c.args, c.desc)
	}
}

func (h *Handler) example(args []string) (*sent.Example, error) {
	if len(args) == 0 {
		return nil, errors.New("missing example number")
	}

	i, err := strconv.Atoi(args[0])
	if err != nil {
		return nil, fmt.Errorf("%q is not an example number", args[0])
	}

	if i < 0 || i >= len(h.Examples) {
		return nil, fmt.Errorf("example %d out of range [0, %d)", i, len(h.Examples))
	}

	return h.Examples[i], nil
}

func (h *Handler) find(args []string) error {
	if len(args) == 0 {
		return errors.New("missing word")
	}

	found := 0
	for i, ex := range h.Examples {
		for _, tok := range ex.Tokens {
			if tok != args[0] {
				continue
			}

			h.Renderer.Sentence(ex, fmt.Sprintf("%5d  ", i))
			found++
			break
		}

		if found == maxFound {
			fmt.Fprintf(h.Out, "first %d examples shown\n", maxFound)
			break
		}
	}

	return nil
}

func (h *Handler) show(args []string) error {
	ex, err := h.example(args)
	if err != nil {
		return err
	}

	id := ex.Id
	if id == "" {
		id = "None"
	}

	fmt.Fprintf(h.Out, "id %s, label %s, head %s %s, tail %s %s\n", id, ex.Label, ex.Head, ex.HeadType, ex.Tail, ex.TailType)
	h.Renderer.Sentence(ex, "")
	h.Renderer.Tokens(ex)
	return nil
}

func (h *Handler) tree(args []string) error {
	ex, err := h.example(args)
	if err != nil {
		return err
	}

	t, err := deptree.FromExample(ex)
	if err != nil {
		return err
	}

	h.Renderer.Tree(t, ex)
	fmt.Fprintf(h.Out, "depth %d\n", t.Depth())
	return nil
}

func (h *Handler) sdp(args []string) error {
	ex, err := h.example(args)
	if err != nil {
		return err
	}

	k := 0
	if len(args) > 1 {
		if k, err = strconv.Atoi(args[1]); err != nil {
			return fmt.Errorf("%q is not a number of hops", args[1])
		}
	}

	t, err := deptree.FromExample(ex)
	if err != nil {
		return err
	}

	pruned, err := deptree.Prune(t, ex.Head, ex.Tail, k)
	if err != nil {
		return err
	}

	h.Renderer.Tree(pruned, ex)
	fmt.Fprintf(h.Out, "depth %d, %d of %d tokens\n", pruned.Depth(), pruned.Len(), t.Len())
	return nil
}

func (h *Handler) role(args []string) error {
	ex, err := h.example(args)
	if err != nil {
		return err
	}

	if len(args) < 2 {
		return errors.New("missing argument, head or tail")
	}

	arg, err := probe.ParseArgument(args[1])
	if err != nil {
		return err
	}

	span := ex.Head
	if arg == probe.Tail {
		span = ex.Tail
	}

	t, err := deptree.FromExample(ex)
	if err != nil {
		return err
	}

	c, ok := t.CommonHead(span)
	if !ok {
		fmt.Fprintf(h.Out, "%s %s is not a constituent\n", arg, span)
		return nil
	}

	fmt.Fprintf(h.Out, "%s %s attaches at token %d to governor %d as %s, class %d\n", arg, span, c.Index, c.Governor, c.Rel, probe.RoleId(h.Roles, c.Rel))
	return nil
}

// labels runs every probing task with its default configuration. Tasks
// with a vocabulary build it from all the examples of the session.
func (h *Handler) labels(args []string) error {
	ex, err := h.example(args)
	if err != nil {
		return err
	}

	if h.tasks == nil {
		if err := h.prepareTasks(); err != nil {
			return err
		}
	}

	for _, task := range h.tasks {
		label, ok, err := task.Label(ex)
		switch {
		case err != nil:
			label = "error: " + err.Error()
		case !ok:
			label = "discarded"
		}

		fmt.Fprintf(h.Out, "%-45s %s\n", task.Name(), label)
	}

	return nil
}

func (h *Handler) prepareTasks() error {
	splits := probe.Splits{Train: h.Examples}

	var tasks []probe.Task
	for _, k := range probe.Kinds() {
		for _, opts := range variants(k) {
			task, err := probe.NewTask(k, opts)
			if err != nil {
				return err
			}
			tasks = append(tasks, probe.Prepare(task, splits))
		}
	}

	h.tasks = tasks
	return nil
}

// variants returns the argument and position combinations of kind.
func variants(k probe.Kind) []probe.Options {
	args := []probe.Argument{probe.Head, probe.Tail}

	var opts []probe.Options
	switch k {
	case probe.PosTagArgumentPosition:
		for _, a := range args {
			for _, p := range []probe.Position{probe.Left, probe.Right} {
				opts = append(opts, probe.Options{Argument: a, Position: p})
			}
		}
	case probe.ArgumentType, probe.ArgumentGrammaticalRole:
		for _, a := range args {
			opts = append(opts, probe.Options{Argument: a})
		}
	default:
		opts = append(opts, probe.Options{})
	}

	return opts
}
