package plan

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/revelaction/reval/probe"
)

//go:embed presets/*.yaml
var presetFiles embed.FS

var validate = validator.New()

// Plan lists the probing tasks generated from one dataset.
type Plan struct {
	Name string `yaml:"name"`

	// Format is the dataset format the plan was written for, "jsonl" or
	// "tacred". Empty if the plan does not depend on it.
	Format string `yaml:"format" validate:"omitempty,oneof=jsonl tacred"`

	Runs []Run `yaml:"runs" validate:"required,min=1,dive"`
}

// Run is the configuration of one probing task of a plan.
type Run struct {
	Task string `yaml:"task" validate:"required"`

	// Output is the name of the generated dataset. Defaults to the task
	// name, f.ex. "pos_tag_head_left".
	Output string `yaml:"output" validate:"omitempty,excludesall=/"`

	Buckets   []probe.Bucket `yaml:"buckets" validate:"dive"`
	Argument  string         `yaml:"argument" validate:"omitempty,oneof=head tail"`
	Position  string         `yaml:"position" validate:"omitempty,oneof=left right"`
	NerTag    string         `yaml:"ner_tag"`
	KeepTags  []string       `yaml:"keep_tags"`
	KeepTypes []string       `yaml:"keep_types"`
	Roles     []string       `yaml:"roles"`
	Prune     int            `yaml:"prune"`
}

// Job is a configured task of a plan and the name of its dataset.
type Job struct {
	Output string
	Task   probe.Task
}

// Parse decodes and validates a yaml plan.
func Parse(data []byte) (*Plan, error) {
	var p Plan
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse plan: %w", err)
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	return &p, nil
}

// Load reads a yaml plan file.
func Load(file string) (*Plan, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}

	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}

	return p, nil
}

// Validate checks the plan fields.
func (p *Plan) Validate() error {
	err := validate.Struct(p)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	// report the first failing field
	fe := verrs[0]
	return &probe.ConfigurationError{
		Field:  strings.TrimPrefix(fe.Namespace(), "Plan."),
		Value:  fmt.Sprint(fe.Value()),
		Reason: fmt.Sprintf("failed %q validation", fe.Tag()),
	}
}

// Jobs builds the tasks of the plan, in plan order. Two runs with the same
// output name are rejected.
func (p *Plan) Jobs() ([]Job, error) {
	jobs := make([]Job, 0, len(p.Runs))
	seen := map[string]bool{}

	for _, r := range p.Runs {
		task, err := r.NewTask()
		if err != nil {
			return nil, err
		}

		out := r.Output
		if out == "" {
			out = task.Name()
		}

		if seen[out] {
			return nil, &probe.ConfigurationError{Field: "output", Value: out, Reason: "used by two runs"}
		}
		seen[out] = true

		jobs = append(jobs, Job{Output: out, Task: task})
	}

	return jobs, nil
}

// NewTask returns the probing task configured by r.
func (r Run) NewTask() (probe.Task, error) {
	kind, err := probe.ParseKind(r.Task)
	if err != nil {
		return nil, err
	}

	opts := probe.Options{
		Buckets:   r.Buckets,
		NerTag:    r.NerTag,
		KeepTags:  r.KeepTags,
		KeepTypes: r.KeepTypes,
		Roles:     r.Roles,
		Prune:     r.Prune,
	}

	if r.Argument != "" {
		if opts.Argument, err = probe.ParseArgument(r.Argument); err != nil {
			return nil, err
		}
	}

	if r.Position != "" {
		if opts.Position, err = probe.ParsePosition(r.Position); err != nil {
			return nil, err
		}
	}

	return probe.NewTask(kind, opts)
}

// Preset returns the built-in plan name.
func Preset(name string) (*Plan, error) {
	data, err := presetFiles.ReadFile(path.Join("presets", name+".yaml"))
	if err != nil {
		return nil, &probe.ConfigurationError{Field: "preset", Value: name, Reason: fmt.Sprintf("must be one of %s", strings.Join(Presets(), ", "))}
	}

	return Parse(data)
}

// Presets returns the names of the built-in plans.
func Presets() []string {
	entries, err := presetFiles.ReadDir("presets")
	if err != nil {
		return nil
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
	}

	sort.Strings(names)
	return names
}
