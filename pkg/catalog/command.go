package catalog

import (
	"github.com/arthur-debert/rxr/pkg/errors"
	"github.com/arthur-debert/rxr/pkg/mappings"
	"github.com/arthur-debert/rxr/pkg/template"
)

// DefaultWorkingDir is used when a command does not set wd.
const DefaultWorkingDir = "{target}"

// Command describes a program invocation. Every field may reference
// mappings such as {archive} or {target}; arguments may also hold
// expansions such as {{$val}}, which turn one argument into one argument
// per archive.
type Command struct {
	Cmd   string            `koanf:"cmd" toml:"cmd" yaml:"cmd"`
	Args  []string          `koanf:"args" toml:"args" yaml:"args"`
	Evars map[string]string `koanf:"evars" toml:"evars,omitempty" yaml:"evars,omitempty"`
	Wd    string            `koanf:"wd" toml:"wd,omitempty" yaml:"wd,omitempty"`
}

// Invocation is a command with every mapping applied, ready to run.
type Invocation struct {
	Program string            `toml:"program" yaml:"program"`
	Args    []string          `toml:"args" yaml:"args"`
	Env     map[string]string `toml:"env,omitempty" yaml:"env,omitempty"`
	Dir     string            `toml:"dir" yaml:"dir"`
}

// WorkingDir returns the working directory template.
func (c Command) WorkingDir() string {
	if c.Wd == "" {
		return DefaultWorkingDir
	}
	return c.Wd
}

// Validate checks that the command names a program and that every expansion
// argument parses.
func (c Command) Validate() error {
	if c.Cmd == "" {
		return errors.New(errors.ErrInvalidInput, "command has no program")
	}
	for _, arg := range c.Args {
		if !template.HasExpansions(arg) {
			continue
		}
		if _, err := template.Parse(arg); err != nil {
			return err
		}
	}
	return nil
}

// Render applies table to the command. The program, working directory,
// environment values and plain arguments are substituted leniently, leaving
// unknown placeholders as they are. An argument holding expansions is
// expanded over items, every placeholder in it must resolve, and it yields
// one argument per item.
func (c Command) Render(table mappings.Table, items []string) (Invocation, error) {
	inv := Invocation{
		Program: table.Substitute(c.Cmd),
		Dir:     table.Substitute(c.WorkingDir()),
	}

	if len(c.Evars) > 0 {
		inv.Env = make(map[string]string, len(c.Evars))
		for k, v := range c.Evars {
			inv.Env[k] = v
		}
		table.SubstituteMap(inv.Env)
	}

	dict := table.Values()
	for _, arg := range c.Args {
		if !template.HasExpansions(arg) {
			inv.Args = append(inv.Args, table.Substitute(arg))
			continue
		}

		tmpl, err := template.Parse(arg)
		if err != nil {
			return Invocation{}, err
		}
		expanded, err := tmpl.Expand(items, dict)
		if err != nil {
			return Invocation{}, err
		}
		inv.Args = append(inv.Args, expanded...)
	}

	return inv, nil
}
