package config

// Default output templates for the launched program.
const (
	DefaultStdout = "{target}/stdout"
	DefaultStderr = "{target}/stderr"
)

// Paths holds the files receiving the launched program's output. Both are
// templates resolved against the run's mappings.
type Paths struct {
	Stdout string `koanf:"stdout" toml:"stdout" yaml:"stdout"`
	Stderr string `koanf:"stderr" toml:"stderr" yaml:"stderr"`
}

func resolvePaths(stdout, stderr *string) Paths {
	p := Paths{Stdout: DefaultStdout, Stderr: DefaultStderr}
	if stdout != nil {
		p.Stdout = *stdout
	}
	if stderr != nil {
		p.Stderr = *stderr
	}
	return p
}
