// Package dosbox reads, merges and writes DOSBox style configuration files.
//
// The format is line oriented: [section] headers, key=value settings and
// lines starting with # as comments. The [autoexec] section is special and
// holds an ordered list of commands instead of settings.
//
// DOSBox has no escaping. An autoexec command that is itself a whole-line
// [name] is read back as a section header, so such a command does not
// survive a write and re-read; every other command round-trips unchanged.
package dosbox

import (
	"bufio"
	"bytes"
	"io"
	"regexp"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"github.com/arthur-debert/rxr/pkg/errors"
	"github.com/arthur-debert/rxr/pkg/logging"
)

// AutoexecSection is the name of the section holding startup commands.
const AutoexecSection = "autoexec"

var (
	sectionPattern = regexp.MustCompile(`^\[(.+)\]$`)
	settingPattern = regexp.MustCompile(`(.+?)\s*=\s*(.+)`)
)

// Config is a parsed configuration. Settings map section names to key/value
// pairs; Autoexec holds the startup commands in file order.
type Config struct {
	Autoexec []string
	Settings map[string]map[string]string
}

// New returns an empty configuration.
func New() *Config {
	return &Config{Settings: map[string]map[string]string{}}
}

// Parse builds a configuration from lines. Blank lines, comments and lines
// before the first section header are skipped. Backslashes in autoexec
// commands are turned into forward slashes. A repeated key keeps the last
// value.
func Parse(lines []string) *Config {
	cfg := New()

	section := ""
	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if m := sectionPattern.FindStringSubmatch(line); m != nil {
			section = m[1]
			continue
		}

		switch {
		case section == "":
			continue
		case strings.EqualFold(section, AutoexecSection):
			cfg.Autoexec = append(cfg.Autoexec, strings.ReplaceAll(line, `\`, "/"))
		default:
			m := settingPattern.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			cfg.Set(section, m[1], m[2])
		}
	}

	return cfg
}

// ParseString parses a configuration held in memory.
func ParseString(text string) *Config {
	return Parse(strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n"))
}

// Read parses the configuration file at path.
func Read(fs afero.Fs, path string) (*Config, error) {
	file, err := fs.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot open %s", path)
	}
	defer func() { _ = file.Close() }()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", path)
	}

	return Parse(lines), nil
}

// Get returns the value of key in section.
func (c *Config) Get(section, key string) (string, bool) {
	v, ok := c.Settings[section][key]
	return v, ok
}

// Set stores value under key in section, creating the section if needed.
func (c *Config) Set(section, key, value string) {
	if c.Settings == nil {
		c.Settings = map[string]map[string]string{}
	}
	if c.Settings[section] == nil {
		c.Settings[section] = map[string]string{}
	}
	c.Settings[section][key] = value
}

// Sections returns the setting section names in sorted order.
func (c *Config) Sections() []string {
	names := make([]string, 0, len(c.Settings))
	for name := range c.Settings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone returns a deep copy of c.
func (c *Config) Clone() *Config {
	out := New()
	out.Autoexec = append([]string(nil), c.Autoexec...)
	for section, settings := range c.Settings {
		copied := make(map[string]string, len(settings))
		for k, v := range settings {
			copied[k] = v
		}
		out.Settings[section] = copied
	}
	return out
}

// Merge returns a new configuration with overlay applied on top of c.
// Overlay settings replace base settings key by key, sections the overlay
// does not mention are kept, and overlay autoexec commands are appended
// after the base ones. Neither input is modified.
func (c *Config) Merge(overlay *Config) *Config {
	logger := logging.GetLogger("dosbox")
	merged := c.Clone()

	for _, section := range overlay.Sections() {
		for key, value := range overlay.Settings[section] {
			merged.Set(section, key, value)
		}
	}

	for _, line := range overlay.Autoexec {
		logger.Debug().Str("line", line).Msg("Adding autoexec line")
		merged.Autoexec = append(merged.Autoexec, line)
	}

	return merged
}

// WriteTo serializes c to w. Sections and keys are written in sorted order,
// followed by the autoexec section.
func (c *Config) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	for _, section := range c.Sections() {
		settings := c.Settings[section]
		keys := make([]string, 0, len(settings))
		for k := range settings {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		buf.WriteString("[" + section + "]\n")
		for _, k := range keys {
			buf.WriteString(k + "=" + settings[k] + "\n")
		}
	}

	buf.WriteString("[" + AutoexecSection + "]\n")
	for _, line := range c.Autoexec {
		buf.WriteString(line + "\n")
	}

	return buf.WriteTo(w)
}

// String returns the serialized configuration.
func (c *Config) String() string {
	var sb strings.Builder
	_, _ = c.WriteTo(&sb)
	return sb.String()
}

// WriteFile serializes c to path, replacing any existing file.
func (c *Config) WriteFile(fs afero.Fs, path string) error {
	if err := afero.WriteFile(fs, path, []byte(c.String()), 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", path)
	}
	return nil
}
