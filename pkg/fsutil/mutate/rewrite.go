package mutate

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/saasfoundry/sf/pkg/fsutil"
)

// Rule is one text replacement.
type Rule struct {
	pattern    *regexp.Regexp
	old        string
	new        string
	keepIndent bool
}

// Literal replaces every occurrence of old with replacement.
func Literal(old, replacement string) Rule {
	return Rule{old: old, new: replacement}
}

// Pattern replaces every match of the regular expression expr with replacement, taken literally.
func Pattern(expr, replacement string) Rule {
	return Rule{pattern: regexp.MustCompile(expr), new: replacement}
}

// Line replaces every whole line starting with prefix, after optional indentation, by line.
// The indentation of the replaced line is kept.
func Line(prefix, line string) Rule {
	return Rule{
		pattern:    regexp.MustCompile(`(?m)^[ \t]*` + regexp.QuoteMeta(prefix) + `.*$`),
		new:        line,
		keepIndent: true,
	}
}

func (r Rule) apply(content string) string {
	switch {
	case r.pattern == nil:
		return strings.ReplaceAll(content, r.old, r.new)
	case r.keepIndent:
		return r.pattern.ReplaceAllStringFunc(content, func(match string) string {
			return match[:len(match)-len(strings.TrimLeft(match, " \t"))] + r.new
		})
	default:
		return r.pattern.ReplaceAllLiteralString(content, r.new)
	}
}

// Rewrite applies rules to every file matched by Files, in order.
// Files are slash-separated globs relative to the service root.
type Rewrite struct {
	Label string
	Files []string
	Rules []Rule
	// Required turns a glob without match into ErrRequiredFileMissing.
	Required bool
}

// Describe implements Mutation.
func (r Rewrite) Describe() string {
	if r.Label != "" {
		return r.Label
	}

	return "rewrite " + strings.Join(r.Files, ", ")
}

// Apply implements Mutation.
func (r Rewrite) Apply(root string) error {
	for _, glob := range r.Files {
		matches, err := filepath.Glob(filepath.Join(root, filepath.FromSlash(glob)))
		if err != nil {
			return fmt.Errorf("invalid file pattern %s: %w", glob, err)
		}

		if len(matches) == 0 {
			if r.Required {
				return fmt.Errorf("%w: %s", ErrRequiredFileMissing, glob)
			}

			continue
		}

		for _, path := range matches {
			err = r.rewriteFile(path)
			if err != nil {
				return err
			}
		}
	}

	return nil
}

func (r Rewrite) rewriteFile(path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // path is inside the service tree
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	content := string(data)
	for _, rule := range r.Rules {
		content = rule.apply(content)
	}

	if content == string(data) {
		return nil
	}

	_, err = fsutil.WriteIfChanged(path, []byte(content))
	if err != nil {
		return fmt.Errorf("failed to rewrite %s: %w", path, err)
	}

	return nil
}

// EnvVar is one KEY="value" assignment.
type EnvVar struct {
	Key   string
	Value string
}

// SetEnv replaces the KEY=... line of each variable in an environment file by KEY="value".
// The file and every key must exist.
type SetEnv struct {
	File string
	Vars []EnvVar
	// Commented targets "# KEY=..." lines instead, activating a disabled setting.
	Commented bool
}

// Describe implements Mutation.
func (s SetEnv) Describe() string {
	keys := make([]string, 0, len(s.Vars))
	for _, v := range s.Vars {
		keys = append(keys, v.Key)
	}

	return fmt.Sprintf("set %s in %s", strings.Join(keys, ", "), s.File)
}

// Apply implements Mutation.
func (s SetEnv) Apply(root string) error {
	path, data, err := readRequired(root, s.File)
	if err != nil {
		return err
	}

	content := string(data)

	for _, v := range s.Vars {
		prefix := v.Key + "="
		if s.Commented {
			prefix = "# " + prefix
		}

		rule := Line(prefix, v.Key+`="`+v.Value+`"`)
		if !rule.pattern.MatchString(content) {
			return fmt.Errorf("%w: %s in %s", ErrKeyNotFound, v.Key, s.File)
		}

		content = rule.apply(content)
	}

	_, err = fsutil.WriteIfChanged(path, []byte(content))
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", s.File, err)
	}

	return nil
}

// Rename moves From to To inside the service tree. A missing From is skipped.
type Rename struct {
	From string
	To   string
}

// Describe implements Mutation.
func (r Rename) Describe() string {
	return "rename " + r.From + " to " + r.To
}

// Apply implements Mutation.
func (r Rename) Apply(root string) error {
	from := filepath.Join(root, filepath.FromSlash(r.From))
	to := filepath.Join(root, filepath.FromSlash(r.To))

	err := os.Rename(from, to)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to rename %s: %w", r.From, err)
	}

	return nil
}

// CopyFile copies Name from Source to Target inside the service tree.
type CopyFile struct {
	Source fs.FS
	Name   string
	Target string
}

// Describe implements Mutation.
func (c CopyFile) Describe() string {
	return "add " + c.Target
}

// Apply implements Mutation.
func (c CopyFile) Apply(root string) error {
	return fsutil.CopyFile(c.Source, c.Name, filepath.Join(root, filepath.FromSlash(c.Target)))
}
