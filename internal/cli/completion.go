package cli

import (
	"fmt"
	"io"
	"strings"
)

// FlagCompletion describes a CLI flag for shell completion generation.
// All shell completion functions generate from this registry, so adding
// a new flag only requires appending to flagRegistry.
type FlagCompletion struct {
	Name       string   // flag name without the leading dash (e.g., "strategy")
	Help       string   // description text
	Values     []string // suggested completion values (nil = boolean/no suggestions)
	ValueName  string   // label for the value in zsh (e.g., "number", "duration")
	IsStrategy bool     // true if values come from the strategy list (dynamic)
}

// flagRegistry is the central list of all CLI flags for completion generation.
var flagRegistry = []FlagCompletion{
	{Name: "h", Help: "Show help message"},
	{Name: "version", Help: "Show version information"},
	{Name: "n", Help: "Number of input elements", ValueName: "number"},
	{Name: "tasks", Help: "Chunk count of the chunked strategy", ValueName: "number"},
	{Name: "leaf", Help: "Maximum leaf size", ValueName: "number"},
	{Name: "workers", Help: "Scheduler worker slots", ValueName: "number"},
	{Name: "strategy", Help: "Strategy to run", IsStrategy: true, ValueName: "strategy"},
	{Name: "seed", Help: "Seed of the uniform distribution", ValueName: "number"},
	{Name: "dist", Help: "Input distribution", Values: []string{"uniform", "ones", "ramp"}, ValueName: "distribution"},
	{Name: "timeout", Help: "Maximum execution time", Values: []string{"10s", "1m", "5m"}, ValueName: "duration"},
	{Name: "epsilon", Help: "Relative comparison tolerance", Values: []string{"1e-9", "1e-12"}, ValueName: "tolerance"},
	{Name: "v", Help: "Verbose output"},
	{Name: "q", Help: "Quiet mode for scripts"},
	{Name: "metrics", Help: "Print Prometheus metrics"},
	{Name: "no-color", Help: "Disable colored output"},
	{Name: "tui", Help: "Interactive dashboard"},
	{Name: "students", Help: "Analyze a generated student roster", ValueName: "number"},
	{Name: "completion", Help: "Generate completion script", Values: []string{"bash", "zsh", "fish"}, ValueName: "shell"},
}

// GenerateCompletion generates a shell completion script for the specified shell.
//
// Parameters:
//   - out: The writer to output the completion script.
//   - shell: The shell type ("bash", "zsh", "fish").
//   - strategies: List of accepted strategy names.
//
// Returns:
//   - error: An error if the shell is not supported.
func GenerateCompletion(out io.Writer, shell string, strategies []string) error {
	switch shell {
	case "bash":
		return generateBashCompletion(out, strategies)
	case "zsh":
		return generateZshCompletion(out, strategies)
	case "fish":
		return generateFishCompletion(out, strategies)
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: bash, zsh, fish)", shell)
	}
}

// valuesFor returns the completion values of a flag.
func valuesFor(f FlagCompletion, strategies []string) []string {
	if f.IsStrategy {
		return strategies
	}
	return f.Values
}

// generateBashCompletion generates a Bash completion script.
func generateBashCompletion(out io.Writer, strategies []string) error {
	var opts []string
	var caseBody strings.Builder
	for _, f := range flagRegistry {
		opts = append(opts, "-"+f.Name)
		if vals := valuesFor(f, strategies); len(vals) > 0 {
			fmt.Fprintf(&caseBody, "        -%s)\n            COMPREPLY=( $(compgen -W \"%s\" -- \"${cur}\") )\n            return 0\n            ;;\n",
				f.Name, strings.Join(vals, " "))
		}
	}

	script := fmt.Sprintf(`# Bash completion script for recipsum
# Add this to your ~/.bashrc or ~/.bash_completion

_recipsum_completions() {
    local cur prev opts
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    opts="%s"

    case "${prev}" in
%s    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
        return 0
    fi
}

complete -F _recipsum_completions recipsum
`, strings.Join(opts, " "), caseBody.String())

	if _, err := fmt.Fprint(out, script); err != nil {
		return fmt.Errorf("completion bash generation failed: %w", err)
	}
	return nil
}

// generateZshCompletion generates a Zsh completion script.
func generateZshCompletion(out io.Writer, strategies []string) error {
	var args []string
	for _, f := range flagRegistry {
		args = append(args, zshArgEntry(f, strategies))
	}

	script := fmt.Sprintf(`#compdef recipsum

# Zsh completion script for recipsum
# Add this to your ~/.zshrc or place in $fpath

_recipsum() {
    _arguments -s \
%s
}

_recipsum "$@"
`, strings.Join(args, " \\\n"))

	if _, err := fmt.Fprint(out, script); err != nil {
		return fmt.Errorf("completion zsh generation failed: %w", err)
	}
	return nil
}

// zshArgEntry formats a single FlagCompletion as a zsh _arguments entry.
func zshArgEntry(f FlagCompletion, strategies []string) string {
	valueSuffix := ""
	if vals := valuesFor(f, strategies); len(vals) > 0 {
		valueSuffix = fmt.Sprintf(":%s:(%s)", f.ValueName, strings.Join(vals, " "))
	} else if f.ValueName != "" {
		// Value-taking flag with no suggestions (e.g., -n)
		valueSuffix = fmt.Sprintf(":%s:", f.ValueName)
	}
	return fmt.Sprintf("        '-%s[%s]%s'", f.Name, f.Help, valueSuffix)
}

// generateFishCompletion generates a Fish completion script.
func generateFishCompletion(out io.Writer, strategies []string) error {
	lines := []string{
		"# Fish completion script for recipsum",
		"# Add this to ~/.config/fish/completions/recipsum.fish",
		"",
		"# Disable file completion by default",
		"complete -c recipsum -f",
		"",
	}
	for _, f := range flagRegistry {
		lines = append(lines, fishCompleteLine(f, strategies))
	}
	lines = append(lines, "")

	if _, err := fmt.Fprint(out, strings.Join(lines, "\n")); err != nil {
		return fmt.Errorf("completion fish generation failed: %w", err)
	}
	return nil
}

// fishCompleteLine formats a single FlagCompletion as a fish complete command.
// Go's flag package uses single-dash long names, hence -o.
func fishCompleteLine(f FlagCompletion, strategies []string) string {
	parts := []string{"complete -c recipsum", "-o " + f.Name, fmt.Sprintf("-d '%s'", f.Help)}
	if vals := valuesFor(f, strategies); len(vals) > 0 {
		parts = append(parts, fmt.Sprintf("-xa '%s'", strings.Join(vals, " ")))
	} else if f.ValueName != "" {
		parts = append(parts, "-x")
	}
	return strings.Join(parts, " ")
}
