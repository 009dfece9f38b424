// Package flagx helps commands read a single flag ahead of full parsing.
package flagx

import (
	"io"
	"strings"

	"github.com/spf13/pflag"
)

// FilterArgs keeps only the flags named in allowed, together with their
// values. Both "-c value" and "--config=value" forms are recognised; a
// following argument that starts with "-" is not taken as a value.
func FilterArgs(args []string, allowed []string) []string {
	names := make(map[string]struct{}, len(allowed))
	for _, f := range allowed {
		names[f] = struct{}{}
	}

	filtered := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]

		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			name, _, _ := strings.Cut(arg, "=")
			if _, ok := names[name]; ok {
				filtered = append(filtered, arg)
			}
			continue
		}

		if _, ok := names[arg]; ok {
			filtered = append(filtered, arg)
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				filtered = append(filtered, args[i+1])
				i++
			}
		}
	}

	return filtered
}

// ConfigPath returns the value of -c/--config in args, or "" when absent.
// Other flags are ignored so the caller can load the file before parsing
// the rest of its flags on top of it.
func ConfigPath(args []string) string {
	var path string

	fs := pflag.NewFlagSet("config", pflag.ContinueOnError)
	fs.StringVarP(&path, "config", "c", "", "path to JSON config file")
	fs.SetOutput(io.Discard)
	_ = fs.Parse(FilterArgs(args, []string{"-c", "--config"}))

	return path
}
