// Package flagx lets several components parse their own flags out of a
// shared os.Args without tripping over each other's definitions.
package flagx

import (
	"flag"
	"io"
	"strings"
)

// name strips the leading dashes, so "-c" and "--c" refer to the same flag.
func name(arg string) string {
	return strings.TrimLeft(arg, "-")
}

// FilterArgs keeps only the flags listed in allowed, together with their
// values. Both "-f value" and "-f=value" forms are recognised, and a flag may
// be written with one or two dashes regardless of how it is listed.
// A value that starts with "-" is never consumed.
func FilterArgs(args []string, allowed []string) []string {
	set := make(map[string]struct{}, len(allowed))
	for _, f := range allowed {
		set[name(f)] = struct{}{}
	}

	filtered := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "-") {
			continue
		}

		if k, _, ok := strings.Cut(arg, "="); ok {
			if _, keep := set[name(k)]; keep {
				filtered = append(filtered, arg)
			}
			continue
		}

		if _, keep := set[name(arg)]; !keep {
			continue
		}
		filtered = append(filtered, arg)
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			filtered = append(filtered, args[i+1])
			i++
		}
	}

	return filtered
}

// Parse defines flags on a fresh FlagSet through define and parses only the
// matching subset of args. Usage output is discarded; errors are returned.
func Parse(setName string, args []string, define func(fs *flag.FlagSet)) (*flag.FlagSet, error) {
	fs := flag.NewFlagSet(setName, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	define(fs)

	var names []string
	fs.VisitAll(func(f *flag.Flag) { names = append(names, f.Name) })

	if err := fs.Parse(FilterArgs(args, names)); err != nil {
		return nil, err
	}
	return fs, nil
}

// ConfigPath returns the JSON config file given by -c or -config in args,
// or "" when neither is present. The last occurrence wins.
func ConfigPath(args []string) string {
	var path string
	_, _ = Parse("json", args, func(fs *flag.FlagSet) {
		fs.StringVar(&path, "config", "", "path to config file")
		fs.StringVar(&path, "c", "", "path to config file (short)")
	})
	return path
}
