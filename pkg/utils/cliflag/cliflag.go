// Package cliflag groups pflag flag sets by section so --help output and
// config docs stay organized per module.
package cliflag

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// NamedFlagSets stores named flag sets in the order they were requested.
type NamedFlagSets struct {
	// Order is the ordered list of flag set names.
	Order []string

	// FlagSets maps a name to its flag set.
	FlagSets map[string]*pflag.FlagSet
}

// FlagSet returns the flag set for name, creating it on first use.
func (nfs *NamedFlagSets) FlagSet(name string) *pflag.FlagSet {
	if nfs.FlagSets == nil {
		nfs.FlagSets = map[string]*pflag.FlagSet{}
	}
	if _, ok := nfs.FlagSets[name]; !ok {
		nfs.FlagSets[name] = pflag.NewFlagSet(name, pflag.ExitOnError)
		nfs.Order = append(nfs.Order, name)
	}
	return nfs.FlagSets[name]
}

// PrintSections prints all sections with usage text, one block per set.
func PrintSections(w *bytes.Buffer, nfs NamedFlagSets) {
	for _, name := range nfs.Order {
		fs := nfs.FlagSets[name]
		if !fs.HasFlags() {
			continue
		}
		fmt.Fprintf(w, "\n%s flags:\n\n%s", strings.ToUpper(name[:1])+name[1:], fs.FlagUsages())
	}
}

// WordSepNormalizeFunc normalizes "_" separators in flag names to "-".
func WordSepNormalizeFunc(f *pflag.FlagSet, name string) pflag.NormalizedName {
	if strings.Contains(name, "_") {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	}
	return pflag.NormalizedName(name)
}

// WarnWordSepNormalizeFunc behaves like WordSepNormalizeFunc but warns
// about the deprecated spelling.
func WarnWordSepNormalizeFunc(f *pflag.FlagSet, name string) pflag.NormalizedName {
	if strings.Contains(name, "_") {
		normalized := strings.ReplaceAll(name, "_", "-")
		fmt.Printf("WARNING: flag %s has been deprecated and will be removed in a future version, use %s instead\n", name, normalized)
		return pflag.NormalizedName(normalized)
	}
	return pflag.NormalizedName(name)
}
