package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"corvid/internal/semantic"
)

var symbolsCmd = &cobra.Command{
	Use:   "symbols [flags] [file.php|directory]...",
	Short: "List the declarations collected from PHP sources",
	Args:  cobra.ArbitraryArgs,
	RunE:  runSymbols,
}

func init() {
	symbolsCmd.Flags().String("kind", "", "only list one kind (constant|function|class|interface)")
}

func runSymbols(cmd *cobra.Command, args []string) error {
	kind, err := cmd.Flags().GetString("kind")
	if err != nil {
		return fmt.Errorf("failed to get kind flag: %w", err)
	}
	switch kind {
	case "", "constant", "function", "class", "interface":
	default:
		return fmt.Errorf("unknown symbol kind: %s", kind)
	}

	r, err := analyze(cmd, args)
	if err != nil {
		return err
	}

	var rows [][]string
	for _, sym := range r.result.Space.Symbols() {
		if sym.Builtin || (kind != "" && sym.Kind.String() != kind) {
			continue
		}
		rows = append(rows, []string{
			sym.Kind.String(),
			sym.Name,
			fmt.Sprintf("%s:%d", sym.Unit, sym.Position.Line),
			symbolDetail(sym),
		})
	}

	t := table.New().
		Headers("KIND", "NAME", "DECLARED", "DETAIL").
		Rows(rows...).
		Border(lipgloss.NormalBorder())
	if !color.NoColor {
		t = t.BorderStyle(lipgloss.NewStyle().Faint(true))
	}
	fmt.Fprintln(cmd.OutOrStdout(), t.Render())
	return nil
}

func symbolDetail(sym *semantic.Symbol) string {
	switch {
	case sym.Constant != nil:
		value := sym.Constant.Value.String()
		if sym.Constant.Define {
			return "define " + value
		}
		return "= " + value
	case sym.Function != nil:
		return arity(sym.Function.Signature)
	case sym.Class != nil:
		var parts []string
		if sym.Class.Abstract {
			parts = append(parts, "abstract")
		}
		if len(sym.Class.Extends) > 0 {
			parts = append(parts, "extends "+writtenNames(sym.Class.Extends))
		}
		if len(sym.Class.Implements) > 0 {
			parts = append(parts, "implements "+writtenNames(sym.Class.Implements))
		}
		parts = append(parts, fmt.Sprintf("%d methods", len(sym.Class.Methods)))
		return strings.Join(parts, " ")
	}
	return ""
}

func arity(sig semantic.Signature) string {
	lo, hi := sig.MinArity(), sig.MaxArity()
	switch {
	case hi < 0:
		return fmt.Sprintf("%d.. args", lo)
	case lo == hi:
		return fmt.Sprintf("%d args", lo)
	default:
		return fmt.Sprintf("%d..%d args", lo, hi)
	}
}

func writtenNames(refs []semantic.TypeRef) string {
	names := make([]string, len(refs))
	for i, ref := range refs {
		names[i] = ref.Written
	}
	return strings.Join(names, ", ")
}
