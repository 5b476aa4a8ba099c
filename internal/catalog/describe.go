package catalog

import (
	"fmt"
	"strings"
)

// Describe renders the keyword's card templates as markdown help.
func (c Catalog) Describe(name string) (string, error) {
	templates, ok := c.Lookup(name)
	if !ok {
		return "", fmt.Errorf("keyword %q not in catalog", name)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# *%s\n\n", name)
	if len(templates) == 0 {
		b.WriteString("_No cards._\n")
		return b.String(), nil
	}

	for i, tmpl := range templates {
		fmt.Fprintf(&b, "## Card %d\n\n", i+1)
		b.WriteString("| Field | Column | Width | Default | Options |\n")
		b.WriteString("|---|---|---|---|---|\n")
		for _, spec := range tmpl.Specs() {
			fmt.Fprintf(&b, "| %s | %d | %d | %s | %s |\n",
				displayName(spec.Name), spec.Position, spec.Width,
				escapeCell(spec.DefaultValue()), escapeCell(strings.Join(spec.Options, ", ")))
		}
		b.WriteString("\n")

		for _, spec := range tmpl.Specs() {
			if spec.Help == "" {
				continue
			}
			fmt.Fprintf(&b, "- **%s**: %s\n", displayName(spec.Name), strings.TrimSpace(spec.Help))
		}
		b.WriteString("\n")
	}
	return b.String(), nil
}

func displayName(name string) string {
	if name == "" {
		return "(blank)"
	}
	return name
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
