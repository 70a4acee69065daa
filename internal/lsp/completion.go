package lsp

import (
	"slices"
	"strings"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"nemesis/internal/names"
	"nemesis/internal/stdlib"
)

// linePrefix returns the text of the cursor's line up to the cursor.
func linePrefix(content string, pos protocol.Position) string {
	lines := strings.Split(content, "\n")
	if int(pos.Line) >= len(lines) {
		return ""
	}
	line := lines[pos.Line]
	return line[:min(int(pos.Character), len(line))]
}

func completions(prefix string) []protocol.CompletionItem {
	items := []protocol.CompletionItem{}

	key, _, isValue := strings.Cut(strings.TrimLeft(prefix, " \t-"), ":")
	if !isValue {
		keys := slices.Clone(modelKeys)
		for _, d := range stdlib.GetStandardComponents() {
			keys = append(keys, d.FieldNames()...)
		}
		slices.Sort(keys)
		for _, k := range slices.Compact(keys) {
			items = append(items, item(k, protocol.CompletionItemKindProperty, "", ""))
		}
		return items
	}

	key = strings.TrimSpace(key)
	if key == "kind" {
		for _, id := range stdlib.Kinds("") {
			d := stdlib.GetComponentDefinition(id)
			items = append(items, item(id, protocol.CompletionItemKindClass,
				d.Name+" ("+string(d.Category)+")", d.Description))
		}
		return items
	}

	var values []string
	isExpression := false
	for _, d := range stdlib.GetStandardComponents() {
		f, ok := d.Field(key)
		if !ok {
			continue
		}
		values = append(values, f.Values...)
		isExpression = isExpression || f.Type == stdlib.Expression
	}
	slices.Sort(values)
	for _, v := range slices.Compact(values) {
		items = append(items, item(v, protocol.CompletionItemKindEnumMember, key, ""))
	}
	if isExpression {
		for _, w := range names.Reserved() {
			items = append(items, item(w, protocol.CompletionItemKindKeyword, "", ""))
		}
	}
	return items
}

func item(label string, kind protocol.CompletionItemKind, detail, doc string) protocol.CompletionItem {
	ci := protocol.CompletionItem{Label: label, Kind: &kind}
	if detail != "" {
		ci.Detail = ptrString(detail)
	}
	if doc != "" {
		ci.Documentation = doc
	}
	return ci
}
