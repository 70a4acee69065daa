package lsp

import (
	stderrors "errors"
	"strings"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"nemesis/internal/errors"
	"nemesis/internal/model"
	"nemesis/internal/parser"
)

const source = "nemesis"

// CheckModel loads and validates the model text and converts every error
// and warning into a diagnostic. Errors without a position are reported
// on the first line.
func CheckModel(path, text string) []protocol.Diagnostic {
	lines := strings.Split(text, "\n")

	m, err := model.LoadString(path, text)
	if err != nil {
		return ConvertErrors(err, lines)
	}

	diagnostics := ConvertErrors(m.Validate(parser.Validator{}), lines)
	for _, w := range m.Lint() {
		diagnostics = append(diagnostics, convert(w, lines))
	}
	return diagnostics
}

// ConvertErrors transforms joined compiler errors into LSP diagnostics.
func ConvertErrors(err error, lines []string) []protocol.Diagnostic {
	var diagnostics []protocol.Diagnostic
	for _, e := range errors.Flatten(err) {
		var ce *errors.CompilerError
		if !stderrors.As(e, &ce) {
			ce = &errors.CompilerError{Level: errors.Error, Message: e.Error()}
		}
		diagnostics = append(diagnostics, convert(ce, lines))
	}
	return diagnostics
}

func convert(ce *errors.CompilerError, lines []string) protocol.Diagnostic {
	// Convert to 0-based indexing
	line := uint32(max(ce.Position.Line-1, 0))
	start := uint32(max(ce.Position.Column-1, 0))

	// Without a length, mark the rest of the line.
	end := start + uint32(ce.Length)
	if ce.Length == 0 {
		end = start + 1
		if int(line) < len(lines) {
			end = max(end, uint32(len(strings.TrimRight(lines[line], " \r"))))
		}
	}

	severity := protocol.DiagnosticSeverityError
	if ce.Level == errors.Warning {
		severity = protocol.DiagnosticSeverityWarning
	}

	message := ce.Message
	for _, note := range ce.Notes {
		message += "\nnote: " + note
	}
	for _, s := range ce.Suggestions {
		message += "\nhelp: " + s.Message
	}
	if ce.HelpText != "" {
		message += "\nhelp: " + ce.HelpText
	}

	d := protocol.Diagnostic{
		Range: protocol.Range{
			Start: protocol.Position{Line: line, Character: start},
			End:   protocol.Position{Line: line, Character: end},
		},
		Severity: ptrSeverity(severity),
		Source:   ptrString(source),
		Message:  message,
	}
	if ce.Code != "" {
		d.Code = &protocol.IntegerOrString{Value: ce.Code}
	}
	return d
}
