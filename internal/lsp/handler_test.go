package lsp_test

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"nemesis/internal/errors"
	"nemesis/internal/lsp"
)

// recorder collects the diagnostics published through a glsp context.
type recorder struct {
	published []*protocol.PublishDiagnosticsParams
}

func (r *recorder) context() *glsp.Context {
	return &glsp.Context{
		Notify: func(method string, params any) {
			if method == protocol.ServerTextDocumentPublishDiagnostics {
				r.published = append(r.published, params.(*protocol.PublishDiagnosticsParams))
			}
		},
	}
}

func (r *recorder) last(t *testing.T) []protocol.Diagnostic {
	t.Helper()
	require.NotEmpty(t, r.published, "no diagnostics published")
	return r.published[len(r.published)-1].Diagnostics
}

func testdataURI(t *testing.T, name string) string {
	t.Helper()
	absPath, err := filepath.Abs(filepath.Join("testdata", name))
	require.NoError(t, err, "Failed to get absolute path")
	return "file://" + filepath.ToSlash(absPath)
}

func TestTextDocumentSemanticTokensFull(t *testing.T) {
	handler := lsp.NewModelHandler()
	rec := &recorder{}

	params := &protocol.SemanticTokensParams{
		TextDocument: protocol.TextDocumentIdentifier{
			URI: testdataURI(t, "model.yaml"),
		},
	}

	tokens, err := handler.TextDocumentSemanticTokensFull(rec.context(), params)
	require.NoError(t, err, "TextDocumentSemanticTokensFull returned error")
	require.NotNil(t, tokens, "Returned tokens should not be nil")

	// Reading an unopened file checks it too.
	assert.Empty(t, rec.last(t))

	decoded, err := decodeSemanticTokens(tokens.Data)
	require.NoError(t, err, "Failed to decode semantic tokens")
	require.Len(t, decoded, 17)

	assertToken(t, &decoded[0], 1, 1, 7, "property", nil)
	assertToken(t, &decoded[1], 1, 10, 1, "number", nil)
	assertToken(t, &decoded[2], 2, 1, 5, "property", nil)
	assertToken(t, &decoded[3], 3, 3, 11, "property", nil)
	assertToken(t, &decoded[4], 4, 3, 10, "property", nil)
	assertToken(t, &decoded[5], 5, 3, 7, "property", nil)
	assertToken(t, &decoded[6], 6, 7, 4, "property", nil)
	assertToken(t, &decoded[7], 6, 13, 12, "type", nil)
	assertToken(t, &decoded[8], 7, 7, 4, "property", nil)
	assertToken(t, &decoded[9], 7, 13, 5, "variable", []string{"declaration"})
	assertToken(t, &decoded[10], 8, 7, 9, "property", nil)
	assertToken(t, &decoded[11], 8, 18, 3, "function", nil)
	assertToken(t, &decoded[12], 8, 22, 6, "variable", nil)
	assertToken(t, &decoded[13], 9, 7, 11, "property", nil)
	assertToken(t, &decoded[14], 9, 20, 5, "variable", nil)
	assertToken(t, &decoded[15], 10, 7, 10, "property", nil)
	assertToken(t, &decoded[16], 10, 19, 1, "number", nil)
}

func TestCheckModel(t *testing.T) {
	text := "entity_name: id\n" +
		"group_name: grp\n" +
		"metrics:\n" +
		"  - kind: value_metric\n" +
		"    name: late\n" +
		"    expression: days >\n" +
		"    control_for: [region]\n"

	diagnostics := lsp.CheckModel("model.yaml", text)
	require.Len(t, diagnostics, 2)

	assert.Equal(t, &protocol.IntegerOrString{Value: errors.ErrorInvalidExpression}, diagnostics[0].Code)
	assert.Equal(t, &protocol.IntegerOrString{Value: errors.ErrorUnknownReference}, diagnostics[1].Code)
	for _, d := range diagnostics {
		assert.Equal(t, protocol.Range{
			Start: protocol.Position{Line: 4, Character: 10},
			End:   protocol.Position{Line: 4, Character: 14},
		}, d.Range)
		assert.Equal(t, protocol.DiagnosticSeverityError, *d.Severity)
		assert.Equal(t, "nemesis", *d.Source)
	}
	assert.Contains(t, diagnostics[1].Message, "note: referenced by 'late'")
}

func TestCheckModelDiagnostics(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		code     string
		severity protocol.DiagnosticSeverity
		line     protocol.UInteger
		end      protocol.UInteger
	}{
		{"load error", "metrics:\n  - kind: ratio\n", errors.ErrorUnknownKind, protocol.DiagnosticSeverityError, 1, 15},
		{"no position", "group_name: grp\n", errors.ErrorMissingColumn, protocol.DiagnosticSeverityError, 0, 15},
		{"rest of line", "entity_name: id\ngroup_name: grp\ncontrols:\n  - kind: numerical_control\n    name: n\n" +
			"    expression: x\n    num_breaks: 1   # too few\n",
			errors.ErrorModelDecode, protocol.DiagnosticSeverityError, 6, 29},
		{"warning", "entity_name: id\ngroup_name: grp\nmetrics:\n  - {kind: value_metric, name: v, expression: x}\n" +
			"composite_scores:\n  - kind: linear_combination_score\n    name: s\n    terms: [{coeff: 0, metric: v}]\n",
			errors.WarningEmptyCombination, protocol.DiagnosticSeverityWarning, 6, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diagnostics := lsp.CheckModel("model.yaml", tt.text)
			require.Len(t, diagnostics, 1)
			d := diagnostics[0]
			assert.Equal(t, tt.code, d.Code.Value)
			assert.Equal(t, tt.severity, *d.Severity)
			assert.Equal(t, tt.line, d.Range.Start.Line)
			assert.Greater(t, d.Range.End.Character, d.Range.Start.Character)
			if tt.end > 0 {
				assert.Equal(t, tt.end, d.Range.End.Character)
			}
		})
	}
}

func TestDocumentLifecycle(t *testing.T) {
	handler := lsp.NewModelHandler()
	rec := &recorder{}
	ctx := rec.context()
	uri := "file:///tmp/model.yaml"

	require.NoError(t, handler.TextDocumentDidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, LanguageID: "yaml", Text: "entity_name: id\n"},
	}))
	require.Len(t, rec.last(t), 1)
	assert.Equal(t, uri, rec.published[0].URI)

	require.NoError(t, handler.TextDocumentDidChange(ctx, &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: uri},
			Version:                2,
		},
		ContentChanges: []any{protocol.TextDocumentContentChangeEventWhole{Text: "entity_name: id\ngroup_name: grp\n"}},
	}))
	assert.Empty(t, rec.last(t))
	assert.NotNil(t, rec.last(t), "an empty list clears the client's diagnostics")

	require.NoError(t, handler.TextDocumentDidClose(ctx, &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	}))

	// Closed documents are read from disk again.
	_, err := handler.TextDocumentSemanticTokensFull(ctx, &protocol.SemanticTokensParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: "file:///nonexistent/model.yaml"},
	})
	assert.Error(t, err)
}

func TestTextDocumentCompletion(t *testing.T) {
	handler := lsp.NewModelHandler()
	rec := &recorder{}
	ctx := rec.context()
	uri := "file:///tmp/completion.yaml"

	text := "metrics:\n" +
		"  - kind: \n" +
		"    method: \n" +
		"    expression: x\n" +
		"    \n"
	require.NoError(t, handler.TextDocumentDidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, Text: text},
	}))

	complete := func(line, char protocol.UInteger) map[string]protocol.CompletionItemKind {
		result, err := handler.TextDocumentCompletion(ctx, &protocol.CompletionParams{
			TextDocumentPositionParams: protocol.TextDocumentPositionParams{
				TextDocument: protocol.TextDocumentIdentifier{URI: uri},
				Position:     protocol.Position{Line: line, Character: char},
			},
		})
		require.NoError(t, err)
		list, ok := result.(*protocol.CompletionList)
		require.True(t, ok)
		labels := make(map[string]protocol.CompletionItemKind)
		for _, item := range list.Items {
			labels[item.Label] = *item.Kind
		}
		return labels
	}

	kinds := complete(1, 10)
	assert.Len(t, kinds, 12)
	assert.Equal(t, protocol.CompletionItemKindClass, kinds["ratio_metric"])

	methods := complete(2, 12)
	for _, m := range []string{"chi_square", "ks", "custom", "frequent", "normal", "distinct"} {
		assert.Equal(t, protocol.CompletionItemKindEnumMember, methods[m], m)
	}
	assert.Len(t, methods, 6)

	words := complete(3, 16)
	assert.Equal(t, protocol.CompletionItemKindKeyword, words["function"])

	keys := complete(4, 4)
	assert.Equal(t, protocol.CompletionItemKindProperty, keys["expression"])
	assert.Equal(t, protocol.CompletionItemKindProperty, keys["control_for"])
	assert.Equal(t, protocol.CompletionItemKindProperty, keys["entity_name"])
}

type DecodedToken struct {
	Index     int
	Line      uint32
	Char      uint32
	Length    uint32
	Type      string
	Modifiers []string
}

func decodeSemanticTokens(raw []uint32) ([]DecodedToken, error) {
	if len(raw)%5 != 0 {
		return nil, fmt.Errorf("raw token data length %d is not a multiple of 5", len(raw))
	}

	var (
		decoded []DecodedToken
		line    uint32
		char    uint32
	)

	for i := 0; i < len(raw); i += 5 {
		deltaLine := raw[i]
		deltaStart := raw[i+1]
		length := raw[i+2]
		tokenTypeIdx := raw[i+3]
		tokenModMask := raw[i+4]

		if deltaLine == 0 {
			char += deltaStart
		} else {
			line += deltaLine
			char = deltaStart
		}

		var modifiers []string
		for j, name := range lsp.SemanticTokenModifiers {
			if tokenModMask&(1<<j) != 0 {
				modifiers = append(modifiers, name)
			}
		}

		decoded = append(decoded, DecodedToken{
			Index:     i / 5,
			Line:      line + 1, // LSP uses 0-based indexing
			Char:      char + 1, // LSP uses 0-based indexing
			Length:    length,
			Type:      lsp.SemanticTokenTypes[tokenTypeIdx],
			Modifiers: modifiers,
		})
	}

	return decoded, nil
}

func assertToken(t *testing.T, token *DecodedToken, expectedLine, expectedChar, expectedLength uint32, expectedType string, expectedModifiers []string) {
	require.Equal(t, expectedLine, token.Line, "line mismatch (expected line %d)", expectedLine)
	require.Equal(t, expectedChar, token.Char, "char mismatch (expected char %d)", expectedChar)
	require.Equal(t, expectedLength, token.Length, "length mismatch")
	require.Equal(t, expectedType, token.Type, "type mismatch")
	require.ElementsMatch(t, expectedModifiers, token.Modifiers, "modifiers mismatch")
}
