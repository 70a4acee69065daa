package program

import (
	"bytes"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nemesis/internal/ast"
	"nemesis/internal/model"
)

func testModel() *model.Model {
	m := model.New()
	m.EntityName = "id"
	m.GroupName = "grp"
	m.Metrics = []model.Metric{model.NewValueMetric("late", "days > 30")}
	return m
}

func TestBuildGolden(t *testing.T) {
	input, err := FileInput("data.xlsx")
	require.NoError(t, err)

	prog, err := Build(testModel(), Options{Input: input, OutputDB: SQLiteOutput("out.db")})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, prog))

	g := goldie.New(t)
	g.Assert(t, "xlsx_sqlite", buf.Bytes())
}

func TestBuildWithoutInput(t *testing.T) {
	prog, err := Build(testModel(), Options{})
	require.NoError(t, err)
	require.Len(t, prog.Body, 2)

	out, err := Render(prog)
	require.NoError(t, err)
	assert.Contains(t, out, "library(NemesisOutliers)\n\n# Configure model")
	assert.NotContains(t, out, "run_model")
}

func TestBuildLoadsEachLibraryOnce(t *testing.T) {
	input := ast.WithLibraries(ast.NewCall(ast.NewName("read_data"), ast.String("x")), "DBI", "NemesisOutliers")

	prog, err := Build(testModel(), Options{Input: input, OutputDB: SQLiteOutput("out.db")})
	require.NoError(t, err)

	loads, ok := prog.Body[0].(*ast.Block)
	require.True(t, ok)
	rendered, err := ast.Render(loads, 0)
	require.NoError(t, err)
	assert.Equal(t, "library(NemesisOutliers)\nlibrary(DBI)\nlibrary(RSQLite)", rendered)
}

func TestBuildWithoutOutput(t *testing.T) {
	prog, err := Build(testModel(), Options{Input: ast.String("data.csv")})
	require.NoError(t, err)

	out, err := Render(prog)
	require.NoError(t, err)
	assert.Contains(t, out, "run_model(input = 'data.csv',\n          store_input = TRUE)")
}

func TestFileInput(t *testing.T) {
	for _, path := range []string{"a.csv", "b.TSV", "c.tab", "d.txt"} {
		n, err := FileInput(path)
		require.NoError(t, err, path)
		assert.True(t, ast.Equal(ast.String(path), n), path)
	}

	n, err := FileInput("sheet.xls")
	require.NoError(t, err)
	libs, err := ast.FindLibraries(n)
	require.NoError(t, err)
	assert.Equal(t, []string{"xlsx"}, libs)

	_, err = FileInput("data.parquet")
	assert.ErrorContains(t, err, ".parquet")
}

func TestSQLiteOutput(t *testing.T) {
	libs, err := ast.FindLibraries(SQLiteOutput("x.db"))
	require.NoError(t, err)
	assert.Equal(t, []string{"DBI", "RSQLite"}, libs)
}
