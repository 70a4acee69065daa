package stdlib

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetStandardComponents(t *testing.T) {
	components := GetStandardComponents()

	// Verify every category is populated
	assert.Len(t, Kinds(Control), 2)
	assert.Len(t, Kinds(Metric), 7)
	assert.Len(t, Kinds(CompositeScore), 3)
	assert.Len(t, components, 12)

	// Verify ratio metric details
	ratio := components[RatioMetric]
	require.NotNil(t, ratio, "ratio_metric should exist")
	assert.Equal(t, "Ratio", ratio.Name)
	assert.Equal(t, Metric, ratio.Category)

	field, ok := ratio.Field("cap_below")
	assert.True(t, ok, "ratio_metric should have cap_below")
	assert.Equal(t, Object, field.Type)

	// Verify enum values, default first
	dist := components[DistributionMetric]
	method, ok := dist.Field("method")
	require.True(t, ok)
	assert.Equal(t, Enum, method.Type)
	assert.Equal(t, []string{"chi_square", "ks", "custom"}, method.Values)

	// Ids are the map keys
	for id, d := range components {
		assert.Equal(t, id, d.ID)
	}
}

func TestIsKnownKind(t *testing.T) {
	assert.True(t, IsKnownKind("factor_control"), "factor_control should be known")
	assert.True(t, IsKnownKind("graph_density_metric"), "graph_density_metric should be known")
	assert.True(t, IsKnownKind("principal_component_score"), "principal_component_score should be known")
	assert.False(t, IsKnownKind("ratio"), "ratio should not be known")
}

func TestGetComponentDefinition(t *testing.T) {
	score := GetComponentDefinition(LinearCombinationScore)
	assert.NotNil(t, score, "Should return linear combination definition")
	assert.Equal(t, CompositeScore, score.Category)

	unknown := GetComponentDefinition("unknown_metric")
	assert.Nil(t, unknown, "Should return nil for unknown kind")
}

func TestKinds(t *testing.T) {
	assert.Equal(t, []string{"factor_control", "numerical_control"}, Kinds(Control))
	assert.Len(t, Kinds(""), 12)
}

func TestFieldNames(t *testing.T) {
	names := GetComponentDefinition(FactorControl).FieldNames()
	assert.Equal(t, []string{"kind", "name", "description", "expression"}, names)

	_, ok := GetComponentDefinition(FactorControl).Field("control_for")
	assert.False(t, ok, "controls cannot be controlled for")
}
