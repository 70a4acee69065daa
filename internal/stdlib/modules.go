package stdlib

import (
	"slices"
)

// Category groups component kinds by the model list they belong to
type Category string

const (
	Control        Category = "control"
	Metric         Category = "metric"
	CompositeScore Category = "composite_score"
)

// Component kind ids, as written in model files
const (
	FactorControl    = "factor_control"
	NumericalControl = "numerical_control"

	ValueMetric            = "value_metric"
	EntropyMetric          = "entropy_metric"
	RatioMetric            = "ratio_metric"
	DistributionMetric     = "distribution_metric"
	UniqueDiscreteMetric   = "unique_discrete_metric"
	UniqueContinuousMetric = "unique_continuous_metric"
	GraphDensityMetric     = "graph_density_metric"

	LinearCombinationScore  = "linear_combination_score"
	CustomScore             = "custom_score"
	PrincipalComponentScore = "principal_component_score"
)

// ComponentDefinition defines a standard model component
type ComponentDefinition struct {
	ID          string            // Kind id (e.g., "ratio_metric")
	Name        string            // Display name (e.g., "Ratio")
	Description string            // One-line description
	Category    Category          // Model list the component belongs to
	Fields      []FieldDefinition // Fields besides kind, name and description
}

// FieldType is the value type of a component field
type FieldType string

const (
	Expression FieldType = "expression" // R expression source
	Symbol     FieldType = "name"       // assignable R name
	Text       FieldType = "text"
	Bool       FieldType = "bool"
	Float      FieldType = "float"
	Int        FieldType = "int"
	Enum       FieldType = "enum"
	Strings    FieldType = "strings"
	Numbers    FieldType = "numbers"
	Object     FieldType = "object"
	Objects    FieldType = "objects"
)

// FieldDefinition defines one field of a component
type FieldDefinition struct {
	Name   string    // Key in the model file
	Type   FieldType // Value type
	Values []string  // Allowed values of an Enum field, default first
	Doc    string    // Short description
}

// CommonFields are accepted by every component kind
var CommonFields = []FieldDefinition{
	NewField("kind", Symbol, "Component kind id"),
	NewField("name", Symbol, "R name the component is bound to"),
	NewField("description", Text, "Free text shown to model authors"),
}

// Helper function for creating field definitions
func NewField(name string, typ FieldType, doc string) FieldDefinition {
	return FieldDefinition{Name: name, Type: typ, Doc: doc}
}

func NewEnumField(name, doc string, values ...string) FieldDefinition {
	return FieldDefinition{Name: name, Type: Enum, Values: values, Doc: doc}
}

var controlFor = NewField("control_for", Strings, "Controls the metric is adjusted for")

// GetStandardComponents returns all built-in model component kinds
func GetStandardComponents() map[string]*ComponentDefinition {
	defs := []*ComponentDefinition{
		// Controls
		{
			ID:          FactorControl,
			Name:        "Categorical",
			Description: "Control for a categorical variable",
			Category:    Control,
			Fields: []FieldDefinition{
				NewField("expression", Expression, "Grouping expression"),
			},
		},
		{
			ID:          NumericalControl,
			Name:        "Numerical",
			Description: "Control for a numerical variable",
			Category:    Control,
			Fields: []FieldDefinition{
				NewField("expression", Expression, "Numerical expression to bin"),
				NewField("auto_breaks", Bool, "Choose break points automatically"),
				NewField("num_breaks", Int, "Number of automatic breaks, at least 2"),
				NewField("breaks", Numbers, "Explicit break points"),
				NewField("closed_on_left", Bool, "Bins include their left end"),
				NewField("labels", Strings, "Bin labels, one fewer than the breaks"),
			},
		},

		// Metrics
		{
			ID:          ValueMetric,
			Name:        "Simple value",
			Description: "Compute a simple expression (boolean or numerical)",
			Category:    Metric,
			Fields: []FieldDefinition{
				NewField("expression", Expression, "Value expression"),
				controlFor,
			},
		},
		{
			ID:          EntropyMetric,
			Name:        "Entropy",
			Description: "Compute entropy of groups",
			Category:    Metric,
			Fields: []FieldDefinition{
				NewField("expression", Expression, "Discrete expression"),
				NewEnumField("method", "Entropy estimate", "frequent", "normal"),
				controlFor,
			},
		},
		{
			ID:          RatioMetric,
			Name:        "Ratio",
			Description: "Compute the ratio between two numerical values",
			Category:    Metric,
			Fields: []FieldDefinition{
				NewField("numerator", Expression, "Numerator expression"),
				NewField("denominator", Expression, "Denominator expression"),
				NewField("log_transform", Bool, "Apply log1p to the ratio"),
				NewField("cap_below", Object, "Lower cap: at, with"),
				NewField("cap_above", Object, "Upper cap: at, with"),
				NewField("replace_zero", Float, "Replacement for zeros"),
				NewField("replace_inf", Float, "Replacement for infinities"),
				NewField("replace_na", Float, "Replacement for missing values"),
				controlFor,
			},
		},
		{
			ID:          DistributionMetric,
			Name:        "Statistic",
			Description: "Compute statistics of the group and population data",
			Category:    Metric,
			Fields: []FieldDefinition{
				NewField("expression", Expression, "Sample expression"),
				NewEnumField("method", "Test statistic", "chi_square", "ks", "custom"),
				NewField("custom_function", Symbol, "R function used by the custom statistic"),
				controlFor,
			},
		},
		{
			ID:          UniqueDiscreteMetric,
			Name:        "Unique (Discrete)",
			Description: "Compute the ratio of unique values in each group",
			Category:    Metric,
			Fields: []FieldDefinition{
				NewField("expression", Expression, "Discrete expression"),
				NewEnumField("method", "Uniqueness measure", "distinct", "frequent"),
				controlFor,
			},
		},
		{
			ID:          UniqueContinuousMetric,
			Name:        "Unique (Continuous)",
			Description: "Compute the ratio of coefficients of variance in each group",
			Category:    Metric,
			Fields: []FieldDefinition{
				NewField("expression", Expression, "Continuous expression"),
				controlFor,
			},
		},
		{
			ID:          GraphDensityMetric,
			Name:        "Graph Density",
			Description: "Compute the density of the links between values within each group",
			Category:    Metric,
			Fields: []FieldDefinition{
				NewField("expression", Expression, "Link expression"),
				controlFor,
			},
		},

		// Composite scores
		{
			ID:          LinearCombinationScore,
			Name:        "Simple linear combination",
			Description: "A manually specified linear combination",
			Category:    CompositeScore,
			Fields: []FieldDefinition{
				NewField("terms", Objects, "Terms: coeff, metric"),
			},
		},
		{
			ID:          CustomScore,
			Name:        "Custom score",
			Description: "A score computed by an arbitrary expression",
			Category:    CompositeScore,
			Fields: []FieldDefinition{
				NewField("expression", Expression, "Score expression"),
			},
		},
		{
			ID:          PrincipalComponentScore,
			Name:        "Principal component analysis",
			Description: "A composite score using principal component analysis",
			Category:    CompositeScore,
			Fields: []FieldDefinition{
				NewField("top_percent", Float, "Share of top components kept"),
				NewField("top_count", Int, "Number of top components kept"),
				NewField("is_percent", Bool, "Use top_percent rather than top_count"),
			},
		},
	}

	components := make(map[string]*ComponentDefinition, len(defs))
	for _, d := range defs {
		components[d.ID] = d
	}
	return components
}

// IsKnownKind checks if id is a standard component kind
func IsKnownKind(id string) bool {
	_, exists := GetStandardComponents()[id]
	return exists
}

// GetComponentDefinition returns the definition for a component kind
func GetComponentDefinition(id string) *ComponentDefinition {
	return GetStandardComponents()[id]
}

// Kinds returns the sorted kind ids of a category. An empty category
// returns every kind.
func Kinds(category Category) []string {
	var ids []string
	for id, d := range GetStandardComponents() {
		if category == "" || d.Category == category {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}

// Field returns the named field of the component, common fields included
func (d *ComponentDefinition) Field(name string) (FieldDefinition, bool) {
	for _, f := range CommonFields {
		if f.Name == name {
			return f, true
		}
	}
	for _, f := range d.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldDefinition{}, false
}

// FieldNames returns the keys accepted by the component, common fields first
func (d *ComponentDefinition) FieldNames() []string {
	names := make([]string, 0, len(CommonFields)+len(d.Fields))
	for _, f := range CommonFields {
		names = append(names, f.Name)
	}
	for _, f := range d.Fields {
		names = append(names, f.Name)
	}
	return names
}
