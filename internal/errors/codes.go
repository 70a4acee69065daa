package errors

// Error codes for the nemesis compiler
// These codes are used in error messages and diagnostics
// to provide consistent error identification across the toolchain.
//
// Error code ranges:
// E0001-E0099: IR construction and rendering errors
// E0100-E0199: R syntax errors
// E0200-E0299: Model validation errors
// E0300-E0399: Model file errors
// E0800-E0899: Warning codes

const (
	// E0001: A node violates a structural invariant at render time
	ErrorMalformedNode = "E0001"

	// E0002: The printer has no rendering for the node
	ErrorUnknownNodeType = "E0002"

	// E0003: Operator reduction over an empty list without a default
	ErrorEmptyReduce = "E0003"

	// E0004: 'libraries' metadata is not a list of strings
	ErrorInvalidLibraryMetadata = "E0004"

	// E0005: Constant payload is not a bool, integer, float, complex or string
	ErrorUnsupportedConstant = "E0005"

	// Syntax errors (E0100-E0199)

	// E0100: Source text does not parse as a single R expression
	ErrorSyntax = "E0100"

	// E0101: Operator has no meaning at this position
	ErrorUnsupportedOperator = "E0101"

	// E0102: Reserved word used where a value is expected
	ErrorReservedWord = "E0102"

	// E0103: Numeric or string literal cannot be decoded
	ErrorInvalidLiteral = "E0103"

	// Model validation errors (E0200-E0299)

	// E0200: Entity or group column not set
	ErrorMissingColumn = "E0200"

	// E0201: Name is not an assignable R name
	ErrorInvalidName = "E0201"

	// E0202: Two model objects share a name
	ErrorDuplicateName = "E0202"

	// E0203: Expression rejected by the expression validator
	ErrorInvalidExpression = "E0203"

	// E0204: Numerical control has the wrong number of labels
	ErrorLabelCount = "E0204"

	// E0205: Reference to a control or metric that does not exist
	ErrorUnknownReference = "E0205"

	// Model file errors (E0300-E0399)

	// E0300: Component kind is not registered
	ErrorUnknownKind = "E0300"

	// E0301: Model file written by a newer version
	ErrorUnsupportedVersion = "E0301"

	// E0302: Model file cannot be decoded
	ErrorModelDecode = "E0302"

	// Warning codes (E0800-E0899)

	// E0800: Linear combination has no non-zero terms
	WarningEmptyCombination = "E0800"
)

// GetErrorDescription returns a human-readable description of the error code
func GetErrorDescription(code string) string {
	switch code {
	case ErrorMalformedNode:
		return "Node violates a structural invariant"
	case ErrorUnknownNodeType:
		return "Node type has no renderer"
	case ErrorEmptyReduce:
		return "Empty operator reduction without a default value"
	case ErrorInvalidLibraryMetadata:
		return "Library metadata must be a list of strings"
	case ErrorUnsupportedConstant:
		return "Constant payload type is not supported"
	case ErrorSyntax:
		return "Text is not a single valid R expression"
	case ErrorUnsupportedOperator:
		return "Operator is not supported here"
	case ErrorReservedWord:
		return "Reserved word used as a value"
	case ErrorInvalidLiteral:
		return "Literal cannot be decoded"
	case ErrorMissingColumn:
		return "Entity or group column is not defined"
	case ErrorInvalidName:
		return "Name is not an assignable R name"
	case ErrorDuplicateName:
		return "Duplicate name among metrics, controls, and scores"
	case ErrorInvalidExpression:
		return "Expression is not valid R"
	case ErrorLabelCount:
		return "Incorrect number of labels for numerical control"
	case ErrorUnknownReference:
		return "Reference to an undefined control or metric"
	case ErrorUnknownKind:
		return "Unknown model component kind"
	case ErrorUnsupportedVersion:
		return "Model file created by a newer version"
	case ErrorModelDecode:
		return "Model file cannot be decoded"
	case WarningEmptyCombination:
		return "Linear combination has no non-zero terms"
	default:
		return "Unknown error code"
	}
}

// IsWarning returns true if the error code represents a warning rather than an error
func IsWarning(code string) bool {
	return code >= "E0800" && code < "E0900" || (code != "" && code[0] == 'W')
}

// GetErrorCategory returns the category of the error based on its code
func GetErrorCategory(code string) string {
	switch {
	case code >= "E0001" && code < "E0100":
		return "Compiler"
	case code >= "E0100" && code < "E0200":
		return "Syntax"
	case code >= "E0200" && code < "E0300":
		return "Model"
	case code >= "E0300" && code < "E0400":
		return "Model File"
	case code >= "E0800" && code < "E0900":
		return "Warning"
	default:
		return "Unknown"
	}
}
