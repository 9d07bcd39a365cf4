package cgerrors

// Code is a machine-readable error code identifying the failure category.
type Code string

const (
	// CodeSourceMissing indicates a named source was not provided to Run.
	CodeSourceMissing Code = "SOURCE_MISSING"
	// CodeSourceIO indicates a failure reading a source (file open/read).
	CodeSourceIO Code = "SOURCE_IO"
	// CodeSourceParse indicates a source record could not be decoded.
	CodeSourceParse Code = "SOURCE_PARSE"
	// CodeKeyMissing indicates a row was missing a column required by an
	// operator (key projection, mapper/reducer field access).
	CodeKeyMissing Code = "KEY_MISSING"
	// CodeTypeMismatch indicates two values compared or combined were of
	// incompatible kinds.
	CodeTypeMismatch Code = "TYPE_MISMATCH"
	// CodeSortIO indicates a failure spilling or reading back a sort run.
	CodeSortIO Code = "SORT_IO"
	// CodeReducerError indicates a Reducer implementation returned an error.
	CodeReducerError Code = "REDUCER_ERROR"
	// CodeMapperError indicates a Mapper implementation returned an error.
	CodeMapperError Code = "MAPPER_ERROR"
	// CodeJoinerError indicates a Joiner implementation returned an error.
	CodeJoinerError Code = "JOINER_ERROR"
	// CodeInvalidConfig indicates a configuration or CLI flag value failed
	// validation before the graph was ever run.
	CodeInvalidConfig Code = "INVALID_CONFIG"
)
