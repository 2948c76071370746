package pmap

import "fmt"

// --------------------------------------------------------------------------
// Helper Types
// --------------------------------------------------------------------------

type Implementation string

const (
	ImplBucketList Implementation = "bucketlist"
	ImplMapHeap    Implementation = "mapheap"
)

// Numeric is the constraint for priority values. A priority must support
// addition and subtraction of one and a total order.
type Numeric interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Compare defines the ordering of priority values: Compare(a, b) reports
// whether a should sit before b. The first value in that order is the one
// Top and Pop operate on.
type Compare[V Numeric] func(a, b V) bool

// Greater returns a comparator that puts the largest value first (max-map).
func Greater[V Numeric]() Compare[V] {
	return func(a, b V) bool { return a > b }
}

// Less returns a comparator that puts the smallest value first (min-map).
func Less[V Numeric]() Compare[V] {
	return func(a, b V) bool { return a < b }
}

// Feature represents map features as bit flags
type Feature uint64

const (
	FeatureGet      Feature = 1 << iota // Support for Get/GetOrDefault operations
	FeatureSet                          // Support for Set operations
	FeatureStep                         // Support for Increment/Decrement operations
	FeatureTop                          // Support for Top operations
	FeaturePop                          // Support for Pop operations
	FeatureErase                        // Support for Erase operations
	FeatureRange                        // Support for priority-ordered Range iteration
	FeatureValidate                     // Support for internal consistency validation
)

func (f Feature) String() string {
	switch f {
	case FeatureGet:
		return "Get"
	case FeatureSet:
		return "Set"
	case FeatureStep:
		return "Step"
	case FeatureTop:
		return "Top"
	case FeaturePop:
		return "Pop"
	case FeatureErase:
		return "Erase"
	case FeatureRange:
		return "Range"
	case FeatureValidate:
		return "Validate"
	default:
		return "Unknown"
	}
}

// Info describes the state of a map instance.
// It is not guaranteed that all fields are filled in by every implementation.
type Info struct {
	Keys              int            `json:"keys"`              // Number of keys currently present
	Buckets           int            `json:"buckets"`           // Number of distinct priority values
	Impl              Implementation `json:"impl"`              // Implementation identifier
	SupportedFeatures []Feature      `json:"supported_features"`
	Metadata          interface{}    `json:"metadata"`
}

// --------------------------------------------------------------------------
// Interface Definition
// --------------------------------------------------------------------------

// Map is the generic interface for a priority map: an associative container
// that maps keys to numeric priorities while keeping the extreme priority
// (per the configured comparator) accessible in O(1).
//
// Missing-key policy: all write operations (Set, Increment, Decrement) and
// GetOrDefault create an absent key with the configured default value before
// applying themselves. Only Get reports an absent key as an error, so that
// callers can distinguish "never inserted" from "present with the default".
//
// Implementations are single-writer: no operation may be called concurrently
// with a write. Callers that need concurrent access must serialize all calls
// externally.
type Map[K comparable, V Numeric] interface {
	// Get returns the priority of key. It returns an *Error with code
	// RetCKeyNotFound if the key is not present and never auto-inserts.
	Get(key K) (V, error)
	// GetOrDefault returns the priority of key, inserting the key with the
	// configured default value first if it is absent.
	GetOrDefault(key K) V
	// Set moves key to the given priority, inserting it first if absent.
	// Setting the current priority is a no-op.
	Set(key K, value V)
	// Increment raises the priority of key by one, inserting it first if absent.
	Increment(key K)
	// Decrement lowers the priority of key by one, inserting it first if absent.
	Decrement(key K)
	// Top returns the extreme priority and one of the keys holding it.
	// Which key is returned among several with equal priority is not
	// specified and may differ between calls. Returns an *Error with code
	// RetCEmptyMap if no keys are present.
	Top() (K, V, error)
	// Pop removes and returns what Top would return.
	Pop() (K, V, error)
	// Erase removes key wherever it sits and reports whether it was present.
	Erase(key K) bool
	// Contains reports whether key is present. No side effects.
	Contains(key K) bool
	// Size returns the number of keys currently present.
	Size() int
	// Empty reports whether no keys are present.
	Empty() bool
	// Range calls fn for every key-value pair in priority order, extreme
	// first, until fn returns false. Only implementations advertising
	// FeatureRange iterate in priority order.
	Range(fn func(key K, value V) bool)
	// GetInfo returns metadata about the map instance.
	GetInfo() Info
	// SupportsFeature checks if this implementation supports a specific feature
	SupportsFeature(feature Feature) bool
}

// Validator is implemented by maps that can check their own internal
// consistency. It is used by the shared test suite after mutation phases.
type Validator interface {
	// Validate returns a non-nil error if any internal invariant is broken.
	Validate() error
}

// --------------------------------------------------------------------------
// Custom Error Type
// --------------------------------------------------------------------------

// Error is a custom error type that wraps a return code (of type RetCode)
// and an error message.
type Error struct {
	Code RetCode // The return code
	Msg  string  // The error message.
}

// Error implements the error interface.
func (e *Error) Error() string {
	errorCode := ""
	switch e.Code {
	case RetCKeyNotFound:
		errorCode = "KeyNotFound"
	case RetCEmptyMap:
		errorCode = "EmptyMap"
	case RetCUnsupportedOperation:
		errorCode = "UnsupportedOperation"
	default:
		errorCode = "Unknown"
	}

	return fmt.Sprintf("PriorityMapError (code %s): %s", errorCode, e.Msg)
}

// NewError creates a new Error with the given code and message.
func NewError(code RetCode, msg string) *Error {
	return &Error{
		Code: code,
		Msg:  msg,
	}
}

// IsKeyNotFound reports whether err is an *Error with code RetCKeyNotFound.
func IsKeyNotFound(err error) bool {
	e, ok := err.(*Error)
	return ok && e.Code == RetCKeyNotFound
}

// IsEmptyMap reports whether err is an *Error with code RetCEmptyMap.
func IsEmptyMap(err error) bool {
	e, ok := err.(*Error)
	return ok && e.Code == RetCEmptyMap
}

// --------------------------------------------------------------------------
// Return Codes
// --------------------------------------------------------------------------

type RetCode uint64

const (
	RetCSuccess              RetCode = iota // 0: Operation executed successfully.
	RetCKeyNotFound                         // 1: Operation requires an existing key and none exists.
	RetCEmptyMap                            // 2: Extremal read or pop on a map with zero keys.
	RetCUnsupportedOperation                // 3: Operation is not supported by the implementation.
)
