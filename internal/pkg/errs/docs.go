// Package errs provides standardized error types for the drone delivery service.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used by the domain model, the use cases and the adapters.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value breaks a domain rule (a polygon with
//     fewer than three vertices, a bearing outside the compass set)
//   - ValueIsOutOfRangeError: For coordinates outside their valid range
//   - ObjectNotFoundError: For when region data or a restaurant cannot be found
//   - VersionIsInvalidError: For stale region snapshots
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel, so errors.Is works
package errs
