// Package kernel holds the value objects shared by the sales domain model:
// the UUID identifier and the Money amount.
//
// Both are immutable. Their zero values are invalid and fail Validate.
package kernel
