// Package kernel provides the identifiers shared across the ordering domain.
//
// The package includes:
//   - SessionID: the opaque conversation identifier taken from the transport's
//     session path ("projects/p/agent/sessions/<id>")
//   - OrderID: the positive integer assigned to an order at finalization
//
// Both are immutable value objects. SessionID carries a constructor guard so a
// zero value can never be mistaken for a real conversation.
package kernel
