// Package cart provides the in-progress order a conversation is building and
// the algebra used to change it.
//
// The package includes:
//   - Cart: item name to quantity, never holding a non-positive quantity
//   - Delta: a validated batch of (item, quantity) changes
//   - Line: one (item, quantity) pair, the unit both of the above expose
//
// Key business rules:
//   - Merge adds quantities and never removes an entry
//   - Merge is commutative and associative: {A:2} then {A:3} equals {A:5}
//   - Subtract is all-or-nothing: if any item is missing or short, the cart is
//     left exactly as it was and the first offending line is reported
//   - An entry whose quantity reaches zero is deleted, never stored as 0
//
// Cart is not safe for concurrent use; callers serialize access per session
// (see ports.CartStore).
package cart
