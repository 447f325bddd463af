// Package order provides the persisted side of an order as seen by the
// ordering core: the tracking Status written when a cart is finalized and read
// back when a customer asks where their order is.
//
// Key business rules:
//   - The core only ever writes InProgress, as the initial tracking record
//   - Later statuses (InTransit, Delivered, Cancelled) are written by the
//     fulfillment process and are only read here
//   - Delivered and Cancelled are terminal
//
// Statuses are stored as their human-readable text ("in progress") so the
// tracking table stays readable for the fulfillment staff who edit it.
package order
