// Package kernel holds the value objects shared by the kiosk domain model:
//   - UUID: internal storage keys for orders and line items
//   - Money: non-negative decimal amounts used for prices, subtotals and totals
//
// Both are immutable and safe for concurrent use. Their zero values are invalid and
// are rejected by Validate.
package kernel
