// Package order provides the Order aggregate of the cafeteria kiosk.
//
// The package includes:
//   - Order: the aggregate root holding identity, tier, status, total and line items
//   - LineItem: a product line with name and unit price copied from the menu
//   - Status: the Queued -> InPreparation -> Ready state machine
//   - Tier: the four fixed priority classes (Accessibility, Expecting, Staff, Standard)
//   - Token: the customer-facing order identifier
//
// Key business rules:
//   - orders start Queued and only move forward; Ready is terminal
//   - MarkReady is accepted from Queued as well as InPreparation
//   - tier, creation time and total never change after creation
package order
