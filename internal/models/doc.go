// Package models defines the core domain entities for splitledger.
//
// # Entities
//
//   - User: registered account with a ledger currency
//   - Friend: a user's contact, referenced by expenses as a participant
//   - Expense: a shared expense with its per-participant shares
//   - DebtObligation: one directed debt derived from an expense
//   - BillScan: best-effort OCR extraction used to seed a split request
//
// # Ownership
//
// An Expense owns its DebtObligations: they are created together in one
// atomic write and deleted together in cascade. Nothing else mutates an
// obligation except the pending -> settled status transition.
//
// # Design principles
//
//  1. Amounts are money.Money (integer minor units), never floats
//  2. Participants are identifiers; name resolution is presentation
//  3. Use ID strings instead of pointers for relationships
package models
