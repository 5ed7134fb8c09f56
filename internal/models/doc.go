// Package models defines the core domain models for Splitpot.
//
// # Models
//
//   - User: Registered account, referenced by groups and records
//   - Group: A circle of users who share expenses
//   - Expense: One expense paid by a member on behalf of participants
//   - Payment: A settlement payment between two members
//
// # Design Principles
//
//  1. **Immutability**: Expenses are never edited in place. An amendment is
//     recorded as a reversal of the old expense plus a fresh record, so the
//     history always explains the current balances.
//  2. **Exact money**: Every amount is a decimal.Decimal at two decimal
//     places. Binary floating point never carries a monetary value.
//  3. **Avoid circular references**: Relationships use ID strings, not
//     pointers.
//  4. **Derived data is never stored**: Balances and settlement plans are
//     recomputed from the expense/payment history by the ledger package.
package models
