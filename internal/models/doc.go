// Package models defines the core domain models for finledger.
//
// # Ownership
//
// User is the root entity. Income, Expense, Category and BillReminder rows
// each belong to exactly one user, and every query or mutation on them is
// scoped by the owning user id. Deleting a user removes all of their rows.
// An Expense may point at a Category; that link is a weak reference and is
// nulled, not cascaded, when the category is deleted.
//
// # Design principles
//
//  1. IDs are UUID strings assigned by the storage layer.
//  2. Monetary amounts are money.Cents end to end; floats appear only in
//     serialized output.
//  3. Calendar dates (received_date, expense_date, due_date) carry no time
//     component and use the Date type.
//  4. Optional columns are pointer fields so "absent" and "empty" stay
//     distinguishable, matching the nullable columns in storage.
package models
