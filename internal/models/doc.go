// Package models defines the core domain models for billsplit.
//
// # Models
//
//   - User: registered account that owns bills
//   - Bill: a named collection of priced items with shared service/tax/discount settings
//   - BillItem: one line on a bill, optionally assigned to named participants
//   - ItemAssignment: one unit of an item owed by one participant
//
// Participants are identified by name strings. Only the bill owner is a User.
//
// # Design Principles
//
// 1. **Relationships by ID**: children carry their parent's ID string, never a pointer
// 2. **Timestamps as Unix seconds**: CreatedAt/UpdatedAt are int64
// 3. **Enumerations live here**: currencies and visibilities are validated in one place
//    so the RPC layer and the command interpreter agree on the accepted values
package models
