// Package models contains GORM-specific persistence models that map to database tables.
//
// Two persistence styles coexist in this codebase. Simple aggregates
// (tenants, contractors, fleet, recurring templates) carry their GORM
// tags directly and are stored as-is by their repositories. The two
// aggregates with the richest shapes, transport orders and invoices,
// go through the explicit models in this package instead: their route,
// cargo, exchange rate and line structures are flattened to columns
// here, keeping the domain types free of the mapping details.
//
// Structure:
// - base.go: shared persistence bases (BaseModel, TenantAggregateModel)
// - order.go: transport order mapping
// - invoicing.go: invoice and invoice line mapping
// - outbox.go: outbox pattern model for transactional event delivery
package models
