// Package models contains the GORM persistence models of the service.
//
// Domain entities stay free of ORM tags; each model here carries the table
// mapping and converts to and from its entity with ToDomain / FromDomain.
//
//   - base.go: shared columns of tenant-scoped rows
//   - client.go: clients
//   - receivable.go: receivables
//   - reminder_profile.go: reminder profiles (read-only in this service)
//   - subscription.go: tenant subscriptions
//   - email_settings.go: per-tenant SMTP settings
package models
