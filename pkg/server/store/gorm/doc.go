// Package gorm provides GORM-based implementations of the store interfaces
// defined in the parent store package.
//
// Every method opens a session with db.WithContext(ctx), so a query is
// cancelled together with the request that issued it. Mutations that touch
// more than one table run inside db.Transaction.
package gorm
