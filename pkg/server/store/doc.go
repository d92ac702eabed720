// Package store provides storage abstractions for the SubStack server.
//
// This package defines one interface per aggregate so that endpoints can be
// tested against mocks and stay decoupled from the database. Every method
// takes the request context; implementations run their queries in a session
// bound to it.
//
// # Available Stores
//
//   - UsersStore: accounts and notification preferences
//   - CategoriesStore: system and custom categories
//   - SubscriptionsStore: subscriptions and their price history
//   - RemindersStore: reminder logs and reminder candidates
//   - HealthStore: database connectivity
//
// # Usage
//
//	subs := gorm.NewSubscriptionsStore(db)
//	sub, err := subs.GetSubscription(ctx, userID, id, false)
//	if err != nil {
//	    if errors.Is(err, store.ErrSubscriptionNotFound) {
//	        // Handle not found
//	    }
//	}
package store
