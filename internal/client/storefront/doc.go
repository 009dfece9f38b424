// Package storefront holds the typed storefront resources (catalog, cart,
// discounts, orders, profile, inventory) on top of the authenticated api
// client, plus client-side cart pricing and the checkout flow.
package storefront
