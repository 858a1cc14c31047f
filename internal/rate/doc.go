// Package rate implements Redis-counter login throttling: a fixed attempt
// budget per email (and optionally per client IP) with a cooldown TTL.
package rate
