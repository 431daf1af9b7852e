// Package redis implements store.FlagStore on Redis. Each flag is a key whose
// lifetime is enforced by Redis expiry.
package redis
