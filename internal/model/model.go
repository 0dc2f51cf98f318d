// Package model holds the persisted entities and the small value types the
// layers pass between each other.
package model
