// Package lib groups small libraries that do not belong to a single layer.
package lib
