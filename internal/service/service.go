// Package service contains the business logic.
//
// It sits between the handler and repository layers. Every service is built
// around the store capability it is given, never a package level handle.
package service
