// Package database starts, reaches and initializes the development database of a
// generated project.
package database
