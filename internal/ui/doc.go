// Package ui renders git command lifecycle events for people reading the console.
package ui
