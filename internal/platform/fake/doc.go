// Package fake provides in-memory implementations of the platform
// capabilities. They record every call so tests can assert on the exact
// sequence of compositor operations and on outstanding accessibility
// registrations and handles.
package fake
