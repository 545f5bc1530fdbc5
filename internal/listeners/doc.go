// Package listeners holds the built-in event listeners. Importing the package
// registers them as providers "log", "memory" and "metrics" for discovery.
package listeners
