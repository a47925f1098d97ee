// Package render draws Klondike boards as text for terminals and tool output.
package render
