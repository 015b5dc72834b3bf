// Package utils provides common conversion helpers.
//
// Inventory data is frequently imported from spreadsheets, so numeric columns
// such as age and estimated cost arrive as free text. The helpers here turn
// that text into numbers leniently: malformed input becomes zero instead of an error.
package utils
