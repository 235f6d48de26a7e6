// Package imageconv handles inline import payloads: data URL decoding,
// conversion of arbitrary source formats to PNG, and dimension probing.
package imageconv
