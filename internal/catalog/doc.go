// Package catalog reads the tab-separated box list and keeps the loaded boxes
// available to the matcher. Each box carries its outer and inner dimensions;
// Records picks the side that is relevant for a given fit mode.
package catalog
