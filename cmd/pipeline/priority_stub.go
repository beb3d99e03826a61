//go:build !linux && !darwin

package main

// setNice is a no-op on platforms without setpriority.
func setNice(int) {}
