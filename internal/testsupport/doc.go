// Package testsupport provides shared fixtures for package tests: configs
// rooted in per-test temp directories, an opened store with cleanup, and
// quick item insertion.
package testsupport
