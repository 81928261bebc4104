// Package keygen generates SSH deploy key pairs for project repositories.
package keygen
