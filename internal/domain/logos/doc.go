// Package logos holds the team logo models shared by the fetcher and the
// mapping updater.
package logos
