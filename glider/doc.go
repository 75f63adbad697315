// Package glider fetches oceanographic glider data from ERDDAP servers.
// It wraps the erddap tabledap client with catalog discovery, per-server
// column standardization, and multi-dataset fetching.
package glider
