// Package cli is responsible for parsing command-line arguments, merging
// them with the optional build manifest, validating user input, and handling
// process-level concerns like exit codes. It translates flags into the
// application's internal configuration.
package cli
