// Package jobscan provides a job-posting scanner. It fetches posting pages,
// strips boilerplate markup, and classifies each posting against keyword
// rules: target role, work model (remote, hybrid, on-site), and whether the
// posting targets Latin America.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, rod/).
package jobscan
