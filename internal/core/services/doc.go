// Package services contains the core application logic implementing
// the driving ports. Services orchestrate parsing, retrieval and
// evaluation over the driven ports without knowing which adapters
// back them.
package services
