// Package signal generates deterministic test signals used to drive and
// measure the chorus.
package signal
