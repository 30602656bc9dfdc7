// Package kerberos provides a Kerberos-backed Credentials implementation
// for clusters that require Kerberos authentication instead of bearer JWTs.
//
// Client provides:
//   - Keytab and krb5.conf loading with environment variable overrides
//   - Hot-reload of the keytab file for rotation without reconnecting
//   - SPNEGO token acquisition against a cluster's service principal
//
// This package does not implement server-side token-sniffing dispatch;
// a client authenticates with exactly one mechanism, chosen at
// construction.
//
// References:
//   - RFC 4178: Simple and Protected GSS-API Negotiation Mechanism (SPNEGO)
//   - RFC 4121: The Kerberos Version 5 GSS-API Mechanism
package kerberos
