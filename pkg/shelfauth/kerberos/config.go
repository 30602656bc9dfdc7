package kerberos

import "time"

// Config configures a Client. It is accepted as a plain struct rather than
// pulled from pkg/shelfconfig to keep this package free of a dependency on
// the behavior/config object graph.
type Config struct {
	// KeytabPath is the path to the client's keytab file.
	KeytabPath string
	// Realm is the Kerberos realm the client principal belongs to.
	Realm string
	// Username is the client principal's name, without realm.
	Username string
	// ServicePrincipal is the target service principal of the cluster,
	// e.g. "shelf/cluster.example.com@EXAMPLE.COM".
	ServicePrincipal string
	// Krb5ConfPath is the path to krb5.conf. Defaults to /etc/krb5.conf.
	Krb5ConfPath string
	// MaxClockSkew is stored on the Client; login and token negotiation do
	// not consult it.
	MaxClockSkew time.Duration
}
