package config

import "strings"

const maskedPassword = "****"

// MaskURI replaces the password portion of a connection string so the
// string can be echoed back without leaking the credential. URIs without
// a userinfo section are returned unchanged. The input is never parsed by
// the driver here: half-formed strings must still mask cleanly, because
// masking happens before the connection attempt that would reject them.
func MaskURI(uri string) string {
	schemeEnd := strings.Index(uri, "://")
	if schemeEnd < 0 {
		return uri
	}

	rest := uri[schemeEnd+3:]
	authority := rest
	if slash := strings.Index(rest, "/"); slash >= 0 {
		authority = rest[:slash]
	}

	at := strings.LastIndex(authority, "@")
	if at < 0 {
		return uri
	}

	userinfo := authority[:at]
	colon := strings.Index(userinfo, ":")
	if colon < 0 {
		// Username only, nothing to hide.
		return uri
	}

	return uri[:schemeEnd+3] + userinfo[:colon] + ":" + maskedPassword + rest[at:]
}
