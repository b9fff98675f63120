package diag

import (
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
)

// Kind classifies a connection failure so a tailored remediation hint can
// be shown. Classification prefers the driver's typed errors and falls
// back to message matching only for errors the driver surfaces as plain
// strings.
type Kind int

const (
	// KindUnknown is any failure the taxonomy below does not cover.
	KindUnknown Kind = iota
	// KindAuth is a rejected credential.
	KindAuth
	// KindNetwork is a timeout, DNS failure, or refused connection.
	KindNetwork
	// KindAuthMechanism is an unsupported or misconfigured auth mechanism.
	KindAuthMechanism
)

// Server error codes the classifier recognizes.
const (
	codeAuthenticationFailed = 18
	codeMechanismUnavailable = 334
)

// Classify maps a connection error to its Kind.
func Classify(err error) Kind {
	if err == nil {
		return KindUnknown
	}

	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		switch cmdErr.Code {
		case codeAuthenticationFailed:
			return KindAuth
		case codeMechanismUnavailable:
			return KindAuthMechanism
		}
	}

	if mongo.IsTimeout(err) || mongo.IsNetworkError(err) {
		return KindNetwork
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "authentication failed"), strings.Contains(msg, "bad auth"):
		return KindAuth
	case strings.Contains(msg, "mechanism"), strings.Contains(msg, "scram"):
		return KindAuthMechanism
	case strings.Contains(msg, "server selection"),
		strings.Contains(msg, "connection refused"),
		strings.Contains(msg, "no reachable servers"),
		strings.Contains(msg, "timeout"),
		strings.Contains(msg, "no such host"),
		strings.Contains(msg, "dial tcp"):
		return KindNetwork
	}

	return KindUnknown
}

// Hints returns the remediation guidance for the failure kind.
func (k Kind) Hints() []string {
	switch k {
	case KindAuth:
		return []string{
			"Check that the username and password in MONGODB_URI are correct",
			"Make sure the credential is URL-encoded if it contains special characters",
			"Verify the user exists on the authentication database (authSource)",
		}
	case KindNetwork:
		return []string{
			"Check that the host and port in MONGODB_URI are correct",
			"Verify the server is running and reachable from this machine",
			"If this is a hosted cluster, confirm your IP is on the access list",
			"Check for a firewall or VPN blocking the connection",
		}
	case KindAuthMechanism:
		return []string{
			"Check the authMechanism parameter in MONGODB_URI",
			"Verify the server supports the requested mechanism (e.g. SCRAM-SHA-256)",
			"Try removing authMechanism so the driver negotiates one itself",
		}
	default:
		return []string{
			"Check MONGODB_URI for typos",
			"Run again with --verbose for the full driver error",
		}
	}
}
