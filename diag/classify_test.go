package diag_test

import (
	"errors"
	"fmt"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"

	"mongocheck/diag"
)

func TestClassify_TypedAuthError(t *testing.T) {
	err := mongo.CommandError{Code: 18, Message: "Authentication failed."}
	if kind := diag.Classify(err); kind != diag.KindAuth {
		t.Errorf("expected KindAuth, got %v", kind)
	}
}

func TestClassify_WrappedTypedError(t *testing.T) {
	err := fmt.Errorf("failed to ping MongoDB: %w",
		mongo.CommandError{Code: 18, Message: "Authentication failed."})
	if kind := diag.Classify(err); kind != diag.KindAuth {
		t.Errorf("expected KindAuth through the wrap, got %v", kind)
	}
}

func TestClassify_TypedMechanismError(t *testing.T) {
	err := mongo.CommandError{Code: 334, Message: "Unsupported mechanism"}
	if kind := diag.Classify(err); kind != diag.KindAuthMechanism {
		t.Errorf("expected KindAuthMechanism, got %v", kind)
	}
}

func TestClassify_SubstringFallbacks(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want diag.Kind
	}{
		{
			name: "server selection timeout",
			err:  errors.New("server selection error: context deadline exceeded, current topology: { Type: Unknown }"),
			want: diag.KindNetwork,
		},
		{
			name: "connection refused",
			err:  errors.New("connection() error occurred during connection handshake: dial tcp 127.0.0.1:27017: connect: connection refused"),
			want: diag.KindNetwork,
		},
		{
			name: "dns failure",
			err:  errors.New("error parsing uri: lookup db.internal: no such host"),
			want: diag.KindNetwork,
		},
		{
			name: "atlas bad auth",
			err:  errors.New("connection() error occurred during connection handshake: auth error: sasl conversation error: unable to authenticate using mechanism \"SCRAM-SHA-1\": (AtlasError) bad auth : authentication failed"),
			want: diag.KindAuth,
		},
		{
			name: "mechanism mismatch",
			err:  errors.New("unable to authenticate: requested mechanism MONGODB-CR is not supported"),
			want: diag.KindAuthMechanism,
		},
		{
			name: "unclassified",
			err:  errors.New("something unexpected happened"),
			want: diag.KindUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if kind := diag.Classify(tt.err); kind != tt.want {
				t.Errorf("Classify(%v) = %v, want %v", tt.err, kind, tt.want)
			}
		})
	}
}

func TestClassify_NilError(t *testing.T) {
	if kind := diag.Classify(nil); kind != diag.KindUnknown {
		t.Errorf("expected KindUnknown for nil, got %v", kind)
	}
}

func TestHints_AlwaysPresent(t *testing.T) {
	kinds := []diag.Kind{diag.KindUnknown, diag.KindAuth, diag.KindNetwork, diag.KindAuthMechanism}
	for _, kind := range kinds {
		if len(kind.Hints()) == 0 {
			t.Errorf("kind %v has no hints", kind)
		}
	}
}
