package trace

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/mgree/smoosh/core/ast"
	"github.com/mgree/smoosh/core/invariant"
	"golang.org/x/crypto/blake2b"
)

var canonical = func() cbor.EncMode {
	em, err := cbor.CoreDetEncOptions().EncMode()
	invariant.ExpectNoError(err, "core deterministic CBOR options")
	return em
}()

// Digest returns the BLAKE2b-256 digest of v's core deterministic CBOR
// encoding. v is a generic JSON value (maps, slices, strings, numbers), so
// two values digest equal exactly when they are structurally equal, with map
// key order ignored.
func Digest(v any) ([32]byte, error) {
	b, err := canonical.Marshal(v)
	if err != nil {
		return [32]byte{}, fmt.Errorf("canonical encoding: %w", err)
	}
	return blake2b.Sum256(b), nil
}

// emptyEnv is the digest of {}, the environment before the first step.
var emptyEnv = func() [32]byte {
	d, err := Digest(map[string]any{})
	invariant.ExpectNoError(err, "digest of empty environment")
	return d
}()

// EmptyEnv returns the environment snapshot before any step ran.
func EmptyEnv() Env {
	return Env{Vars: map[string]ast.SymbolicString{}, Digest: emptyEnv}
}
