package utils

import "testing"

func TestMutationGuardScriptsCompile(t *testing.T) {
	// Compile-time smoke test: scripts should be initialized.
	if mutationGuardAcquireScript == nil || mutationGuardReleaseScript == nil {
		t.Fatalf("expected scripts to be initialized")
	}
}
