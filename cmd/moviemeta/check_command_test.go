package main

import "testing"

func TestCheckCommandReportsTMDBFailure(t *testing.T) {
	env := setupCLITestEnv(t)

	// The stub server has no /configuration route, so the TMDB check fails
	// while both directories pass.
	out, _, err := runCLI(t, []string{"check"}, env.configPath)
	if err == nil {
		t.Fatal("expected check failure")
	}
	requireContains(t, out, "OK   State directory")
	requireContains(t, out, "OK   Log directory")
	requireContains(t, out, "FAIL TMDB: auth check failed (404)")
}
