package forum_test

import "testing"

// TestHealthEndpoints verifies the liveness and readiness probes.
func TestHealthEndpoints(t *testing.T) {
	client := setupForumContainer(t)

	health, err := client.GetLiveness(t.Context())
	assertHealthy(t, health, err)

	health, err = client.GetReadiness(t.Context())
	assertHealthy(t, health, err)
	if health.Checks == nil || health.Checks.Database != "ok" || health.Checks.Tokens != "ok" {
		t.Fatalf("unexpected readiness checks: %+v", health.Checks)
	}
}
