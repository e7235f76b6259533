// Package simulation provides a multi-session test harness for validating
// emergent properties of the interaction pipeline.
//
// Scenarios exercise the real roster provisioner, probability model,
// timeline generator, and graph analyzer with no mocks. A scenario builds
// a roster, runs a configurable number of sessions under a seeded RNG,
// and captures the resulting records for property-based assertions.
//
// Usage:
//
//	func TestGroupWorkDensity(t *testing.T) {
//	    r := simulation.NewRunner(t)
//	    result := r.Run(simulation.Scenario{
//	        Name:           "group-work-density",
//	        SessionType:    models.SessionGroupWork,
//	        SyntheticCount: 12,
//	        Sessions:       10,
//	        Seed:           42,
//	    })
//	    simulation.AssertMetricsBounded(t, result)
//	}
package simulation
