package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	model ModelChecker
	store StorePinger
}

// New creates a Service. store can be nil for file-backed deployments.
func New(model ModelChecker, store StorePinger) *Service {
	return &Service{model: model, store: store}
}

// Check runs health checks against all components.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	if err := s.model.Check(ctx); err != nil {
		checks["model"] = CheckError
	} else {
		checks["model"] = CheckOK
	}

	if s.store != nil {
		if err := s.store.Ping(ctx); err != nil {
			checks["artifact_store"] = CheckError
		} else {
			checks["artifact_store"] = CheckOK
		}
	}

	status := Healthy
	for _, v := range checks {
		if v == CheckError {
			status = Degraded
			break
		}
	}

	return Report{Status: status, Checks: checks}
}
