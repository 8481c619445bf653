package metrics

import "sync"

// Default metrics for the identifier service.
// These are initialized by calling Init.
var (
	// IDsIssuedTotal counts Generate outcomes.
	// Labels: outcome (success, saturated, entropy_error)
	IDsIssuedTotal *Counter

	// IDsActive is the number of identifiers issued by the serving generator.
	IDsActive *Gauge

	// SessionsActive is the number of live sessions in the registry.
	SessionsActive *Gauge

	// AdminRequestsTotal counts admin API requests.
	// Labels: method, path, status
	AdminRequestsTotal *Counter
)

var initOnce sync.Once

// Init registers the default metrics on the given registry. Subsequent calls
// are no-ops; the defaults stay bound to the first registry they were
// registered on.
func Init(r *Registry) {
	initOnce.Do(func() {
		IDsIssuedTotal = r.NewCounter(
			"idkit_ids_issued_total",
			"Total identifier generation attempts by outcome.",
			"outcome")
		IDsActive = r.NewGauge(
			"idkit_ids_active",
			"Number of identifiers issued by the serving generator.")
		SessionsActive = r.NewGauge(
			"idkit_sessions_active",
			"Number of live sessions.")
		AdminRequestsTotal = r.NewCounter(
			"idkit_admin_requests_total",
			"Total admin API requests.",
			"method", "path", "status")
	})
}
