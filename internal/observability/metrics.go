// Package observability holds application-level Prometheus collectors.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AuthFailuresTotal counts rejected authentication attempts by reason.
	AuthFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "basify_auth_failures_total",
		Help: "Total number of rejected authentication attempts by reason",
	}, []string{"reason"})

	// ConstraintViolationsTotal counts database constraint violations
	// translated into domain errors, by constraint name.
	ConstraintViolationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "basify_constraint_violations_total",
		Help: "Total number of database constraint violations by constraint",
	}, []string{"constraint"})
)
