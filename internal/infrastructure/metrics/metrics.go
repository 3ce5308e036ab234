package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	AppRequestsTotal     = "app_requests_total"
	PatientCreatedTotal  = "patient_created_total"
	PatientUpdatedTotal  = "patient_updated_total"
	PatientPatchedTotal  = "patient_patched_total"
	PatientDeletedTotal  = "patient_deleted_total"
	PatientConflictTotal = "patient_conflict_total"
)

func NewCounter() *prometheus.CounterVec {
	return promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "patientrecords",
			Name:      "general_counters",
		},
		[]string{"result"})
}
