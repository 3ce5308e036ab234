package rest

const (
	// api
	RouteApiV1 = "/api/v1"

	RoutePatients             = RouteApiV1 + "/patients"
	RoutePatient              = RoutePatients + "/:patient_id"
	RoutePatientsCreatedAfter = RoutePatients + "/createdAfter"

	// ops
	RouteHealth  = RouteApiV1 + "/healthz"
	RouteMetrics = RouteApiV1 + "/metrics"
	RouteSwagger = "/swagger/*any"
)
