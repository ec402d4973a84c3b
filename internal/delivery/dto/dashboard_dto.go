package dto

// WardBedsResponse reports bed counters for one ward.
type WardBedsResponse struct {
	Total    int `json:"total"`
	Occupied int `json:"occupied"`
	Free     int `json:"free"`
}

// BedsResponse reports the summed counters plus the per-ward breakdown.
type BedsResponse struct {
	Total    int                         `json:"total"`
	Occupied int                         `json:"occupied"`
	Free     int                         `json:"free"`
	Wards    map[string]WardBedsResponse `json:"wards"`
}

// PatientStatusResponse is the severity breakdown of admitted patients.
type PatientStatusResponse struct {
	Normal   int64 `json:"normal"`
	Serious  int64 `json:"serious"`
	Critical int64 `json:"critical"`
}

// DashboardStatsResponse is the aggregator snapshot rendered by every
// role dashboard.
type DashboardStatsResponse struct {
	Patients           int64                 `json:"patients"`
	Doctors            int64                 `json:"doctors"`
	Medicines          int64                 `json:"medicines"`
	ActiveAppointments int64                 `json:"active_appointments"`
	Beds               BedsResponse          `json:"beds"`
	PatientStatus      PatientStatusResponse `json:"patient_status"`
}
