package attendance

import "time"

// DefaultVerificationMethod is used when a claim names no method.
const DefaultVerificationMethod = "face_recognition"

// Record is one admitted attendance claim. At most one exists per student
// and window.
type Record struct {
	ID                 string    `json:"id"`
	StudentID          string    `json:"student_id"`
	HallID             string    `json:"hall_id"`
	BatchID            string    `json:"batch_id"`
	WindowID           string    `json:"attendance_window_id"`
	MarkedAt           time.Time `json:"marked_at"`
	VerificationMethod string    `json:"verification_method"`
	BeaconRSSI         *int      `json:"beacon_rssi"`
	FaceConfidence     *float64  `json:"face_confidence"`
}

// Claim is a student's request to be marked present. The evidence fields
// are opaque readings stored as given.
type Claim struct {
	HallID             string
	WindowID           string
	VerificationMethod string
	BeaconRSSI         *int
	FaceConfidence     *float64
}
