// Package seed loads the demo campus: three batches, three halls, two
// faculty members, four students, two open windows and two sample records.
package seed

import (
	"context"
	"fmt"
	"time"

	"attendsync/internal/attendance"
	"attendsync/internal/campus"
	"attendsync/internal/identity"
)

// DemoPassword is shared by every seeded account.
const DemoPassword = "password123"

// Stores are the destinations the demo data is written to.
type Stores struct {
	Users   identity.Store
	Catalog campus.Store
	Windows attendance.WindowStore
	Records attendance.RecordStore
}

// Data is the demo data set.
type Data struct {
	Batches []campus.Batch
	Halls   []campus.Hall
	Users   []identity.User
	Windows []attendance.Window
	Records []attendance.Record
}

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

// Demo builds the data set relative to now. Every user gets hash as their
// password hash.
func Demo(now time.Time, hash string) Data {
	batch := func(id, name, code string) campus.Batch {
		return campus.Batch{ID: id, Name: name, Code: code, Students: []string{}, CreatedAt: now}
	}
	hall := func(n, capacity int) campus.Hall {
		return campus.Hall{
			ID:          fmt.Sprintf("hall-%d", n),
			Name:        fmt.Sprintf("Hall %d", n),
			Code:        fmt.Sprintf("H%d", n),
			MACAddress:  fmt.Sprintf("AA:BB:CC:DD:EE:%02d", n-100),
			BeaconMajor: intPtr(n),
			BeaconMinor: intPtr(1),
			Capacity:    capacity,
			CreatedAt:   now,
		}
	}
	user := func(id, email, name string, p identity.Profile) identity.User {
		return identity.User{ID: id, Email: email, FullName: name, Profile: p, PasswordHash: hash, IsActive: true, CreatedAt: now}
	}

	return Data{
		Batches: []campus.Batch{
			batch("batch-a", "Batch A", "BA2025"),
			batch("batch-b", "Batch B", "BB2025"),
			batch("batch-c", "Batch C", "BC2025"),
		},
		Halls: []campus.Hall{hall(101, 60), hall(102, 80), hall(103, 100)},
		Users: []identity.User{
			user("faculty-1", "dr.sharma@iiitdm.ac.in", "Dr. Rajesh Sharma", identity.FacultyProfile{Department: "Computer Science"}),
			user("faculty-2", "prof.kumar@iiitdm.ac.in", "Prof. Anita Kumar", identity.FacultyProfile{Department: "Electronics"}),
			user("student-1", "cs23i1001@iiitdm.ac.in", "Arjun Patel", identity.StudentProfile{Batch: "batch-a"}),
			user("student-2", "cs23i1002@iiitdm.ac.in", "Priya Sharma", identity.StudentProfile{Batch: "batch-a"}),
			user("student-3", "cs23i1003@iiitdm.ac.in", "Vikram Singh", identity.StudentProfile{Batch: "batch-b"}),
			user("student-4", "cs23i1004@iiitdm.ac.in", "Ananya Reddy", identity.StudentProfile{Batch: "batch-b"}),
		},
		Windows: []attendance.Window{
			{ID: "window-1", HallID: "hall-101", BatchID: "batch-a", StartTime: now.Add(-time.Hour), EndTime: now.Add(2 * time.Hour),
				IsActive: true, CreatedBy: "faculty-1", CreatedAt: now},
			{ID: "window-2", HallID: "hall-102", BatchID: "batch-b", StartTime: now.Add(-30 * time.Minute), EndTime: now.Add(time.Hour),
				IsActive: true, CreatedBy: "faculty-2", CreatedAt: now},
		},
		Records: []attendance.Record{
			{ID: "record-1", StudentID: "student-1", HallID: "hall-101", BatchID: "batch-a", WindowID: "window-1",
				MarkedAt: now.Add(-45 * time.Minute), VerificationMethod: attendance.DefaultVerificationMethod,
				BeaconRSSI: intPtr(-42), FaceConfidence: floatPtr(0.97)},
			{ID: "record-2", StudentID: "student-2", HallID: "hall-101", BatchID: "batch-a", WindowID: "window-1",
				MarkedAt: now.Add(-40 * time.Minute), VerificationMethod: attendance.DefaultVerificationMethod,
				BeaconRSSI: intPtr(-38), FaceConfidence: floatPtr(0.95)},
		},
	}
}

// Load writes d to s in dependency order and stops at the first failure.
func Load(ctx context.Context, s Stores, d Data) error {
	for _, b := range d.Batches {
		if err := s.Catalog.CreateBatch(ctx, b); err != nil {
			return fmt.Errorf("batch %s: %w", b.ID, err)
		}
	}
	for _, h := range d.Halls {
		if err := s.Catalog.CreateHall(ctx, h); err != nil {
			return fmt.Errorf("hall %s: %w", h.ID, err)
		}
	}
	for _, u := range d.Users {
		if err := s.Users.Create(ctx, u); err != nil {
			return fmt.Errorf("user %s: %w", u.Email, err)
		}
	}
	for _, w := range d.Windows {
		if err := s.Windows.CreateWindow(ctx, w); err != nil {
			return fmt.Errorf("window %s: %w", w.ID, err)
		}
	}
	for _, r := range d.Records {
		if err := s.Records.InsertIfAbsent(ctx, r); err != nil {
			return fmt.Errorf("record %s: %w", r.ID, err)
		}
	}
	return nil
}
