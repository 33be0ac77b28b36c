package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/mamacare-health/notify-backend-go/internal/domain/appointment"
	"github.com/mamacare-health/notify-backend-go/internal/pkg/database"
)

type appointmentRepository struct {
	db *database.DB
}

// NewAppointmentRepository creates a new appointment repository
func NewAppointmentRepository(db *database.DB) appointment.Repository {
	return &appointmentRepository{db: db}
}

// GetByID retrieves an appointment by ID
func (r *appointmentRepository) GetByID(ctx context.Context, id string) (*appointment.Appointment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, patient_id, doctor_id, doctor_name, status, cancellation_reason, status_updated_at, created_at
		FROM appointments
		WHERE id = $1
	`

	var a appointment.Appointment
	var status string

	err := q.QueryRow(ctx, query, id).Scan(
		&a.ID,
		&a.PatientID,
		&a.DoctorID,
		&a.DoctorName,
		&status,
		&a.CancellationReason,
		&a.StatusUpdatedAt,
		&a.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, appointment.ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("failed to get appointment: %w", database.ClassifyError(err))
	}

	a.Status = appointment.Status(status)
	return &a, nil
}

// UpdateStatus persists the transition in one conditional write. The
// transition timestamp comes from the database server clock; a nil reason
// keeps whatever reason is already stored.
func (r *appointmentRepository) UpdateStatus(ctx context.Context, id string, status appointment.Status, cancellationReason *string) (*appointment.Appointment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE appointments
		SET status = $2,
		    cancellation_reason = COALESCE($3, cancellation_reason),
		    status_updated_at = NOW()
		WHERE id = $1
		RETURNING id, patient_id, doctor_id, doctor_name, status, cancellation_reason, status_updated_at, created_at
	`

	var a appointment.Appointment
	var newStatus string

	err := q.QueryRow(ctx, query, id, string(status), cancellationReason).Scan(
		&a.ID,
		&a.PatientID,
		&a.DoctorID,
		&a.DoctorName,
		&newStatus,
		&a.CancellationReason,
		&a.StatusUpdatedAt,
		&a.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, appointment.ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("failed to update appointment status: %w", database.ClassifyError(err))
	}

	a.Status = appointment.Status(newStatus)
	return &a, nil
}
