package device

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for device-list persistence.
//
// Only the persisted fields of a Device (ID, Title, ProviderName,
// DeviceHandle, IOType) are stored. Runtime state is never persisted.
type Repository interface {
	// GetByID retrieves a device by its unique identifier.
	// Returns ErrDeviceNotFound if the device does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*Device, error)

	// List retrieves all devices ordered by title.
	List(ctx context.Context) ([]*Device, error)

	// ListByIOType retrieves all input or all output devices.
	ListByIOType(ctx context.Context, ioType IOType) ([]*Device, error)

	// Create inserts a new device.
	// Returns ErrDeviceExists if a device with the same ID already exists.
	Create(ctx context.Context, device *Device) error

	// Update modifies the persisted fields of an existing device.
	// Returns ErrDeviceNotFound if the device does not exist.
	Update(ctx context.Context, device *Device) error

	// Delete removes a device by ID.
	// Returns ErrDeviceNotFound if the device does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// SQLiteRepository implements Repository using SQLite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a new SQLite-backed repository.
// The db parameter should be an open SQLite connection.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const selectDeviceColumns = `SELECT id, title, provider_name, device_handle, io_type FROM devices`

// GetByID retrieves a device by its unique identifier.
func (r *SQLiteRepository) GetByID(ctx context.Context, id uuid.UUID) (*Device, error) {
	row := r.db.QueryRowContext(ctx, selectDeviceColumns+` WHERE id = ?`, id.String())
	device, err := scanDevice(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDeviceNotFound
		}
		return nil, fmt.Errorf("querying device by id: %w", err)
	}
	return device, nil
}

// List retrieves all devices.
func (r *SQLiteRepository) List(ctx context.Context) ([]*Device, error) {
	return r.queryDevices(ctx, selectDeviceColumns+` ORDER BY title`)
}

// ListByIOType retrieves all devices of one direction.
func (r *SQLiteRepository) ListByIOType(ctx context.Context, ioType IOType) ([]*Device, error) {
	return r.queryDevices(ctx, selectDeviceColumns+` WHERE io_type = ? ORDER BY title`, string(ioType))
}

// Create inserts a new device.
func (r *SQLiteRepository) Create(ctx context.Context, device *Device) error {
	now := time.Now().UTC().Format(time.RFC3339)

	query := `
		INSERT INTO devices (
			id, title, provider_name, device_handle, io_type, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		device.ID.String(),
		device.Title,
		device.ProviderName,
		device.DeviceHandle,
		string(device.IOType),
		now,
		now,
	)
	if err != nil {
		// Check for unique constraint violation
		if isUniqueConstraintError(err) {
			return ErrDeviceExists
		}
		return fmt.Errorf("inserting device: %w", err)
	}

	return nil
}

// Update modifies the persisted fields of an existing device.
func (r *SQLiteRepository) Update(ctx context.Context, device *Device) error {
	query := `
		UPDATE devices SET
			title = ?, provider_name = ?, device_handle = ?, io_type = ?, updated_at = ?
		WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query,
		device.Title,
		device.ProviderName,
		device.DeviceHandle,
		string(device.IOType),
		time.Now().UTC().Format(time.RFC3339),
		device.ID.String(),
	)
	if err != nil {
		return fmt.Errorf("updating device: %w", err)
	}

	return checkRowsAffected(result)
}

// Delete removes a device by ID.
func (r *SQLiteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM devices WHERE id = ?", id.String())
	if err != nil {
		return fmt.Errorf("deleting device: %w", err)
	}

	return checkRowsAffected(result)
}

// queryDevices executes a query and returns a slice of devices.
func (r *SQLiteRepository) queryDevices(ctx context.Context, query string, args ...any) ([]*Device, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying devices: %w", err)
	}
	defer rows.Close()

	var devices []*Device
	for rows.Next() {
		device, err := scanDevice(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning device: %w", err)
		}
		devices = append(devices, device)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating devices: %w", err)
	}

	return devices, nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanDevice reads one devices row into a Device entity.
func scanDevice(s scanner) (*Device, error) {
	var (
		idStr        string
		title        string
		providerName string
		deviceHandle string
		ioType       string
	)
	if err := s.Scan(&idStr, &title, &providerName, &deviceHandle, &ioType); err != nil {
		return nil, err
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("parsing device id %q: %w", idStr, err)
	}

	return NewWithID(id, title, providerName, deviceHandle, IOType(ioType)), nil
}

func checkRowsAffected(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrDeviceNotFound
	}
	return nil
}

// isUniqueConstraintError reports whether err is a SQLite unique violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "unique constraint")
}
