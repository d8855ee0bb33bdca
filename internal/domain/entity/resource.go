package entity

import "time"

// Resource is a single cloud resource discovered by an infrastructure scan.
// Rows are written by the separate audit pipeline; this backend only reads them.
type Resource struct {
	ID           int64     // Database-generated identifier.
	AccountID    int64     // Owning account; matches the user's database id.
	ResourceType string    // e.g. "ec2-instance", "s3-bucket".
	ResourceID   string    // Provider-side identifier, e.g. an instance id.
	ResourceName string    // Human-readable name, may be empty.
	Status       string    // Last observed status, e.g. "running".
	CostPerHour  float64   // Estimated hourly cost in USD.
	LastScanned  time.Time // When the audit pipeline last saw this resource.
	CreatedAt    time.Time // When this row was first recorded.
}
