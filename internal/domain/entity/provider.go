package entity

// CloudProvider is a cloud vendor the audit product knows how to inspect.
// Rows are seeded operationally; the backend only reads them.
type CloudProvider struct {
	ID          int64  // Database-generated identifier.
	Name        string // Machine name, e.g. "aws".
	DisplayName string // Human-readable name shown in the frontend.
	IconURL     string // Optional icon asset URL.
	IsActive    bool   // Inactive providers are hidden from the catalog.
}
