package database

import (
	"fmt"
	"log"

	"gorm.io/gorm"
)

// AddIndexes adds indexes for the dashboard and reminder-sweep hot paths.
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Dashboard count queries filter by role and status
		{"tasks", "idx_tasks_assigned_to_status", "assigned_to_id, status"},
		{"tasks", "idx_tasks_created_by_status", "created_by_id, status"},

		// Sweep predicates and due-date ordering
		{"tasks", "idx_tasks_due_date", "due_date"},
		{"tasks", "idx_tasks_organization_id", "organization_id"},

		// Membership lookups
		{"organization_members", "idx_org_members_user_id", "user_id"},
	}

	for _, idx := range indexes {
		if db.Migrator().HasIndex(idx.table, idx.name) {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		log.Printf("Created index %s on %s(%s)", idx.name, idx.table, idx.columns)
	}

	return nil
}
