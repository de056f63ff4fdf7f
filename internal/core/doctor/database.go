package doctor

import (
	"context"
	"fmt"
)

// SchemaStatusFunc reports the applied and latest schema versions.
type SchemaStatusFunc func(ctx context.Context) (current, latest int, err error)

// DatabaseCheck verifies the track database opens and is fully migrated.
type DatabaseCheck struct {
	path   string
	status SchemaStatusFunc
}

// NewDatabaseCheck creates a database check for the file at path.
func NewDatabaseCheck(path string, status SchemaStatusFunc) *DatabaseCheck {
	return &DatabaseCheck{path: path, status: status}
}

func (c *DatabaseCheck) Name() string {
	return "Database"
}

func (c *DatabaseCheck) Run(ctx context.Context) Result {
	result := Result{Name: c.Name()}

	if c.status == nil {
		result.Items = append(result.Items, CheckItem{
			Label:  c.path,
			Status: StatusFail,
			Detail: "database not open",
		})
		return result
	}

	current, latest, err := c.status(ctx)
	switch {
	case err != nil:
		result.Items = append(result.Items, CheckItem{
			Label:  c.path,
			Status: StatusFail,
			Detail: err.Error(),
		})
	case current < latest:
		result.Items = append(result.Items, CheckItem{
			Label:  c.path,
			Status: StatusWarn,
			Detail: fmt.Sprintf("schema version %d, %d available (reopen to migrate)", current, latest),
		})
	case current > latest:
		result.Items = append(result.Items, CheckItem{
			Label:  c.path,
			Status: StatusWarn,
			Detail: fmt.Sprintf("schema version %d is newer than this build (%d)", current, latest),
		})
	default:
		result.Items = append(result.Items, CheckItem{
			Label:  c.path,
			Status: StatusPass,
			Detail: fmt.Sprintf("schema version %d", current),
		})
	}
	return result
}
