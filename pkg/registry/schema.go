// pkg/registry/schema.go
package registry

// ActivityRegistry is the catalogue of job workers and the process variables
// they exchange, kept in configs/activity-registry.json.
type ActivityRegistry struct {
	Version     string     `json:"version"`
	LastUpdated string     `json:"lastUpdated"`
	Activities  []Activity `json:"activities"`
}

// Activity describes one worker. ID is domain.subdomain.action; TaskType is
// the Zeebe job type the worker subscribes to.
type Activity struct {
	ID                   string `json:"id"`
	DisplayName          string `json:"displayName"`
	Description          string `json:"description"`
	Category             string `json:"category"`
	Version              string `json:"version"`
	TaskType             string `json:"taskType"`
	ImplementationStatus string `json:"implementationStatus"`

	// Variable name to JSON type.
	InputSchema  map[string]string `json:"inputSchema"`
	OutputSchema map[string]string `json:"outputSchema"`

	ErrorCodes []string `json:"errorCodes"`
	Timeout    string   `json:"timeout"`
	Retries    int      `json:"retries"`
	Workflows  []string `json:"workflows"`
	Tags       []string `json:"tags"`
}

// ThrowsError reports whether code is among the activity's declared error codes.
func (a Activity) ThrowsError(code string) bool {
	for _, c := range a.ErrorCodes {
		if c == code {
			return true
		}
	}
	return false
}
