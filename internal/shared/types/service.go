package types

// Category represents service categories
type Category string

const (
	CategoryFilesystem Category = "filesystem"
	CategoryRegistry   Category = "registry"
)

// Service represents a service definition
type Service struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Category     Category `json:"category"`
	Capabilities []string `json:"capabilities"`
	Tools        []Tool   `json:"tools"`
}

// Tool represents a service tool
type Tool struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Parameters  []Parameter `json:"parameters"`
	Returns     string      `json:"returns"`
}

// Parameter represents a tool parameter
type Parameter struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
}

// Context provides execution context for services
type Context struct {
	RequestID string `json:"request_id,omitempty"`
	ClientIP  string `json:"client_ip,omitempty"`
}

// Result represents a service execution result.
// Failures carry a display-ready message only.
type Result struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Error   *string                `json:"error,omitempty"`
}

// ResultKey is the Data key holding a tool's primary return value
const ResultKey = "result"

// Success builds a successful result around a single return value
func Success(value interface{}) *Result {
	return &Result{Success: true, Data: map[string]interface{}{ResultKey: value}}
}

// SuccessData builds a successful result from a data map
func SuccessData(data map[string]interface{}) *Result {
	return &Result{Success: true, Data: data}
}

// Failure builds a failed result carrying a display-ready message
func Failure(message string) *Result {
	msg := message
	return &Result{Success: false, Error: &msg}
}

// Value returns the primary return value of a successful result
func (r *Result) Value() interface{} {
	if r == nil || r.Data == nil {
		return nil
	}
	return r.Data[ResultKey]
}

// Message returns the failure message, or "" for successful results
func (r *Result) Message() string {
	if r == nil || r.Error == nil {
		return ""
	}
	return *r.Error
}
