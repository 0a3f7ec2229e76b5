package service

import "strings"

type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Fields, "; ")
}

type AuditEntry struct {
	Action       string
	ResourceType string
	ResourceID   string
	RequestID    string
	IPAddress    string
	Changes      string
}
