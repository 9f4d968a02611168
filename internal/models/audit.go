package models

import "time"

// AuditLog est une entrée de la collection "logs" (best effort : un échec
// d'écriture n'interrompt jamais l'opération principale)
type AuditLog struct {
	ID         string    `bson:"_id" json:"id"`
	UID        string    `bson:"uid" json:"uid"`
	UserEmail  string    `bson:"userEmail" json:"userEmail"`
	Action     string    `bson:"action" json:"action"`
	Resource   string    `bson:"resource" json:"resource"`
	ResourceID string    `bson:"resourceId" json:"resourceId"`
	IPAddress  string    `bson:"ipAddress" json:"ipAddress"`
	UserAgent  string    `bson:"userAgent" json:"userAgent"`
	Success    bool      `bson:"success" json:"success"`
	ErrorMsg   string    `bson:"errorMsg,omitempty" json:"errorMsg,omitempty"`
	Timestamp  time.Time `bson:"timestamp" json:"timestamp"`
}
