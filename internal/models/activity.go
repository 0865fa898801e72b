package models

import "time"

// ActivityEntry is one line of the append-only activity log
type ActivityEntry struct {
	ID         int64     `json:"id" db:"id"`
	Collection string    `json:"collection" db:"collection"`
	RecordID   int64     `json:"recordId" db:"record_id"`
	Action     string    `json:"action" db:"action"`
	FromStatus string    `json:"fromStatus" db:"from_status"`
	ToStatus   string    `json:"toStatus" db:"to_status"`
	ClientIP   string    `json:"clientIp" db:"client_ip"`
	DeviceType string    `json:"deviceType" db:"device_type"`
	Platform   string    `json:"platform" db:"platform"`
	Browser    string    `json:"browser" db:"browser"`
	OccurredAt time.Time `json:"occurredAt" db:"occurred_at"`
}

// Fields converts the entry into a storable record
func (e *ActivityEntry) Fields() Fields {
	return Fields{
		"collection": e.Collection,
		"recordId":   e.RecordID,
		"action":     e.Action,
		"fromStatus": e.FromStatus,
		"toStatus":   e.ToStatus,
		"clientIp":   e.ClientIP,
		"deviceType": e.DeviceType,
		"platform":   e.Platform,
		"browser":    e.Browser,
		"occurredAt": e.OccurredAt,
	}
}
