package domain

import "fmt"

const MessageTypeSchedule = "SCHEDULE_NOTIFICATIONS"

// Permission mirrors the page's Notification.permission value.
type Permission string

const (
	PermissionGranted Permission = "granted"
	PermissionDenied  Permission = "denied"
	PermissionDefault Permission = "default"
)

func ParsePermission(v string) (Permission, error) {
	switch p := Permission(v); p {
	case PermissionGranted, PermissionDenied, PermissionDefault:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidPermission, v)
	}
}
