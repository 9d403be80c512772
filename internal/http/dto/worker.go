package dto

type ScheduleResponse struct {
	Code string `json:"code"`
	Sent int    `json:"sent"`
}

type PermissionRequest struct {
	Permission string `json:"permission"`
}

type PermissionResponse struct {
	Permission string `json:"permission"`
}

// ClickRequest identifies the clicked notification. Any other payload the
// page sends is ignored.
type ClickRequest struct {
	Tag string `json:"tag"`
}

type LifecycleResponse struct {
	State     string `json:"state"`
	Namespace string `json:"namespace"`
}
