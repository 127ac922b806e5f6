package domain

// Wire names for states and tasks, shared by logs, metrics labels and renderers.
const (
	StateNameDisabled = "disable"
	StateNameStandby  = "standby"
	StateNameEnabled  = "enable"
	StateNameLocked   = "locked"

	TaskNameEnable    = "enable"
	TaskNameStandby   = "standby"
	TaskNameDisable   = "disable"
	TaskNameReachable = "reachable?"
)
