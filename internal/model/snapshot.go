package model

// SchemaVersion is the snapshot layout version written by this build.
const SchemaVersion = 1

// Snapshot is the full persisted tracker state.
type Snapshot struct {
	SchemaVersion int    `json:"schemaVersion"`
	Users         []User `json:"users"`
	Tasks         []Task `json:"tasks"`

	// CurrentUser is the session user at save time, nil when logged out.
	CurrentUser *User `json:"currentUser,omitempty"`
}
