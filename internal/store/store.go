package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/nhle/studytrack/internal/model"
)

// Names of the persisted entries. Every backend stores one value per key.
const (
	KeyUsers         = "studytrack.users"
	KeyTasks         = "studytrack.tasks"
	KeyCurrentUser   = "studytrack.current_user"
	KeySchemaVersion = "studytrack.schema_version"
)

// ErrNoSnapshot is returned by Load when nothing has been persisted yet.
var ErrNoSnapshot = errors.New("no persisted snapshot")

// SchemaError reports a persisted snapshot written with another layout.
type SchemaError struct {
	Found int
	Want  int
}

func (e SchemaError) Error() string {
	return fmt.Sprintf("snapshot schema version %d, want %d", e.Found, e.Want)
}

// Store defines the persistence interface for tracker snapshots.
type Store interface {
	// Load returns the last saved snapshot, ErrNoSnapshot when there is
	// none, or a decoding error when the stored entries are malformed.
	Load(ctx context.Context) (*model.Snapshot, error)

	// Save replaces the stored snapshot atomically.
	Save(ctx context.Context, snap model.Snapshot) error

	Close() error
}

// encodeSnapshot serializes a snapshot into its named entries. A nil
// current user maps to a nil value, which backends treat as a delete.
func encodeSnapshot(snap model.Snapshot) (map[string][]byte, error) {
	users := snap.Users
	if users == nil {
		users = []model.User{}
	}
	tasks := snap.Tasks
	if tasks == nil {
		tasks = []model.Task{}
	}

	usersJSON, err := json.Marshal(users)
	if err != nil {
		return nil, fmt.Errorf("marshaling users: %w", err)
	}
	tasksJSON, err := json.Marshal(tasks)
	if err != nil {
		return nil, fmt.Errorf("marshaling tasks: %w", err)
	}

	entries := map[string][]byte{
		KeyUsers:         usersJSON,
		KeyTasks:         tasksJSON,
		KeySchemaVersion: []byte(strconv.Itoa(snap.SchemaVersion)),
		KeyCurrentUser:   nil,
	}
	if snap.CurrentUser != nil {
		current, err := json.Marshal(snap.CurrentUser)
		if err != nil {
			return nil, fmt.Errorf("marshaling current user: %w", err)
		}
		entries[KeyCurrentUser] = current
	}
	return entries, nil
}

// decodeSnapshot rebuilds a snapshot from stored entries.
func decodeSnapshot(entries map[string][]byte) (*model.Snapshot, error) {
	usersJSON, hasUsers := entries[KeyUsers]
	tasksJSON, hasTasks := entries[KeyTasks]
	if !hasUsers && !hasTasks {
		return nil, ErrNoSnapshot
	}
	if !hasUsers || !hasTasks {
		return nil, fmt.Errorf("incomplete snapshot: users=%t tasks=%t", hasUsers, hasTasks)
	}

	raw, ok := entries[KeySchemaVersion]
	if !ok {
		return nil, SchemaError{Found: 0, Want: model.SchemaVersion}
	}
	version, err := strconv.Atoi(string(raw))
	if err != nil {
		return nil, fmt.Errorf("parsing schema version %q: %w", raw, err)
	}
	if version != model.SchemaVersion {
		return nil, SchemaError{Found: version, Want: model.SchemaVersion}
	}

	snap := &model.Snapshot{SchemaVersion: version}
	if err := json.Unmarshal(usersJSON, &snap.Users); err != nil {
		return nil, fmt.Errorf("unmarshaling users: %w", err)
	}
	if err := json.Unmarshal(tasksJSON, &snap.Tasks); err != nil {
		return nil, fmt.Errorf("unmarshaling tasks: %w", err)
	}
	if current, ok := entries[KeyCurrentUser]; ok && len(current) > 0 && string(current) != "null" {
		var u model.User
		if err := json.Unmarshal(current, &u); err != nil {
			return nil, fmt.Errorf("unmarshaling current user: %w", err)
		}
		snap.CurrentUser = &u
	}
	return snap, nil
}

// Open returns the backend selected by cfg.
func Open(cfg model.StorageConfig) (Store, error) {
	switch cfg.Backend {
	case model.BackendBolt:
		return NewBoltStore(cfg.Path)
	case model.BackendSQLite, "":
		return NewSQLiteStore(cfg.Path)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
