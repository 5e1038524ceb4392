package session

// Persisted key names. The three keys together are the entire durable state
// surface of a client session: they are written together by SetAuth and
// removed together by Logout, except that KeyCampSlug is independently
// removed when binding to a tenant-less (admin) session.
const (
	KeyToken    = "authToken"
	KeyUser     = "authUser"
	KeyCampSlug = "campSlug"
)

// Storage is durable key-value storage for one client session, mirroring the
// browser's localStorage surface. Implementations may fail (quota, privacy
// mode, disk errors); the Store degrades to in-memory state when they do.
type Storage interface {
	// Get returns the value for a key, or errors.ErrKeyNotFound when absent
	Get(key string) (string, error)

	// Set creates or replaces a key
	Set(key, value string) error

	// Delete removes a key; deleting an absent key is not an error
	Delete(key string) error
}
