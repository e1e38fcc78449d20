package credstore

// Fixed key names for the persisted session. They are stable across releases
// so a saved session survives upgrades.
const (
	KeyUser         = "user"
	KeyAccessToken  = "accessToken"
	KeyRefreshToken = "refreshToken"
)
