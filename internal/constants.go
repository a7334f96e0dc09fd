package internal

const (
	// COOKIE_SESSION_NAME carries the encrypted session id. It doubles as the
	// fixed name the draft blob is stored under.
	COOKIE_SESSION_NAME = "document-request-store"
	DRAFT_STORE_NAME    = COOKIE_SESSION_NAME
)
