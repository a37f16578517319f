package constants

// MinPasswordLength is the minimum accepted password length for
// registration and profile updates.
const MinPasswordLength = 6

// ContextKeyUserID is the key under which the authenticated user ID is
// stored in both the session and the request context.
const ContextKeyUserID = "user_id"

// SessionCookieName is the name of the session cookie issued at login.
const SessionCookieName = "taskboard_session"
