package conf

var Conf *Config

type ContextKey string

// UserKey carries the authenticated *model.User in the request context.
const UserKey ContextKey = "user"
